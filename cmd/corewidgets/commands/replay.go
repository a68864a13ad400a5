package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/agiangrant/corewidgets/button"
	"github.com/agiangrant/corewidgets/checkbox"
	"github.com/agiangrant/corewidgets/radio"
	"github.com/agiangrant/corewidgets/retained"
	"github.com/agiangrant/corewidgets/scene"
	"github.com/agiangrant/corewidgets/slider"
)

// styles used by the trace printer
type styles struct {
	index  lipgloss.Style
	action lipgloss.Style
	intent lipgloss.Style
	quiet  lipgloss.Style
	header lipgloss.Style
}

func newStyles(out io.Writer, plain bool) styles {
	if plain {
		s := lipgloss.NewStyle()
		return styles{index: s, action: s, intent: s, quiet: s, header: s}
	}
	r := lipgloss.NewRenderer(out)
	return styles{
		index:  r.NewStyle().Faint(true),
		action: r.NewStyle().Bold(true),
		intent: r.NewStyle().Foreground(lipgloss.Color("10")),
		quiet:  r.NewStyle().Faint(true).Italic(true),
		header: r.NewStyle().Bold(true).Underline(true),
	}
}

func newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <scene-file>",
		Short: "Replay a scene's input script and print the emitted intents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := LoadSettings(cmd)
			if err != nil {
				return err
			}
			sc, err := scene.Load(args[0])
			if err != nil {
				return err
			}
			return Replay(cmd.OutOrStdout(), sc, s.NoColor)
		},
	}
}

// Replay builds sc, runs its steps and writes the trace and final state to out.
func Replay(out io.Writer, sc *scene.Scene, plain bool) error {
	built, err := sc.Build()
	if err != nil {
		return err
	}
	st := newStyles(out, plain)

	fmt.Fprintln(out, st.header.Render("trace"))
	err = built.Run(sc.Steps, func(r scene.StepResult) {
		line := fmt.Sprintf("%s %s", st.index.Render(fmt.Sprintf("#%02d", r.Index)), st.action.Render(describeStep(r.Step)))
		if len(r.Intents) == 0 {
			fmt.Fprintf(out, "%s %s\n", line, st.quiet.Render("(no intents)"))
			return
		}
		parts := make([]string, 0, len(r.Intents))
		for _, rec := range r.Intents {
			parts = append(parts, describeIntent(built, rec.Source, rec.Intent))
		}
		fmt.Fprintf(out, "%s -> %s\n", line, st.intent.Render(strings.Join(parts, ", ")))
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, st.header.Render("state"))
	for _, l := range describeState(built, sc) {
		fmt.Fprintln(out, l)
	}
	return nil
}

func describeStep(s scene.Step) string {
	switch s.Action {
	case "move", "down", "up", "click":
		return fmt.Sprintf("%s p%d (%g, %g)", s.Action, s.Pointer, s.X, s.Y)
	case "cancel":
		return fmt.Sprintf("cancel p%d", s.Pointer)
	case "key":
		if s.Repeat {
			return fmt.Sprintf("key %s (repeat)", s.Key)
		}
		return "key " + s.Key
	case "blur":
		return "blur"
	}
	return fmt.Sprintf("%s %s", s.Action, s.Target)
}

func describeIntent(b *scene.Built, src retained.Entity, in retained.Intent) string {
	switch v := in.(type) {
	case button.Activate:
		return fmt.Sprintf("Activate(%s)", b.NameOf(src))
	case checkbox.ToggleChecked:
		return fmt.Sprintf("ToggleChecked(%s)", b.NameOf(src))
	case checkbox.SetChecked:
		return fmt.Sprintf("SetChecked(%s, %t)", b.NameOf(src), v.Checked)
	case radio.SelectItem:
		return fmt.Sprintf("SelectItem(%s, %s)", b.NameOf(v.Group), b.NameOf(v.Item))
	case slider.SetSliderValue:
		return fmt.Sprintf("SetSliderValue(%s, %g)", b.NameOf(src), v.Value)
	}
	return fmt.Sprintf("%s(%s)", in.IntentName(), b.NameOf(src))
}

// describeState lists the host-owned state of every declared widget.
func describeState(b *scene.Built, sc *scene.Scene) []string {
	w := b.App.World
	var lines []string
	for _, decl := range sc.Widgets {
		e := b.Entity(decl.Name)
		var state string
		switch decl.Kind {
		case scene.KindButton:
			state = fmt.Sprintf("activations=%d", b.Host.Activations[e])
		case scene.KindCheckbox, scene.KindRadio:
			state = fmt.Sprintf("checked=%t", retained.Has[retained.Checked](w, e))
		case scene.KindSlider:
			if s, ok := slider.Of(w, e); ok {
				state = fmt.Sprintf("value=%g range=%s", slider.CurrentValue(w, e, s), s.Range)
			}
		default:
			continue
		}
		if w.Disabled(e) {
			state += " disabled"
		}
		lines = append(lines, fmt.Sprintf("  %-16s %s", decl.Name, state))
	}
	sort.Strings(lines)
	return lines
}
