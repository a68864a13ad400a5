package commands

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/agiangrant/corewidgets/scene"
)

const demoScene = "../../../scene/testdata/demo.toml"

func stateLine(name, state string) string {
	return fmt.Sprintf("  %-16s %s", name, state)
}

func TestReplayTrace(t *testing.T) {
	sc, err := scene.Load(demoScene)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var out bytes.Buffer
	if err := Replay(&out, sc, true); err != nil {
		t.Fatalf("Replay: %v", err)
	}
	got := out.String()

	for _, want := range []string{
		"#00 click p0 (50, 30) -> Activate(save)",
		"#01 click p0 (15, 65) -> ToggleChecked(mute)",
		"#02 click p0 (50, 130) -> SelectItem(size, large)",
		"#03 down p0 (25, 210) (no intents)",
		"#04 move p0 (42, 210) -> SetSliderValue(volume, 40)",
		"#06 disable save (no intents)",
		"#07 click p0 (50, 30) (no intents)",
		stateLine("save", "activations=1 disabled"),
		stateLine("mute", "checked=true"),
		stateLine("small", "checked=false"),
		stateLine("large", "checked=true"),
		stateLine("volume", "value=40 range=[0, 100]"),
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
	if strings.Index(got, "trace") > strings.Index(got, "state") {
		t.Error("state printed before trace")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd("1.2.3")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != "corewidgets version 1.2.3" {
		t.Errorf("output = %q", out)
	}
}

func TestCheckCommand(t *testing.T) {
	out, err := execute(t, "check", demoScene, "../../../scene/testdata/demo.yaml")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "demo.toml: ok (8 widgets, 8 steps)") || !strings.Contains(out, "demo.yaml: ok (5 widgets, 8 steps)") {
		t.Errorf("output = %q", out)
	}
}

func TestCheckCommandRejectsUnknownFormat(t *testing.T) {
	if _, err := execute(t, "check", "scene.json"); err == nil {
		t.Error("check accepted a .json scene")
	}
}

func TestReplayCommandNoColor(t *testing.T) {
	out, err := execute(t, "replay", "--no-color", demoScene)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !strings.Contains(out, "#04 move p0 (42, 210) -> SetSliderValue(volume, 40)") {
		t.Errorf("output = %q", out)
	}
}

func TestLoadSettingsFromEnv(t *testing.T) {
	t.Setenv("COREWIDGETS_NO_COLOR", "true")
	cmd := NewRootCmd("dev")
	s, err := LoadSettings(cmd)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if !s.NoColor || s.Verbose {
		t.Errorf("settings = %+v, want NoColor only", s)
	}
}
