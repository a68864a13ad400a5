// Package commands implements the corewidgets command line tool: replaying
// scripted input against a widget scene and validating scene files.
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agiangrant/corewidgets/internal/logging"
)

// Settings are the tool's global options, read from flags and
// COREWIDGETS_* environment variables.
type Settings struct {
	Verbose bool `mapstructure:"verbose"`
	NoColor bool `mapstructure:"no-color"`
}

// LoadSettings resolves Settings for cmd. Flags win over environment.
func LoadSettings(cmd *cobra.Command) (Settings, error) {
	var s Settings
	v := viper.New()
	v.SetDefault("verbose", false)
	v.SetDefault("no-color", false)

	v.SetEnvPrefix("corewidgets")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return s, fmt.Errorf("bind flags: %w", err)
	}
	if err := v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	return s, nil
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "corewidgets",
		Short: "Inspect headless widget scenes",
		Long: `corewidgets loads declarative widget scenes (TOML or YAML), replays their
scripted pointer and keyboard input through the widget engines, and prints the
intent events the engines emit together with the resulting host state.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := LoadSettings(cmd)
			if err != nil {
				return err
			}
			logging.SetVerbose(s.Verbose)
			return nil
		},
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	root.PersistentFlags().Bool("no-color", false, "disable styled output")

	root.AddCommand(newReplayCmd(), newCheckCmd(), newVersionCmd(version))
	return root
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "corewidgets version %s\n", version)
		},
	}
}
