package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agiangrant/corewidgets/scene"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <scene-file>...",
		Short: "Validate scene files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				sc, err := scene.Load(path)
				if err != nil {
					return err
				}
				if _, err := sc.Build(); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d widgets, %d steps)\n", path, len(sc.Widgets), len(sc.Steps))
			}
			return nil
		},
	}
}
