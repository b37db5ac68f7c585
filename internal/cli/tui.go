package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/r9s-ai/bundleurl/internal/resolve"
	"github.com/r9s-ai/bundleurl/internal/tui"
)

func newTUICmd() *cobra.Command {
	var opts settingsOptions
	var base string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive URL explorer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			svc, err := resolve.New(s, 0)
			if err != nil {
				return err
			}
			return tui.Run(svc, base, os.Stdin, os.Stdout)
		},
	}
	addSettingsFlags(cmd, &opts)
	cmd.Flags().StringVar(&base, "base", "http://localhost:8081", "base URL prepended to inputs that start with /")
	return cmd
}
