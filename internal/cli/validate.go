package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/r9s-ai/bundleurl/internal/config"
)

func newValidateCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Test the config file and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ok: project_root=%s\n", cfg.Bundler.ProjectRoot)
			fmt.Fprintf(out, "ok: platforms=%v\n", cfg.PlatformSet().Names())
			fmt.Fprintln(out, "configuration ok")
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", defaultConfigPath, "config yaml path")
	return cmd
}
