package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/r9s-ai/bundleurl/internal/resolve"
	"github.com/r9s-ai/bundleurl/pkg/bundleurl"
)

type resolveOptions struct {
	settingsOptions
	format string
}

func newResolveCmd() *cobra.Command {
	var opts resolveOptions
	cmd := &cobra.Command{
		Use:   "resolve URL...",
		Short: "Print the build options for one or more request URLs",
		Example: `  bundleurl resolve 'http://localhost:8081/index.ios.bundle?dev=false'
  bundleurl resolve --root ./app -p ios -p android --format yaml 'http://localhost:8081/index.android.delta'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, opts.settingsOptions)
			if err != nil {
				return err
			}
			svc, err := resolve.New(s, 0)
			if err != nil {
				return err
			}
			for _, raw := range args {
				o, _, err := svc.Resolve(raw)
				if err != nil {
					return fmt.Errorf("resolve %s: %w", raw, err)
				}
				if err := writeOptions(cmd.OutOrStdout(), o, opts.format); err != nil {
					return err
				}
			}
			return nil
		},
	}
	addSettingsFlags(cmd, &opts.settingsOptions)
	cmd.Flags().StringVarP(&opts.format, "format", "o", "json", "output format: json|yaml")
	return cmd
}

func writeOptions(w io.Writer, o bundleurl.Options, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(o)
	case "yaml", "yml":
		b, err := yaml.Marshal(o)
		if err != nil {
			return err
		}
		if _, err := w.Write(append([]byte("---\n"), b...)); err != nil {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (supported: json, yaml)", format)
	}
}
