package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/r9s-ai/bundleurl/internal/config"
	"github.com/r9s-ai/bundleurl/internal/resolve"
	"github.com/r9s-ai/bundleurl/pkg/bundleurl"
)

// settingsOptions are the flags shared by commands that resolve URLs locally.
type settingsOptions struct {
	cfgPath         string
	root            string
	platforms       []string
	transformPrefix string
}

func addSettingsFlags(cmd *cobra.Command, opts *settingsOptions) {
	fs := cmd.Flags()
	fs.StringVarP(&opts.cfgPath, "config", "c", defaultConfigPath, "config yaml path (optional)")
	fs.StringVar(&opts.root, "root", "", "project root (overrides config)")
	fs.StringSliceVarP(&opts.platforms, "platform", "p", nil, "known platform, repeatable (overrides config)")
	fs.StringVar(&opts.transformPrefix, "transform-prefix", "", "query prefix for custom transform options (overrides config)")
}

// loadSettings reads the optional config file and applies flag overrides.
func loadSettings(cmd *cobra.Command, opts settingsOptions) (resolve.Settings, error) {
	cfg, err := config.LoadIfExists(opts.cfgPath)
	if err != nil {
		return resolve.Settings{}, fmt.Errorf("load config: %w", err)
	}
	s := resolve.SettingsFromConfig(cfg)
	if root := strings.TrimSpace(opts.root); root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return resolve.Settings{}, fmt.Errorf("--root: %w", err)
		}
		s.ProjectRoot = abs
	}
	if cmd.Flags().Changed("platform") {
		s.Platforms = bundleurl.NewPlatformSet(opts.platforms...)
	}
	if p := strings.TrimSpace(opts.transformPrefix); p != "" {
		s.TransformPrefix = p
	}
	return s, nil
}
