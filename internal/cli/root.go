package cli

import (
	"github.com/spf13/cobra"
)

const defaultConfigPath = "bundleurl.yaml"

func Run(args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bundleurl",
		Short:         "Resolve bundler request URLs into build options",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(
		newServeCmd(),
		newResolveCmd(),
		newValidateCmd(),
		newTUICmd(),
		newVersionCmd(),
	)
	return cmd
}
