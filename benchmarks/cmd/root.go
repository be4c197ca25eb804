package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

func RootCommand() *cobra.Command {
	if err := flags.LoadEnv(".env", "../.env", "../../.env"); err != nil {
		log.Printf("ignoring environment defaults: %s", err)
	}

	cmd := &cobra.Command{
		Use:   "rlgym",
		Short: "Soccar reinforcement learning environments and benchmarks",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			UpdateFlags()
			return flags.Record()
		},
		SilenceUsage: true,
	}
	AddFlags(cmd)

	cmd.AddCommand(
		SoccarCommand(),
	)

	return cmd
}
