package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"swipe-go/pkg/logger"
)

func main() {
	log := logger.NewFromEnv()

	root := &cobra.Command{
		Use:           "swipe-cli",
		Short:         "Swipe administration commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		migrateCmd(log),
		createSuperuserCmd(log),
		createDeveloperCmd(log),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
