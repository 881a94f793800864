package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "site",
		Short:         "Raha IO website and blog",
		Long:          `Serves the bilingual Raha IO marketing site and its markdown blog, and manages blog content.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load before reading the environment")

	root.AddCommand(newServeCommand(&envFile))
	root.AddCommand(newPostsCommand(&envFile))
	root.AddCommand(newRenderCommand())
	root.AddCommand(newImportCommand(&envFile))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "site %s\n", version)
		},
	})
	return root
}
