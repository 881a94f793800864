package main

import (
	"fmt"

	"github.com/spf13/cobra"

	site "github.com/raha-io/site"
	"github.com/raha-io/site/blog"
)

func newImportCommand(envFile *string) *cobra.Command {
	var from string
	var dbPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy a content directory into the SQLite content database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := site.LoadConfig(*envFile)
			if err != nil {
				return err
			}
			if from == "" {
				from = cfg.ContentDir
			}
			if dbPath == "" {
				dbPath = cfg.DatabasePath
			}

			db, err := blog.NewSQLiteStore(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := db.Import(cmd.Context(), blog.NewOSDirStore(from))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d documents from %s into %s\n", n, from, dbPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Content directory to import (default CONTENT_DIR)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default DATABASE_PATH)")
	return cmd
}
