package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	site "github.com/raha-io/site"
	"github.com/raha-io/site/blog"
	"github.com/raha-io/site/markdown"
)

func newPostsCommand(envFile *string) *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List blog posts in the order the site shows them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := site.LoadConfig(*envFile)
			if err != nil {
				return err
			}
			if backend != "" {
				cfg.ContentBackend = backend
			}
			logger := site.NewLogger(cfg, cmd.ErrOrStderr())

			store, closer, err := site.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			posts, err := blog.NewRepository(store, markdown.New(), logger).ListPosts(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tSLUG\tTITLE")
			for _, p := range posts {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.PublishedAt.Format("2006-01-02"), p.Slug, p.Frontmatter.Title)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&backend, "backend", "", "Content backend (overrides CONTENT_BACKEND)")
	return cmd
}
