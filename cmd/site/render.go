package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/raha-io/site/frontmatter"
	"github.com/raha-io/site/markdown"
)

func newRenderCommand() *cobra.Command {
	var showMeta bool

	cmd := &cobra.Command{
		Use:   "render <file|->",
		Short: "Render one markdown document to HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			var err error
			if args[0] == "-" {
				raw, err = io.ReadAll(cmd.InOrStdin())
			} else {
				raw, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}
			doc, err := frontmatter.Parse(string(raw))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			out := cmd.OutOrStdout()
			if showMeta {
				for _, key := range []string{"title", "date", "description"} {
					fmt.Fprintf(out, "%s: %s\n", key, doc.Metadata.String(key))
				}
				fmt.Fprintln(out)
			}
			_, err = io.WriteString(out, markdown.New().Render(doc.Body))
			return err
		},
	}
	cmd.Flags().BoolVar(&showMeta, "meta", false, "Print front-matter fields before the HTML")
	return cmd
}
