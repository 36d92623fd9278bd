package main

import (
	"fmt"
	"time"

	"github.com/odvcencio/gat/pkg/object"
	"github.com/odvcencio/gat/pkg/repo"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log [hash]",
		Short: "Show commit history following first parents",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			var start object.Hash
			if len(args) > 0 {
				start = object.Hash(args[0])
			} else {
				start, err = r.ResolveRef("HEAD")
				if err != nil {
					return err
				}
				if start == "" {
					return fmt.Errorf("no commits yet")
				}
			}

			commits, hashes, err := r.Log(start, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, c := range commits {
				msg, err := object.RenderMessage(c)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "commit %s\n", hashes[i])
				fmt.Fprintf(out, "Author: %s <%s>\n", c.Author.Name, c.Author.Email)
				fmt.Fprintf(out, "Date:   %s %s\n\n", time.Unix(c.AuthorTime, 0).UTC().Format(time.ANSIC), c.AuthorTZ)
				fmt.Fprintf(out, "    %s\n", msg)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "max-count", "n", 50, "limit the number of commits shown")
	return cmd
}
