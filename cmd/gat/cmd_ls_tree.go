package main

import (
	"fmt"

	"github.com/odvcencio/gat/pkg/object"
	"github.com/odvcencio/gat/pkg/repo"
	"github.com/spf13/cobra"
)

func newLsTreeCmd() *cobra.Command {
	var nameOnly bool

	cmd := &cobra.Command{
		Use:   "ls-tree <hash>",
		Short: "List the entries of a tree object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			tr, err := r.Store.ReadTree(object.Hash(args[0]))
			if err != nil {
				return err
			}

			if nameOnly {
				fmt.Fprint(cmd.OutOrStdout(), object.RenderTreeNames(tr))
			} else {
				fmt.Fprint(cmd.OutOrStdout(), object.RenderTree(tr))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&nameOnly, "name-only", false, "list entry names only")
	return cmd
}
