package main

import (
	"fmt"

	"github.com/odvcencio/gat/pkg/repo"
	"github.com/spf13/cobra"
)

func newWriteTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write-tree [path]",
		Short: "Build a tree object from a directory and write it to the store",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			dir := r.RootDir
			if len(args) > 0 {
				dir = args[0]
			}

			tr, h, err := r.BuildTreeFromDirectory(dir)
			if err != nil {
				return err
			}
			// Children persisted during the build; the root is the explicit
			// final write.
			if _, err := r.Store.Persist(tr); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
}
