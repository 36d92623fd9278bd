package main

import (
	"fmt"

	"github.com/odvcencio/gat/pkg/object"
	"github.com/odvcencio/gat/pkg/repo"
	"github.com/spf13/cobra"
)

func newVerifyCommitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-commit <hash>",
		Short: "Verify the SSH signature on a commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			c, err := r.Store.ReadCommit(object.Hash(args[0]))
			if err != nil {
				return err
			}
			if c.Signature == "" {
				return fmt.Errorf("commit %s is not signed", args[0])
			}

			pub, err := verifyCommitSignature(c.Signature, object.CommitSigningPayload(c))
			if err != nil {
				return fmt.Errorf("verify commit %s: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "good signature on %s (%s key)\n", args[0], pub.Type())
			return nil
		},
	}
}
