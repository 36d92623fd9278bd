package main

import (
	"fmt"

	"github.com/odvcencio/gat/pkg/object"
	"github.com/odvcencio/gat/pkg/repo"
	"github.com/spf13/cobra"
)

func newCommitTreeCmd() *cobra.Command {
	var message string
	var parents []string
	var sign bool
	var signingKey string

	cmd := &cobra.Command{
		Use:   "commit-tree <tree>",
		Short: "Create a commit object from a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if message == "" {
				return fmt.Errorf("commit message is required (-m)")
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			var parentHashes []object.Hash
			for _, p := range parents {
				parentHashes = append(parentHashes, object.Hash(p))
			}

			var signer repo.CommitSigner
			if sign {
				keyPath := signingKey
				if keyPath == "" {
					cfg, err := r.ReadConfig()
					if err != nil {
						return err
					}
					keyPath = cfg.User.SigningKey
				}
				s, resolved, err := newSSHCommitSigner(keyPath)
				if err != nil {
					return err
				}
				signer = s
				fmt.Fprintf(cmd.ErrOrStderr(), "signing with %s\n", resolved)
			}

			_, h, err := r.BuildCommit(message, object.Hash(args[0]), parentHashes, signer)
			if err != nil {
				return err
			}
			if err := r.AdvanceHead(h); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().StringArrayVarP(&parents, "parent", "p", nil, "parent commit hash (repeatable)")
	cmd.Flags().BoolVarP(&sign, "sign", "S", false, "sign the commit with an SSH key")
	cmd.Flags().StringVar(&signingKey, "signing-key", "", "path to SSH private key (default: config, then ~/.ssh)")
	return cmd
}
