package main

import (
	"fmt"
	"io"
	"os"

	"github.com/odvcencio/gat/pkg/object"
	"github.com/odvcencio/gat/pkg/repo"
	"github.com/spf13/cobra"
)

func newHashObjectCmd() *cobra.Command {
	var write bool
	var objType string
	var useStdin bool

	cmd := &cobra.Command{
		Use:   "hash-object [file]",
		Short: "Compute an object identifier, optionally writing the object",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			switch {
			case useStdin:
				data, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			case len(args) == 1:
				data, err = os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read %s: %w", args[0], err)
				}
			default:
				return fmt.Errorf("a file argument or --stdin is required")
			}

			kind := object.ObjectType(objType)
			switch kind {
			case object.TypeBlob, object.TypeTree, object.TypeCommit:
			default:
				return fmt.Errorf("unknown object type %q", objType)
			}

			h := object.HashObject(kind, data)
			if write {
				r, err := repo.Open(".")
				if err != nil {
					return err
				}
				if h, err = r.Store.Write(kind, data); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the object into the store")
	cmd.Flags().StringVarP(&objType, "type", "t", "blob", "object type")
	cmd.Flags().BoolVar(&useStdin, "stdin", false, "read content from stdin")
	return cmd
}
