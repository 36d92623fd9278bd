package main

import (
	"fmt"

	"github.com/odvcencio/gat/pkg/object"
	"github.com/odvcencio/gat/pkg/repo"
	"github.com/spf13/cobra"
)

func newCatFileCmd() *cobra.Command {
	var showType bool
	var showSize bool
	var pretty bool

	cmd := &cobra.Command{
		Use:   "cat-file <hash>",
		Short: "Show an object's type, size, or content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !showType && !showSize && !pretty {
				return fmt.Errorf("one of -t, -s, -p is required")
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			objType, payload, err := r.Store.Read(object.Hash(args[0]))
			if err != nil {
				return err
			}

			switch {
			case showType:
				fmt.Fprintln(cmd.OutOrStdout(), object.RenderType(objType))
			case showSize:
				fmt.Fprintln(cmd.OutOrStdout(), object.RenderSize(payload))
			default:
				out, err := object.RenderObject(objType, payload)
				if err != nil {
					return err
				}
				cmd.OutOrStdout().Write(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showType, "type", "t", false, "print the object type")
	cmd.Flags().BoolVarP(&showSize, "size", "s", false, "print the payload size")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "pretty-print the payload")
	return cmd
}
