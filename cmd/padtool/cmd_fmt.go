package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newFmtCmd() *cobra.Command {
	var write bool
	var compact bool

	cmd := &cobra.Command{
		Use:   "fmt <document.json>",
		Short: "Reserialize a document in canonical field order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			var data []byte
			if compact {
				data, err = doc.Marshal()
			} else {
				data, err = doc.MarshalIndent()
			}
			if err != nil {
				return err
			}

			if write {
				return os.WriteFile(args[0], append(data, '\n'), 0o644)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file in place instead of printing")
	cmd.Flags().BoolVar(&compact, "compact", false, "emit compact JSON, as the server stores it")

	return cmd
}
