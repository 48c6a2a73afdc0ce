package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vectorpad/vectorpad/engine-go/internal/editor"
)

func newUnionCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "union <document.json> <shape-id> <shape-id>",
		Short: "Replace two shapes with their polygon union",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			sc, err := doc.Scene()
			if err != nil {
				return err
			}
			for _, id := range args[1:] {
				if sc.Find(id) == nil {
					return fmt.Errorf("no entity %q in %s", id, args[0])
				}
			}

			ed := editor.New(sc, nil)
			ed.Selection().Set(args[1], args[2])
			merged, ok := ed.UnionSelection()
			if !ok {
				return fmt.Errorf("shapes %s and %s do not union (closed, overlapping outlines required)", args[1], args[2])
			}
			doc.SetScene(ed.Scene())

			if err := writeDocument(cmd, doc, outPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "merged into %s\n", merged.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "write the updated document here (\"-\" for stdout)")

	return cmd
}
