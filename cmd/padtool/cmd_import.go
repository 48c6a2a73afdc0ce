package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vectorpad/vectorpad/engine-go/internal/editor"
	"github.com/vectorpad/vectorpad/engine-go/internal/importer"
)

func newImportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "import <document.json> <calls.txt>",
		Short: "Append shapes recovered from draw-call text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			text, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}

			res := importer.Parse(string(text))
			if len(res.Shapes) == 0 {
				return fmt.Errorf("%s: no recognizable draw calls (%d lines skipped)", args[1], res.Skipped)
			}

			sc, err := doc.Scene()
			if err != nil {
				return err
			}
			ed := editor.New(sc, nil)
			added := ed.AppendShapes(res.Shapes)
			doc.SetScene(ed.Scene())

			if err := writeDocument(cmd, doc, outPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "imported %d shapes, skipped %d lines\n", added, res.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "write the updated document here (\"-\" for stdout)")

	return cmd
}
