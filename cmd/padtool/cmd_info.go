package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <document.json>",
		Short: "Print a document summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			shapes, groups := 0, 0
			countRecords(doc.Entities, &shapes, &groups)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:         %s\n", doc.ID)
			fmt.Fprintf(out, "name:       %s\n", doc.Name)
			fmt.Fprintf(out, "canvas:     %g x %g\n", doc.Width, doc.Height)
			fmt.Fprintf(out, "background: %s\n", doc.Background)
			if doc.UpdatedAt != "" {
				fmt.Fprintf(out, "updated:    %s\n", doc.UpdatedAt)
			}
			fmt.Fprintf(out, "entities:   %d (%d shapes, %d groups)\n",
				doc.CountEntities(), shapes, groups)
			return nil
		},
	}
}

func countRecords(recs []scene.EntityRecord, shapes, groups *int) {
	for _, rec := range recs {
		switch rec.Type {
		case scene.TypeGroup:
			*groups++
		default:
			*shapes++
		}
		countRecords(rec.Children, shapes, groups)
	}
}
