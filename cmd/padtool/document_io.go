package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vectorpad/vectorpad/engine-go/internal/document"
)

func loadDocument(path string) (*document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := document.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// writeDocument emits the document to outPath, or to the command's
// stdout when outPath is "-".
func writeDocument(cmd *cobra.Command, doc *document.Document, outPath string) error {
	data, err := doc.MarshalIndent()
	if err != nil {
		return err
	}
	if outPath == "-" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	return os.WriteFile(outPath, append(data, '\n'), 0o644)
}
