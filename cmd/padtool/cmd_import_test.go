package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vectorpad/vectorpad/engine-go/internal/document"
)

func writeTestDocument(t *testing.T, dir string, doc *document.Document) string {
	t.Helper()
	data, err := doc.MarshalIndent()
	if err != nil {
		t.Fatalf("MarshalIndent: %v", err)
	}
	path := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func readTestDocument(t *testing.T, path string) *document.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	doc, err := document.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestImportCmdAppendsShapes(t *testing.T) {
	dir := t.TempDir()
	docPath := writeTestDocument(t, dir, document.NewEmptyDocument("import target"))

	callsPath := filepath.Join(dir, "calls.txt")
	script := "fill(#ff0000)\nrect(10, 10, 40, 40)\ncircle(100, 100, 30)\nwobble(1)\n"
	if err := os.WriteFile(callsPath, []byte(script), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	outPath := filepath.Join(dir, "out.json")
	var errOut bytes.Buffer
	cmd := newImportCmd()
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{docPath, callsPath, "-o", outPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	doc := readTestDocument(t, outPath)
	if doc.CountEntities() != 2 {
		t.Errorf("entities = %d, want 2", doc.CountEntities())
	}
	if doc.Entities[0].Fill == nil || *doc.Entities[0].Fill != "#ff0000" {
		t.Errorf("imported fill = %v, want #ff0000", doc.Entities[0].Fill)
	}
	if !strings.Contains(errOut.String(), "imported 2 shapes, skipped 1") {
		t.Errorf("summary = %q, want import counts", errOut.String())
	}
}

func TestImportCmdRejectsUnusableScript(t *testing.T) {
	dir := t.TempDir()
	docPath := writeTestDocument(t, dir, document.NewEmptyDocument("import target"))

	callsPath := filepath.Join(dir, "calls.txt")
	if err := os.WriteFile(callsPath, []byte("nothing here\nat all\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cmd := newImportCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{docPath, callsPath})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for a script with no draw calls")
	}
}
