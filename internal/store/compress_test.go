package store

import (
	"bytes"
	"testing"
)

func TestSnapshotCompressionRoundTrip(t *testing.T) {
	original := bytes.Repeat([]byte(`{"id":"shape_x","commands":[{"kind":"rect"}]}`), 50)
	compressed, err := compressZstd(original)
	if err != nil {
		t.Fatalf("compressZstd: %v", err)
	}
	if len(compressed) >= len(original) {
		t.Errorf("compressed %d >= original %d", len(compressed), len(original))
	}

	decompressed, err := decompressZstd(compressed)
	if err != nil {
		t.Fatalf("decompressZstd: %v", err)
	}
	if !bytes.Equal(decompressed, original) {
		t.Fatal("round-trip mismatch")
	}
}

func TestSnapshotCompressionEmptyPayload(t *testing.T) {
	compressed, err := compressZstd(nil)
	if err != nil {
		t.Fatalf("compressZstd(nil): %v", err)
	}
	decompressed, err := decompressZstd(compressed)
	if err != nil {
		t.Fatalf("decompressZstd: %v", err)
	}
	if len(decompressed) != 0 {
		t.Fatalf("expected empty, got %d bytes", len(decompressed))
	}
}
