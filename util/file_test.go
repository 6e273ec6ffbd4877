package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAndAppend(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "nested", "out.txt")

	if err := WriteToFile(p, "a", "b"); err != nil {
		t.Fatal(err)
	}
	if err := AppendToFile(p, "c"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a\nb\nc\n" {
		t.Errorf("file content = %q", string(data))
	}
}
