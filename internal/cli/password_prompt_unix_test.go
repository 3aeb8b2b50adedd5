//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import (
	"bytes"
	"os"
	"testing"
)

func TestPromptPasswordReadsPipedFileWithoutTerminal(t *testing.T) {
	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("create pipe: %v", err)
	}
	t.Cleanup(func() { _ = reader.Close() })

	if _, err := writer.WriteString("PipePass42\nPipePass42\n"); err != nil {
		t.Fatalf("write pipe: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close pipe writer: %v", err)
	}

	password, err := PromptPassword(reader, &bytes.Buffer{})()
	if err != nil {
		t.Fatalf("PromptPassword on a pipe: %v", err)
	}
	if password != "PipePass42" {
		t.Fatalf("expected PipePass42, got %q", password)
	}
}
