package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestRunBuild_EndToEnd(t *testing.T) {
	root := t.TempDir()
	ipDir := filepath.Join(root, "gates", "0.1.0")
	if err := os.MkdirAll(ipDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	manifest := `[ip]
name = "gates"
version = "0.1.0"
`
	if err := os.WriteFile(filepath.Join(ipDir, "manifest.toml"), []byte(manifest), 0644); err != nil {
		t.Fatalf("WriteFile(manifest) error = %v", err)
	}

	vhdlSrc := `entity fa is
  port (a, b : in bit; s : out bit);
end entity;

architecture rtl of fa is
begin
end architecture;
`
	if err := os.WriteFile(filepath.Join(ipDir, "fa.vhd"), []byte(vhdlSrc), 0644); err != nil {
		t.Fatalf("WriteFile(fa.vhd) error = %v", err)
	}

	code := run(context.Background(), []string{"hdlpm", "build", root})
	if code != exitOK {
		t.Fatalf("run() = %d, want %d", code, exitOK)
	}
}

func TestRunBuild_UnknownSubcommand(t *testing.T) {
	code := run(context.Background(), []string{"hdlpm", "frobnicate"})
	if code != exitUsage {
		t.Fatalf("run() = %d, want %d", code, exitUsage)
	}
}

func TestRunBuild_MissingRoot(t *testing.T) {
	code := run(context.Background(), []string{"hdlpm", "build"})
	if code != exitUsage {
		t.Fatalf("run() = %d, want %d", code, exitUsage)
	}
}
