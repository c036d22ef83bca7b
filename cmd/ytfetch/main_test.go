package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ytget/ytfetch/internal/cli"
)

func TestVersionFlag(t *testing.T) {
	if version == "" {
		t.Fatal("builds without -ldflags need a default version")
	}

	out := &bytes.Buffer{}
	cmd := cli.NewRootCommand(&cli.App{Printer: cli.NewPrinter(out, false), Version: version})
	cmd.SetArgs([]string{"--version"})
	cmd.SetOut(out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if !strings.Contains(out.String(), "ytfetch version "+version) {
		t.Errorf("unexpected version output %q", out.String())
	}
}
