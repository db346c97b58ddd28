package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestSetVersion(t *testing.T) {
	originalVersion := rootCmd.Version
	defer func() { rootCmd.Version = originalVersion }()

	testVersion := "1.2.3-test"
	SetVersion(testVersion)

	if rootCmd.Version != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, rootCmd.Version)
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "f2bsentinel" {
		t.Errorf("Expected Use to be 'f2bsentinel', got %s", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}

	if rootCmd.Long == "" {
		t.Error("Expected Long description to be set")
	}

	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}

	if rootCmd.RunE == nil {
		t.Error("Expected the root command to start the dashboard")
	}
}

func TestSubcommands(t *testing.T) {
	want := []string{"ban", "dashboard", "mcp", "self-update", "status", "unban", "version"}
	got := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		got[c.Name()] = true
	}
	for _, name := range want {
		if !got[name] {
			t.Errorf("Expected subcommand %q to be registered", name)
		}
	}
}

func TestVersionTemplate(t *testing.T) {
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}
	testCmd.SetVersionTemplate(`{{printf "f2bsentinel version %s\n" .Version}}`)

	var buf bytes.Buffer
	testCmd.SetOut(&buf)
	testCmd.SetArgs([]string{"--version"})

	if err := testCmd.Execute(); err != nil {
		t.Fatalf("Error executing command: %v", err)
	}

	expected := "f2bsentinel version 1.0.0\n"
	if buf.String() != expected {
		t.Errorf("Expected version output %q, got %q", expected, buf.String())
	}
}

func TestVersionCommand(t *testing.T) {
	originalVersion := rootCmd.Version
	defer func() { rootCmd.Version = originalVersion }()
	rootCmd.Version = "0.4.2"

	versionCmd := newVersionCmd()
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.SetArgs([]string{})

	if err := versionCmd.Execute(); err != nil {
		t.Fatalf("Error executing version: %v", err)
	}
	if !strings.Contains(buf.String(), "f2bsentinel version 0.4.2") {
		t.Errorf("Unexpected version output: %q", buf.String())
	}
}
