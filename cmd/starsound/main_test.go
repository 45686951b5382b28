package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	output, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(output, target) {
		t.Fatalf("output missing target path: %q", output)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample not written: %v", err)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error without --overwrite")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}

func TestConfigShowPrintsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	output, err := runCommand(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"Workspace:", "ffmpeg:", "Bitrate:", "192k"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %s", want, output)
		}
	}
}

func TestBiomesListsEmbeddedCatalog(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	output, err := runCommand(t, "biomes", "--category", "surface")
	if err != nil {
		t.Fatalf("biomes: %v", err)
	}
	if !strings.Contains(output, "forest") {
		t.Fatalf("expected forest biome in output: %s", output)
	}
	if strings.Contains(output, "underground") {
		t.Fatalf("category filter leaked other categories: %s", output)
	}
}

func TestPrefsRoundTripThroughCLI(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if _, err := runCommand(t, "prefs", "set", "last_patch_mode", "replace"); err != nil {
		t.Fatalf("prefs set: %v", err)
	}
	output, err := runCommand(t, "prefs", "get", "last_patch_mode")
	if err != nil {
		t.Fatalf("prefs get: %v", err)
	}
	if strings.TrimSpace(output) != "replace" {
		t.Fatalf("unexpected value: %q", output)
	}

	if _, err := runCommand(t, "prefs", "set", "theme", "dark"); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestBuildRequiresInputsOrProject(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if _, err := runCommand(t, "build"); err == nil {
		t.Fatal("expected error without inputs or project")
	}
}

func TestBuildRejectsReplaceWithoutProject(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := runCommand(t, "build", "song.mp3", "--mode", "replace", "--biome", "surface/forest", "--out", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "--project") {
		t.Fatalf("expected replace mode to demand a project, got %v", err)
	}
}
