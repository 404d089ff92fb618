package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entrywatch.yaml")

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init-config", "--config", path})

	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "data_dir:") {
		t.Errorf("config template missing expected content:\n%s", data)
	}

	// A second run must refuse to overwrite.
	cmd = NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init-config", "--config", path})
	if err := cmd.Execute(); err == nil {
		t.Error("expected an error when the config file already exists")
	}
}

func TestCalendarCommand(t *testing.T) {
	tmp := t.TempDir()
	outPath := filepath.Join(tmp, "events.ics")

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"calendar",
		"--config", filepath.Join(tmp, "missing.yaml"),
		"--data-dir", filepath.Join(tmp, "data"),
		"-o", outPath,
	})

	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "BEGIN:VCALENDAR") {
		t.Errorf("unexpected calendar output:\n%s", data)
	}
}
