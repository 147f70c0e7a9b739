package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWarnfAlwaysWrites(t *testing.T) {
	dir := t.TempDir()
	Setup(dir, false)

	Warnf("something odd about %s", "pic.png")

	data, err := os.ReadFile(filepath.Join(dir, "dost.log"))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "WARN something odd about pic.png") {
		t.Errorf("log content = %q", data)
	}
}

func TestDebugfGatedByVerbose(t *testing.T) {
	dir := t.TempDir()
	Setup(dir, false)

	Debugf("hidden %d", 1)

	if _, err := os.Stat(filepath.Join(dir, "dost.log")); err == nil {
		data, _ := os.ReadFile(filepath.Join(dir, "dost.log"))
		if strings.Contains(string(data), "hidden") {
			t.Error("Debugf wrote despite verbose being off")
		}
	}

	Setup(dir, true)
	Debugf("traced %d", 2)

	data, err := os.ReadFile(filepath.Join(dir, "dost.log"))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "DEBUG traced 2") {
		t.Errorf("log content = %q", data)
	}
}
