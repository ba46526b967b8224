package obs

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestStd_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := Std{L: log.New(&buf, "", 0), Min: Info}

	logger.Logf(Debug, "dropped %d", 1)
	logger.Logf(Info, "kept %d", 2)
	logger.Logf(Error, "kept %d", 3)

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("output = %q, debug line should be filtered", out)
	}
	if !strings.Contains(out, "[INFO] kept 2") || !strings.Contains(out, "[ERROR] kept 3") {
		t.Errorf("output = %q, want tagged info and error lines", out)
	}
}

func TestStd_NilLogger(t *testing.T) {
	// Must not panic.
	Std{}.Logf(Error, "ignored")
}

func TestLevel_String(t *testing.T) {
	if Debug.String() != "DEBUG" || Info.String() != "INFO" || Error.String() != "ERROR" {
		t.Error("level names mismatch")
	}
	if Level(42).String() != "UNKNOWN" {
		t.Errorf("Level(42).String() = %q, want UNKNOWN", Level(42).String())
	}
}
