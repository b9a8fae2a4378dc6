package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	SetLevel("warn")
	defer SetLevel("info")

	InfoC("test", "hidden")
	WarnC("test", "visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info line logged at warn level")
	}
	if !strings.Contains(out, "visible") {
		t.Error("warn line missing at warn level")
	}
}

func TestFieldsSortedAndFormatted(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	SetLevel("info")

	InfoCF("telegram", "Update queued", map[string]interface{}{
		"zebra": 1,
		"alpha": "x",
	})

	out := buf.String()
	if !strings.Contains(out, "[telegram] Update queued") {
		t.Fatalf("unexpected log line: %q", out)
	}
	if strings.Index(out, "alpha=x") > strings.Index(out, "zebra=1") {
		t.Errorf("fields not sorted: %q", out)
	}
}
