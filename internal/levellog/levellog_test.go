package levellog

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestWriterFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, WARN, "", 0)

	logger.Println("D! this should be dropped")
	logger.Println("W! this should appear")
	logger.Println("E! this should appear too")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("expected DEBUG line to be filtered, got: %q", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Fatalf("expected WARN/ERROR lines to pass through, got: %q", out)
	}
}

func TestWriterPassesAllAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, DEBUG, "", 0)
	logger.Println("D! visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected DEBUG line at DEBUG level, got: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		name    string
		want    Level
		wantErr bool
	}{
		{"debug", DEBUG, false},
		{"INFO", INFO, false},
		{"Warn", WARN, false},
		{"error", ERROR, false},
		{"off", OFF, false},
		{"bogus", 0, true},
	}
	for _, c := range cases {
		got, err := ParseLevel(c.name)
		if c.wantErr {
			if err == nil {
				t.Fatalf("ParseLevel(%q): expected error", c.name)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseLevel(%q): unexpected error: %v", c.name, err)
		}
		if got != c.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestInvalidPrefixPassesThroughMarked(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, INFO)
	l := log.New(w, "", 0)
	l.Println("no level prefix here")
	if !strings.Contains(buf.String(), "missing 'L!' level prefix") {
		t.Fatalf("expected invalid-prefix marker, got: %q", buf.String())
	}
}
