package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func decodeLines(t *testing.T, b []byte) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("unmarshal %q: %v", line, err)
		}
		delete(m, "time")
		out = append(out, m)
	}
	return out
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	l, c, err := New(&buf, Options{Level: "info", Format: "json"})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	l.Debug("hidden")
	l.With("edge", "a->b").Info("shaved", slog.Float64("t0", 0.25))

	want := []map[string]any{{
		"level": "INFO",
		"msg":   "shaved",
		"app":   "xyedge",
		"edge":  "a->b",
		"t0":    0.25,
	}}
	if d := cmp.Diff(want, decodeLines(t, buf.Bytes())); d != "" {
		t.Error(d)
	}
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	l, _, err := New(&buf, Options{Level: "warn"})
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hidden")
	l.Warn("edge skipped", "edge", "a")
	got := buf.String()
	for _, want := range []string{"level=WARN", `msg="edge skipped"`, "edge=a", "app=xyedge"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q lacks %q", got, want)
		}
	}
	if strings.Contains(got, "hidden") {
		t.Errorf("output %q contains a filtered record", got)
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xyedge.log")
	var buf bytes.Buffer
	l, c, err := New(&buf, Options{Level: "debug", File: path})
	if err != nil {
		t.Fatal(err)
	}
	l.Debug("layout", "edges", 3)
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []map[string]any{{
		"level": "DEBUG",
		"msg":   "layout",
		"app":   "xyedge",
		"edges": 3.0,
	}}
	if d := cmp.Diff(want, decodeLines(t, b)); d != "" {
		t.Error(d)
	}
	if !strings.Contains(buf.String(), "msg=layout") {
		t.Errorf("console output %q lacks the record", buf.String())
	}
}

func TestInvalidOptions(t *testing.T) {
	for _, opts := range []Options{{Level: "loud"}, {Format: "xml"}} {
		if _, _, err := New(&bytes.Buffer{}, opts); err == nil {
			t.Errorf("%+v: expected an error", opts)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("%q: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("%q: got %v, want %v", in, got, want)
		}
	}
}

func TestFromEnvOverride(t *testing.T) {
	t.Setenv("XYEDGE_LOG_LEVEL", "debug")
	t.Setenv("XYEDGE_LOG_FORMAT", "json")
	t.Setenv("XYEDGE_LOG_FILE", "")
	t.Setenv("XYEDGE_LOG_SOURCE", "TRUE")

	got := FromEnv().Override(Options{Format: "console", File: "out.log"})
	want := Options{Level: "debug", Format: "console", AddSource: true, File: "out.log"}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}
