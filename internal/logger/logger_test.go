package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want zapcore.Level
		err  bool
	}{
		{in: "debug", want: zapcore.DebugLevel},
		{in: "INFO", want: zapcore.InfoLevel},
		{in: "", want: zapcore.InfoLevel},
		{in: "Warn", want: zapcore.WarnLevel},
		{in: "error", want: zapcore.ErrorLevel},
		{in: "verbose", err: true},
	} {
		got, err := ParseLevel(tc.in)
		if tc.err {
			if err == nil {
				t.Errorf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
		} else if got != tc.want {
			t.Errorf("%q: got %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestConsoleLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("warn", FileConfig{}, zapcore.AddSync(&buf))
	if err != nil {
		t.Fatal(err)
	}
	l.Debug("hidden debug")
	l.Info("hidden info")
	l.Warn("shown warning", zap.Int("edges", 12))
	l.Error("shown error")
	_ = l.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below level were written:\n%s", out)
	}
	for _, want := range []string{"WARN", "shown warning", `"edges": 12`, "ERROR", "shown error"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q:\n%s", want, out)
		}
	}
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fastdc.log")
	cfg := DefaultFileConfig(path)
	cfg.Compress = false
	l, err := New("debug", cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	l.Debug("placed vertices", zap.Int("vertices", 42))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, data)
	}
	if entry["msg"] != "placed vertices" || entry["level"] != "debug" {
		t.Errorf("unexpected entry %v", entry)
	}
	if v, ok := entry["vertices"].(float64); !ok || v != 42 {
		t.Errorf("vertices field = %v, want 42", entry["vertices"])
	}
}

func TestInit(t *testing.T) {
	defer func(l *zap.Logger) { Log = l }(Log)
	if err := Init("bogus", ""); err == nil {
		t.Error("expected error for unknown level")
	}
	path := filepath.Join(t.TempDir(), "init.log")
	if err := Init("error", path); err != nil {
		t.Fatal(err)
	}
	if Log.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be disabled at error level")
	}
	if !Log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("error should be enabled at error level")
	}
	Sync()
}
