package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"social-system/config"

	"go.uber.org/zap"
)

func TestInitLogger_WritesJSONToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "app.log")
	InitLogger(config.LogConfig{Level: "warn", Filename: file, MaxSize: 1})
	t.Cleanup(func() { SetLogger(nil) })

	Info("不应写入")
	Warn("关注请求处理失败", zap.String("request_id", "r1"))
	_ = Sync()

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "不应写入") {
		t.Fatal("info entry should be filtered at warn level")
	}
	if !strings.Contains(out, `"request_id":"r1"`) || !strings.Contains(out, `"level":"WARN"`) {
		t.Fatalf("unexpected log output %q", out)
	}
}

func TestInitLogger_CallerPointsAtCallSite(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	direct := InitLogger(config.LogConfig{Level: "info", Filename: file, MaxSize: 1})
	t.Cleanup(func() { SetLogger(nil) })

	direct.Info("direct")
	Info("helper")
	_ = Sync()

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 entries, got %d: %q", len(lines), data)
	}
	for _, line := range lines {
		var entry struct {
			Msg    string `json:"msg"`
			Caller string `json:"caller"`
		}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid json line %q: %v", line, err)
		}
		if !strings.HasPrefix(entry.Caller, "logger/logger_test.go:") {
			t.Fatalf("%s: caller %q should point at this test", entry.Msg, entry.Caller)
		}
	}
}

func TestPackageHelpersBeforeInit(t *testing.T) {
	SetLogger(nil)
	Debug("noop")
	Error("noop", zap.Error(os.ErrNotExist))
	if L() == nil {
		t.Fatal("logger should never be nil")
	}
}
