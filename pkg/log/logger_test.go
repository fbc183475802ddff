package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	pkgerrors "github.com/YuminosukeSato/lsq/pkg/errors"
	"github.com/rs/zerolog"
)

// TestLoggerInterface tests the TestLogger capture
func TestLoggerInterface(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", OperationKey, OperationFit)
	testLogger.Warn("warning message", ErrorCodeKey, ErrorSingularMatrix)
	testLogger.Error("error message", fmt.Errorf("test error"), ErrorCodeKey, ErrorNotFitted)

	if buffer.String() == "" {
		t.Fatal("Expected log output, got empty string")
	}

	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		if !testLogger.ContainsMessage(msg) {
			t.Errorf("%q not found in output", msg)
		}
	}

	if !testLogger.ContainsField("key1", "value1") {
		t.Error("Expected field key1=value1 not found")
	}

	if !testLogger.ContainsField("number", 42.0) { // JSON unmarshaling converts numbers to float64
		t.Error("Expected field number=42 not found")
	}

	if !testLogger.ContainsField(ErrAttrKey, "test error") {
		t.Error("Expected leading error to be stored under the error key")
	}
}

// TestLoggerWith tests the With method for context-aware logging
func TestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(
		ModelNameKey, "LeastSquares",
		ComponentKey, "linear",
	)

	contextLogger.Info("fit completed", OperationKey, OperationFit, SamplesKey, 5)

	if !testLogger.ContainsField(ModelNameKey, "LeastSquares") {
		t.Error("Model name context not found")
	}
	if !testLogger.ContainsField(ComponentKey, "linear") {
		t.Error("Component context not found")
	}
	if !testLogger.ContainsField(SamplesKey, 5.0) {
		t.Error("Samples field not found")
	}
}

// TestLoggerEnabled tests the Enabled method
func TestLoggerEnabled(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	if !testLogger.Enabled(ctx, LevelInfo) {
		t.Error("Logger should be enabled for Info level")
	}
	if testLogger.Enabled(ctx, LevelDebug) {
		t.Error("Logger should not be enabled for Debug level")
	}

	testLogger.Debug("this should not appear")
	testLogger.Info("this should appear")

	if testLogger.ContainsMessage("this should not appear") {
		t.Error("Debug message should not appear when level is Info")
	}
	if !testLogger.ContainsMessage("this should appear") {
		t.Error("Info message should appear when level is Info")
	}
}

func TestToLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ToLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ToLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSetupLogger(t *testing.T) {
	defer SetLogger(nil)
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	if err := SetupLogger(&buf, "info"); err != nil {
		t.Fatalf("SetupLogger: %v", err)
	}

	err := pkgerrors.NewNotFittedError("LeastSquares", "Predict")
	GetLogger().Error("predict failed", err, ErrorCodeKey, ErrorNotFitted)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", buf.String(), err)
	}
	if entry["message"] != "predict failed" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["severity"] != "ERROR" {
		t.Errorf("severity = %v", entry["severity"])
	}
	if entry[ErrorCodeKey] != ErrorNotFitted {
		t.Errorf("%s = %v", ErrorCodeKey, entry[ErrorCodeKey])
	}
	if s, _ := entry[StacktraceAttrKey].(string); s == "" {
		t.Error("expected stacktrace attribute for cockroachdb error")
	}
}

func TestSetupLogger_InvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := SetupLogger(&buf, "loud"); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelInfo).With(ModelNameKey, "LeastSquares")

	logger.Debug("hidden")
	logger.Info("fit completed", SamplesKey, 5, R2ScoreKey, 0.99)
	logger.Error("fit failed", pkgerrors.NewDimensionError("LeastSquares.Fit", 5, 4, pkgerrors.AxisElements))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug record should be filtered at info level")
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %s", len(lines), out)
	}

	var info map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &info); err != nil {
		t.Fatal(err)
	}
	if info[ModelNameKey] != "LeastSquares" || info[SamplesKey] != 5.0 {
		t.Errorf("unexpected info record: %v", info)
	}

	var errRec map[string]interface{}
	if err := json.Unmarshal([]byte(lines[1]), &errRec); err != nil {
		t.Fatal(err)
	}
	detail, ok := errRec["error_detail"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error_detail object, got %v", errRec)
	}
	if detail["type"] != "DimensionError" {
		t.Errorf("error_detail.type = %v", detail["type"])
	}

	if !logger.Enabled(context.Background(), LevelWarn) {
		t.Error("warn should be enabled")
	}
	if logger.Enabled(context.Background(), LevelDebug) {
		t.Error("debug should be disabled")
	}
}

func TestEnableZerologWarnings(t *testing.T) {
	var buf bytes.Buffer
	EnableZerologWarnings(zerolog.New(&buf))
	defer pkgerrors.SetZerologWarnFunc(nil)

	pkgerrors.Warn(pkgerrors.NewUndefinedMetricWarning("r2_score", "zero total sum of squares", 1))

	if !strings.Contains(buf.String(), `"metric":"r2_score"`) {
		t.Errorf("expected structured warning, got %s", buf.String())
	}
}
