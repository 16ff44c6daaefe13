package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/growthml/leadconv/pkg/errors"
)

func TestZerologProviderEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	p := NewZerologProvider(&buf, LevelInfo)

	logger := p.GetLoggerWithName("generator")
	logger.Info("dataset generated", SamplesKey, 100, ConversionRateKey, 0.42)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if entry["message"] != "dataset generated" {
		t.Errorf("message = %v, want dataset generated", entry["message"])
	}
	if entry[ComponentKey] != "generator" {
		t.Errorf("%s = %v, want generator", ComponentKey, entry[ComponentKey])
	}
	if entry[SamplesKey] != float64(100) {
		t.Errorf("%s = %v, want 100", SamplesKey, entry[SamplesKey])
	}
}

func TestZerologProviderLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	p := NewZerologProvider(&buf, LevelWarn)

	logger := p.GetLogger()
	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record emitted below the warn threshold")
	}
	if !strings.Contains(out, "visible") {
		t.Error("warn record missing")
	}
}

func TestZerologErrorRecordsStacktrace(t *testing.T) {
	var buf bytes.Buffer
	p := NewZerologProvider(&buf, LevelInfo)

	err := errors.NewNotFittedError("GBMClassifier", "Predict")
	p.GetLogger().Error("fit failed", err)

	var entry map[string]interface{}
	if jsonErr := json.Unmarshal(buf.Bytes(), &entry); jsonErr != nil {
		t.Fatalf("output is not valid JSON: %v", jsonErr)
	}
	if _, ok := entry[ErrAttrKey]; !ok {
		t.Errorf("error record missing %q field: %s", ErrAttrKey, buf.String())
	}
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	p := NewZerologProvider(&buf, LevelInfo)

	logger := p.GetLogger().With(ModelNameKey, "Gradient Boosting")
	logger.Info("model evaluated", ROCAUCKey, 0.91)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry[ModelNameKey] != "Gradient Boosting" {
		t.Errorf("%s = %v, want Gradient Boosting", ModelNameKey, entry[ModelNameKey])
	}
	if entry[ROCAUCKey] != 0.91 {
		t.Errorf("%s = %v, want 0.91", ROCAUCKey, entry[ROCAUCKey])
	}
}

func TestToLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"info", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ToLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ToLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ToLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTestLogger(t *testing.T) {
	logger, _ := NewTestLogger(LevelDebug)
	logger.Info("dataset generated", SamplesKey, 10)
	logger.Debug("sampling column", "column", "rating")

	if !logger.ContainsMessage("dataset generated") {
		t.Error("ContainsMessage() missed an emitted record")
	}

	entries, err := logger.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Entries() returned %d records, want 2", len(entries))
	}
	if entries[0][SamplesKey] != float64(10) {
		t.Errorf("first entry %s = %v, want 10", SamplesKey, entries[0][SamplesKey])
	}
}

func TestTestLoggerLevelFilter(t *testing.T) {
	logger, buf := NewTestLogger(LevelWarn)
	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Error("kept")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("records below the threshold were written")
	}
	if !logger.ContainsMessage("kept") {
		t.Error("error record missing")
	}
}

func TestTestLoggerEnabled(t *testing.T) {
	logger, _ := NewTestLogger(LevelInfo)
	if logger.Enabled(context.Background(), LevelDebug) {
		t.Error("Enabled(debug) = true at info threshold")
	}
	if !logger.Enabled(context.Background(), LevelError) {
		t.Error("Enabled(error) = false at info threshold")
	}
}

func TestProviderSwap(t *testing.T) {
	original := provider
	defer SetProvider(original)

	testProvider, buf := NewTestLoggerProvider(LevelInfo)
	SetProvider(testProvider)

	GetLoggerWithName("evaluation").Info("comparison finished")
	if !strings.Contains(buf.String(), "comparison finished") {
		t.Error("swapped provider did not receive the record")
	}
}
