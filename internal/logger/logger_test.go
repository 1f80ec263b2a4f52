package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	log := New()
	if log.GetLevel() != zerolog.InfoLevel {
		t.Errorf("Expected info level, got %v", log.GetLevel())
	}
}

func TestNewWithOptions_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithOptions(Options{Level: "debug", Format: FormatJSON, Out: buf})

	log.Debug().Str("table", "clients").Msg("fetched")

	output := buf.String()
	if !strings.HasPrefix(output, "{") {
		t.Errorf("Expected JSON output, got: %s", output)
	}
	if !strings.Contains(output, `"table":"clients"`) {
		t.Errorf("Expected table field, got: %s", output)
	}
}

func TestNewWithOptions_LevelFilters(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithOptions(Options{Level: "warn", Format: FormatJSON, Out: buf})

	log.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected info to be filtered at warn level, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"nonsense", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	testLog := NewWithWriter(buf)
	ctx := WithContext(context.Background(), testLog)

	retrievedLog := FromContext(ctx)
	retrievedLog.Info().Msg("test")

	if buf.Len() == 0 {
		t.Error("Expected log output from retrieved logger")
	}
}

func TestFromContext_DefaultLogger(t *testing.T) {
	log := FromContext(context.Background())
	if log.GetLevel() == zerolog.Disabled {
		t.Error("Expected default logger to be enabled")
	}
}

func TestWithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := WithFields(NewWithWriter(buf), map[string]interface{}{
		"cycle_id": "abc",
	})
	log.Info().Msg("loaded")

	if !strings.Contains(buf.String(), `"cycle_id":"abc"`) {
		t.Errorf("Expected cycle_id field, got: %s", buf.String())
	}
}

func TestComponent(t *testing.T) {
	buf := &bytes.Buffer{}
	log := Component(NewWithWriter(buf), "loader")
	log.Info().Msg("x")

	if !strings.Contains(buf.String(), `"component":"loader"`) {
		t.Errorf("Expected component field, got: %s", buf.String())
	}
}
