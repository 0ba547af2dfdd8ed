package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/testutil"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"chatty", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			testutil.AssertEqual(t, ParseLevel(tt.in), tt.want)
		})
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "athensplus.log")
	cfg := DefaultConfig(path)
	cfg.Compress = false

	log, closer, err := New(cfg)
	testutil.AssertNil(t, err)

	log.Info().Str("station", "Omonia").Msg("Timetable resolved")
	log.Debug().Msg("below level")
	testutil.AssertNil(t, closer.Close())

	data, err := os.ReadFile(path)
	testutil.AssertNil(t, err)
	testutil.AssertContains(t, string(data), `"station":"Omonia"`)
	testutil.AssertContains(t, string(data), `"app":"athensplus"`)
	testutil.AssertNotContains(t, string(data), "below level")
}

func TestNew_NoWriters(t *testing.T) {
	log, closer, err := New(Config{Level: zerolog.DebugLevel})
	testutil.AssertNil(t, err)
	testutil.AssertNil(t, closer.Close())
	testutil.AssertEqual(t, log.GetLevel(), zerolog.Disabled)
}
