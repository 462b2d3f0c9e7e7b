package logging_test

import (
	"log/slog"
	"testing"

	"docpress/pkg/logging"
)

func TestLevelValidate(t *testing.T) {
	tests := []struct {
		level   logging.Level
		wantErr bool
	}{
		{logging.LevelDebug, false},
		{logging.LevelInfo, false},
		{logging.LevelWarn, false},
		{logging.LevelError, false},
		{logging.Level("DEBUG"), false},
		{logging.Level(" Info "), false},
		{logging.Level("verbose"), true},
		{logging.Level(""), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			err := tt.level.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLevelToSlogLevel(t *testing.T) {
	tests := []struct {
		level logging.Level
		want  slog.Level
	}{
		{logging.LevelDebug, slog.LevelDebug},
		{logging.LevelWarn, slog.LevelWarn},
		{logging.LevelError, slog.LevelError},
		{logging.Level("ERROR"), slog.LevelError},
		{logging.Level("unknown"), slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			if got := tt.level.ToSlogLevel(); got != tt.want {
				t.Errorf("ToSlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatValidate(t *testing.T) {
	if err := logging.Format("JSON").Validate(); err != nil {
		t.Errorf("Validate() error = %v, want case-insensitive match", err)
	}
	if err := logging.Format("yaml").Validate(); err == nil {
		t.Error("Validate() error = nil, want invalid format error")
	}
}
