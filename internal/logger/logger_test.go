package logger_test

import (
	"os"
	"testing"

	logpkg "github.com/maxviazov/pets-service/internal/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *logpkg.LoggerConfig
		expectError bool
		wantLevel   zerolog.Level
	}{
		{
			name: "production json",
			config: &logpkg.LoggerConfig{
				ServiceName: "pets-service",
				Env:         "prod",
				Level:       "info",
				TimeFormat:  "unix",
				Fields:      map[string]interface{}{"region": "eu"},
			},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name:        "wrong env",
			config:      &logpkg.LoggerConfig{Env: "wrong-env", Level: "debug"},
			expectError: true,
		},
		{
			name:        "invalid level",
			config:      &logpkg.LoggerConfig{Env: "prod", Level: "invalid-level"},
			expectError: true,
		},
		{
			name:        "invalid format",
			config:      &logpkg.LoggerConfig{Env: "prod", Format: "xml"},
			expectError: true,
		},
		{
			name:      "staging warn to stderr",
			config:    &logpkg.LoggerConfig{Env: "staging", Level: "warn", OutputTarget: "stderr", Stacktrace: true},
			wantLevel: zerolog.WarnLevel,
		},
		{
			name:      "test env defaults to info",
			config:    &logpkg.LoggerConfig{Env: "test"},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name:      "error level with caller",
			config:    &logpkg.LoggerConfig{Env: "prod", Level: "error", WithCaller: true, TimeFormat: "2006-01-02"},
			wantLevel: zerolog.ErrorLevel,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := logpkg.New(test.config)
			if test.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.wantLevel, zerolog.GlobalLevel())
		})
	}
}

func TestNew_AppliesDefaults(t *testing.T) {
	cfg := &logpkg.LoggerConfig{Env: "prod"}
	_, err := logpkg.New(cfg)
	assert.NoError(t, err)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "stdout", cfg.OutputTarget)
	assert.Equal(t, "ts", cfg.TimeField)
	assert.Equal(t, "pets-service", cfg.ServiceName)
	assert.False(t, cfg.WithCaller)
}

func TestNew_DevDebugWritesFile(t *testing.T) {
	t.Chdir(t.TempDir())

	config := &logpkg.LoggerConfig{ServiceName: "integration-test", Env: "dev", Level: "debug"}
	l, err := logpkg.New(config)
	assert.NoError(t, err)
	assert.Equal(t, "console", config.Format)
	assert.True(t, config.WithCaller)

	l.Debug().Msg("hello")

	data, statErr := os.ReadFile(logpkg.DebugLogPath)
	assert.NoError(t, statErr)
	assert.Contains(t, string(data), "hello")
}
