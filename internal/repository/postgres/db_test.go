package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/maxviazov/pets-service/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN_EscapesCredentials(t *testing.T) {
	dsn := BuildDSN(config.PostgresConfig{
		Host: "db", Port: 5433, User: "pets", Password: "p@ss/word", DBName: "pets", SSLMode: "disable",
	})
	assert.Equal(t, "postgres://pets:p%40ss%2Fword@db:5433/pets?sslmode=disable", dsn)
}

func TestTraceLevel(t *testing.T) {
	assert.Equal(t, tracelog.LogLevelTrace, traceLevel(zerolog.TraceLevel))
	assert.Equal(t, tracelog.LogLevelDebug, traceLevel(zerolog.DebugLevel))
	assert.Equal(t, tracelog.LogLevelInfo, traceLevel(zerolog.InfoLevel))
	assert.Equal(t, tracelog.LogLevelWarn, traceLevel(zerolog.WarnLevel))
	assert.Equal(t, tracelog.LogLevelError, traceLevel(zerolog.ErrorLevel))
}

func TestNilPoolGuards(t *testing.T) {
	_, err := NewStore(nil)
	require.Error(t, err)
	require.Error(t, NewPinger(nil).Ping(context.Background()))
	require.Error(t, Migrate(context.Background(), nil))
	_, err = NewCatRepository(nil).GetByID(context.Background(), "x")
	require.Error(t, err)
}
