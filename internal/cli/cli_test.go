package cli_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/maxviazov/pets-service/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// keep the logger quiet and away from the dev debug file
	t.Setenv("APP_APP_ENV", "test")

	var out bytes.Buffer
	cmd := cli.NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrate_MemoryIsNoop(t *testing.T) {
	out, err := execute(t, "migrate", "--driver", "memory")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to migrate")
}

func TestMigrateAndSeed_SQLite(t *testing.T) {
	t.Setenv("APP_STORAGE_SQLITE_PATH", filepath.Join(t.TempDir(), "pets.db"))

	out, err := execute(t, "migrate", "--driver", "sqlite")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlite schema is up to date")

	out, err = execute(t, "seed", "--driver", "sqlite", "--cats", "3", "--dogs", "2", "--owners", "1", "--random-seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 3 cats, 2 dogs, 1 owners")
}

func TestSeed_RejectsMemory(t *testing.T) {
	_, err := execute(t, "seed", "--driver", "memory")
	assert.ErrorContains(t, err, "persistent driver")
}

func TestRoot_InvalidDriver(t *testing.T) {
	_, err := execute(t, "migrate", "--driver", "mongo")
	assert.ErrorContains(t, err, "invalid config")
}

func TestRoot_MissingConfigFile(t *testing.T) {
	_, err := execute(t, "migrate", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "config file not found")
}
