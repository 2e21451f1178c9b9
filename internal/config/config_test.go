package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
hevy:
  api_key: "hevy-key"
notion:
  token: "secret_abc"
  database_id: "db-123"
state:
  backend: "sqlite"
  path: "/var/lib/hevy2notion/state.db"
server:
  host: "127.0.0.1"
  port: 8080
  schedule: "*/15 * * * *"
auth:
  api_key: "shim-key"
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range EnvVars {
		t.Setenv(name, "")
	}
}

// TestLoadValid verifies a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeTemp(t, "config.yaml", validYAML))
	require.NoError(t, err)

	assert.Equal(t, "hevy-key", cfg.Hevy.APIKey)
	assert.Equal(t, "secret_abc", cfg.Notion.Token)
	assert.Equal(t, "db-123", cfg.Notion.DatabaseID)
	assert.Equal(t, BackendSQLite, cfg.State.Backend)
	assert.Equal(t, "/var/lib/hevy2notion/state.db", cfg.State.Path)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.Equal(t, "*/15 * * * *", cfg.Server.Schedule)
	assert.Equal(t, "shim-key", cfg.Auth.APIKey)
}

// TestLoadDefaults verifies omitted settings fall back to the documented
// defaults.
func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeTemp(t, "config.yaml", `
hevy: {api_key: k}
notion: {token: t, database_id: d}
`))
	require.NoError(t, err)

	assert.Equal(t, "2022-02-22", cfg.Notion.Version)
	assert.Equal(t, "Treino", cfg.Notion.Property)
	assert.Equal(t, BackendFile, cfg.State.Backend)
	assert.Equal(t, "last_workout_id.txt", cfg.State.Path)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "hevy2notion", cfg.Tailscale.Hostname)
}

// TestLoadEnvOnly verifies an empty path builds config from the unprefixed
// variables alone.
func TestLoadEnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("HEVY_API_KEY", "hk")
	t.Setenv("NOTION_TOKEN", "nt")
	t.Setenv("DATABASE_ID", "db")
	t.Setenv("PORT", "4000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "hk", cfg.Hevy.APIKey)
	assert.Equal(t, "nt", cfg.Notion.Token)
	assert.Equal(t, "db", cfg.Notion.DatabaseID)
	assert.Equal(t, 4000, cfg.Server.Port)
}

// TestEnvOverride verifies prefixed variables beat both YAML and the plain
// names.
func TestEnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("NOTION_TOKEN", "plain")
	t.Setenv("HEVY2NOTION_NOTION_TOKEN", "prefixed")
	t.Setenv("HEVY2NOTION_SERVER_PORT", "9999")
	t.Setenv("HEVY2NOTION_STATE_BACKEND", "file")
	t.Setenv("HEVY2NOTION_STATE_PATH", "/tmp/id.txt")

	cfg, err := Load(writeTemp(t, "config.yaml", validYAML))
	require.NoError(t, err)
	assert.Equal(t, "prefixed", cfg.Notion.Token)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, BackendFile, cfg.State.Backend)
	assert.Equal(t, "/tmp/id.txt", cfg.State.Path)
	// Unchanged fields keep YAML values
	assert.Equal(t, "db-123", cfg.Notion.DatabaseID)
}

// TestEnvOverrideTailscale verifies the tailscale section has env overrides.
func TestEnvOverrideTailscale(t *testing.T) {
	clearEnv(t)
	t.Setenv("HEVY2NOTION_TAILSCALE_ENABLED", "true")
	t.Setenv("HEVY2NOTION_TAILSCALE_HOSTNAME", "gym-sync")
	t.Setenv("HEVY2NOTION_TAILSCALE_STATE_DIR", "/var/lib/tsnet")

	cfg, err := Load(writeTemp(t, "config.yaml", validYAML))
	require.NoError(t, err)
	assert.True(t, cfg.Tailscale.Enabled)
	assert.Equal(t, "gym-sync", cfg.Tailscale.Hostname)
	assert.Equal(t, "/var/lib/tsnet", cfg.Tailscale.StateDir)
}

// TestEnvOverrideInvalidValues verifies unparseable numbers and booleans
// are reported instead of silently falling back to defaults.
func TestEnvOverrideInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"plain port":        {"PORT", "eighty"},
		"prefixed port":     {"HEVY2NOTION_SERVER_PORT", "80a"},
		"tailscale enabled": {"HEVY2NOTION_TAILSCALE_ENABLED", "sometimes"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])

			_, err := Load(writeTemp(t, "config.yaml", validYAML))
			require.Error(t, err)
			assert.Contains(t, err.Error(), kv[0])
		})
	}
}

// TestValidation verifies missing required fields produce an error.
func TestValidation(t *testing.T) {
	cases := map[string]string{
		"missing hevy key":     "notion: {token: t, database_id: d}",
		"missing token":        "hevy: {api_key: k}\nnotion: {database_id: d}",
		"missing database id":  "hevy: {api_key: k}\nnotion: {token: t}",
		"unknown backend":      "hevy: {api_key: k}\nnotion: {token: t, database_id: d}\nstate: {backend: redis}",
		"postgres without dsn": "hevy: {api_key: k}\nnotion: {token: t, database_id: d}\nstate: {backend: postgres}",
		"s3 without bucket":    "hevy: {api_key: k}\nnotion: {token: t, database_id: d}\nstate: {backend: s3}",
		"port out of range":    "hevy: {api_key: k}\nnotion: {token: t, database_id: d}\nserver: {port: 70000}",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeTemp(t, "config.yaml", content))
			assert.Error(t, err)
		})
	}
}

// TestLoadMissingFile verifies that a missing config file returns a clear error.
func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

// TestLoadDotEnv verifies .env values reach Load and a missing file is ignored.
func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv("HEVY_API_KEY"))
	require.NoError(t, os.Unsetenv("NOTION_TOKEN"))
	require.NoError(t, os.Unsetenv("DATABASE_ID"))

	path := writeTemp(t, ".env", "HEVY_API_KEY=from-dotenv\nNOTION_TOKEN=nt\nDATABASE_ID=db\n")
	require.NoError(t, LoadDotEnv(path))
	t.Cleanup(func() {
		os.Unsetenv("HEVY_API_KEY")
		os.Unsetenv("NOTION_TOKEN")
		os.Unsetenv("DATABASE_ID")
	})

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Hevy.APIKey)

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
	assert.NoError(t, LoadDotEnv(""))
}
