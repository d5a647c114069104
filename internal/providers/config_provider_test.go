package providers

import (
	"os"
	"path/filepath"
	"sidebard/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `webServer:
  host: 127.0.0.1
  port: 8090
upstream:
  baseUrl: http://127.0.0.1:4000
console:
  owner: true
persistence:
  filePath: /tmp/sidebard.dat
  saveInterval: 30s
logger:
  level: info
  mode: 420
  dir: /tmp
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestNewConfigProvider_LoadsFileWithDefaults(t *testing.T) {
	path := writeConfig(t, testConfigYAML)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "SidebarDaemon", conf.AppName)
	assert.True(t, conf.Debug)
	assert.Equal(t, path, conf.Path)
	assert.Equal(t, 8090, conf.WebServer.Port)
	assert.Equal(t, "http://127.0.0.1:4000", conf.Upstream.BaseURL)
	assert.True(t, conf.Console.Owner)
	assert.Equal(t, 30*time.Second, conf.Persistence.SaveInterval)

	assert.Equal(t, 10*time.Second, conf.Upstream.Timeout)
	assert.Equal(t, float64(20), conf.Upstream.RateLimit)
	assert.Equal(t, 30*time.Second, conf.Statistics.RevalidateAfter)
	assert.Equal(t, 10*time.Minute, conf.Cache.TTL)
}

func TestNewConfigProvider_EnvOverridesOwner(t *testing.T) {
	path := writeConfig(t, testConfigYAML)
	t.Setenv("SIDEBARD_OWNER", "false")
	t.Setenv("SIDEBARD_UPSTREAM_URL", "https://admin.example.com")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)
	assert.False(t, conf.Console.Owner)
	assert.Equal(t, "https://admin.example.com", conf.Upstream.BaseURL)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "absent.yml")})
	assert.Error(t, err)
}

func TestNewConfigProvider_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "webServer:\n  host: 127.0.0.1\n")
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}
