package dalendar

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/dalendar/dalendar/internal/wheel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigFromYAMLDefaults(t *testing.T) {
	c, err := newConfigFromYAML(nil)
	require.NoError(t, err)

	assert.Equal(t, uint16(8080), c.Server.Port)
	assert.Equal(t, float64(5), c.Server.RateLimit)
	assert.Equal(t, 30, c.Server.RateBurst)
	assert.True(t, c.Metrics.Enabled)
	assert.Equal(t, float64(wheel.DefaultSize), c.Calendar.Size)
	assert.Equal(t, float64(wheel.DefaultDPI), c.Calendar.DPI)
	assert.Equal(t, wheel.FormatPNG, wheel.Format(c.Calendar.Format))
	require.NotNil(t, c.Calendar.Timezone.Location)
	assert.Equal(t, wheel.CentralTimezone, c.Calendar.Timezone.String())
}

func TestNewConfigFromYAML(t *testing.T) {
	contents := []byte(`
server:
  host: 127.0.0.1
  port: 9000
  base-url: /dalendar/
metrics:
  enabled: false
page:
  title: My Year
calendar:
  timezone: Europe/Berlin
  size: 6
  dpi: 50
  format: svg
theme:
  completed: "#0f0"
  current: "#FFFFFFCC"
`)

	c, err := newConfigFromYAML(contents)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", c.Server.Host)
	assert.Equal(t, uint16(9000), c.Server.Port)
	assert.Equal(t, "/dalendar/", c.Server.BaseURL)
	assert.False(t, c.Metrics.Enabled)
	assert.Equal(t, "My Year", c.Page.Title)
	assert.Equal(t, "Europe/Berlin", c.Calendar.Timezone.String())
	assert.Equal(t, float64(6), c.Calendar.Size)
	assert.Equal(t, float64(50), c.Calendar.DPI)
	assert.Equal(t, wheel.FormatSVG, wheel.Format(c.Calendar.Format))

	p := c.Theme.palette()
	defaults := wheel.DefaultPalette()
	assert.Equal(t, color.NRGBA{0, 0xFF, 0, 0xFF}, p.Completed)
	assert.Equal(t, color.NRGBA{0xFF, 0xFF, 0xFF, 0xCC}, p.Current)
	assert.Equal(t, defaults.Background, p.Background)
	assert.Equal(t, defaults.LeapToday, p.LeapToday)
}

func TestNewConfigFromYAMLEnvVariables(t *testing.T) {
	t.Setenv("DALENDAR_TEST_TITLE", "From The Environment")

	c, err := newConfigFromYAML([]byte("page:\n  title: ${DALENDAR_TEST_TITLE}\n"))
	require.NoError(t, err)
	assert.Equal(t, "From The Environment", c.Page.Title)

	_, err = newConfigFromYAML([]byte("page:\n  title: ${DALENDAR_TEST_MISSING_VARIABLE}\n"))
	assert.ErrorContains(t, err, "DALENDAR_TEST_MISSING_VARIABLE")
}

func TestNewConfigFromYAMLInvalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		contains string
	}{
		{"zero port", "server:\n  port: 0\n", "port"},
		{"negative rate limit", "server:\n  rate-limit: -1\n", "rate-limit"},
		{"zero burst", "server:\n  rate-burst: 0\n", "rate-burst"},
		{"zero size", "calendar:\n  size: 0\n", "size"},
		{"negative dpi", "calendar:\n  dpi: -10\n", "dpi"},
		{"image too large", "calendar:\n  size: 100\n  dpi: 100\n", "must not exceed"},
		{"unknown timezone", "calendar:\n  timezone: Mars/Olympus_Mons\n", "invalid timezone"},
		{"unknown format", "calendar:\n  format: gif\n", "gif"},
		{"bad color", "theme:\n  completed: green\n", "green"},
		{"hash without username", "metrics:\n  password-hash: abc\n", "username"},
		{"username without hash", "metrics:\n  username: admin\n", "password-hash"},
		{"not yaml", "server: [", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newConfigFromYAML([]byte(tt.contents))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestReadConfigFile(t *testing.T) {
	dir := t.TempDir()

	contents, err := readConfigFile(filepath.Join(dir, "missing.yml"))
	require.NoError(t, err)
	assert.Nil(t, contents)

	path := filepath.Join(dir, "dalendar.yml")
	require.NoError(t, os.WriteFile(path, []byte("page:\n  title: x\n"), 0o644))

	contents, err = readConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "page:\n  title: x\n", string(contents))
}

func TestConfigFileWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dalendar.yml")
	initial := []byte("page:\n  title: before\n")
	require.NoError(t, os.WriteFile(path, initial, 0o644))

	changes := make(chan []byte, 4)
	stop, err := configFileWatcher(path, initial, func(contents []byte) {
		changes <- contents
	}, func(err error) {
		t.Logf("watcher error: %v", err)
	})
	require.NoError(t, err)
	defer stop()

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yml"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("page:\n  title: after\n"), 0o644))

	select {
	case contents := <-changes:
		assert.Equal(t, "page:\n  title: after\n", string(contents))
	case <-time.After(5 * time.Second):
		t.Fatal("config change was not reported")
	}
}

func TestHexColorFieldMarshal(t *testing.T) {
	field := hexColorField{NRGBA: color.NRGBA{0x00, 0xFF, 0xAA, 0xFF}}

	value, err := field.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "#00FFAA", value)
}

func TestThemeColorKeepsDefaultAlpha(t *testing.T) {
	defaults := wheel.DefaultPalette()
	require.Less(t, defaults.Scanline.A, uint8(0xFF))

	c, err := newConfigFromYAML([]byte("theme:\n  scanline: \"#003300\"\n"))
	require.NoError(t, err)
	assert.Equal(t, defaults.Scanline, c.Theme.palette().Scanline)

	c, err = newConfigFromYAML([]byte("theme:\n  scanline: \"#336633\"\n"))
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{0x33, 0x66, 0x33, defaults.Scanline.A}, c.Theme.palette().Scanline)

	c, err = newConfigFromYAML([]byte("theme:\n  scanline: \"#003300FF\"\n"))
	require.NoError(t, err)
	assert.Equal(t, uint8(0xFF), c.Theme.palette().Scanline.A)
}
