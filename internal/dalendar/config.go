package dalendar

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log"
	"net/netip"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/dalendar/dalendar/internal/wheel"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "dalendar.yml"

type config struct {
	Server struct {
		Host      string  `yaml:"host"`
		Port      uint16  `yaml:"port"`
		BaseURL   string  `yaml:"base-url"`
		RateLimit float64 `yaml:"rate-limit"`
		RateBurst int     `yaml:"rate-burst"`
		// X-Forwarded-For is only read from these peers.
		TrustedProxies []proxyPrefixField `yaml:"trusted-proxies"`
	} `yaml:"server"`

	Metrics struct {
		Enabled      bool   `yaml:"enabled"`
		Username     string `yaml:"username"`
		PasswordHash string `yaml:"password-hash"`
	} `yaml:"metrics"`

	Page struct {
		Title string `yaml:"title"`
	} `yaml:"page"`

	Calendar struct {
		Timezone timezoneField    `yaml:"timezone"`
		Size     float64          `yaml:"size"`
		DPI      float64          `yaml:"dpi"`
		Format   imageFormatField `yaml:"format"`
	} `yaml:"calendar"`

	Theme themeConfig `yaml:"theme"`
}

type themeConfig struct {
	Background *hexColorField `yaml:"background"`
	Completed  *hexColorField `yaml:"completed"`
	Current    *hexColorField `yaml:"current"`
	LeapToday  *hexColorField `yaml:"leap-today"`
	LeapFuture *hexColorField `yaml:"leap-future"`
	Outline    *hexColorField `yaml:"outline"`
	Label      *hexColorField `yaml:"label"`
	Month      *hexColorField `yaml:"month"`
	Boundary   *hexColorField `yaml:"boundary"`
	Scanline   *hexColorField `yaml:"scanline"`
	Frame      *hexColorField `yaml:"frame"`
	Info       *hexColorField `yaml:"info"`
}

func (c *config) trustedProxies() trustedProxies {
	proxies := make(trustedProxies, len(c.Server.TrustedProxies))
	for i, p := range c.Server.TrustedProxies {
		proxies[i] = netip.Prefix(p)
	}

	return proxies
}

// palette returns the default palette with every configured color applied.
// Colors without an alpha part keep the default's alpha.
func (t *themeConfig) palette() *wheel.Palette {
	p := wheel.DefaultPalette()

	overrides := []struct {
		field  *hexColorField
		target *color.NRGBA
	}{
		{t.Background, &p.Background},
		{t.Completed, &p.Completed},
		{t.Current, &p.Current},
		{t.LeapToday, &p.LeapToday},
		{t.LeapFuture, &p.LeapFuture},
		{t.Outline, &p.Outline},
		{t.Label, &p.Label},
		{t.Month, &p.Month},
		{t.Boundary, &p.Boundary},
		{t.Scanline, &p.Scanline},
		{t.Frame, &p.Frame},
		{t.Info, &p.Info},
	}

	for _, o := range overrides {
		if o.field != nil {
			*o.target = o.field.over(*o.target)
		}
	}

	return p
}

func newConfig() *config {
	c := &config{}

	c.Server.Port = 8080
	c.Server.RateLimit = 5
	c.Server.RateBurst = 30
	c.Metrics.Enabled = true
	c.Calendar.Size = wheel.DefaultSize
	c.Calendar.DPI = wheel.DefaultDPI
	c.Calendar.Format = imageFormatField(wheel.FormatPNG)

	return c
}

func newConfigFromYAML(contents []byte) (*config, error) {
	contents, err := parseConfigEnvVariables(contents)
	if err != nil {
		return nil, err
	}

	config := newConfig()

	if err := yaml.Unmarshal(contents, config); err != nil {
		return nil, err
	}

	if config.Calendar.Timezone.Location == nil {
		loc, err := wheel.LoadCentral()
		if err != nil {
			return nil, err
		}
		config.Calendar.Timezone.Location = loc
	}

	if err := isConfigStateValid(config); err != nil {
		return nil, err
	}

	return config, nil
}

var envVariableReferencePattern = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)\}`)

func parseConfigEnvVariables(contents []byte) ([]byte, error) {
	var firstErr error

	replaced := envVariableReferencePattern.ReplaceAllFunc(contents, func(match []byte) []byte {
		if firstErr != nil {
			return nil
		}

		name := string(envVariableReferencePattern.FindSubmatch(match)[1])
		value, found := os.LookupEnv(name)
		if !found {
			firstErr = fmt.Errorf("environment variable %s not found", name)
			return nil
		}

		return []byte(value)
	})

	if firstErr != nil {
		return nil, firstErr
	}

	return replaced, nil
}

func isConfigStateValid(config *config) error {
	if config.Server.Port == 0 {
		return errors.New("server port must be between 1 and 65535")
	}

	if config.Server.RateLimit <= 0 {
		return errors.New("server rate-limit must be positive")
	}

	if config.Server.RateBurst < 1 {
		return errors.New("server rate-burst must be at least 1")
	}

	if config.Calendar.Size <= 0 {
		return fmt.Errorf("calendar size must be positive, got %v", config.Calendar.Size)
	}

	if config.Calendar.DPI <= 0 {
		return fmt.Errorf("calendar dpi must be positive, got %v", config.Calendar.DPI)
	}

	// keeps a single render from allocating an unreasonable image
	if pixels := config.Calendar.Size * config.Calendar.DPI; pixels > maxImagePixels {
		return fmt.Errorf("calendar size times dpi must not exceed %d pixels, got %.0f", maxImagePixels, pixels)
	}

	if config.Metrics.PasswordHash != "" && config.Metrics.Username == "" {
		return errors.New("metrics password-hash requires a username")
	}

	if config.Metrics.Username != "" && config.Metrics.PasswordHash == "" {
		return errors.New("metrics username requires a password-hash")
	}

	return nil
}

const maxImagePixels = 8000

// readConfigFile returns the file's contents, or nil when it does not exist
// so that the defaults apply.
func readConfigFile(path string) ([]byte, error) {
	contents, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("No config file at %s, using defaults", path)
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return contents, nil
}

const configReloadDebounce = 500 * time.Millisecond

// configFileWatcher calls onChange with the new contents whenever the file at
// path changes. The directory is watched rather than the file so that editors
// which replace the file on save are picked up too.
func configFileWatcher(
	path string,
	lastContents []byte,
	onChange func(contents []byte),
	onErr func(error),
) (func() error, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(absPath), err)
	}

	var debounce *time.Timer
	var mu sync.Mutex

	reload := func() {
		mu.Lock()
		defer mu.Unlock()

		contents, err := os.ReadFile(absPath)
		if errors.Is(err, fs.ErrNotExist) {
			// mid-replace, the create event will follow
			return
		}

		if err != nil {
			onErr(fmt.Errorf("reading config file: %w", err))
			return
		}

		if bytes.Equal(contents, lastContents) {
			return
		}

		lastContents = contents
		onChange(contents)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				if event.Name != absPath {
					continue
				}

				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}

				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(configReloadDebounce, reload)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				onErr(err)
			}
		}
	}()

	return watcher.Close, nil
}
