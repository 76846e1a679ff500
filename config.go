package elements

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tebeka/selenium"
	"gopkg.in/yaml.v3"
)

// Config holds the element and wait settings of a test suite, usually read
// from a YAML file:
//
//	readiness_script: "return window.pendingRequests === 0"
//	readiness_timeout: 5s
//	auto_scroll_into_view: false
//	wait_timeout: 20s
//	poll_interval: 250ms
type Config struct {
	ReadinessScript    string        `yaml:"readiness_script"`
	ReadinessTimeout   time.Duration `yaml:"readiness_timeout"`
	AutoScrollIntoView *bool         `yaml:"auto_scroll_into_view"`
	WaitTimeout        time.Duration `yaml:"wait_timeout"`
	PollInterval       time.Duration `yaml:"poll_interval"`
}

// LoadConfig decodes a Config from r. Unknown keys are an error.
func LoadConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	c := &Config{}
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding elements config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadConfigFile reads a Config from the YAML file at path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := LoadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c *Config) validate() error {
	for _, d := range []struct {
		name string
		v    time.Duration
	}{
		{"readiness_timeout", c.ReadinessTimeout},
		{"wait_timeout", c.WaitTimeout},
		{"poll_interval", c.PollInterval},
	} {
		if d.v < 0 {
			return fmt.Errorf("elements config: negative %s: %v", d.name, d.v)
		}
	}
	return nil
}

// RemoteOptions returns the RemoteElement options described by c. Unset
// fields keep their defaults.
func (c *Config) RemoteOptions() []RemoteOption {
	var opts []RemoteOption
	if c.ReadinessScript != "" {
		opts = append(opts, ReadinessScript(c.ReadinessScript))
	}
	if c.ReadinessTimeout > 0 {
		opts = append(opts, ReadinessTimeout(c.ReadinessTimeout))
	}
	if c.AutoScrollIntoView != nil {
		opts = append(opts, AutoScrollIntoView(*c.AutoScrollIntoView))
	}
	return opts
}

// Install installs wd with c's element options.
func (c *Config) Install(wd selenium.WebDriver) (*Driver, error) {
	return Install(wd, c.RemoteOptions()...)
}

// Finder returns a Finder on wd using c's wait settings.
func (c *Config) Finder(wd selenium.WebDriver) *Finder {
	return &Finder{Driver: wd, Timeout: c.WaitTimeout, Interval: c.PollInterval}
}
