package app

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ConfigPathEnv names the env var that points at a config file
const ConfigPathEnv = "HNCLI_CONFIG"

// Config is the configuration for a run or for serve mode
type Config struct {
	Mode    string `json:"mode" yaml:"mode"`
	Count   int    `json:"count" yaml:"count"`
	Format  string `json:"format" yaml:"format"`
	Excerpt bool   `json:"excerpt" yaml:"excerpt"`

	BaseURL    string   `json:"baseURL" yaml:"base_url"`
	DiscussURL string   `json:"discussURL" yaml:"discuss_url"`
	Timeout    Duration `json:"timeout" yaml:"timeout"`
	Workers    int      `json:"workers" yaml:"workers"`

	Color     string `json:"color" yaml:"color"`
	LogLevel  string `json:"logLevel" yaml:"log_level"`
	LogFormat string `json:"logFormat" yaml:"log_format"`

	ArchivePath string `json:"archivePath" yaml:"archive_path"`

	ListenAddr string `json:"listenAddr" yaml:"listen_addr"`
	RateLimit  string `json:"rateLimit" yaml:"rate_limit"`
}

// Defaults returns a Config with every default set
func Defaults() Config {
	return Config{
		Mode:       Hottest.String(),
		Count:      DefaultCount,
		Format:     "text",
		BaseURL:    DefaultBaseURL,
		DiscussURL: DefaultDiscussURL,
		Timeout:    Duration(DefaultTimeout),
		Workers:    1,
		Color:      "auto",
		LogLevel:   "info",
		LogFormat:  "text",
		ListenAddr: DefaultListenAddr,
		RateLimit:  DefaultRateLimit,
	}
}

// LoadConfig reads the config file at path over Defaults.
// An empty path falls back to $HNCLI_CONFIG, and then to Defaults alone.
func LoadConfig(path string) (Config, error) {
	conf := Defaults()
	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if path == "" {
		return conf, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "open config")
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.NewDecoder(f).Decode(&conf)
		if err == io.EOF {
			err = nil
		}
	default:
		err = json.NewDecoder(f).Decode(&conf)
	}
	if err != nil {
		return Config{}, errors.Wrapf(err, "decode config %s", path)
	}

	return conf, nil
}

// Validate checks every field that does not depend on another package
func (c *Config) Validate() error {
	if _, err := ParseMode(c.Mode); err != nil {
		return err
	}
	if _, err := NewCount(c.Count); err != nil {
		return err
	}
	if c.Workers < 1 {
		return &ValidationError{Field: "workers", Value: strconv.Itoa(c.Workers), Reason: "must be at least 1"}
	}
	if c.Timeout < 0 {
		return &ValidationError{Field: "timeout", Value: c.Timeout.String(), Reason: "must not be negative"}
	}
	if !strings.Contains(c.DiscussURL, "%d") {
		return &ValidationError{Field: "discuss_url", Value: c.DiscussURL, Reason: "must contain %d"}
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return &ValidationError{Field: "color", Value: c.Color, Reason: "must be one of auto, always, never"}
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return &ValidationError{Field: "log_level", Value: c.LogLevel, Reason: err.Error()}
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return &ValidationError{Field: "log_format", Value: c.LogFormat, Reason: "must be text or json"}
	}
	return nil
}

// Duration is a time.Duration written as "10s" in config files
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalJSON accepts a duration string or a number of nanoseconds
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n int64
		if err := json.Unmarshal(b, &n); err != nil {
			return errors.Errorf("invalid duration %s", b)
		}
		*d = Duration(n)
		return nil
	}
	return d.parse(s)
}

// UnmarshalYAML accepts a duration string
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.parse(value.Value)
}

func (d *Duration) parse(s string) error {
	v, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", s)
	}
	*d = Duration(v)
	return nil
}
