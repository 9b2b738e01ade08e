package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/August26/ipintel-go/internal/intel"
)

// Config is the full process configuration. Values come from the
// defaults, then an optional YAML file, then the environment, then
// explicit flags; each layer overrides the one before it.
type Config struct {
	Service Service `yaml:"service"`
	Run     Run     `yaml:"run"`
}

// Service configures the reputation client.
type Service struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Contact   string `yaml:"contact"`
	TimeoutMs int    `yaml:"timeout_ms"`
	Flags     string `yaml:"flags"`
	SOCKS5    string `yaml:"socks5"` // host:port or host:port:user:pass
}

// Timeout returns the per-lookup budget as a duration.
func (s Service) Timeout() time.Duration {
	return time.Duration(s.TimeoutMs) * time.Millisecond
}

// Run configures the batch runner and reporting.
type Run struct {
	Concurrency int    `yaml:"concurrency"`
	GeoIPCity   string `yaml:"geoip_city"`
	GeoIPASN    string `yaml:"geoip_asn"`
	Verbose     bool   `yaml:"verbose"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Service: Service{
			Host:      intel.DefaultHost,
			Port:      intel.DefaultPort,
			Contact:   intel.DefaultContact,
			TimeoutMs: int(intel.DefaultTimeout / time.Millisecond),
		},
		Run: Run{
			Concurrency: 8,
		},
	}
}

// Load reads a YAML file over the defaults. Fields absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides the contact and host from the environment, the
// two values operators most often keep out of files.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("IPINTEL_CONTACT"); v != "" {
		c.Service.Contact = v
	}
	if v := os.Getenv("IPINTEL_HOST"); v != "" {
		c.Service.Host = v
	}
}

// SplitSOCKS5 splits a proxy spec of the form host:port or
// host:port:user:pass.
func SplitSOCKS5(spec string) (addr, user, pass string, err error) {
	parts := strings.Split(spec, ":")
	switch len(parts) {
	case 2:
		return spec, "", "", nil
	case 4:
		return parts[0] + ":" + parts[1], parts[2], parts[3], nil
	default:
		return "", "", "", fmt.Errorf("invalid socks5 spec: %q", spec)
	}
}
