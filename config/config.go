// Package config loads walletgate settings from defaults, an optional TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"github.com/layer-3/walletgate/feed"
	"github.com/layer-3/walletgate/service"
)

const (
	EnvPrefix       = "WALLETGATE_"
	EnvFile         = EnvPrefix + "CONFIG"
	ProfileDefault  = "default"
	ProfileExtended = "extended"
)

type Config struct {
	Addr     string `toml:"addr"`
	RedisURL string `toml:"redis_url"`
	LogLevel string `toml:"log_level"`
	LogJSON  bool   `toml:"log_json"`

	// Profile picks the gate variant: "default" loads briefly and resumes sessions,
	// "extended" loads longer and always shows the selection screen
	Profile           string        `toml:"profile"`
	LoadingDuration   time.Duration `toml:"loading_duration"`
	SilentResume      *bool         `toml:"silent_resume"`
	DetectInterval    time.Duration `toml:"detect_interval"`
	DetectMaxAttempts int           `toml:"detect_max_attempts"`

	SessionTTL   time.Duration `toml:"session_ttl"`
	SessionKey   string        `toml:"session_key"`
	SealSessions bool          `toml:"seal_sessions"`

	Sources           []feed.Source `toml:"sources"`
	RateLimit         int           `toml:"rate_limit"`
	UpstreamTimeout   time.Duration `toml:"upstream_timeout"`
	AllowedOrigins    []string      `toml:"allowed_origins"`
	TrustedProxyCIDRs []string      `toml:"trusted_proxy_cidrs"`

	EthRPCURL string `toml:"eth_rpc_url"`
}

// Defaults returns the configuration used when nothing is set
func Defaults() Config {
	return Config{
		Addr:            ":9000",
		RedisURL:        "",
		LogLevel:        "info",
		Profile:         ProfileDefault,
		Sources:         feed.DefaultSources(),
		RateLimit:       30,
		UpstreamTimeout: feed.DefaultTimeout,
	}
}

// Load reads the file named by WALLETGATE_CONFIG, if any, then the environment
func Load() (Config, error) {
	return LoadFile(os.Getenv(EnvFile))
}

// LoadFile is Load with an explicit file path. An empty path skips the file.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Addr = getEnv("ADDR", c.Addr)
	c.RedisURL = getEnv("REDIS_URL", c.RedisURL)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Profile = getEnv("PROFILE", c.Profile)
	c.SessionKey = getEnv("SESSION_KEY", c.SessionKey)
	c.EthRPCURL = getEnv("ETH_RPC_URL", c.EthRPCURL)

	var err error
	if c.LogJSON, err = getEnvBool("LOG_JSON", c.LogJSON); err != nil {
		return err
	}
	if c.SealSessions, err = getEnvBool("SEAL_SESSIONS", c.SealSessions); err != nil {
		return err
	}
	if raw := strings.TrimSpace(os.Getenv(EnvPrefix + "SILENT_RESUME")); raw != "" {
		v, err := getEnvBool("SILENT_RESUME", false)
		if err != nil {
			return err
		}
		c.SilentResume = &v
	}

	if c.LoadingDuration, err = getEnvDuration("LOADING_DURATION", c.LoadingDuration); err != nil {
		return err
	}
	if c.DetectInterval, err = getEnvDuration("DETECT_INTERVAL", c.DetectInterval); err != nil {
		return err
	}
	if c.SessionTTL, err = getEnvDuration("SESSION_TTL", c.SessionTTL); err != nil {
		return err
	}
	if c.UpstreamTimeout, err = getEnvDuration("UPSTREAM_TIMEOUT", c.UpstreamTimeout); err != nil {
		return err
	}
	if c.DetectMaxAttempts, err = getEnvInt("DETECT_MAX_ATTEMPTS", c.DetectMaxAttempts); err != nil {
		return err
	}
	if c.RateLimit, err = getEnvInt("RATE_LIMIT", c.RateLimit); err != nil {
		return err
	}

	if raw := os.Getenv(EnvPrefix + "SOURCES"); raw != "" {
		if c.Sources, err = parseSources(raw); err != nil {
			return err
		}
	}
	if raw := os.Getenv(EnvPrefix + "ALLOWED_ORIGINS"); raw != "" {
		c.AllowedOrigins = parseCSV(raw)
	}
	if raw := os.Getenv(EnvPrefix + "TRUSTED_PROXY_CIDRS"); raw != "" {
		c.TrustedProxyCIDRs = parseCSV(raw)
	}
	return nil
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("addr is required")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if c.Profile != ProfileDefault && c.Profile != ProfileExtended {
		return fmt.Errorf("invalid profile %q: expected %s|%s", c.Profile, ProfileDefault, ProfileExtended)
	}
	if c.LoadingDuration < 0 || c.DetectInterval < 0 || c.SessionTTL < 0 || c.UpstreamTimeout < 0 {
		return errors.New("durations must not be negative")
	}
	if c.DetectMaxAttempts < 0 {
		return fmt.Errorf("invalid detect_max_attempts %d: must be >= 0", c.DetectMaxAttempts)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("invalid rate_limit %d: must be >= 0", c.RateLimit)
	}
	if err := feed.ValidateSources(c.Sources); err != nil {
		return err
	}
	for _, origin := range c.AllowedOrigins {
		if err := validateOrigin(origin); err != nil {
			return err
		}
	}
	for _, cidr := range c.TrustedProxyCIDRs {
		if _, _, err := net.ParseCIDR(cidr); err != nil && net.ParseIP(cidr) == nil {
			return fmt.Errorf("invalid trusted_proxy_cidrs entry %q: expected CIDR or IP", cidr)
		}
	}
	if c.RedisURL != "" {
		if _, err := url.Parse(c.RedisURL); err != nil {
			return fmt.Errorf("invalid redis_url: %w", err)
		}
	}
	return nil
}

// Gate derives the gate configuration from the profile and overrides
func (c Config) Gate() service.Config {
	gate := service.DefaultConfig()
	if c.Profile == ProfileExtended {
		gate = service.ExtendedConfig()
	}
	if c.LoadingDuration > 0 {
		gate.LoadingDuration = c.LoadingDuration
	}
	if c.SilentResume != nil {
		gate.EnableSilentResume = *c.SilentResume
	}
	if c.DetectInterval > 0 {
		gate.DetectInterval = c.DetectInterval
	}
	if c.DetectMaxAttempts > 0 {
		gate.DetectMaxAttempts = c.DetectMaxAttempts
	}
	if c.SessionTTL > 0 {
		gate.SessionTTL = c.SessionTTL
	}
	return gate
}

func getEnv(name, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + name); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(name string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(EnvPrefix + name))
	if raw == "" {
		return defaultValue, nil
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s%s value %q: expected true|false", EnvPrefix, name, raw)
	}
}

func getEnvInt(name string, defaultValue int) (int, error) {
	raw := os.Getenv(EnvPrefix + name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s value %q: %w", EnvPrefix, name, raw, err)
	}
	return value, nil
}

func getEnvDuration(name string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(EnvPrefix + name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s value %q: %w", EnvPrefix, name, raw, err)
	}
	return value, nil
}

func parseCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if value := strings.TrimSpace(part); value != "" {
			out = append(out, value)
		}
	}
	return out
}

// parseSources reads "name=url,name=url"
func parseSources(raw string) ([]feed.Source, error) {
	var sources []feed.Source
	for _, part := range parseCSV(raw) {
		name, u, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid %sSOURCES entry %q: expected name=url", EnvPrefix, part)
		}
		sources = append(sources, feed.Source{Name: strings.TrimSpace(name), URL: strings.TrimSpace(u)})
	}
	return sources, nil
}

func validateOrigin(origin string) error {
	parsed, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid allowed_origins entry %q: %w", origin, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid allowed_origins entry %q: expected http or https origin", origin)
	}
	if parsed.Host == "" || parsed.Path != "" || parsed.RawQuery != "" || parsed.Fragment != "" {
		return fmt.Errorf("invalid allowed_origins entry %q: expected origin format scheme://host[:port]", origin)
	}
	return nil
}
