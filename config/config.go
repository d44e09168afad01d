package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the variable pointing at an optional YAML config file.
const EnvConfigPath = "JOBSCRAPER_CONFIG"

const defaultConfigPath = "configs/config.yaml"

type Config struct {
	IndeedBaseURL    string        `yaml:"indeed_base_url"`
	GoogleBaseURL    string        `yaml:"google_base_url"`
	UserAgent        string        `yaml:"user_agent"`
	BrowserUserAgent string        `yaml:"browser_user_agent"`
	ProxyURL         string        `yaml:"proxy_url"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
	ItemDelay        time.Duration `yaml:"item_delay"`
	WaitTimeout      time.Duration `yaml:"wait_timeout"`
	SettleDelay      time.Duration `yaml:"settle_delay"`
	Headless         bool          `yaml:"headless"`
	OutputDir        string        `yaml:"output_dir"`
	PostgresDSN      string        `yaml:"postgres_dsn"`
	MaxRetries       int           `yaml:"max_retries"`
	Debug            bool          `yaml:"debug"`
}

func DefaultConfig() *Config {
	return &Config{
		IndeedBaseURL:  "https://www.indeed.com",
		GoogleBaseURL:  "https://www.google.com/about/careers/applications",
		UserAgent:      "JobScraper/1.0 (+https://github.com/job-scraper)",
		RequestTimeout: 30 * time.Second,
		ItemDelay:      100 * time.Millisecond,
		WaitTimeout:    20 * time.Second,
		SettleDelay:    5 * time.Second,
		Headless:       true,
		OutputDir:      ".",
		MaxRetries:     3,
	}
}

// Load builds the run configuration: defaults, then the YAML file (if any),
// then .env and JOBSCRAPER_* environment variables.
// An empty path falls back to JOBSCRAPER_CONFIG and then configs/config.yaml.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path == "" {
		path = getEnv(EnvConfigPath, defaultConfigPath)
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.IndeedBaseURL = getEnv("JOBSCRAPER_INDEED_BASE_URL", c.IndeedBaseURL)
	c.GoogleBaseURL = getEnv("JOBSCRAPER_GOOGLE_BASE_URL", c.GoogleBaseURL)
	c.UserAgent = getEnv("JOBSCRAPER_USER_AGENT", c.UserAgent)
	c.BrowserUserAgent = getEnv("JOBSCRAPER_BROWSER_USER_AGENT", c.BrowserUserAgent)
	c.ProxyURL = getEnv("JOBSCRAPER_PROXY_URL", c.ProxyURL)
	c.RequestTimeout = parseDuration(os.Getenv("JOBSCRAPER_REQUEST_TIMEOUT"), c.RequestTimeout)
	c.ItemDelay = parseDuration(os.Getenv("JOBSCRAPER_ITEM_DELAY"), c.ItemDelay)
	c.WaitTimeout = parseDuration(os.Getenv("JOBSCRAPER_WAIT_TIMEOUT"), c.WaitTimeout)
	c.SettleDelay = parseDuration(os.Getenv("JOBSCRAPER_SETTLE_DELAY"), c.SettleDelay)
	c.Headless = parseBool(os.Getenv("JOBSCRAPER_HEADLESS"), c.Headless)
	c.OutputDir = getEnv("JOBSCRAPER_OUTPUT_DIR", c.OutputDir)
	c.PostgresDSN = getEnv("JOBSCRAPER_POSTGRES_DSN", c.PostgresDSN)
	c.MaxRetries = parseInt(os.Getenv("JOBSCRAPER_MAX_RETRIES"), c.MaxRetries)
	c.Debug = parseBool(os.Getenv("JOBSCRAPER_DEBUG"), c.Debug)
}

// Validate rejects settings the scrapers cannot run with.
func (c *Config) Validate() error {
	if c.IndeedBaseURL == "" || c.GoogleBaseURL == "" {
		return errors.New("base URLs must not be empty")
	}
	if c.WaitTimeout <= 0 {
		return fmt.Errorf("wait_timeout must be positive, got %v", c.WaitTimeout)
	}
	if c.ItemDelay < 0 || c.SettleDelay < 0 {
		return errors.New("delays must not be negative")
	}
	if c.MaxRetries < 1 {
		c.MaxRetries = 1
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseBool(value string, fallback bool) bool {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
