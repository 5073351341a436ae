package harvest

import "time"

// Default fetch identity, matching a desktop browser.
const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	DefaultAccept    = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
)

// Config holds runtime configuration.
type Config struct {
	DBPath    string        `yaml:"db_path"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`

	// Concurrency bounds parallel fetches when comparing prices.
	Concurrency int `yaml:"concurrency"`

	// RespectRobots refuses URLs disallowed by the host's robots.txt.
	RespectRobots bool `yaml:"respect_robots"`

	// Sites replaces the built-in site profiles when non-empty.
	Sites []SiteProfile `yaml:"sites"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		DBPath:      "harvest.db",
		Timeout:     10 * time.Second,
		UserAgent:   DefaultUserAgent,
		Concurrency: 1,
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return Errorf(EINVALID, "database path cannot be empty")
	}
	if c.Timeout <= 0 {
		return Errorf(EINVALID, "timeout must be positive")
	}
	if c.UserAgent == "" {
		return Errorf(EINVALID, "user agent cannot be empty")
	}
	if c.Concurrency < 1 {
		return Errorf(EINVALID, "concurrency must be at least 1")
	}
	seen := make(map[string]bool)
	for i, site := range c.Sites {
		if site.Name == "" {
			return Errorf(EINVALID, "site %d: name required", i)
		}
		if seen[site.Name] {
			return Errorf(EINVALID, "site %q defined twice", site.Name)
		}
		seen[site.Name] = true
	}
	return nil
}
