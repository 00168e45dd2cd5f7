package config

import (
	"os"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	EnvServerAddr        = EnvPrefix + "ADDR"
	EnvServerReadTimeout = EnvPrefix + "READ_TIMEOUT"
)

var scopePattern = regexp.MustCompile(`^/[^\s?#]*$`)

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `toml:"addr"`

	// Scopes are the base addresses the documents are served under.
	// Default: ["/docs"]
	Scopes []string `toml:"scopes"`

	ReadTimeout    string `toml:"read_timeout"`
	readTimeoutVal time.Duration
}

// ReadTimeoutDuration returns the parsed read timeout. It is valid after
// Finalize.
func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	return c.readTimeoutVal
}

// Finalize applies defaults and environment overrides, then validates.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies the non-zero values of overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Addr != "" {
		c.Addr = overlay.Addr
	}
	if len(overlay.Scopes) > 0 {
		c.Scopes = overlay.Scopes
	}
	if overlay.ReadTimeout != "" {
		c.ReadTimeout = overlay.ReadTimeout
	}
}

func (c *ServerConfig) loadDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if len(c.Scopes) == 0 {
		c.Scopes = []string{"/docs"}
	}
	if c.ReadTimeout == "" {
		c.ReadTimeout = "15s"
	}
}

func (c *ServerConfig) loadEnv() {
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Addr = v
	}
	if v := os.Getenv(EnvServerReadTimeout); v != "" {
		c.ReadTimeout = v
	}
}

func (c *ServerConfig) validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.Scopes, validation.Each(validation.Match(scopePattern).Error("must start with / and contain no query"))),
		validation.Field(&c.ReadTimeout, validation.Required, validation.By(duration)),
	)
	if err != nil {
		return err
	}

	c.readTimeoutVal, _ = time.ParseDuration(c.ReadTimeout)
	return nil
}

func duration(value any) error {
	s, _ := value.(string)
	d, err := time.ParseDuration(s)
	if err != nil {
		return validation.NewError("validation_duration", "must be a duration such as 15s")
	}
	if d < 0 {
		return validation.NewError("validation_duration_negative", "must not be negative")
	}
	return nil
}
