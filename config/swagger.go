package config

import (
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/docker/go-units"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"golang.org/x/net/idna"

	"github.com/vitalvas/swagdoc/swagger"
)

const (
	EnvSwaggerDisableUI = EnvPrefix + "DISABLE_UI"

	// EnvSettingPrefix starts variables that override a single settings
	// key, e.g. SWAGDOC_SETTING_InfoTitle.
	EnvSettingPrefix = EnvPrefix + "SETTING_"
)

// TagConfig configures one tag. Tags with Visible false are removed from
// the document together with every member they mark.
type TagConfig struct {
	Name        string `toml:"name"`
	Visible     bool   `toml:"visible"`
	Description string `toml:"description"`
	SortOrder   int    `toml:"sort_order"`
}

// Validate checks the tag entry.
func (t TagConfig) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Name, validation.Required),
	)
}

// SwaggerConfig configures document generation and the viewer.
type SwaggerConfig struct {
	DisableUI bool `toml:"disable_ui"`

	// UIArchive is a zip file replacing the bundled viewer.
	UIArchive string `toml:"ui_archive"`

	// MaxArchiveSize limits UIArchive, e.g. "32MiB". Zero disables the limit.
	MaxArchiveSize    string `toml:"max_archive_size"`
	maxArchiveSizeVal int64

	// Settings are the flat document settings (InfoTitle, Host, Schemes...).
	Settings map[string]string `toml:"settings"`

	Tags []TagConfig `toml:"tags"`
}

// MaxArchiveSizeBytes returns the parsed archive limit. It is valid after
// Finalize.
func (c *SwaggerConfig) MaxArchiveSizeBytes() int64 {
	return c.maxArchiveSizeVal
}

// HiddenTags returns the names of tags configured with visible = false.
func (c *SwaggerConfig) HiddenTags() []string {
	var names []string
	for _, t := range c.Tags {
		if !t.Visible {
			names = append(names, t.Name)
		}
	}
	return names
}

// VisibleTags returns the overrides of tags configured with visible = true.
func (c *SwaggerConfig) VisibleTags() []swagger.TagOverride {
	var tags []swagger.TagOverride
	for _, t := range c.Tags {
		if t.Visible {
			tags = append(tags, swagger.TagOverride{
				Name:        t.Name,
				Visible:     true,
				Description: t.Description,
				SortOrder:   t.SortOrder,
			})
		}
	}
	return tags
}

// Finalize applies defaults and environment overrides, then validates.
func (c *SwaggerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies the non-zero values of overlay. Settings are merged per
// key; a non-empty tag list replaces the base list.
func (c *SwaggerConfig) Merge(overlay *SwaggerConfig) {
	if overlay.DisableUI {
		c.DisableUI = true
	}
	if overlay.UIArchive != "" {
		c.UIArchive = overlay.UIArchive
	}
	if overlay.MaxArchiveSize != "" {
		c.MaxArchiveSize = overlay.MaxArchiveSize
	}
	if len(overlay.Settings) > 0 && c.Settings == nil {
		c.Settings = make(map[string]string, len(overlay.Settings))
	}
	for k, v := range overlay.Settings {
		c.Settings[k] = v
	}
	if len(overlay.Tags) > 0 {
		c.Tags = overlay.Tags
	}
}

func (c *SwaggerConfig) loadDefaults() {
	if c.MaxArchiveSize == "" {
		c.MaxArchiveSize = "32MiB"
	}
	if c.Settings == nil {
		c.Settings = make(map[string]string)
	}
}

func (c *SwaggerConfig) loadEnv() {
	if v := os.Getenv(EnvSwaggerDisableUI); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.DisableUI = b
		}
	}

	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvSettingPrefix) {
			continue
		}
		if name := strings.TrimPrefix(key, EnvSettingPrefix); name != "" {
			c.Settings[name] = value
		}
	}
}

func (c *SwaggerConfig) validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.MaxArchiveSize, validation.Required, validation.By(byteSize)),
		validation.Field(&c.Settings, validation.Map(
			validation.Key(swagger.SettingInfoContactEmail, is.EmailFormat).Optional(),
			validation.Key(swagger.SettingInfoContactURL, is.URL).Optional(),
			validation.Key(swagger.SettingInfoLicenseURL, is.URL).Optional(),
			validation.Key(swagger.SettingInfoTermsOfService, is.URL).Optional(),
			validation.Key(swagger.SettingHost, validation.By(host)).Optional(),
			validation.Key(swagger.SettingSchemes, validation.By(schemes)).Optional(),
			validation.Key(swagger.SettingBasePath, validation.Match(scopePattern).Error("must start with /")).Optional(),
		).AllowExtraKeys()),
		validation.Field(&c.Tags, validation.By(uniqueTags)),
	)
	if err != nil {
		return err
	}

	c.maxArchiveSizeVal, _ = units.RAMInBytes(c.MaxArchiveSize)
	return nil
}

func byteSize(value any) error {
	s, _ := value.(string)
	size, err := units.RAMInBytes(s)
	if err != nil {
		return validation.NewError("validation_size", "must be a size such as 32MiB")
	}
	if size < 0 {
		return validation.NewError("validation_size_negative", "must not be negative")
	}
	return nil
}

// host accepts a DNS name, an IP address, or either with a port. Unicode
// names are checked in their ASCII form.
func host(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	name, port := s, ""
	if h, p, err := net.SplitHostPort(s); err == nil {
		name, port = h, p
	}

	if net.ParseIP(name) == nil {
		ascii, err := idna.Lookup.ToASCII(name)
		if err != nil {
			return validation.NewError("validation_host", "must be a host name or host:port")
		}
		name = ascii
	}

	if err := is.Host.Validate(name); err != nil {
		return validation.NewError("validation_host", "must be a host name or host:port")
	}
	if port != "" {
		if err := is.Port.Validate(port); err != nil {
			return validation.NewError("validation_host_port", "must have a valid port")
		}
	}
	return nil
}

var allowedSchemes = validation.In("http", "https", "ws", "wss").Error("must be http, https, ws or wss")

// schemes checks a semicolon separated scheme list.
func schemes(value any) error {
	s, _ := value.(string)
	for scheme := range strings.SplitSeq(s, ";") {
		scheme = strings.TrimSpace(scheme)
		if scheme == "" {
			continue
		}
		if err := allowedSchemes.Validate(scheme); err != nil {
			return err
		}
	}
	return nil
}

func uniqueTags(value any) error {
	tags, _ := value.([]TagConfig)
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if seen[t.Name] {
			return validation.NewError("validation_tag_duplicate", "duplicate tag "+strconv.Quote(t.Name))
		}
		seen[t.Name] = true
	}
	return nil
}
