package swagger

import (
	"fmt"
	"net"
	"strings"

	"golang.org/x/net/idna"
)

// Settings keys recognized by ApplySettings.
const (
	SettingBasePath           = "BasePath"
	SettingHost               = "Host"
	SettingSchemes            = "Schemes"
	SettingInfoTitle          = "InfoTitle"
	SettingInfoDescription    = "InfoDescription"
	SettingInfoVersion        = "InfoVersion"
	SettingInfoTermsOfService = "InfoTermsOfService"
	SettingInfoContactName    = "InfoContactName"
	SettingInfoContactURL     = "InfoContactUrl"
	SettingInfoContactEmail   = "InfoContactEmail"
	SettingInfoLicenseName    = "InfoLicenseName"
	SettingInfoLicenseURL     = "InfoLicenseUrl"
)

// ApplySettings copies the configured scalar settings onto doc. Only keys
// present in settings are applied. Any key starting with "Info" creates
// doc.Info if absent; likewise "InfoContact" and "InfoLicense" create the
// nested records, so a lone InfoContactEmail yields Info and Info.Contact.
func ApplySettings(doc *Document, settings map[string]string) error {
	if v, ok := settings[SettingBasePath]; ok {
		doc.BasePath = v
	}
	if v, ok := settings[SettingHost]; ok {
		host, err := normalizeHost(v)
		if err != nil {
			return fmt.Errorf("setting %s: %w", SettingHost, err)
		}
		doc.Host = host
	}
	if v, ok := settings[SettingSchemes]; ok {
		doc.Schemes = splitSchemes(v)
	}

	if hasKeyPrefix(settings, "Info") && doc.Info == nil {
		doc.Info = &Info{}
	}
	if v, ok := settings[SettingInfoTitle]; ok {
		doc.Info.Title = v
	}
	if v, ok := settings[SettingInfoDescription]; ok {
		doc.Info.Description = v
	}
	if v, ok := settings[SettingInfoVersion]; ok {
		doc.Info.Version = v
	}
	if v, ok := settings[SettingInfoTermsOfService]; ok {
		doc.Info.TermsOfService = v
	}

	if hasKeyPrefix(settings, "InfoContact") && doc.Info.Contact == nil {
		doc.Info.Contact = &Contact{}
	}
	if v, ok := settings[SettingInfoContactName]; ok {
		doc.Info.Contact.Name = v
	}
	if v, ok := settings[SettingInfoContactURL]; ok {
		doc.Info.Contact.URL = v
	}
	if v, ok := settings[SettingInfoContactEmail]; ok {
		doc.Info.Contact.Email = v
	}

	if hasKeyPrefix(settings, "InfoLicense") && doc.Info.License == nil {
		doc.Info.License = &License{}
	}
	if v, ok := settings[SettingInfoLicenseName]; ok {
		doc.Info.License.Name = v
	}
	if v, ok := settings[SettingInfoLicenseURL]; ok {
		doc.Info.License.URL = v
	}

	return nil
}

func hasKeyPrefix(settings map[string]string, prefix string) bool {
	for k := range settings {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// splitSchemes parses a semicolon delimited scheme list.
func splitSchemes(v string) []string {
	var schemes []string
	for s := range strings.SplitSeq(v, ";") {
		if s = strings.TrimSpace(s); s != "" {
			schemes = append(schemes, s)
		}
	}
	return schemes
}

// normalizeHost converts the host name to its ASCII form, keeping any port.
func normalizeHost(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}

	host, port := v, ""
	if h, p, err := net.SplitHostPort(v); err == nil {
		host, port = h, p
	}

	ascii := host
	if net.ParseIP(host) == nil {
		var err error
		if ascii, err = idna.Lookup.ToASCII(host); err != nil {
			return "", fmt.Errorf("invalid host %q: %w", v, err)
		}
	}
	if port != "" {
		return net.JoinHostPort(ascii, port), nil
	}
	return ascii, nil
}
