package swagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySettings(t *testing.T) {
	t.Run("lone contact email creates parents", func(t *testing.T) {
		doc := &Document{}
		require.NoError(t, ApplySettings(doc, map[string]string{
			SettingInfoContactEmail: "api@example.com",
		}))

		require.NotNil(t, doc.Info)
		require.NotNil(t, doc.Info.Contact)
		assert.Equal(t, "api@example.com", doc.Info.Contact.Email)
		assert.Empty(t, doc.Info.Title)
		assert.Nil(t, doc.Info.License)
	})

	t.Run("all keys", func(t *testing.T) {
		doc := &Document{}
		require.NoError(t, ApplySettings(doc, map[string]string{
			SettingBasePath:           "/api",
			SettingHost:               "api.example.com:8443",
			SettingSchemes:            " https ; ;http",
			SettingInfoTitle:          "Petstore",
			SettingInfoDescription:    "Pets",
			SettingInfoVersion:        "1.2.0",
			SettingInfoTermsOfService: "https://example.com/tos",
			SettingInfoContactName:    "API team",
			SettingInfoContactURL:     "https://example.com",
			SettingInfoLicenseName:    "MIT",
			SettingInfoLicenseURL:     "https://opensource.org/licenses/MIT",
		}))

		assert.Equal(t, "/api", doc.BasePath)
		assert.Equal(t, "api.example.com:8443", doc.Host)
		assert.Equal(t, []string{"https", "http"}, doc.Schemes)
		assert.Equal(t, &Info{
			Title:          "Petstore",
			Description:    "Pets",
			Version:        "1.2.0",
			TermsOfService: "https://example.com/tos",
			Contact:        &Contact{Name: "API team", URL: "https://example.com"},
			License:        &License{Name: "MIT", URL: "https://opensource.org/licenses/MIT"},
		}, doc.Info)
	})

	t.Run("absent keys leave document untouched", func(t *testing.T) {
		doc := &Document{BasePath: "/keep"}
		require.NoError(t, ApplySettings(doc, nil))
		assert.Equal(t, "/keep", doc.BasePath)
		assert.Nil(t, doc.Info)
	})

	t.Run("existing info is extended", func(t *testing.T) {
		info := &Info{Title: "Kept"}
		doc := &Document{Info: info}
		require.NoError(t, ApplySettings(doc, map[string]string{SettingInfoLicenseName: "MIT"}))

		assert.Same(t, info, doc.Info)
		assert.Equal(t, "Kept", doc.Info.Title)
		assert.Equal(t, "MIT", doc.Info.License.Name)
	})

	t.Run("invalid host", func(t *testing.T) {
		err := ApplySettings(&Document{}, map[string]string{SettingHost: "bad host!"})
		assert.ErrorContains(t, err, "setting Host")
	})
}

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"example.com", "example.com"},
		{"Example.COM", "example.com"},
		{"bücher.example", "xn--bcher-kva.example"},
		{"bücher.example:8080", "xn--bcher-kva.example:8080"},
		{"127.0.0.1:80", "127.0.0.1:80"},
		{"[::1]:8080", "[::1]:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeHost(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
