package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/diploma-scanner/internal/extraction"
	"github.com/jonathan/diploma-scanner/internal/gallery"
	"github.com/jonathan/diploma-scanner/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"legacy_fallbacks": true,
		"format": "yaml",
		"fetch_timeout": "5s",
		"gallery": {"owner": "someone", "concurrency": 4},
		"server": {"port": 9090, "gallery_cache_ttl": "1m"},
		"defaults": {"university": {"french": "UNIVERSITÉ DE DSCHANG", "english": "THE UNIVERSITY OF DSCHANG"}}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.True(t, cfg.LegacyFallbacks)
	assert.Equal(t, FormatYAML, cfg.Format)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "someone", cfg.Gallery.Owner)
	assert.Equal(t, 4, cfg.Gallery.Concurrency)
	assert.Equal(t, gallery.DefaultFetchPageSize, cfg.Gallery.FetchPageSize, "unset keys keep their defaults")
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.Server.GalleryCacheTTL)
	assert.Equal(t, types.BilingualPair{French: "UNIVERSITÉ DE DSCHANG", English: "THE UNIVERSITY OF DSCHANG"}, cfg.Defaults.University)
	assert.True(t, cfg.Defaults.School.IsZero())
}

func TestLoad_ValidYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
format: json
gallery:
  owner: bedimcode
  fetch_page_size: 50
defaults:
  certificate_type:
    french: "CERTIFICAT DE LICENCE, 1er GRADE"
    english: "BACHELOR CERTIFICATE, 1st LEVEL"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Gallery.FetchPageSize)
	assert.Equal(t, "BACHELOR CERTIFICATE, 1st LEVEL", cfg.Defaults.CertificateType.English)
}

func TestLoad_Patterns(t *testing.T) {
	path := writeFile(t, "config.yaml", `
patterns:
  fields:
    birthDate:
      - 'Born on\s*(\d{2}/\d{2}/\d{4})'
  composites:
    university: '(UNIVERSITÉ DE \w+)(?s:.*?)(UNIVERSITY OF \w+)'
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	// Keys come back lowercased; field lookup is case-insensitive.
	assert.Equal(t, []string{`Born on\s*(\d{2}/\d{2}/\d{4})`}, cfg.Patterns.Fields["birthdate"])
	assert.Contains(t, cfg.Patterns.Composites, "university")

	schema, err := extraction.SchemaFor(false, cfg.Defaults, cfg.Patterns)
	require.NoError(t, err)
	rec := extraction.New(schema).Extract("Born on 03/04/1995")
	assert.Equal(t, "03/04/1995", rec.BirthDate)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	d := Default()
	assert.Equal(t, d.Format, cfg.Format)
	assert.Equal(t, d.Gallery, cfg.Gallery)
	assert.Equal(t, d.Server, cfg.Server)
	assert.False(t, cfg.LegacyFallbacks)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DIPLOMA_LEGACY_FALLBACKS", "true")
	t.Setenv("DIPLOMA_GALLERY_OWNER", "octocat")
	t.Setenv("DIPLOMA_SERVER_PORT", "7070")

	path := writeFile(t, "config.json", `{"gallery": {"owner": "from-file"}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.LegacyFallbacks)
	assert.Equal(t, "octocat", cfg.Gallery.Owner, "environment wins over the file")
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{ invalid json }`)

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := writeFile(t, "config.txt", `format = "json"`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate_MutuallyExclusive(t *testing.T) {
	cfg := Config{Input: "diploma.txt", InputURL: "https://example.com/diploma.html"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_Ranges(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad format", func(c *Config) { c.Format = "xml" }, "'format' failed 'oneof'"},
		{"negative port", func(c *Config) { c.Server.Port = -1 }, "'server.port' failed 'gte'"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "'server.port' failed 'lte'"},
		{"page size over api max", func(c *Config) { c.Gallery.FetchPageSize = 101 }, "'gallery.fetchpagesize' failed 'lte'"},
		{"negative timeout", func(c *Config) { c.FetchTimeout = -time.Second }, "'fetchtimeout' failed 'gte'"},
		{"bad api base", func(c *Config) { c.Gallery.APIBase = "not a url" }, "'gallery.apibase' failed 'url'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config error")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_HalfFilledDefault(t *testing.T) {
	cfg := Default()
	cfg.Defaults.Ministry = types.BilingualPair{French: "MINISTÈRE DE L'ÉDUCATION"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config error")
	assert.Contains(t, err.Error(), extraction.CompositeMinistry)
}

func TestValidate_BadPattern(t *testing.T) {
	cfg := Default()
	cfg.Patterns = extraction.Patterns{Fields: map[string][]string{"grade": {`Mention (\w+`}}}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config error: schema error in grade: invalid pattern")
}

func TestValidate_InputNotFound(t *testing.T) {
	cfg := Default()
	cfg.Input = filepath.Join(t.TempDir(), "missing.txt")

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input file not found")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := Default()
	cfg.Input = writeFile(t, "diploma.txt", "N° DIP-2020-ABCD-001")
	assert.NoError(t, cfg.Validate())

	empty := Config{}
	assert.NoError(t, empty.Validate(), "zero values mean defaults")
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{
		Format:  FormatYAML,
		Gallery: gallery.Config{Owner: "octocat"},
		Defaults: extraction.Defaults{
			School: types.BilingualPair{French: "ENS DE MAROUA", English: "HTTC OF MAROUA"},
		},
	}

	merged := cfg.MergeWithDefaults(Default())

	assert.Equal(t, FormatYAML, merged.Format)
	assert.Equal(t, "octocat", merged.Gallery.Owner)
	assert.Equal(t, gallery.DefaultAPIBase, merged.Gallery.APIBase)
	assert.Equal(t, gallery.DefaultConcurrency, merged.Gallery.Concurrency)
	assert.Equal(t, 8080, merged.Server.Port)
	assert.Equal(t, 30*time.Second, merged.FetchTimeout)
	assert.Equal(t, "ENS DE MAROUA", merged.Defaults.School.French)
	assert.Equal(t, extraction.DefaultUniversity, merged.Defaults.University)

	// The receiver is not modified.
	assert.Empty(t, cfg.Gallery.APIBase)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Format: FormatJSON, Server: ServerConfig{Port: 9000}}
	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, FormatJSON, merged.Format)
	assert.Equal(t, 9000, merged.Server.Port)
	assert.Empty(t, merged.Gallery.Owner)
}
