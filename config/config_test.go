package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PAGE_SIZE", "SEARCH_DEBOUNCE_MS", "EMAIL_TEST_MODE", "APP_URL", "CATALOG_PATH"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, DefaultPageSize, cfg.PageSize)
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce)
	assert.True(t, cfg.EmailTestMode)
	assert.Equal(t, "http://localhost:8080", cfg.AppURL)
	assert.Empty(t, cfg.CatalogPath)
	assert.False(t, cfg.R2Configured())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PAGE_SIZE", "9")
	t.Setenv("SEARCH_DEBOUNCE_MS", "150")
	t.Setenv("EMAIL_TEST_MODE", "off")
	t.Setenv("APP_URL", "https://learned.example.org/")

	cfg := Load()

	assert.Equal(t, 9, cfg.PageSize)
	assert.Equal(t, 150*time.Millisecond, cfg.SearchDebounce)
	assert.False(t, cfg.EmailTestMode)
	assert.Equal(t, "https://learned.example.org", cfg.AppURL)
}

func TestLoadInvalidPageSize(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"zero", "0"},
		{"negative", "-3"},
		{"not a number", "six"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PAGE_SIZE", tt.value)
			assert.Equal(t, DefaultPageSize, Load().PageSize)
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		fallback bool
		want     bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"off", true, false},
		{"0", true, false},
		{"maybe", true, true},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			assert.Equal(t, tt.want, getEnvBool("TEST_BOOL", tt.fallback))
		})
	}
}

func TestR2Configured(t *testing.T) {
	cfg := &Config{R2AccountID: "acc", R2AccessKeyID: "key", R2SecretAccessKey: "secret"}
	assert.False(t, cfg.R2Configured())

	cfg.R2BucketName = "catalog"
	assert.True(t, cfg.R2Configured())
}
