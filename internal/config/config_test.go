package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/mutualfund-tracker/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // keep a developer .env out of the test
	for _, key := range []string{"MFDB", "MF_QUOTE_SOURCE", "MF_HTTP_TIMEOUT", "MF_AMFI_WINDOW_DAYS",
		"MF_SERVER_HOST", "MF_SERVER_PORT", "MF_LOG_LEVEL", "MF_LOG_PRETTY", "MF_CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "./data/mutualfund.db", cfg.Database.Path)
	assert.Equal(t, "amfi", cfg.Quotes.Source)
	assert.Equal(t, 7, cfg.Quotes.AMFIWindowDays)
	assert.Equal(t, 30*time.Second, cfg.Quotes.HTTPTimeout)
	assert.Equal(t, "localhost:5001", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MFDB", "/tmp/mf.db")
	t.Setenv("MF_QUOTE_SOURCE", "Yahoo")
	t.Setenv("MF_HTTP_TIMEOUT", "5s")
	t.Setenv("MF_AMFI_WINDOW_DAYS", "3")
	t.Setenv("MF_SERVER_PORT", "8080")
	t.Setenv("MF_CORS_ORIGINS", " http://a , ,http://b")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/mf.db", cfg.Database.Path)
	assert.Equal(t, "yahoo", cfg.Quotes.Source)
	assert.Equal(t, 5*time.Second, cfg.Quotes.HTTPTimeout)
	assert.Equal(t, 3, cfg.Quotes.AMFIWindowDays)
	assert.Equal(t, "localhost:8080", cfg.Server.Addr)
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"MF_QUOTE_SOURCE":     "bloomberg",
		"MF_HTTP_TIMEOUT":     "soon",
		"MF_AMFI_WINDOW_DAYS": "0",
		"MF_LOG_PRETTY":       "maybe",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(key, value)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
