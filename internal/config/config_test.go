package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setMinimalEnv(t *testing.T) {
	t.Helper()

	// keep a stray .env in the package dir out of the tests
	t.Setenv(EnvDotenv, filepath.Join(t.TempDir(), "empty.env"))
	require.NoError(t, os.WriteFile(os.Getenv(EnvDotenv), nil, 0o600))

	t.Setenv(EnvURL, "https://api.example.com/items")
	for _, key := range []string{EnvMethod, EnvHeaders, EnvBody, EnvTimeout} {
		unsetEnv(t, key)
	}
}

// unsetEnv removes key for the duration of the test. envconfig treats an
// empty but set variable as a value, so t.Setenv(key, "") is not enough.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad_Defaults(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/items", cfg.URL)
	assert.Equal(t, "GET", cfg.Method)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.Body)
	assert.Nil(t, cfg.Header())
}

func TestLoad_FromEnvironment(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvMethod, "post")
	t.Setenv(EnvHeaders, "Authorization: Bearer abc\nX-Trace:t-1")
	t.Setenv(EnvBody, `{"name":"x"}`)
	t.Setenv(EnvTimeout, "5s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "POST", cfg.Method)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, `{"name":"x"}`, cfg.Body)

	h := cfg.Header()
	assert.Equal(t, "Bearer abc", h.Get("Authorization"))
	assert.Equal(t, "t-1", h.Get("X-Trace"))
}

func TestLoad_HeaderValuesWithColonsAndCommas(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvHeaders, "Referer:https://example.com/a\n"+
		"If-Modified-Since: Mon, 01 Jan 2024 00:00:00 GMT\n"+
		"\n"+
		"Accept: application/json\n"+
		"Accept: text/plain")

	cfg, err := Load("")
	require.NoError(t, err)

	h := cfg.Header()
	assert.Equal(t, "https://example.com/a", h.Get("Referer"))
	assert.Equal(t, "Mon, 01 Jan 2024 00:00:00 GMT", h.Get("If-Modified-Since"))
	assert.Equal(t, []string{"application/json", "text/plain"}, h.Values("Accept"))
}

func TestHeadersDecode_Invalid(t *testing.T) {
	for _, value := range []string{"no-colon", ": empty name", "Ok: 1\nbroken"} {
		var h Headers
		assert.Error(t, h.Decode(value), value)
	}
}

func TestLoad_ArgumentOverridesURL(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load("http://localhost:8080/health")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/health", cfg.URL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "relative url", key: EnvURL, value: "/items"},
		{name: "unknown method", key: EnvMethod, value: "FETCH"},
		{name: "bad timeout", key: EnvTimeout, value: "soon"},
		{name: "negative timeout", key: EnvTimeout, value: "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setMinimalEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingURL(t *testing.T) {
	setMinimalEnv(t)
	unsetEnv(t, EnvURL)

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "URL")
}

func TestLoad_Dotenv(t *testing.T) {
	setMinimalEnv(t)
	unsetEnv(t, EnvURL)

	path := filepath.Join(t.TempDir(), "jsofetch.env")
	require.NoError(t, os.WriteFile(path, []byte("JSOFETCH_URL=https://dotenv.example.com/\nJSOFETCH_METHOD=DELETE\n"), 0o600))
	t.Setenv(EnvDotenv, path)
	t.Setenv(EnvMethod, "PUT")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://dotenv.example.com/", cfg.URL)
	assert.Equal(t, "PUT", cfg.Method, "existing variables win over the dotenv file")
}

func TestLoad_MissingExplicitDotenv(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvDotenv, filepath.Join(t.TempDir(), "nope.env"))

	_, err := Load("")
	assert.Error(t, err)
}
