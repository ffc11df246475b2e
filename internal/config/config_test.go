package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `<?xml version="1.0" encoding="UTF-8"?>
<API REQUEST_DUMP="true">
    <CONTEXT>
        <PORT>9090</PORT>
        <HOST>127.0.0.1</HOST>
        <TIME_ZONE>UTC</TIME_ZONE>
    </CONTEXT>
    <AUTHENTICATION>
        <ENABLE_TOKEN_AUTH>true</ENABLE_TOKEN_AUTH>
        <ACCESS_TOKEN_MINUTES>15</ACCESS_TOKEN_MINUTES>
        <REFRESH_TOKEN_HOURS>168</REFRESH_TOKEN_HOURS>
    </AUTHENTICATION>
    <RATE_LIMIT>
        <SUBMISSIONS_PER_MINUTE>6</SUBMISSIONS_PER_MINUTE>
        <BURST>3</BURST>
    </RATE_LIMIT>
    <DB>
        <HOST>db.internal</HOST>
        <PORT>5432</PORT>
        <NAME>mindwell</NAME>
        <SSL_MODE>disable</SSL_MODE>
        <USERNAME>file_user</USERNAME>
        <POOL>
            <MAX_OPEN_CONNS>10</MAX_OPEN_CONNS>
        </POOL>
    </DB>
</API>`

func TestLoadConfigParsesAndAppliesEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	t.Setenv("DB_USERNAME", "env_user")
	t.Setenv("DB_PASSWORD", "env_pass")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, loaded.RequestDump)
	assert.Equal(t, 9090, loaded.Context.Port)
	assert.Equal(t, "127.0.0.1", loaded.Context.Host)
	assert.Equal(t, 15, loaded.Authentication.AccessTokenMinutes)
	assert.Equal(t, 6, loaded.RateLimit.SubmissionsPerMinute)
	assert.Equal(t, "db.internal", loaded.DB.Host)
	assert.Equal(t, 10, loaded.DB.Pool.MaxOpenConns)

	// Environment credentials win over what the file declares.
	assert.Equal(t, "env_user", loaded.DB.Username)
	assert.Equal(t, "env_pass", loaded.DB.Password)

	// Subsequent loads return the same instance.
	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Same(t, loaded, again)
	assert.Same(t, loaded, GetConfig())
}
