package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresNotificationAPIKey(t *testing.T) {
	t.Setenv("NOTIFICATION_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOTIFICATION_API_KEY")
}

func TestLoad_RejectsInsecurePlaceholderKey(t *testing.T) {
	t.Setenv("NOTIFICATION_API_KEY", "your-secret-api-key")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("NOTIFICATION_API_KEY", "push-key")
	t.Setenv("APP_ENV", "development")
	t.Setenv("CATALOG_READ_MODE", "")
	t.Setenv("STORE_TIMEOUT", "")
	t.Setenv("NOTIFICATION_RETENTION", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ReadModePublic, cfg.Catalog.ReadMode)
	assert.Equal(t, 5*time.Second, cfg.Database.StoreTimeout)
	assert.Equal(t, 720*time.Hour, cfg.Notification.Retention)
	assert.False(t, cfg.Database.AutoMigrate)
}

func TestLoad_ReadModeMustBeKnown(t *testing.T) {
	t.Setenv("NOTIFICATION_API_KEY", "push-key")
	t.Setenv("CATALOG_READ_MODE", "staging")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CATALOG_READ_MODE")
}

func TestLoad_PrivateReadModeIsCaseInsensitive(t *testing.T) {
	t.Setenv("NOTIFICATION_API_KEY", "push-key")
	t.Setenv("CATALOG_READ_MODE", "PRIVATE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ReadModePrivate, cfg.Catalog.ReadMode)
}

func TestLoad_ProductionRequiresSessionSecret(t *testing.T) {
	t.Setenv("NOTIFICATION_API_KEY", "push-key")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("DB_PASSWORD", "pw")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_CONNECT_TIMEOUT", "3s")
	t.Setenv("DB_MAX_CONNECTIONS", "")
	t.Setenv("DB_MIN_CONNECTIONS", "")

	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, int32(25), cfg.MaxConns)
}

func TestLoadDatabaseConfig_InvalidPort(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")

	_, err := LoadDatabaseConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PORT")
}
