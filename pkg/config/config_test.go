package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	require.NotNil(t, cfg)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "data/msms.json", cfg.Registry.DataPath)
	assert.Equal(t, "data/system_log.txt", cfg.Registry.ActionLogPath)
	assert.Equal(t, "data/backup_data.json", cfg.Registry.BackupPath)
	assert.True(t, cfg.Registry.BootstrapAdminEnabled)
	assert.Equal(t, "admin", cfg.Registry.BootstrapAdminUsername)
	assert.False(t, cfg.Registry.CheckInRequiresEnrollment)
	assert.Equal(t, time.Hour, cfg.Exports.SignedURLTTL)
	assert.Equal(t, 12*time.Hour, cfg.JWT.Expiration)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("BOOTSTRAP_ADMIN_ENABLED", false)
	v.Set("CHECKIN_REQUIRES_ENROLLMENT", true)
	v.Set("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	v.Set("JWT_EXPIRATION", "not-a-duration")

	cfg := fromViper(v)
	assert.False(t, cfg.Registry.BootstrapAdminEnabled)
	assert.True(t, cfg.Registry.CheckInRequiresEnrollment)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 12*time.Hour, cfg.JWT.Expiration)
}
