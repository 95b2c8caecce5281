package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recipe-manager-api/models"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RECIPE_APP_ENV", "")
	t.Setenv("RECIPE_JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "recipe-manager-api", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "recipes.db", cfg.Database.Path)
	assert.Equal(t, DevJWTSecret, cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSAllowOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RECIPE_APP_PORT", "9000")
	t.Setenv("RECIPE_DATABASE_PATH", "/tmp/other.db")
	t.Setenv("RECIPE_JWT_SECRET", "s3cret")
	t.Setenv("RECIPE_JWT_EXPIRATION", "2h")
	t.Setenv("RECIPE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NotContains(t, cfg.String(), "s3cret")
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("RECIPE_APP_ENV", "production")
	t.Setenv("RECIPE_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("RECIPE_JWT_SECRET", "prod-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestOpenDB_Migrates(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)

	for _, m := range []any{&models.User{}, &models.Recipe{}, &models.Review{}} {
		assert.True(t, db.Migrator().HasTable(m))
	}
}
