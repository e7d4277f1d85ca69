package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadUsesDefaultsWithoutConfigFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "KitchenSage", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)

	// Planner scoring defaults
	assert.Equal(t, 10, cfg.Planner.UnusedBonus)
	assert.Equal(t, 5, cfg.Planner.PrepFitBonus)
	assert.Equal(t, 3, cfg.Planner.ServingsBonus)
	assert.Equal(t, 32, cfg.Planner.StreamBuffer)
	assert.Equal(t, 100, cfg.Planner.PoolLimit)

	// Enrichment is off unless explicitly configured
	assert.False(t, cfg.Enrichment.Enabled)
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Database.Driver = "oracle"
	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresAPIKeyWhenEnrichmentEnabled(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Enrichment.Enabled = true
	cfg.Enrichment.APIKey = ""
	assert.Error(t, cfg.Validate())

	cfg.Enrichment.APIKey = "sk-test"
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsNegativeBonuses(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Planner.UnusedBonus = -1
	assert.Error(t, cfg.Validate())
}

func TestGetDSNPerDriver(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Database.Driver = "sqlite"
	cfg.Database.Database = "kitchensage.db"
	assert.Equal(t, "kitchensage.db", cfg.GetDSN())

	cfg.Database.Driver = "postgres"
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = 5432
	cfg.Database.Username = "app"
	cfg.Database.Password = "secret"
	cfg.Database.SSLMode = "disable"
	dsn := cfg.GetDSN()
	assert.Contains(t, dsn, "host=db.internal")
	assert.Contains(t, dsn, "dbname=kitchensage.db")
	assert.Contains(t, dsn, "sslmode=disable")
}
