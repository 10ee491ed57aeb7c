package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 10.0, cfg.RateLimit.RPS)
}

func TestFromViper_LeeValoresComoTexto(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "MEMORY")
	v.Set("DB_PORT", "6543")
	v.Set("DB_AUTO_MIGRATE", "true")
	v.Set("RATE_LIMIT_RPS", "2.5")
	v.Set("HTTP_PORT", "no-es-numero")

	cfg := fromViper(v)

	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 2.5, cfg.RateLimit.RPS)
	assert.Equal(t, 8080, cfg.HTTP.Port, "un valor inválido cae al default")
}

func TestValidate(t *testing.T) {
	cfg := fromViper(viper.New())
	require.Error(t, cfg.Validate(), "sin JWT_SECRET debe fallar")

	cfg.JWT.Secret = "s3cr3t"
	require.NoError(t, cfg.Validate())

	cfg.Store.Driver = "mongo"
	assert.Error(t, cfg.Validate())
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "granja", Password: "p@ss:word", DBName: "granja", SSLMode: "disable"}
	assert.Equal(t, "postgres://granja:p%40ss%3Aword@db:5432/granja?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otra"
	assert.Equal(t, "postgres://otra", c.ConnectionString())
}
