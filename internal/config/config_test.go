package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentra-hq/sentra-cms/internal/config"
)

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    config.Backend
		wantErr bool
	}{
		{in: "supabase", want: config.BackendSupabase},
		{in: "neon", want: config.BackendNeon},
		{in: "digitalocean", want: config.BackendDigitalOcean},
		{in: "local", want: config.BackendLocal},
		{in: "", want: config.BackendLocal},
		{in: "  Supabase  ", want: config.BackendSupabase},
		{in: "heroku", wantErr: true},
		{in: "postgres://user:pw@host/db", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := config.ParseBackend(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBackend_SSLMode(t *testing.T) {
	assert.Equal(t, "disable", config.BackendLocal.SSLMode())
	assert.Equal(t, "require", config.BackendSupabase.SSLMode())
	assert.Equal(t, "require", config.BackendNeon.SSLMode())
	assert.Equal(t, "require", config.BackendDigitalOcean.SSLMode())
}

func TestConfig_ConnectionString(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Backend = "neon"
	cfg.DB.Host = "db.neon.tech"
	cfg.DB.Port = 5432
	cfg.DB.User = "app"
	cfg.DB.Password = "pw"
	cfg.DB.Name = "sentra"

	got, err := cfg.ConnectionString()
	require.NoError(t, err)
	assert.Equal(t, "postgres://app:pw@db.neon.tech:5432/sentra?sslmode=require", got)
}

func TestConfig_ConnectionString_UnknownBackend(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Backend = "oracle"

	_, err := cfg.ConnectionString()
	assert.Error(t, err)
}
