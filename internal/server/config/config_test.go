package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/config"
)

const testSecret = "supersecretkeysupersecretkey123456"

func minimalValidConfig() *config.Config {
	cfg := &config.Config{
		DB: config.DBConfig{Driver: config.DriverMemory},
		Auth: config.AuthConfig{
			Sessions: config.SessionsConfig{Secret: testSecret},
		},
	}
	config.ApplyDefaults(cfg)
	return cfg
}

func TestExpandEnvStrict_ReplacesExistingEnv(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)

	out := config.ExpandEnvStrict(`secret: "${SESSION_SECRET}"`)
	require.Equal(t, `secret: "`+testSecret+`"`, out)
}

func TestExpandEnvStrict_LeavesUnknownEnvAsIs(t *testing.T) {
	in := `secret: "${MISSING_ENV_FOR_TEST}"`
	require.Equal(t, in, config.ExpandEnvStrict(in))
}

func TestApplyDefaults_SetsExpectedDefaults(t *testing.T) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, config.DriverMongo, cfg.DB.Driver)
	require.Equal(t, config.SessionStoreMemory, cfg.Auth.Sessions.Store)
	require.Equal(t, 14*24*time.Hour, cfg.Auth.Sessions.TTL)
	require.Equal(t, "bookcorner_sid", cfg.Auth.Sessions.CookieName)
	require.Equal(t, config.HasherBcrypt, cfg.Password.Hasher)
	require.Equal(t, 10, cfg.Password.Bcrypt.Cost)
	require.False(t, cfg.Admin.RequireSession)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestValidate_MinimalIsValid(t *testing.T) {
	require.NoError(t, minimalValidConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	cases := map[string]func(c *config.Config){
		"empty host":         func(c *config.Config) { c.Server.Host = "" },
		"bad port":           func(c *config.Config) { c.Server.Port = 70000 },
		"unknown driver":     func(c *config.Config) { c.DB.Driver = "sqlite" },
		"mongo without uri":  func(c *config.Config) { c.DB.Driver = config.DriverMongo },
		"postgres no dsn":    func(c *config.Config) { c.DB.Driver = config.DriverPostgres },
		"redis without addr": func(c *config.Config) { c.Auth.Sessions.Store = config.SessionStoreRedis },
		"pg sessions no dsn": func(c *config.Config) { c.Auth.Sessions.Store = config.SessionStorePostgres },
		"unknown store":      func(c *config.Config) { c.Auth.Sessions.Store = "file" },
		"empty secret":       func(c *config.Config) { c.Auth.Sessions.Secret = "" },
		"short secret":       func(c *config.Config) { c.Auth.Sessions.Secret = "short" },
		"placeholder secret": func(c *config.Config) { c.Auth.Sessions.Secret = "${SESSION_SECRET_NOT_SET_AT_ALL_IN_TESTS}" },
		"bad bcrypt cost":    func(c *config.Config) { c.Password.Bcrypt.Cost = 2 },
		"argon2 no params":   func(c *config.Config) { c.Password.Hasher = config.HasherArgon2id },
		"unknown hasher":     func(c *config.Config) { c.Password.Hasher = "md5" },
		"zero ttl":           func(c *config.Config) { c.Auth.Sessions.TTL = -time.Second },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := minimalValidConfig()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("SESSION_STORE", "redis")

	cfg := minimalValidConfig()
	cfg.ApplyEnvOverrides()

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	require.Equal(t, config.SessionStoreRedis, cfg.Auth.Sessions.Store)
}

func TestLoad_FromFile(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("TEST_MONGO_URI", "mongodb://localhost:27017")

	yml := `
server:
  host: 127.0.0.1
  port: 8181
  read_timeout: 3s
db:
  driver: mongo
  uri: "${TEST_MONGO_URI}"
  database: shelf
auth:
  sessions:
    ttl: 1h
    secret: "${SESSION_SECRET}"
admin:
  require_session: true
cors:
  allowed_origins: ["http://localhost:3000"]
`
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:8181", cfg.Addr())
	require.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, "mongodb://localhost:27017", cfg.DB.URI)
	require.Equal(t, "shelf", cfg.DB.Database)
	require.Equal(t, time.Hour, cfg.Auth.Sessions.TTL)
	require.Equal(t, testSecret, cfg.Auth.Sessions.Secret)
	require.True(t, cfg.Admin.RequireSession)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	require.Equal(t, "http://127.0.0.1:8181", cfg.Feed.Link)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestParse_BadYAML(t *testing.T) {
	_, err := config.Parse([]byte("server: [unclosed"))
	require.Error(t, err)
}

func TestParse_UnknownKeyRejected(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)

	yml := `
db:
  driver: memory
  query_timeout: 3s
auth:
  sessions:
    secret: "${SESSION_SECRET}"
`
	_, err := config.Parse([]byte(yml))
	require.ErrorContains(t, err, "query_timeout")
}

func TestLoad_ShippedConfig(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SESSION_STORE", "")
	t.Setenv("SERVER_PORT", "")

	cfg, err := config.Load(filepath.Join("..", "..", "..", "configs", "server.yaml"))
	require.NoError(t, err)

	require.Equal(t, config.DriverMongo, cfg.DB.Driver)
	require.Equal(t, "bookcorner", cfg.DB.Database)
	require.Equal(t, 5*time.Second, cfg.DB.ConnectTimeout)
	require.Equal(t, 336*time.Hour, cfg.Auth.Sessions.TTL)
	require.Equal(t, 10, cfg.Password.Bcrypt.Cost)
	require.Equal(t, int64(1048576), cfg.Server.MaxBodyBytes)
}
