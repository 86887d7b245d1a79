// Package config отвечает за:
// - чтение server.yaml
// - подстановку переменных окружения вида ${SESSION_SECRET}
// - проставление дефолтов
// - валидацию (чтобы сервер не стартовал с дырявыми настройками)
// - подключение к хранилищам (MongoDB, PostgreSQL, Redis)
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Драйверы хранилища записей.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Хранилища сессий.
const (
	SessionStoreMemory   = "memory"
	SessionStoreRedis    = "redis"
	SessionStorePostgres = "postgres"
)

// Алгоритмы хэширования паролей.
const (
	HasherBcrypt   = "bcrypt"
	HasherArgon2id = "argon2id"
)

// Config — корневая структура всего конфига сервера.
type Config struct {
	Env        string           `yaml:"env"` // dev|stage|prod
	Server     ServerConfig     `yaml:"server"`
	DB         DBConfig         `yaml:"db"`
	Migrations MigrationsConfig `yaml:"migrations"`
	Redis      RedisConfig      `yaml:"redis"`
	Auth       AuthConfig       `yaml:"auth"`
	Password   PasswordConfig   `yaml:"password"`
	Admin      AdminConfig      `yaml:"admin"`
	Feed       FeedConfig       `yaml:"feed"`
	CORS       CORSConfig       `yaml:"cors"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig — настройки HTTP-сервера.
type ServerConfig struct {
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`  // chi middleware.Timeout
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"` // время на graceful shutdown
	MaxHeaderBytes    int           `yaml:"max_header_bytes"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"` // лимит размера тела формы
}

// DBConfig — настройки хранилища пользователей, книг и статей.
type DBConfig struct {
	Driver string `yaml:"driver"` // mongo|postgres|memory

	// MongoDB
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`

	// PostgreSQL
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`

	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// MigrationsConfig — настройки миграций PostgreSQL.
type MigrationsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // file://migrations/postgres
}

// RedisConfig — подключение к Redis (хранилище сессий).
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// AuthConfig — настройки аутентификации.
type AuthConfig struct {
	Sessions SessionsConfig `yaml:"sessions"`
}

// SessionsConfig — серверные сессии и cookie, которая их несёт.
type SessionsConfig struct {
	Store         string        `yaml:"store"` // memory|redis|postgres
	TTL           time.Duration `yaml:"ttl"`
	CookieName    string        `yaml:"cookie_name"`
	CookieSecure  bool          `yaml:"cookie_secure"`
	Secret        string        `yaml:"secret"`         // может содержать ${SESSION_SECRET}
	PurgeSchedule string        `yaml:"purge_schedule"` // cron-выражение чистки просроченных сессий
}

// PasswordConfig — настройки хэширования паролей пользователей.
type PasswordConfig struct {
	Hasher string       `yaml:"hasher"` // bcrypt|argon2id
	Bcrypt BcryptConfig `yaml:"bcrypt"`
	Argon2 Argon2Config `yaml:"argon2"`
}

// BcryptConfig — параметры bcrypt.
type BcryptConfig struct {
	Cost int `yaml:"cost"`
}

// Argon2Config — параметры argon2id.
type Argon2Config struct {
	Time      uint32 `yaml:"time"`
	MemoryKiB uint32 `yaml:"memory_kib"`
	Threads   uint8  `yaml:"threads"`
	KeyLen    uint32 `yaml:"key_len"`
	SaltLen   uint32 `yaml:"salt_len"`
}

// AdminConfig — доступ к /admin/*.
// По умолчанию маршруты открыты, RequireSession включает проверку сессии.
type AdminConfig struct {
	RequireSession bool `yaml:"require_session"`
}

// FeedConfig — шапка RSS-ленты статей.
type FeedConfig struct {
	Title       string `yaml:"title"`
	Link        string `yaml:"link"`
	Description string `yaml:"description"`
}

// CORSConfig — CORS для /api/*.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LogConfig — настройки логирования (zap).
type LogConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // json|console
	File   string `yaml:"file"`
}

// Load читает YAML, подставляет переменные окружения вида ${VAR},
// затем парсит в структуру, проставляет дефолты, применяет переопределения
// из окружения и валидирует.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать конфиг: %w", err)
	}
	return Parse(raw)
}

// Parse делает то же, что Load, но для уже прочитанного YAML.
func Parse(raw []byte) (*Config, error) {
	// secret: "${SESSION_SECRET}" -> secret: "реальное_значение"
	expanded := ExpandEnvStrict(string(raw))

	// неизвестные ключи считаем ошибкой: опечатка в конфиге не должна молча игнорироваться
	var cfg Config
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("не удалось распарсить yaml: %w", err)
	}

	ApplyDefaults(&cfg)
	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var envRe = regexp.MustCompile(`\$\{([A-Z0-9_]+)\}`)

// ExpandEnvStrict заменяет ${VAR} на значение из окружения.
// Если переменная не задана, оставляем ${VAR} как есть,
// а потом Validate() упадёт с понятной ошибкой.
func ExpandEnvStrict(s string) string {
	return envRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := envRe.FindStringSubmatch(m)
		if len(sub) != 2 {
			return m
		}
		if val, ok := os.LookupEnv(sub[1]); ok {
			return val
		}
		return m
	})
}

// ApplyDefaults — дефолтные значения, если в yaml поле не задано.
func ApplyDefaults(cfg *Config) {
	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Server.ReadHeaderTimeout == 0 {
		cfg.Server.ReadHeaderTimeout = 5 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60 * time.Second
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 1 << 20
	}
	if cfg.DB.Driver == "" {
		cfg.DB.Driver = DriverMongo
	}
	if cfg.DB.Database == "" {
		cfg.DB.Database = "bookcorner"
	}
	if cfg.DB.ConnectTimeout == 0 {
		cfg.DB.ConnectTimeout = 10 * time.Second
	}
	if cfg.Migrations.Path == "" {
		cfg.Migrations.Path = "file://migrations/postgres"
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "bookcorner:session:"
	}
	if cfg.Auth.Sessions.Store == "" {
		cfg.Auth.Sessions.Store = SessionStoreMemory
	}
	if cfg.Auth.Sessions.TTL == 0 {
		cfg.Auth.Sessions.TTL = 14 * 24 * time.Hour
	}
	if cfg.Auth.Sessions.CookieName == "" {
		cfg.Auth.Sessions.CookieName = "bookcorner_sid"
	}
	if cfg.Auth.Sessions.PurgeSchedule == "" {
		cfg.Auth.Sessions.PurgeSchedule = "@every 10m"
	}
	if cfg.Password.Hasher == "" {
		cfg.Password.Hasher = HasherBcrypt
	}
	if cfg.Password.Bcrypt.Cost == 0 {
		cfg.Password.Bcrypt.Cost = 10
	}
	if cfg.Feed.Title == "" {
		cfg.Feed.Title = "BookCorner"
	}
	if cfg.Feed.Link == "" {
		cfg.Feed.Link = fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Feed.Description == "" {
		cfg.Feed.Description = "Community articles"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

// Validate проверяет, что конфиг заполнен корректно и безопасно.
// Если что-то не так, возвращаем ошибку и сервер НЕ стартует.
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return errors.New("server.host обязателен")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port некорректен: %d", c.Server.Port)
	}

	switch c.DB.Driver {
	case DriverMongo:
		if strings.TrimSpace(c.DB.URI) == "" || hasPlaceholder(c.DB.URI) {
			return errors.New("db.uri обязателен для db.driver=mongo (через ${MONGO_URI} или прямо строкой)")
		}
		if c.DB.Database == "" {
			return errors.New("db.database обязателен для db.driver=mongo")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DB.DSN) == "" || hasPlaceholder(c.DB.DSN) {
			return errors.New("db.dsn обязателен для db.driver=postgres")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("db.driver должен быть mongo|postgres|memory (сейчас %q)", c.DB.Driver)
	}

	s := c.Auth.Sessions
	switch s.Store {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis.addr обязателен при auth.sessions.store=redis")
		}
	case SessionStorePostgres:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return errors.New("db.dsn обязателен при auth.sessions.store=postgres")
		}
	default:
		return fmt.Errorf("auth.sessions.store должен быть memory|redis|postgres (сейчас %q)", s.Store)
	}
	if s.TTL <= 0 {
		return errors.New("auth.sessions.ttl должен быть > 0")
	}

	secret := strings.TrimSpace(s.Secret)
	if secret == "" {
		return errors.New("auth.sessions.secret обязателен (через ${SESSION_SECRET} или прямо строкой)")
	}
	// Если ${SESSION_SECRET} не подставился, значит переменная окружения не задана
	if hasPlaceholder(secret) {
		return fmt.Errorf("auth.sessions.secret содержит неподставленную переменную: %q (нужно задать SESSION_SECRET)", secret)
	}
	// Секрет подписывает cookie по HS256, поэтому он должен быть длинным
	if len(secret) < 32 {
		return fmt.Errorf("auth.sessions.secret слишком короткий (%d символов); нужно >= 32", len(secret))
	}

	switch strings.ToLower(c.Password.Hasher) {
	case HasherBcrypt:
		if c.Password.Bcrypt.Cost < 4 || c.Password.Bcrypt.Cost > 31 {
			return fmt.Errorf("password.bcrypt.cost должен быть в диапазоне 4..31 (сейчас %d)", c.Password.Bcrypt.Cost)
		}
	case HasherArgon2id:
		if c.Password.Argon2.Time == 0 || c.Password.Argon2.MemoryKiB == 0 || c.Password.Argon2.Threads == 0 {
			return errors.New("password.argon2 должен быть настроен для argon2id")
		}
	default:
		return fmt.Errorf("password.hasher должен быть bcrypt|argon2id (сейчас %q)", c.Password.Hasher)
	}

	return nil
}

func hasPlaceholder(s string) bool {
	return strings.Contains(s, "${") && strings.Contains(s, "}")
}

// ApplyEnvOverrides даёт возможность переопределять
// некоторые настройки через переменные окружения без ${...} в yaml.
// Например SERVER_PORT=9090 переопределит server.port.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		c.DB.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("SESSION_STORE"); v != "" {
		c.Auth.Sessions.Store = strings.ToLower(v)
	}
}

// Addr возвращает адрес для http.Server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
