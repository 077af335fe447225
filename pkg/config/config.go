package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"PERFVAL_APP_ENV" required:"true"`
	Port         string   `envconfig:"PERFVAL_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"PERFVAL_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"PERFVAL_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"PERFVAL_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PERFVAL_DB_DSN"`
	Driver string `envconfig:"PERFVAL_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"PERFVAL_DB_HOST"`
	Port     int    `envconfig:"PERFVAL_DB_PORT" default:"5432"`
	User     string `envconfig:"PERFVAL_DB_USER"`
	Password string `envconfig:"PERFVAL_DB_PASSWORD"`
	Name     string `envconfig:"PERFVAL_DB_NAME"`
	SSLMode  string `envconfig:"PERFVAL_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PERFVAL_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PERFVAL_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PERFVAL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PERFVAL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	Address      string        `envconfig:"PERFVAL_REDIS_ADDR" required:"true"`
	Password     string        `envconfig:"PERFVAL_REDIS_PASSWORD"`
	DB           int           `envconfig:"PERFVAL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PERFVAL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PERFVAL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PERFVAL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PERFVAL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PERFVAL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"PERFVAL_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PERFVAL_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"PERFVAL_JWT_EXPIRATION_MINUTES" default:"480"`
	SessionTTLMinutes int    `envconfig:"PERFVAL_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the server-side session lifetime.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PERFVAL_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PERFVAL_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PERFVAL_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PERFVAL_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PERFVAL_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"PERFVAL_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"PERFVAL_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"PERFVAL_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"PERFVAL_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"PERFVAL_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"PERFVAL_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PERFVAL_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PERFVAL_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.Driver == DriverSQLite {
		return fmt.Errorf("%s is required when using the sqlite driver", EnvDBDSN)
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
