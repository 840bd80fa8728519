package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "AQUAMART"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "AQUAMART_DB_DSN"
	EnvDBHost = "AQUAMART_DB_HOST"
	EnvDBUser = "AQUAMART_DB_USER"
	EnvDBName = "AQUAMART_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Cart          CartConfig
	Media         MediaConfig
	Cloudinary    CloudinaryConfig
	FeatureFlags  FeatureFlagsConfig
	CORS          CORSConfig
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
	Env          string `envconfig:"AQUAMART_APP_ENV" required:"true"`
	Port         string `envconfig:"AQUAMART_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"AQUAMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AQUAMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"AQUAMART_DB_DSN"`
	Driver string `envconfig:"AQUAMART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"AQUAMART_DB_HOST"`
	LegacyPort     int    `envconfig:"AQUAMART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"AQUAMART_DB_USER"`
	LegacyPassword string `envconfig:"AQUAMART_DB_PASSWORD"`
	LegacyName     string `envconfig:"AQUAMART_DB_NAME"`
	LegacySSLMode  string `envconfig:"AQUAMART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"AQUAMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AQUAMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AQUAMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AQUAMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"AQUAMART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"AQUAMART_REDIS_ADDR"`
	Password     string        `envconfig:"AQUAMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"AQUAMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AQUAMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AQUAMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AQUAMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AQUAMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AQUAMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"AQUAMART_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"AQUAMART_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"AQUAMART_JWT_EXPIRATION_MINUTES" default:"30"`
	RefreshTokenTTLMinutes int    `envconfig:"AQUAMART_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"AQUAMART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"AQUAMART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"AQUAMART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"AQUAMART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"AQUAMART_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"AQUAMART_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"AQUAMART_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"AQUAMART_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type CartConfig struct {
	// TTL refreshes on every cart read or mutation, so an active cart
	// never expires under the shopper.
	TTL time.Duration `envconfig:"AQUAMART_CART_TTL" default:"720h"`
}

type MediaConfig struct {
	MaxUploadMB int `envconfig:"AQUAMART_MAX_UPLOAD_MB" default:"50"`
}

type CloudinaryConfig struct {
	URL    string `envconfig:"AQUAMART_CLOUDINARY_URL"`
	Folder string `envconfig:"AQUAMART_CLOUDINARY_FOLDER" default:"aquamart"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"AQUAMART_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"AQUAMART_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
