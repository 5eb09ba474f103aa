package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/judgebase/judgebase-api/internal/logger"
	"github.com/judgebase/judgebase-api/internal/validator"
)

type PostgresConfig struct {
	User               string        `validate:"required"`
	Password           string        `validate:"required"`
	Host               string        `validate:"required"`
	Database           string        `validate:"required"`
	MaxIdleConnections int           `validate:"required" mapstructure:"max_idle_connections"`
	MaxOpenConnections int           `validate:"required" mapstructure:"max_open_connections"`
	ConnectionTTL      time.Duration `validate:"required" mapstructure:"connection_ttl"`
	Port               int16         `validate:"required"`
}

type SlogConfig struct {
	Level int `mapstructure:"level"`
}

type GormLogConfig struct {
	Level        int  `mapstructure:"level"`
	TraceQueries bool `mapstructure:"trace_queries"`
}

type LoggingConfig struct {
	Gorm GormLogConfig `mapstructure:"gorm"`
	App  SlogConfig    `mapstructure:"app"`
	// Telemetry exporter: otlp, stdout or none
	Exporter string `mapstructure:"exporter" validate:"omitempty,oneof=otlp stdout none"`
}

// The single admin account
type AdminConfig struct {
	Username   string        `mapstructure:"username"    validate:"required"`
	Password   string        `mapstructure:"password"    validate:"required"`
	SessionTTL time.Duration `mapstructure:"session_ttl" validate:"required"`
}

type SessionConfig struct {
	// Empty keeps admin sessions in postgres
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	CookieName    string `mapstructure:"cookie_name"    validate:"required"`
	Secure        bool   `mapstructure:"secure"`
}

// Bearer tokens for the judge and organizer dashboards
type TokenConfig struct {
	Secret string        `mapstructure:"secret" validate:"required,min=32"`
	TTL    time.Duration `mapstructure:"ttl"    validate:"required"`
}

// Empty endpoint disables identity provisioning. Outside the emulator the
// admin calls authenticate with the service account found through
// GOOGLE_APPLICATION_CREDENTIALS.
type IdentityConfig struct {
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
	APIKey   string `mapstructure:"api_key"  validate:"required_with=Endpoint"`
	Emulator bool   `mapstructure:"emulator"`
}

type MailConfig struct {
	// Empty endpoint drops outgoing email with a warning
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
	APIKey   string `mapstructure:"api_key"  validate:"required_with=Endpoint"`
	From     string `mapstructure:"from"     validate:"required"`
	// Base URL of the web app, used for links in emails
	AppURL string `mapstructure:"app_url" validate:"required,url"`
}

type MinioConfig struct {
	Endpoint        string `mapstructure:"endpoint"          validate:"required"`
	AccessKeyID     string `mapstructure:"access_key_id"     validate:"required"`
	SecretAccessKey string `mapstructure:"secret_access_key" validate:"required"`
	Bucket          string `mapstructure:"bucket"            validate:"required"`
	SSLEnabled      bool   `mapstructure:"ssl_enabled"`
}

type AzureStorageConfig struct {
	URL       string `mapstructure:"url"       validate:"required"`
	Account   string `mapstructure:"account"   validate:"required"`
	Key       string `mapstructure:"key"       validate:"required"`
	Container string `mapstructure:"container" validate:"required"`
}

type StorageConfig struct {
	// "minio", "azure" or empty to disable photo uploads
	Backend string              `mapstructure:"backend" validate:"omitempty,oneof=minio azure"`
	Minio   *MinioConfig        `mapstructure:"minio"   validate:"required_if=Backend minio"`
	Azure   *AzureStorageConfig `mapstructure:"azure"   validate:"required_if=Backend azure"`
}

// Empty addresses fall back to postgres search
type SearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index" validate:"required"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// See judgebase.yaml for an example config
type Config struct {
	Postgres             *PostgresConfig `mapstructure:"postgres"               validate:"required"`
	Logging              *LoggingConfig  `mapstructure:"logging"                validate:"required"`
	Admin                *AdminConfig    `mapstructure:"admin"                  validate:"required"`
	Session              *SessionConfig  `mapstructure:"session"                validate:"required"`
	Token                *TokenConfig    `mapstructure:"token"                  validate:"required"`
	Identity             *IdentityConfig `mapstructure:"identity"`
	Mail                 *MailConfig     `mapstructure:"mail"                   validate:"required"`
	Storage              *StorageConfig  `mapstructure:"storage"`
	Search               *SearchConfig   `mapstructure:"search"                 validate:"required"`
	CORS                 *CORSConfig     `mapstructure:"cors"`
	ListenAddress        string          `mapstructure:"listen_address"         validate:"required"`
	GracefulShutdownSecs int64           `mapstructure:"graceful_shutdown_secs"`
}

const (
	AdminPassword              string = "admin.password"
	AdminSessionTTL            string = "admin.session_ttl"
	AdminUsername              string = "admin.username"
	AppLogLevel                string = "logging.app.level"
	CORSAllowedOrigins         string = "cors.allowed_origins"
	EnvPrefix                  string = "judgebase"
	GormLogLevel               string = "logging.gorm.level"
	GormTraceQueries           string = "logging.gorm.trace_queries"
	GracefulShutdownSecs       string = "graceful_shutdown_secs"
	IdentityAPIKey             string = "identity.api_key"
	IdentityEmulator           string = "identity.emulator"
	IdentityEndpoint           string = "identity.endpoint"
	ListenAddress              string = "listen_address"
	MailAPIKey                 string = "mail.api_key"
	MailAppURL                 string = "mail.app_url"
	MailEndpoint               string = "mail.endpoint"
	MailFrom                   string = "mail.from"
	MinioAccessKeyID           string = "storage.minio.access_key_id"
	MinioSecretAccessKey       string = "storage.minio.secret_access_key" // #nosec
	PostgresConnectonTTL       string = "postgres.connection_ttl"
	PostgresDatabase           string = "postgres.database"
	PostgresHost               string = "postgres.host"
	PostgresMaxIdleConnections string = "postgres.max_idle_connections"
	PostgresMaxOpenConnections string = "postgres.max_open_connections"
	PostgresPassword           string = "postgres.password"
	PostgresPort               string = "postgres.port"
	PostgresUser               string = "postgres.user"
	SearchIndex                string = "search.index"
	SearchPassword             string = "search.password"
	SessionCookieName          string = "session.cookie_name"
	SessionRedisAddr           string = "session.redis_addr"
	SessionRedisPassword       string = "session.redis_password"
	SessionSecure              string = "session.secure"
	StorageAzureKey            string = "storage.azure.key"
	TelemetryExporter          string = "logging.exporter"
	TokenSecret                string = "token.secret" // #nosec
	TokenTTL                   string = "token.ttl"
)

var configReady = false
var config Config

func GetConfig() (*Config, error) {
	if configReady {
		logger.Logger.Debug("returning already-loaded config")
		return &config, nil
	}
	logger.Logger.Info("loading config")

	v := viper.New()

	v.SetConfigName("judgebase")

	v.AddConfigPath("/etc/judgebase/")
	v.AddConfigPath(".")

	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.AutomaticEnv()

	// workaround for https://github.com/spf13/viper/issues/761
	// bind env vars explicitly so they unmarshal into the nested struct
	for _, key := range []string{
		PostgresUser,
		PostgresPassword,
		PostgresDatabase,
		AdminUsername,
		AdminPassword,
		TokenSecret,
		SessionRedisAddr,
		SessionRedisPassword,
		IdentityEndpoint,
		IdentityAPIKey,
		IdentityEmulator,
		MailEndpoint,
		MailAPIKey,
		MailFrom,
		MailAppURL,
		MinioAccessKeyID,
		MinioSecretAccessKey,
		StorageAzureKey,
		SearchPassword,
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	v.SetDefault(ListenAddress, "[::]:1323")
	v.SetDefault(PostgresHost, "localhost")
	v.SetDefault(PostgresPort, 5432)
	v.SetDefault(PostgresMaxIdleConnections, 2)
	v.SetDefault(PostgresMaxOpenConnections, 10)
	v.SetDefault(PostgresConnectonTTL, 10*time.Minute)
	v.SetDefault(GormLogLevel, int(slog.LevelDebug))
	v.SetDefault(GormTraceQueries, false)
	v.SetDefault(AppLogLevel, int(slog.LevelDebug))
	v.SetDefault(TelemetryExporter, "none")

	v.SetDefault(AdminSessionTTL, 12*time.Hour)
	v.SetDefault(SessionCookieName, "judgebase_session")
	v.SetDefault(SessionSecure, true)
	v.SetDefault(TokenTTL, 24*time.Hour)

	v.SetDefault(MailFrom, "JudgeBase <noreply@judgebase.dev>")
	v.SetDefault(SearchIndex, "judges")
	v.SetDefault(CORSAllowedOrigins, []string{})

	v.SetDefault(GracefulShutdownSecs, 30)

	err := v.ReadInConfig()
	if err != nil {
		// ignore config file not found to allow pure env config
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	err = v.Unmarshal(&config)
	if err != nil {
		configReady = false
		return nil, err
	}

	valid := validator.Create()
	err = valid.Validate(&config)
	if err != nil {
		configReady = false
		return nil, err
	}

	configReady = true
	return &config, nil
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s",
		url.QueryEscape(c.Postgres.User),
		url.QueryEscape(c.Postgres.Password),
		c.Postgres.Host, c.Postgres.Port,
		url.QueryEscape(c.Postgres.Database),
	)
}

// Link into the web app, e.g. AppLink("judge", "login")
func (c *Config) AppLink(elem ...string) string {
	return strings.TrimSuffix(c.Mail.AppURL, "/") + "/" + strings.Join(elem, "/")
}
