package config

import (
	"bytes"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type AppCfg struct {
	Name string
	Env  string
	Host string
	Port int
}

type LogCfg struct {
	Level string
}

type DBCfg struct {
	DSN         string
	MaxOpen     int
	MaxIdle     int
	AutoMigrate bool
}

type RedisCfg struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

type AuthCfg struct {
	// OwnerOpenID is the external identity that gets the admin role on
	// first sign-in.
	OwnerOpenID string
	// GatewayURL points at the external end-user auth service.
	GatewayURL string
	// ApiKeyPrefix is prepended to freshly minted API key tokens.
	ApiKeyPrefix string
	// SessionTTLHours bounds admin panel sessions.
	SessionTTLHours int
	// BcryptCost parameterizes admin password hashing.
	BcryptCost int
	// SecureCookies toggles the Secure attribute; disable for local http.
	SecureCookies bool
	// SeedAdminEmail/SeedAdminPassword provision an initial admin account at
	// startup when both are set. The upsert is keyed on email, so restarting
	// with the same values is idempotent.
	SeedAdminEmail    string
	SeedAdminPassword string
	SeedAdminName     string
}

type Config struct {
	App      AppCfg
	Log      LogCfg
	Database DBCfg
	Redis    RedisCfg
	Auth     AuthCfg
}

func Load() (*Config, error) {
	base := viper.New()
	base.SetConfigName("config")
	base.SetConfigType("yaml")
	base.AddConfigPath("./configs")
	base.AddConfigPath(".")
	base.AutomaticEnv()
	base.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	base.SetEnvPrefix("DATANEST") // e.g. DATANEST_APP_PORT -> app.port

	// First assign a default value (effective regardless of whether there is a file or not)
	setDefaults(base)

	// Read the file (if any)
	if err := base.ReadInConfig(); err == nil {
		// After finding the file, manually perform one expansion of ${ENV}, and then parse it.
		path := base.ConfigFileUsed()
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		expanded := os.ExpandEnv(string(raw))

		// Load the expanded content with a new viper and copy the env settings.
		v := viper.New()
		v.SetConfigType("yaml")
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, err
		}
		v.AutomaticEnv()
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.SetEnvPrefix("DATANEST")
		setDefaults(v)

		cfg := new(Config)
		if err := v.Unmarshal(&cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	// No files are also allowed, using only env + default values
	cfg := new(Config)
	if err := base.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "datanest")
	v.SetDefault("app.env", "debug")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("database.maxOpen", 20)
	v.SetDefault("database.maxIdle", 5)
	v.SetDefault("database.autoMigrate", true)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.poolSize", 10)
	v.SetDefault("auth.apiKeyPrefix", "dk-")
	v.SetDefault("auth.sessionTTLHours", 168)
	v.SetDefault("auth.bcryptCost", 10)
	v.SetDefault("auth.secureCookies", true)
}
