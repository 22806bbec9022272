package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Keys      KeysConfig      `mapstructure:"keys"`
	Wallet    WalletConfig    `mapstructure:"wallet"`
	UserAgent UserAgentConfig `mapstructure:"user_agent"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"` // false = in-memory ledger (demo mode)
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// KeysConfig names the two signing keypairs generated at startup.
// One keypair per principal role; rotation is out of scope.
type KeysConfig struct {
	MerchantKeyID string `mapstructure:"merchant_key_id"` // empty = derive from public key
	UserKeyID     string `mapstructure:"user_key_id"`
	MerchantName  string `mapstructure:"merchant_name"`
}

// WalletConfig seeds the store-owned ledger account.
type WalletConfig struct {
	OwnerID        string `mapstructure:"owner_id"`
	InitialBalance int64  `mapstructure:"initial_balance"` // minor units
	Currency       string `mapstructure:"currency"`
}

// UserAgentConfig points at the delegated personal-wallet service.
type UserAgentConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// AdminConfig guards operator endpoints (refund, topup).
type AdminConfig struct {
	// Argon2id hash of the admin API key, in the standard
	// $argon2id$v=..$m=..,t=..,p=..$salt$hash encoding. Empty disables the guard.
	APIKeyHash string `mapstructure:"api_key_hash"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: ASC_ (Agent Settlement Core).
// Nested keys use underscore: ASC_DATABASE_HOST, ASC_WALLET_CURRENCY, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "agent_settlement")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("keys.merchant_key_id", "")
	v.SetDefault("keys.user_key_id", "")
	v.SetDefault("keys.merchant_name", "virtual-bookstore")
	v.SetDefault("wallet.owner_id", "store")
	v.SetDefault("wallet.initial_balance", 50000)
	v.SetDefault("wallet.currency", "BRL")
	v.SetDefault("user_agent.base_url", "http://localhost:8001")
	v.SetDefault("user_agent.timeout", "10s")
	v.SetDefault("admin.api_key_hash", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: ASC_DATABASE_HOST -> database.host
	v.SetEnvPrefix("ASC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
