package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Password PasswordConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Driver      string // postgres | memory
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int32
	AutoMigrate bool // aplica migrations/ al arrancar la API
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT. Secret vacío no impide arrancar, pero cada login falla.
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PasswordConfig configuración del hash de contraseñas.
type PasswordConfig struct {
	BcryptCost int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde .env / config.env).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración desde una instancia de Viper ya cargada.
func FromViper(v *viper.Viper) (*Config, error) {
	expHours, err := getInt(v, "JWT_EXPIRATION_HOURS", 30*24)
	if err != nil {
		return nil, err
	}
	dbPort, err := getInt(v, "DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	maxConns, err := getInt(v, "DB_MAX_CONNS", 10)
	if err != nil {
		return nil, err
	}
	httpPort, err := getInt(v, "HTTP_PORT", 8080)
	if err != nil {
		return nil, err
	}
	cost, err := getInt(v, "BCRYPT_COST", 10)
	if err != nil {
		return nil, err
	}

	driver := strings.ToLower(getString(v, "STORE_DRIVER", "postgres"))
	if driver != "postgres" && driver != "memory" {
		return nil, fmt.Errorf("config STORE_DRIVER: %q no soportado (postgres, memory)", driver)
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "users-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Driver:      driver,
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        dbPort,
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "users"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    int32(maxConns),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", false),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: time.Duration(expHours) * time.Hour,
			Issuer:     getString(v, "JWT_ISSUER", "users-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: httpPort,
		},
		Password: PasswordConfig{
			BcryptCost: cost,
		},
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) (int, error) {
	if !v.IsSet(key) {
		return def, nil
	}
	switch raw := v.Get(key).(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return 0, fmt.Errorf("config %s: %q no es un entero", key, raw)
		}
		return n, nil
	default:
		return v.GetInt(key), nil
	}
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
