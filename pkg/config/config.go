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
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	AI      AIConfig
	Storage StorageConfig
	Admin   AdminConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	Timezone string // zona horaria para las ventanas de tiempo (día, semana, mes)
}

// Location devuelve la zona horaria configurada; si no es válida, usa la local del proceso.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo (ej. DATABASE_URL de Supabase).
// Driver "memory" arranca sin base de datos (repositorios en memoria, útil en local).
type DBConfig struct {
	Driver      string // postgres | memory
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
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

// JWTConfig configuración de la sesión (token HS256 en cookie o Bearer).
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
	CookieName string
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

// AIConfig configuración del servicio de extracción (OCR) por LLM multimodal.
type AIConfig struct {
	Provider        string // gemini | anthropic
	GeminiAPIKey    string
	GeminiModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	MaxImageBytes   int
}

// StorageConfig almacenamiento de imágenes de facturas (MinIO / S3 compatible).
// Endpoint vacío desactiva el guardado de imágenes.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string // base pública opcional para construir image_url
}

// Enabled informa si el almacenamiento de imágenes está configurado.
func (c StorageConfig) Enabled() bool {
	return c.Endpoint != ""
}

// AdminConfig usuario administrador que se garantiza al arrancar (opcional).
// Sin él, en una base nueva nadie puede asignar roles desde /admin.
type AdminConfig struct {
	Email    string
	Password string
}

// Enabled informa si hay un administrador inicial configurado.
func (c AdminConfig) Enabled() bool {
	return c.Email != ""
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, GEMINI_API_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "factura-ocr"),
			Timezone: getString(v, "APP_TIMEZONE", ""),
		},
		DB: DBConfig{
			Driver:      strings.ToLower(getString(v, "DB_DRIVER", "postgres")),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "factura_ocr"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60*24),
			Issuer:     getString(v, "JWT_ISSUER", "factura-ocr"),
			CookieName: getString(v, "SESSION_COOKIE_NAME", "facturaocr_session"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		AI: AIConfig{
			Provider:        strings.ToLower(getString(v, "AI_PROVIDER", "gemini")),
			GeminiAPIKey:    getString(v, "GEMINI_API_KEY", getString(v, "GOOGLE_GENERATIVE_AI_API_KEY", "")),
			GeminiModel:     getString(v, "GEMINI_MODEL", "gemini-2.0-flash"),
			AnthropicAPIKey: getString(v, "ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getString(v, "ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
			MaxImageBytes:   getInt(v, "OCR_MAX_IMAGE_BYTES", 8<<20),
		},
		Storage: StorageConfig{
			Endpoint:  getString(v, "MINIO_ENDPOINT", ""),
			AccessKey: getString(v, "MINIO_ACCESS_KEY", ""),
			SecretKey: getString(v, "MINIO_SECRET_KEY", ""),
			Bucket:    getString(v, "MINIO_BUCKET", "facturas"),
			UseSSL:    getBool(v, "MINIO_USE_SSL", false),
			PublicURL: getString(v, "MINIO_PUBLIC_URL", ""),
		},
		Admin: AdminConfig{
			Email:    strings.ToLower(strings.TrimSpace(getString(v, "ADMIN_EMAIL", ""))),
			Password: getString(v, "ADMIN_PASSWORD", ""),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio")
	}
	switch cfg.DB.Driver {
	case "postgres", "memory":
	default:
		return nil, fmt.Errorf("config: DB_DRIVER inválido %q (postgres | memory)", cfg.DB.Driver)
	}
	switch cfg.AI.Provider {
	case "gemini", "anthropic":
	default:
		return nil, fmt.Errorf("config: AI_PROVIDER inválido %q (gemini | anthropic)", cfg.AI.Provider)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
