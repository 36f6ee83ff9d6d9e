package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Backends de identidad soportados.
const (
	IdentityFirebase = "firebase"
	IdentityLocal    = "local"
)

// Backends del almacén de registros de usuario.
const (
	StoreFirestore = "firestore"
	StorePostgres  = "postgres"
	StoreMemory    = "memory"
)

// Backends de mensajería para alertas de identidades huérfanas.
const (
	MQNone     = "none"
	MQPubSub   = "pubsub"
	MQRabbitMQ = "rabbitmq"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Identity IdentityConfig
	Firebase FirebaseConfig
	Store    StoreConfig
	DB       DBConfig
	JWT      JWTConfig
	Partner  PartnerConfig
	Access   AccessConfig
	MQ       MQConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
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

// IdentityConfig selecciona el proveedor de identidad y la política de contraseñas generadas.
type IdentityConfig struct {
	Provider       string // firebase | local
	PasswordLength int    // longitud de contraseñas generadas

	// Operador inicial del proveedor local; vacío = sin semilla.
	SeedAdminEmail    string
	SeedAdminPassword string
}

// FirebaseConfig credenciales del service account de Firebase Admin.
type FirebaseConfig struct {
	AdminSDKKey string // JSON completo del service account
	ProjectID   string
}

// StoreConfig selecciona el almacén de registros de usuario.
type StoreConfig struct {
	Backend        string // firestore | postgres | memory
	MigrationsPath string
}

// DBConfig configuración de PostgreSQL (solo para STORE_BACKEND=postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
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

// JWTConfig configuración de tokens del proveedor de identidad local (desarrollo).
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// PartnerConfig API de la aplicación asociada que guarda la configuración del sidebar.
type PartnerConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// AccessConfig controla quién puede operar la consola.
type AccessConfig struct {
	AllowedEmails []string // vacío = cualquier usuario autenticado
	EnforceRoles  bool     // false = cualquier sesión autenticada puede mutar
}

// MQConfig backend de mensajería para alertas operativas.
type MQConfig struct {
	Backend         string // none | pubsub | rabbitmq
	AlertChannel    string
	PubSubProjectID string
	PubSubCredsFile string
	RabbitMQURL     string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, FIREBASE_ADMIN_SDK_KEY, etc.
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

	return FromViper(v)
}

// FromViper construye la configuración a partir de una instancia de Viper ya preparada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "tenant-admin"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Identity: IdentityConfig{
			Provider:       strings.ToLower(getString(v, "IDENTITY_PROVIDER", IdentityFirebase)),
			PasswordLength: getInt(v, "PASSWORD_LENGTH", 12),

			SeedAdminEmail:    getString(v, "LOCAL_ADMIN_EMAIL", ""),
			SeedAdminPassword: getString(v, "LOCAL_ADMIN_PASSWORD", ""),
		},
		Firebase: FirebaseConfig{
			AdminSDKKey: getString(v, "FIREBASE_ADMIN_SDK_KEY", ""),
			ProjectID:   getString(v, "FIREBASE_PROJECT_ID", ""),
		},
		Store: StoreConfig{
			Backend:        strings.ToLower(getString(v, "STORE_BACKEND", StoreFirestore)),
			MigrationsPath: getString(v, "MIGRATIONS_PATH", "file://internal/infrastructure/postgres/migrations"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "tenant_admin"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "tenant-admin"),
		},
		Partner: PartnerConfig{
			BaseURL:        strings.TrimRight(getString(v, "PARTNER_API_BASE", "https://upmo-demo.vercel.app"), "/"),
			TimeoutSeconds: getInt(v, "PARTNER_TIMEOUT_SECONDS", 15),
		},
		Access: AccessConfig{
			AllowedEmails: getStringList(v, "ALLOWED_EMAILS"),
			EnforceRoles:  getBool(v, "AUTHZ_ENFORCE_ROLES", true),
		},
		MQ: MQConfig{
			Backend:         strings.ToLower(getString(v, "MQ_BACKEND", MQNone)),
			AlertChannel:    getString(v, "ORPHAN_ALERT_CHANNEL", "identity-orphans"),
			PubSubProjectID: getString(v, "PUBSUB_PROJECT_ID", ""),
			PubSubCredsFile: getString(v, "PUBSUB_CREDENTIALS_FILE", ""),
			RabbitMQURL:     getString(v, "RABBITMQ_URL", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Identity.Provider {
	case IdentityFirebase:
		if c.Firebase.AdminSDKKey == "" {
			return fmt.Errorf("config: FIREBASE_ADMIN_SDK_KEY es obligatorio con IDENTITY_PROVIDER=firebase")
		}
	case IdentityLocal:
		if c.JWT.Secret == "" {
			return fmt.Errorf("config: JWT_SECRET es obligatorio con IDENTITY_PROVIDER=local")
		}
	default:
		return fmt.Errorf("config: IDENTITY_PROVIDER desconocido %q", c.Identity.Provider)
	}
	switch c.Store.Backend {
	case StoreFirestore, StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("config: STORE_BACKEND desconocido %q", c.Store.Backend)
	}
	if c.Store.Backend == StoreFirestore && c.Identity.Provider != IdentityFirebase {
		return fmt.Errorf("config: STORE_BACKEND=firestore requiere IDENTITY_PROVIDER=firebase")
	}
	switch c.MQ.Backend {
	case MQNone, MQPubSub, MQRabbitMQ:
	default:
		return fmt.Errorf("config: MQ_BACKEND desconocido %q", c.MQ.Backend)
	}
	if c.Identity.PasswordLength < 8 {
		c.Identity.PasswordLength = 8
	}
	if c.Partner.TimeoutSeconds <= 0 {
		c.Partner.TimeoutSeconds = 15
	}
	return nil
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}

// getStringList lee una lista separada por comas, descartando vacíos.
func getStringList(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v.GetString(key), ",") {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
