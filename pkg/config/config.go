package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Log     LogConfig
	Catalog CatalogConfig
	Report  ReportConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig nivel mínimo de log (debug, info, warn, error).
type LogConfig struct {
	Level string
}

// CatalogConfig rutas de los archivos planos del catálogo.
type CatalogConfig struct {
	ProductsFile   string
	CategoriesFile string
}

// ReportConfig valores por defecto de los reportes cuando la petición no los indica.
type ReportConfig struct {
	ExpiryDays        int
	LowStockThreshold int
}

// JWTConfig configuración de JWT. Secret vacío = API sin autenticación (uso local).
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	SwaggerFile string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthEnabled indica si la API exige token.
func (c JWTConfig) AuthEnabled() bool {
	return c.Secret != ""
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, CATALOG_PRODUCTS_FILE, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "catalogo-productos"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		Catalog: CatalogConfig{
			ProductsFile:   getString(v, "CATALOG_PRODUCTS_FILE", "productos.csv"),
			CategoriesFile: getString(v, "CATALOG_CATEGORIES_FILE", "categorias.csv"),
		},
		Report: ReportConfig{
			ExpiryDays:        getInt(v, "REPORT_EXPIRY_DAYS", 60),
			LowStockThreshold: getInt(v, "REPORT_LOW_STOCK_THRESHOLD", 10),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "catalogo-productos"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "127.0.0.1"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			SwaggerFile: getString(v, "HTTP_SWAGGER_FILE", "./docs/swagger.json"),
		},
	}

	if cfg.Catalog.ProductsFile == "" || cfg.Catalog.CategoriesFile == "" {
		return nil, fmt.Errorf("config: rutas de archivos del catálogo vacías")
	}
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return nil, fmt.Errorf("config: HTTP_PORT inválido: %d", cfg.HTTP.Port)
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
