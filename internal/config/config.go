package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the discovery service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port of the HTTP server (API, health checks and metrics).
// - ProviderType: The geocoding provider to use (ban, nominatim, google).
// - APIKey: The API key for the geocoding provider (required for Google).
// - RateLimit: Requests per second allowed towards the geocoding provider (Google only).
// - GeocoderTimeout: Timeout of one geocoding request.
// - SourceTimeout: Timeout of one attempt against one facility source endpoint.
// - Endpoints: Ordered facility source endpoints; empty means built-in defaults.
// - DefaultRadiusKm: Radius used when a request does not specify one.
// - CacheTTL: Lifetime of cached geocoding results.
// - Database: Configuration settings for the optional PostgreSQL geocode cache.
type Config struct {
	Env             string
	Port            int
	ProviderType    string
	APIKey          string
	RateLimit       int
	GeocoderTimeout time.Duration
	SourceTimeout   time.Duration
	Endpoints       []string
	DefaultRadiusKm float64
	CacheTTL        time.Duration
	Database        PostgresConfig
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address; empty disables the cache.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// Enabled reports whether a database host is configured.
func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

// MustLoad reads an optional .env file, the environment (CRECHE_ prefix) and an
// optional YAML file named by CRECHE_CONFIG_FILE, and returns a Config struct.
// It panics when a value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CRECHE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "production")
	v.SetDefault("port", "8080")
	v.SetDefault("provider.type", "ban")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.rate_limit", "10")
	v.SetDefault("geocoder.timeout", "10s")
	v.SetDefault("source.timeout", "100s")
	v.SetDefault("source.endpoints", "")
	v.SetDefault("search.default_radius_km", "5")
	v.SetDefault("cache.ttl", "720h")
	v.SetDefault("postgres.port", "5432")

	// Database settings keep the conventional unprefixed names.
	_ = v.BindEnv("postgres.host", "DB_HOST")
	_ = v.BindEnv("postgres.port", "DB_PORT")
	_ = v.BindEnv("postgres.user", "DB_USERNAME")
	_ = v.BindEnv("postgres.password", "DB_PASSWORD")
	_ = v.BindEnv("postgres.db_name", "DB_NAME")
	_ = v.BindEnv("config_file")

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	port, err := strconv.Atoi(v.GetString("port"))
	if err != nil {
		panic("failed to parse port for HTTP server from configuration")
	}

	rateLimit, err := strconv.Atoi(v.GetString("provider.rate_limit"))
	if err != nil {
		panic("failed to parse rate limit from configuration, must be an integer types")
	}

	geocoderTimeout, err := time.ParseDuration(v.GetString("geocoder.timeout"))
	if err != nil {
		panic("failed to parse geocoder timeout from configuration")
	}

	sourceTimeout, err := time.ParseDuration(v.GetString("source.timeout"))
	if err != nil {
		panic("failed to parse source timeout from configuration")
	}

	radius, err := strconv.ParseFloat(v.GetString("search.default_radius_km"), 64)
	if err != nil {
		panic("failed to parse default radius from configuration")
	}

	cacheTTL, err := time.ParseDuration(v.GetString("cache.ttl"))
	if err != nil {
		panic("failed to parse cache ttl from configuration")
	}

	return &Config{
		Env:             v.GetString("env"),
		Port:            port,
		ProviderType:    v.GetString("provider.type"),
		APIKey:          v.GetString("provider.api_key"),
		RateLimit:       rateLimit,
		GeocoderTimeout: geocoderTimeout,
		SourceTimeout:   sourceTimeout,
		Endpoints:       stringList(v, "source.endpoints"),
		DefaultRadiusKm: radius,
		CacheTTL:        cacheTTL,
		Database: PostgresConfig{
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			Name:     v.GetString("postgres.db_name"),
		},
	}
}

// stringList accepts either a YAML list or a comma separated string.
func stringList(v *viper.Viper, key string) []string {
	raw, ok := v.Get(key).(string)
	if !ok {
		return v.GetStringSlice(key)
	}

	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}
