package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the migration tool
type Config struct {
	Extract   ExtractConfig   `mapstructure:"extract"`
	Reconcile ReconcileConfig `mapstructure:"reconcile"`
	Server    ServerConfig    `mapstructure:"server"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ExtractConfig holds configuration for reading the shop database dump
type ExtractConfig struct {
	DumpPath              string `mapstructure:"dump_path" validate:"required"`
	OutputPath            string `mapstructure:"output_path" validate:"required"`
	SQLitePath            string `mapstructure:"sqlite_path"` // empty disables the snapshot
	DescriptionLimit      int    `mapstructure:"description_limit" validate:"gt=0"`
	ShortDescriptionLimit int    `mapstructure:"short_description_limit" validate:"gt=0"`
	CategoryDepthLimit    int    `mapstructure:"category_depth_limit" validate:"gt=0,lte=100"`
	ProductBasePath       string `mapstructure:"product_base_path" validate:"required,startswith=/"`
	Taxonomy              string `mapstructure:"taxonomy" validate:"required"`
}

// ReconcileConfig holds configuration for matching against the catalog export
type ReconcileConfig struct {
	CatalogPath    string  `mapstructure:"catalog_path" validate:"required"`
	ProductsPath   string  `mapstructure:"products_path" validate:"required"`
	OutputDir      string  `mapstructure:"output_dir" validate:"required"`
	SiteOrigin     string  `mapstructure:"site_origin"`
	FuzzyThreshold float64 `mapstructure:"fuzzy_threshold" validate:"gt=0,lte=1"`
	EnableFuzzy    bool    `mapstructure:"enable_fuzzy"`
	CleanHTML      bool    `mapstructure:"clean_html"`
	ReviewWorkbook string  `mapstructure:"review_workbook"` // empty disables the xlsx review
	Debug          bool    `mapstructure:"debug"`
}

// ServerConfig holds configuration for the redirect preview server
type ServerConfig struct {
	Port           string   `mapstructure:"port" validate:"required,numeric"`
	Environment    string   `mapstructure:"environment" validate:"oneof=development test production"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RedirectsPath  string   `mapstructure:"redirects_path" validate:"required"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip" validate:"gte=0"` // requests per minute, 0 disables
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

var validate = validator.New()

// Load loads configuration from an optional .env file, a config file and environment variables
func Load() (*Config, error) {
	// .env is optional; variables already set in the environment win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/wooport/")

	// Environment variable settings: WOOPORT_EXTRACT_DUMP_PATH -> extract.dump_path
	v.SetEnvPrefix("WOOPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Extract defaults
	v.SetDefault("extract.dump_path", "./wpress-extracted/database.sql")
	v.SetDefault("extract.output_path", "./scripts/woo-products-extracted.csv")
	v.SetDefault("extract.sqlite_path", "")
	v.SetDefault("extract.description_limit", 500)
	v.SetDefault("extract.short_description_limit", 200)
	v.SetDefault("extract.category_depth_limit", 10)
	v.SetDefault("extract.product_base_path", "/product/")
	v.SetDefault("extract.taxonomy", "product_cat")

	// Reconcile defaults
	v.SetDefault("reconcile.catalog_path", "./Cranks_ecwid_catalogue.csv")
	v.SetDefault("reconcile.products_path", "./scripts/woo-products-extracted.csv")
	v.SetDefault("reconcile.output_dir", "./scripts")
	v.SetDefault("reconcile.site_origin", "https://v0-cranks.vercel.app")
	v.SetDefault("reconcile.fuzzy_threshold", 0.85)
	v.SetDefault("reconcile.enable_fuzzy", true)
	v.SetDefault("reconcile.clean_html", false)
	v.SetDefault("reconcile.review_workbook", "")
	v.SetDefault("reconcile.debug", false)

	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.redirects_path", "./scripts/redirects-vercel.json")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 600)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate checks struct constraints and the rules that span several fields
func Validate(config *Config) error {
	if err := validate.Struct(config); err != nil {
		return err
	}

	if config.Reconcile.SiteOrigin != "" && !strings.HasPrefix(config.Reconcile.SiteOrigin, "http") {
		return fmt.Errorf("site origin must be an http(s) URL, got: %s", config.Reconcile.SiteOrigin)
	}

	if strings.HasSuffix(config.Reconcile.SiteOrigin, "/") {
		return fmt.Errorf("site origin must not end with '/', got: %s", config.Reconcile.SiteOrigin)
	}

	return nil
}
