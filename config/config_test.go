package config

import (
	"os"
	"testing"
)

// chdirTemp runs the test from an empty directory so no config.yaml or .env is picked up
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return dir
}

func validConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			DumpPath:              "./database.sql",
			OutputPath:            "./products.csv",
			DescriptionLimit:      500,
			ShortDescriptionLimit: 200,
			CategoryDepthLimit:    10,
			ProductBasePath:       "/product/",
			Taxonomy:              "product_cat",
		},
		Reconcile: ReconcileConfig{
			CatalogPath:    "./catalog.csv",
			ProductsPath:   "./products.csv",
			OutputDir:      "./out",
			SiteOrigin:     "https://shop.example",
			FuzzyThreshold: 0.85,
			EnableFuzzy:    true,
		},
		Server: ServerConfig{
			Port:          "8080",
			Environment:   "development",
			RedirectsPath: "./out/redirects-vercel.json",
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		chdirTemp(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Extract.DumpPath != "./wpress-extracted/database.sql" {
			t.Errorf("Extract.DumpPath = %s, want ./wpress-extracted/database.sql", cfg.Extract.DumpPath)
		}
		if cfg.Extract.DescriptionLimit != 500 {
			t.Errorf("Extract.DescriptionLimit = %d, want 500", cfg.Extract.DescriptionLimit)
		}
		if cfg.Extract.CategoryDepthLimit != 10 {
			t.Errorf("Extract.CategoryDepthLimit = %d, want 10", cfg.Extract.CategoryDepthLimit)
		}
		if cfg.Extract.Taxonomy != "product_cat" {
			t.Errorf("Extract.Taxonomy = %s, want product_cat", cfg.Extract.Taxonomy)
		}
		if cfg.Reconcile.FuzzyThreshold != 0.85 {
			t.Errorf("Reconcile.FuzzyThreshold = %v, want 0.85", cfg.Reconcile.FuzzyThreshold)
		}
		if !cfg.Reconcile.EnableFuzzy {
			t.Error("Reconcile.EnableFuzzy = false, want true")
		}
		if cfg.Reconcile.CleanHTML {
			t.Error("Reconcile.CleanHTML = true, want false")
		}
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.RateLimit.PerIP != 600 {
			t.Errorf("RateLimit.PerIP = %d, want 600", cfg.RateLimit.PerIP)
		}
		if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
			t.Errorf("Log = %+v, want info/text", cfg.Log)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("WOOPORT_RECONCILE_FUZZY_THRESHOLD", "0.9")
		t.Setenv("WOOPORT_RECONCILE_ENABLE_FUZZY", "false")
		t.Setenv("WOOPORT_EXTRACT_SQLITE_PATH", "./snapshot.db")
		t.Setenv("WOOPORT_SERVER_PORT", "9090")
		t.Setenv("WOOPORT_SERVER_ALLOWED_ORIGINS", "http://a.example,http://b.example")
		t.Setenv("WOOPORT_LOG_FORMAT", "json")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Reconcile.FuzzyThreshold != 0.9 {
			t.Errorf("Reconcile.FuzzyThreshold = %v, want 0.9", cfg.Reconcile.FuzzyThreshold)
		}
		if cfg.Reconcile.EnableFuzzy {
			t.Error("Reconcile.EnableFuzzy = true, want false")
		}
		if cfg.Extract.SQLitePath != "./snapshot.db" {
			t.Errorf("Extract.SQLitePath = %s, want ./snapshot.db", cfg.Extract.SQLitePath)
		}
		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if len(cfg.Server.AllowedOrigins) != 2 {
			t.Errorf("Server.AllowedOrigins = %v, want 2 origins", cfg.Server.AllowedOrigins)
		}
		if cfg.Log.Format != "json" {
			t.Errorf("Log.Format = %s, want json", cfg.Log.Format)
		}
	})

	t.Run("reads config.yaml from the working directory", func(t *testing.T) {
		dir := chdirTemp(t)
		yaml := "extract:\n  taxonomy: product_brand\nreconcile:\n  site_origin: https://shop.example\n  clean_html: true\n"
		if err := os.WriteFile(dir+"/config.yaml", []byte(yaml), 0644); err != nil {
			t.Fatalf("Failed to write config.yaml: %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Extract.Taxonomy != "product_brand" {
			t.Errorf("Extract.Taxonomy = %s, want product_brand", cfg.Extract.Taxonomy)
		}
		if cfg.Reconcile.SiteOrigin != "https://shop.example" {
			t.Errorf("Reconcile.SiteOrigin = %s, want https://shop.example", cfg.Reconcile.SiteOrigin)
		}
		if !cfg.Reconcile.CleanHTML {
			t.Error("Reconcile.CleanHTML = false, want true")
		}
	})

	t.Run("loads variables from .env file", func(t *testing.T) {
		dir := chdirTemp(t)
		os.Unsetenv("WOOPORT_SERVER_PORT")
		defer os.Unsetenv("WOOPORT_SERVER_PORT")

		envContent := "# preview server\nWOOPORT_SERVER_PORT=7070\n"
		if err := os.WriteFile(dir+"/.env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Server.Port != "7070" {
			t.Errorf("Server.Port = %s, want 7070", cfg.Server.Port)
		}
	})

	t.Run("fails for out of range threshold", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("WOOPORT_RECONCILE_FUZZY_THRESHOLD", "1.5")

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for threshold above 1")
		}
	})

	t.Run("fails for site origin with trailing slash", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("WOOPORT_RECONCILE_SITE_ORIGIN", "https://shop.example/")

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for trailing slash")
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("validates successfully with all required fields", func(t *testing.T) {
		if err := Validate(validConfig()); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	t.Run("allows empty site origin", func(t *testing.T) {
		cfg := validConfig()
		cfg.Reconcile.SiteOrigin = ""
		if err := Validate(cfg); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty dump path", func(c *Config) { c.Extract.DumpPath = "" }},
		{"relative product base path", func(c *Config) { c.Extract.ProductBasePath = "product/" }},
		{"zero description limit", func(c *Config) { c.Extract.DescriptionLimit = 0 }},
		{"zero fuzzy threshold", func(c *Config) { c.Reconcile.FuzzyThreshold = 0 }},
		{"non-http site origin", func(c *Config) { c.Reconcile.SiteOrigin = "ftp://shop.example" }},
		{"non-numeric port", func(c *Config) { c.Server.Port = "http" }},
		{"unknown environment", func(c *Config) { c.Server.Environment = "staging" }},
		{"negative rate limit", func(c *Config) { c.RateLimit.PerIP = -1 }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run("fails for "+tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Errorf("Validate() error = nil, want error for %s", tt.name)
			}
		})
	}
}
