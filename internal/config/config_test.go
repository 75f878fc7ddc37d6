package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "quiltshop")
	t.Setenv("DB_NAME", "quiltshop")

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("APP_PORT", "")
		t.Setenv("FRONTEND_URL", "")
		t.Setenv("UPLOAD_DIR", "")

		cfg := LoadConfig()

		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "4000", cfg.AppPort)
		assert.Equal(t, "http://localhost:5173", cfg.FrontendURL)
		assert.Equal(t, "./uploads", cfg.UploadDir)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("APP_PORT", "8080")
		t.Setenv("APP_ENV", "production")
		t.Setenv("FRONTEND_URL", "https://shop.example.com")
		t.Setenv("UPLOAD_DIR", "/var/lib/quiltshop/uploads")
		t.Setenv("STRIPE_SECRET_KEY", "sk_live_abc")

		cfg := LoadConfig()

		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "production", cfg.AppEnv)
		assert.Equal(t, "https://shop.example.com", cfg.FrontendURL)
		assert.Equal(t, "/var/lib/quiltshop/uploads", cfg.UploadDir)
		assert.Equal(t, "sk_live_abc", cfg.StripeSecretKey)
	})
}
