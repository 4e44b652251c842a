package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/glucotrack/glucotrack/internal/config"
)

func main() {
	fmt.Println("🔍 Validating configuration...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Configuration is invalid:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Configuration is valid!")
	fmt.Printf("📋 Configuration details:\n")
	fmt.Printf("  - HTTP Port: %s\n", cfg.HTTP.Port)
	fmt.Printf("  - DB Host: %s\n", cfg.DB.Host)
	fmt.Printf("  - DB Port: %s\n", cfg.DB.Port)
	fmt.Printf("  - DB User: %s\n", cfg.DB.User)
	fmt.Printf("  - DB Password: %s\n", maskSecret(cfg.DB.Password))
	fmt.Printf("  - DB Name: %s\n", cfg.DB.DBName)
	fmt.Printf("  - FHIR Base URL: %s\n", cfg.FHIR.BaseURL)
	fmt.Printf("  - FHIR Timeout (ms): %d\n", cfg.FHIR.TimeoutMS)
	if cfg.Redis.Host != "" {
		fmt.Printf("  - Redis: %s:%s (chart cache TTL %ds)\n", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.ChartTTLSec)
	} else {
		fmt.Printf("  - Redis: disabled\n")
	}
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

func maskSecret(secret string) string {
	if secret == "" {
		return "<not set>"
	}
	if len(secret) <= 8 {
		return "***"
	}
	return secret[:2] + "..." + secret[len(secret)-2:]
}
