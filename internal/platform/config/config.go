package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Employer holds the tax-office and government-gateway identity a submission
// is filed under. Loaded once at startup; the three tax-office fields may be
// overridden per company at request time.
type Employer struct {
	TaxOfficeNumber         string
	TaxOfficeReference      string
	AccountsOfficeReference string
	SenderID                string
	SenderPassword          string
	VendorID                string
	ProductName             string
	ProductVersion          string
	Live                    bool
}

// WithTaxRefs returns a copy with any non-empty per-company overrides applied.
func (e Employer) WithTaxRefs(number, reference, accountsRef string) Employer {
	if strings.TrimSpace(number) != "" {
		e.TaxOfficeNumber = number
	}
	if strings.TrimSpace(reference) != "" {
		e.TaxOfficeReference = reference
	}
	if strings.TrimSpace(accountsRef) != "" {
		e.AccountsOfficeReference = accountsRef
	}
	return e
}

type Config struct {
	Addr              string
	DatabaseURL       string
	JWTSecret         string
	Environment       string
	RunMigrations     bool
	RunSeed           bool
	SeedAdminEmail    string
	SeedAdminPassword string
	Employer          Employer
}

func Load() Config {
	return Config{
		Addr:              getEnv("APP_ADDR", ":8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		Environment:       getEnv("APP_ENV", "development"),
		RunMigrations:     getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:           getEnvBool("RUN_SEED", false),
		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		Employer: Employer{
			TaxOfficeNumber:         getEnv("TAX_OFFICE_NUMBER", ""),
			TaxOfficeReference:      getEnv("TAX_OFFICE_REFERENCE", ""),
			AccountsOfficeReference: getEnv("ACCOUNTS_OFFICE_REFERENCE", ""),
			SenderID:                getEnv("GATEWAY_SENDER_ID", ""),
			SenderPassword:          getEnv("GATEWAY_SENDER_PASSWORD", ""),
			VendorID:                getEnv("GATEWAY_VENDOR_ID", ""),
			ProductName:             getEnv("GATEWAY_PRODUCT_NAME", "rti-server"),
			ProductVersion:          getEnv("GATEWAY_PRODUCT_VERSION", "1.0"),
			Live:                    getEnvBool("GATEWAY_LIVE", false),
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate fails on any missing value a submission cannot be filed without.
// This runs before the server accepts requests: a document built with
// invalid credentials is worthless, so the whole process refuses to start.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
	}
	required := map[string]string{
		"TAX_OFFICE_NUMBER":         c.Employer.TaxOfficeNumber,
		"TAX_OFFICE_REFERENCE":      c.Employer.TaxOfficeReference,
		"ACCOUNTS_OFFICE_REFERENCE": c.Employer.AccountsOfficeReference,
		"GATEWAY_SENDER_ID":         c.Employer.SenderID,
		"GATEWAY_SENDER_PASSWORD":   c.Employer.SenderPassword,
	}
	for _, key := range []string{
		"TAX_OFFICE_NUMBER",
		"TAX_OFFICE_REFERENCE",
		"ACCOUNTS_OFFICE_REFERENCE",
		"GATEWAY_SENDER_ID",
		"GATEWAY_SENDER_PASSWORD",
	} {
		if strings.TrimSpace(required[key]) == "" {
			return fmt.Errorf("%s is required", key)
		}
	}
	return nil
}
