package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

var (
	JWTSecret string

	// DiscountApprovalThreshold: persentase diskon maksimum yang boleh
	// disetujui role non-admin. Default 20 (persen).
	DiscountApprovalThreshold decimal.Decimal
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("[CONFIG] no .env file, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	if JWTSecret == "" {
		log.Println("[CONFIG] JWT_SECRET is not set")
	}

	DiscountApprovalThreshold = decimal.NewFromInt(int64(GetEnvInt("FEE_DISCOUNT_APPROVAL_THRESHOLD", 20)))
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func GetEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func GetEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[CONFIG] %s=%q is not an int, fallback %d", key, v, def)
		return def
	}
	return n
}
