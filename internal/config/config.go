package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Rates carries the pricing options injected into the calculator at startup.
// BaseRate is the yearly rate before discounts; the two decrements are
// subtracted for insured loans and payroll clients; the two insurance rates
// price the premium added to the amortized principal.
type Rates struct {
	BaseRate               decimal.Decimal
	InsuranceRate          decimal.Decimal
	ClientInsuranceRate    decimal.Decimal
	InsuranceRateDecrement decimal.Decimal
	PayrollRateDecrement   decimal.Decimal
}

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisPass string
	RedisDB   int

	IdempTTLSecs int

	KafkaBrokers []string

	Pricing Rates

	// dossier worker
	DealBaseURL  string
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
	S3Endpoint   string
	S3AccessKey  string
	S3SecretKey  string
	S3Bucket     string
	S3UseSSL     bool

	LogLevel string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getdec(k, d string) decimal.Decimal {
	raw := getenv(k, d)
	v, err := decimal.NewFromString(raw)
	if err != nil {
		v, _ = decimal.NewFromString(d)
	}
	return v
}

func Load() *Config {
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "conveyor"),
		MySQLUser: getenv("MYSQL_USER", "conveyor"),
		MySQLPass: getenv("MYSQL_PASS", "conveyor"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisPass:    getenv("REDIS_PASS", ""),
		IdempTTLSecs: 300,

		KafkaBrokers: strings.Split(getenv("KAFKA_BROKERS", "kafka:9092"), ","),

		Pricing: Rates{
			BaseRate:               getdec("BASE_RATE", "0.15"),
			InsuranceRate:          getdec("INSURANCE_RATE", "0.05"),
			ClientInsuranceRate:    getdec("CLIENT_INSURANCE_RATE", "0.03"),
			InsuranceRateDecrement: getdec("RATE_DECREMENT_FOR_INSURANCE", "0.03"),
			PayrollRateDecrement:   getdec("RATE_DECREMENT_FOR_CLIENTS", "0.01"),
		},

		DealBaseURL:  getenv("DEAL_BASE_URL", "http://api:8080"),
		SMTPHost:     getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getenv("SMTP_PORT", "587"),
		SMTPUsername: getenv("SMTP_USERNAME", ""),
		SMTPPassword: getenv("SMTP_PASSWORD", ""),
		SenderEmail:  getenv("SENDER_EMAIL", "conveyor.banking@gmail.com"),

		S3Endpoint:  getenv("S3_ENDPOINT", "minio:9000"),
		S3AccessKey: getenv("S3_ACCESS_KEY", ""),
		S3SecretKey: getenv("S3_SECRET_KEY", ""),
		S3Bucket:    getenv("S3_BUCKET", "dossier"),

		LogLevel: getenv("LOG_LEVEL", "info"),
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	if v := os.Getenv("S3_USE_SSL"); v != "" {
		c.S3UseSSL = v == "true" || v == "1"
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if len(c.KafkaBrokers) == 0 || c.KafkaBrokers[0] == "" {
		return errors.New("missing KAFKA_BROKERS")
	}
	if c.Pricing.BaseRate.LessThanOrEqual(decimal.Zero) {
		return errors.New("BASE_RATE must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
