package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the UAC service.
// Values come from the environment, optionally seeded from a .env file.
type Config struct {
	ListenAddr string
	JWTSecret  string

	// Utopia SP API
	UtopiaEndpoint string
	UtopiaAPIKey   string

	// PowerCode billing system
	PowerCodeURL       string
	PowerCodeAPIKey    string
	PowerCodeVerifySSL bool

	// PowerCode service plan IDs
	Plan1GbpsID   int
	Plan250MbpsID int
	PlanBondFeeID int

	// Customer portal credentials seeded on account creation
	PortalPassword string

	// Notification mail
	MailHost       string
	MailPort       int
	MailSender     string
	MailRecipients []string

	// Local state files
	UsersFile    string
	FailuresFile string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr: getEnv("LISTEN_ADDR", ":5050"),
		JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change-in-production"),

		UtopiaEndpoint: os.Getenv("UTOPIA_URL_ENDPOINT"),
		UtopiaAPIKey:   os.Getenv("UTOPIA_API_KEY"),

		PowerCodeURL:       os.Getenv("PC_URL"),
		PowerCodeAPIKey:    os.Getenv("PC_API_KEY"),
		PowerCodeVerifySSL: getEnvBool("PC_VERIFY_SSL", true),

		Plan1GbpsID:   getEnvInt("SERVICE_PLAN_1GBPS_ID", 164),
		Plan250MbpsID: getEnvInt("SERVICE_PLAN_250MBPS_ID", 163),
		PlanBondFeeID: getEnvInt("SERVICE_PLAN_BOND_FEE_ID", 172),

		PortalPassword: os.Getenv("CUSTOMER_PORTAL_PASSWORD"),

		MailHost:       os.Getenv("MAIL_SERVER"),
		MailPort:       getEnvInt("MAIL_PORT", 25),
		MailSender:     os.Getenv("EMAIL_SENDER"),
		MailRecipients: splitList(os.Getenv("EMAIL_RECIPIENTS")),

		UsersFile:    getEnv("USERS_FILE", "users.json"),
		FailuresFile: getEnv("FAILURES_FILE", "failed_orders.json"),
	}
}

// Validate reports every required variable that is missing, not just the first.
func (c *Config) Validate() error {
	var missing []string
	check := func(name, v string) {
		if v == "" {
			missing = append(missing, name)
		}
	}
	check("UTOPIA_URL_ENDPOINT", c.UtopiaEndpoint)
	check("UTOPIA_API_KEY", c.UtopiaAPIKey)
	check("PC_URL", c.PowerCodeURL)
	check("PC_API_KEY", c.PowerCodeAPIKey)
	check("CUSTOMER_PORTAL_PASSWORD", c.PortalPassword)
	check("MAIL_SERVER", c.MailHost)
	check("EMAIL_SENDER", c.MailSender)
	if len(c.MailRecipients) == 0 {
		missing = append(missing, "EMAIL_RECIPIENTS")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
