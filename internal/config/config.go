package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Brevo settings
	BrevoAPIKey string
	SenderEmail string
	SenderName  string

	// Recipient resolution
	Env            string // "prod"/"production"/"live" use ToEmails or BrevoListID; anything else is a manual test run
	ToEmails       []string
	ToEmailsManual []string
	BrevoListID    int // when >0 in prod, recipients are expanded from this Brevo contact list

	// Beehiiv settings (optional secondary sink)
	BeehiivAPIKey        string
	BeehiivPublicationID string

	// Catalog/ruleset files
	SourcesPath string
	RulesPath   string

	// Fetch settings
	RequestTimeout   time.Duration
	RunTimeout       time.Duration
	FetchConcurrency int
	HostInterval     time.Duration

	// Curation policy
	AcceptUndated     bool // unresolved publish dates are treated as recent
	FetchBodyForDates bool // fetch the article page when title+URL carry no date
	TopCount          int

	// Delivery
	RetryAttempts int
	RetryDelay    time.Duration

	// Archive
	ArchivePath string

	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		SourcesPath:       "configs/sources.yaml",
		RulesPath:         "configs/rules.yaml",
		RequestTimeout:    15 * time.Second,
		RunTimeout:        5 * time.Minute,
		FetchConcurrency:  4,
		HostInterval:      500 * time.Millisecond,
		AcceptUndated:     true,
		FetchBodyForDates: true,
		TopCount:          5,
		RetryAttempts:     3,
		RetryDelay:        5 * time.Second,
		ArchivePath:       "sent_digests.json",
		Env:               "manual",
	}

	cfg.BrevoAPIKey = os.Getenv("BREVO_API_KEY")
	cfg.SenderEmail = os.Getenv("BREVO_SENDER_EMAIL")
	cfg.SenderName = os.Getenv("BREVO_SENDER_NAME")

	cfg.ToEmails = splitEmails(os.Getenv("TO_EMAILS"))
	cfg.ToEmailsManual = splitEmails(os.Getenv("TO_EMAILS_MANUAL"))

	if env := os.Getenv("NEWS_ENV"); env != "" {
		cfg.Env = strings.ToLower(env)
	}

	if id := os.Getenv("BREVO_LIST_ID"); id != "" {
		if val, err := strconv.Atoi(id); err == nil && val > 0 {
			cfg.BrevoListID = val
		}
	}

	cfg.BeehiivAPIKey = os.Getenv("BEEHIIV_API_KEY")
	cfg.BeehiivPublicationID = os.Getenv("BEEHIIV_PUBLICATION_ID")

	cfg.SourcesPath = getEnvOrDefault("SOURCES_PATH", cfg.SourcesPath)
	cfg.RulesPath = getEnvOrDefault("RULES_PATH", cfg.RulesPath)
	cfg.ArchivePath = getEnvOrDefault("ARCHIVE_PATH", cfg.ArchivePath)

	if v := getEnvIntOrDefault("REQUEST_TIMEOUT_SECONDS", 0); v > 0 {
		cfg.RequestTimeout = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("RUN_TIMEOUT_SECONDS", 0); v > 0 {
		cfg.RunTimeout = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("FETCH_CONCURRENCY", 0); v > 0 {
		cfg.FetchConcurrency = v
	}
	if v := getEnvIntOrDefault("HOST_INTERVAL_MS", 0); v > 0 {
		cfg.HostInterval = time.Duration(v) * time.Millisecond
	}
	if v := getEnvIntOrDefault("TOP_COUNT", 0); v > 0 {
		cfg.TopCount = v
	}
	if v := getEnvIntOrDefault("RETRY_ATTEMPTS", 0); v > 0 {
		cfg.RetryAttempts = v
	}

	if v := os.Getenv("ACCEPT_UNDATED"); v != "" {
		cfg.AcceptUndated = v == "true"
	}
	if v := os.Getenv("FETCH_BODY_FOR_DATES"); v != "" {
		cfg.FetchBodyForDates = v == "true"
	}

	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

// IsProd reports whether the run targets the production recipient list.
func (c *Config) IsProd() bool {
	switch c.Env {
	case "prod", "production", "live":
		return true
	}
	return false
}

func (c *Config) Validate() error {
	if c.BrevoAPIKey == "" {
		return fmt.Errorf("BREVO_API_KEY is required")
	}
	if c.SenderEmail == "" {
		return fmt.Errorf("BREVO_SENDER_EMAIL is required")
	}
	if c.SenderName == "" {
		return fmt.Errorf("BREVO_SENDER_NAME is required")
	}
	if c.IsProd() {
		if len(c.ToEmails) == 0 && c.BrevoListID == 0 {
			return fmt.Errorf("production run needs TO_EMAILS or BREVO_LIST_ID")
		}
	} else {
		if len(c.ToEmailsManual) == 0 && len(c.ToEmails) == 0 {
			return fmt.Errorf("manual run needs TO_EMAILS_MANUAL (or TO_EMAILS as fallback)")
		}
	}
	if c.BeehiivAPIKey != "" && c.BeehiivPublicationID == "" {
		return fmt.Errorf("BEEHIIV_PUBLICATION_ID is required when BEEHIIV_API_KEY is set")
	}
	return nil
}

func splitEmails(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if e := strings.TrimSpace(part); e != "" {
			out = append(out, e)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
