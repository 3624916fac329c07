package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("BREVO_API_KEY", "key")
	t.Setenv("BREVO_SENDER_EMAIL", "news@example.com")
	t.Setenv("BREVO_SENDER_NAME", "News Saúde")
	t.Setenv("TO_EMAILS_MANUAL", "dev@example.com")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Env != "manual" || cfg.IsProd() {
		t.Fatalf("default env must be manual, got %q", cfg.Env)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("RequestTimeout = %s", cfg.RequestTimeout)
	}
	if cfg.FetchConcurrency != 4 {
		t.Fatalf("FetchConcurrency = %d", cfg.FetchConcurrency)
	}
	if !cfg.AcceptUndated || !cfg.FetchBodyForDates {
		t.Fatal("curation policy defaults changed")
	}
	if cfg.TopCount != 5 || cfg.RetryAttempts != 3 {
		t.Fatalf("delivery defaults changed: top=%d retries=%d", cfg.TopCount, cfg.RetryAttempts)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("NEWS_ENV", "PROD")
	t.Setenv("TO_EMAILS", "a@example.com, b@example.com ,")
	t.Setenv("BREVO_LIST_ID", "7")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "30")
	t.Setenv("FETCH_CONCURRENCY", "8")
	t.Setenv("ACCEPT_UNDATED", "false")
	t.Setenv("TOP_COUNT", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !cfg.IsProd() {
		t.Fatalf("NEWS_ENV=PROD must be production, got %q", cfg.Env)
	}
	if len(cfg.ToEmails) != 2 || cfg.ToEmails[1] != "b@example.com" {
		t.Fatalf("TO_EMAILS not split/trimmed: %v", cfg.ToEmails)
	}
	if cfg.BrevoListID != 7 {
		t.Fatalf("BrevoListID = %d", cfg.BrevoListID)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("RequestTimeout = %s", cfg.RequestTimeout)
	}
	if cfg.FetchConcurrency != 8 {
		t.Fatalf("FetchConcurrency = %d", cfg.FetchConcurrency)
	}
	if cfg.AcceptUndated {
		t.Fatal("ACCEPT_UNDATED=false not applied")
	}
	if cfg.TopCount != 10 {
		t.Fatalf("TopCount = %d", cfg.TopCount)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			BrevoAPIKey:    "key",
			SenderEmail:    "news@example.com",
			SenderName:     "News Saúde",
			Env:            "manual",
			ToEmailsManual: []string{"dev@example.com"},
		}
	}

	t.Run("valid manual config", func(t *testing.T) {
		if err := base().Validate(); err != nil {
			t.Fatalf("Validate: %v", err)
		}
	})

	t.Run("missing api key", func(t *testing.T) {
		cfg := base()
		cfg.BrevoAPIKey = ""
		if err := cfg.Validate(); err == nil {
			t.Fatal("expected error for missing BREVO_API_KEY")
		}
	})

	t.Run("manual run without recipients", func(t *testing.T) {
		cfg := base()
		cfg.ToEmailsManual = nil
		if err := cfg.Validate(); err == nil {
			t.Fatal("expected error for missing manual recipients")
		}
	})

	t.Run("prod needs a list or addresses", func(t *testing.T) {
		cfg := base()
		cfg.Env = "prod"
		if err := cfg.Validate(); err == nil {
			t.Fatal("expected error for prod without recipients")
		}
		cfg.BrevoListID = 7
		if err := cfg.Validate(); err != nil {
			t.Fatalf("prod with list must validate: %v", err)
		}
	})

	t.Run("beehiiv key without publication", func(t *testing.T) {
		cfg := base()
		cfg.BeehiivAPIKey = "bk"
		if err := cfg.Validate(); err == nil {
			t.Fatal("expected error for BEEHIIV_API_KEY without publication ID")
		}
	})
}

func TestIsProd(t *testing.T) {
	for _, env := range []string{"prod", "production", "live"} {
		if !(&Config{Env: env}).IsProd() {
			t.Errorf("env %q must be production", env)
		}
	}
	for _, env := range []string{"manual", "dev", "staging", ""} {
		if (&Config{Env: env}).IsProd() {
			t.Errorf("env %q must not be production", env)
		}
	}
}
