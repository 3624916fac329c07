// Package app wires configuration, the curation pipeline and delivery into
// one run of the newsletter.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/saudenews/radar/internal/config"
	"github.com/saudenews/radar/internal/email"
	"github.com/saudenews/radar/internal/fetch"
	"github.com/saudenews/radar/internal/logger"
	"github.com/saudenews/radar/internal/metrics"
	"github.com/saudenews/radar/internal/news"
	"github.com/saudenews/radar/internal/publish"
	"github.com/saudenews/radar/internal/render"
	"github.com/saudenews/radar/internal/retry"
	"github.com/saudenews/radar/internal/storage"
)

// Run executes one digest run: fetch and curate, render, deliver, archive.
// Configuration problems and delivery failures are returned as errors so the
// process exits non-zero; source failures only shrink the digest.
func Run() error {
	start := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	catalog, err := news.LoadCatalog(cfg.SourcesPath)
	if err != nil {
		return fmt.Errorf("load source catalog: %w", err)
	}
	rules, err := news.LoadRules(cfg.RulesPath)
	if err != nil {
		return fmt.Errorf("load ruleset: %w", err)
	}

	logger.Info("starting digest run",
		"env", cfg.Env,
		"sources", len(catalog.Sources),
		"accept_undated", cfg.AcceptUndated,
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunTimeout)
	defer cancel()

	client := fetch.NewClient(fetch.Options{
		Timeout:           cfg.RequestTimeout,
		HostInterval:      cfg.HostInterval,
		BlockedAnchorText: rules.BlockedAnchorText,
	})

	pipe := &news.Pipeline{
		Fetcher:           client,
		Rules:             rules,
		Catalog:           catalog,
		AcceptUndated:     cfg.AcceptUndated,
		FetchBodyForDates: cfg.FetchBodyForDates,
		Concurrency:       cfg.FetchConcurrency,
		TopCount:          cfg.TopCount,
		Log:               logger.With("component", "pipeline"),
		Metrics:           metrics.Global,
	}

	digest := pipe.Run(ctx)
	logger.Info("curation finished", "articles", digest.Total(), "top", len(digest.Top))

	html, err := render.HTML(digest, catalog)
	if err != nil {
		return err
	}
	subject := render.Subject(digest)

	brevo := email.NewClient(cfg.BrevoAPIKey)
	recipients, err := email.ResolveRecipients(ctx, cfg, brevo)
	if err != nil {
		return fmt.Errorf("resolve recipients: %w", err)
	}
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients resolved for newsletter")
	}
	logger.Info("sending newsletter", "subject", subject, "recipients", len(recipients))

	policy := retry.Policy{Attempts: cfg.RetryAttempts, Delay: cfg.RetryDelay, Backoff: true}
	err = retry.Do(ctx, policy, func() error {
		return brevo.Send(ctx, email.Message{
			SenderEmail: cfg.SenderEmail,
			SenderName:  cfg.SenderName,
			To:          recipients,
			Subject:     subject,
			HTML:        html,
		})
	})
	if err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("send newsletter: %w", err)
	}
	metrics.Global.AddEmailSent()

	if cfg.BeehiivAPIKey != "" {
		beehiiv := publish.NewClient(cfg.BeehiivAPIKey, cfg.BeehiivPublicationID)
		err = retry.Do(ctx, policy, func() error {
			return beehiiv.CreateDraft(ctx, subject, html)
		})
		if err != nil {
			metrics.Global.SetError(err.Error())
			return fmt.Errorf("create beehiiv draft: %w", err)
		}
		logger.Info("beehiiv draft created")
	}

	archive := storage.NewArchive(cfg.ArchivePath)
	counts := make(map[string]int, len(digest.Sections))
	for id, list := range digest.Sections {
		counts[id] = len(list)
	}
	rec := storage.RunRecord{
		Date:          digest.Date.Format("2006-01-02"),
		Subject:       subject,
		SectionCounts: counts,
		Recipients:    len(recipients),
		DeliveredAt:   time.Now().UTC(),
	}
	if err := archive.Append(rec); err != nil {
		// The newsletter is already out; a broken audit trail is not fatal.
		logger.Warn("archive append failed", "error", err)
	}

	metrics.Global.RecordRun(time.Since(start))
	logger.Info("digest run finished", "duration", time.Since(start).String())
	return nil
}
