package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/esil-events/chatbot/pkg/cache"
	"github.com/esil-events/chatbot/pkg/catalog"
	"github.com/esil-events/chatbot/pkg/chat"
	"github.com/esil-events/chatbot/pkg/config"
	"github.com/esil-events/chatbot/pkg/history"
	"github.com/esil-events/chatbot/pkg/llm"
	"github.com/esil-events/chatbot/pkg/mailer"
	"github.com/esil-events/chatbot/pkg/quota"
	"github.com/esil-events/chatbot/pkg/server"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the chatbot HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := newLogger(cfg.Log)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			searcher, err := newSearcher(cfg)
			if err != nil {
				return fmt.Errorf("init catalog: %w", err)
			}

			generator, err := llm.NewGeminiClient(ctx, llm.GeminiOptions{
				APIKey:        cfg.Gemini.APIKey,
				Model:         cfg.Gemini.Model,
				FallbackModel: cfg.Gemini.FallbackModel,
			})
			if err != nil {
				return fmt.Errorf("init gemini: %w", err)
			}

			var responseCache *cache.Cache
			if cfg.Cache.Enabled {
				store, err := newCacheStore(cfg)
				if err != nil {
					return fmt.Errorf("init cache: %w", err)
				}
				responseCache = cache.New(store, cfg.Cache.TTL, logger)
			}

			hist, err := history.New(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("init history: %w", err)
			}
			defer func() { _ = hist.Close() }()

			var guard *quota.Guard
			if cfg.Quota.Enabled {
				guard = quota.New(cfg.Quota.Policy, hist)
			}

			sender := mailer.New(mailer.SMTPSettings{
				Host:     cfg.Mail.SMTP.Host,
				Port:     cfg.Mail.SMTP.Port,
				Secure:   cfg.Mail.SMTP.Secure,
				User:     cfg.Mail.SMTP.User,
				Password: cfg.Mail.SMTP.Password,
			}, cfg.Mail.Retries, logger)

			pipeline := chat.New(responseCache, searcher, generator, logger)

			srv := server.New(server.Options{
				Listen:    cfg.Listen,
				Responder: pipeline,
				Sender:    sender,
				Recorder:  hist,
				Guard:     guard,
				MailFrom:  cfg.Mail.From,
				MailTo:    cfg.Mail.To,
				Log:       logger,
			})

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "chatbot.yaml", "path to config file")
	return cmd
}

func newSearcher(cfg *config.Config) (catalog.Searcher, error) {
	switch cfg.Catalog.Backend {
	case "postgres":
		return catalog.NewPostgresStore(cfg.Catalog.DSN)
	default: // rest
		return catalog.NewRESTStore(cfg.Catalog.URL, cfg.Catalog.AnonKey), nil
	}
}

func newCacheStore(cfg *config.Config) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case "redis":
		return cache.NewRedisStore(cache.RedisOptions{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Key:      cfg.Cache.Redis.Key,
		})
	default: // file
		return cache.NewFileStore(cfg.Cache.Path), nil
	}
}
