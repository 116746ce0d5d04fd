package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/esil-events/chatbot/pkg/config"
	"github.com/esil-events/chatbot/pkg/mailer"
)

func newSMTPTestCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "smtp-test",
		Short: "Verify the SMTP connection without sending mail",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := newLogger(cfg.Log)

			m := mailer.New(mailer.SMTPSettings{
				Host:     cfg.Mail.SMTP.Host,
				Port:     cfg.Mail.SMTP.Port,
				Secure:   cfg.Mail.SMTP.Secure,
				User:     cfg.Mail.SMTP.User,
				Password: cfg.Mail.SMTP.Password,
			}, cfg.Mail.Retries, logger)

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			if err := m.TestConnection(ctx, nil); err != nil {
				return fmt.Errorf("smtp connection failed: %w", err)
			}
			fmt.Printf("SMTP connection to %s:%d OK.\n", cfg.Mail.SMTP.Host, cfg.Mail.SMTP.Port)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "chatbot.yaml", "path to config file")
	return cmd
}
