package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/esil-events/chatbot/pkg/cache"
	"github.com/esil-events/chatbot/pkg/config"
)

func newCacheCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCache(configPath)
			if err != nil {
				return err
			}
			stats := c.Stats()
			fmt.Printf("Entries: %d\n", stats.Entries)
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCache(configPath)
			if err != nil {
				return err
			}
			c.Clear()
			fmt.Println("Cache cleared.")
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "chatbot.yaml", "path to config file")
	cmd.AddCommand(statsCmd, clearCmd)
	return cmd
}

func openCache(configPath string) (*cache.Cache, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	store, err := newCacheStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}
	return cache.New(store, cfg.Cache.TTL, zerolog.Nop()), nil
}
