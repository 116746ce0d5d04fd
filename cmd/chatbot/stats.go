package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/esil-events/chatbot/pkg/config"
	"github.com/esil-events/chatbot/pkg/history"
)

func newStatsCmd() *cobra.Command {
	var (
		configPath string
		days       int
		recent     int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show chat history statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			hist, err := history.New(cfg.DBPath)
			if err != nil {
				return err
			}
			defer hist.Close()

			ctx := context.Background()

			// Recent request view
			if recent > 0 {
				records, err := hist.Recent(ctx, recent)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					fmt.Println("No chat history found.")
					return nil
				}
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "TIME\tINTENT\tCACHE\tPRODUCTS\tSTATUS\tLATENCY\tQUESTION")
				for _, r := range records {
					hit := "-"
					if r.CacheHit {
						hit = "hit"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%dms\t%s\n",
						r.CreatedAt.Format("2006-01-02T15:04:05"), r.Intent, hit, r.ProductCount, r.StatusCode, r.LatencyMs, r.Question)
				}
				return w.Flush()
			}

			// Default: per-day aggregates by intent
			since := time.Now().UTC().AddDate(0, 0, -days)
			stats, err := hist.Stats(ctx, since)
			if err != nil {
				return err
			}
			if len(stats) == 0 {
				fmt.Println("No chat history found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DAY\tINTENT\tREQUESTS\tCACHE HITS\tAVG LATENCY")
			for _, s := range stats {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.0fms\n",
					s.Day, s.Intent, s.Requests, s.CacheHits, s.AvgLatencyMs)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "chatbot.yaml", "path to config file")
	cmd.Flags().IntVar(&days, "days", 7, "number of days to aggregate")
	cmd.Flags().IntVar(&recent, "recent", 0, "show the N most recent requests instead")
	return cmd
}
