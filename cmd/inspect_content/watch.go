package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"content-platform-be/internal/config"
	"content-platform-be/pkg/events"
	pktNats "content-platform-be/pkg/nats"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCommand() *cobra.Command {
	var eventType string
	var durable string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print content events from NATS as they arrive (uses NATS_URL)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cfg.App.NatsURL == "" {
				return fmt.Errorf("NATS_URL is not set")
			}

			sub, err := pktNats.NewSubscriber(cfg.App.NatsURL, zap.NewNop())
			if err != nil {
				return err
			}
			defer sub.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			err = sub.Subscribe(ctx, eventType, durable, func(ctx context.Context, event events.Event) error {
				data, err := json.Marshal(event.Payload())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %-16s %s\n", event.Timestamp().Format("15:04:05"), event.EventType(), data)
				return nil
			})
			if err != nil {
				return err
			}

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&eventType, "type", "*", "Event type to follow, e.g. CONTENT_INDEXED")
	cmd.Flags().StringVar(&durable, "durable", "", "Durable consumer name; empty for an ephemeral consumer")
	return cmd
}
