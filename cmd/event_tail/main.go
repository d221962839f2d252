package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vetscribe-be/internal/config"
	"vetscribe-be/pkg/events"
	pktNats "vetscribe-be/pkg/nats"

	"github.com/fatih/color"
)

// Prints generation outcome events forwarded to NATS by running instances.
func main() {
	durable := flag.String("durable", "", "durable consumer name (empty reads from the start each run)")
	flag.Parse()

	cfg := config.Load()
	if cfg.App.NatsURL == "" {
		color.Red("NATS_URL is not set")
		os.Exit(1)
	}

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cc, err := sub.Subscribe(ctx, events.TypeGenerationCompleted, *durable, func(_ context.Context, ev events.Event) error {
		p := ev.Payload()
		line := fmt.Sprintf("%s  %-8v %-11v %-14v %-8v %vms",
			ev.Timestamp().Format("15:04:05"), p["kind"], p["mode"], p["outcome"], p["source"], p["duration_ms"])
		if p["outcome"] == "success" {
			color.Green("%s", line)
		} else {
			color.Yellow("%s", line)
		}
		return nil
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	defer cc.Stop()

	color.Cyan("Tailing %s on %s (ctrl-c to stop)", pktNats.StreamName, cfg.App.NatsURL)
	<-ctx.Done()
}
