package main

import (
	"context"
	"fmt"
	"io"

	"github.com/Mavwarf/exticons/internal/config"
	"github.com/Mavwarf/exticons/internal/icon"
	"github.com/Mavwarf/exticons/internal/mqtt"
	"github.com/Mavwarf/exticons/internal/webhook"
)

// notifyAll sends the run summary to every configured target. Failures are
// reported on warn and never change the exit status.
func notifyAll(ctx context.Context, n config.Notify, run icon.Run, warn io.Writer) {
	msg := run.Summary()
	if n.Webhook.URL != "" {
		if err := webhook.Send(ctx, n.Webhook.URL, msg, n.Webhook.Headers); err != nil {
			fmt.Fprintf(warn, "warning: %v\n", err)
		}
	}
	if n.MQTT.Broker != "" {
		if err := mqtt.Publish(n.MQTT, msg); err != nil {
			fmt.Fprintf(warn, "warning: %v\n", err)
		}
	}
}
