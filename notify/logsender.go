package notify

import (
	"context"
	"log"
)

// LogSender prints alerts to the process log. Used in development and as the
// fallback when no Slack token is configured.
type LogSender struct{}

func (LogSender) Deliver(n Notification) error {
	log.Printf("[alert] %s: %s", n.Title, n.Body)
	return nil
}

func (LogSender) Probe(context.Context) error {
	return nil
}
