package notify

import (
	"context"
	"fmt"
	"os"

	"github.com/slack-go/slack"
)

// Slack delivers shift alerts to a Slack channel.
type Slack struct {
	client    *slack.Client
	channelID string
}

func ConnectSlack() *Slack {
	token := os.Getenv("SLACK_BOT_TOKEN")
	channel := os.Getenv("SLACK_CHANNEL")

	return NewSlack(token, channel)
}

func NewSlack(token, channelID string) *Slack {
	client := slack.New(token)
	return &Slack{client: client, channelID: channelID}
}

func (s *Slack) Deliver(n Notification) error {
	message := fmt.Sprintf("*%s*\n%s", n.Title, n.Body)
	_, _, err := s.client.PostMessage(
		s.channelID,
		slack.MsgOptionText(message, false),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		return fmt.Errorf("failed to post message to Slack: %w", err)
	}
	return nil
}

func (s *Slack) Probe(ctx context.Context) error {
	_, err := s.client.AuthTestContext(ctx)
	if err != nil {
		return fmt.Errorf("slack auth test failed: %w", err)
	}
	return nil
}
