package utils

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/mailjet/mailjet-apiv3-go"
)

type MailjetConfig struct {
	APIKey    string
	SecretKey string
	FromEmail string
	FromName  string
}

// MailjetMailer sends through the Mailjet v3.1 send API.
type MailjetMailer struct {
	client *mailjet.Client
	from   mailjet.RecipientV31
}

func NewMailjetMailer(cfg MailjetConfig) (*MailjetMailer, error) {
	if cfg.APIKey == "" || cfg.SecretKey == "" || cfg.FromEmail == "" {
		return nil, errors.New("mailjet: MAILJET_API_KEY, MAILJET_SECRET_KEY and MAILJET_FROM are required")
	}
	return &MailjetMailer{
		client: mailjet.NewMailjetClient(cfg.APIKey, cfg.SecretKey),
		from:   mailjet.RecipientV31{Email: cfg.FromEmail, Name: cfg.FromName},
	}, nil
}

func (m *MailjetMailer) Send(ctx context.Context, msg Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	from := m.from
	messages := mailjet.MessagesV31{Info: []mailjet.InfoMessagesV31{{
		From:     &from,
		To:       &mailjet.RecipientsV31{mailjet.RecipientV31{Email: msg.To}},
		Subject:  msg.Subject,
		TextPart: PlainText(msg.HTML),
		HTMLPart: msg.HTML,
	}}}

	res, err := m.client.SendMailV31(&messages)
	if err != nil {
		return fmt.Errorf("mailjet send to %s: %w", msg.To, err)
	}
	for _, r := range res.ResultsV31 {
		if r.Status != "success" {
			return fmt.Errorf("mailjet send to %s: status %s", msg.To, r.Status)
		}
	}
	log.Printf("Email sent to %s via mailjet (%s)", msg.To, msg.Subject)
	return nil
}
