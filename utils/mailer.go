package utils

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	FromName string
}

func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.Port != "" && c.Username != "" && c.Password != ""
}

// SMTPMailer sends multipart/alternative mail through a plain-auth relay.
type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func headerSafe(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(s), "\r", " "), "\n", " ")
}

func (m *SMTPMailer) Send(ctx context.Context, msg Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !m.cfg.Configured() {
		log.Printf("[MOCK EMAIL] to:%s subject:%s", msg.To, msg.Subject)
		return nil
	}

	from := fmt.Sprintf("%s <%s>", headerSafe(m.cfg.FromName), m.cfg.Username)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)

	if err := smtp.SendMail(addr, auth, m.cfg.Username, []string{msg.To}, BuildMIME(from, msg)); err != nil {
		log.Printf("Failed to send email to %s: %v", msg.To, err)
		return err
	}
	log.Printf("Email sent to %s (%s)", msg.To, msg.Subject)
	return nil
}

const mimeBoundary = "----=_HEAVEN_PALACE_BOUNDARY"

// BuildMIME renders msg as a multipart/alternative message with a plain
// text part derived from the HTML.
func BuildMIME(from string, msg Email) []byte {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", headerSafe(msg.To)))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", headerSafe(msg.Subject)))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", mimeBoundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", mimeBoundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(PlainText(msg.HTML) + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", mimeBoundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(msg.HTML + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", mimeBoundary))
	return []byte(sb.String())
}

// PlainText strips tags; good enough for the text/plain alternative.
func PlainText(html string) string {
	var sb strings.Builder
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			sb.WriteByte(' ')
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// LogMailer only logs. Used in development when MAIL_DRIVER=log.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Email) error {
	log.Printf("[MOCK EMAIL] to:%s subject:%s", msg.To, msg.Subject)
	return nil
}
