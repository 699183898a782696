package config

import (
	"context"
	"fmt"
	"io"
	"log"

	"heaven-palace/utils"
)

// Mailer is satisfied by every mail driver in utils.
type Mailer interface {
	Send(ctx context.Context, msg utils.Email) error
}

// FileStore is satisfied by every storage driver in utils.
type FileStore interface {
	Save(ctx context.Context, folder, filename string, r io.Reader) (string, error)
}

// directMailer builds a driver that delivers inline.
func directMailer(driver string, s Settings) (Mailer, error) {
	switch driver {
	case "", "smtp":
		if !s.SMTP.Configured() {
			log.Println("⚠️  SMTP not configured; emails will be logged only")
		}
		return utils.NewSMTPMailer(s.SMTP), nil
	case "mailjet":
		return utils.NewMailjetMailer(s.Mailjet)
	case "log":
		return utils.LogMailer{}, nil
	}
	return nil, fmt.Errorf("unsupported mail driver %q", driver)
}

// NewMailer picks the MAIL_DRIVER. The returned closer is nil for drivers
// that hold no connection.
func NewMailer(s Settings) (Mailer, io.Closer, error) {
	if s.MailDriver == "amqp" {
		m, err := utils.NewAMQPMailer(s.AMQPURL)
		if err != nil {
			return nil, nil, err
		}
		return m, m, nil
	}
	m, err := directMailer(s.MailDriver, s)
	return m, nil, err
}

// NewMailWorkerSender is the driver the in-process mail worker delivers
// queued email through. It returns nil when the worker is disabled.
func NewMailWorkerSender(s Settings) (Mailer, error) {
	switch s.MailWorker {
	case "none", "off":
		return nil, nil
	case "amqp":
		return nil, fmt.Errorf("MAIL_WORKER_DRIVER cannot be amqp")
	}
	return directMailer(s.MailWorker, s)
}

func NewFileStore(s Settings) (FileStore, error) {
	switch s.Storage {
	case "", "local":
		return utils.NewLocalStorage(s.UploadDir, s.PublicBase), nil
	case "cloudinary":
		return utils.NewCloudinaryStorage(s.Cloudinary, "heaven-palace")
	}
	return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", s.Storage)
}
