package mail

import (
	"fmt"
	"io"

	"fleetwatch/src/config"
	"fleetwatch/src/models"
	aws_handler "fleetwatch/src/utils/aws"

	"gopkg.in/gomail.v2"
)

// DeliveryError marks a mail send failure. The scheduler logs it and moves
// on; delivery problems never fail a firing.
type DeliveryError struct {
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivering to %s: %v", e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

type MailServiceI interface {
	Send(recipient string, artifact []byte, format models.ReportFormat, reportName string) error
}

// MailService sends rendered report artifacts over SMTP.
type MailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailService builds the SMTP client. When cfg.SMTP.PasswordSecret is set,
// the password is fetched from AWS Secrets Manager instead of the config file.
func NewMailService(cfg *config.Config) (*MailService, error) {
	password := cfg.SMTP.Password
	if cfg.SMTP.PasswordSecret != "" {
		awsHandler, err := aws_handler.NewAWSHandler(cfg.AWS.Region)
		if err != nil {
			return nil, err
		}
		password, err = awsHandler.SecretManager.GetSecretValue(cfg.SMTP.PasswordSecret)
		if err != nil {
			return nil, err
		}
	}

	return &MailService{
		dialer: gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, password),
		from:   cfg.SMTP.From,
	}, nil
}

func (ms *MailService) Send(recipient string, artifact []byte, format models.ReportFormat, reportName string) error {
	filename, contentType := artifactNaming(format, reportName)

	m := gomail.NewMessage()
	m.SetHeader("From", ms.from)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", fmt.Sprintf("Scheduled report: %s", reportName))
	m.SetBody("text/plain", fmt.Sprintf("The scheduled report %q is attached.", reportName))
	m.Attach(filename,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(artifact)
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {contentType}}),
	)

	if err := ms.dialer.DialAndSend(m); err != nil {
		return &DeliveryError{Recipient: recipient, Err: err}
	}
	return nil
}

func artifactNaming(format models.ReportFormat, reportName string) (string, string) {
	switch format {
	case models.FormatPDF:
		return reportName + ".pdf", "application/pdf"
	case models.FormatExcel:
		return reportName + ".xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return reportName + ".csv", "text/csv"
	}
}
