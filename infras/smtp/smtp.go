package smtp

//go:generate go run go.uber.org/mock/mockgen -source=./smtp.go -destination=./mocks/smtp_mock.go -package=mocks

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	netSmtp "net/smtp"
	"resort/config"
	"resort/infras/otel"
	"resort/shared/constant"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	implicitTLSPort = 465
)

var (
	ErrMissingRecipient = errors.New("recipient is required")
)

type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

type mailerImpl struct {
	config *config.Config
	otel   otel.Otel
}

func New(config *config.Config, otel otel.Otel) Mailer {
	return &mailerImpl{
		config: config,
		otel:   otel,
	}
}

func (m *mailerImpl) configured() bool {
	smtpConfig := m.config.External.SMTP

	return smtpConfig.Host != "" && smtpConfig.User != "" && smtpConfig.Password != ""
}

func (m *mailerImpl) Send(ctx context.Context, to, subject, html string) (err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelMailScopeName, constant.OtelMailScopeName+".Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if to == "" {
		return ErrMissingRecipient
	}

	if !m.configured() {
		log.Warn().Str("to", to).Str("subject", subject).Msg("[MOCK EMAIL] SMTP is not configured, skipping delivery")

		return nil
	}

	smtpConfig := m.config.External.SMTP

	from := smtpConfig.FromEmail
	if from == "" {
		from = smtpConfig.User
	}

	addr := net.JoinHostPort(smtpConfig.Host, strconv.Itoa(smtpConfig.Port))
	auth := netSmtp.PlainAuth("", smtpConfig.User, smtpConfig.Password, smtpConfig.Host)
	message := buildMessage(smtpConfig.FromName, from, to, subject, html)

	if smtpConfig.UseTLS && smtpConfig.Port == implicitTLSPort {
		err = m.sendImplicitTLS(addr, auth, from, to, message)
	} else {
		err = netSmtp.SendMail(addr, auth, from, []string{to}, message)
	}

	if err != nil {
		log.Error().Err(err).Str("to", to).Msg("failed to send email")

		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("to", to).Str("subject", subject).Msg("email sent")

	return nil
}

func (m *mailerImpl) sendImplicitTLS(addr string, auth netSmtp.Auth, from, to string, message []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{
		ServerName: m.config.External.SMTP.Host,
		MinVersion: tls.VersionTLS12,
	})
	if err != nil {
		return fmt.Errorf("failed to dial smtp server: %w", err)
	}

	client, err := netSmtp.NewClient(conn, m.config.External.SMTP.Host)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	defer client.Close()

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	if err = client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}

	if _, err = writer.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err = writer.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

func buildMessage(fromName, from, to, subject, html string) []byte {
	var buf bytes.Buffer

	sender := from
	if fromName != "" {
		sender = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", fromName), from)
	}

	fmt.Fprintf(&buf, "From: %s\r\n", sender)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(html)

	return buf.Bytes()
}
