package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
)

// Sender delivers transactional mail. Delivery is a boundary collaborator;
// only the messages this backend sends are specified here.
type Sender interface {
	SendVerificationCode(ctx context.Context, to, name, code string) error
	SendPasswordResetCode(ctx context.Context, to, name, code string) error
}

// SMTPSender sends mail through a plain SMTP relay.
type SMTPSender struct {
	addr string
	from string
}

// NewSMTPSender creates a sender targeting the given relay address.
func NewSMTPSender(addr, from string) *SMTPSender {
	return &SMTPSender{addr: addr, from: from}
}

func (s *SMTPSender) SendVerificationCode(_ context.Context, to, name, code string) error {
	body := fmt.Sprintf("Hello %s,\r\n\r\nYour verification code is %s. It expires in 30 minutes.\r\n", name, code)
	return s.send(to, "Verify your email", body)
}

func (s *SMTPSender) SendPasswordResetCode(_ context.Context, to, name, code string) error {
	body := fmt.Sprintf("Hello %s,\r\n\r\nYour password reset code is %s. It expires in 30 minutes.\r\n", name, code)
	return s.send(to, "Reset your password", body)
}

func (s *SMTPSender) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", s.from, to, subject, body)
	return smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(msg))
}

// LogSender logs instead of delivering. Used when no relay is configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a sender that only logs message metadata. The code
// itself is logged too: this sender is for development setups only.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendVerificationCode(_ context.Context, to, name, code string) error {
	s.logger.Info("verification code issued", slog.String("to", to), slog.String("code", code))
	return nil
}

func (s *LogSender) SendPasswordResetCode(_ context.Context, to, name, code string) error {
	s.logger.Info("password reset code issued", slog.String("to", to), slog.String("code", code))
	return nil
}
