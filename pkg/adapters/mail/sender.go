// Package mail provides the emailsender and emailgetter action nodes,
// wrapping SMTP and IMAP transports behind the node contract.
package mail

import (
	"context"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/orchestron-dev/orchestron/pkg/domain"
	"github.com/orchestron-dev/orchestron/pkg/schema"
)

// sendFunc performs the actual SMTP delivery. Split out so tests can record
// messages instead of opening sockets.
type sendFunc func(cfg domain.Config, msg *gomail.Message) error

// Sender is the emailsender node.
type Sender struct {
	send sendFunc
}

// SenderOption configures a Sender.
type SenderOption func(*Sender)

// WithSendFunc replaces the SMTP delivery function.
func WithSendFunc(fn sendFunc) SenderOption {
	return func(s *Sender) {
		if fn != nil {
			s.send = fn
		}
	}
}

// NewSender creates the emailsender node.
func NewSender(opts ...SenderOption) *Sender {
	s := &Sender{send: smtpSend}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func smtpSend(cfg domain.Config, msg *gomail.Message) error {
	d := gomail.NewDialer(
		cfg.String("smtp_server"),
		cfg.Int("smtp_port", 587),
		cfg.String("user"),
		cfg.String("password"),
	)
	return d.DialAndSend(msg)
}

// Describe implements ports.Node.
func (s *Sender) Describe() domain.Descriptor {
	return domain.Descriptor{
		Name:        "emailsender",
		Description: "Send an email over SMTP",
		ConfigKeys:  []string{"smtp_server", "user", "password"},
		Parameters: []domain.ParameterSpec{
			{Name: "to_email", Type: domain.TypeString, Description: "Recipient email address", Required: true},
			{Name: "subject", Type: domain.TypeString, Description: "Email subject", Required: true},
			{Name: "body", Type: domain.TypeString, Description: "Email body", Required: true},
		},
		Outputs: []string{"status", "to"},
	}
}

// Execute implements ports.Node.
func (s *Sender) Execute(ctx context.Context, params schema.Params, cfg domain.Config) (domain.Result, error) {
	if missing := cfg.Missing(s.Describe().ConfigKeys); len(missing) > 0 {
		return domain.Fail(domain.KindConfig, "missing config: %v (set in config file or ORCHESTRON_EMAILSENDER_* env)", missing), nil
	}

	var in struct {
		To      string `mapstructure:"to_email"`
		Subject string `mapstructure:"subject"`
		Body    string `mapstructure:"body"`
	}
	if err := params.Decode(&in); err != nil {
		return domain.Result{}, err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", cfg.String("user"))
	msg.SetHeader("To", in.To)
	msg.SetHeader("Subject", in.Subject)
	msg.SetBody("text/plain", in.Body)

	if err := s.send(cfg, msg); err != nil {
		return domain.FailErr(classifySMTP(err), err), nil
	}

	return domain.Success(map[string]any{"status": "sent", "to": in.To}), nil
}

// classifySMTP maps a transport error to a failure kind. SMTP auth failures
// carry a 535 response or mention authentication; everything else is treated
// as a connection problem.
func classifySMTP(err error) domain.FailureKind {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "535") || strings.Contains(msg, "auth") {
		return domain.KindAuth
	}
	return domain.KindConnection
}
