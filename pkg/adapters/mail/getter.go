package mail

import (
	"context"
	"io"
	"strings"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"

	"github.com/orchestron-dev/orchestron/pkg/domain"
	"github.com/orchestron-dev/orchestron/pkg/schema"
)

// fetchFunc retrieves up to max recent messages. Split out so tests can
// script mailboxes instead of opening sockets.
type fetchFunc func(ctx context.Context, cfg domain.Config, max int) ([]map[string]any, error)

// Getter is the emailgetter node.
type Getter struct {
	fetch fetchFunc
}

// GetterOption configures a Getter.
type GetterOption func(*Getter)

// WithFetchFunc replaces the IMAP fetch function.
func WithFetchFunc(fn fetchFunc) GetterOption {
	return func(g *Getter) {
		if fn != nil {
			g.fetch = fn
		}
	}
}

// NewGetter creates the emailgetter node.
func NewGetter(opts ...GetterOption) *Getter {
	g := &Getter{fetch: imapFetch}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Describe implements ports.Node.
func (g *Getter) Describe() domain.Descriptor {
	return domain.Descriptor{
		Name:        "emailgetter",
		Description: "Fetch recent emails from an IMAP inbox",
		ConfigKeys:  []string{"imap_server", "user", "password"},
		Parameters: []domain.ParameterSpec{
			{Name: "max_emails", Type: domain.TypeInt, Description: "Maximum emails to fetch", Default: 5},
		},
		Outputs: []string{"emails", "count"},
	}
}

// Execute implements ports.Node.
func (g *Getter) Execute(ctx context.Context, params schema.Params, cfg domain.Config) (domain.Result, error) {
	if missing := cfg.Missing(g.Describe().ConfigKeys); len(missing) > 0 {
		return domain.Fail(domain.KindConfig, "missing config: %v (set in config file or ORCHESTRON_EMAILGETTER_* env)", missing), nil
	}

	max := params.Int("max_emails", 5)
	if max <= 0 {
		return domain.Fail(domain.KindValidation, "max_emails must be positive, got %d", max), nil
	}

	emails, err := g.fetch(ctx, cfg, max)
	if err != nil {
		return domain.FailErr(classifyIMAP(err), err), nil
	}

	list := make([]any, len(emails))
	for i, e := range emails {
		list[i] = e
	}
	return domain.Success(map[string]any{"emails": list, "count": len(list)}), nil
}

// imapFetch pulls the newest messages from INBOX over IMAP TLS.
func imapFetch(ctx context.Context, cfg domain.Config, max int) ([]map[string]any, error) {
	c, err := client.DialTLS(cfg.String("imap_server"), nil)
	if err != nil {
		return nil, err
	}
	defer c.Logout()

	if err := c.Login(cfg.String("user"), cfg.String("password")); err != nil {
		return nil, err
	}

	mbox, err := c.Select("INBOX", true)
	if err != nil {
		return nil, err
	}
	if mbox.Messages == 0 {
		return nil, nil
	}

	from := uint32(1)
	if mbox.Messages > uint32(max) {
		from = mbox.Messages - uint32(max) + 1
	}
	seqset := new(imap.SeqSet)
	seqset.AddRange(from, mbox.Messages)

	section := &imap.BodySectionName{BodyPartName: imap.BodyPartName{Specifier: imap.TextSpecifier}, Peek: true}
	items := []imap.FetchItem{imap.FetchEnvelope, section.FetchItem()}

	messages := make(chan *imap.Message, max)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqset, items, messages)
	}()

	var emails []map[string]any
	for msg := range messages {
		emails = append(emails, decodeMessage(msg, section))
	}
	if err := <-done; err != nil {
		return nil, err
	}
	return emails, nil
}

func decodeMessage(msg *imap.Message, section *imap.BodySectionName) map[string]any {
	out := map[string]any{"from": "", "subject": "", "body": ""}
	if msg.Envelope != nil {
		out["subject"] = msg.Envelope.Subject
		if len(msg.Envelope.From) > 0 {
			out["from"] = msg.Envelope.From[0].Address()
		}
	}
	if r := msg.GetBody(section); r != nil {
		if body, err := io.ReadAll(r); err == nil {
			out["body"] = string(body)
		}
	}
	return out
}

// classifyIMAP maps an IMAP error to a failure kind.
func classifyIMAP(err error) domain.FailureKind {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "login") || strings.Contains(msg, "auth") || strings.Contains(msg, "credentials") {
		return domain.KindAuth
	}
	return domain.KindConnection
}
