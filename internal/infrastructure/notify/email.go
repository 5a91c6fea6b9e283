package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/resend/resend-go/v2"
	"github.com/riskibarqy/squadup/internal/domain/checkout"
	"github.com/riskibarqy/squadup/internal/platform/logging"
	"github.com/riskibarqy/squadup/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

type Config struct {
	APIKey string
	From   string
	// BaseURL overrides the Resend API endpoint; tests point it at a local
	// server.
	BaseURL    string
	HTTPClient *http.Client
}

// EmailNotifier sends the "request received" message through Resend. The
// body is written as Markdown and rendered to HTML; raw HTML in item names
// is escaped.
type EmailNotifier struct {
	client   *resend.Client
	from     string
	markdown goldmark.Markdown
	logger   *logging.Logger
}

func NewEmailNotifier(cfg Config, logger *logging.Logger) (*EmailNotifier, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, crerr.New("resend api key is required")
	}
	if strings.TrimSpace(cfg.From) == "" {
		return nil, crerr.New("resend from address is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	client := resend.NewCustomClient(httpClient, cfg.APIKey)
	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, crerr.Wrap(err, "parse resend base url")
		}
		client.BaseURL = base
	}

	return &EmailNotifier{
		client: client,
		from:   cfg.From,
		markdown: goldmark.New(
			goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
		),
		logger: logger,
	}, nil
}

func (n *EmailNotifier) NotifyRequestReceived(ctx context.Context, msg usecase.RequestReceived) error {
	to := strings.TrimSpace(msg.Email)
	if to == "" {
		return crerr.New("recipient email is required")
	}

	html, err := n.render(msg)
	if err != nil {
		return err
	}

	sent, err := n.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{to},
		Subject: subjectFor(msg),
		Html:    html,
	})
	if err != nil {
		return crerr.Wrap(err, "send request received email")
	}

	n.logger.InfoContext(ctx, "request received email sent",
		"message_id", sent.Id,
		"type", string(msg.Type),
	)
	return nil
}

func (n *EmailNotifier) render(msg usecase.RequestReceived) (string, error) {
	md := bytebufferpool.Get()
	defer bytebufferpool.Put(md)

	_, _ = md.WriteString("## We got your request\n\n")
	_, _ = fmt.Fprintf(md, "Thanks for your payment. Your %s request is **pending approval**; we will confirm it manually.\n\n", kindLabel(msg.Type))
	if msg.ItemName != "" {
		_, _ = fmt.Fprintf(md, "- **Item:** %s\n", msg.ItemName)
	}
	if msg.Date != "" {
		_, _ = fmt.Fprintf(md, "- **Date:** %s\n", msg.Date)
	}
	if msg.Time != "" {
		_, _ = fmt.Fprintf(md, "- **Time:** %s\n", msg.Time)
	}
	_, _ = md.WriteString("\nSee you on the field.\n")

	out := bytebufferpool.Get()
	defer bytebufferpool.Put(out)
	if err := n.markdown.Convert(md.B, out); err != nil {
		return "", crerr.Wrap(err, "render request received email")
	}
	return out.String(), nil
}

func subjectFor(msg usecase.RequestReceived) string {
	if msg.ItemName == "" {
		return "SquadUp: request received"
	}
	return "SquadUp: request received for " + msg.ItemName
}

func kindLabel(t checkout.Type) string {
	switch t {
	case checkout.TypeBooking:
		return "venue booking"
	case checkout.TypePickup:
		return "pickup game"
	case checkout.TypeLeague:
		return "league registration"
	default:
		return "checkout"
	}
}
