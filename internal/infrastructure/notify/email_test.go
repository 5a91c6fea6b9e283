package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/squadup/internal/domain/checkout"
	"github.com/riskibarqy/squadup/internal/platform/logging"
	"github.com/riskibarqy/squadup/internal/usecase"
)

type sentEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func TestEmailNotifier_SendsRenderedMarkdown(t *testing.T) {
	t.Parallel()

	var got sentEmail
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/emails" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer re_test" {
			t.Errorf("unexpected authorization: %s", auth)
		}
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode email: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1"}`))
	}))
	defer srv.Close()

	notifier, err := NewEmailNotifier(Config{
		APIKey:     "re_test",
		From:       "SquadUp <hello@squadup.example>",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	}, logging.NewNop())
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	err = notifier.NotifyRequestReceived(context.Background(), usecase.RequestReceived{
		Email:    "sam@example.com",
		Type:     checkout.TypeBooking,
		ItemName: "Lamport Stadium",
		Date:     "2026-01-10",
		Time:     "7:00 PM",
	})
	if err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	if len(got.To) != 1 || got.To[0] != "sam@example.com" {
		t.Fatalf("unexpected recipients: %v", got.To)
	}
	if got.Subject != "SquadUp: request received for Lamport Stadium" {
		t.Fatalf("unexpected subject: %q", got.Subject)
	}
	for _, want := range []string{"<h2>We got your request</h2>", "<strong>pending approval</strong>", "venue booking", "<li><strong>Time:</strong> 7:00 PM</li>"} {
		if !strings.Contains(got.HTML, want) {
			t.Fatalf("expected html to contain %q, got %s", want, got.HTML)
		}
	}
}

func TestEmailNotifier_EscapesRawHTML(t *testing.T) {
	t.Parallel()

	notifier, err := NewEmailNotifier(Config{APIKey: "re_test", From: "hello@squadup.example"}, logging.NewNop())
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	html, err := notifier.render(usecase.RequestReceived{Type: checkout.TypeLeague, ItemName: "<script>alert(1)</script>"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("expected raw html to be dropped, got %s", html)
	}
}

func TestNewEmailNotifier_RequiresSettings(t *testing.T) {
	t.Parallel()

	if _, err := NewEmailNotifier(Config{From: "a@b.c"}, nil); err == nil {
		t.Fatalf("expected error without api key")
	}
	if _, err := NewEmailNotifier(Config{APIKey: "re_test"}, nil); err == nil {
		t.Fatalf("expected error without from address")
	}
}
