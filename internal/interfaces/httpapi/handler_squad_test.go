package httpapi

import (
	"bufio"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/squadup/internal/infrastructure/repository/memory"
)

func readSquadEvent(t *testing.T, reader *bufio.Reader) []squadDTO {
	t.Helper()

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("read stream: %v", err)
		}
		data, ok := strings.CutPrefix(strings.TrimRight(line, "\n"), "data: ")
		if !ok {
			continue
		}
		var items []squadDTO
		if err := sonic.UnmarshalString(data, &items); err != nil {
			t.Fatalf("decode stream event %q: %v", data, err)
		}
		return items
	}
}

func TestStreamMySquads_PushesSnapshots(t *testing.T) {
	api := newTestAPI(t, nil)
	server := httptest.NewServer(api.router)
	defer server.Close()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, server.URL+"/v1/squads/me/stream", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer token-sam")

	resp, err := server.Client().Do(req)
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("unexpected content type: got=%s want=text/event-stream", got)
	}

	reader := bufio.NewReader(resp.Body)
	if items := readSquadEvent(t, reader); len(items) != 0 {
		t.Fatalf("unexpected initial squads: got=%d want=0", len(items))
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		api.do(t, http.MethodPost, "/v1/squads/"+memory.SquadIDBloorWest+"/join", "token-sam", "")
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("join did not finish")
	}

	items := readSquadEvent(t, reader)
	if len(items) != 1 || items[0].ID != memory.SquadIDBloorWest {
		t.Fatalf("unexpected squads after join: %+v", items)
	}
}

func TestStreamMySquads_RequiresAuth(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.do(t, http.MethodGet, "/v1/squads/me/stream", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusUnauthorized)
	}
}
