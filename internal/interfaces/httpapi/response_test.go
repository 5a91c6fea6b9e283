package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/squadup/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrValidation))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError_Statuses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: fmt.Errorf("%w: bad", usecase.ErrValidation), want: http.StatusBadRequest},
		{name: "not found", err: fmt.Errorf("%w: gone", usecase.ErrNotFound), want: http.StatusNotFound},
		{name: "conflict", err: fmt.Errorf("%w: full", usecase.ErrConflict), want: http.StatusConflict},
		{name: "unauthorized", err: fmt.Errorf("%w: token", usecase.ErrUnauthorized), want: http.StatusUnauthorized},
		{name: "forbidden", err: fmt.Errorf("%w: owner", usecase.ErrForbidden), want: http.StatusForbidden},
		{name: "upstream", err: fmt.Errorf("%w: stripe", usecase.ErrUpstreamService), want: http.StatusBadGateway},
		{name: "unknown", err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(context.Background(), tt.err)
			if got.HTTPStatus != tt.want {
				t.Fatalf("mapError(%v)=%d want=%d", tt.err, got.HTTPStatus, tt.want)
			}
		})
	}
}

func TestWriteCheckoutError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeCheckoutError(context.Background(), rec, fmt.Errorf("dial tcp 10.0.0.1: refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusInternalServerError)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if got := body["error"]; got != internalErrorMsg {
		t.Fatalf("unexpected error message: got=%v want=%s", got, internalErrorMsg)
	}
}

func TestWriteCheckoutError_ProviderFailureIs500WithMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	writeCheckoutError(context.Background(), rec, fmt.Errorf("%w: create checkout session: card network down", usecase.ErrUpstreamService))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusInternalServerError)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	msg, _ := body["error"].(string)
	if !strings.Contains(msg, "card network down") {
		t.Fatalf("expected provider error text, got %q", msg)
	}
	if _, ok := body["url"]; ok {
		t.Fatalf("did not expect url on failure: %v", body)
	}
}
