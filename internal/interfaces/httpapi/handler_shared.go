package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/squadup/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrValidation, err)
	}

	return nil
}

// decodeAndValidate reads a JSON body, rejecting unknown fields, and runs
// the struct validation tags. An empty body decodes as the zero payload.
func (h *Handler) decodeAndValidate(ctx context.Context, w http.ResponseWriter, r *http.Request, payload any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid JSON body: %v", usecase.ErrValidation, err)
	}
	return h.validateRequest(ctx, payload)
}

func pathValue(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(r.PathValue(name))
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", usecase.ErrValidation, name)
	}
	return value, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", usecase.ErrValidation, name)
	}
	return value, nil
}

func queryBool(r *http.Request, name string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", usecase.ErrValidation, name)
	}
	return value, nil
}

type createSquadRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Sport string `json:"sport" validate:"required"`
}

type registerLeagueRequest struct {
	SquadID string `json:"squad_id" validate:"omitempty,max=128"`
}

type createBookingRequest struct {
	VenueID string `json:"venue_id" validate:"required,max=128"`
	Date    string `json:"date" validate:"required,max=64"`
	Time    string `json:"time" validate:"required,max=64"`
}

type updateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,max=32"`
}
