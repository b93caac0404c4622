package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/JonMunkholm/gamestore/internal/catalog"
	"github.com/JonMunkholm/gamestore/internal/source"
)

func TestMapError(t *testing.T) {
	retrieval := func(err error) error {
		return &catalog.RetrievalError{Kind: catalog.KindPacks, Location: "https://example.com/x.csv", Err: err}
	}

	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"nil error returns empty", nil, "", 0},
		{"source not configured", fmt.Errorf("packs: %w", catalog.ErrSourceNotConfigured), "CFG001", http.StatusServiceUnavailable},
		{"retrieval failure", retrieval(errors.New("dial tcp: i/o failure")), "SRC001", http.StatusBadGateway},
		{"upstream status wins over retrieval", retrieval(&source.StatusError{StatusCode: 404, Status: "404 Not Found"}), "SRC002", http.StatusBadGateway},
		{"unsupported location", retrieval(fmt.Errorf("%w: scheme %q", source.ErrUnsupportedLocation, "ftp")), "SRC003", http.StatusServiceUnavailable},
		{"document too large", retrieval(source.ErrTooLarge), "SRC004", http.StatusBadGateway},
		{"pack not found", catalog.ErrPackNotFound, "CAT001", http.StatusNotFound},
		{"unit not found", fmt.Errorf("lookup: %w", catalog.ErrUnitNotFound), "CAT002", http.StatusNotFound},
		{"invalid filter", catalog.PackQuery{Min: new(int), Max: ptr(-1)}.Validate(), "REQ001", http.StatusBadRequest},
		{"cancelled fetch", retrieval(context.Canceled), "REQ002", 499},
		{"deadline", retrieval(context.DeadlineExceeded), "REQ003", http.StatusGatewayTimeout},
		{"limiter busy", ErrTooManyFetches, "RATE002", http.StatusServiceUnavailable},
		{"untyped rate limit", errors.New("rate limit exceeded"), "RATE001", http.StatusTooManyRequests},
		{"untyped refused", errors.New("dial tcp 127.0.0.1:6379: connect: Connection Refused"), "SRC001", http.StatusBadGateway},
		{"unknown error returns default", errors.New("some random internal error"), "ERR000", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("MapError() status = %d, want %d", got.Status, tt.wantStatus)
			}
		})
	}
}

func ptr(n int) *int { return &n }

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(catalog.ErrPackNotFound)

	expected := "Pack not found (Code: CAT001). Browse the pack catalog for available packs"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
	if FormatUserError(nil) != "" {
		t.Error("FormatUserError(nil) should be empty")
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error is not user facing", nil, false},
		{"known error is user facing", catalog.ErrSourceNotConfigured, true},
		{"unknown error is not user facing", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRateLimited(t *testing.T) {
	if got := RateLimited(); got.Code != "RATE001" || got.Status != http.StatusTooManyRequests {
		t.Errorf("RateLimited() = %+v", got)
	}
}
