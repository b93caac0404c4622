package core

// error_messages.go maps technical errors to user-facing messages with a
// code support staff can look up.
//
// # Configuration (CFG)
//
//	CFG001 - Catalog not configured: the catalog has no source location
//
// # Source (SRC)
//
//	SRC001 - Catalog unreachable: the source could not be read
//	SRC002 - Catalog unavailable: the source answered with a non-2xx status
//	SRC003 - Unsupported location: no backend handles the location scheme
//	SRC004 - Catalog too large: the document exceeded the size limit
//
// # Catalog (CAT)
//
//	CAT001 - Pack not found
//	CAT002 - Game not found
//
// # Request (REQ)
//
//	REQ001 - Invalid filter: bad search text or price bounds
//	REQ002 - Request cancelled
//	REQ003 - Request timed out
//
// # Rate limiting (RATE)
//
//	RATE001 - Too many requests from this client
//	RATE002 - Too many catalog fetches in flight
//
// # Default (ERR000)
//
//	ERR000 - Unknown error; the logs hold the technical error
//
// Typed errors are matched first with errors.Is and errors.As. Errors that
// carry no type fall back to case-insensitive substring patterns, first
// match wins.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/gamestore/internal/catalog"
	"github.com/JonMunkholm/gamestore/internal/source"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
	Status  int    // HTTP status the web layer responds with
}

var (
	msgNotConfigured = UserMessage{
		Message: "The catalog is not configured",
		Action:  "Set the catalog source URL and restart the service",
		Code:    "CFG001",
		Status:  http.StatusServiceUnavailable,
	}
	msgUnreachable = UserMessage{
		Message: "The catalog could not be loaded",
		Action:  "Please try again in a few moments",
		Code:    "SRC001",
		Status:  http.StatusBadGateway,
	}
	msgUpstreamStatus = UserMessage{
		Message: "The catalog source is unavailable",
		Action:  "Check that the spreadsheet is still published",
		Code:    "SRC002",
		Status:  http.StatusBadGateway,
	}
	msgUnsupported = UserMessage{
		Message: "The catalog location is not supported",
		Action:  "Use an http(s), s3 or file location",
		Code:    "SRC003",
		Status:  http.StatusServiceUnavailable,
	}
	msgTooLarge = UserMessage{
		Message: "The catalog document is too large",
		Action:  "Raise CATALOG_MAX_BYTES or trim the spreadsheet",
		Code:    "SRC004",
		Status:  http.StatusBadGateway,
	}
	msgPackNotFound = UserMessage{
		Message: "Pack not found",
		Action:  "Browse the pack catalog for available packs",
		Code:    "CAT001",
		Status:  http.StatusNotFound,
	}
	msgUnitNotFound = UserMessage{
		Message: "Game not found",
		Action:  "Browse the game catalog for available titles",
		Code:    "CAT002",
		Status:  http.StatusNotFound,
	}
	msgInvalidFilter = UserMessage{
		Message: "Invalid search filter",
		Action:  "Use whole, non-negative prices with min not above max",
		Code:    "REQ001",
		Status:  http.StatusBadRequest,
	}
	msgCancelled = UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "REQ002",
		Status:  499,
	}
	msgTimeout = UserMessage{
		Message: "Request timed out",
		Action:  "Please try again in a few moments",
		Code:    "REQ003",
		Status:  http.StatusGatewayTimeout,
	}
	msgRateLimited = UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
		Status:  http.StatusTooManyRequests,
	}
	msgBusy = UserMessage{
		Message: "The catalog is busy",
		Action:  "Please wait a moment and try again",
		Code:    "RATE002",
		Status:  http.StatusServiceUnavailable,
	}
)

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
	Status:  http.StatusInternalServerError,
}

// typedErrors are checked in order; wrapped causes come before the
// RetrievalError that wraps them.
var typedErrors = []struct {
	match func(error) bool
	msg   UserMessage
}{
	{isErr(catalog.ErrSourceNotConfigured), msgNotConfigured},
	{isErr(source.ErrUnsupportedLocation), msgUnsupported},
	{isErr(source.ErrTooLarge), msgTooLarge},
	{func(err error) bool {
		var se *source.StatusError
		return errors.As(err, &se)
	}, msgUpstreamStatus},
	{isErr(ErrTooManyFetches), msgBusy},
	{isErr(context.Canceled), msgCancelled},
	{isErr(context.DeadlineExceeded), msgTimeout},
	{func(err error) bool {
		var re *catalog.RetrievalError
		return errors.As(err, &re)
	}, msgUnreachable},
	{isErr(catalog.ErrPackNotFound), msgPackNotFound},
	{isErr(catalog.ErrUnitNotFound), msgUnitNotFound},
	{isErr(catalog.ErrInvalidFilter), msgInvalidFilter},
}

func isErr(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}

// errorPatterns catch untyped errors by message.
var errorPatterns = []struct {
	pattern string
	msg     UserMessage
}{
	{"rate limit", msgRateLimited},
	{"connection refused", msgUnreachable},
	{"no such host", msgUnreachable},
	{"timeout", msgTimeout},
}

// MapError converts a technical error to a user-friendly message. A nil
// error maps to the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, te := range typedErrors {
		if te.match(err) {
			return te.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// RateLimited is the message the web layer sends when a client exceeds its
// request budget.
func RateLimited() UserMessage {
	return msgRateLimited
}

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something more specific than
// ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
