// Package classify decides which report kind a free-form request asks
// for, based on a structured breakdown of the request.
package classify

import (
	"context"
	"fmt"

	"questify/internal/jsonutil"
	"questify/internal/llm"
	"questify/internal/report"
	"questify/internal/schema"
)

const systemPrompt = "You are a helpful assistant. Reply briefly."

// ClarifyFunc asks the requester to disambiguate. It receives the reason
// the request was ambiguous and returns the clarification text.
type ClarifyFunc func(ctx context.Context, reason string) (string, error)

// AmbiguousTypeError is returned when the request still cannot be
// classified after all clarification attempts.
type AmbiguousTypeError struct {
	Reason string
}

func (e *AmbiguousTypeError) Error() string {
	return "ambiguous report type: " + e.Reason
}

// Engine classifies report requests. Clarify may be nil, in which case an
// ambiguous request fails on the first attempt.
type Engine struct {
	Client      llm.Client
	Clarify     ClarifyFunc
	MaxAttempts int
}

func NewEngine(client llm.Client, clarify ClarifyFunc) *Engine {
	return &Engine{Client: client, Clarify: clarify, MaxAttempts: 3}
}

// signals is the structured breakdown of one request.
type signals struct {
	CurrentStatus     bool   `json:"asks_current_status"`
	HistoricalChanges bool   `json:"asks_historical_changes"`
	DNSFilters        bool   `json:"asks_dns_filters"`
	DNSDisplays       bool   `json:"asks_dns_displays"`
	NonDNSFilters     bool   `json:"asks_nondns_filters"`
	NonDNSDisplays    bool   `json:"asks_nondns_displays"`
	Comment           string `json:"comment"`
}

// Resolve classifies the request, asking for clarification between
// attempts. Each clarification is appended to the request text so the
// model sees the full history.
func (e *Engine) Resolve(ctx context.Context, request string) (report.Kind, error) {
	attempts := e.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	query := request
	var lastReason string
	for i := 0; i < attempts; i++ {
		sig, err := e.breakdown(ctx, query)
		if err != nil {
			return "", err
		}
		kind, reason, ok := decide(sig)
		if ok {
			return kind, nil
		}
		lastReason = reason
		if e.Clarify == nil || i == attempts-1 {
			break
		}
		clarification, err := e.Clarify(ctx, reason)
		if err != nil {
			return "", fmt.Errorf("classify: clarification: %w", err)
		}
		query += "\nTo be clear, I mean: " + clarification
	}
	return "", &AmbiguousTypeError{Reason: lastReason}
}

func (e *Engine) breakdown(ctx context.Context, query string) (signals, error) {
	var sig signals
	raw, err := e.Client.CompleteJSON(ctx, systemPrompt, query, schema.Breakdown(), 0)
	if err != nil {
		return sig, fmt.Errorf("classify: breakdown: %w", err)
	}
	if err := jsonutil.UnmarshalRaw(raw, &sig); err != nil {
		return sig, fmt.Errorf("classify: decode breakdown: %w", err)
	}
	return sig, nil
}

// decide applies the precedence rule. Current state without history means
// LDAP; history without current state falls through to the DB sub-rule;
// anything else is ambiguous.
func decide(sig signals) (report.Kind, string, bool) {
	switch {
	case sig.CurrentStatus && !sig.HistoricalChanges:
		return report.KindLDAP, "", true
	case !sig.CurrentStatus && sig.HistoricalChanges:
		return decideDB(sig)
	case sig.CurrentStatus && sig.HistoricalChanges:
		return "", "The request asks about both current status and historical changes, which is ambiguous. Please clarify whether the report should focus on LDAP or database details.", false
	default:
		return "", "The request does not provide enough information to determine the report type.", false
	}
}

func decideDB(sig signals) (report.Kind, string, bool) {
	aboutDNS := sig.DNSFilters || sig.DNSDisplays
	aboutNonDNS := sig.NonDNSFilters || sig.NonDNSDisplays
	switch {
	case aboutDNS && !aboutNonDNS:
		return report.KindDNS, "", true
	case aboutNonDNS && !aboutDNS:
		return report.KindNonDNS, "", true
	case aboutDNS && aboutNonDNS:
		return "", "The request contains both DNS and Non-DNS database-related details, which is ambiguous. Please clarify whether the report should focus on DNS or Non-DNS details.", false
	default:
		return "", "The request does not provide enough information to determine the database report type.", false
	}
}
