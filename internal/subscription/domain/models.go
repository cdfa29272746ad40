// Package domain contains the billing-service subscription contract.
package domain

import (
	"context"
	"errors"
	"time"
)

// Status is the remote subscription lifecycle state.
type Status string

const (
	StatusActive        Status = "active"
	StatusPending       Status = "pending"
	StatusPaymentFailed Status = "payment_failed"
	// The billing service historically emitted both spellings.
	StatusCancelled Status = "cancelled"
	StatusCanceled  Status = "canceled"
)

// Active reports whether the subscription is in its paid, current state.
func (s Status) Active() bool { return s == StatusActive }

// Canceled reports whether the subscription was cancelled, accepting both
// spellings seen on the wire.
func (s Status) Canceled() bool { return s == StatusCancelled || s == StatusCanceled }

// PaymentMethod describes the card on file.
type PaymentMethod struct {
	CardType  string `json:"card_type"`
	CardLast4 string `json:"card_last4"`
}

// Record is the richer, server-fetched subscription. It lives only in the
// accessor's cache and is never written to the session store.
type Record struct {
	ID                string         `json:"id"`
	PlanCode          string         `json:"plan_code"`
	Amount            float64        `json:"amount"`
	Status            Status         `json:"status"`
	CurrentPeriodEnd  *time.Time     `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd bool           `json:"cancel_at_period_end,omitempty"`
	PaymentMethod     *PaymentMethod `json:"payment_method,omitempty"`
}

// Client talks to the external billing service.
type Client interface {
	// Fetch returns the caller's subscription, or nil when none exists.
	Fetch(ctx context.Context, token string) (*Record, error)
	Cancel(ctx context.Context, token, subscriptionID string) error
}

var (
	ErrNotConfigured = errors.New("billing endpoint not configured")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrRemote        = errors.New("billing request failed")
)
