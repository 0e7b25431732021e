package provider

import (
	"context"
	"encoding/json"
	"errors"
)

// Provider is one external inference endpoint. Classification providers form
// the cascade; the object-detection provider is consulted once, best-effort.
type Provider interface {
	// Name returns the provider identifier (e.g. the model ID).
	Name() string

	// Infer submits raw image bytes and returns the provider's JSON body.
	// The body is returned undecoded: interpreting label vocabularies is
	// the normalizer's job, and an unrecognizable structure must count as
	// a failure of this provider, not of the request.
	Infer(ctx context.Context, image []byte) (json.RawMessage, error)
}

// ErrUnauthorized marks a credential/authorization failure (HTTP 401).
// The cascade surfaces a credential-scope hint when the last recorded
// failure is of this kind.
var ErrUnauthorized = errors.New("unauthorized")

// Config holds the settings shared by all providers in one process
type Config struct {
	// APIKey is the bearer token sent on every inference call
	APIKey string

	// BaseURL is the inference router prefix; model IDs are appended
	BaseURL string

	// Timeout bounds a single call. Cold-starting models are slow, so the
	// default is generous.
	Timeout int // seconds

	// RatePerHost and Burst bound outbound calls per provider host
	RatePerHost float64
	Burst       int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}
