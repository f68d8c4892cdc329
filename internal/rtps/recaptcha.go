package rtps

import (
	"context"

	"github.com/google/uuid"
)

// TokenProvider yields a bot-verification token for a site key. Hosts
// with a real verification client plug their own implementation; the
// orchestrator bounds each acquisition with its configured timeout.
type TokenProvider interface {
	Token(ctx context.Context, siteKey string) (string, error)
}

// TokenProviderFunc adapts a function to TokenProvider.
type TokenProviderFunc func(ctx context.Context, siteKey string) (string, error)

func (f TokenProviderFunc) Token(ctx context.Context, siteKey string) (string, error) {
	return f(ctx, siteKey)
}

// fallbackTokenProvider mints opaque per-call tokens. Used when no
// verification client is configured or the brand carries no site key; the
// backend treats unverifiable tokens as low-confidence rather than
// rejecting the request outright.
type fallbackTokenProvider struct{}

func (fallbackTokenProvider) Token(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return uuid.NewString(), nil
}
