// Package appctx carries application-scoped values through context.Context.
package appctx

import (
	"context"

	"github.com/nmaptor/nmaptor/pkg/config"
)

type ctxKey int

const configKey ctxKey = iota

// WithConfig returns a context carrying the configuration manager.
func WithConfig(ctx context.Context, m *config.Manager) context.Context {
	return context.WithValue(ctx, configKey, m)
}

// ConfigFrom extracts the configuration manager from the context. The second
// return value is false when no manager was attached.
func ConfigFrom(ctx context.Context) (*config.Manager, bool) {
	m, ok := ctx.Value(configKey).(*config.Manager)
	return m, ok
}
