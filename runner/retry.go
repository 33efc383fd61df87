package runner

import (
	"context"

	"github.com/kbukum/taskgraph/resilience"
)

// WithRetry wraps a Runner with retry semantics. Retryability follows the
// error's Retryable flag: operation failures and timeouts retry, unknown
// operation ids and context cancellation do not.
func WithRetry(r Runner, cfg resilience.RetryConfig) Runner {
	return Func(func(ctx context.Context, opID string, params map[string]any) (string, error) {
		return resilience.Retry(ctx, cfg, func() (string, error) {
			return r.Execute(ctx, opID, params)
		})
	})
}
