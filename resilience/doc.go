// Package resilience provides retry with exponential backoff for operation
// runners.
//
// The scheduler never retries failed task nodes; retry policy belongs to the
// runner layer, which wraps operation execution with this package:
//
//	out, err := resilience.Retry(ctx, resilience.DefaultRetryConfig(), func() (string, error) {
//	    return run.Execute(ctx, opID, params)
//	})
package resilience
