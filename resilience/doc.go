// Package resilience provides the retry engine used by the HTTP client.
//
// Retry policy is linear backoff: the delay before retry N is BaseDelay * N,
// so the default configuration (3 retries, 1s base) sleeps 1s, 2s, 3s
// between attempts. Retries run sequentially; the originating call does not
// resolve until a success occurs or retries are exhausted.
//
//	result, err := resilience.Retry(ctx, resilience.DefaultRetryConfig(), func() (string, error) {
//	    return fetch()
//	})
package resilience
