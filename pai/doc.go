// Package pai provides a typed client for the Personal AI Filter
// intelligence engine.
//
// The client wraps the resilient httpclient transport and exposes one method
// per backend operation: vectorization, context storage, semantic search,
// insight generation, health checks, and the news signal surface. Inputs are
// sanitized and validated locally before any request is sent; validation
// failures come back as validation_error envelopes without a network call.
//
// Example:
//
//	client, err := pai.NewDefault()
//	if err != nil {
//		return err
//	}
//	result, err := client.Search(ctx, "prompt engineering techniques", 5)
//	if err != nil {
//		if apiErr, ok := errors.AsAPIError(err); ok {
//			log.Printf("request failed: %s", apiErr.Detail.Code)
//		}
//	}
package pai
