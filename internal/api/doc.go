// Package api provides the HTTP client for the storefront backend.
//
// # Overview
//
// The client covers the full REST surface the application consumes: the
// product catalog, reviews, authentication, email verification, password
// reset, and order history. It handles JSON serialization, bearer
// credentials, and the backend's envelope quirk.
//
// # Architecture
//
// The package is split into two files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Data structures mirroring the storefront API schema
//
// # Envelope handling
//
// The catalog endpoints (GET /products, GET /products/{id}) answer in one
// of two shapes: the JSON payload directly, or an envelope object whose
// "body" field carries the real payload as a string-encoded JSON value.
// unwrapEnvelope resolves both shapes uniformly; a "body" field holding
// malformed JSON fails the request.
//
// # Errors
//
// Non-2xx responses become *APIError, preserving the HTTP status and the
// server's structured {message} when one is present. Transport failures
// and decode failures are returned as wrapped plain errors. Callers that
// build user-facing messages should prefer APIError.Message, then the
// error text, then a fixed default.
//
// # Usage
//
//	client, err := api.NewClient("https://shop.example.com/prod")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	page, err := client.ListProducts(ctx, 1, 10)
//	if err != nil {
//		log.Printf("catalog fetch failed: %v", err)
//	}
package api
