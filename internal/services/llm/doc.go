// Package llm provides a chat client for OpenRouter-compatible completion
// aggregators.
//
// The aggregator forwards a model identifier plus an ordered list of
// role/content messages to whichever backend provider serves that model and
// returns the generated text. This package owns only the HTTP exchange; the
// provider routing is entirely the aggregator's.
//
// # Configuration
//
// Requires api_key and model; base_url, referer, title, and timeout are
// optional. base_url is the API root (https://openrouter.ai/api/v1); the
// client appends /chat/completions and /models.
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.Complete: send a message list, receive the response text.
// Client.Chat: single user prompt convenience wrapper.
// Client.ListModels: enumerate models the aggregator can route to.
// Client.HealthCheck: verify API key and model availability.
//
// # Retry Behaviour
//
// The client retries on HTTP 408/429/5xx errors, empty completions, and
// network timeouts with exponential backoff (base 1s, max 10s, up to 5
// attempts by default). Retry-After headers are honoured up to the max delay.
// Context cancellation aborts retries immediately. Callers that want a single
// outstanding request pass WithRetryMaxAttempts(1).
package llm
