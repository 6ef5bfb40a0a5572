// Package services defines shared error markers consumed by the probes and
// their external integrations.
//
// Wrap tags a failure with one of the sentinel markers (external tool,
// validation, timeout, ...) while keeping the component and operation in the
// message, and Category turns that marker back into a short label for logs.
// Integrations live in subpackages (see services/llm).
package services
