package provider

import "fmt"

// ProviderError reports a failed remote call. Every adapter failure is
// wrapped in one, so callers can match the whole class with errors.As.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ParseError reports a provider response that was expected to contain
// structured data but did not parse. It is always wrapped in a ProviderError
// for propagation; the distinct type exists for diagnostics.
type ParseError struct {
	Provider string
	Reason   string
	Raw      string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Reason)
}
