package provider

import "context"

// Provider yields additional prohibited patterns at scan time. Providers
// are evaluated fresh on every scan so rotated credentials are picked up
// without re-registration.
type Provider interface {
	Patterns(ctx context.Context) ([]string, error)
}
