// internal/auth/provider.go
package auth

// Provider describes an external login provider. Providers are injected
// into the services that need them at startup instead of being collected
// in a mutable package-level registry.
type Provider struct {
	// Key is the stable identifier recorded on linked external accounts,
	// e.g. "github" or "twitter".
	Key string
	// Title is the human-readable provider name.
	Title string
	// AtUsername is true for services whose usernames are conventionally
	// written with an "@" prefix. Autocomplete unions results from these
	// services when the query starts with "@".
	AtUsername bool
}

// ProviderMap maps provider keys to their descriptors.
type ProviderMap map[string]Provider

// AtUsernameServices returns the keys of providers with @-style usernames.
func (pm ProviderMap) AtUsernameServices() []string {
	var keys []string
	for key, p := range pm {
		if p.AtUsername {
			keys = append(keys, key)
		}
	}
	return keys
}
