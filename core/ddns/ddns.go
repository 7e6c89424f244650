package ddns

import "github.com/jxo-me/ddns-updater/config"

// IProvider is a DDNS provider adapter bound to one config section.
type IProvider interface {
	// String returns the canonical provider name.
	String() string
	// UpdateURL builds the update request URL that publishes ip.
	UpdateURL(ip string) (string, error)
	// Options returns a copy of the bound section options.
	Options() map[string]string
}

// ResponseChecker is implemented by providers whose update endpoint
// answers 200 even when it rejects the update.
type ResponseChecker interface {
	CheckResponse(body []byte) error
}

// Factory binds a new adapter to section.
type Factory func(section *config.Section) (IProvider, error)
