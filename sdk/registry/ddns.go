package registry

import (
	"github.com/jxo-me/ddns-updater/core/ddns"
	reg "github.com/jxo-me/ddns-updater/core/registry"
	"github.com/jxo-me/ddns-updater/core/service"
)

// ProviderRegistry maps provider names to adapter factories.
type ProviderRegistry struct {
	registry[ddns.Factory]
}

// NewProviderRegistry returns an empty ProviderRegistry.
func NewProviderRegistry() reg.IRegistry[ddns.Factory] {
	return &ProviderRegistry{}
}

// DDNSRegistry holds the long-running update services by name.
type DDNSRegistry struct {
	registry[service.IDDNSService]
}

// NewDDNSRegistry returns an empty DDNSRegistry.
func NewDDNSRegistry() reg.IRegistry[service.IDDNSService] {
	return &DDNSRegistry{}
}
