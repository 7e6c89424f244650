package app

import (
	"github.com/jxo-me/ddns-updater/core/app"
	reg "github.com/jxo-me/ddns-updater/core/registry"
	"github.com/jxo-me/ddns-updater/core/service"
	"github.com/jxo-me/ddns-updater/sdk/ddns"
	"github.com/jxo-me/ddns-updater/sdk/registry"
)

var _ app.IRuntime = (*Application)(nil)

// Application holds the registries of one process.
type Application struct {
	providers *ddns.Registry
	ddnsReg   reg.IRegistry[service.IDDNSService]
}

// NewApplication returns an Application whose provider registry holds the
// built-in adapters.
func NewApplication() (*Application, error) {
	providers := ddns.NewRegistry()
	if err := ddns.RegisterDefaults(providers); err != nil {
		return nil, err
	}
	return &Application{
		providers: providers,
		ddnsReg:   registry.NewDDNSRegistry(),
	}, nil
}

func (a *Application) ProviderRegistry() *ddns.Registry {
	return a.providers
}

func (a *Application) DDNSRegistry() reg.IRegistry[service.IDDNSService] {
	return a.ddnsReg
}
