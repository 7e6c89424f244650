package ddns

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/jxo-me/ddns-updater/config"
	"github.com/jxo-me/ddns-updater/core/ddns"
	"github.com/jxo-me/ddns-updater/core/errs"
	reg "github.com/jxo-me/ddns-updater/core/registry"
	"github.com/jxo-me/ddns-updater/sdk/registry"
)

// Registry resolves provider names to adapters bound to a config section.
type Registry struct {
	factories reg.IRegistry[ddns.Factory]
}

// NewRegistry returns an empty Registry. Use RegisterDefaults to install
// the built-in adapters.
func NewRegistry() *Registry {
	return &Registry{factories: registry.NewProviderRegistry()}
}

func (r *Registry) Register(name string, f ddns.Factory) error {
	if f == nil {
		return errors.Errorf("provider '%s': nil factory", name)
	}
	return r.factories.Register(name, f)
}

func (r *Registry) IsRegistered(name string) bool {
	return r.factories.IsRegistered(name)
}

// Names returns the registered provider names in registration order.
func (r *Registry) Names() []string {
	return r.factories.Names()
}

// Resolve returns the adapter for name bound to its section in store.
// The section is checked first: a provider that is registered but not
// configured fails with ErrSectionMissing, one that is configured but not
// registered with ErrAdapterNotImplemented.
func (r *Registry) Resolve(store *config.Store, name string) (ddns.IProvider, error) {
	section, err := store.Section(name)
	if err != nil {
		return nil, err
	}
	f := r.factories.Get(name)
	if f == nil {
		return nil, errors.Wrapf(errs.ErrAdapterNotImplemented, "no adapter for service '%s'", name)
	}
	p, err := f(section)
	if err != nil {
		return nil, errors.WithMessagef(err, "create adapter '%s'", name)
	}
	return p, nil
}

// AvailableProviders returns the providers that are both registered and
// configured in store, in configuration order.
func (r *Registry) AvailableProviders(store *config.Store) []string {
	var out []string
	for _, name := range store.Sections() {
		if r.factories.IsRegistered(name) {
			out = append(out, name)
		}
	}
	return out
}

// NameOf returns the name p is registered under.
func (r *Registry) NameOf(p ddns.IProvider) (string, bool) {
	if p == nil {
		return "", false
	}
	name := strings.ToLower(p.String())
	if !r.factories.IsRegistered(name) {
		return "", false
	}
	return name, true
}
