package ddns

import (
	"github.com/jxo-me/ddns-updater/core/ddns"
	"github.com/jxo-me/ddns-updater/sdk/ddns/internal/callback"
	"github.com/jxo-me/ddns-updater/sdk/ddns/internal/dyndns2"
	"github.com/jxo-me/ddns-updater/sdk/ddns/internal/namecheap"
)

// builtin is the adapter table, in the order `--list` reports them.
var builtin = []struct {
	name    string
	factory ddns.Factory
}{
	{namecheap.Code, namecheap.New},
	{callback.Code, callback.New},
	{dyndns2.Code, dyndns2.New},
}

// RegisterDefaults installs the built-in adapters into r.
func RegisterDefaults(r *Registry) error {
	for _, b := range builtin {
		if err := r.Register(b.name, b.factory); err != nil {
			return err
		}
	}
	return nil
}
