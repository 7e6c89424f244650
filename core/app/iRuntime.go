package app

import (
	reg "github.com/jxo-me/ddns-updater/core/registry"
	"github.com/jxo-me/ddns-updater/core/service"
	"github.com/jxo-me/ddns-updater/sdk/ddns"
)

type IRuntime interface {
	ProviderRegistry() *ddns.Registry
	DDNSRegistry() reg.IRegistry[service.IDDNSService]
}
