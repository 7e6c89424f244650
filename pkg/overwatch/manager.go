package overwatch

import "github.com/jxo-me/ddns-updater/core/service"

// Manager is based type to manage running services
type Manager interface {
	Add(service service.IDDNSService)
	Remove(string)
	Services() []service.IDDNSService
	// Watch makes changes of path re-run the named service.
	Watch(path, name string)
	Trigger(name string) bool
	Shutdown()
}

// Triggerable is implemented by services that can run an extra cycle
// on request.
type Triggerable interface {
	Trigger()
}
