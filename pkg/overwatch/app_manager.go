package overwatch

import (
	"path/filepath"
	"sort"
	"sync"

	"github.com/jxo-me/ddns-updater/core/service"
	"github.com/jxo-me/ddns-updater/pkg/watcher"
)

// ServiceCallback is a service notify it's run loop finished.
// the first parameter is the service type,
// the second parameter is the service name,
// the third parameter is an optional error if the service failed
type ServiceCallback func(string, string, error)

// AppManager is the default implementation of over-watched service management.
// It also receives file watcher events and turns them into extra update
// cycles of the services depending on the changed file.
type AppManager struct {
	mu       sync.Mutex
	services map[string]service.IDDNSService
	watched  map[string][]string
	callback ServiceCallback
}

var (
	_ Manager              = (*AppManager)(nil)
	_ watcher.Notification = (*AppManager)(nil)
)

// NewAppManager creates a new over-watched manager
func NewAppManager(callback ServiceCallback) *AppManager {
	return &AppManager{
		services: make(map[string]service.IDDNSService),
		watched:  make(map[string][]string),
		callback: callback,
	}
}

// Add takes in a new service to manage.
// A service with the same name and hash is already running and is left
// alone; one with a different hash is stopped and replaced.
func (m *AppManager) Add(svc service.IDDNSService) {
	m.mu.Lock()
	if current, ok := m.services[svc.String()]; ok {
		if current.Hash() == svc.Hash() {
			m.mu.Unlock()
			return
		}
		_ = current.Stop()
	}
	m.services[svc.String()] = svc
	m.mu.Unlock()

	go m.serviceRun(svc)
}

// Remove stops the named service and forgets it, including its watched files.
func (m *AppManager) Remove(name string) {
	m.mu.Lock()
	current, ok := m.services[name]
	delete(m.services, name)
	for path, names := range m.watched {
		m.watched[path] = without(names, name)
		if len(m.watched[path]) == 0 {
			delete(m.watched, path)
		}
	}
	m.mu.Unlock()

	if ok {
		_ = current.Stop()
	}
}

// Services returns the managed services ordered by name.
func (m *AppManager) Services() []service.IDDNSService {
	m.mu.Lock()
	defer m.mu.Unlock()

	values := make([]service.IDDNSService, 0, len(m.services))
	for _, value := range m.services {
		values = append(values, value)
	}
	sort.Slice(values, func(i, j int) bool { return values[i].String() < values[j].String() })
	return values
}

func (m *AppManager) Watch(path, name string) {
	path = absPath(path)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.watched[path] {
		if n == name {
			return
		}
	}
	m.watched[path] = append(m.watched[path], name)
}

// Trigger asks the named service for an immediate cycle. It reports false
// when the service is unknown or cannot be triggered.
func (m *AppManager) Trigger(name string) bool {
	m.mu.Lock()
	svc, ok := m.services[name]
	m.mu.Unlock()
	if !ok {
		return false
	}
	t, ok := svc.(Triggerable)
	if ok {
		t.Trigger()
	}
	return ok
}

// Shutdown stops every managed service.
func (m *AppManager) Shutdown() {
	for _, svc := range m.Services() {
		m.Remove(svc.String())
	}
}

// WatcherItemDidChange triggers the services watching path.
func (m *AppManager) WatcherItemDidChange(path string) {
	m.mu.Lock()
	names := append([]string(nil), m.watched[absPath(path)]...)
	m.mu.Unlock()
	for _, name := range names {
		m.Trigger(name)
	}
}

func (m *AppManager) WatcherDidError(err error) {
	if m.callback != nil {
		m.callback("watcher", "", err)
	}
}

func (m *AppManager) serviceRun(svc service.IDDNSService) {
	err := svc.Start()
	if m.callback != nil {
		m.callback("ddns", svc.String(), err)
	}
}

// absPath matches the absolute names file watchers report events with.
func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func without(names []string, name string) []string {
	out := names[:0]
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
