package registry

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrDup     = errors.New("registry: duplicate object")
	ErrNoName  = errors.New("registry: empty name")
	ErrUnknown = errors.New("registry: unknown object")
)

// registry is a name-keyed store that remembers registration order.
// Names are case-insensitive.
type registry[T any] struct {
	m     sync.RWMutex
	objs  map[string]T
	order []string
}

func (r *registry[T]) Register(name string, v T) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ErrNoName
	}

	r.m.Lock()
	defer r.m.Unlock()

	if r.objs == nil {
		r.objs = make(map[string]T)
	}
	if _, ok := r.objs[name]; ok {
		return errors.Wrapf(ErrDup, "'%s'", name)
	}
	r.objs[name] = v
	r.order = append(r.order, name)
	return nil
}

func (r *registry[T]) Unregister(name string) {
	name = strings.ToLower(name)

	r.m.Lock()
	defer r.m.Unlock()

	if _, ok := r.objs[name]; !ok {
		return
	}
	delete(r.objs, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *registry[T]) IsRegistered(name string) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	_, ok := r.objs[strings.ToLower(name)]
	return ok
}

func (r *registry[T]) Get(name string) (t T) {
	if name == "" {
		return
	}
	r.m.RLock()
	defer r.m.RUnlock()

	return r.objs[strings.ToLower(name)]
}

func (r *registry[T]) GetAll() map[string]T {
	r.m.RLock()
	defer r.m.RUnlock()

	m := make(map[string]T, len(r.objs))
	for k, v := range r.objs {
		m[k] = v
	}
	return m
}

func (r *registry[T]) Names() []string {
	r.m.RLock()
	defer r.m.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
