// Package errs holds the error taxonomy shared by the config store, the
// provider registry, the resolvers and the update service. Callers match
// with errors.Is / errors.As; every error returned by this module wraps one
// of the sentinels below.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrConfigNotFound        = errors.New("config file not found")
	ErrConfigEmpty           = errors.New("config file has no sections")
	ErrSectionMissing        = errors.New("config section missing")
	ErrMissingOption         = errors.New("config option missing")
	ErrSecretUnreadable      = errors.New("secrets file unreadable")
	ErrAdapterNotImplemented = errors.New("ddns adapter not implemented")
	ErrValidation            = errors.New("validation failed")
	ErrLookup                = errors.New("dns lookup failed")
	ErrNoNameserver          = errors.New("no authoritative nameserver found")
	ErrNoARecord             = errors.New("no A record found")
	ErrNetwork               = errors.New("network request failed")
)

// MissingOptionError names the absent key so the operator can fix the
// config file directly.
type MissingOptionError struct {
	Section string
	Option  string
}

func (e *MissingOptionError) Error() string {
	return fmt.Sprintf("config section [%s] has no option '%s'", e.Section, e.Option)
}

func (e *MissingOptionError) Is(target error) bool {
	return target == ErrMissingOption
}

// LookupError reports which DNS step failed, for which name, against which
// server.
type LookupError struct {
	Step   string // "ns" or "a"
	Target string
	Server string
	Err    error
}

func (e *LookupError) Error() string {
	if e.Server != "" {
		return fmt.Sprintf("%s lookup for %s on %s: %v", e.Step, e.Target, e.Server, e.Err)
	}
	return fmt.Sprintf("%s lookup for %s: %v", e.Step, e.Target, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}
