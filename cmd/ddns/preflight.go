package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/jxo-me/ddns-updater/config"
	"github.com/jxo-me/ddns-updater/core/errs"
	"github.com/jxo-me/ddns-updater/sdk/ddns"
)

// geteuid is replaced in tests.
var geteuid = os.Geteuid

// preflight is everything that has to hold before the first cycle.
type preflight struct {
	provider string
	debug    bool
	store    *config.Store
	registry *ddns.Registry
}

// Check returns every problem found, not just the first one.
func (p *preflight) Check() []error {
	var problems []error

	if !p.debug && geteuid() != 0 {
		problems = append(problems, errors.New("must be run as root (or with --debug)"))
	}

	if p.provider == "" {
		problems = append(problems, errors.New("no provider given"))
		return problems
	}
	if p.store == nil {
		return problems
	}

	section, err := p.store.Section(p.provider)
	if err != nil {
		return append(problems, err)
	}
	if !p.registry.IsRegistered(p.provider) {
		problems = append(problems, errors.Wrapf(errs.ErrAdapterNotImplemented,
			"service '%s' is not implemented, available: %s", p.provider, strings.Join(p.registry.Names(), ", ")))
	}

	domain, err := section.Domain()
	if err != nil {
		return append(problems, err)
	}
	if !config.IsValidDomain(domain.Name) {
		problems = append(problems, errors.Wrapf(errs.ErrValidation, "domain '%s' is not a valid domain name", domain.Name))
	} else if domain.GetSubDomain() != "@" && !config.IsValidDomain(domain.FQDN()) {
		problems = append(problems, errors.Wrapf(errs.ErrValidation, "host '%s' does not form a valid domain name", domain.FQDN()))
	}

	if _, ok := section.Lookup(config.OptionSecretsFile); ok {
		if _, err := section.Secret(); err != nil {
			problems = append(problems, err)
		}
	}
	return problems
}
