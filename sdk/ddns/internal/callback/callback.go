package callback

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/jxo-me/ddns-updater/config"
	"github.com/jxo-me/ddns-updater/core/ddns"
)

const (
	Code = "callback"

	OptionURL = "url"
)

// Callback calls an arbitrary URL template. Supported variables:
// #{ip} #{host} #{domain} #{fqdn} and, when secrets_file is set, #{secret}.
type Callback struct {
	section *config.Section
}

func New(section *config.Section) (ddns.IProvider, error) {
	if section == nil {
		return nil, errors.New("callback: nil config section")
	}
	return &Callback{section: section}, nil
}

func (cb *Callback) String() string {
	return Code
}

func (cb *Callback) GoString() string {
	return "DDNS Service " + Code
}

func (cb *Callback) Options() map[string]string {
	return cb.section.Options()
}

func (cb *Callback) UpdateURL(ip string) (string, error) {
	tpl, err := cb.section.Option(OptionURL)
	if err != nil {
		return "", err
	}
	domain, err := cb.section.Domain()
	if err != nil {
		return "", err
	}

	pairs := []string{
		"#{ip}", ip,
		"#{host}", domain.Host,
		"#{domain}", domain.Name,
		"#{fqdn}", domain.FQDN(),
	}
	if _, ok := cb.section.Lookup(config.OptionSecretsFile); ok {
		secret, err := cb.section.Secret()
		if err != nil {
			return "", err
		}
		pairs = append(pairs, "#{secret}", secret)
	}
	return strings.NewReplacer(pairs...).Replace(tpl), nil
}
