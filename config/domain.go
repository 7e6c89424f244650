package config

import "strings"

const (
	maxDomainLength = 253
	maxLabelLength  = 63
	minTLDLength    = 2
)

// Domain 域名实体
type Domain struct {
	Host string
	Name string
}

func (d Domain) String() string {
	return d.FQDN()
}

// FQDN returns host.domain, or the bare domain for the apex host ("" or "@").
func (d Domain) FQDN() string {
	if d.Host != "" && d.Host != "@" {
		return d.Host + "." + d.Name
	}
	return d.Name
}

// GetSubDomain 获得子域名，为空返回@
func (d Domain) GetSubDomain() string {
	if d.Host != "" {
		return d.Host
	}
	return "@"
}

// IsValidDomain reports whether s is a syntactically valid Internet domain
// name per RFC 1034/1123/952: at most 253 characters, at least two labels
// of 1-63 letters, digits or hyphens, no label starting or ending with a
// hyphen, and an all-letter TLD of at least two characters.
func IsValidDomain(s string) bool {
	if s == "" || len(s) > maxDomainLength {
		return false
	}
	labels := strings.Split(s, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if !isValidLabel(label) {
			return false
		}
	}
	tld := labels[len(labels)-1]
	if len(tld) < minTLDLength {
		return false
	}
	for i := 0; i < len(tld); i++ {
		if !isLetter(tld[i]) {
			return false
		}
	}
	return true
}

func isValidLabel(label string) bool {
	if len(label) == 0 || len(label) > maxLabelLength {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		if !isLetter(c) && !(c >= '0' && c <= '9') && c != '-' {
			return false
		}
	}
	return true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
