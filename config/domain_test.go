package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidDomain(t *testing.T) {
	valid := []string{
		"example.com",
		"subdomain.example.com",
		"test-domain.org",
		"multi.level.subdomain.example.net",
		"a.co",
		"123domain.com",
		"domain123.com",
		"my-site.example.info",
		"EXAMPLE.COM",
	}
	for _, d := range valid {
		assert.True(t, IsValidDomain(d), "domain %q should be valid", d)
	}

	invalid := []string{
		"",
		"example",
		".example.com",
		"example.com.",
		"-example.com",
		"example-.com",
		"ex..ample.com",
		"a.b",
		"example.c",
		"example.c0m",
		"example com",
		"example@com",
		"sub.-bad.com",
		strings.Repeat("a", 64) + ".com",
		strings.Repeat("a", 250) + ".com",
	}
	for _, d := range invalid {
		assert.False(t, IsValidDomain(d), "domain %q should be invalid", d)
	}
}

func TestIsValidDomainLengthLimit(t *testing.T) {
	label := strings.Repeat("a", 63)
	d := label + "." + label + "." + label + "." + strings.Repeat("b", 61)
	assert.Len(t, d, 253)
	assert.True(t, IsValidDomain(d))
	assert.False(t, IsValidDomain("c"+d))
}

func TestDomainFQDN(t *testing.T) {
	assert.Equal(t, "h.d.com", Domain{Host: "h", Name: "d.com"}.FQDN())
	assert.Equal(t, "d.com", Domain{Host: "@", Name: "d.com"}.FQDN())
	assert.Equal(t, "d.com", Domain{Name: "d.com"}.FQDN())
	assert.Equal(t, "@", Domain{Name: "d.com"}.GetSubDomain())
}
