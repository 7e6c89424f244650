package resolver

import (
	"context"
	"net"
	"os"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/pkg/errors"
	"golang.org/x/net/publicsuffix"

	"github.com/jxo-me/ddns-updater/consts"
	"github.com/jxo-me/ddns-updater/core/errs"
	"github.com/jxo-me/ddns-updater/core/logger"
)

const (
	resolvConf = "/etc/resolv.conf"
	dnsPort    = "53"
)

var fallbackServers = []string{"1.1.1.1:53", "8.8.8.8:53"}

type DNSOption func(r *DNSResolver)

// WithServers sets the recursive servers used for the NS query.
func WithServers(servers ...string) DNSOption {
	return func(r *DNSResolver) {
		r.servers = r.servers[:0]
		for _, s := range servers {
			if s = strings.TrimSpace(s); s != "" {
				r.servers = append(r.servers, s)
			}
		}
	}
}

func WithDNSTimeout(timeout time.Duration) DNSOption {
	return func(r *DNSResolver) {
		r.timeout = timeout
	}
}

func WithDNSLogger(log logger.ILogger) DNSOption {
	return func(r *DNSResolver) {
		r.logger = log
	}
}

// DNSResolver looks up the published address of a host by asking one of
// the zone's authoritative nameservers directly, bypassing caches.
type DNSResolver struct {
	servers []string
	timeout time.Duration
	logger  logger.ILogger
}

func NewDNSResolver(opts ...DNSOption) *DNSResolver {
	r := &DNSResolver{
		timeout: consts.DefaultDNSTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Default()
	}
	if len(r.servers) == 0 {
		r.servers = bootstrapServers()
	}
	for i, s := range r.servers {
		r.servers[i] = withPort(s)
	}
	return r
}

// Servers returns the recursive servers in use.
func (r *DNSResolver) Servers() []string {
	out := make([]string, len(r.servers))
	copy(out, r.servers)
	return out
}

// bootstrapServers: DDNS_DNS_SERVER, then resolv.conf, then public resolvers.
func bootstrapServers() []string {
	if env := os.Getenv(consts.DNSServerENV); env != "" {
		var servers []string
		for _, s := range strings.Split(env, ",") {
			if s = strings.TrimSpace(s); s != "" {
				servers = append(servers, s)
			}
		}
		if len(servers) > 0 {
			return servers
		}
	}
	if cfg, err := dns.ClientConfigFromFile(resolvConf); err == nil && len(cfg.Servers) > 0 {
		servers := make([]string, 0, len(cfg.Servers))
		for _, s := range cfg.Servers {
			servers = append(servers, net.JoinHostPort(s, cfg.Port))
		}
		return servers
	}
	return append([]string(nil), fallbackServers...)
}

func withPort(server string) string {
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server
	}
	return net.JoinHostPort(strings.Trim(server, "[]"), dnsPort)
}

// QueryNS returns the first NS record of domain. When domain has none,
// its registrable domain (eTLD+1) is tried as well.
func (r *DNSResolver) QueryNS(ctx context.Context, domain string) (string, error) {
	domain = strings.TrimSuffix(domain, ".")
	candidates := []string{domain}
	if apex, err := publicsuffix.EffectiveTLDPlusOne(domain); err == nil && apex != domain {
		candidates = append(candidates, apex)
	}

	var lastErr error
	for _, name := range candidates {
		m := new(dns.Msg)
		m.SetQuestion(dns.Fqdn(name), dns.TypeNS)

		for _, server := range r.servers {
			resp, err := r.exchange(ctx, m, server)
			if err != nil {
				r.logger.Debugf("ns query for %s on %s failed: %v", name, server, err)
				lastErr = &errs.LookupError{Step: "ns", Target: name, Server: server, Err: err}
				continue
			}
			for _, rr := range resp.Answer {
				if ns, ok := rr.(*dns.NS); ok {
					return strings.TrimSuffix(ns.Ns, "."), nil
				}
			}
			// the server answered; asking the next one will not change it
			lastErr = nil
			break
		}
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", &errs.LookupError{Step: "ns", Target: domain, Err: errs.ErrNoNameserver}
}

// QueryA asks nameserver, without recursion, for the A record of host and
// returns the first one.
func (r *DNSResolver) QueryA(ctx context.Context, host, nameserver string) (string, error) {
	host = strings.TrimSuffix(host, ".")
	server := withPort(nameserver)

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), dns.TypeA)
	m.RecursionDesired = false

	resp, err := r.exchange(ctx, m, server)
	if err != nil {
		return "", &errs.LookupError{Step: "a", Target: host, Server: nameserver, Err: err}
	}
	for _, rr := range resp.Answer {
		if a, ok := rr.(*dns.A); ok {
			return a.A.String(), nil
		}
	}
	return "", &errs.LookupError{Step: "a", Target: host, Server: nameserver, Err: errs.ErrNoARecord}
}

func (r *DNSResolver) exchange(ctx context.Context, m *dns.Msg, server string) (*dns.Msg, error) {
	c := &dns.Client{Timeout: r.timeout}
	resp, _, err := c.ExchangeContext(ctx, m, server)
	if err != nil {
		return nil, err
	}
	if resp.Truncated {
		c.Net = "tcp"
		if resp, _, err = c.ExchangeContext(ctx, m, server); err != nil {
			return nil, err
		}
	}
	if resp.Rcode != dns.RcodeSuccess && resp.Rcode != dns.RcodeNameError {
		return nil, errors.Errorf("server answered %s", dns.RcodeToString[resp.Rcode])
	}
	return resp, nil
}
