package resolver

import "context"

// IAddrSource discovers the machine's current public IPv4 address.
type IAddrSource interface {
	OwnIP(ctx context.Context) (string, error)
}

// INameResolver finds the address currently published for a host.
type INameResolver interface {
	// QueryNS returns one authoritative nameserver of domain.
	QueryNS(ctx context.Context, domain string) (string, error)
	// QueryA asks nameserver directly for the A record of host.
	QueryA(ctx context.Context, host, nameserver string) (string, error)
}
