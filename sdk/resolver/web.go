package resolver

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/jxo-me/ddns-updater/consts"
	"github.com/jxo-me/ddns-updater/core/errs"
	"github.com/jxo-me/ddns-updater/core/logger"
	"github.com/jxo-me/ddns-updater/internal/util"
)

// WebResolver asks "what is my IP" services over HTTP. The first URL
// answering with an IPv4 literal wins.
type WebResolver struct {
	urls   []string
	client *http.Client
	logger logger.ILogger
}

// NewWebResolver takes a comma separated URL list; empty means
// consts.DefaultWhatsMyIPURL. A nil client gets a default one.
func NewWebResolver(urls string, client *http.Client, log logger.ILogger) *WebResolver {
	w := &WebResolver{client: client, logger: log}
	for _, u := range strings.Split(urls, ",") {
		if u = strings.TrimSpace(u); u != "" {
			w.urls = append(w.urls, u)
		}
	}
	if len(w.urls) == 0 {
		w.urls = []string{consts.DefaultWhatsMyIPURL}
	}
	if w.client == nil {
		w.client = util.CreateHTTPClient(consts.DefaultHTTPTimeout)
	}
	if w.logger == nil {
		w.logger = logger.Default()
	}
	return w
}

func (w *WebResolver) OwnIP(ctx context.Context) (string, error) {
	var lastErr error
	for _, u := range w.urls {
		ip, err := w.get(ctx, u)
		if err == nil {
			return ip, nil
		}
		w.logger.Debugf("own ip lookup via %s failed: %v", u, err)
		lastErr = err
	}
	return "", errors.Wrapf(errs.ErrNetwork, "could not determine own ip (%v)", lastErr)
}

func (w *WebResolver) get(ctx context.Context, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return "", err
	}
	resp, err := w.client.Do(req)
	body, err := util.GetHTTPResponseOrg(resp, u, err)
	if err != nil {
		return "", err
	}
	s := strings.TrimSpace(string(body))
	ip := net.ParseIP(s).To4()
	if ip == nil || !strings.Contains(s, ".") {
		return "", errors.Errorf("%s did not answer with an ipv4 address: %q", u, s)
	}
	// ::ffff:a.b.c.d is reported in the dotted form the A record uses
	return ip.String(), nil
}
