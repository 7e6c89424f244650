package resolver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jxo-me/ddns-updater/consts"
	"github.com/jxo-me/ddns-updater/core/errs"
	"github.com/jxo-me/ddns-updater/internal/util"
	xlogger "github.com/jxo-me/ddns-updater/sdk/logger"
)

func TestWebResolver(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("203.0.113.5\n"))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer bad.Close()
	junk := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>hello</html>"))
	}))
	defer junk.Close()
	v6 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("2001:db8::1"))
	}))
	defer v6.Close()
	mapped := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("::ffff:192.0.2.1"))
	}))
	defer mapped.Close()

	client := util.CreateHTTPClient(time.Second)
	ctx := context.Background()

	ip, err := NewWebResolver(good.URL, client, xlogger.Nop()).OwnIP(ctx)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.5", ip)

	ip, err = NewWebResolver(bad.URL+", "+junk.URL+","+good.URL, client, xlogger.Nop()).OwnIP(ctx)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.5", ip)

	ip, err = NewWebResolver(mapped.URL, client, xlogger.Nop()).OwnIP(ctx)
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.1", ip)

	for _, u := range []string{bad.URL, junk.URL, v6.URL} {
		_, err = NewWebResolver(u, client, xlogger.Nop()).OwnIP(ctx)
		assert.True(t, errors.Is(err, errs.ErrNetwork), u)
	}
}

func TestNewWebResolverDefaults(t *testing.T) {
	w := NewWebResolver(" , ", nil, nil)
	assert.Equal(t, []string{consts.DefaultWhatsMyIPURL}, w.urls)
	assert.NotNil(t, w.client)
	assert.NotNil(t, w.logger)
}
