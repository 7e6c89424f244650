package hook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jxo-me/ddns-updater/config"
	"github.com/jxo-me/ddns-updater/consts"
	"github.com/jxo-me/ddns-updater/core/service"
	xlogger "github.com/jxo-me/ddns-updater/sdk/logger"
)

type request struct {
	method      string
	query       string
	contentType string
	auth        string
	body        string
}

func newServer(t *testing.T) (*httptest.Server, chan request) {
	reqs := make(chan request, 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		reqs <- request{
			method:      r.Method,
			query:       r.URL.RawQuery,
			contentType: r.Header.Get("Content-Type"),
			auth:        r.Header.Get("Authorization"),
			body:        string(b),
		}
	}))
	t.Cleanup(srv.Close)
	return srv, reqs
}

var success = &service.Result{
	Provider: "namecheap",
	Domain:   "home.example.com",
	Status:   consts.UpdatedSuccess,
	OldIP:    "192.0.2.1",
	NewIP:    "192.0.2.2",
}

func TestNewHookWithoutURL(t *testing.T) {
	assert.Nil(t, NewHook(nil, nil, nil))
	assert.Nil(t, NewHook(&config.Webhook{}, nil, nil))
}

func TestExecHookGet(t *testing.T) {
	srv, reqs := newServer(t)
	h := NewHook(&config.Webhook{
		WebhookURL: srv.URL + "/?ip=#{ip}&old=#{oldIp}&result=#{result}&domain=#{domain}",
	}, nil, xlogger.Nop())
	require.NotNil(t, h)

	require.NoError(t, h.ExecHook(context.Background(), success))
	r := <-reqs
	assert.Equal(t, http.MethodGet, r.method)
	assert.Equal(t, "domain=home.example.com&ip=192.0.2.2&old=192.0.2.1&result=Success", r.query)
}

func TestExecHookPostJSON(t *testing.T) {
	srv, reqs := newServer(t)
	h := NewHook(&config.Webhook{
		WebhookURL:         srv.URL,
		WebhookRequestBody: `{"text":"#{provider} #{domain}: #{result} #{error}"}`,
		WebhookHeaders:     "Authorization: Bearer abc\r\nbroken-header\nX-Extra: 1",
	}, nil, xlogger.Nop())

	failed := *success
	failed.Status = consts.UpdatedFailed
	failed.Err = errors.New("badauth")
	require.NoError(t, h.ExecHook(context.Background(), &failed))

	r := <-reqs
	assert.Equal(t, http.MethodPost, r.method)
	assert.Equal(t, "application/json", r.contentType)
	assert.Equal(t, "Bearer abc", r.auth)
	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(r.body), &body))
	assert.Equal(t, "namecheap home.example.com: Failure badauth", body["text"])
}

func TestExecHookSkipsUnchanged(t *testing.T) {
	srv, reqs := newServer(t)
	h := NewHook(&config.Webhook{WebhookURL: srv.URL}, nil, xlogger.Nop())

	unchanged := *success
	unchanged.Status = consts.UpdatedNothing
	require.NoError(t, h.ExecHook(context.Background(), &unchanged))
	assert.Len(t, reqs, 0)
}

func TestExecHookServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	h := NewHook(&config.Webhook{WebhookURL: srv.URL}, nil, xlogger.Nop())
	assert.Error(t, h.ExecHook(context.Background(), success))
}

func TestCheckParseHeaders(t *testing.T) {
	w := &Webhook{logger: xlogger.Nop()}
	assert.Equal(t, map[string]string{
		"Authorization": "Bearer abc",
		"X-Url":         "https://example.com",
	}, w.CheckParseHeaders("Authorization: Bearer abc\r\nX-Url: https://example.com\n\nbad"))
}
