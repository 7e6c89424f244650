package util

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jxo-me/ddns-updater/consts"
)

func TestCreateHTTPClient(t *testing.T) {
	assert.Equal(t, consts.DefaultHTTPTimeout, CreateHTTPClient(0).Timeout)
	assert.Equal(t, 3*time.Second, CreateHTTPClient(3*time.Second).Timeout)
}

func TestGetHTTPResponseOrg(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			http.Error(w, "nope", http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	clt := CreateHTTPClient(time.Second)

	resp, err := clt.Get(srv.URL + "/")
	body, err := GetHTTPResponseOrg(resp, srv.URL+"/", err)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))

	resp, err = clt.Get(srv.URL + "/fail?password=p")
	_, err = GetHTTPResponseOrg(resp, srv.URL+"/fail?password=p", err)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.NotContains(t, err.Error(), "password=p")

	_, err = GetHTTPResponseOrg(nil, "http://x/?password=p", errors.New("dial"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password=xxxxx")
}
