package namecheap

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jxo-me/ddns-updater/config"
	"github.com/jxo-me/ddns-updater/core/errs"
)

func loadSection(t *testing.T, body string) *config.Section {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secret.txt"), []byte("test_secret_password\n"), 0600))
	path := filepath.Join(dir, "ddns.ini")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(body, filepath.Join(dir, "secret.txt"))), 0600))
	store, err := config.Load(path)
	require.NoError(t, err)
	sec, err := store.Section(Code)
	require.NoError(t, err)
	return sec
}

func TestUpdateURL(t *testing.T) {
	sec := loadSection(t, `[namecheap]
url_root = https://dynamicdns.park-your-domain.com/update?
host = testhost
domain = testdomain.com
secrets_file = %s
`)
	p, err := New(sec)
	require.NoError(t, err)
	assert.Equal(t, Code, p.String())

	u, err := p.UpdateURL("192.0.2.1")
	require.NoError(t, err)
	assert.Equal(t,
		"https://dynamicdns.park-your-domain.com/update?host=testhost&domain=testdomain.com&password=test_secret_password&ip=192.0.2.1",
		u)

	assert.Equal(t, "DDNS Service namecheap", fmt.Sprintf("%#v", p))
	assert.Equal(t, "testdomain.com", p.Options()["domain"])
}

func TestUpdateURLMissingOption(t *testing.T) {
	sec := loadSection(t, `[namecheap]
host = testhost
domain = testdomain.com
secrets_file = %s
`)
	p, err := New(sec)
	require.NoError(t, err)

	_, err = p.UpdateURL("192.0.2.1")
	require.Error(t, err)
	var missing *errs.MissingOptionError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "url_root", missing.Option)
}

func TestCheckResponse(t *testing.T) {
	nc := &NameCheap{}
	ok := `<?xml version="1.0"?><interface-response><Command>SETDNSHOST</Command><ErrCount>0</ErrCount><Done>true</Done></interface-response>`
	bad := `<?xml version="1.0"?><interface-response><ErrCount>1</ErrCount><errors><Err1>Passwords do not match</Err1></errors></interface-response>`

	assert.NoError(t, nc.CheckResponse([]byte(ok)))
	err := nc.CheckResponse([]byte(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Passwords do not match")
}
