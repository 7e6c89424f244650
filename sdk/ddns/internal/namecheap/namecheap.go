package namecheap

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"

	"github.com/jxo-me/ddns-updater/config"
	"github.com/jxo-me/ddns-updater/core/ddns"
)

const (
	Code = "namecheap"

	successMarker = "<ErrCount>0</ErrCount>"
)

// NameCheap builds Namecheap dynamic DNS update URLs.
// https://www.namecheap.com/support/knowledgebase/article.aspx/29/11/how-to-dynamically-update-the-hosts-ip-with-an-http-request/
type NameCheap struct {
	section *config.Section
}

func New(section *config.Section) (ddns.IProvider, error) {
	if section == nil {
		return nil, errors.New("namecheap: nil config section")
	}
	return &NameCheap{section: section}, nil
}

func (nc *NameCheap) String() string {
	return Code
}

func (nc *NameCheap) GoString() string {
	return "DDNS Service " + Code
}

func (nc *NameCheap) Options() map[string]string {
	return nc.section.Options()
}

// UpdateURL 生成更新请求地址; values are inserted as written, url_root is
// expected to end with '?'.
func (nc *NameCheap) UpdateURL(ip string) (string, error) {
	root, err := nc.section.Option(config.OptionURLRoot)
	if err != nil {
		return "", err
	}
	domain, err := nc.section.Domain()
	if err != nil {
		return "", err
	}
	secret, err := nc.section.Secret()
	if err != nil {
		return "", err
	}
	return root + "host=" + domain.Host + "&domain=" + domain.Name + "&password=" + secret + "&ip=" + ip, nil
}

// CheckResponse Namecheap answers 200 with an XML body; the update only
// succeeded when it reports no errors.
func (nc *NameCheap) CheckResponse(body []byte) error {
	if bytes.Contains(body, []byte(successMarker)) {
		return nil
	}
	return fmt.Errorf("namecheap rejected the update: %s", bytes.TrimSpace(body))
}
