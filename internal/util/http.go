package util

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/jxo-me/ddns-updater/consts"
)

// CreateHTTPClient returns a client with its own transport and the given
// overall timeout. A zero timeout uses consts.DefaultHTTPTimeout.
func CreateHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = consts.DefaultHTTPTimeout
	}
	c := cleanhttp.DefaultClient()
	c.Timeout = timeout
	return c
}

// GetHTTPResponseOrg 处理HTTP结果，返回byte
func GetHTTPResponseOrg(resp *http.Response, url string, err error) ([]byte, error) {
	if err != nil {
		return nil, fmt.Errorf("request %s failed: %w", RedactURL(url), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response of %s failed: %w", RedactURL(url), err)
	}

	// 300及以上状态码都算异常
	if resp.StatusCode >= http.StatusMultipleChoices {
		return body, fmt.Errorf("request %s returned status %d: %s", RedactURL(url), resp.StatusCode, string(body))
	}
	return body, nil
}
