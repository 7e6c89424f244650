package hook

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/jxo-me/ddns-updater/config"
	"github.com/jxo-me/ddns-updater/consts"
	"github.com/jxo-me/ddns-updater/core/hook"
	"github.com/jxo-me/ddns-updater/core/logger"
	"github.com/jxo-me/ddns-updater/core/service"
	"github.com/jxo-me/ddns-updater/internal/util"
)

const (
	Code = "webhook"
)

// Webhook Webhook
type Webhook struct {
	WebhookURL         string
	WebhookRequestBody string
	WebhookHeaders     string
	client             *http.Client
	logger             logger.ILogger
}

// hasJSONPrefix returns true if the string starts with a JSON open brace.
func hasJSONPrefix(s string) bool {
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}

// NewHook returns nil when cfg has no URL.
func NewHook(cfg *config.Webhook, client *http.Client, log logger.ILogger) hook.IHook {
	if cfg == nil || cfg.WebhookURL == "" {
		return nil
	}
	if client == nil {
		client = util.CreateHTTPClient(consts.DefaultHTTPTimeout)
	}
	if log == nil {
		log = logger.Default()
	}
	return &Webhook{
		WebhookURL:         cfg.WebhookURL,
		WebhookRequestBody: cfg.WebhookRequestBody,
		WebhookHeaders:     cfg.WebhookHeaders,
		client:             client,
		logger:             log,
	}
}

func (w *Webhook) String() string {
	return Code
}

// ExecHook 成功和失败都要触发webhook; unchanged cycles are skipped.
func (w *Webhook) ExecHook(ctx context.Context, result *service.Result) error {
	if result == nil || result.Status == consts.UpdatedNothing {
		return nil
	}

	method := http.MethodGet
	postPara := ""
	contentType := "application/x-www-form-urlencoded"
	if w.WebhookRequestBody != "" {
		method = http.MethodPost
		postPara = w.replacePara(result, w.WebhookRequestBody)
		if util.Json.Valid([]byte(postPara)) {
			contentType = "application/json"
			// 如果 RequestBody 的 JSON 无效但前缀为 JSON 括号则为 JSON
		} else if hasJSONPrefix(postPara) {
			w.logger.Warn("RequestBody 的 JSON 无效！")
		}
	}

	requestURL := w.replacePara(result, w.WebhookURL)
	u, err := url.Parse(requestURL)
	if err != nil {
		return errors.Wrap(err, "Webhook配置中的URL不正确")
	}
	u.RawQuery = u.Query().Encode()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), strings.NewReader(postPara))
	if err != nil {
		return errors.Wrap(err, "创建Webhook请求异常")
	}
	for key, value := range w.CheckParseHeaders(w.WebhookHeaders) {
		req.Header.Add(key, value)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := w.client.Do(req)
	body, err := util.GetHTTPResponseOrg(resp, requestURL, err)
	if err != nil {
		return errors.Wrap(err, "Webhook调用失败")
	}
	w.logger.Debugf("Webhook调用成功, 返回数据: %q", string(body))
	return nil
}

// replacePara 替换参数
func (w *Webhook) replacePara(r *service.Result, orgPara string) string {
	errMsg := ""
	if r.Err != nil {
		errMsg = r.Err.Error()
	}
	return strings.NewReplacer(
		"#{ip}", r.NewIP,
		"#{oldIp}", r.OldIP,
		"#{result}", string(r.Status),
		"#{domain}", r.Domain,
		"#{provider}", r.Provider,
		"#{error}", errMsg,
	).Replace(orgPara)
}

// CheckParseHeaders 每行一个 "Key: Value"
func (w *Webhook) CheckParseHeaders(headerStr string) (headers map[string]string) {
	headers = make(map[string]string)
	headerArr := strings.Split(strings.ReplaceAll(headerStr, "\r\n", "\n"), "\n")
	for _, headerStr := range headerArr {
		headerStr = strings.TrimSpace(headerStr)
		if headerStr != "" {
			key, value, ok := strings.Cut(headerStr, ":")
			if !ok {
				w.logger.Warnf("%s Header不正确", headerStr)
				continue
			}
			headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}
	return headers
}
