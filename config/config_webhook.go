package config

// Webhook is notified after a cycle that changed the record or failed to.
type Webhook struct {
	// 支持的变量 #{ip}=新的IP地址, #{oldIp}=DNS中原来的IP地址,
	// #{result}=更新结果: UnChanged/Failure/Success/Bypassed,
	// #{domain}=完整域名, #{provider}=DDNS服务名称, #{error}=失败原因
	WebhookURL string `json:"url" yaml:"url" mapstructure:"url"`
	// 如 RequestBody 为空则为 GET 请求，否则为 POST 请求。支持的变量同上
	WebhookRequestBody string `json:"request_body" yaml:"request_body,omitempty" mapstructure:"request_body"`
	// 一行一个Header, 如：Authorization: Bearer API_KEY
	WebhookHeaders string `json:"headers" yaml:"headers,omitempty" mapstructure:"headers"`
}
