package consts

import "time"

// UpdateStatusType 更新状态
type UpdateStatusType string

const (
	// UpdatedNothing 未改变
	UpdatedNothing UpdateStatusType = "UnChanged"
	// UpdatedFailed 更新失败
	UpdatedFailed UpdateStatusType = "Failure"
	// UpdatedSuccess 更新成功
	UpdatedSuccess UpdateStatusType = "Success"
	// UpdatedBypassed debug mode, update call skipped
	UpdatedBypassed UpdateStatusType = "Bypassed"
)

const (
	DefaultWhatsMyIPURL   = "https://4.laxa.org"
	DefaultConfigFileName = "ddns.ini"
	DefaultLogFile        = "logs/ddns.log"
	DefaultLogMaxBackups  = 5
	DefaultHTTPTimeout    = 15 * time.Second
	DefaultDNSTimeout     = 10 * time.Second

	ConfigPathENV = "DDNS_CONFIG_PATH"
	DNSServerENV  = "DDNS_DNS_SERVER"
	EnvPrefix     = "DDNS"
)

const (
	StatusReady   int32 = 0  // Job or Timer is ready for running.
	StatusRunning int32 = 1  // Job or Timer is already running.
	StatusStopped int32 = 2  // Job or Timer is stopped.
	StatusClosed  int32 = -1 // Job or Timer is closed and waiting to be deleted.
)
