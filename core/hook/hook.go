package hook

import (
	"context"

	"github.com/jxo-me/ddns-updater/core/service"
)

type IHook interface {
	String() string
	// ExecHook is called after every cycle that did not end unchanged.
	ExecHook(ctx context.Context, result *service.Result) error
}
