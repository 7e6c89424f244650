package service

import "github.com/jxo-me/ddns-updater/consts"

type IDDNSService interface {
	String() string
	Hash() string
	Start() error
	Stop() error
}

// State is a step of an update cycle.
type State string

const (
	StateIdle              State = "idle"
	StateOwnIPLookup       State = "own_ip_lookup"
	StatePublishedIPLookup State = "published_ip_lookup"
	StateCompare           State = "compare"
	StateUpdating          State = "updating"
	StateReporting         State = "reporting"
)

// Result is the outcome of one update cycle. Step is the last state the
// cycle entered before returning to idle; on failure it names the step
// that failed.
type Result struct {
	Provider string
	Domain   string
	Step     State
	Status   consts.UpdateStatusType
	OldIP    string
	NewIP    string
	// URL is the update URL with credentials redacted.
	URL string
	Err error
}

// Changed reports whether the cycle tried to change the record.
func (r *Result) Changed() bool {
	return r.Status != consts.UpdatedNothing
}
