package ports

import "time"

// Query outcomes reported to a QueryRecorder.
const (
	OutcomeOK           = "ok"
	OutcomeEmptyTopic   = "empty_topic"
	OutcomeNotFound     = "not_found"
	OutcomeNetworkError = "network_error"
	OutcomeError        = "error"
)

// QueryRecorder observes how news queries end.
type QueryRecorder interface {
	ObserveQuery(outcome string, elapsed time.Duration)
	ObserveReply(err error)
}
