package http

import (
	"net/http"

	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// Outcome is the coarse result of an API call.
type Outcome int

// Possible outcomes.
const (
	OutcomeOK Outcome = iota
	OutcomeUnauthorized
	OutcomeNotFound
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeUnauthorized:
		return "unauthorized"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Classification pairs an outcome with the response it came from.
// Detail is only set for OutcomeFailed.
type Classification struct {
	Outcome    Outcome
	StatusCode int
	Detail     string
}

// Classify maps a response status onto an Outcome.
func Classify(resp *Response) Classification {
	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return Classification{Outcome: OutcomeOK, StatusCode: resp.StatusCode}
	case resp.StatusCode == http.StatusUnauthorized:
		return Classification{Outcome: OutcomeUnauthorized, StatusCode: resp.StatusCode}
	case resp.StatusCode == http.StatusNotFound:
		return Classification{Outcome: OutcomeNotFound, StatusCode: resp.StatusCode}
	default:
		return Classification{
			Outcome:    OutcomeFailed,
			StatusCode: resp.StatusCode,
			Detail:     string(resp.Body),
		}
	}
}

// OK reports whether the call succeeded.
func (c Classification) OK() bool {
	return c.Outcome == OutcomeOK
}

// Err converts the classification into an error. OutcomeOK yields nil.
func (c Classification) Err() error {
	switch c.Outcome {
	case OutcomeOK:
		return nil
	case OutcomeUnauthorized:
		return crm.ErrUnauthorized
	case OutcomeNotFound:
		return crm.ErrNotFound
	default:
		return &crm.FailedError{StatusCode: c.StatusCode, Detail: c.Detail}
	}
}
