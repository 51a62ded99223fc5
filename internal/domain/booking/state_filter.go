package booking

import (
	"strings"

	"github.com/shareloop/service-sharing/internal/domain"
)

// StateFilter selects which bookings a listing returns, evaluated against
// "now" at call time. ALL/CURRENT/PAST/FUTURE partition bookings by their
// interval; WAITING/REJECTED filter by status and are independent of time.
type StateFilter string

const (
	FilterAll      StateFilter = "ALL"
	FilterCurrent  StateFilter = "CURRENT"
	FilterPast     StateFilter = "PAST"
	FilterFuture   StateFilter = "FUTURE"
	FilterWaiting  StateFilter = "WAITING"
	FilterRejected StateFilter = "REJECTED"
)

// ParseStateFilter matches a state token case-insensitively. An unrecognized
// token fails with the original input echoed in the message.
func ParseStateFilter(state string) (StateFilter, error) {
	switch StateFilter(strings.ToUpper(state)) {
	case FilterAll:
		return FilterAll, nil
	case FilterCurrent:
		return FilterCurrent, nil
	case FilterPast:
		return FilterPast, nil
	case FilterFuture:
		return FilterFuture, nil
	case FilterWaiting:
		return FilterWaiting, nil
	case FilterRejected:
		return FilterRejected, nil
	default:
		return "", domain.NewUnknownStateError(state)
	}
}
