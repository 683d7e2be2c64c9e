package outbox

import (
	"strings"

	"orders/internal/pkg/errs"
)

// Status represents the delivery state of an outbox record.
//
// Pending records are picked up by the relay. Published and DeadLettered are
// terminal: published records are kept for audit, dead-lettered ones for
// manual inspection and replay.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending means the record has not been delivered yet and is
	// eligible for publishing once its next attempt time has passed.
	StatusPending

	// StatusPublished means the broker acknowledged the record. Terminal.
	StatusPublished

	// StatusDeadLettered means delivery failed MaxAttempts times. Terminal;
	// requires operator intervention.
	StatusDeadLettered
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:      "Unknown",
		StatusPending:      "Pending",
		StatusPublished:    "Published",
		StatusDeadLettered: "DeadLettered",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:      "Pending",
		StatusPublished:    "Published",
		StatusDeadLettered: "DeadLettered",
	}
}

// StatusFromString parses a status name, case-insensitively.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidError("status")
}

// Validate checks if the Status value is one of the defined delivery states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("status")
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
