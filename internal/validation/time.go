package validation

import (
	"time"

	"github.com/stridehq/stride/internal/constants"
)

// Local parse helpers. dateutil depends on this package for its error type,
// so the checks here go straight to the stdlib parser.

func parseDate(s string) (time.Time, error) {
	return time.Parse(constants.DateFormat, s)
}

func parseClock(s string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, s)
}
