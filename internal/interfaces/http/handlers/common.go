package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maida-inc/maida/internal/shared/dateutil"
	"github.com/maida-inc/maida/internal/shared/errors"
)

// parseDates converts a list of YYYY-MM-DD strings into times at
// midnight UTC.
func parseDates(raw []string) ([]time.Time, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	dates := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		d, err := dateutil.Parse(s)
		if err != nil {
			return nil, errors.NewValidationError("invalid date format, expected YYYY-MM-DD", s)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// parseOptionalDate parses a YYYY-MM-DD string, returning nil when the
// field was omitted.
func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := dateutil.Parse(s)
	if err != nil {
		return nil, errors.NewValidationError("invalid date format, expected YYYY-MM-DD", s)
	}
	return &d, nil
}

func requireSID(c *gin.Context, param string) (string, error) {
	sid := c.Param(param)
	if sid == "" {
		return "", errors.NewValidationError(param + " is required")
	}
	return sid, nil
}
