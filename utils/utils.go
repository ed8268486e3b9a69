package utils

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
)

// ContainsString returns true iff the provided string slice hay contains
// string needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// ParseServerTime parses a timestamp as the backend emits it. The backend
// does not commit to one format (RFC3339 with and without zone have both
// been observed), so parse leniently.
func ParseServerTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "fail to parse server time: "+raw)
	}
	return t, nil
}

// RelativeLabel renders t as a relative display string the way the profile
// history shows dates. A zero time renders as "Recently".
func RelativeLabel(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "Recently"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
}
