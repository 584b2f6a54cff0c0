package dto

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// FlexTime decodes the date shapes clients actually send: an RFC3339
// or date-only string, a unix-seconds number, a {seconds,nanos}
// timestamp wrapper, or nothing at all. Decoding is total; a shape
// that cannot be understood leaves the value unset and the caller
// applies the fallback policy via OrNow.
type FlexTime struct {
	t     time.Time
	valid bool
}

type timestampWrapper struct {
	Seconds int64 `json:"seconds"`
	Nanos   int64 `json:"nanos"`
}

var flexTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func NewFlexTime(t time.Time) FlexTime {
	return FlexTime{t: t, valid: true}
}

func (ft *FlexTime) UnmarshalJSON(data []byte) error {
	*ft = FlexTime{}

	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return nil
	}

	switch s[0] {
	case '"':
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
		for _, layout := range flexTimeLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				*ft = FlexTime{t: t, valid: true}
				return nil
			}
		}
	case '{':
		var w timestampWrapper
		if err := json.Unmarshal(data, &w); err == nil && (w.Seconds != 0 || w.Nanos != 0) {
			*ft = FlexTime{t: time.Unix(w.Seconds, w.Nanos), valid: true}
		}
	default:
		if secs, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(secs) && !math.IsInf(secs, 0) {
			sec, frac := math.Modf(secs)
			*ft = FlexTime{t: time.Unix(int64(sec), int64(frac*1e9)), valid: true}
		}
	}

	return nil
}

func (ft FlexTime) MarshalJSON() ([]byte, error) {
	if !ft.valid {
		return []byte("null"), nil
	}
	return json.Marshal(ft.t.Format(time.RFC3339))
}

// Valid reports whether a usable date was decoded.
func (ft FlexTime) Valid() bool {
	return ft.valid
}

// Or returns the decoded time, or the fallback when the input was
// absent or unparsable.
func (ft FlexTime) Or(fallback time.Time) time.Time {
	if ft.valid {
		return ft.t
	}
	return fallback
}

// OrNow is the single place the fallback-to-now policy lives. An
// absent or unparsable transaction date silently becomes "now", which
// means such a record reports as today rather than failing the whole
// batch.
func (ft FlexTime) OrNow() time.Time {
	return ft.Or(time.Now())
}
