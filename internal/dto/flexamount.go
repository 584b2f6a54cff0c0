package dto

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexAmount decodes an amount sent either as a JSON number or as a
// numeric string. Anything unparsable decodes to NaN so that model
// validation (which requires a positive finite amount) rejects it,
// while aggregate computations treat it as a zero contribution.
type FlexAmount float64

func (fa *FlexAmount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*fa = FlexAmount(math.NaN())
		return nil
	}

	if s[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			*fa = FlexAmount(math.NaN())
			return nil
		}
		s = strings.TrimSpace(raw)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*fa = FlexAmount(math.NaN())
		return nil
	}
	*fa = FlexAmount(v)
	return nil
}

func (fa FlexAmount) MarshalJSON() ([]byte, error) {
	v := float64(fa)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return json.Marshal(v)
}

func (fa FlexAmount) Float64() float64 {
	return float64(fa)
}
