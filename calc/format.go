package calc

import (
	"encoding/json"
	"math"
	"strconv"
)

// FormatValue formats v with the smallest number of digits needed to
// represent it exactly when prec is negative, or with prec significant
// digits otherwise.
func FormatValue(v float64, prec int) string {
	return strconv.FormatFloat(v, 'g', prec, 64)
}

// MarshalJSON implements json.Marshaler. JSON has no representation for
// NaN or the infinities, so those values are encoded as the strings
// "NaN", "+Inf" and "-Inf".
func (r Result) MarshalJSON() ([]byte, error) {
	type result Result

	if !math.IsNaN(r.Value) && !math.IsInf(r.Value, 0) {
		return json.Marshal(result(r))
	}

	return json.Marshal(struct {
		result

		Value string `json:"value"`
	}{result(r), FormatValue(r.Value, -1)})
}
