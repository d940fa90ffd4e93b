package lightcurve

import (
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

// parseJSON resolves timePath and valuePath with gjson and pairs the two
// arrays element-wise. Null values are missing; null times are malformed.
func parseJSON(data []byte, timePath, valuePath string) (Curve, error) {
	if !gjson.ValidBytes(data) {
		return Curve{}, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}

	times := gjson.GetBytes(data, timePath)
	values := gjson.GetBytes(data, valuePath)
	if !times.Exists() {
		return Curve{}, fmt.Errorf("%w: time path %q", ErrPathNotFound, timePath)
	}
	if !values.Exists() {
		return Curve{}, fmt.Errorf("%w: value path %q", ErrPathNotFound, valuePath)
	}
	if !times.IsArray() || !values.IsArray() {
		return Curve{}, fmt.Errorf("%w: paths %q and %q must resolve to arrays", ErrMalformed, timePath, valuePath)
	}

	tsArray := times.Array()
	valArray := values.Array()
	if len(tsArray) != len(valArray) {
		return Curve{}, fmt.Errorf("%w: %d times, %d values", ErrLengthMismatch, len(tsArray), len(valArray))
	}

	c := Curve{
		Times:  make([]float64, len(tsArray)),
		Values: make([]float64, len(valArray)),
	}
	for i := range tsArray {
		t, ok := jsonNumber(tsArray[i])
		if !ok || math.IsNaN(t) {
			return Curve{}, fmt.Errorf("%w: time[%d] = %s", ErrMalformed, i, tsArray[i].Raw)
		}
		v, ok := jsonNumber(valArray[i])
		if !ok {
			return Curve{}, fmt.Errorf("%w: value[%d] = %s", ErrMalformed, i, valArray[i].Raw)
		}
		c.Times[i] = t
		c.Values[i] = v
		if math.IsNaN(v) {
			c.Missing++
		}
	}
	return c, nil
}

// jsonNumber accepts numbers, null (NaN) and numeric strings such as "NaN".
func jsonNumber(r gjson.Result) (float64, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Float(), true
	case gjson.Null:
		return math.NaN(), true
	case gjson.String:
		v, err := parseValue(r.Str)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}
