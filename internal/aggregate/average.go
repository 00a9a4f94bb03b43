// Package aggregate computes rating averages.
//
// An Average is kept in tenths so that rounding to one decimal is exact:
// the mean sum/count is rounded half away from zero on the tenths digit using
// integer arithmetic only, which avoids binary float artifacts such as
// 4.45 being stored as 4.4499999.
package aggregate

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

var nullJSON = []byte("null")

// Average is the one decimal mean of a set of ratings.
// The zero value is the average of no ratings and encodes to JSON null.
type Average struct {
	tenths int64
	count  int64
}

// FromSum returns the average of count ratings adding up to sum.
// A count of zero or less yields the empty Average.
func FromSum(sum, count int64) Average {
	if count <= 0 {
		return Average{}
	}

	return Average{
		tenths: roundDiv(sum*10, count), //nolint:mnd
		count:  count,
	}
}

// Mean returns the average of values.
func Mean(values []int) Average {
	var sum int64

	for _, v := range values {
		sum += int64(v)
	}

	return FromSum(sum, int64(len(values)))
}

// Valid reports whether at least one rating contributed.
func (a Average) Valid() bool {
	return a.count > 0
}

// Count is the number of ratings the average was computed from.
func (a Average) Count() int64 {
	return a.count
}

// Float64 returns the rounded average, ok is false when there were no ratings.
func (a Average) Float64() (value float64, ok bool) {
	if !a.Valid() {
		return 0, false
	}

	return float64(a.tenths) / 10, true //nolint:mnd
}

// String formats the average with exactly one decimal, or "null".
func (a Average) String() string {
	if !a.Valid() {
		return string(nullJSON)
	}

	return string(a.appendDecimal(nil))
}

// MarshalJSON encodes the average as a one decimal number or null.
func (a Average) MarshalJSON() ([]byte, error) {
	if !a.Valid() {
		return nullJSON, nil
	}

	return a.appendDecimal(make([]byte, 0, 8)), nil //nolint:mnd
}

// UnmarshalJSON decodes a number or null. The ratings count of a decoded
// Average is unknown and reported as 1.
func (a *Average) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), nullJSON) {
		*a = Average{}
		return nil
	}

	var f json.Number
	if err := json.Unmarshal(data, &f); err != nil {
		return errors.Wrap(err, "average must be a number or null")
	}

	v, err := strconv.ParseFloat(f.String(), 64)
	if err != nil {
		return errors.Wrap(err, "average must be a number or null")
	}

	*a = Average{tenths: roundHalfAway(v * 10), count: 1} //nolint:mnd

	return nil
}

func (a Average) appendDecimal(b []byte) []byte {
	t := a.tenths
	if t < 0 {
		b = append(b, '-')
		t = -t
	}

	b = strconv.AppendInt(b, t/10, 10) //nolint:mnd
	b = append(b, '.')

	return strconv.AppendInt(b, t%10, 10) //nolint:mnd
}

// roundDiv divides num by den (den > 0) rounding half away from zero.
func roundDiv(num, den int64) int64 {
	if num >= 0 {
		return (2*num + den) / (2 * den)
	}

	return -((-2*num + den) / (2 * den))
}

func roundHalfAway(f float64) int64 {
	if f < 0 {
		return -int64(-f + 0.5) //nolint:mnd
	}

	return int64(f + 0.5) //nolint:mnd
}
