package gridplot

import (
	"math"
	"strconv"
	"time"
)

// A Formatter turns a value into a label.
type Formatter func(v any) string

// GeneralFormatter formats numbers with at most precision significant
// decimals and drops trailing zeros. Non-numbers use ToString.
func GeneralFormatter(precision int) Formatter {
	return func(v any) string {
		f, ok := ToFloat(v)
		if !ok {
			return ToString(v)
		}
		if f == 0 {
			return "0"
		}
		r := math.Pow(10, float64(precision))
		f = math.Round(f*r) / r
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}

// FixedFormatter formats numbers with exactly precision decimals.
func FixedFormatter(precision int) Formatter {
	return func(v any) string {
		f, ok := ToFloat(v)
		if !ok {
			return ToString(v)
		}
		return strconv.FormatFloat(f, 'f', precision, 64)
	}
}

// TimeFormatter formats times (or seconds since the epoch) with layout.
func TimeFormatter(layout string) Formatter {
	return func(v any) string {
		switch t := v.(type) {
		case time.Time:
			return t.UTC().Format(layout)
		}
		f, ok := ToFloat(v)
		if !ok {
			return ToString(v)
		}
		sec, frac := math.Modf(f)
		return time.Unix(int64(sec), int64(frac*1e9)).UTC().Format(layout)
	}
}

// IdentityFormatter returns ToString(v).
func IdentityFormatter(v any) string { return ToString(v) }
