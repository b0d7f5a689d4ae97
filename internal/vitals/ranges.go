// Package vitals holds the reference bands for each vital sign and the
// tier classification built on top of them.
package vitals

import (
	"wisefido-monitor/internal/models"
)

// Interval inclusive [Min, Max]
type Interval struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports Min <= v <= Max
func (i Interval) Contains(v float64) bool {
	return v >= i.Min && v <= i.Max
}

// covers reports whether o lies entirely inside i
func (i Interval) covers(o Interval) bool {
	return o.Min >= i.Min && o.Max <= i.Max
}

// Range reference bands for one vital; each wider band contains the narrower one
type Range struct {
	Normal   Interval `json:"normal"`
	Warning  Interval `json:"warning"`
	Critical Interval `json:"critical"`
}

// SpO2 has no intermediate critical band: anything below the warning floor
// is critical, so Critical equals Warning.
var ranges = map[models.VitalType]Range{
	models.VitalHeartRate: {
		Normal:   Interval{60, 100},
		Warning:  Interval{50, 110},
		Critical: Interval{40, 130},
	},
	models.VitalSystolicBP: {
		Normal:   Interval{90, 120},
		Warning:  Interval{80, 140},
		Critical: Interval{70, 160},
	},
	models.VitalDiastolicBP: {
		Normal:   Interval{60, 80},
		Warning:  Interval{50, 90},
		Critical: Interval{40, 100},
	},
	models.VitalTemperature: {
		Normal:   Interval{36.5, 37.5},
		Warning:  Interval{36, 38},
		Critical: Interval{35, 39},
	},
	models.VitalRespirationRate: {
		Normal:   Interval{12, 20},
		Warning:  Interval{10, 24},
		Critical: Interval{8, 28},
	},
	models.VitalSpO2: {
		Normal:   Interval{95, 100},
		Warning:  Interval{90, 100},
		Critical: Interval{90, 100},
	},
	models.VitalEtCO2: {
		Normal:   Interval{35, 45},
		Warning:  Interval{30, 50},
		Critical: Interval{25, 55},
	},
}

// RangeFor returns the bands for t; ok is false for types outside the closed set
func RangeFor(t models.VitalType) (Range, bool) {
	r, ok := ranges[t]
	return r, ok
}

// Table copy of the full reference table
func Table() map[models.VitalType]Range {
	out := make(map[models.VitalType]Range, len(ranges))
	for k, v := range ranges {
		out[k] = v
	}
	return out
}
