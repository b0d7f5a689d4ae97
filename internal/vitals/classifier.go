package vitals

import (
	"math"

	"wisefido-monitor/internal/models"
)

// Tier severity of a single reading
type Tier string

const (
	TierNormal   Tier = "normal"
	TierWarning  Tier = "warning"
	TierCritical Tier = "critical"
)

func (t Tier) rank() int {
	switch t {
	case TierCritical:
		return 2
	case TierWarning:
		return 1
	}
	return 0
}

// Worse returns the higher-severity tier (critical > warning > normal)
func Worse(a, b Tier) Tier {
	if b.rank() > a.rank() {
		return b
	}
	return a
}

// Color dashboard colour token for the tier
func (t Tier) Color() string {
	switch t {
	case TierCritical:
		return "destructive"
	case TierWarning:
		return "warning"
	}
	return "success"
}

// Display card caption for the tier
func (t Tier) Display() string {
	switch t {
	case TierCritical:
		return "Critical"
	case TierWarning:
		return "Warning"
	}
	return "Stable"
}

// Classify maps a reading to its tier by band membership, not by distance:
// a value just under the normal floor that is still inside the warning band is
// a warning. Types outside the closed set have no bands and read as normal.
func Classify(value float64, t models.VitalType) Tier {
	r, ok := ranges[t]
	if !ok {
		return TierNormal
	}
	if r.Normal.Contains(value) {
		return TierNormal
	}
	if r.Warning.Contains(value) {
		return TierWarning
	}
	return TierCritical
}

// ClassifyBP worse of the independently classified systolic and diastolic tiers
func ClassifyBP(bp models.BloodPressure) Tier {
	return Worse(
		Classify(bp.Systolic, models.VitalSystolicBP),
		Classify(bp.Diastolic, models.VitalDiastolicBP),
	)
}

// Breach result of checking a reading against the alarm bands
type Breach struct {
	OutsideWarning  bool
	OutsideCritical bool
}

// CheckBands reports whether value leaves the warning band and, if so, the critical band
func CheckBands(value float64, t models.VitalType) Breach {
	r, ok := ranges[t]
	if !ok {
		return Breach{}
	}
	b := Breach{OutsideWarning: !r.Warning.Contains(value)}
	if b.OutsideWarning {
		b.OutsideCritical = !r.Critical.Contains(value)
	}
	return b
}

// ListStatus coarse indicator for the patient list, driven by SpO2, temperature and heart rate only
func ListStatus(v models.Vitals) Tier {
	if v.SpO2 < 90 || v.Temperature > 38.5 || v.HeartRate > 110 {
		return TierCritical
	}
	if v.SpO2 < 95 || v.Temperature > 38 || v.HeartRate > 100 {
		return TierWarning
	}
	return TierNormal
}

// Precision display decimals: temperature keeps one, everything else is whole
func Precision(t models.VitalType) int {
	if t == models.VitalTemperature {
		return 1
	}
	return 0
}

// Round rounds value to the display precision of t
func Round(t models.VitalType, value float64) float64 {
	return RoundTo(value, Precision(t))
}

// RoundTo rounds half away from zero to the given decimals
func RoundTo(value float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(value*p) / p
}
