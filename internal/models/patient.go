package models

import (
	"wisefido-monitor/internal/trend"
)

// Location ward group shown in the patient list
type Location string

const (
	LocationICU   Location = "ICU"
	LocationWards Location = "Wards"
)

// History free text, immutable after creation
type History struct {
	Medical   string `json:"medical"`
	Physician string `json:"physician"`
}

// Trends one buffer per vital; blood pressure keeps both values per sample
type Trends struct {
	HeartRate       *trend.Buffer[float64]       `json:"heart_rate"`
	BP              *trend.Buffer[BloodPressure] `json:"bp"`
	Temperature     *trend.Buffer[float64]       `json:"temp"`
	RespirationRate *trend.Buffer[float64]       `json:"respirate"`
	SpO2            *trend.Buffer[float64]       `json:"spo2"`
	EtCO2           *trend.Buffer[float64]       `json:"etco2"`
}

// NewTrends allocates empty buffers with the given capacity
func NewTrends(capacity int) Trends {
	return Trends{
		HeartRate:       trend.NewBuffer[float64](capacity),
		BP:              trend.NewBuffer[BloodPressure](capacity),
		Temperature:     trend.NewBuffer[float64](capacity),
		RespirationRate: trend.NewBuffer[float64](capacity),
		SpO2:            trend.NewBuffer[float64](capacity),
		EtCO2:           trend.NewBuffer[float64](capacity),
	}
}

// Clone deep copies every buffer
func (t Trends) Clone() Trends {
	return Trends{
		HeartRate:       t.HeartRate.Clone(),
		BP:              t.BP.Clone(),
		Temperature:     t.Temperature.Clone(),
		RespirationRate: t.RespirationRate.Clone(),
		SpO2:            t.SpO2.Clone(),
		EtCO2:           t.EtCO2.Clone(),
	}
}

// Scalar returns the single-value buffer for t; BP types have no scalar buffer
func (t Trends) Scalar(v VitalType) *trend.Buffer[float64] {
	switch v {
	case VitalHeartRate:
		return t.HeartRate
	case VitalTemperature:
		return t.Temperature
	case VitalRespirationRate:
		return t.RespirationRate
	case VitalSpO2:
		return t.SpO2
	case VitalEtCO2:
		return t.EtCO2
	}
	return nil
}

// Patient monitored patient record
type Patient struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Age       int      `json:"age"`
	Condition string   `json:"condition"`
	Location  Location `json:"location"`
	Room      string   `json:"room"`
	Vitals    Vitals   `json:"vitals"`
	History   History  `json:"history"`
	Trends    Trends   `json:"trends"`
}

// Clone returns a copy that shares no mutable state with p
func (p Patient) Clone() Patient {
	c := p
	c.Trends = p.Trends.Clone()
	return c
}
