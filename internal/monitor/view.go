package monitor

import (
	"fmt"
	"strconv"

	"wisefido-monitor/internal/models"
	"wisefido-monitor/internal/vitals"
)

// SparklineLength samples shown on each vital card
const SparklineLength = 10

// VitalCard one gauge tile of the detail view
type VitalCard struct {
	Key       string      `json:"key"`
	Label     string      `json:"label"`
	Value     string      `json:"value"`
	Unit      string      `json:"unit"`
	Status    vitals.Tier `json:"status"`
	Caption   string      `json:"caption"`
	Color     string      `json:"color"`
	Min       float64     `json:"min"`
	Max       float64     `json:"max"`
	Percent   float64     `json:"percent"`
	Sparkline []float64   `json:"sparkline"`
}

// PrimaryTrendRow blood pressure, SpO2 and temperature at one trend position
type PrimaryTrendRow struct {
	Name        string  `json:"name"`
	BPSystolic  float64 `json:"bp_sys"`
	BPDiastolic float64 `json:"bp_dia"`
	SpO2        float64 `json:"spO2"`
	Temperature float64 `json:"temp"`
}

// SecondaryTrendRow heart rate, respiration and EtCO2 at one trend position
type SecondaryTrendRow struct {
	Name            string  `json:"name"`
	HeartRate       float64 `json:"heartRate"`
	RespirationRate float64 `json:"respirate"`
	EtCO2           float64 `json:"etco2"`
}

// PatientView detail panel of one patient
type PatientView struct {
	ID        int                 `json:"id"`
	Name      string              `json:"name"`
	Age       int                 `json:"age"`
	Condition string              `json:"condition"`
	Location  models.Location     `json:"location"`
	Room      string              `json:"room"`
	History   models.History      `json:"history"`
	Vitals    models.Vitals       `json:"vitals"`
	Cards     []VitalCard         `json:"cards"`
	Alarms    []models.Alarm      `json:"alarms"`
	Primary   []PrimaryTrendRow   `json:"primary_trends"`
	Secondary []SecondaryTrendRow `json:"secondary_trends"`
}

// BuildView renders the detail view of p with its active alarms
func BuildView(p models.Patient, alarms []models.Alarm) PatientView {
	if alarms == nil {
		alarms = []models.Alarm{}
	}
	primary, secondary := CombinedTrends(p.Trends)
	return PatientView{
		ID:        p.ID,
		Name:      p.Name,
		Age:       p.Age,
		Condition: p.Condition,
		Location:  p.Location,
		Room:      p.Room,
		History:   p.History,
		Vitals:    p.Vitals,
		Cards:     Cards(p),
		Alarms:    alarms,
		Primary:   primary,
		Secondary: secondary,
	}
}

// Cards the six gauge tiles: pulse, BP, temperature, respiration, SpO2, EtCO2
func Cards(p models.Patient) []VitalCard {
	v := p.Vitals
	t := p.Trends

	bpSpark := make([]float64, 0, SparklineLength)
	for _, bp := range t.BP.Tail(SparklineLength) {
		bpSpark = append(bpSpark, bp.Systolic)
	}

	return []VitalCard{
		newCard("pulse", "PULSE", formatWhole(v.HeartRate), "BPM",
			vitals.Classify(v.HeartRate, models.VitalHeartRate), v.HeartRate, 40, 140, t.HeartRate.Tail(SparklineLength)),
		newCard("bp", "BP", fmt.Sprintf("%s/%s", formatWhole(v.BP.Systolic), formatWhole(v.BP.Diastolic)), "mmHg",
			vitals.ClassifyBP(v.BP), v.BP.Systolic, 60, 180, bpSpark),
		newCard("temp", "TEMP", strconv.FormatFloat(v.Temperature, 'f', 1, 64), "°C",
			vitals.Classify(v.Temperature, models.VitalTemperature), v.Temperature, 35, 40, t.Temperature.Tail(SparklineLength)),
		newCard("respiration", "RESPIRATION", formatWhole(v.RespirationRate), "rpm",
			vitals.Classify(v.RespirationRate, models.VitalRespirationRate), v.RespirationRate, 8, 30, t.RespirationRate.Tail(SparklineLength)),
		newCard("spo2", "SpO₂", formatWhole(v.SpO2)+"%", "%",
			vitals.Classify(v.SpO2, models.VitalSpO2), v.SpO2, 80, 100, t.SpO2.Tail(SparklineLength)),
		newCard("etco2", "ETCO₂", formatWhole(v.EtCO2), "mmHg",
			vitals.Classify(v.EtCO2, models.VitalEtCO2), v.EtCO2, 25, 55, t.EtCO2.Tail(SparklineLength)),
	}
}

func newCard(key, label, value, unit string, status vitals.Tier, reading, lo, hi float64, spark []float64) VitalCard {
	if spark == nil {
		spark = []float64{}
	}
	return VitalCard{
		Key:       key,
		Label:     label,
		Value:     value,
		Unit:      unit,
		Status:    status,
		Caption:   status.Display(),
		Color:     status.Color(),
		Min:       lo,
		Max:       hi,
		Percent:   GaugePercent(reading, lo, hi),
		Sparkline: spark,
	}
}

// GaugePercent position of value between lo and hi, clamped to [0, 100]
func GaugePercent(value, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	pct := (value - lo) / (hi - lo) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func formatWhole(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

// CombinedTrends chart rows indexed over the heart-rate buffer; rows are named
// index*4 and a missing entry in any other buffer reads as 0.
func CombinedTrends(t models.Trends) ([]PrimaryTrendRow, []SecondaryTrendRow) {
	n := t.HeartRate.Len()
	primary := make([]PrimaryTrendRow, 0, n)
	secondary := make([]SecondaryTrendRow, 0, n)

	for i := 0; i < n; i++ {
		name := strconv.Itoa(i * 4)
		bp, _ := t.BP.At(i)
		spo2, _ := t.SpO2.At(i)
		temp, _ := t.Temperature.At(i)
		hr, _ := t.HeartRate.At(i)
		rr, _ := t.RespirationRate.At(i)
		etco2, _ := t.EtCO2.At(i)

		primary = append(primary, PrimaryTrendRow{
			Name:        name,
			BPSystolic:  bp.Systolic,
			BPDiastolic: bp.Diastolic,
			SpO2:        spo2,
			Temperature: temp,
		})
		secondary = append(secondary, SecondaryTrendRow{
			Name:            name,
			HeartRate:       hr,
			RespirationRate: rr,
			EtCO2:           etco2,
		})
	}
	return primary, secondary
}
