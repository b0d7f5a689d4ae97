// Package simulator advances patient vitals with a clamped random walk and
// feeds each new reading to the trend buffers and the alarm check.
package simulator

import (
	"time"

	"wisefido-monitor/internal/alarm"
	"wisefido-monitor/internal/models"
	"wisefido-monitor/internal/patient"
	"wisefido-monitor/internal/trend"
	"wisefido-monitor/internal/vitals"
)

const (
	// SignificantThreshold a draw above this makes the tick a significant change (p = 0.3)
	SignificantThreshold = 0.7
	SignificantMagnitude = 5.0
	BaseMagnitude        = 2.0
)

// walk per-vital perturbation: amplitude is scale*magnitude when scale > 0, else fixed
type walk struct {
	scale float64
	fixed float64
	min   float64
	max   float64
}

func (w walk) amplitude(magnitude float64) float64 {
	if w.scale > 0 {
		return w.scale * magnitude
	}
	return w.fixed
}

var walks = map[models.VitalType]walk{
	models.VitalHeartRate:       {scale: 1, min: 40, max: 150},
	models.VitalSystolicBP:      {scale: 1, min: 70, max: 180},
	models.VitalDiastolicBP:     {scale: 0.8, min: 40, max: 110},
	models.VitalTemperature:     {fixed: 0.3, min: 35, max: 40},
	models.VitalRespirationRate: {fixed: 2, min: 8, max: 35},
	models.VitalSpO2:            {fixed: 3, min: 85, max: 100},
	models.VitalEtCO2:           {fixed: 2, min: 25, max: 55},
}

// Bounds physiological clamp for t
func Bounds(t models.VitalType) (lo, hi float64, ok bool) {
	w, ok := walks[t]
	return w.min, w.max, ok
}

// Step applies delta to current, clamps to the physiological bounds of t and
// rounds to display precision. Unknown types are returned unchanged.
func Step(t models.VitalType, current, delta float64) float64 {
	w, ok := walks[t]
	if !ok {
		return current
	}
	v := current + delta
	if v < w.min {
		v = w.min
	}
	if v > w.max {
		v = w.max
	}
	return vitals.Round(t, v)
}

// Simulator random-walk engine. Not safe for concurrent use.
type Simulator struct {
	src      Source
	now      func() time.Time
	capacity int
}

// New creates a simulator; now == nil uses time.Now, capacity <= 0 uses trend.DefaultCapacity
func New(src Source, now func() time.Time, capacity int) *Simulator {
	if now == nil {
		now = time.Now
	}
	if capacity <= 0 {
		capacity = trend.DefaultCapacity
	}
	return &Simulator{src: src, now: now, capacity: capacity}
}

// Advance moves every vital of p one step and appends the new readings to its trends.
// Draw order: one draw for the significance roll, then one per vital in AllVitalTypes order.
func (s *Simulator) Advance(p *models.Patient) {
	magnitude := BaseMagnitude
	if s.src.Float64() > SignificantThreshold {
		magnitude = SignificantMagnitude
	}

	next := p.Vitals
	for _, t := range models.AllVitalTypes {
		delta := (s.src.Float64() - 0.5) * walks[t].amplitude(magnitude)
		next.Set(t, Step(t, p.Vitals.Get(t), delta))
	}
	p.Vitals = next

	s.ensureTrends(p)
	p.Trends.HeartRate.Append(next.HeartRate)
	p.Trends.BP.Append(next.BP)
	p.Trends.Temperature.Append(next.Temperature)
	p.Trends.RespirationRate.Append(next.RespirationRate)
	p.Trends.SpO2.Append(next.SpO2)
	p.Trends.EtCO2.Append(next.EtCO2)
}

// Tick advances every patient in the store, then checks each patient's new
// readings against the alarm bands. Returns the alarms raised by this tick.
func (s *Simulator) Tick(store *patient.Store, reg *alarm.Registry) []models.Alarm {
	now := s.now()
	var raised []models.Alarm

	store.Update(func(p *models.Patient) {
		s.Advance(p)
		raised = append(raised, alarm.CheckAll(reg, *p, now)...)
	})
	return raised
}

// NewPatients builds the initial records from seeds, each with a pre-filled trend history
func (s *Simulator) NewPatients(seeds []patient.Seed) []models.Patient {
	out := make([]models.Patient, 0, len(seeds))
	for _, seed := range seeds {
		p := seed.Patient
		p.Trends = models.NewTrends(s.capacity)
		s.SeedTrends(&p, seed.Variance)
		out = append(out, p)
	}
	return out
}

// seedOrder draw order of the trend history; BP stands for both pressures
var seedOrder = []models.VitalType{
	models.VitalHeartRate,
	models.VitalSystolicBP,
	models.VitalTemperature,
	models.VitalSpO2,
	models.VitalRespirationRate,
	models.VitalEtCO2,
}

// SeedTrends fills every buffer of p with a random walk starting at the current vitals.
// Scalar series keep one decimal, blood pressure is whole.
func (s *Simulator) SeedTrends(p *models.Patient, v patient.TrendVariance) {
	s.ensureTrends(p)

	for _, t := range seedOrder {
		if t == models.VitalSystolicBP {
			s.seedBP(p.Trends.BP, p.Vitals.BP)
			continue
		}
		s.seedScalar(p.Trends.Scalar(t), p.Vitals.Get(t), v.Get(t))
	}
}

func (s *Simulator) seedScalar(b *trend.Buffer[float64], base, variance float64) {
	value := base
	for i := 0; i < s.capacity; i++ {
		value += (s.src.Float64() - 0.5) * variance
		b.Append(vitals.RoundTo(value, 1))
	}
}

func (s *Simulator) seedBP(b *trend.Buffer[models.BloodPressure], base models.BloodPressure) {
	sys, dia := base.Systolic, base.Diastolic
	for i := 0; i < s.capacity; i++ {
		sys += (s.src.Float64() - 0.5) * patient.BPSystolicVariance
		dia += (s.src.Float64() - 0.5) * patient.BPDiastolicVariance
		b.Append(models.BloodPressure{
			Systolic:  vitals.RoundTo(sys, 0),
			Diastolic: vitals.RoundTo(dia, 0),
		})
	}
}

func (s *Simulator) ensureTrends(p *models.Patient) {
	if p.Trends.HeartRate == nil {
		p.Trends.HeartRate = trend.NewBuffer[float64](s.capacity)
	}
	if p.Trends.BP == nil {
		p.Trends.BP = trend.NewBuffer[models.BloodPressure](s.capacity)
	}
	if p.Trends.Temperature == nil {
		p.Trends.Temperature = trend.NewBuffer[float64](s.capacity)
	}
	if p.Trends.RespirationRate == nil {
		p.Trends.RespirationRate = trend.NewBuffer[float64](s.capacity)
	}
	if p.Trends.SpO2 == nil {
		p.Trends.SpO2 = trend.NewBuffer[float64](s.capacity)
	}
	if p.Trends.EtCO2 == nil {
		p.Trends.EtCO2 = trend.NewBuffer[float64](s.capacity)
	}
}
