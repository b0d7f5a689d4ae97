package alarm

import (
	"fmt"
	"math"
	"time"

	"wisefido-monitor/internal/models"
	"wisefido-monitor/internal/vitals"
)

// Check evaluates one reading of patient p and raises an alarm when it leaves
// the warning band and no alarm for (patient, label) is already standing.
// A standing alarm is never upgraded or cleared here. Returns the new alarm or nil.
func Check(reg *Registry, p models.Patient, t models.VitalType, value float64, now time.Time) *models.Alarm {
	breach := vitals.CheckBands(value, t)
	if !breach.OutsideWarning {
		return nil
	}

	label := t.Label()
	if _, exists := reg.Active(p.ID, label); exists {
		return nil
	}

	severity := models.SeverityWarning
	if breach.OutsideCritical {
		severity = models.SeverityCritical
	}

	a := models.Alarm{
		ID:          AlarmID(p.ID, label, now),
		PatientID:   p.ID,
		PatientName: p.Name,
		Room:        p.Room,
		Vital:       t,
		Label:       label,
		Severity:    severity,
		Message:     Message(label, severity, value),
		Timestamp:   now,
	}
	reg.Insert(a)
	return &a
}

// CheckAll runs Check over every vital of p in the fixed evaluation order
func CheckAll(reg *Registry, p models.Patient, now time.Time) []models.Alarm {
	var raised []models.Alarm
	for _, t := range models.AllVitalTypes {
		if a := Check(reg, p, t, p.Vitals.Get(t), now); a != nil {
			raised = append(raised, *a)
		}
	}
	return raised
}

// AlarmID "<patientId>-<label>-<unixMillis>"
func AlarmID(patientID int, label string, now time.Time) string {
	return fmt.Sprintf("%d-%s-%d", patientID, label, now.UnixMilli())
}

// Message "<label> CRITICAL - <label>: <v>" or "<label> Trend - <label>: <v>"
func Message(label string, severity models.Severity, value float64) string {
	kind := "Trend"
	if severity == models.SeverityCritical {
		kind = "CRITICAL"
	}
	return fmt.Sprintf("%s %s - %s: %d", label, kind, label, int64(math.Round(value)))
}
