package models

import (
	"time"
)

// Severity alarm level
type Severity string

const (
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

// Alarm standing notification for an out-of-range vital.
// Patient fields are copied at creation time, not a live link.
type Alarm struct {
	ID          string    `json:"id"`
	PatientID   int       `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	Room        string    `json:"room"`
	Vital       VitalType `json:"vital"`
	Label       string    `json:"label"`
	Severity    Severity  `json:"type"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
}
