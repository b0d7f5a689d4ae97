package models

import (
	"time"
)

// AlarmEventKind lifecycle step published for an alarm
type AlarmEventKind string

const (
	AlarmEventRaised       AlarmEventKind = "alarm_raised"
	AlarmEventAcknowledged AlarmEventKind = "alarm_acknowledged"
)

// AlarmEvent one alarm lifecycle transition
type AlarmEvent struct {
	Kind  AlarmEventKind `json:"kind"`
	Alarm Alarm          `json:"alarm"`
	At    time.Time      `json:"at"`
}

// Snapshot immutable copy of the simulation state after a tick
type Snapshot struct {
	Seq      uint64    `json:"seq"`
	At       time.Time `json:"at"`
	Patients []Patient `json:"patients"`
	Alarms   []Alarm   `json:"alarms"`
}
