// Package alarm keeps the active alarm list and the rule that raises new alarms.
package alarm

import (
	"sync"

	"wisefido-monitor/internal/models"
)

// Registry active alarms in insertion order. An alarm stays until acknowledged;
// nothing clears or escalates it automatically.
type Registry struct {
	mu     sync.RWMutex
	alarms []models.Alarm
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Insert appends a new alarm
func (r *Registry) Insert(a models.Alarm) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alarms = append(r.alarms, a)
}

// Acknowledge removes the alarm with the given id.
// Unknown ids are a silent no-op, so acknowledging twice equals acknowledging once.
func (r *Registry) Acknowledge(id string) (models.Alarm, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.alarms {
		if a.ID == id {
			r.alarms = append(r.alarms[:i], r.alarms[i+1:]...)
			return a, true
		}
	}
	return models.Alarm{}, false
}

// Active returns the standing alarm for (patientID, label), if any
func (r *Registry) Active(patientID int, label string) (models.Alarm, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.alarms {
		if a.PatientID == patientID && a.Label == label {
			return a, true
		}
	}
	return models.Alarm{}, false
}

// List copy of the active alarms, oldest first
func (r *Registry) List() []models.Alarm {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Alarm, len(r.alarms))
	copy(out, r.alarms)
	return out
}

// ForPatient active alarms of one patient, oldest first
func (r *Registry) ForPatient(patientID int) []models.Alarm {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Alarm
	for _, a := range r.alarms {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out
}

// Count number of active alarms
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.alarms)
}
