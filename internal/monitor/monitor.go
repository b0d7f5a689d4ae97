// Package monitor is the simulation context: it owns the patient store, the
// alarm registry and the simulator, and serialises ticks against commands.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wisefido-monitor/internal/alarm"
	"wisefido-monitor/internal/models"
	"wisefido-monitor/internal/patient"
	"wisefido-monitor/internal/simulator"

	"go.uber.org/zap"
)

// TickSink receives the state snapshot after every tick
type TickSink interface {
	OnTick(ctx context.Context, snapshot models.Snapshot) error
}

// AlarmSink receives alarm lifecycle events
type AlarmSink interface {
	OnAlarm(ctx context.Context, event models.AlarmEvent) error
}

// Monitor simulation controller. Each tick and each command is one critical
// section; sinks run afterwards on snapshots, one change at a time, in the
// order the changes were applied.
type Monitor struct {
	mu       sync.RWMutex
	sim      *simulator.Simulator
	store    *patient.Store
	registry *alarm.Registry
	logger   *zap.Logger
	now      func() time.Time
	seq      uint64
	dispatch *dispatchQueue

	tickSinks  []TickSink
	alarmSinks []AlarmSink
}

// New creates a monitor over an already seeded store
func New(sim *simulator.Simulator, store *patient.Store, registry *alarm.Registry, logger *zap.Logger) *Monitor {
	return &Monitor{
		sim:      sim,
		store:    store,
		registry: registry,
		logger:   logger,
		now:      time.Now,
		dispatch: newDispatchQueue(),
	}
}

// AddTickSink registers a tick sink; call before Run
func (m *Monitor) AddTickSink(s TickSink) {
	m.tickSinks = append(m.tickSinks, s)
}

// AddAlarmSink registers an alarm sink; call before Run
func (m *Monitor) AddAlarmSink(s AlarmSink) {
	m.alarmSinks = append(m.alarmSinks, s)
}

// Run ticks every interval until ctx is cancelled. No tick runs after Run returns.
func (m *Monitor) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("invalid tick interval: %s", interval)
	}

	m.logger.Info("Simulation started",
		zap.Duration("interval", interval),
		zap.Int("patients", m.store.Len()),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Simulation stopped", zap.Uint64("ticks", m.Ticks()))
			return nil
		case <-ticker.C:
			m.Tick(ctx)
		}
	}
}

// Tick advances the simulation once and returns the alarms it raised
func (m *Monitor) Tick(ctx context.Context) []models.Alarm {
	m.mu.Lock()
	raised := m.sim.Tick(m.store, m.registry)
	m.seq++
	snapshot := models.Snapshot{
		Seq:      m.seq,
		At:       m.now(),
		Patients: m.store.List(),
		Alarms:   m.registry.List(),
	}
	turn := m.dispatch.take()
	m.mu.Unlock()

	m.dispatch.wait(turn)
	defer m.dispatch.done()

	m.logger.Debug("Tick completed",
		zap.Uint64("seq", snapshot.Seq),
		zap.Int("new_alarms", len(raised)),
		zap.Int("active_alarms", len(snapshot.Alarms)),
	)

	for _, a := range raised {
		m.logger.Info("Alarm raised",
			zap.String("alarm_id", a.ID),
			zap.Int("patient_id", a.PatientID),
			zap.String("severity", string(a.Severity)),
			zap.String("message", a.Message),
		)
		m.notifyAlarm(ctx, models.AlarmEvent{Kind: models.AlarmEventRaised, Alarm: a, At: a.Timestamp})
	}

	for _, s := range m.tickSinks {
		if err := s.OnTick(ctx, snapshot); err != nil {
			m.logger.Error("Failed to publish tick",
				zap.Uint64("seq", snapshot.Seq),
				zap.Error(err),
			)
		}
	}

	return raised
}

// Ticks number of completed ticks
func (m *Monitor) Ticks() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.seq
}

// AcknowledgeAlarm removes the alarm with the given id; unknown ids are a no-op
func (m *Monitor) AcknowledgeAlarm(ctx context.Context, id string) (models.Alarm, bool) {
	m.mu.Lock()
	a, ok := m.registry.Acknowledge(id)
	if !ok {
		m.mu.Unlock()
		m.logger.Debug("Acknowledge ignored, alarm not active", zap.String("alarm_id", id))
		return models.Alarm{}, false
	}
	at := m.now()
	turn := m.dispatch.take()
	m.mu.Unlock()

	m.dispatch.wait(turn)
	defer m.dispatch.done()

	m.logger.Info("Alarm acknowledged",
		zap.String("alarm_id", a.ID),
		zap.Int("patient_id", a.PatientID),
	)
	m.notifyAlarm(ctx, models.AlarmEvent{Kind: models.AlarmEventAcknowledged, Alarm: a, At: at})
	return a, true
}

func (m *Monitor) notifyAlarm(ctx context.Context, event models.AlarmEvent) {
	for _, s := range m.alarmSinks {
		if err := s.OnAlarm(ctx, event); err != nil {
			m.logger.Error("Failed to publish alarm event",
				zap.String("kind", string(event.Kind)),
				zap.String("alarm_id", event.Alarm.ID),
				zap.Error(err),
			)
		}
	}
}

// Patients snapshot of every patient
func (m *Monitor) Patients() []models.Patient {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.List()
}

// Patient snapshot of one patient
func (m *Monitor) Patient(id int) (models.Patient, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Get(id)
}

// SelectPatient changes the selected patient
func (m *Monitor) SelectPatient(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Select(id)
}

// SelectedPatient snapshot of the selected patient
func (m *Monitor) SelectedPatient() (models.Patient, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Selected()
}

// SearchPatients patient list filtered by name or room, grouped by location
func (m *Monitor) SearchPatients(term string) patient.Groups {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Search(term)
}

// Alarms active alarms in insertion order
func (m *Monitor) Alarms() []models.Alarm {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.registry.List()
}

// AlarmCount number of active alarms
func (m *Monitor) AlarmCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.registry.Count()
}

// View detail view of one patient
func (m *Monitor) View(id int) (PatientView, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, err := m.store.Get(id)
	if err != nil {
		return PatientView{}, err
	}
	return BuildView(p, m.registry.ForPatient(p.ID)), nil
}

// SelectedView detail view of the selected patient
func (m *Monitor) SelectedView() (PatientView, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.store.Selected()
	if !ok {
		return PatientView{}, patient.ErrPatientNotFound
	}
	return BuildView(p, m.registry.ForPatient(p.ID)), nil
}
