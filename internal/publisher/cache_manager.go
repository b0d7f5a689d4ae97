// Package publisher pushes simulation output to Redis and MQTT for
// out-of-process dashboards.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wisefido-monitor/internal/models"
	"wisefido-monitor/internal/vitals"

	"go.uber.org/zap"
)

// PatientRealtime cached view of one patient after a tick
type PatientRealtime struct {
	PatientID int             `json:"patient_id"`
	Name      string          `json:"name"`
	Room      string          `json:"room"`
	Location  models.Location `json:"location"`
	Vitals    models.Vitals   `json:"vitals"`
	Status    vitals.Tier     `json:"status"`
	Seq       uint64          `json:"seq"`
	UpdatedAt int64           `json:"updated_at"`
}

// CacheManager writes per-patient realtime and alarm caches after each tick
type CacheManager struct {
	kv     KVStore
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewCacheManager keys are "<prefix><patientId>:realtime" and "<prefix><patientId>:alarms"
func NewCacheManager(kv KVStore, prefix string, ttl time.Duration, logger *zap.Logger) *CacheManager {
	return &CacheManager{
		kv:     kv,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CacheManager) realtimeKey(patientID int) string {
	return fmt.Sprintf("%s%d:realtime", c.prefix, patientID)
}

func (c *CacheManager) alarmKey(patientID int) string {
	return fmt.Sprintf("%s%d:alarms", c.prefix, patientID)
}

// OnTick caches every patient of the snapshot. A failing patient does not stop
// the others; the joined error is returned.
func (c *CacheManager) OnTick(ctx context.Context, snapshot models.Snapshot) error {
	byPatient := make(map[int][]models.Alarm)
	for _, a := range snapshot.Alarms {
		byPatient[a.PatientID] = append(byPatient[a.PatientID], a)
	}

	var errs []error
	for _, p := range snapshot.Patients {
		rt := PatientRealtime{
			PatientID: p.ID,
			Name:      p.Name,
			Room:      p.Room,
			Location:  p.Location,
			Vitals:    p.Vitals,
			Status:    vitals.ListStatus(p.Vitals),
			Seq:       snapshot.Seq,
			UpdatedAt: snapshot.At.Unix(),
		}
		if err := c.UpdateRealtime(ctx, rt); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := c.UpdateAlarms(ctx, p.ID, byPatient[p.ID]); err != nil {
			errs = append(errs, err)
		}
	}

	c.logger.Debug("Realtime cache updated",
		zap.Uint64("seq", snapshot.Seq),
		zap.Int("patients", len(snapshot.Patients)),
		zap.Int("errors", len(errs)),
	)
	return errors.Join(errs...)
}

// UpdateRealtime writes one realtime entry
func (c *CacheManager) UpdateRealtime(ctx context.Context, rt PatientRealtime) error {
	data, err := json.Marshal(rt)
	if err != nil {
		return fmt.Errorf("failed to marshal realtime data: %w", err)
	}
	if err := c.kv.Set(ctx, c.realtimeKey(rt.PatientID), string(data), c.ttl); err != nil {
		return fmt.Errorf("failed to set realtime cache for patient %d: %w", rt.PatientID, err)
	}
	return nil
}

// UpdateAlarms writes the active alarms of one patient; none is cached as []
func (c *CacheManager) UpdateAlarms(ctx context.Context, patientID int, alarms []models.Alarm) error {
	if alarms == nil {
		alarms = []models.Alarm{}
	}
	data, err := json.Marshal(alarms)
	if err != nil {
		return fmt.Errorf("failed to marshal alarm data: %w", err)
	}
	if err := c.kv.Set(ctx, c.alarmKey(patientID), string(data), c.ttl); err != nil {
		return fmt.Errorf("failed to set alarm cache for patient %d: %w", patientID, err)
	}
	return nil
}

// GetRealtime reads one realtime entry; ErrCacheMiss when absent
func (c *CacheManager) GetRealtime(ctx context.Context, patientID int) (*PatientRealtime, error) {
	val, err := c.kv.Get(ctx, c.realtimeKey(patientID))
	if err != nil {
		return nil, err
	}
	var rt PatientRealtime
	if err := json.Unmarshal([]byte(val), &rt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal realtime data: %w", err)
	}
	return &rt, nil
}

// GetAlarms reads the cached alarms of one patient; ErrCacheMiss when absent
func (c *CacheManager) GetAlarms(ctx context.Context, patientID int) ([]models.Alarm, error) {
	val, err := c.kv.Get(ctx, c.alarmKey(patientID))
	if err != nil {
		return nil, err
	}
	var alarms []models.Alarm
	if err := json.Unmarshal([]byte(val), &alarms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal alarm data: %w", err)
	}
	return alarms, nil
}
