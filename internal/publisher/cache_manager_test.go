package publisher_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"wisefido-monitor/internal/models"
	"wisefido-monitor/internal/publisher"
	"wisefido-monitor/internal/vitals"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testPrefix = "vital-monitor:patient:"

func testSnapshot() models.Snapshot {
	return models.Snapshot{
		Seq: 7,
		At:  time.Unix(1700000000, 0),
		Patients: []models.Patient{
			{ID: 1, Name: "J. Sonib", Room: "RM 101", Location: models.LocationICU,
				Vitals: models.Vitals{HeartRate: 98, Temperature: 38.2, SpO2: 89}},
			{ID: 6, Name: "T. Williams", Room: "RM 201", Location: models.LocationWards,
				Vitals: models.Vitals{HeartRate: 72, Temperature: 36.8, SpO2: 98}},
		},
		Alarms: []models.Alarm{
			{ID: "1-SpO₂-1700000000000", PatientID: 1, Label: "SpO₂", Severity: models.SeverityCritical},
		},
	}
}

func TestCacheManager_OnTick_WritesRealtimeAndAlarms(t *testing.T) {
	kv := newFakeKVStore()
	cm := publisher.NewCacheManager(kv, testPrefix, 30*time.Second, zap.NewNop())

	require.NoError(t, cm.OnTick(context.Background(), testSnapshot()))

	raw, err := kv.Get(context.Background(), "vital-monitor:patient:1:realtime")
	require.NoError(t, err)
	var rt publisher.PatientRealtime
	require.NoError(t, json.Unmarshal([]byte(raw), &rt))
	assert.Equal(t, 1, rt.PatientID)
	assert.Equal(t, 89.0, rt.Vitals.SpO2)
	assert.Equal(t, vitals.TierCritical, rt.Status)
	assert.Equal(t, uint64(7), rt.Seq)
	assert.Equal(t, int64(1700000000), rt.UpdatedAt)
	assert.Equal(t, 30*time.Second, kv.ttlOf("vital-monitor:patient:1:realtime"))

	alarms, err := cm.GetAlarms(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, alarms, 1)
	assert.Equal(t, models.SeverityCritical, alarms[0].Severity)

	raw, err = kv.Get(context.Background(), "vital-monitor:patient:6:alarms")
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestCacheManager_GetRealtime_Miss(t *testing.T) {
	cm := publisher.NewCacheManager(newFakeKVStore(), testPrefix, time.Second, zap.NewNop())

	_, err := cm.GetRealtime(context.Background(), 99)
	assert.ErrorIs(t, err, publisher.ErrCacheMiss)
}

func TestCacheManager_OnTick_ReturnsJoinedError(t *testing.T) {
	kv := newFakeKVStore()
	kv.failSet = true
	cm := publisher.NewCacheManager(kv, testPrefix, time.Second, zap.NewNop())

	err := cm.OnTick(context.Background(), testSnapshot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "patient 1")
	assert.Contains(t, err.Error(), "patient 6")
}

func TestCacheManager_WithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cm := publisher.NewCacheManager(publisher.NewRedisKVStore(client), testPrefix, 30*time.Second, zap.NewNop())

	require.NoError(t, cm.OnTick(context.Background(), testSnapshot()))

	rt, err := cm.GetRealtime(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, "T. Williams", rt.Name)
	assert.Equal(t, vitals.TierNormal, rt.Status)
	assert.Equal(t, 30*time.Second, mr.TTL("vital-monitor:patient:6:realtime"))

	mr.FastForward(31 * time.Second)
	_, err = cm.GetRealtime(context.Background(), 6)
	assert.ErrorIs(t, err, publisher.ErrCacheMiss)
}
