package alarm

import (
	"testing"
	"time"

	"wisefido-monitor/internal/models"
	"wisefido-monitor/internal/vitals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.UnixMilli(1700000000123)

func testPatient() models.Patient {
	return models.Patient{
		ID:   1,
		Name: "J. Sonib",
		Room: "RM 101",
		Vitals: models.Vitals{
			HeartRate:       80,
			BP:              models.BloodPressure{Systolic: 115, Diastolic: 75},
			Temperature:     37,
			RespirationRate: 16,
			SpO2:            97,
			EtCO2:           40,
		},
	}
}

func TestCheck_InsideWarningRaisesNothing(t *testing.T) {
	reg := NewRegistry()
	assert.Nil(t, Check(reg, testPatient(), models.VitalHeartRate, 105, now))
	assert.Equal(t, 0, reg.Count())
}

func TestCheck_WarningAlarm(t *testing.T) {
	reg := NewRegistry()

	a := Check(reg, testPatient(), models.VitalHeartRate, 120, now)

	require.NotNil(t, a)
	assert.Equal(t, models.SeverityWarning, a.Severity)
	assert.Equal(t, "Heart Rate Trend - Heart Rate: 120", a.Message)
	assert.Equal(t, "1-Heart Rate-1700000000123", a.ID)
	assert.Equal(t, "J. Sonib", a.PatientName)
	assert.Equal(t, "RM 101", a.Room)
	assert.Equal(t, now, a.Timestamp)
	assert.Equal(t, 1, reg.Count())
}

func TestCheck_CriticalAlarm(t *testing.T) {
	reg := NewRegistry()

	a := Check(reg, testPatient(), models.VitalSpO2, 89, now)

	require.NotNil(t, a)
	assert.Equal(t, models.SeverityCritical, a.Severity)
	assert.Contains(t, a.Message, "SpO")
	assert.Contains(t, a.Message, "89")
	assert.Equal(t, "SpO₂ CRITICAL - SpO₂: 89", a.Message)
}

func TestCheck_MessageRoundsValue(t *testing.T) {
	reg := NewRegistry()

	a := Check(reg, testPatient(), models.VitalTemperature, 38.6, now)

	require.NotNil(t, a)
	assert.Equal(t, models.SeverityWarning, a.Severity)
	assert.Equal(t, "Temperature Trend - Temperature: 39", a.Message)
}

func TestCheck_NoDuplicateForSameLabel(t *testing.T) {
	reg := NewRegistry()
	p := testPatient()

	require.NotNil(t, Check(reg, p, models.VitalHeartRate, 120, now))
	assert.Nil(t, Check(reg, p, models.VitalHeartRate, 125, now.Add(3*time.Second)))
	assert.Equal(t, 1, reg.Count())

	// other patient, same label
	other := p
	other.ID = 2
	assert.NotNil(t, Check(reg, other, models.VitalHeartRate, 120, now))
	assert.Equal(t, 2, reg.Count())
}

func TestCheck_StandingWarningIsNotUpgraded(t *testing.T) {
	reg := NewRegistry()
	p := testPatient()

	first := Check(reg, p, models.VitalHeartRate, 115, now)
	require.NotNil(t, first)
	require.Equal(t, models.SeverityWarning, first.Severity)

	assert.Nil(t, Check(reg, p, models.VitalHeartRate, 145, now.Add(time.Second)))

	list := reg.List()
	require.Len(t, list, 1)
	assert.Equal(t, models.SeverityWarning, list[0].Severity)
}

func TestCheck_AlarmOutlivesRecovery(t *testing.T) {
	reg := NewRegistry()
	p := testPatient()

	require.NotNil(t, Check(reg, p, models.VitalHeartRate, 120, now))
	assert.Nil(t, Check(reg, p, models.VitalHeartRate, 80, now.Add(time.Second)))

	assert.Equal(t, 1, reg.Count())
}

func TestCheck_AcknowledgeAllowsNewAlarm(t *testing.T) {
	reg := NewRegistry()
	p := testPatient()

	a := Check(reg, p, models.VitalHeartRate, 120, now)
	require.NotNil(t, a)
	reg.Acknowledge(a.ID)

	b := Check(reg, p, models.VitalHeartRate, 135, now.Add(time.Second))
	require.NotNil(t, b)
	assert.Equal(t, models.SeverityCritical, b.Severity)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCheckAll_EvaluatesEveryVital(t *testing.T) {
	reg := NewRegistry()
	p := testPatient()
	p.Vitals.SpO2 = 89
	p.Vitals.BP.Diastolic = 95

	raised := CheckAll(reg, p, now)

	require.Len(t, raised, 2)
	assert.Equal(t, "BP Diastolic", raised[0].Label)
	assert.Equal(t, models.VitalDiastolicBP, raised[0].Vital)
	assert.Equal(t, "SpO₂", raised[1].Label)
}

// The card tier and the alarm severity use different bands: 38.2 °C is
// outside the warning band (critical tier) but inside the critical band
// (WARNING alarm).
func TestCheck_TierAndSeverityDiffer(t *testing.T) {
	reg := NewRegistry()

	assert.Equal(t, vitals.TierCritical, vitals.Classify(38.2, models.VitalTemperature))

	a := Check(reg, testPatient(), models.VitalTemperature, 38.2, now)
	require.NotNil(t, a)
	assert.Equal(t, models.SeverityWarning, a.Severity)
	assert.Equal(t, "Temperature Trend - Temperature: 38", a.Message)
}
