package patient

import (
	"testing"

	"wisefido-monitor/internal/models"
	"wisefido-monitor/internal/vitals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPatients() []models.Patient {
	seeds := DefaultSeeds()
	out := make([]models.Patient, 0, len(seeds))
	for _, s := range seeds {
		p := s.Patient
		p.Trends = models.NewTrends(0)
		out = append(out, p)
	}
	return out
}

func TestDefaultSeeds(t *testing.T) {
	seeds := DefaultSeeds()
	require.Len(t, seeds, 10)

	ids := make(map[int]bool)
	icu := 0
	for _, s := range seeds {
		assert.False(t, ids[s.Patient.ID], "duplicate id %d", s.Patient.ID)
		ids[s.Patient.ID] = true
		if s.Patient.Location == models.LocationICU {
			icu++
		}
		assert.Greater(t, s.Variance.HeartRate, 0.0)
		assert.Greater(t, s.Variance.Get(models.VitalSpO2), 0.0)
		assert.Equal(t, 0.0, s.Variance.Get(models.VitalSystolicBP))
	}
	assert.Equal(t, 5, icu)

	first := seeds[0].Patient
	assert.Equal(t, "J. Sonib", first.Name)
	assert.Equal(t, 89.0, first.Vitals.SpO2)
	assert.Equal(t, 38.2, first.Vitals.Temperature)
}

func TestStore_DefaultSelectionIsFirstICU(t *testing.T) {
	wardFirst := []models.Patient{
		{ID: 7, Location: models.LocationWards},
		{ID: 3, Location: models.LocationICU},
	}
	s := NewStore(wardFirst)

	p, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, 3, p.ID)

	wardsOnly := NewStore([]models.Patient{{ID: 9, Location: models.LocationWards}})
	p, ok = wardsOnly.Selected()
	require.True(t, ok)
	assert.Equal(t, 9, p.ID)

	_, ok = NewStore(nil).Selected()
	assert.False(t, ok)
}

func TestStore_Select(t *testing.T) {
	s := NewStore(seedPatients())

	require.NoError(t, s.Select(8))
	p, _ := s.Selected()
	assert.Equal(t, "R. Brown", p.Name)

	err := s.Select(99)
	assert.ErrorIs(t, err, ErrPatientNotFound)
	p, _ = s.Selected()
	assert.Equal(t, 8, p.ID)
}

func TestStore_Get(t *testing.T) {
	s := NewStore(seedPatients())

	p, err := s.Get(4)
	require.NoError(t, err)
	assert.Equal(t, "S. Rodriguez", p.Name)

	_, err = s.Get(0)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestStore_SnapshotsAreIsolated(t *testing.T) {
	s := NewStore(seedPatients())

	list := s.List()
	list[0].Vitals.HeartRate = 1
	list[0].Trends.HeartRate.Append(1)

	p, err := s.Get(list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 98.0, p.Vitals.HeartRate)
	assert.Equal(t, 0, p.Trends.HeartRate.Len())
}

func TestStore_Update(t *testing.T) {
	s := NewStore(seedPatients())

	s.Update(func(p *models.Patient) {
		p.Vitals.HeartRate++
	})

	p, _ := s.Get(1)
	assert.Equal(t, 99.0, p.Vitals.HeartRate)
	assert.Equal(t, 10, s.Len())
}

func TestStore_SearchByRoomCaseInsensitive(t *testing.T) {
	s := NewStore(seedPatients())

	g := s.Search("rm 102")

	require.Len(t, g.ICU, 1)
	assert.Equal(t, 2, g.ICU[0].ID)
	assert.Empty(t, g.Wards)
}

func TestStore_SearchByName(t *testing.T) {
	s := NewStore(seedPatients())

	g := s.Search("SON")

	// J. Sonib, M. Johnson (ICU); E. Anderson (Wards)
	require.Len(t, g.ICU, 2)
	assert.Equal(t, 1, g.ICU[0].ID)
	assert.Equal(t, 3, g.ICU[1].ID)
	require.Len(t, g.Wards, 1)
	assert.Equal(t, 10, g.Wards[0].ID)
}

func TestStore_SearchEmptyAndNoMatch(t *testing.T) {
	s := NewStore(seedPatients())

	all := s.Search("")
	assert.Len(t, all.ICU, 5)
	assert.Len(t, all.Wards, 5)
	assert.True(t, all.ICU[0].Selected)

	none := s.Search("zzz")
	assert.NotNil(t, none.ICU)
	assert.Empty(t, none.ICU)
	assert.Empty(t, none.Wards)
}

func TestStore_SearchCarriesListStatus(t *testing.T) {
	s := NewStore(seedPatients())

	g := s.Search("RM 10")

	require.Len(t, g.ICU, 5)
	// J. Sonib: SpO2 89
	assert.Equal(t, vitals.TierCritical, g.ICU[0].Status)
	assert.Equal(t, "destructive", g.ICU[0].Color)
	// M. Johnson: all normal
	assert.Equal(t, vitals.TierNormal, g.ICU[2].Status)
	// K. Chen: SpO2 91
	assert.Equal(t, vitals.TierWarning, g.ICU[4].Status)
}
