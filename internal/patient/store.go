// Package patient owns the patient records and the current selection.
package patient

import (
	"errors"
	"strings"
	"sync"

	"wisefido-monitor/internal/models"
	"wisefido-monitor/internal/vitals"
)

// ErrPatientNotFound no patient with the requested id
var ErrPatientNotFound = errors.New("patient not found")

// Summary one row of the patient list
type Summary struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Age       int             `json:"age"`
	Condition string          `json:"condition"`
	Location  models.Location `json:"location"`
	Room      string          `json:"room"`
	Status    vitals.Tier     `json:"status"`
	Color     string          `json:"color"`
	Selected  bool            `json:"selected"`
}

// Groups patient list partitioned by location
type Groups struct {
	ICU   []Summary `json:"icu"`
	Wards []Summary `json:"wards"`
}

// Store patient records in seed order, plus the selected patient id
type Store struct {
	mu       sync.RWMutex
	patients []*models.Patient
	index    map[int]*models.Patient
	selected int
}

// NewStore takes ownership of patients; the first ICU patient (else the first) is selected
func NewStore(patients []models.Patient) *Store {
	s := &Store{
		patients: make([]*models.Patient, 0, len(patients)),
		index:    make(map[int]*models.Patient, len(patients)),
	}
	for i := range patients {
		p := patients[i]
		s.patients = append(s.patients, &p)
		s.index[p.ID] = &p
	}
	s.selected = defaultSelection(s.patients)
	return s
}

func defaultSelection(patients []*models.Patient) int {
	for _, p := range patients {
		if p.Location == models.LocationICU {
			return p.ID
		}
	}
	if len(patients) > 0 {
		return patients[0].ID
	}
	return 0
}

// List snapshot of every patient, seed order
func (s *Store) List() []models.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Patient, 0, len(s.patients))
	for _, p := range s.patients {
		out = append(out, p.Clone())
	}
	return out
}

// Len number of patients
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.patients)
}

// Get snapshot of one patient
func (s *Store) Get(id int) (models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.index[id]
	if !ok {
		return models.Patient{}, ErrPatientNotFound
	}
	return p.Clone(), nil
}

// Update runs fn on every patient in seed order under the write lock.
// fn must not retain the pointer.
func (s *Store) Update(fn func(p *models.Patient)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.patients {
		fn(p)
	}
}

// Select changes the selected patient
func (s *Store) Select(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[id]; !ok {
		return ErrPatientNotFound
	}
	s.selected = id
	return nil
}

// Selected snapshot of the selected patient; ok is false only for an empty store
func (s *Store) Selected() (models.Patient, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.index[s.selected]
	if !ok {
		return models.Patient{}, false
	}
	return p.Clone(), true
}

// Search case-insensitive substring match on name or room, grouped by location.
// An empty term matches everyone.
func (s *Store) Search(term string) Groups {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(term)
	groups := Groups{ICU: []Summary{}, Wards: []Summary{}}

	for _, p := range s.patients {
		if !matches(p, needle) {
			continue
		}
		row := summarize(p, p.ID == s.selected)
		switch p.Location {
		case models.LocationICU:
			groups.ICU = append(groups.ICU, row)
		case models.LocationWards:
			groups.Wards = append(groups.Wards, row)
		}
	}
	return groups
}

func matches(p *models.Patient, needle string) bool {
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Room), needle)
}

func summarize(p *models.Patient, selected bool) Summary {
	status := vitals.ListStatus(p.Vitals)
	return Summary{
		ID:        p.ID,
		Name:      p.Name,
		Age:       p.Age,
		Condition: p.Condition,
		Location:  p.Location,
		Room:      p.Room,
		Status:    status,
		Color:     status.Color(),
		Selected:  selected,
	}
}
