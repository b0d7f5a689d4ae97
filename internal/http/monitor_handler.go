package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"wisefido-monitor/internal/models"
	"wisefido-monitor/internal/monitor"
	"wisefido-monitor/internal/patient"

	"go.uber.org/zap"
)

// MonitorAPI the monitor operations the handlers need
type MonitorAPI interface {
	SearchPatients(term string) patient.Groups
	Patient(id int) (models.Patient, error)
	View(id int) (monitor.PatientView, error)
	SelectPatient(id int) error
	SelectedView() (monitor.PatientView, error)
	Alarms() []models.Alarm
	AcknowledgeAlarm(ctx context.Context, id string) (models.Alarm, bool)
}

type MonitorHandler struct {
	mon    MonitorAPI
	logger *zap.Logger
}

func NewMonitorHandler(mon MonitorAPI, logger *zap.Logger) *MonitorHandler {
	return &MonitorHandler{mon: mon, logger: logger}
}

// ListPatients GET /api/v1/patients?search=
func (h *MonitorHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	groups := h.mon.SearchPatients(r.URL.Query().Get("search"))
	writeJSON(w, http.StatusOK, Ok(groups))
}

// GetPatient GET /api/v1/patients/{id}
func (h *MonitorHandler) GetPatient(w http.ResponseWriter, r *http.Request, id int) {
	view, err := h.mon.View(id)
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(view))
}

// ExportTrends GET /api/v1/patients/{id}/trends/export
func (h *MonitorHandler) ExportTrends(w http.ResponseWriter, r *http.Request, id int) {
	p, err := h.mon.Patient(id)
	if err != nil {
		h.writeLookupError(w, err)
		return
	}

	data, err := GenerateTrendExport(p)
	if err != nil {
		h.logger.Error("Failed to generate trend export", zap.Int("patient_id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate export"))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=patient-%d-trends.xlsx", id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// GetSelection GET /api/v1/selection
func (h *MonitorHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	view, err := h.mon.SelectedView()
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(view))
}

type selectionRequest struct {
	PatientID int `json:"patient_id"`
}

// SaveSelection POST /api/v1/selection {"patient_id": n}
func (h *MonitorHandler) SaveSelection(w http.ResponseWriter, r *http.Request) {
	var body selectionRequest
	if err := readBodyJSON(r, 1<<16, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	if err := h.mon.SelectPatient(body.PatientID); err != nil {
		h.writeLookupError(w, err)
		return
	}
	h.GetSelection(w, r)
}

type alarmList struct {
	Count int            `json:"count"`
	Items []models.Alarm `json:"items"`
}

// ListAlarms GET /api/v1/alarms
func (h *MonitorHandler) ListAlarms(w http.ResponseWriter, r *http.Request) {
	alarms := h.mon.Alarms()
	writeJSON(w, http.StatusOK, Ok(alarmList{Count: len(alarms), Items: alarms}))
}

type acknowledgeResponse struct {
	ID           string        `json:"id"`
	Acknowledged bool          `json:"acknowledged"`
	Alarm        *models.Alarm `json:"alarm,omitempty"`
}

// AcknowledgeAlarm POST /api/v1/alarms/{id}/acknowledge; an unknown id still answers 200
func (h *MonitorHandler) AcknowledgeAlarm(w http.ResponseWriter, r *http.Request, id string) {
	resp := acknowledgeResponse{ID: id}
	if a, ok := h.mon.AcknowledgeAlarm(r.Context(), id); ok {
		resp.Acknowledged = true
		resp.Alarm = &a
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *MonitorHandler) writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, patient.ErrPatientNotFound) {
		writeJSON(w, http.StatusNotFound, Fail("patient not found"))
		return
	}
	h.logger.Error("Patient lookup failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
}
