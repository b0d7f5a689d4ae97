package models

// VitalType closed set of monitored vital signs
type VitalType string

const (
	VitalHeartRate       VitalType = "heartRate"
	VitalSystolicBP      VitalType = "systolicBP"
	VitalDiastolicBP     VitalType = "diastolicBP"
	VitalTemperature     VitalType = "temperature"
	VitalRespirationRate VitalType = "respirationRate"
	VitalSpO2            VitalType = "spO2"
	VitalEtCO2           VitalType = "etCO2"
)

// AllVitalTypes fixed evaluation order (also the simulator's draw order)
var AllVitalTypes = []VitalType{
	VitalHeartRate,
	VitalSystolicBP,
	VitalDiastolicBP,
	VitalTemperature,
	VitalRespirationRate,
	VitalSpO2,
	VitalEtCO2,
}

var vitalLabels = map[VitalType]string{
	VitalHeartRate:       "Heart Rate",
	VitalSystolicBP:      "BP Systolic",
	VitalDiastolicBP:     "BP Diastolic",
	VitalTemperature:     "Temperature",
	VitalRespirationRate: "Respiration Rate",
	VitalSpO2:            "SpO₂",
	VitalEtCO2:           "ETCO₂",
}

// Label alarm label; also the dedup key together with the patient id
func (v VitalType) Label() string {
	return vitalLabels[v]
}

// Valid reports whether v belongs to the closed set
func (v VitalType) Valid() bool {
	_, ok := vitalLabels[v]
	return ok
}

// BloodPressure systolic/diastolic pair (mmHg)
type BloodPressure struct {
	Systolic  float64 `json:"systolic"`
	Diastolic float64 `json:"diastolic"`
}

// Vitals current snapshot of one patient
type Vitals struct {
	HeartRate       float64       `json:"heart_rate"`
	BP              BloodPressure `json:"bp"`
	Temperature     float64       `json:"temp"`
	RespirationRate float64       `json:"respirate"`
	SpO2            float64       `json:"spo2"`
	EtCO2           float64       `json:"etco2"`
}

// Get returns the reading for a vital type; unknown types read as 0
func (v Vitals) Get(t VitalType) float64 {
	switch t {
	case VitalHeartRate:
		return v.HeartRate
	case VitalSystolicBP:
		return v.BP.Systolic
	case VitalDiastolicBP:
		return v.BP.Diastolic
	case VitalTemperature:
		return v.Temperature
	case VitalRespirationRate:
		return v.RespirationRate
	case VitalSpO2:
		return v.SpO2
	case VitalEtCO2:
		return v.EtCO2
	}
	return 0
}

// Set writes the reading for a vital type; unknown types are ignored
func (v *Vitals) Set(t VitalType, value float64) {
	switch t {
	case VitalHeartRate:
		v.HeartRate = value
	case VitalSystolicBP:
		v.BP.Systolic = value
	case VitalDiastolicBP:
		v.BP.Diastolic = value
	case VitalTemperature:
		v.Temperature = value
	case VitalRespirationRate:
		v.RespirationRate = value
	case VitalSpO2:
		v.SpO2 = value
	case VitalEtCO2:
		v.EtCO2 = value
	}
}
