package patient

import (
	"wisefido-monitor/internal/models"
)

// TrendVariance random-walk step used to pre-fill each scalar trend buffer.
// Blood pressure uses fixed steps (BPSystolicVariance / BPDiastolicVariance).
type TrendVariance struct {
	HeartRate       float64
	Temperature     float64
	RespirationRate float64
	SpO2            float64
	EtCO2           float64
}

// Get returns the variance for a scalar vital; BP types and unknown types return 0
func (v TrendVariance) Get(t models.VitalType) float64 {
	switch t {
	case models.VitalHeartRate:
		return v.HeartRate
	case models.VitalTemperature:
		return v.Temperature
	case models.VitalRespirationRate:
		return v.RespirationRate
	case models.VitalSpO2:
		return v.SpO2
	case models.VitalEtCO2:
		return v.EtCO2
	}
	return 0
}

const (
	BPSystolicVariance  = 10.0
	BPDiastolicVariance = 8.0
)

// Seed initial patient record plus the variances its trend history is generated with
type Seed struct {
	Patient  models.Patient
	Variance TrendVariance
}

// DefaultSeeds the ward census the dashboard starts with: five ICU beds, five ward beds
func DefaultSeeds() []Seed {
	return []Seed{
		{
			Patient: models.Patient{
				ID: 1, Name: "J. Sonib", Age: 41, Condition: "Attending Diagnosis",
				Location: models.LocationICU, Room: "RM 101",
				Vitals: vitalsOf(98, 95, 60, 38.2, 24, 89, 35),
				History: models.History{
					Medical:   "Augmenting nemo dedit eos haet est etchid solicitans pescodic sanit, donvalent. Thessa amnialiores sent loke mod sed a do ned essons ticarie et promod mire a ad oien noot.",
					Physician: "Excessa er oration ero sit fluss time o vetericula parcelant mod e sit bounct netliceat final one posnos. Apuna nunselliems care ollem atecity doras tam met presont ad toe oct pont tract herntimd airee pretallent.",
				},
			},
			Variance: TrendVariance{HeartRate: 8, Temperature: 0.5, RespirationRate: 3, SpO2: 3, EtCO2: 3},
		},
		{
			Patient: models.Patient{
				ID: 2, Name: "A. Patel", Age: 55, Condition: "Hypertension Trend",
				Location: models.LocationICU, Room: "RM 102",
				Vitals: vitalsOf(75, 155, 95, 37.1, 18, 96, 40),
				History: models.History{
					Medical:   "Patient has a history of chronic hypertension managed with medication. Recent blood pressure readings have shown an upward trend requiring close monitoring.",
					Physician: "Increase antihypertensive medication. Monitor blood pressure every 2 hours. Restrict sodium intake. Consider cardiology consult if BP remains elevated.",
				},
			},
			Variance: TrendVariance{HeartRate: 5, Temperature: 0.3, RespirationRate: 2, SpO2: 2, EtCO2: 2},
		},
		{
			Patient: models.Patient{
				ID: 3, Name: "M. Johnson", Age: 68, Condition: "Post-Operative Recovery",
				Location: models.LocationICU, Room: "RM 103",
				Vitals: vitalsOf(82, 118, 72, 37.4, 16, 98, 38),
				History: models.History{
					Medical:   "Status post cardiac surgery. Patient recovering well with stable vital signs. No immediate complications noted.",
					Physician: "Continue current medication regimen. Monitor cardiac function. Encourage early mobilization when cleared by PT.",
				},
			},
			Variance: TrendVariance{HeartRate: 6, Temperature: 0.4, RespirationRate: 2, SpO2: 1, EtCO2: 2},
		},
		{
			Patient: models.Patient{
				ID: 4, Name: "S. Rodriguez", Age: 34, Condition: "Sepsis Protocol",
				Location: models.LocationICU, Room: "RM 104",
				Vitals: vitalsOf(115, 88, 55, 38.9, 26, 92, 42),
				History: models.History{
					Medical:   "Admitted with severe sepsis secondary to pneumonia. Currently on broad-spectrum antibiotics and vasopressor support.",
					Physician: "Continue sepsis bundle. Fluid resuscitation as needed. Monitor lactate levels. Daily infectious disease consult.",
				},
			},
			Variance: TrendVariance{HeartRate: 10, Temperature: 0.6, RespirationRate: 3, SpO2: 3, EtCO2: 3},
		},
		{
			Patient: models.Patient{
				ID: 5, Name: "K. Chen", Age: 72, Condition: "COPD Exacerbation",
				Location: models.LocationICU, Room: "RM 105",
				Vitals: vitalsOf(88, 132, 78, 37.2, 28, 91, 48),
				History: models.History{
					Medical:   "Long-standing COPD with acute exacerbation. On BiPAP support. Respiratory status improving slowly.",
					Physician: "Continue BiPAP. Bronchodilators and steroids as ordered. Monitor ABGs closely. Pulmonology following.",
				},
			},
			Variance: TrendVariance{HeartRate: 7, Temperature: 0.3, RespirationRate: 4, SpO2: 2, EtCO2: 3},
		},
		{
			Patient: models.Patient{
				ID: 6, Name: "T. Williams", Age: 45, Condition: "Stable Condition",
				Location: models.LocationWards, Room: "RM 201",
				Vitals: vitalsOf(72, 115, 75, 36.8, 14, 98, 38),
				History: models.History{
					Medical:   "Recovering from minor surgical procedure. All vitals within normal limits. Expected discharge within 24-48 hours.",
					Physician: "Continue observation. Pain management as needed. Ambulate with assistance. Diet as tolerated.",
				},
			},
			Variance: TrendVariance{HeartRate: 4, Temperature: 0.2, RespirationRate: 1, SpO2: 1, EtCO2: 1},
		},
		{
			Patient: models.Patient{
				ID: 7, Name: "L. Martinez", Age: 29, Condition: "Observation",
				Location: models.LocationWards, Room: "RM 202",
				Vitals: vitalsOf(68, 108, 68, 37.0, 16, 99, 37),
				History: models.History{
					Medical:   "Under observation following allergic reaction. Symptoms resolved. Awaiting final clearance.",
					Physician: "Monitor for 24 hours. Antihistamines as needed. Discharge planning in progress.",
				},
			},
			Variance: TrendVariance{HeartRate: 3, Temperature: 0.2, RespirationRate: 1, SpO2: 0.5, EtCO2: 1},
		},
		{
			Patient: models.Patient{
				ID: 8, Name: "R. Brown", Age: 61, Condition: "Diabetes Management",
				Location: models.LocationWards, Room: "RM 203",
				Vitals: vitalsOf(76, 125, 80, 36.9, 15, 97, 39),
				History: models.History{
					Medical:   "Type 2 diabetes with recent hyperglycemic episode. Blood sugar levels stabilizing with insulin adjustment.",
					Physician: "Continue glucose monitoring q4h. Adjust insulin sliding scale. Dietary consult. Endocrinology following.",
				},
			},
			Variance: TrendVariance{HeartRate: 4, Temperature: 0.2, RespirationRate: 1, SpO2: 1, EtCO2: 1},
		},
		{
			Patient: models.Patient{
				ID: 9, Name: "N. Davis", Age: 52, Condition: "Stable Post-Treatment",
				Location: models.LocationWards, Room: "RM 204",
				Vitals: vitalsOf(70, 112, 70, 37.1, 14, 98, 38),
				History: models.History{
					Medical:   "Completed treatment course for pneumonia. Chest X-ray shows improvement. Vital signs stable.",
					Physician: "Complete antibiotic course. Follow-up chest X-ray in 2 weeks. Discharge tomorrow if stable overnight.",
				},
			},
			Variance: TrendVariance{HeartRate: 3, Temperature: 0.2, RespirationRate: 1, SpO2: 1, EtCO2: 1},
		},
		{
			Patient: models.Patient{
				ID: 10, Name: "E. Anderson", Age: 38, Condition: "Recovery Phase",
				Location: models.LocationWards, Room: "RM 205",
				Vitals: vitalsOf(74, 118, 74, 36.7, 16, 99, 37),
				History: models.History{
					Medical:   "Recovering from acute gastroenteritis. Tolerating oral fluids well. No fever for 24 hours.",
					Physician: "Advance diet as tolerated. Continue IV fluids until adequate PO intake. Likely discharge within 24 hours.",
				},
			},
			Variance: TrendVariance{HeartRate: 3, Temperature: 0.2, RespirationRate: 1, SpO2: 0.5, EtCO2: 1},
		},
	}
}

func vitalsOf(hr, sys, dia, temp, rr, spo2, etco2 float64) models.Vitals {
	return models.Vitals{
		HeartRate:       hr,
		BP:              models.BloodPressure{Systolic: sys, Diastolic: dia},
		Temperature:     temp,
		RespirationRate: rr,
		SpO2:            spo2,
		EtCO2:           etco2,
	}
}
