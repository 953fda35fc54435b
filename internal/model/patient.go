package model

import (
	"time"

	"github.com/google/uuid"
)

type Sex string

const (
	SexFemale Sex = "female"
	SexMale   Sex = "male"
	SexOther  Sex = "other"
)

// PatientProfile holds identity and anthropometrics. An empty Name means
// the profile has not been completed yet.
type PatientProfile struct {
	Name     string  `json:"name"`
	Age      int     `json:"age"`
	Sex      Sex     `json:"sex"`
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
}

// ClinicalInfo groups the condition/allergy/goal batch.
type ClinicalInfo struct {
	Conditions     []string `json:"conditions"`
	OtherCondition string   `json:"other_condition,omitempty"`
	Allergies      []string `json:"allergies"`
	Goal           string   `json:"goal"`
}

// Lifestyle carries the psychosocial and behavioral-change fields. They
// have no computed behavior; they only enrich the advisory context.
type Lifestyle struct {
	Employment    string   `json:"employment,omitempty"`
	SleepHours    string   `json:"sleep_hours,omitempty"`
	StageOfChange string   `json:"stage_of_change,omitempty"`
	Barriers      []string `json:"barriers,omitempty"`
	SmartGoal     string   `json:"smart_goal,omitempty"`
}

type Medication struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Dose      string    `json:"dose"`
	Frequency string    `json:"frequency"`
	Reason    string    `json:"reason"`
	AddedAt   time.Time `json:"added_at"`
}

// PatientRecord is the per-session aggregate. BMI is never stored on it;
// derived views recompute from the current weight and height.
type PatientRecord struct {
	Profile     PatientProfile     `json:"profile"`
	Clinical    ClinicalInfo       `json:"clinical"`
	Lifestyle   Lifestyle          `json:"lifestyle"`
	LabPanel    map[string]float64 `json:"lab_panel"`
	Medications []Medication       `json:"medications"`
	FoodLog     []FoodEntry        `json:"food_log"`
	ActivityLog []ActivityEntry    `json:"activity_log"`
}

// NewPatientRecord returns the initial empty record.
func NewPatientRecord() *PatientRecord {
	return &PatientRecord{
		LabPanel: make(map[string]float64),
	}
}

// HasProfile reports whether the demographics batch has been saved.
func (r *PatientRecord) HasProfile() bool {
	return r.Profile.Name != ""
}

// LabResult is a measured value paired with its interpretation.
type LabResult struct {
	Parameter string  `json:"parameter"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit,omitempty"`
	Status    string  `json:"status"`
}

// BMIView is the derived body-mass-index block of a record view.
type BMIView struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
	Tier  string  `json:"tier"`
}

// RecordView is the read model returned to the client: the record plus
// everything recomputed on demand.
type RecordView struct {
	Profile     PatientProfile `json:"profile"`
	BMI         *BMIView       `json:"bmi,omitempty"`
	Clinical    ClinicalInfo   `json:"clinical"`
	Lifestyle   Lifestyle      `json:"lifestyle"`
	Labs        []LabResult    `json:"labs"`
	Medications []Medication   `json:"medications"`
	FoodLog     []FoodDay      `json:"food_log"`
	ActivityLog []ActivityDay  `json:"activity_log"`
}

type SaveProfileRequest struct {
	Name     string  `json:"name" binding:"required"`
	Age      int     `json:"age" binding:"required,min=1,max=120"`
	Sex      Sex     `json:"sex" binding:"required,oneof=female male other"`
	WeightKg float64 `json:"weight_kg" binding:"required,gte=20,lte=300"`
	HeightCm float64 `json:"height_cm" binding:"required,gte=50,lte=250"`
}

type SaveClinicalRequest struct {
	Conditions     []string `json:"conditions"`
	OtherCondition string   `json:"other_condition"`
	Allergies      []string `json:"allergies"`
	Goal           string   `json:"goal"`
}

type SaveLabsRequest struct {
	Values map[string]float64 `json:"values" binding:"required"`
}

type SaveLifestyleRequest struct {
	Employment    string   `json:"employment"`
	SleepHours    string   `json:"sleep_hours"`
	StageOfChange string   `json:"stage_of_change"`
	Barriers      []string `json:"barriers"`
	SmartGoal     string   `json:"smart_goal"`
}

type AddMedicationRequest struct {
	Name      string `json:"name" binding:"required"`
	Dose      string `json:"dose"`
	Frequency string `json:"frequency"`
	Reason    string `json:"reason"`
}
