package vitals

import (
	"errors"
	"math"

	"github.com/nutrifarma/advisor-api/internal/refdata"
)

// ErrInvalidInput is returned when a measurement is zero or negative.
var ErrInvalidInput = errors.New("vitals: weight and height must be positive")

// Tier orders BMI categories by clinical attention level.
type Tier string

const (
	TierOK      Tier = "ok"
	TierCaution Tier = "caution"
	TierWarning Tier = "warning"
	TierAlert   Tier = "alert"
)

// BMIClassification pairs the category label with its attention tier.
type BMIClassification struct {
	Label string `json:"label"`
	Tier  Tier   `json:"tier"`
}

// LabStatus is the interpretation of a measured value against its
// reference range.
type LabStatus string

const (
	LabStatusNormal LabStatus = "Normal"
	LabStatusLow    LabStatus = "Low"
	LabStatusHigh   LabStatus = "High"
	// LabStatusNoReference is a soft fallback for parameters without a
	// reference entry, not an error.
	LabStatusNoReference LabStatus = "No reference"
)

// ComputeBMI returns weight(kg) / height(m)^2 rounded to one decimal.
func ComputeBMI(weightKg, heightCm float64) (float64, error) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, ErrInvalidInput
	}
	meters := heightCm / 100
	bmi := weightKg / (meters * meters)
	return math.Round(bmi*10) / 10, nil
}

// ClassifyBMI buckets a BMI value. Lower bounds are inclusive, upper
// bounds exclusive; the top bucket is open-ended.
func ClassifyBMI(bmi float64) BMIClassification {
	switch {
	case bmi < 18.5:
		return BMIClassification{Label: "Underweight", Tier: TierCaution}
	case bmi < 25:
		return BMIClassification{Label: "Normal", Tier: TierOK}
	case bmi < 30:
		return BMIClassification{Label: "Overweight", Tier: TierWarning}
	default:
		return BMIClassification{Label: "Obesity", Tier: TierAlert}
	}
}

// ClassifyLab interprets a measured value against the reference table.
// Both range endpoints count as Normal.
func ClassifyLab(parameter string, value float64) LabStatus {
	ref, ok := refdata.RangeFor(parameter)
	if !ok {
		return LabStatusNoReference
	}
	switch {
	case value < ref.Min:
		return LabStatusLow
	case value > ref.Max:
		return LabStatusHigh
	default:
		return LabStatusNormal
	}
}
