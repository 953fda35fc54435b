package refdata

// ReferenceRange is the normal range for a single laboratory parameter.
// The table below is the authoritative in-process source for lab
// interpretation; values follow the ranges used on the intake form.
type ReferenceRange struct {
	Parameter string  `json:"parameter"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Unit      string  `json:"unit"`
}

// LabReferenceRanges returns the reference entries for every recognized
// lab parameter. Min <= Max holds for every entry.
func LabReferenceRanges() []ReferenceRange {
	return []ReferenceRange{
		{Parameter: "Glucosa", Min: 70, Max: 110, Unit: "mg/dL"},
		{Parameter: "Colesterol Total", Min: 120, Max: 200, Unit: "mg/dL"},
		{Parameter: "HDL", Min: 40, Max: 60, Unit: "mg/dL"},
		{Parameter: "LDL", Min: 50, Max: 130, Unit: "mg/dL"},
		{Parameter: "Triglicéridos", Min: 50, Max: 150, Unit: "mg/dL"},
		{Parameter: "HbA1c", Min: 4.0, Max: 5.7, Unit: "%"},
		{Parameter: "Vitamina D", Min: 30, Max: 100, Unit: "ng/mL"},
		{Parameter: "Vitamina B12", Min: 200, Max: 900, Unit: "pg/mL"},
		{Parameter: "Hierro", Min: 60, Max: 170, Unit: "µg/dL"},
		{Parameter: "Ferritina", Min: 20, Max: 250, Unit: "ng/mL"},
	}
}

var rangeIndex = func() map[string]ReferenceRange {
	idx := make(map[string]ReferenceRange)
	for _, r := range LabReferenceRanges() {
		idx[r.Parameter] = r
	}
	return idx
}()

// RangeFor looks up the reference range for a parameter by exact name.
func RangeFor(parameter string) (ReferenceRange, bool) {
	r, ok := rangeIndex[parameter]
	return r, ok
}

// IsKnownParameter reports whether the parameter has a reference entry.
func IsKnownParameter(parameter string) bool {
	_, ok := rangeIndex[parameter]
	return ok
}

// ConditionOther marks a condition elaborated in free text on the record.
const ConditionOther = "Otra"

// ChronicConditions returns the enumerated health conditions offered on
// the intake form, in display order.
func ChronicConditions() []string {
	return []string{
		"Diabetes tipo 2",
		"Hipertensión",
		"Colesterol alto",
		"Estreñimiento",
		"Osteoporosis",
		"Sobrepeso",
		ConditionOther,
	}
}

var conditionIndex = func() map[string]struct{} {
	idx := make(map[string]struct{})
	for _, c := range ChronicConditions() {
		idx[c] = struct{}{}
	}
	return idx
}()

// IsKnownCondition reports whether the condition is part of the
// enumerated list.
func IsKnownCondition(condition string) bool {
	_, ok := conditionIndex[condition]
	return ok
}
