// Package prompt turns a patient record snapshot into the exact text
// sent to the completion endpoint. Everything here is pure: no I/O, no
// mutation of the record.
package prompt

import (
	"fmt"
	"strings"

	"github.com/nutrifarma/advisor-api/internal/model"
	"github.com/nutrifarma/advisor-api/internal/session"
	"github.com/nutrifarma/advisor-api/internal/vitals"
)

// Flow selects one of the four advisory templates.
type Flow string

const (
	FlowQuery      Flow = "query"
	FlowReport     Flow = "report"
	FlowCoaching   Flow = "coaching"
	FlowGuidelines Flow = "guidelines"
)

// Build assembles the full prompt for a flow: fixed preamble, flow
// framing, patient context and, where the flow takes one, the
// pharmacist's question.
func Build(flow Flow, record model.PatientRecord, question string) string {
	var b strings.Builder
	b.WriteString(SystemPreamble)
	b.WriteString("\n\n")

	switch flow {
	case FlowReport:
		b.WriteString(reportFraming)
	case FlowCoaching:
		b.WriteString(coachingFraming)
	case FlowGuidelines:
		b.WriteString(guidelinesFraming)
	default:
		b.WriteString(queryFraming)
	}
	b.WriteString("\n\n")
	b.WriteString(BuildContext(record))

	if question != "" && (flow == FlowQuery || flow == FlowGuidelines) {
		b.WriteString(fmt.Sprintf("\nConsulta del farmacéutico: %s\n", question))
	}
	return b.String()
}

// BuildContext renders the deterministic patient context block shared
// by all templates.
func BuildContext(record model.PatientRecord) string {
	var b strings.Builder
	b.WriteString("Datos del paciente:\n")

	p := record.Profile
	if p.Name != "" {
		b.WriteString(fmt.Sprintf("- Nombre: %s\n", p.Name))
		b.WriteString(fmt.Sprintf("- Edad: %d años\n", p.Age))
		b.WriteString(fmt.Sprintf("- Sexo: %s\n", sexLabel(p.Sex)))
		b.WriteString(fmt.Sprintf("- Peso: %.1f kg\n", p.WeightKg))
		b.WriteString(fmt.Sprintf("- Altura: %.0f cm\n", p.HeightCm))
		if bmi, err := vitals.ComputeBMI(p.WeightKg, p.HeightCm); err == nil {
			cls := vitals.ClassifyBMI(bmi)
			b.WriteString(fmt.Sprintf("- IMC: %.1f (%s)\n", bmi, cls.Label))
		}
	} else {
		b.WriteString("- Perfil incompleto\n")
	}

	b.WriteString(fmt.Sprintf("- Condiciones: %s\n", conditionsLine(record.Clinical)))
	b.WriteString(fmt.Sprintf("- Alergias: %s\n", orNone(strings.Join(record.Clinical.Allergies, ", "))))
	if record.Clinical.Goal != "" {
		b.WriteString(fmt.Sprintf("- Objetivo nutricional: %s\n", record.Clinical.Goal))
	}

	if len(record.LabPanel) > 0 {
		b.WriteString("- Analítica:\n")
		for _, lab := range session.LabResults(record.LabPanel) {
			unit := lab.Unit
			if unit != "" {
				unit = " " + unit
			}
			b.WriteString(fmt.Sprintf("    - %s: %g%s (%s)\n", lab.Parameter, lab.Value, unit, labStatusLabel(lab.Status)))
		}
	}

	b.WriteString(fmt.Sprintf("- Medicación: %s\n", medicationsLine(record.Medications)))

	writeLifestyle(&b, record.Lifestyle)
	writeRecentLogs(&b, record)
	return b.String()
}

func writeLifestyle(b *strings.Builder, ls model.Lifestyle) {
	if ls.Employment != "" {
		fmt.Fprintf(b, "- Situación laboral: %s\n", ls.Employment)
	}
	if ls.SleepHours != "" {
		fmt.Fprintf(b, "- Sueño: %s\n", ls.SleepHours)
	}
	if ls.StageOfChange != "" {
		fmt.Fprintf(b, "- Etapa de cambio: %s\n", ls.StageOfChange)
	}
	if len(ls.Barriers) > 0 {
		fmt.Fprintf(b, "- Barreras percibidas: %s\n", strings.Join(ls.Barriers, ", "))
	}
	if ls.SmartGoal != "" {
		fmt.Fprintf(b, "- Objetivo SMART: %s\n", ls.SmartGoal)
	}
}

func writeRecentLogs(b *strings.Builder, record model.PatientRecord) {
	if len(record.FoodLog) > 0 {
		b.WriteString("- Registro de comidas reciente:\n")
		for _, e := range tailFood(record.FoodLog, 10) {
			line := fmt.Sprintf("    - %s %s [%s] %s", e.Date, e.Time, mealLabel(e.Meal), e.Description)
			if e.Quantity != "" {
				line += " (" + e.Quantity + ")"
			}
			b.WriteString(line + "\n")
		}
	}
	if len(record.ActivityLog) > 0 {
		b.WriteString("- Registro de actividad reciente:\n")
		for _, e := range tailActivity(record.ActivityLog, 10) {
			fmt.Fprintf(b, "    - %s %s, %d min, intensidad %s\n",
				e.Date, e.Activity, e.DurationMinutes, intensityLabel(e.Intensity))
		}
	}
}

func conditionsLine(c model.ClinicalInfo) string {
	if len(c.Conditions) == 0 {
		return "Ninguna especificada"
	}
	parts := make([]string, 0, len(c.Conditions))
	for _, cond := range c.Conditions {
		if cond == "Otra" && c.OtherCondition != "" {
			parts = append(parts, "Otra ("+c.OtherCondition+")")
			continue
		}
		parts = append(parts, cond)
	}
	return strings.Join(parts, ", ")
}

func medicationsLine(meds []model.Medication) string {
	if len(meds) == 0 {
		return "Ninguna especificada"
	}
	parts := make([]string, 0, len(meds))
	for _, m := range meds {
		desc := m.Name
		if m.Dose != "" {
			desc += " " + m.Dose
		}
		if m.Frequency != "" {
			desc += " (" + m.Frequency + ")"
		}
		parts = append(parts, desc)
	}
	return strings.Join(parts, ", ")
}

func sexLabel(s model.Sex) string {
	switch s {
	case model.SexFemale:
		return "Mujer"
	case model.SexMale:
		return "Hombre"
	default:
		return "No especificado"
	}
}

func mealLabel(m model.MealSlot) string {
	switch m {
	case model.MealBreakfast:
		return "Desayuno"
	case model.MealMidMorning:
		return "Media mañana"
	case model.MealLunch:
		return "Comida"
	case model.MealSnack:
		return "Merienda"
	case model.MealDinner:
		return "Cena"
	default:
		return string(m)
	}
}

func intensityLabel(i model.Intensity) string {
	switch i {
	case model.IntensityLight:
		return "ligera"
	case model.IntensityModerate:
		return "moderada"
	case model.IntensityIntense:
		return "intensa"
	case model.IntensityVeryIntense:
		return "muy intensa"
	default:
		return string(i)
	}
}

func labStatusLabel(status string) string {
	switch status {
	case "Normal":
		return "normal"
	case "Low":
		return "bajo"
	case "High":
		return "alto"
	default:
		return "sin referencia"
	}
}

func orNone(s string) string {
	if s == "" {
		return "Ninguna especificada"
	}
	return s
}

func tailFood(entries []model.FoodEntry, n int) []model.FoodEntry {
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}

func tailActivity(entries []model.ActivityEntry, n int) []model.ActivityEntry {
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}
