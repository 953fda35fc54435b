package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nutrifarma/advisor-api/internal/model"
)

func sampleRecord() model.PatientRecord {
	return model.PatientRecord{
		Profile: model.PatientProfile{
			Name: "María García", Age: 54, Sex: model.SexFemale, WeightKg: 70, HeightCm: 160,
		},
		Clinical: model.ClinicalInfo{
			Conditions:     []string{"Diabetes tipo 2", "Otra"},
			OtherCondition: "Gota",
			Allergies:      []string{"frutos secos"},
			Goal:           "control glucémico",
		},
		LabPanel: map[string]float64{"Glucosa": 150, "HDL": 55},
		Medications: []model.Medication{
			{Name: "metformina", Dose: "850 mg", Frequency: "2/día"},
		},
	}
}

func TestEveryFlowCarriesPreambleAndDisclaimer(t *testing.T) {
	record := sampleRecord()
	for _, flow := range []Flow{FlowQuery, FlowReport, FlowCoaching, FlowGuidelines} {
		out := Build(flow, record, "¿Qué puede desayunar?")
		assert.True(t, strings.HasPrefix(out, SystemPreamble), "flow %s must start with the preamble", flow)
		assert.Contains(t, out, ReferralDisclaimer, "flow %s", flow)
	}
}

func TestBuildContextContent(t *testing.T) {
	ctx := BuildContext(sampleRecord())

	assert.Contains(t, ctx, "- Nombre: María García")
	assert.Contains(t, ctx, "- Edad: 54 años")
	assert.Contains(t, ctx, "- Sexo: Mujer")
	assert.Contains(t, ctx, "- Peso: 70.0 kg")
	assert.Contains(t, ctx, "- Altura: 160 cm")
	assert.Contains(t, ctx, "- IMC: 27.3 (Overweight)")
	assert.Contains(t, ctx, "Diabetes tipo 2, Otra (Gota)")
	assert.Contains(t, ctx, "- Alergias: frutos secos")
	assert.Contains(t, ctx, "Glucosa: 150 mg/dL (alto)")
	assert.Contains(t, ctx, "HDL: 55 mg/dL (normal)")
	assert.Contains(t, ctx, "metformina 850 mg (2/día)")
}

func TestBuildContextIsDeterministic(t *testing.T) {
	record := sampleRecord()
	assert.Equal(t, BuildContext(record), BuildContext(record))
}

func TestBuildContextEmptyRecord(t *testing.T) {
	ctx := BuildContext(*model.NewPatientRecord())

	assert.Contains(t, ctx, "- Perfil incompleto")
	assert.Contains(t, ctx, "- Condiciones: Ninguna especificada")
	assert.Contains(t, ctx, "- Medicación: Ninguna especificada")
	assert.NotContains(t, ctx, "Analítica")
}

func TestQuestionOnlyOnQueryAndGuidelines(t *testing.T) {
	record := sampleRecord()
	question := "¿Conviene suplementar vitamina D?"

	assert.Contains(t, Build(FlowQuery, record, question), question)
	assert.Contains(t, Build(FlowGuidelines, record, question), question)
	assert.NotContains(t, Build(FlowReport, record, question), question)
	assert.NotContains(t, Build(FlowCoaching, record, question), question)
}

func TestBuildDoesNotMutateRecord(t *testing.T) {
	record := sampleRecord()
	before := BuildContext(record)
	_ = Build(FlowReport, record, "")
	assert.Equal(t, before, BuildContext(record))
	assert.Len(t, record.LabPanel, 2)
}
