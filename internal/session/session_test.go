package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrifarma/advisor-api/internal/model"
)

func testSession() *Session {
	return newSession()
}

func TestSaveProfileReplacesBatch(t *testing.T) {
	s := testSession()
	s.SaveProfile(model.SaveProfileRequest{
		Name: "María García", Age: 54, Sex: model.SexFemale, WeightKg: 70, HeightCm: 160,
	})
	s.SaveProfile(model.SaveProfileRequest{
		Name: "María García", Age: 55, Sex: model.SexFemale, WeightKg: 68, HeightCm: 160,
	})

	snap := s.Snapshot()
	assert.Equal(t, 55, snap.Profile.Age)
	assert.Equal(t, 68.0, snap.Profile.WeightKg)
}

func TestSaveLabPanelDropsNonPositiveValues(t *testing.T) {
	s := testSession()
	s.SaveLabPanel(map[string]float64{
		"Glucosa": 0,
		"HDL":     55,
	})

	snap := s.Snapshot()
	require.Len(t, snap.LabPanel, 1)
	assert.Equal(t, 55.0, snap.LabPanel["HDL"])
	_, present := snap.LabPanel["Glucosa"]
	assert.False(t, present, "zero reading must be absent, not stored")
}

func TestSaveLabPanelReplacesPreviousPanel(t *testing.T) {
	s := testSession()
	s.SaveLabPanel(map[string]float64{"Glucosa": 95, "HDL": 55})
	s.SaveLabPanel(map[string]float64{"Ferritina": 80})

	snap := s.Snapshot()
	require.Len(t, snap.LabPanel, 1)
	assert.Equal(t, 80.0, snap.LabPanel["Ferritina"])
}

func TestSaveClinicalRoutesUnknownConditionToOther(t *testing.T) {
	s := testSession()
	s.SaveClinical(model.SaveClinicalRequest{
		Conditions: []string{"Hipertensión", "Gota"},
		Allergies:  []string{"frutos secos", ""},
		Goal:       "bajar colesterol",
	})

	snap := s.Snapshot()
	assert.Equal(t, []string{"Hipertensión", "Otra"}, snap.Clinical.Conditions)
	assert.Equal(t, "Gota", snap.Clinical.OtherCondition)
	assert.Equal(t, []string{"frutos secos"}, snap.Clinical.Allergies)
}

func TestMedicationAddRemove(t *testing.T) {
	s := testSession()
	med := s.AddMedication(model.AddMedicationRequest{
		Name: "metformina", Dose: "850 mg", Frequency: "2/día", Reason: "diabetes",
	})
	s.AddMedication(model.AddMedicationRequest{Name: "enalapril"})

	assert.Len(t, s.Snapshot().Medications, 2)
	assert.True(t, s.RemoveMedication(med.ID))
	assert.False(t, s.RemoveMedication(med.ID), "second removal finds nothing")

	meds := s.Snapshot().Medications
	require.Len(t, meds, 1)
	assert.Equal(t, "enalapril", meds[0].Name)
}

func TestRemoveUnknownEntry(t *testing.T) {
	s := testSession()
	assert.False(t, s.RemoveFoodEntry(uuid.New()))
	assert.False(t, s.RemoveActivityEntry(uuid.New()))
}

func TestResetClearsEverything(t *testing.T) {
	s := testSession()
	s.SaveProfile(model.SaveProfileRequest{
		Name: "Luis", Age: 40, Sex: model.SexMale, WeightKg: 80, HeightCm: 180,
	})
	s.SaveLabPanel(map[string]float64{"Glucosa": 95})
	s.AddMedication(model.AddMedicationRequest{Name: "simvastatina"})
	s.AddFoodEntry(model.AddFoodEntryRequest{
		Date: "2026-08-27", Time: "09:00", Meal: model.MealBreakfast, Description: "tostada",
	})
	s.AddActivityEntry(model.AddActivityEntryRequest{
		Date: "2026-08-27", Activity: "caminar", DurationMinutes: 30, Intensity: model.IntensityLight,
	})

	s.Reset()

	snap := s.Snapshot()
	assert.False(t, snap.HasProfile())
	assert.Empty(t, snap.LabPanel)
	assert.Empty(t, snap.Medications)
	assert.Empty(t, snap.FoodLog)
	assert.Empty(t, snap.ActivityLog)
}

func TestSnapshotIsDetached(t *testing.T) {
	s := testSession()
	s.SaveLabPanel(map[string]float64{"HDL": 55})
	snap := s.Snapshot()
	snap.LabPanel["HDL"] = 1

	assert.Equal(t, 55.0, s.Snapshot().LabPanel["HDL"])
}

func TestViewRecomputesBMIAndLabs(t *testing.T) {
	s := testSession()
	s.SaveProfile(model.SaveProfileRequest{
		Name: "Ana", Age: 35, Sex: model.SexFemale, WeightKg: 70, HeightCm: 175,
	})
	s.SaveLabPanel(map[string]float64{"Glucosa": 150, "HDL": 55})

	view := s.View()
	require.NotNil(t, view.BMI)
	assert.Equal(t, 22.9, view.BMI.Value)
	assert.Equal(t, "Normal", view.BMI.Label)

	require.Len(t, view.Labs, 2)
	// sorted by parameter name
	assert.Equal(t, "Glucosa", view.Labs[0].Parameter)
	assert.Equal(t, "High", view.Labs[0].Status)
	assert.Equal(t, "HDL", view.Labs[1].Parameter)
	assert.Equal(t, "Normal", view.Labs[1].Status)
}

func TestViewWithoutProfileHasNoBMI(t *testing.T) {
	s := testSession()
	assert.Nil(t, s.View().BMI)
}

func TestGroupFoodByDate(t *testing.T) {
	s := testSession()
	s.AddFoodEntry(model.AddFoodEntryRequest{
		Date: "2026-08-27", Time: "14:00", Meal: model.MealLunch, Description: "lentejas",
	})
	s.AddFoodEntry(model.AddFoodEntryRequest{
		Date: "2026-08-26", Time: "09:00", Meal: model.MealBreakfast, Description: "avena",
	})
	s.AddFoodEntry(model.AddFoodEntryRequest{
		Date: "2026-08-27", Time: "21:00", Meal: model.MealDinner, Description: "merluza",
	})

	days := GroupFoodByDate(s.Snapshot().FoodLog)
	require.Len(t, days, 2)
	assert.Equal(t, "2026-08-26", days[0].Date)
	assert.Equal(t, "2026-08-27", days[1].Date)
	require.Len(t, days[1].Entries, 2)
	assert.Equal(t, "lentejas", days[1].Entries[0].Description)
	assert.Equal(t, "merluza", days[1].Entries[1].Description)
}

func TestStoreLifecycle(t *testing.T) {
	store := NewStore(time.Minute)
	sess := store.Create()

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)
	assert.Equal(t, 1, store.Count())

	store.Delete(sess.ID)
	_, err = store.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreUnknownSession(t *testing.T) {
	store := NewStore(time.Minute)
	_, err := store.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
