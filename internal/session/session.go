package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nutrifarma/advisor-api/internal/model"
	"github.com/nutrifarma/advisor-api/internal/refdata"
	"github.com/nutrifarma/advisor-api/internal/vitals"
)

// Session owns one patient record for the lifetime of an interactive
// session. All mutations replace a whole batch of related fields under
// the lock, so readers never observe a half-written batch.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu     sync.Mutex
	record *model.PatientRecord
}

func newSession() *Session {
	return &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		record:    model.NewPatientRecord(),
	}
}

// SaveProfile atomically replaces the demographics batch.
func (s *Session) SaveProfile(req model.SaveProfileRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record.Profile = model.PatientProfile{
		Name:     req.Name,
		Age:      req.Age,
		Sex:      req.Sex,
		WeightKg: req.WeightKg,
		HeightCm: req.HeightCm,
	}
}

// SaveClinical atomically replaces conditions, allergies and goal.
// Conditions outside the enumerated list are kept under "Otra".
func (s *Session) SaveClinical(req model.SaveClinicalRequest) {
	conditions := make([]string, 0, len(req.Conditions))
	other := req.OtherCondition
	for _, c := range req.Conditions {
		if refdata.IsKnownCondition(c) {
			conditions = append(conditions, c)
			continue
		}
		if other == "" {
			other = c
		}
		if !contains(conditions, refdata.ConditionOther) {
			conditions = append(conditions, refdata.ConditionOther)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.record.Clinical = model.ClinicalInfo{
		Conditions:     conditions,
		OtherCondition: other,
		Allergies:      trimEmpty(req.Allergies),
		Goal:           req.Goal,
	}
}

// SaveLabPanel replaces the lab panel. Non-positive values are dropped
// before commit: zero means "not measured", never a literal reading.
// Note this also discards a genuine zero measurement; kept because no
// recognized parameter has a clinically possible zero.
func (s *Session) SaveLabPanel(values map[string]float64) {
	panel := make(map[string]float64, len(values))
	for param, v := range values {
		if v > 0 {
			panel[param] = v
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.record.LabPanel = panel
}

// SaveLifestyle atomically replaces the psychosocial batch.
func (s *Session) SaveLifestyle(req model.SaveLifestyleRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record.Lifestyle = model.Lifestyle{
		Employment:    req.Employment,
		SleepHours:    req.SleepHours,
		StageOfChange: req.StageOfChange,
		Barriers:      trimEmpty(req.Barriers),
		SmartGoal:     req.SmartGoal,
	}
}

// AddMedication appends to the medication list and returns the stored item.
func (s *Session) AddMedication(req model.AddMedicationRequest) model.Medication {
	med := model.Medication{
		ID:        uuid.New(),
		Name:      req.Name,
		Dose:      req.Dose,
		Frequency: req.Frequency,
		Reason:    req.Reason,
		AddedAt:   time.Now(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record.Medications = append(s.record.Medications, med)
	return med
}

// RemoveMedication removes one item by ID; reports whether it existed.
func (s *Session) RemoveMedication(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.record.Medications {
		if m.ID == id {
			s.record.Medications = append(s.record.Medications[:i], s.record.Medications[i+1:]...)
			return true
		}
	}
	return false
}

// AddFoodEntry appends to the food log and returns the stored entry.
func (s *Session) AddFoodEntry(req model.AddFoodEntryRequest) model.FoodEntry {
	entry := model.FoodEntry{
		ID:          uuid.New(),
		Date:        req.Date,
		Time:        req.Time,
		Meal:        req.Meal,
		Description: req.Description,
		Quantity:    req.Quantity,
		LoggedAt:    time.Now(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record.FoodLog = append(s.record.FoodLog, entry)
	return entry
}

func (s *Session) RemoveFoodEntry(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.record.FoodLog {
		if e.ID == id {
			s.record.FoodLog = append(s.record.FoodLog[:i], s.record.FoodLog[i+1:]...)
			return true
		}
	}
	return false
}

// AddActivityEntry appends to the activity log and returns the stored entry.
func (s *Session) AddActivityEntry(req model.AddActivityEntryRequest) model.ActivityEntry {
	entry := model.ActivityEntry{
		ID:              uuid.New(),
		Date:            req.Date,
		Activity:        req.Activity,
		DurationMinutes: req.DurationMinutes,
		Intensity:       req.Intensity,
		Notes:           req.Notes,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record.ActivityLog = append(s.record.ActivityLog, entry)
	return entry
}

func (s *Session) RemoveActivityEntry(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.record.ActivityLog {
		if e.ID == id {
			s.record.ActivityLog = append(s.record.ActivityLog[:i], s.record.ActivityLog[i+1:]...)
			return true
		}
	}
	return false
}

// Reset clears the record, food log and activity log back to the
// initial empty state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = model.NewPatientRecord()
}

// Snapshot returns a deep copy of the record, safe to read and render
// without holding the session lock.
func (s *Session) Snapshot() model.PatientRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := model.PatientRecord{
		Profile:   s.record.Profile,
		Clinical:  s.record.Clinical,
		Lifestyle: s.record.Lifestyle,
		LabPanel:  make(map[string]float64, len(s.record.LabPanel)),
	}
	snap.Clinical.Conditions = append([]string(nil), s.record.Clinical.Conditions...)
	snap.Clinical.Allergies = append([]string(nil), s.record.Clinical.Allergies...)
	snap.Lifestyle.Barriers = append([]string(nil), s.record.Lifestyle.Barriers...)
	for k, v := range s.record.LabPanel {
		snap.LabPanel[k] = v
	}
	snap.Medications = append([]model.Medication(nil), s.record.Medications...)
	snap.FoodLog = append([]model.FoodEntry(nil), s.record.FoodLog...)
	snap.ActivityLog = append([]model.ActivityEntry(nil), s.record.ActivityLog...)
	return snap
}

// View builds the read model: snapshot plus recomputed BMI and lab
// classifications, logs grouped by date.
func (s *Session) View() model.RecordView {
	snap := s.Snapshot()

	view := model.RecordView{
		Profile:     snap.Profile,
		Clinical:    snap.Clinical,
		Lifestyle:   snap.Lifestyle,
		Medications: snap.Medications,
		Labs:        LabResults(snap.LabPanel),
		FoodLog:     GroupFoodByDate(snap.FoodLog),
		ActivityLog: GroupActivityByDate(snap.ActivityLog),
	}

	if bmi, err := vitals.ComputeBMI(snap.Profile.WeightKg, snap.Profile.HeightCm); err == nil {
		cls := vitals.ClassifyBMI(bmi)
		view.BMI = &model.BMIView{Value: bmi, Label: cls.Label, Tier: string(cls.Tier)}
	}
	return view
}

// LabResults classifies every measured value, sorted by parameter name
// for deterministic output.
func LabResults(panel map[string]float64) []model.LabResult {
	results := make([]model.LabResult, 0, len(panel))
	for param, v := range panel {
		res := model.LabResult{
			Parameter: param,
			Value:     v,
			Status:    string(vitals.ClassifyLab(param, v)),
		}
		if ref, ok := refdata.RangeFor(param); ok {
			res.Unit = ref.Unit
		}
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Parameter < results[j].Parameter })
	return results
}

// GroupFoodByDate buckets entries per calendar date, dates ascending,
// entries in insertion order within a date.
func GroupFoodByDate(entries []model.FoodEntry) []model.FoodDay {
	byDate := make(map[string][]model.FoodEntry)
	for _, e := range entries {
		byDate[e.Date] = append(byDate[e.Date], e)
	}
	days := make([]model.FoodDay, 0, len(byDate))
	for date, list := range byDate {
		days = append(days, model.FoodDay{Date: date, Entries: list})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// GroupActivityByDate buckets activity entries per calendar date.
func GroupActivityByDate(entries []model.ActivityEntry) []model.ActivityDay {
	byDate := make(map[string][]model.ActivityEntry)
	for _, e := range entries {
		byDate[e.Date] = append(byDate[e.Date], e)
	}
	days := make([]model.ActivityDay, 0, len(byDate))
	for date, list := range byDate {
		days = append(days, model.ActivityDay{Date: date, Entries: list})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

func trimEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func contains(list []string, target string) bool {
	for _, v := range list {
		if v == target {
			return true
		}
	}
	return false
}
