package model

import (
	"time"

	"github.com/google/uuid"
)

type MealSlot string

const (
	MealBreakfast  MealSlot = "breakfast"
	MealMidMorning MealSlot = "mid_morning"
	MealLunch      MealSlot = "lunch"
	MealSnack      MealSlot = "snack"
	MealDinner     MealSlot = "dinner"
)

// Intensity is an ordered scale; higher values mean harder effort.
type Intensity string

const (
	IntensityLight       Intensity = "light"
	IntensityModerate    Intensity = "moderate"
	IntensityIntense     Intensity = "intense"
	IntensityVeryIntense Intensity = "very_intense"
)

var intensityOrder = map[Intensity]int{
	IntensityLight:       0,
	IntensityModerate:    1,
	IntensityIntense:     2,
	IntensityVeryIntense: 3,
}

// Level returns the position of the intensity on the ordered scale, or
// -1 for an unknown value.
func (i Intensity) Level() int {
	if lvl, ok := intensityOrder[i]; ok {
		return lvl
	}
	return -1
}

// FoodEntry is one logged meal line.
type FoodEntry struct {
	ID          uuid.UUID `json:"id"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Time        string    `json:"time"` // HH:MM
	Meal        MealSlot  `json:"meal"`
	Description string    `json:"description"`
	Quantity    string    `json:"quantity"`
	LoggedAt    time.Time `json:"logged_at"`
}

// ActivityEntry is one logged physical-activity line.
type ActivityEntry struct {
	ID              uuid.UUID `json:"id"`
	Date            string    `json:"date"` // YYYY-MM-DD
	Activity        string    `json:"activity"`
	DurationMinutes int       `json:"duration_minutes"`
	Intensity       Intensity `json:"intensity"`
	Notes           string    `json:"notes,omitempty"`
}

// FoodDay groups food entries for display, one group per calendar date.
type FoodDay struct {
	Date    string      `json:"date"`
	Entries []FoodEntry `json:"entries"`
}

// ActivityDay groups activity entries for display.
type ActivityDay struct {
	Date    string          `json:"date"`
	Entries []ActivityEntry `json:"entries"`
}

type AddFoodEntryRequest struct {
	Date        string   `json:"date" binding:"required,datetime=2006-01-02"`
	Time        string   `json:"time" binding:"required,datetime=15:04"`
	Meal        MealSlot `json:"meal" binding:"required,oneof=breakfast mid_morning lunch snack dinner"`
	Description string   `json:"description" binding:"required"`
	Quantity    string   `json:"quantity"`
}

type AddActivityEntryRequest struct {
	Date            string    `json:"date" binding:"required,datetime=2006-01-02"`
	Activity        string    `json:"activity" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,min=1,max=300"`
	Intensity       Intensity `json:"intensity" binding:"required,oneof=light moderate intense very_intense"`
	Notes           string    `json:"notes"`
}
