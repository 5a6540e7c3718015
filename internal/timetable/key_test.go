package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oti-labs/studify-api/internal/models"
)

func strPtr(v string) *string { return &v }

func weekTypePtr(v models.WeekType) *models.WeekType { return &v }

func TestDeriveKeyDeterministic(t *testing.T) {
	lesson := models.OfficialLesson{
		Day:       models.Monday,
		TimeRange: "9:00-10:30",
		Subject:   "Databases",
		Type:      strPtr("Lecture"),
		WeekType:  weekTypePtr(models.WeekTypeOdd),
	}
	require.Equal(t, DeriveKey(lesson), DeriveKey(lesson))
	assert.Len(t, DeriveKey(lesson), 40, "sha1 hex digest")
}

func TestDeriveKeyStableUnderFormattingNoise(t *testing.T) {
	base := models.OfficialLesson{Day: models.Monday, TimeRange: "9:00-10:30", Subject: "Databases"}

	variants := []models.OfficialLesson{
		{Day: models.Monday, TimeRange: "9:00 - 10:30", Subject: "Databases"},
		{Day: models.Monday, TimeRange: "9:00–10:30", Subject: "Databases"},
		{Day: models.Monday, TimeRange: "9:00 — 10:30", Subject: "Databases"},
		{Day: " MONDAY ", TimeRange: "9:00-10:30", Subject: "  databases "},
	}
	for _, v := range variants {
		assert.Equal(t, DeriveKey(base), DeriveKey(v), "variant %+v", v)
	}
}

func TestDeriveKeyChangesWithContent(t *testing.T) {
	base := models.OfficialLesson{Day: models.Monday, TimeRange: "9:00-10:30", Subject: "Databases"}
	changed := []models.OfficialLesson{
		{Day: models.Tuesday, TimeRange: "9:00-10:30", Subject: "Databases"},
		{Day: models.Monday, TimeRange: "9:00-10:35", Subject: "Databases"},
		{Day: models.Monday, TimeRange: "9:00-10:30", Subject: "Networks"},
		{Day: models.Monday, TimeRange: "9:00-10:30", Subject: "Databases", Type: strPtr("Lab")},
		{Day: models.Monday, TimeRange: "9:00-10:30", Subject: "Databases", WeekType: weekTypePtr(models.WeekTypeEven)},
	}
	for _, c := range changed {
		assert.NotEqual(t, DeriveKey(base), DeriveKey(c), "changed %+v", c)
	}
}

func TestDeriveKeyMatchesUserLessonView(t *testing.T) {
	entity := models.UserLesson{
		ID:        7,
		Day:       models.Friday,
		StartTime: "14:00",
		EndTime:   "15:30",
		Subject:   "Economics",
	}
	direct := DeriveKey(entity.AsOfficial())

	// Editing fields outside the identity tuple keeps the key.
	entity.Notes = strPtr("bring calculator")
	entity.Room = strPtr("214")
	assert.Equal(t, direct, DeriveKey(entity.AsOfficial()))
}
