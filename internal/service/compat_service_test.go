package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TOULI-R/rentiva-backend-sub000/internal/compat"
	"github.com/TOULI-R/rentiva-backend-sub000/internal/model"
)

func intPtr(n int) *int { return &n }

func newCompatFixture(t *testing.T) (*CompatService, *memPropertyRepo, *memEventRepo, *memStatsCache) {
	t.Helper()
	propertyRepo := newMemPropertyRepo()
	eventRepo := newMemEventRepo()
	stats := newMemStatsCache()
	events := NewEventService(eventRepo)
	return NewCompatService(propertyRepo, stats, events), propertyRepo, eventRepo, stats
}

func seedProperty(t *testing.T, repo *memPropertyRepo, prefs compat.OwnerPrefs) *model.Property {
	t.Helper()
	property := &model.Property{
		ID:         "prop_test1",
		LandlordID: "landlord_test1",
		Title:      "Test flat",
		City:       "Valencia",
		Price:      900,
		Bedrooms:   2,
		Prefs:      prefs,
	}
	require.NoError(t, repo.Create(context.Background(), property))
	return property
}

func TestCompatServiceCheck(t *testing.T) {
	svc, propertyRepo, eventRepo, stats := newCompatFixture(t)
	prefs := compat.DefaultOwnerPrefs()
	prefs.Smoking = compat.ChoiceNo
	prefs.MaxOccupants = intPtr(2)
	property := seedProperty(t, propertyRepo, prefs)

	result, err := svc.Check(context.Background(), property.ID, map[string]interface{}{
		"smoking":   "yes",
		"occupants": 3.0,
	})
	require.NoError(t, err)
	assert.Equal(t, 35, result.Score) // 100 - 35 - 30
	assert.Len(t, result.Conflicts, 2)

	// The check lands on the timeline and in the stats.
	events, err := eventRepo.ListByProperty(context.Background(), property.ID, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, model.EventCompatibilityChecked, events[0].Type)
	assert.Equal(t, 35, events[0].Payload["score"])

	recorded, err := stats.Get(context.Background(), property.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), recorded.Checks)
	assert.Equal(t, float64(35), recorded.AverageScore)
	assert.Equal(t, int64(1), recorded.Conflicts[compat.DimSmoking])
	assert.Equal(t, int64(1), recorded.Conflicts[compat.DimOccupants])
	assert.Equal(t, int64(0), recorded.Conflicts[compat.DimPets])
}

func TestCompatServiceCheckRequiresPreferences(t *testing.T) {
	svc, propertyRepo, _, _ := newCompatFixture(t)
	property := seedProperty(t, propertyRepo, compat.DefaultOwnerPrefs())

	_, err := svc.Check(context.Background(), property.ID, map[string]interface{}{"smoking": "no"})
	assert.ErrorIs(t, err, ErrNoPreferences)
}

func TestCompatServiceCheckUnknownProperty(t *testing.T) {
	svc, _, _, _ := newCompatFixture(t)

	_, err := svc.Check(context.Background(), "prop_missing", nil)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestCompatServiceCheckDeletedProperty(t *testing.T) {
	svc, propertyRepo, _, _ := newCompatFixture(t)
	prefs := compat.DefaultOwnerPrefs()
	prefs.Pets = compat.ChoiceNo
	property := seedProperty(t, propertyRepo, prefs)
	require.NoError(t, propertyRepo.SoftDelete(context.Background(), property.ID))

	_, err := svc.Check(context.Background(), property.ID, nil)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestCompatServiceCheckInvalidAnswers(t *testing.T) {
	svc, propertyRepo, eventRepo, _ := newCompatFixture(t)
	prefs := compat.DefaultOwnerPrefs()
	prefs.Smoking = compat.ChoiceNo
	property := seedProperty(t, propertyRepo, prefs)

	_, err := svc.Check(context.Background(), property.ID, map[string]interface{}{"smoking": "maybe"})
	var invalid *compat.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "smoking", invalid.Field)

	// A rejected payload must not leave a timeline trace.
	events, err := eventRepo.ListByProperty(context.Background(), property.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestCompatServiceStatsOwnership(t *testing.T) {
	svc, propertyRepo, _, _ := newCompatFixture(t)
	prefs := compat.DefaultOwnerPrefs()
	prefs.Smoking = compat.ChoiceNo
	property := seedProperty(t, propertyRepo, prefs)

	_, err := svc.Stats(context.Background(), "landlord_other", property.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	stats, err := svc.Stats(context.Background(), property.LandlordID, property.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Checks)
}
