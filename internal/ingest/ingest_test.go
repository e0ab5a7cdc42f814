package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"balboa-parking-backend/config"
	"balboa-parking-backend/internal/db"
	"balboa-parking-backend/internal/model"
	"balboa-parking-backend/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(testDB))
	t.Cleanup(func() {
		sqlDB, _ := testDB.DB()
		sqlDB.Close()
	})
	return store.NewGormStore(testDB)
}

const feedDocument = `{
	"lots": [
		{
			"id": "lot-1",
			"slug": "organ-pavilion",
			"name": "Organ Pavilion",
			"displayName": "Organ Pavilion Lot",
			"lat": 32.729,
			"lng": -117.149,
			"hasTramStop": true,
			"specialRules": [
				{"description": "First 2 hours free", "freeMinutes": 120, "effectiveDate": "2026-01-01"}
			],
			"tierHistory": [
				{"tier": 2, "effectiveDate": "2026-01-05", "endDate": "2026-02-28"},
				{"tier": 1, "effectiveDate": "2026-03-01"},
				{"tier": 9, "effectiveDate": "2026-04-01"}
			]
		},
		{
			"id": "", "slug": "orphan", "name": "No ID"
		}
	]
}`

func TestSyncOnce(t *testing.T) {
	requestedPaths := []string{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPaths = append(requestedPaths, r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, feedDocument)
	}))
	defer server.Close()

	appStore := newTestStore(t)
	cfg := &config.Config{Ingest: config.IngestConfig{
		Enabled: true,
		URL:     server.URL + "/feed.json",
		Headers: map[string]string{"X-Api-Key": "secret"},
	}}

	svc := NewService(cfg, appStore)
	svc.SyncOnce(context.Background())

	require.Equal(t, []string{"/feed.json"}, requestedPaths)

	lots, err := appStore.Lots(context.Background())
	require.NoError(t, err)
	// The lot with a missing id is skipped.
	require.Len(t, lots, 1)
	assert.Equal(t, "organ-pavilion", lots[0].Slug)
	assert.True(t, lots[0].HasTramStop)
	require.Len(t, lots[0].SpecialRules, 1)
	assert.Equal(t, 120, lots[0].SpecialRules[0].FreeMinutes)

	var assignments []model.LotTierAssignment
	require.NoError(t, appStore.DB().Order("effective_date").Find(&assignments).Error)
	// The invalid tier 9 entry is skipped; the valid timeline survives.
	require.Len(t, assignments, 2)
	assert.Equal(t, model.TierStandard, assignments[0].Tier)
	assert.Equal(t, model.TierPremium, assignments[1].Tier)
}

func TestSyncOnceReplacesTimeline(t *testing.T) {
	doc := feedDocument
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, doc)
	}))
	defer server.Close()

	appStore := newTestStore(t)
	cfg := &config.Config{Ingest: config.IngestConfig{Enabled: true, URL: server.URL}}
	svc := NewService(cfg, appStore)

	svc.SyncOnce(context.Background())

	// Second sync with a rewritten history must not accumulate rows.
	doc = `{"lots": [{"id": "lot-1", "slug": "organ-pavilion", "name": "Organ Pavilion",
		"displayName": "Organ Pavilion Lot",
		"tierHistory": [{"tier": 1, "effectiveDate": "2026-01-05"}]}]}`
	svc.SyncOnce(context.Background())

	var assignments []model.LotTierAssignment
	require.NoError(t, appStore.DB().Find(&assignments).Error)
	require.Len(t, assignments, 1)
	assert.Equal(t, model.TierPremium, assignments[0].Tier)
}

func TestSyncOnceUpstreamErrorLeavesCatalogUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer server.Close()

	appStore := newTestStore(t)
	require.NoError(t, appStore.ReplaceLots(context.Background(),
		[]model.ParkingLot{{ID: "lot-1", Slug: "existing", Name: "Existing", DisplayName: "Existing Lot"}},
		nil))

	cfg := &config.Config{Ingest: config.IngestConfig{Enabled: true, URL: server.URL}}
	svc := NewService(cfg, appStore)
	svc.SyncOnce(context.Background())

	lots, err := appStore.Lots(context.Background())
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, "existing", lots[0].Slug)
}

func TestToModelsEmptyFeed(t *testing.T) {
	feed := &Feed{}
	lots, assignments := feed.toModels(time.Now().UTC())
	assert.Empty(t, lots)
	assert.Empty(t, assignments)
}
