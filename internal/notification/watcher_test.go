package notification

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"balboa-parking-backend/internal/db"
	"balboa-parking-backend/internal/engine"
	"balboa-parking-backend/internal/model"
	"balboa-parking-backend/internal/store"
)

func newWatcherFixture(t *testing.T) (*Watcher, *WorkerPool, *time.Location) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(testDB))
	t.Cleanup(func() {
		sqlDB, _ := testDB.DB()
		sqlDB.Close()
	})

	require.NoError(t, testDB.Create(&model.ParkingLot{
		ID: "lot-paid", Slug: "paid", Name: "Paid", DisplayName: "Paid Lot",
	}).Error)
	require.NoError(t, testDB.Create(&model.ParkingLot{
		ID: "lot-free", Slug: "free", Name: "Free", DisplayName: "Free Lot",
	}).Error)
	require.NoError(t, testDB.Create(&model.LotTierAssignment{
		LotID: "lot-paid", Tier: model.TierPremium, EffectiveDate: "2026-01-05",
	}).Error)
	require.NoError(t, testDB.Create(&model.EnforcementPeriod{
		StartTime: "08:00", EndTime: "18:00", DaysOfWeek: []int{0, 1, 2, 3, 4, 5, 6},
		EffectiveDate: "2026-01-05",
	}).Error)

	appStore := store.NewGormStore(testDB)
	eng := engine.New(nil, engine.RankWeights{})
	// Workers are never started: tests read the jobs channel directly.
	pool := NewWorkerPool(8, testDB, nil)
	watcher := NewWatcher(appStore, eng, pool, time.Minute)

	loc, err := time.LoadLocation(engine.DefaultTimeZone)
	require.NoError(t, err)
	return watcher, pool, loc
}

func drainJobs(pool *WorkerPool) []string {
	var jobs []string
	for {
		select {
		case job := <-pool.Jobs():
			jobs = append(jobs, job)
		default:
			return jobs
		}
	}
}

func TestWatcherDispatchesWhenEnforcementEnds(t *testing.T) {
	watcher, pool, loc := newWatcherFixture(t)
	ctx := context.Background()

	// During enforcement: nothing yet.
	watcher.Tick(ctx, time.Date(2026, 1, 7, 17, 59, 0, 0, loc))
	assert.Empty(t, drainJobs(pool))

	// The window just closed: only the paid lot gets a job.
	watcher.Tick(ctx, time.Date(2026, 1, 7, 18, 0, 0, 0, loc))
	assert.Equal(t, []string{"lot-paid"}, drainJobs(pool))

	// Still inactive: no repeat notifications.
	watcher.Tick(ctx, time.Date(2026, 1, 7, 18, 1, 0, 0, loc))
	assert.Empty(t, drainJobs(pool))
}

func TestWatcherFirstObservationNeverDispatches(t *testing.T) {
	watcher, pool, loc := newWatcherFixture(t)

	// First tick lands outside enforcement; with no prior observation there
	// is no transition to report.
	watcher.Tick(context.Background(), time.Date(2026, 1, 7, 19, 0, 0, 0, loc))
	assert.Empty(t, drainJobs(pool))
}
