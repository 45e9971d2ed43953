package pending

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chungjai123/food-bot/internal/domain"
	"github.com/chungjai123/food-bot/internal/pkg/logger"
	"github.com/chungjai123/food-bot/internal/ports/persistence"
)

type fakeHistoryRepo struct {
	mu        sync.Mutex
	records   []*domain.HistoryRecord
	appendErr error
	nextID    int64
}

func (f *fakeHistoryRepo) Append(_ context.Context, record *domain.HistoryRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.nextID++
	record.ID = f.nextID
	f.records = append(f.records, record)
	return nil
}

func (f *fakeHistoryRepo) Recent(context.Context, int64, int) ([]domain.HistoryRecord, error) {
	return nil, nil
}

func (f *fakeHistoryRepo) TotalCalories(context.Context, int64) (float64, error) {
	return 0, nil
}

func (f *fakeHistoryRepo) DeleteByUser(context.Context, int64) (int64, error) {
	return 0, nil
}

func (f *fakeHistoryRepo) DeleteByUserTx(context.Context, persistence.Transaction, int64) (int64, error) {
	return 0, nil
}

const (
	analysisA = "🍽️Recognized: Fried rice\n💪Protein: 12g 🥔Carbs: 60g 🧈Fat: 14g 🍬Sugar: 3g\n🔥Calories: 420 kcal"
	analysisB = "🍽️Recognized: Green salad\n💪Protein: 4g 🥔Carbs: 10g 🧈Fat: 7g 🍬Sugar: 5g\n🔥Calories: 120 kcal\nAdd some protein."
)

func TestPutOverwritesAndSaveKeepsLatest(t *testing.T) {
	ctx := context.Background()
	repo := &fakeHistoryRepo{}
	r := New(repo, logger.Discard())

	first := r.Put(1, 100, analysisA)
	second := r.Put(1, 100, analysisB)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 1, r.Len())

	entry, record, err := r.Resolve(ctx, 1, domain.DecisionSave)
	require.NoError(t, err)
	assert.Equal(t, second.ID, entry.ID)

	require.Len(t, repo.records, 1)
	assert.Equal(t, record, repo.records[0])
	assert.Equal(t, "Green salad", record.Recognized)
	assert.Equal(t, 120.0, record.Calories)
	assert.Equal(t, "Add some protein.", record.Tips)
	assert.Equal(t, analysisB, record.FullText)
	assert.Equal(t, second.CreatedAt, record.CreatedAt)
	require.NotNil(t, record.AnalysisID)
	assert.Equal(t, second.ID, *record.AnalysisID)
}

func TestResolveExactlyOnce(t *testing.T) {
	ctx := context.Background()
	repo := &fakeHistoryRepo{}
	r := New(repo, logger.Discard())

	r.Put(1, 100, analysisA)
	_, _, err := r.Resolve(ctx, 1, domain.DecisionSave)
	require.NoError(t, err)

	_, _, err = r.Resolve(ctx, 1, domain.DecisionSave)
	assert.ErrorIs(t, err, domain.ErrNoPendingEntry)
	_, _, err = r.Resolve(ctx, 1, domain.DecisionDiscard)
	assert.ErrorIs(t, err, domain.ErrNoPendingEntry)

	assert.Len(t, repo.records, 1)
}

func TestConcurrentResolveSavesOnce(t *testing.T) {
	ctx := context.Background()
	repo := &fakeHistoryRepo{}
	r := New(repo, logger.Discard())
	r.Put(1, 100, analysisA)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := r.Resolve(ctx, 1, domain.DecisionSave); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Len(t, repo.records, 1)
}

func TestDiscardWritesNothing(t *testing.T) {
	ctx := context.Background()
	repo := &fakeHistoryRepo{}
	r := New(repo, logger.Discard())

	r.Put(1, 100, analysisA)
	entry, record, err := r.Resolve(ctx, 1, domain.DecisionDiscard)
	require.NoError(t, err)
	assert.NotNil(t, entry)
	assert.Nil(t, record)
	assert.Empty(t, repo.records)
	assert.Zero(t, r.Len())
}

func TestResolveWithoutEntry(t *testing.T) {
	r := New(&fakeHistoryRepo{}, logger.Discard())

	_, _, err := r.Resolve(context.Background(), 42, domain.DecisionSave)
	assert.ErrorIs(t, err, domain.ErrNoPendingEntry)
}

func TestResolveUnknownDecision(t *testing.T) {
	r := New(&fakeHistoryRepo{}, logger.Discard())
	r.Put(1, 100, analysisA)

	_, _, err := r.Resolve(context.Background(), 1, domain.Decision("maybe"))
	require.Error(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestAppendFailureReinstatesEntry(t *testing.T) {
	ctx := context.Background()
	repo := &fakeHistoryRepo{appendErr: errors.New("database is locked")}
	r := New(repo, logger.Discard())

	put := r.Put(1, 100, analysisA)
	_, _, err := r.Resolve(ctx, 1, domain.DecisionSave)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoPendingEntry)

	entry, ok := r.Get(1)
	require.True(t, ok)
	assert.Equal(t, put.ID, entry.ID)

	repo.appendErr = nil
	_, record, err := r.Resolve(ctx, 1, domain.DecisionSave)
	require.NoError(t, err)
	assert.Equal(t, int64(1), record.ID)
}

func TestUsersDoNotShareSlots(t *testing.T) {
	ctx := context.Background()
	repo := &fakeHistoryRepo{}
	r := New(repo, logger.Discard())

	r.Put(1, 100, analysisA)
	r.Put(2, 200, analysisB)

	_, _, err := r.Resolve(ctx, 2, domain.DecisionDiscard)
	require.NoError(t, err)

	entry, ok := r.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Fried rice", entry.Facts.Recognized)
}

func TestDropAndSweep(t *testing.T) {
	r := New(&fakeHistoryRepo{}, logger.Discard())
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	r.now = func() time.Time { return start }
	r.Put(1, 100, analysisA)
	r.now = func() time.Time { return start.Add(time.Hour) }
	r.Put(2, 200, analysisB)
	r.Put(3, 300, analysisB)

	assert.True(t, r.Drop(3))
	assert.False(t, r.Drop(3))

	assert.Zero(t, r.Sweep(start.Add(24*time.Hour), 0))
	assert.Equal(t, 1, r.Sweep(start.Add(90*time.Minute), time.Hour))
	_, ok := r.Get(1)
	assert.False(t, ok)
	_, ok = r.Get(2)
	assert.True(t, ok)
}
