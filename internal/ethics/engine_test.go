package ethics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahuljoshi07/contribot/internal/storage"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEngine(policy Policy) (*Engine, *fakeClock, *storage.MemStore) {
	clock := &fakeClock{t: time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)}
	store := storage.NewMemStore()
	e := New(policy, store)
	e.now = clock.Now
	return e, clock, store
}

// noCooldown is a permissive policy used when a test exercises one limit
// in isolation.
func noCooldown() Policy {
	p := DefaultPolicy()
	p.Cooldown = 0
	return p
}

func TestDailyTotalLimit(t *testing.T) {
	p := noCooldown()
	p.TotalPerDay = 3
	p.CommentsPerHour = 100
	e, _, _ := newTestEngine(p)

	for n := 0; n < 3; n++ {
		e.RecordAction(ActionComment, "octo/widgets")
	}

	for _, kind := range []ActionKind{ActionIssue, ActionPR, ActionComment} {
		d := e.CheckAction(kind, "octo/widgets")
		assert.False(t, d.Allowed)
		assert.Equal(t, "daily limit reached (3 actions per day)", d.Reason)
	}
}

func TestHourlyLimitIsPerCategory(t *testing.T) {
	p := noCooldown()
	p.CommentsPerHour = 2
	p.MaxPerRepoPerDay = 100
	e, _, _ := newTestEngine(p)

	e.RecordAction(ActionComment, "octo/widgets")
	e.RecordAction(ActionComment, "octo/widgets")

	d := e.CheckAction(ActionComment, "octo/widgets")
	assert.False(t, d.Allowed)
	assert.Equal(t, "hourly comment limit reached (2 per hour)", d.Reason)

	// A different category in the same hour keeps its own ceiling.
	assert.True(t, e.CheckAction(ActionIssue, "octo/widgets").Allowed)
}

func TestHourlyLimitResetsNextHour(t *testing.T) {
	p := noCooldown()
	p.CommentsPerHour = 1
	p.MaxPerRepoPerDay = 100
	e, clock, _ := newTestEngine(p)

	e.RecordAction(ActionComment, "octo/widgets")
	require.False(t, e.CheckAction(ActionComment, "octo/widgets").Allowed)

	clock.Advance(time.Hour)
	assert.True(t, e.CheckAction(ActionComment, "octo/widgets").Allowed)
}

func TestCooldown(t *testing.T) {
	p := DefaultPolicy()
	e, clock, _ := newTestEngine(p)

	e.RecordAction(ActionComment, "octo/widgets")

	for _, kind := range []ActionKind{ActionIssue, ActionPR, ActionComment} {
		d := e.CheckAction(kind, "octo/widgets")
		assert.False(t, d.Allowed, "kind %s should be in cooldown", kind)
		assert.Contains(t, d.Reason, "cooldown active")
	}

	clock.Advance(p.Cooldown - time.Second)
	d := e.CheckAction(ActionComment, "octo/widgets")
	require.False(t, d.Allowed)
	assert.Equal(t, "cooldown active, wait 1 seconds", d.Reason)

	clock.Advance(time.Second)
	assert.True(t, e.CheckAction(ActionComment, "octo/widgets").Allowed)
}

func TestCheckActionIsPureRead(t *testing.T) {
	e, _, store := newTestEngine(DefaultPolicy())

	first := e.CheckAction(ActionComment, "octo/widgets")
	for n := 0; n < 10; n++ {
		assert.Equal(t, first, e.CheckAction(ActionComment, "octo/widgets"))
	}

	// Probing must not create buckets or touch storage.
	assert.Empty(t, e.log.Daily)
	assert.Empty(t, e.log.Hourly)
	assert.Empty(t, e.log.Repositories)
	assert.Zero(t, store.Saves())
}

func TestRepositoryDailyCap(t *testing.T) {
	p := noCooldown()
	p.CommentsPerHour = 100
	e, _, _ := newTestEngine(p)

	for n := 0; n < 3; n++ {
		e.RecordAction(ActionComment, "octo/widgets")
	}

	d := e.CheckAction(ActionComment, "octo/widgets")
	assert.False(t, d.Allowed)
	assert.Equal(t, "repository daily limit reached (max 3 contributions per repo per day)", d.Reason)

	// Global and hourly quota remain: another repository is still allowed.
	assert.True(t, e.CheckAction(ActionComment, "octo/gadgets").Allowed)
}

func TestRepositoryDailyCountResetsNextDay(t *testing.T) {
	e, clock, _ := newTestEngine(noCooldown())

	e.RecordAction(ActionComment, "octo/widgets")
	e.RecordAction(ActionComment, "octo/widgets")
	assert.Equal(t, 2, e.log.Repositories["octo/widgets"].DailyContributions)

	clock.Advance(24 * time.Hour)
	e.RecordAction(ActionComment, "octo/widgets")

	rd := e.log.Repositories["octo/widgets"]
	assert.Equal(t, 1, rd.DailyContributions)
	assert.Equal(t, 3, rd.TotalContributions)
}

func TestDailyTotalInvariant(t *testing.T) {
	e, _, _ := newTestEngine(noCooldown())

	e.RecordAction(ActionIssue, "octo/widgets")
	e.RecordAction(ActionPR, "octo/widgets")
	e.RecordAction(ActionComment, "octo/gadgets")
	e.RecordAction(ActionComment, "octo/gadgets")

	d := e.log.Daily[dayKey(e.now())]
	require.NotNil(t, d)
	assert.Equal(t, d.Issues+d.PRs+d.Comments, d.Total)
}

func TestRecordActionPersists(t *testing.T) {
	e, _, store := newTestEngine(noCooldown())

	e.RecordAction(ActionIssue, "octo/widgets")
	require.Equal(t, 1, store.Saves())

	// A fresh engine over the same store sees the recorded activity.
	e2 := New(e.policy, store)
	e2.now = e.now
	assert.Equal(t, 1, e2.log.Daily[dayKey(e.now())].Issues)
	assert.Equal(t, 1, e2.log.Repositories["octo/widgets"].TotalContributions)
}

type failingStore struct{}

func (failingStore) Load(any) error { return errors.New("disk gone") }
func (failingStore) Save(any) error { return errors.New("disk gone") }

func TestStorageFailuresAreNonFatal(t *testing.T) {
	e := New(DefaultPolicy(), failingStore{})

	// Load failure falls back to an empty log; save failure is swallowed.
	assert.True(t, e.CheckAction(ActionComment, "octo/widgets").Allowed)
	e.RecordAction(ActionComment, "octo/widgets")
	assert.Equal(t, 1, e.log.Repositories["octo/widgets"].TotalContributions)
}

func TestCleanupOldLogs(t *testing.T) {
	e, clock, _ := newTestEngine(noCooldown())

	old := clock.Now().AddDate(0, 0, -40)
	e.log.day(dayKey(old)).Comments = 1
	e.log.hour(hourKey(old)).Comments = 1
	e.RecordAction(ActionComment, "octo/widgets")

	e.CleanupOldLogs()

	assert.NotContains(t, e.log.Daily, dayKey(old))
	assert.NotContains(t, e.log.Hourly, hourKey(old))
	assert.Contains(t, e.log.Daily, dayKey(clock.Now()))
}

func TestSummary(t *testing.T) {
	e, _, _ := newTestEngine(noCooldown())

	e.RecordAction(ActionComment, "octo/widgets")
	e.RecordAction(ActionComment, "octo/gadgets")
	e.RecordAction(ActionIssue, "octo/widgets")

	s := e.Summary()
	assert.Equal(t, DayCounters{Issues: 1, Comments: 2, Total: 3}, s.Today)
	assert.Equal(t, 47, s.Remaining.Total)
	assert.Equal(t, 4, s.Remaining.Issues)
	assert.Equal(t, 3, s.Remaining.PRs)
	assert.Equal(t, 8, s.Remaining.Comments)
	assert.Equal(t, 2, s.ActiveRepositories)
	require.NotNil(t, s.LastActivity)
}

func TestSummaryRemainingNeverNegative(t *testing.T) {
	p := noCooldown()
	p.CommentsPerHour = 1
	p.MaxPerRepoPerDay = 100
	e, clock, _ := newTestEngine(p)

	e.RecordAction(ActionComment, "octo/widgets")
	clock.Advance(time.Hour)
	e.RecordAction(ActionComment, "octo/widgets")

	assert.Equal(t, 0, e.Summary().Remaining.Comments)
}
