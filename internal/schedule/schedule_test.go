package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// refMonday is an arbitrary anchor used by the rotating tests.
var refMonday = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC) // a Monday

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFixedSchedule(t *testing.T) {
	o := New(StrategyFixed, refMonday, time.UTC)

	mon := day(2025, time.March, 3)
	thu := day(2025, time.March, 6)
	sat := day(2025, time.March, 8)

	assert.Equal(t, 1, o.WeekParity(mon))
	assert.True(t, o.IsTeamDay(1, mon))
	assert.False(t, o.IsTeamDay(2, mon))
	assert.True(t, o.IsTeamDay(2, thu))
	assert.False(t, o.IsTeamDay(1, thu))
	assert.Equal(t, 1, o.OwningBatch(mon))
	assert.Equal(t, 2, o.OwningBatch(thu))
	assert.Equal(t, 0, o.OwningBatch(sat))
	assert.False(t, o.IsTeamDay(1, sat))
	assert.False(t, o.IsTeamDay(2, sat))
}

func TestRotatingParitySwapsEveryWeek(t *testing.T) {
	o := New(StrategyRotating, refMonday, time.UTC)

	// Week of the anchor itself: parity 1, batch 1 owns Mon–Wed.
	assert.Equal(t, 1, o.WeekParity(refMonday))
	assert.True(t, o.IsTeamDay(1, refMonday))

	// The next week flips.
	nextMon := refMonday.AddDate(0, 0, 7)
	assert.Equal(t, 2, o.WeekParity(nextMon))
	assert.False(t, o.IsTeamDay(1, nextMon))
	assert.True(t, o.IsTeamDay(2, nextMon))

	// Two weeks out restores the original mapping.
	assert.Equal(t, 1, o.WeekParity(refMonday.AddDate(0, 0, 14)))
}

func TestRotatingBeforeAnchorFloorsTowardMinusInfinity(t *testing.T) {
	o := New(StrategyRotating, refMonday, time.UTC)

	// The week immediately before the anchor must have the opposite
	// parity, not collapse onto the anchor week via truncation.
	prevMon := refMonday.AddDate(0, 0, -7)
	assert.Equal(t, 2, o.WeekParity(prevMon))
	assert.Equal(t, 1, o.WeekParity(refMonday.AddDate(0, 0, -14)))

	// Mid-week days before the anchor stay in their own week bucket.
	prevFri := refMonday.AddDate(0, 0, -3)
	assert.Equal(t, 2, o.WeekParity(prevFri))
}

func TestRotatingParityAcrossDSTTransitions(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Anchor the Monday before the US spring-forward (2025-03-09).
	// The transition week is an hour short of 168, which must not
	// pull the following Monday back into the anchor's week bucket.
	anchor := time.Date(2025, time.March, 3, 0, 0, 0, 0, ny)
	o := New(StrategyRotating, anchor, ny)

	nextMon := time.Date(2025, time.March, 10, 0, 0, 0, 0, ny)
	assert.Equal(t, 2, o.WeekParity(nextMon))
	assert.False(t, o.IsTeamDay(1, nextMon))
	assert.True(t, o.IsTeamDay(2, nextMon))

	// Fall-back week (2025-11-02) is an hour long; same guarantee in
	// the other direction.
	fallAnchor := time.Date(2025, time.October, 27, 0, 0, 0, 0, ny)
	of := New(StrategyRotating, fallAnchor, ny)
	assert.Equal(t, 2, of.WeekParity(time.Date(2025, time.November, 3, 0, 0, 0, 0, ny)))
	assert.Equal(t, 1, of.WeekParity(time.Date(2025, time.November, 10, 0, 0, 0, 0, ny)))
}

func TestBatchesPartitionWeekdays(t *testing.T) {
	for _, strat := range []Strategy{StrategyFixed, StrategyRotating} {
		o := New(strat, refMonday, time.UTC)
		start := day(2024, time.November, 1)
		for i := 0; i < 120; i++ {
			d := start.AddDate(0, 0, i)
			b1, b2 := o.IsTeamDay(1, d), o.IsTeamDay(2, d)
			if o.IsWeekday(d) {
				require.NotEqual(t, b1, b2, "weekday %s must belong to exactly one batch", d)
				require.NotZero(t, o.OwningBatch(d))
			} else {
				require.False(t, b1)
				require.False(t, b2)
				require.Zero(t, o.OwningBatch(d))
			}
		}
	}
}

func TestOwningBatchDeterministic(t *testing.T) {
	o := New(StrategyRotating, refMonday, time.UTC)
	d := day(2025, time.June, 17)
	first := o.OwningBatch(d)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, o.OwningBatch(d))
	}
}

func TestFloaterCutoff(t *testing.T) {
	o := New(StrategyFixed, refMonday, time.UTC)
	d := day(2025, time.March, 5)
	cutoff := o.FloaterCutoff(d)
	assert.Equal(t, time.Date(2025, time.March, 4, 15, 0, 0, 0, time.UTC), cutoff)
}

func TestParseStrategy(t *testing.T) {
	assert.Equal(t, StrategyRotating, ParseStrategy("rotating"))
	assert.Equal(t, StrategyRotating, ParseStrategy(" Rotating "))
	assert.Equal(t, StrategyFixed, ParseStrategy("fixed"))
	assert.Equal(t, StrategyFixed, ParseStrategy(""))
	assert.Equal(t, StrategyFixed, ParseStrategy("bogus"))
}

func TestDaysDescription(t *testing.T) {
	o := New(StrategyFixed, refMonday, time.UTC)
	assert.Equal(t, "Monday, Tuesday, Wednesday", o.Days(1, refMonday))
	assert.Equal(t, "Thursday, Friday", o.Days(2, refMonday))

	r := New(StrategyRotating, refMonday, time.UTC)
	nextWeek := refMonday.AddDate(0, 0, 7)
	assert.Equal(t, "Thursday, Friday", r.Days(1, nextWeek))
}
