// Package period derives the export window for a statement run from the
// persisted checkpoint and the backfill policy.
//
// Period limitations:
//   - min period (1 day):   [2000-01-01 00:00:00.000, 2000-01-01 23:59:59.999]
//   - max period (1 month): [2000-01-01 00:00:00.000, 2000-01-31 23:59:59.999]
//
// Banks cap statement queries at one calendar month and often lag in posting
// same-day transactions, so the window is month-bounded and never includes
// the current day.
package period

import (
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

var (
	// ErrInvalidStartDate reports a checkpoint that does not resume exactly at
	// a local midnight. The checkpoint is written as an end-of-day instant, so
	// anything else means a corrupted checkpoint or a time zone change; this
	// is a configuration failure, not something to coerce silently.
	ErrInvalidStartDate = errors.New("export start date is not at start of day")

	// ErrTooSoon reports that a full day has not yet elapsed since the start
	// of the window. The run should be retried later; no state was changed.
	ErrTooSoon = errors.New("24 hours have not passed since the export start date")
)

// Period is one export window. Start is a local midnight, End is the last
// millisecond of a day in the same calendar month.
type Period struct {
	Start time.Time
	End   time.Time
}

// StartDate returns the calendar date of the window start.
func (p Period) StartDate() civil.Date {
	return civil.DateOf(p.Start)
}

// EndDate returns the calendar date of the window end.
func (p Period) EndDate() civil.Date {
	return civil.DateOf(p.End)
}

// Calculator builds export periods against a configured bank-local time zone.
// Now is injectable for tests and defaults to time.Now.
type Calculator struct {
	Location  *time.Location
	MaxMonths int
	Now       func() time.Time
}

// BuildExportPeriod maps the last checkpoint (epoch millis, 0 = first run
// ever) to the next export window.
//
// A nonzero checkpoint resumes one millisecond after the previous end-of-day
// instant, which must land exactly on the next local midnight. A zero
// checkpoint backfills from the first day of the month MaxMonths months
// before the current one.
func (c *Calculator) BuildExportPeriod(lastExportTime int64) (Period, error) {
	start, err := c.buildStartDate(lastExportTime)
	if err != nil {
		return Period{}, err
	}

	end, err := c.buildEndDate(start)
	if err != nil {
		return Period{}, err
	}

	return Period{Start: start, End: end}, nil
}

func (c *Calculator) now() time.Time {
	if c.Now != nil {
		return c.Now().In(c.Location)
	}
	return time.Now().In(c.Location)
}

func (c *Calculator) buildStartDate(lastExportTime int64) (time.Time, error) {
	if lastExportTime != 0 {
		// One millisecond after the previous period's end of day.
		start := time.UnixMilli(lastExportTime + 1).In(c.Location)

		if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 || start.Nanosecond() != 0 {
			return time.Time{}, fmt.Errorf("%w: checkpoint %d resumes at %s",
				ErrInvalidStartDate, lastExportTime, start.Format(time.RFC3339Nano))
		}

		return start, nil
	}

	// First run ever: the first day of the month MaxMonths months back.
	now := c.now()
	return time.Date(now.Year(), now.Month()-time.Month(c.MaxMonths), 1, 0, 0, 0, 0, c.Location), nil
}

func (c *Calculator) buildEndDate(start time.Time) (time.Time, error) {
	now := c.now()

	// Walk forward a day at a time while the candidate end-of-day is still in
	// the past and still inside the start month. AddDate keeps the walk
	// calendar-correct across DST transitions.
	var end time.Time
	for day := start; day.Month() == start.Month(); day = day.AddDate(0, 0, 1) {
		endOfDay := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, int(999*time.Millisecond), c.Location)
		if !endOfDay.Before(now) {
			break
		}
		end = endOfDay
	}

	// The very first candidate was already rejected.
	if end.IsZero() {
		return time.Time{}, fmt.Errorf("%w: start %s, now %s",
			ErrTooSoon, start.Format(time.RFC3339), now.Format(time.RFC3339))
	}

	return end, nil
}
