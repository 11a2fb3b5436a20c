package scheduler

import (
	"fmt"
	"time"

	"fleetwatch/src/models"
	"fleetwatch/src/utils"

	"github.com/robfig/cron/v3"
)

// TriggerSpec describes when a job fires next. Daily and weekly recurrences
// are standard cron lines evaluated with robfig/cron; monthly is computed by
// hand because of the day-of-month clamp (a job anchored on the 31st fires on
// the last day of shorter months).
type TriggerSpec struct {
	FireAt    time.Time
	Recurring bool
	Pattern   models.RecurrencePattern

	loc       *time.Location
	schedule  cron.Schedule // daily / weekly
	anchorDay int           // monthly
	hour      int
	minute    int
}

// BuildTrigger parses a schedule into a TriggerSpec, validated against the
// current wall clock in the server's local time zone.
func BuildTrigger(date, clock string, recurring bool, pattern models.RecurrencePattern) (*TriggerSpec, error) {
	return BuildTriggerAt(date, clock, recurring, pattern, time.Now(), time.Local)
}

// BuildTriggerAt is BuildTrigger with an explicit reference instant and zone.
// A one-shot schedule in the past is rejected; a recurring schedule whose
// start lies in the past begins at its next occurrence after now.
func BuildTriggerAt(date, clock string, recurring bool, pattern models.RecurrencePattern, now time.Time, loc *time.Location) (*TriggerSpec, error) {
	day, err := time.ParseInLocation(utils.ShortDashDateLayout, date, loc)
	if err != nil {
		return nil, NewInvalidScheduleError("unparsable date %q", date)
	}
	tod, err := time.ParseInLocation(utils.ClockLayout, clock, loc)
	if err != nil {
		return nil, NewInvalidScheduleError("unparsable time %q", clock)
	}

	first := time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, loc)

	spec := &TriggerSpec{
		Recurring: recurring,
		loc:       loc,
		hour:      tod.Hour(),
		minute:    tod.Minute(),
	}

	if !recurring {
		if !first.After(now) {
			return nil, NewInvalidScheduleError("fire time %s is in the past", first.Format(time.RFC3339))
		}
		spec.FireAt = first
		return spec, nil
	}

	switch pattern {
	case models.RecurrenceDaily:
		spec.schedule, err = parseCronLine(fmt.Sprintf("%d %d * * *", tod.Minute(), tod.Hour()), loc)
	case models.RecurrenceWeekly:
		spec.schedule, err = parseCronLine(fmt.Sprintf("%d %d * * %d", tod.Minute(), tod.Hour(), int(day.Weekday())), loc)
	case models.RecurrenceMonthly:
		spec.anchorDay = day.Day()
	default:
		return nil, NewInvalidScheduleError("unknown recurrence pattern %q", pattern)
	}
	if err != nil {
		return nil, NewInvalidScheduleError("building cron line: %v", err)
	}
	spec.Pattern = pattern

	if first.After(now) {
		spec.FireAt = first
	} else {
		next, ok := spec.Next(now)
		if !ok {
			return nil, NewInvalidScheduleError("no future occurrence for pattern %q", pattern)
		}
		spec.FireAt = next
	}
	return spec, nil
}

// TriggerForJob rebuilds the trigger of a persisted job.
func TriggerForJob(job *models.ScheduledMailJob, now time.Time, loc *time.Location) (*TriggerSpec, error) {
	return BuildTriggerAt(job.ScheduleDate, job.ScheduleTime, job.IsRecurring, job.RecurrencePattern, now, loc)
}

// Next returns the first fire instant strictly after the given time, or false
// when the trigger produces no further occurrence.
func (t *TriggerSpec) Next(after time.Time) (time.Time, bool) {
	if !t.Recurring {
		if after.Before(t.FireAt) {
			return t.FireAt, true
		}
		return time.Time{}, false
	}

	if t.Pattern == models.RecurrenceMonthly {
		return t.nextMonthly(after), true
	}

	next := t.schedule.Next(after.In(t.loc))
	if next.IsZero() {
		return time.Time{}, false
	}
	return next, true
}

func (t *TriggerSpec) nextMonthly(after time.Time) time.Time {
	after = after.In(t.loc)
	year, month := after.Year(), after.Month()
	for i := 0; i < 2; i++ {
		day := utils.ClampDayOfMonth(year, month, t.anchorDay, t.loc)
		candidate := time.Date(year, month, day, t.hour, t.minute, 0, 0, t.loc)
		if candidate.After(after) {
			return candidate
		}
		year, month = nextMonth(year, month)
	}
	// unreachable: one of the first two months always yields a future date
	return time.Time{}
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

func parseCronLine(line string, loc *time.Location) (cron.Schedule, error) {
	if loc != time.Local {
		line = "CRON_TZ=" + loc.String() + " " + line
	}
	return cron.ParseStandard(line)
}
