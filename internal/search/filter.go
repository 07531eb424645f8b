package search

import (
	"time"

	"github.com/jonathan/contract-board/internal/db"
)

// BuildPredicates translates criteria into independent predicates to be
// conjoined. now anchors the DatePosted window. Absent, blank, AnyValue and
// unrecognised values add nothing. Distance is recognised but there is no
// geo filtering, so it never adds a predicate.
func BuildPredicates(c FilterCriteria, now time.Time) []db.Predicate {
	var preds []db.Predicate

	if keywords, ok := filterValue(c.Keywords); ok {
		preds = append(preds, db.FullText(keywords))
	}

	if city, ok := filterValue(c.City); ok {
		preds = append(preds, db.CityContains(city))
	}

	if v, ok := filterValue(c.IR35Status); ok {
		if status := db.IR35Status(v); status.Valid() {
			preds = append(preds, db.IR35StatusIs(status))
		}
	}

	if v, ok := filterValue(c.WorkLocationType); ok {
		if wlt := db.WorkLocationType(v); wlt.Valid() {
			preds = append(preds, db.WorkLocationTypeIs(wlt))
		}
	}

	if v, ok := filterValue(c.Seniority); ok {
		if level := db.Seniority(v); level.Valid() {
			preds = append(preds, db.SeniorityIs(level))
		}
	}

	// The bounds are independent; an inverted range simply matches nothing.
	if c.DayRateMin != nil {
		preds = append(preds, db.SalaryMinAtLeast(*c.DayRateMin))
	}
	if c.DayRateMax != nil {
		preds = append(preds, db.SalaryMaxAtMost(*c.DayRateMax))
	}

	if since, ok := PostedThreshold(c.DatePosted, now); ok {
		preds = append(preds, db.PostedSince(since))
	}

	return preds
}

// PostedThreshold returns the earliest effective posted time allowed by a
// DatePosted window: start of now's calendar day for "today", seven days
// before now for "week", one calendar month before now for "month".
func PostedThreshold(window string, now time.Time) (time.Time, bool) {
	v, ok := filterValue(window)
	if !ok {
		return time.Time{}, false
	}

	switch v {
	case DatePostedToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case DatePostedWeek:
		return now.Add(-7 * 24 * time.Hour), true
	case DatePostedMonth:
		return now.AddDate(0, -1, 0), true
	default:
		return time.Time{}, false
	}
}
