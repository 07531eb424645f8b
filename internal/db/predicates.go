package db

import (
	"fmt"
	"strings"
	"time"
)

// PredicateKind identifies a column or text condition on the jobs table
type PredicateKind int

// Predicate kinds understood by the job queries
const (
	PredicateFullText PredicateKind = iota + 1
	PredicateCityContains
	PredicateIR35Status
	PredicateWorkLocationType
	PredicateSeniority
	PredicateSalaryMinAtLeast
	PredicateSalaryMaxAtMost
	PredicatePostedSince
)

func (k PredicateKind) String() string {
	switch k {
	case PredicateFullText:
		return "full_text"
	case PredicateCityContains:
		return "city_contains"
	case PredicateIR35Status:
		return "ir35_status"
	case PredicateWorkLocationType:
		return "work_location_type"
	case PredicateSeniority:
		return "seniority"
	case PredicateSalaryMinAtLeast:
		return "salary_min_at_least"
	case PredicateSalaryMaxAtMost:
		return "salary_max_at_most"
	case PredicatePostedSince:
		return "posted_since"
	default:
		return fmt.Sprintf("predicate(%d)", int(k))
	}
}

// Predicate is a single condition on a job row. A slice of predicates is
// always conjoined with AND. Only the value field matching Kind is used.
type Predicate struct {
	Kind   PredicateKind
	Text   string
	Number int
	Since  time.Time
}

// FullText matches jobs whose title, tech stack text and summary match the
// query under PostgreSQL's english text search configuration.
func FullText(query string) Predicate {
	return Predicate{Kind: PredicateFullText, Text: query}
}

// CityContains matches jobs whose city contains s, case-insensitively
func CityContains(s string) Predicate {
	return Predicate{Kind: PredicateCityContains, Text: s}
}

// IR35StatusIs matches jobs with exactly this IR35 status
func IR35StatusIs(s IR35Status) Predicate {
	return Predicate{Kind: PredicateIR35Status, Text: string(s)}
}

// WorkLocationTypeIs matches jobs with exactly this work location type
func WorkLocationTypeIs(w WorkLocationType) Predicate {
	return Predicate{Kind: PredicateWorkLocationType, Text: string(w)}
}

// SeniorityIs matches jobs with exactly this seniority
func SeniorityIs(s Seniority) Predicate {
	return Predicate{Kind: PredicateSeniority, Text: string(s)}
}

// SalaryMinAtLeast matches jobs with salary_min >= n. Jobs without a
// salary_min never match.
func SalaryMinAtLeast(n int) Predicate {
	return Predicate{Kind: PredicateSalaryMinAtLeast, Number: n}
}

// SalaryMaxAtMost matches jobs with salary_max <= n. Jobs without a
// salary_max never match.
func SalaryMaxAtMost(n int) Predicate {
	return Predicate{Kind: PredicateSalaryMaxAtMost, Number: n}
}

// PostedSince matches jobs whose effective posted timestamp is at or after t
func PostedSince(t time.Time) Predicate {
	return Predicate{Kind: PredicatePostedSince, Since: t}
}

// JobSort selects the ordering of job search results
type JobSort string

// Sort keys
const (
	JobSortDate   JobSort = "date"
	JobSortSalary JobSort = "salary"
)

// Valid reports whether s is a known sort key
func (s JobSort) Valid() bool {
	return s == JobSortDate || s == JobSortSalary
}

// jobSearchDocument is the text search document; it must stay identical to
// the expression behind jobs_search_idx.
const jobSearchDocument = `to_tsvector('english', j.title || ' ' || COALESCE(j.tech_stack_text, '') || ' ' || COALESCE(j.summary, ''))`

// buildJobWhere renders predicates into a WHERE clause against the jobs
// table aliased as j. startArg is the number of the first $ placeholder.
func buildJobWhere(preds []Predicate, startArg int) (string, []any, error) {
	var conditions []string
	var args []any
	argNum := startArg

	for _, p := range preds {
		var cond string
		switch p.Kind {
		case PredicateFullText:
			cond = fmt.Sprintf("%s @@ plainto_tsquery('english', $%d)", jobSearchDocument, argNum)
			args = append(args, p.Text)
		case PredicateCityContains:
			cond = fmt.Sprintf(`j.city ILIKE $%d ESCAPE '\'`, argNum)
			args = append(args, "%"+escapeLike(p.Text)+"%")
		case PredicateIR35Status:
			cond = fmt.Sprintf("j.ir35_status = $%d::ir35_status", argNum)
			args = append(args, p.Text)
		case PredicateWorkLocationType:
			cond = fmt.Sprintf("j.work_location_type = $%d::work_location_type", argNum)
			args = append(args, p.Text)
		case PredicateSeniority:
			cond = fmt.Sprintf("j.seniority = $%d::seniority_level", argNum)
			args = append(args, p.Text)
		case PredicateSalaryMinAtLeast:
			cond = fmt.Sprintf("j.salary_min >= $%d", argNum)
			args = append(args, p.Number)
		case PredicateSalaryMaxAtMost:
			cond = fmt.Sprintf("j.salary_max <= $%d", argNum)
			args = append(args, p.Number)
		case PredicatePostedSince:
			cond = fmt.Sprintf("COALESCE(j.posted_at, j.created_at) >= $%d", argNum)
			args = append(args, p.Since)
		default:
			return "", nil, fmt.Errorf("unsupported predicate: %s", p.Kind)
		}
		conditions = append(conditions, cond)
		argNum++
	}

	if len(conditions) == 0 {
		return "", nil, nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args, nil
}

// buildJobOrderBy returns the ORDER BY clause for a sort key. Both orders end
// with id ASC so pages are stable across repeated calls.
func buildJobOrderBy(sort JobSort) string {
	switch sort {
	case JobSortSalary:
		return "ORDER BY j.salary_max DESC NULLS LAST, j.id ASC"
	default:
		return "ORDER BY COALESCE(j.posted_at, j.created_at) DESC, j.id ASC"
	}
}

// escapeLike escapes LIKE metacharacters so user input matches literally
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
