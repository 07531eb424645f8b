// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/contract-board/internal/db"
	"github.com/jonathan/contract-board/internal/search"
	"github.com/jonathan/contract-board/internal/seed"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxTagsToShow caps the tech stack tags listed per job
	maxTagsToShow = 4
)

// Printer handles formatted output for the search and seed commands
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most width runes, marking the cut with "..."
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// pad right-pads s with spaces to width runes
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(title, inner), inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSearchPage outputs one page of search results
func (p *Printer) PrintSearchPage(page *search.Page) {
	if page == nil {
		return
	}

	var sb strings.Builder
	if page.Total == 0 {
		sb.WriteString("No jobs match these filters.")
	} else {
		first := (page.Page-1)*page.Limit + 1
		last := first + len(page.Jobs) - 1
		if len(page.Jobs) == 0 {
			sb.WriteString(fmt.Sprintf("Page %d is past the last page (%d).", page.Page, page.TotalPages))
		} else {
			sb.WriteString(fmt.Sprintf("Showing %d-%d of %d jobs\n\n", first, last, page.Total))
		}
		for i := range page.Jobs {
			writeJobLines(&sb, &page.Jobs[i])
			if i < len(page.Jobs)-1 {
				sb.WriteString("\n")
			}
		}
	}

	title := fmt.Sprintf("JOBS  page %d of %d", page.Page, max(page.TotalPages, 1))
	switch {
	case page.HasPrevPage && page.HasNextPage:
		title += "  (‹ prev | next ›)"
	case page.HasNextPage:
		title += "  (next ›)"
	case page.HasPrevPage:
		title += "  (‹ prev)"
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJob outputs the full detail of one job
func (p *Printer) PrintJob(job *db.JobWithCompany) {
	if job == nil {
		return
	}

	var sb strings.Builder
	writeJobLines(&sb, job)
	sb.WriteString(fmt.Sprintf("  ID:     %s\n", job.ID))
	sb.WriteString(fmt.Sprintf("  URL:    %s\n", job.URL))
	if job.ContractLength != nil {
		sb.WriteString(fmt.Sprintf("  Length: %d months\n", *job.ContractLength))
	}
	if job.Summary != nil {
		sb.WriteString("\n")
		sb.WriteString(*job.Summary)
	}

	p.printBox("JOB", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSeedReport outputs what a seed run wrote
func (p *Printer) PrintSeedReport(report *seed.Report) {
	if report == nil {
		return
	}

	content := fmt.Sprintf("Companies:     %d\nJobs:          %d\nIgnored jobs:  %d\nSkipped jobs:  %d",
		report.Companies, report.Jobs, report.IgnoredJobs, report.Skipped)
	p.printBox("SEED COMPLETE", content)
}

// writeJobLines renders the summary lines shared by list and detail views
func writeJobLines(sb *strings.Builder, job *db.JobWithCompany) {
	company := "unknown company"
	if job.Company != nil {
		company = job.Company.Name
	}
	sb.WriteString(fmt.Sprintf("• %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("  %s · %s\n", company, location(&job.Job)))
	sb.WriteString(fmt.Sprintf("  %s · IR35 %s · %s · posted %s\n",
		job.Seniority, job.IR35Status, dayRate(&job.Job), job.EffectivePostedAt().Format("2006-01-02")))

	if len(job.TechStack) > 0 {
		tags := job.TechStack
		more := ""
		if len(tags) > maxTagsToShow {
			more = fmt.Sprintf(" +%d", len(tags)-maxTagsToShow)
			tags = tags[:maxTagsToShow]
		}
		sb.WriteString(fmt.Sprintf("  [%s]%s\n", strings.Join(tags, ", "), more))
	}
}

func location(j *db.Job) string {
	if j.City != nil && *j.City != "" {
		return fmt.Sprintf("%s (%s)", *j.City, j.WorkLocationType)
	}
	return string(j.WorkLocationType)
}

// dayRate formats the salary band as a day rate
func dayRate(j *db.Job) string {
	switch {
	case j.SalaryMin != nil && j.SalaryMax != nil:
		return fmt.Sprintf("£%d-%d/day", *j.SalaryMin, *j.SalaryMax)
	case j.SalaryMin != nil:
		return fmt.Sprintf("from £%d/day", *j.SalaryMin)
	case j.SalaryMax != nil:
		return fmt.Sprintf("up to £%d/day", *j.SalaryMax)
	default:
		return "rate n/a"
	}
}
