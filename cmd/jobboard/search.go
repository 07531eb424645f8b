package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jonathan/contract-board/internal/db"
	"github.com/jonathan/contract-board/internal/observability"
	"github.com/jonathan/contract-board/internal/search"
)

// searchFlags mirrors the query parameters of GET /jobs
type searchFlags struct {
	keywords     string
	city         string
	distance     string
	ir35         string
	workLocation string
	seniority    string
	dayRate      string
	dayRateMin   int
	dayRateMax   int
	datePosted   string
	page         int
	limit        int
	sortBy       string
	jobID        string
}

var searchOpts searchFlags

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search jobs from the terminal",
	Long:  "Run the same search as GET /jobs against DATABASE_URL and print one page of results. Pass --job to print a single job instead.",
	RunE:  runSearch,
}

func init() {
	searchOpts.register(searchCmd.Flags())
	rootCmd.AddCommand(searchCmd)
}

func (f *searchFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.keywords, "keywords", "k", "", "Full-text keywords matched against title, summary and tech stack")
	fs.StringVar(&f.city, "city", "", "City substring, case-insensitive")
	fs.StringVar(&f.distance, "distance", "", "Accepted for parity with the UI; not applied")
	fs.StringVar(&f.ir35, "ir35", "", "IR35 status: inside, outside or Any")
	fs.StringVar(&f.workLocation, "work-location", "", "Work location: remote, hybrid, onsite or Any")
	fs.StringVar(&f.seniority, "seniority", "", "Seniority: junior, mid, senior, lead or Any")
	fs.StringVar(&f.dayRate, "day-rate", "", "Day rate band such as 500-750")
	fs.IntVar(&f.dayRateMin, "day-rate-min", 0, "Minimum day rate; overrides the band minimum")
	fs.IntVar(&f.dayRateMax, "day-rate-max", 0, "Maximum day rate; overrides the band maximum")
	fs.StringVar(&f.datePosted, "posted", "", "Recency: today, week, month or Any")
	fs.IntVar(&f.page, "page", search.DefaultPage, "Page number, starting at 1")
	fs.IntVar(&f.limit, "limit", search.DefaultLimit, "Jobs per page (max 100)")
	fs.StringVar(&f.sortBy, "sort", string(db.JobSortDate), "Sort order: date or salary")
	fs.StringVar(&f.jobID, "job", "", "Print a single job by ID")
}

// criteria builds validated FilterCriteria; explicit rate bounds win over
// the band.
func (f *searchFlags) criteria(fs *pflag.FlagSet) (search.FilterCriteria, error) {
	c := search.FilterCriteria{
		Keywords:         f.keywords,
		City:             f.city,
		Distance:         f.distance,
		IR35Status:       f.ir35,
		WorkLocationType: f.workLocation,
		Seniority:        f.seniority,
		DatePosted:       f.datePosted,
		Page:             f.page,
		Limit:            f.limit,
		SortBy:           db.JobSort(f.sortBy),
	}

	if fs.Changed("day-rate-min") {
		c.DayRateMin = &f.dayRateMin
	}
	if fs.Changed("day-rate-max") {
		c.DayRateMax = &f.dayRateMax
	}

	lo, hi, err := search.ParseDayRateBand(f.dayRate)
	if err != nil {
		return c, err
	}
	if c.DayRateMin == nil {
		c.DayRateMin = lo
	}
	if c.DayRateMax == nil {
		c.DayRateMax = hi
	}

	c = c.Normalize()
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid search flags: %w", err)
	}
	return c, nil
}

func runSearch(cmd *cobra.Command, _ []string) error {
	var jobID uuid.UUID
	var criteria search.FilterCriteria
	var err error
	if searchOpts.jobID != "" {
		if jobID, err = uuid.Parse(searchOpts.jobID); err != nil {
			return fmt.Errorf("invalid --job: %w", err)
		}
	} else if criteria, err = searchOpts.criteria(cmd.Flags()); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	databaseURL, err := requireDatabaseURL(cfg)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	svc := search.NewService(database, search.WithLocation(loc))
	printer := observability.NewPrinter(cmd.OutOrStdout())

	if jobID != uuid.Nil {
		job, err := svc.ByID(ctx, jobID)
		if err != nil {
			return err
		}
		if job == nil {
			return fmt.Errorf("job %s not found", jobID)
		}
		printer.PrintJob(job)
		return nil
	}

	page, err := svc.Search(ctx, criteria)
	if err != nil {
		return err
	}
	printer.PrintSearchPage(page)
	return nil
}
