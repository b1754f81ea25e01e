package dashboard

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/joblify/employer-console/internal/types"
)

const recentJobsLimit = 5

// Summary is the content of the dashboard home view.
type Summary struct {
	Profile      *types.Profile          `json:"profile,omitempty"`
	TotalJobs    int                     `json:"totalJobs"`
	StatusCounts map[types.JobStatus]int `json:"statusCounts"`
	RecentJobs   []types.Job             `json:"recentJobs"`
}

// LoadSummary loads the profile and the job list concurrently and summarizes
// them. Either failure fails the summary.
func LoadSummary(ctx context.Context, profile *ProfilePage, jobs *JobList) (*Summary, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return profile.Load(gctx)
	})
	g.Go(func() error {
		return jobs.Load(gctx)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	list := jobs.Jobs()
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].PostedAt.After(list[j].PostedAt)
	})
	if len(list) > recentJobsLimit {
		list = list[:recentJobsLimit]
	}
	return &Summary{
		Profile:      profile.Profile(),
		TotalJobs:    len(jobs.Jobs()),
		StatusCounts: jobs.StatusCounts(),
		RecentJobs:   list,
	}, nil
}
