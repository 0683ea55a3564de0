package usecase

import (
	"context"
	"fmt"

	"github.com/okruhlystol/catalog/internal/core/calendar"
	"github.com/okruhlystol/catalog/internal/core/model"
	"github.com/okruhlystol/catalog/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// FacetServiceArgs contains the mandatory arguments for the FacetService.
type FacetServiceArgs struct {
	// Repository reads the unfiltered event set.
	Repository ports.FacetRepository
}

// NewFacetService creates a new FacetService.
func NewFacetService(args FacetServiceArgs) *FacetService {
	return &FacetService{repository: args.Repository}
}

// FacetService describes which filter values exist. Facets always describe the whole
// event set, never the currently filtered subset, and are recomputed on every call.
type FacetService struct {
	repository ports.FacetRepository
}

// Years returns "All" followed by the start years, newest first.
func (s *FacetService) Years(ctx context.Context) ([]string, error) {
	counts, err := s.repository.YearCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading year facet: %w", err)
	}
	return withAll(counts), nil
}

// Months returns an "All" entry followed by the twelve months in calendar order,
// whether or not they have events.
func (s *FacetService) Months(ctx context.Context) ([]model.MonthOption, error) {
	counts, err := s.repository.MonthCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading month facet: %w", err)
	}

	out := make([]model.MonthOption, 0, len(calendar.Months)+1)
	out = append(out, model.MonthOption{Name: model.AllValue, Value: model.AllValue, HasEvents: true})
	for i, name := range calendar.Months {
		n := counts[i+1]
		out[0].Count += n
		out = append(out, model.MonthOption{Name: name, Value: name, HasEvents: n > 0, Count: n})
	}
	return out, nil
}

// Categories returns every category with its count. Events without a category are
// counted under model.Uncategorized. There is no "All" entry.
func (s *FacetService) Categories(ctx context.Context) ([]model.CategoryOption, error) {
	counts, err := s.repository.CategoryCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading category facet: %w", err)
	}
	out := make([]model.CategoryOption, len(counts))
	for i, c := range counts {
		out[i] = model.CategoryOption{Name: c.Value, Value: c.Value, Count: c.Count}
	}
	return out, nil
}

// Locations returns "All" followed by the known locations, sorted.
func (s *FacetService) Locations(ctx context.Context) ([]string, error) {
	counts, err := s.repository.LocationCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading location facet: %w", err)
	}
	return withAll(counts), nil
}

// All returns every dimension in the uniform {label,value,count,available} shape, each
// led by an "All" entry counting the whole event set.
func (s *FacetService) All(ctx context.Context) (*model.Facets, error) {
	var (
		years, categories, locations []model.ValueCount
		months                       map[int]int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		years, err = s.repository.YearCounts(gctx)
		return err
	})
	g.Go(func() (err error) {
		months, err = s.repository.MonthCounts(gctx)
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.repository.CategoryCounts(gctx)
		return err
	})
	g.Go(func() (err error) {
		locations, err = s.repository.LocationCounts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("error reading facets: %w", err)
	}

	monthCounts := make([]model.ValueCount, len(calendar.Months))
	total := 0
	for i, name := range calendar.Months {
		monthCounts[i] = model.ValueCount{Value: name, Count: months[i+1]}
		total += months[i+1]
	}

	return &model.Facets{
		Years:      options(total, years),
		Months:     options(total, monthCounts),
		Categories: options(total, categories),
		Locations:  options(total, locations),
	}, nil
}

func withAll(counts []model.ValueCount) []string {
	out := make([]string, 0, len(counts)+1)
	out = append(out, model.AllValue)
	for _, c := range counts {
		out = append(out, c.Value)
	}
	return out
}

func options(total int, counts []model.ValueCount) []model.FacetOption {
	out := make([]model.FacetOption, 0, len(counts)+1)
	out = append(out, model.FacetOption{Label: model.AllValue, Value: model.AllValue, Count: total, Available: total > 0})
	for _, c := range counts {
		out = append(out, model.FacetOption{Label: c.Value, Value: c.Value, Count: c.Count, Available: c.Count > 0})
	}
	return out
}
