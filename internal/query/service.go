// Package query reconstructs aggregate error views from the append-only
// event store. It is a pure read layer: the presentation surface calls
// it, and it never writes.
package query

import (
	"context"

	"github.com/flaregun-dev/flaregun/internal/model"
	"golang.org/x/sync/errgroup"
)

// Service composes store queries into the shapes the dashboard consumes.
type Service struct {
	store model.EventQuerier
}

// NewService creates a query service over the given store.
func NewService(store model.EventQuerier) *Service {
	return &Service{store: store}
}

// ListGroups returns the top error groups by volume within the window,
// capped at the group listing limit.
func (s *Service) ListGroups(window model.Window) ([]model.ErrorGroup, error) {
	return s.store.ListGroups(window.Duration(), model.GroupListLimit)
}

// GetDetail resolves one fingerprint's full detail view within the
// window. The base group lookup and the four breakdowns are independent,
// so they run concurrently and all join before the result is composed.
// An unknown fingerprint yields (nil, nil); the speculative breakdown
// results are discarded. A failed sub-query yields an error, which is
// distinct from absence.
func (s *Service) GetDetail(ctx context.Context, fingerprint string, window model.Window) (*model.ErrorDetail, error) {
	d := window.Duration()

	var (
		group      *model.ErrorGroup
		urls       []model.DimensionCount
		browsers   []model.DimensionCount
		oses       []model.DimensionCount
		timeseries []model.TimeBucket
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		group, err = s.store.GroupByFingerprint(fingerprint, d)
		return err
	})
	g.Go(func() error {
		var err error
		urls, err = s.store.TopURLs(fingerprint, d, model.BreakdownLimit)
		return err
	})
	g.Go(func() error {
		var err error
		browsers, err = s.store.TopBrowsers(fingerprint, d, model.BreakdownLimit)
		return err
	})
	g.Go(func() error {
		var err error
		oses, err = s.store.TopOSes(fingerprint, d, model.BreakdownLimit)
		return err
	})
	g.Go(func() error {
		var err error
		timeseries, err = s.store.Timeseries(fingerprint, d)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if group == nil {
		return nil, nil
	}
	return &model.ErrorDetail{
		ErrorGroup: *group,
		URLs:       urls,
		Browsers:   browsers,
		OSes:       oses,
		Timeseries: timeseries,
	}, nil
}
