package client

import (
	"context"
	"sync"

	"github.com/stockroom/backoffice/internal/domain/report"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Snapshot is one consistent pull of the collections a dashboard needs
type Snapshot struct {
	Products  []report.ProductSnapshot
	Sells     []report.SellLine
	Purchases []report.PurchaseLine
}

// Catalog indexes the snapshot's products
func (s *Snapshot) Catalog() report.Catalog {
	return report.NewCatalog(s.Products)
}

// View is a rolled-up dashboard for one filter
type View struct {
	Filter report.SellFilter
	Sells  []report.SellLine
	Rollup report.Rollup
}

// NewView filters the snapshot's sells and rolls them up.
// Average purchase prices always use every purchase, not only the filtered ones.
func NewView(s *Snapshot, f report.SellFilter) *View {
	products := s.Catalog()
	sells := report.FilterSells(s.Sells, products, f)
	return &View{
		Filter: f,
		Sells:  sells,
		Rollup: report.RollupSells(sells, s.Purchases, products),
	}
}

// Snapshot fetches products, sells and purchases in parallel
func (c *Client) Snapshot(ctx context.Context) (*Snapshot, error) {
	var s Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.Products, err = c.Products(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.Sells, err = c.Sells(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.Purchases, err = c.Purchases(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadDashboard pulls a fresh snapshot and rolls it up for f
func (c *Client) LoadDashboard(ctx context.Context, f report.SellFilter) (*View, error) {
	s, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return NewView(s, f), nil
}

type dashboardLoader interface {
	LoadDashboard(ctx context.Context, f report.SellFilter) (*View, error)
}

// Dashboard holds the most recent view. Loads may overlap; each is tagged
// with a sequence number when it starts, and a result older than the one
// already applied is dropped.
type Dashboard struct {
	loader dashboardLoader
	logger *zap.Logger

	mu      sync.Mutex
	next    uint64
	applied uint64
	current *View
}

// NewDashboard creates a dashboard fed by loader (normally a *Client)
func NewDashboard(loader dashboardLoader, logger *zap.Logger) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dashboard{loader: loader, logger: logger}
}

// Load fetches a view for f. It reports whether the result was applied;
// a stale result is returned unapplied with applied=false.
func (d *Dashboard) Load(ctx context.Context, f report.SellFilter) (view *View, applied bool, err error) {
	d.mu.Lock()
	d.next++
	seq := d.next
	d.mu.Unlock()

	view, err = d.loader.LoadDashboard(ctx, f)
	if err != nil {
		return nil, false, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if seq < d.applied {
		d.logger.Debug("Discarding stale dashboard load",
			zap.Uint64("seq", seq),
			zap.Uint64("applied", d.applied))
		return view, false, nil
	}
	d.applied = seq
	d.current = view
	return view, true, nil
}

// Current returns the last applied view, or nil before the first load
func (d *Dashboard) Current() *View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}
