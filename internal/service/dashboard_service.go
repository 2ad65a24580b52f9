package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/locvowork/census_dashboard/internal/dashboard"
	"github.com/locvowork/census_dashboard/internal/logger"
	"github.com/locvowork/census_dashboard/pkg/tabular"
)

// ErrUnsupportedFormat is returned by Export for unknown formats.
var ErrUnsupportedFormat = errors.New("unsupported export format")

const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// Page is what a dashboard page needs to render: the definition, the live
// table snapshot and the status stamp.
type Page struct {
	Dashboard dashboard.Dashboard
	View      tabular.TableView
	Status    string
}

type DashboardService interface {
	Names() []string
	Dashboard(name string) (dashboard.Dashboard, error)
	Refresh(ctx context.Context, name string) (*Page, error)
	RefreshAll(ctx context.Context) error
	Page(ctx context.Context, name string) (*Page, error)
	Sort(ctx context.Context, name, column string) (*Page, error)
	Export(ctx context.Context, name, format string, w io.Writer) error
	StartRefresher(ctx context.Context, interval time.Duration)
}

type dashboardService struct {
	registry *dashboard.Registry
	fetcher  tabular.Fetcher
	now      func() time.Time

	mu        sync.Mutex
	renderers map[string]*tabular.Renderer
}

// NewDashboardService gives every dashboard its own document, so tables of
// different dashboards never replace each other.
func NewDashboardService(registry *dashboard.Registry, fetcher tabular.Fetcher) DashboardService {
	return newDashboardService(registry, fetcher, time.Now)
}

func newDashboardService(registry *dashboard.Registry, fetcher tabular.Fetcher, now func() time.Time) *dashboardService {
	return &dashboardService{
		registry:  registry,
		fetcher:   fetcher,
		now:       now,
		renderers: make(map[string]*tabular.Renderer),
	}
}

func (s *dashboardService) Names() []string {
	return s.registry.Names()
}

func (s *dashboardService) Dashboard(name string) (dashboard.Dashboard, error) {
	return s.registry.Get(name)
}

func (s *dashboardService) renderer(name string) *tabular.Renderer {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.renderers[name]
	if !ok {
		r = tabular.NewRenderer(tabular.NewDocument(), s.fetcher)
		s.renderers[name] = r
	}
	return r
}

func (s *dashboardService) Refresh(ctx context.Context, name string) (*Page, error) {
	d, err := s.registry.Get(name)
	if err != nil {
		return nil, err
	}
	r := s.renderer(name)

	start := s.now()
	table, err := dashboard.Initialize(ctx, r, d, s.now)
	if table == nil {
		return nil, err
	}
	if err != nil {
		// Mounted but the initial sort failed; the page is still usable.
		logger.WarnLog(ctx, "dashboard %s rendered unsorted: %v", name, err)
	}
	logger.InfoLog(ctx, "dashboard %s refreshed with %d rows in %s", name, len(table.View().Rows), s.now().Sub(start))
	return s.page(d, r, table), nil
}

func (s *dashboardService) RefreshAll(ctx context.Context) error {
	var errs []error
	for _, name := range s.registry.Names() {
		if _, err := s.Refresh(ctx, name); err != nil {
			logger.ErrorLog(ctx, "refresh dashboard %s: %v", name, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Page returns the mounted table, rendering it first if it has never been
// rendered.
func (s *dashboardService) Page(ctx context.Context, name string) (*Page, error) {
	d, err := s.registry.Get(name)
	if err != nil {
		return nil, err
	}
	r := s.renderer(name)
	table, err := r.Document().Table(tabular.WithDefaults(&d.Options).TargetTableElement)
	if errors.Is(err, tabular.ErrNotMounted) {
		return s.Refresh(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	return s.page(d, r, table), nil
}

func (s *dashboardService) Sort(ctx context.Context, name, column string) (*Page, error) {
	p, err := s.Page(ctx, name)
	if err != nil {
		return nil, err
	}
	r := s.renderer(name)
	table, err := r.Document().Table(p.View.Target)
	if err != nil {
		return nil, err
	}
	if err := table.Click(column); err != nil {
		return nil, err
	}
	logger.DebugLog(ctx, "dashboard %s sorted by %s ascending=%t", name, column, table.SortAscending())
	return s.page(p.Dashboard, r, table), nil
}

func (s *dashboardService) Export(ctx context.Context, name, format string, w io.Writer) error {
	p, err := s.Page(ctx, name)
	if err != nil {
		return err
	}
	switch format {
	case FormatXLSX:
		return tabular.WriteXLSX(w, p.View, tabular.XLSXOptions{
			SheetName: p.Dashboard.Name,
			Title:     p.Dashboard.Title,
		})
	case FormatCSV:
		return tabular.WriteCSV(w, p.View)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// StartRefresher re-renders every dashboard each interval until ctx is done.
// A non-positive interval disables it.
func (s *dashboardService) StartRefresher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = s.RefreshAll(ctx)
			}
		}
	}()
}

func (s *dashboardService) page(d dashboard.Dashboard, r *tabular.Renderer, table *tabular.Table) *Page {
	return &Page{
		Dashboard: d,
		View:      table.View(),
		Status:    r.Document().Text(d.StatusElement),
	}
}
