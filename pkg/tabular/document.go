package tabular

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNotMounted is returned when no table is mounted at a target.
var ErrNotMounted = errors.New("tabular: no table mounted")

// Fetcher loads the rows behind a source path or URL.
type Fetcher interface {
	Fetch(ctx context.Context, sourceDataPath string) ([]Row, error)
}

// Document holds at most one live table per target container. Mounting a
// table at a target replaces whatever was there.
type Document struct {
	mu     sync.RWMutex
	tables map[string]*Table
	texts  map[string]string
}

func NewDocument() *Document {
	return &Document{
		tables: make(map[string]*Table),
		texts:  make(map[string]string),
	}
}

// Mount attaches t to its target, replacing any previous table there.
func (d *Document) Mount(t *Table) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tables[t.Target()] = t
}

// Table returns the table mounted at target.
func (d *Document) Table(target string) (*Table, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.tables[target]
	if !ok {
		return nil, fmt.Errorf("%w at %q", ErrNotMounted, target)
	}
	return t, nil
}

// SetText sets the text content of a status element such as a last-updated
// stamp.
func (d *Document) SetText(selector, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.texts[selector] = text
}

// Text returns the text content of selector.
func (d *Document) Text(selector string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.texts[selector]
}

// Renderer fetches data and mounts tables into a Document.
type Renderer struct {
	doc     *Document
	fetcher Fetcher
}

func NewRenderer(doc *Document, fetcher Fetcher) *Renderer {
	return &Renderer{doc: doc, fetcher: fetcher}
}

func (r *Renderer) Document() *Document { return r.doc }

// CreateTable fetches sourceDataPath, builds the table, mounts it at the
// configured target and applies the initial sort if SortCol is set. A fetch
// or build failure is returned and nothing is mounted.
func (r *Renderer) CreateTable(ctx context.Context, sourceDataPath string, opts *Options) (*Table, error) {
	o := WithDefaults(opts)

	data, err := r.fetcher.Fetch(ctx, sourceDataPath)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", sourceDataPath, err)
	}

	t, err := BuildTable(data, &o)
	if err != nil {
		return nil, err
	}
	r.doc.Mount(t)
	if o.SortCol != "" {
		// The table stays mounted unsorted when the sort column has no header.
		if err := t.ClickHeader(HeaderIDPrefix + o.SortCol); err != nil {
			return t, fmt.Errorf("initial sort: %w", err)
		}
	}
	return t, nil
}
