package catalog

import (
	"errors"
	"sync"

	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/models"
)

// ErrPriceRange is returned by Apply when the staged minimum price exceeds
// the staged maximum. The drawer stays open and nothing is applied.
var ErrPriceRange = errors.New("minimum price greater than maximum price")

// ChipField identifies one active-filter chip in the summary row.
type ChipField int

const (
	ChipBrand ChipField = iota
	ChipYear
	ChipFinanceable
	ChipPrice
	ChipSort
)

// FilterDrawer holds staged filter edits separately from the applied ones.
// Opening the drawer snapshots applied into staged; edits touch only staged;
// Apply commits the whole staged set as one atomic update, Cancel discards
// it. Removing a chip from the summary row edits applied directly, without
// going through the drawer.
type FilterDrawer struct {
	mu      sync.Mutex
	open    bool
	staged  Filters
	applied Filters
	onApply func(Filters)
}

// NewFilterDrawer builds a drawer over the given applied filters. onApply
// runs exactly once per observable change to the applied set, with the
// complete new value.
func NewFilterDrawer(applied Filters, onApply func(Filters)) *FilterDrawer {
	return &FilterDrawer{applied: applied, onApply: onApply}
}

// Open snapshots the applied filters into the staged copy.
func (d *FilterDrawer) Open() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.open {
		return
	}
	d.open = true
	d.staged = d.applied
}

// Cancel closes the drawer, discarding staged edits.
func (d *FilterDrawer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
	d.staged = d.applied
}

// Apply validates the staged filters, commits them as one atomic update and
// closes the drawer. On a validation error nothing is applied and the drawer
// stays open.
func (d *FilterDrawer) Apply() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.staged.MinPrice != nil && d.staged.MaxPrice != nil && *d.staged.MinPrice > *d.staged.MaxPrice {
		return ErrPriceRange
	}

	d.applied = d.staged
	d.open = false
	d.notifyLocked()
	return nil
}

// ClearAll resets staged and applied to the defaults and applies immediately.
func (d *FilterDrawer) ClearAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.staged = DefaultFilters()
	d.applied = DefaultFilters()
	d.notifyLocked()
}

// RemoveChip resets a single applied filter to its default, bypassing the
// staged copy, and takes effect immediately.
func (d *FilterDrawer) RemoveChip(field ChipField) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch field {
	case ChipBrand:
		d.applied.Brand = All
	case ChipYear:
		d.applied.Year = All
	case ChipFinanceable:
		d.applied.Financeable = TriAll
	case ChipPrice:
		d.applied.MinPrice = nil
		d.applied.MaxPrice = nil
	case ChipSort:
		d.applied.Sort = models.SortNewest
	default:
		return
	}
	d.notifyLocked()
}

func (d *FilterDrawer) SetBrand(brand string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.staged.Brand = brand
}

func (d *FilterDrawer) SetYear(year string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.staged.Year = year
}

func (d *FilterDrawer) SetFinanceable(v TriState) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.staged.Financeable = v
}

func (d *FilterDrawer) SetPriceRange(min, max *int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.staged.MinPrice = min
	d.staged.MaxPrice = max
}

func (d *FilterDrawer) SetSort(order models.SortOrder) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.staged.Sort = order
}

func (d *FilterDrawer) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

func (d *FilterDrawer) Staged() Filters {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.staged
}

func (d *FilterDrawer) Applied() Filters {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.applied
}

func (d *FilterDrawer) notifyLocked() {
	if d.onApply != nil {
		d.onApply(d.applied)
	}
}
