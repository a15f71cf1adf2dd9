package catalog

import (
	"context"
	"sync"

	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/api"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/models"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/logging"
)

// Phase is the coordinator's fetch state. Exactly one applies at a time.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseFailed
	PhaseReady
)

// State is the renderable fetch state for the current parameter set. Empty is
// set on a Ready state whose result set has no cars; it is a valid success,
// not an error.
type State struct {
	Phase  Phase
	Err    error
	Page   *models.CarPage
	Empty  bool
	Params api.ListCarsParams
}

// CarLister is the slice of the API client the coordinator needs.
type CarLister interface {
	ListCars(ctx context.Context, params api.ListCarsParams) (*models.CarPage, error)
}

// ListerFunc adapts a function to CarLister, so the same coordinator serves
// the public and the admin listings.
type ListerFunc func(ctx context.Context, params api.ListCarsParams) (*models.CarPage, error)

func (f ListerFunc) ListCars(ctx context.Context, params api.ListCarsParams) (*models.CarPage, error) {
	return f(ctx, params)
}

// Coordinator issues the list request for the current parameter set and keeps
// the rendered state in sync with it. Identity is the parameter value: equal
// parameters hit a response cache instead of the network, and a response that
// arrives after the parameters moved on is discarded, so a stale page can
// never be rendered.
type Coordinator struct {
	mu       sync.Mutex
	lister   CarLister
	log      logging.Logger
	gen      uint64
	state    State
	cache    map[string]*models.CarPage
	onChange func(State)
}

// NewCoordinator builds a coordinator. onChange may be nil; when set it runs
// on every state transition, with the coordinator locked, and must not call
// back into it.
func NewCoordinator(lister CarLister, log logging.Logger, onChange func(State)) *Coordinator {
	return &Coordinator{
		lister:   lister,
		log:      log,
		state:    State{Phase: PhaseIdle},
		cache:    make(map[string]*models.CarPage),
		onChange: onChange,
	}
}

// Refresh makes params the current query and brings the state up to date:
// from cache when this exact parameter set was fetched before, from the
// network otherwise. It blocks until the state settles or the fetch is
// superseded by a newer Refresh, in which case the older response is dropped.
func (c *Coordinator) Refresh(ctx context.Context, params api.ListCarsParams) {
	key := params.Key()

	c.mu.Lock()
	c.gen++
	gen := c.gen
	if page, ok := c.cache[key]; ok {
		c.setStateLocked(readyState(page, params))
		c.mu.Unlock()
		return
	}
	c.setStateLocked(State{Phase: PhaseLoading, Params: params})
	c.mu.Unlock()

	page, err := c.lister.ListCars(ctx, params)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// Parameters changed while this request was in flight; the response
		// belongs to a stale query.
		c.log.Debug(ctx, "discarding stale catalog response", "params", key)
		return
	}
	if err != nil {
		c.log.Error(ctx, "catalog fetch failed", "params", key, "error", err)
		c.setStateLocked(State{Phase: PhaseFailed, Err: err, Params: params})
		return
	}
	c.cache[key] = page
	c.log.Debug(ctx, "catalog fetch complete", "params", key, "total", page.Total)
	c.setStateLocked(readyState(page, params))
}

// Invalidate drops the response cache. The next Refresh for any parameter
// set goes back to the network.
func (c *Coordinator) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]*models.CarPage)
}

// State returns the current fetch state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Coordinator) setStateLocked(s State) {
	c.state = s
	if c.onChange != nil {
		c.onChange(s)
	}
}

func readyState(page *models.CarPage, params api.ListCarsParams) State {
	return State{
		Phase:  PhaseReady,
		Page:   page,
		Empty:  page.Total == 0 && len(page.Cars) == 0,
		Params: params,
	}
}
