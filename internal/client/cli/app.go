package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/api"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/catalog"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/config"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/models"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/session"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/logging"
)

// App is the interactive client. It owns the session, the API client and the
// catalog state, and dispatches REPL commands to them.
type App struct {
	config  *config.Config
	log     logging.Logger
	api     api.Client
	session *session.Session
	reader  *bufio.Reader

	garage *models.Garage
	brands []models.Brand

	qmu       sync.Mutex
	query     catalog.QueryState
	invQuery  catalog.QueryState
	drawer    *catalog.FilterDrawer
	search    *catalog.Debouncer
	catalog   *catalog.Coordinator
	inventory *catalog.Coordinator
}

func NewApp(c *config.Config, log logging.Logger) *App {
	sess := session.New()

	a := &App{
		config:   c,
		log:      log,
		session:  sess,
		reader:   bufio.NewReader(os.Stdin),
		query:    catalog.DefaultQuery(c.PageSize),
		invQuery: catalog.DefaultQuery(c.PageSize),
	}

	a.api = api.NewHTTPClient(c.APIBaseURL, sess,
		api.WithTimeout(c.HTTPTimeout),
		api.WithUnauthorizedHook(func() {
			fmt.Println("Sessão expirada, faça login novamente.")
		}),
	)

	a.catalog = catalog.NewCoordinator(catalog.ListerFunc(a.api.ListCars), log, nil)
	a.inventory = catalog.NewCoordinator(catalog.ListerFunc(a.api.ListAdminCars), log, nil)

	a.drawer = catalog.NewFilterDrawer(a.query.Filters, func(f catalog.Filters) {
		a.updateQuery(func(q catalog.QueryState) catalog.QueryState {
			return q.WithFilters(f)
		})
		a.refreshCatalog(context.Background())
		a.renderCatalog()
	})

	a.search = catalog.NewDebouncer(c.SearchDebounce,
		func(text string) {
			fmt.Printf("search: %s\n", text)
		},
		func(text string) {
			a.updateQuery(func(q catalog.QueryState) catalog.QueryState {
				return q.WithSearch(text)
			})
			a.refreshCatalog(context.Background())
			a.renderCatalog()
		},
	)

	return a
}

// Bootstrap loads the garage profile and the brand directory concurrently.
// Without a garage profile the client cannot render anything meaningful, so
// any failure aborts startup.
func (a *App) Bootstrap(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		garage, err := a.api.GetGarage(ctx)
		if err != nil {
			return fmt.Errorf("load garage profile: %w", err)
		}
		a.garage = garage
		return nil
	})
	g.Go(func() error {
		brands, err := a.api.ListBrands(ctx)
		if err != nil {
			return fmt.Errorf("load brand directory: %w", err)
		}
		a.brands = brands
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.log.Info(ctx, "bootstrap complete", "garage", a.garage.Name, "brands", len(a.brands))
	return nil
}

// Run starts the REPL. It blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.search.Stop()

	name := "dealership"
	if a.garage != nil {
		name = a.garage.Name
	}
	fmt.Printf("Welcome to %s (type 'help' for commands)\n", name)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) getStatus() string {
	s := ""
	if a.isLoggedIn() {
		s = a.session.User().Name
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}

func (a *App) updateQuery(f func(catalog.QueryState) catalog.QueryState) catalog.QueryState {
	a.qmu.Lock()
	defer a.qmu.Unlock()
	a.query = f(a.query)
	return a.query
}

func (a *App) updateInvQuery(f func(catalog.QueryState) catalog.QueryState) catalog.QueryState {
	a.qmu.Lock()
	defer a.qmu.Unlock()
	a.invQuery = f(a.invQuery)
	return a.invQuery
}

func (a *App) refreshCatalog(ctx context.Context) {
	a.qmu.Lock()
	params := catalog.BuildParams(a.query, a.brands)
	a.qmu.Unlock()
	a.catalog.Refresh(ctx, params)
}

func (a *App) refreshInventory(ctx context.Context) {
	a.qmu.Lock()
	params := catalog.BuildParams(a.invQuery, a.brands)
	a.qmu.Unlock()
	a.inventory.Refresh(ctx, params)
}
