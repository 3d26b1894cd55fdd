package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pohonku/pohonku/internal/client/callback"
	"github.com/pohonku/pohonku/internal/client/client"
	"github.com/pohonku/pohonku/internal/client/config"
	"github.com/pohonku/pohonku/internal/client/payment"
	"github.com/pohonku/pohonku/internal/client/services"
	"github.com/pohonku/pohonku/internal/client/session"
	"github.com/pohonku/pohonku/internal/logging"

	_ "modernc.org/sqlite"
)

const defaultLoginTimeout = 5 * time.Minute

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	authService      services.AuthService
	catalogService   services.CatalogService
	adoptionService  services.AdoptionService
	dashboardService services.DashboardService
	widget           payment.Widget

	reader *lineReader
	out    io.Writer
	outMu  sync.Mutex

	listen       func(addr string, h callback.Handler, log logging.Logger) (*callback.Listener, error)
	loginTimeout time.Duration
}

// NewApp opens the session store and wires the API services. in and out are
// the terminal streams.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	db, err := client.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		log.Error(ctx, "error initializing session store", "path", c.SessionDB, "error", err)
		return nil, err
	}

	api := client.New(client.NewAPIClient(c.APIBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log),
	))
	store := session.NewStore(db)

	return &App{
		config: c,
		log:    log,
		db:     db,

		authService:      services.NewAuthService(api.Auth, store, log),
		catalogService:   services.NewCatalogService(api.Species),
		adoptionService:  services.NewAdoptionService(api.Orders, store, log),
		dashboardService: services.NewDashboardService(api.Dashboard, store, log),
		widget: &payment.SnapRedirect{
			BaseURL:   c.SnapBaseURL,
			ClientKey: c.MidtransClientKey,
			Orders:    api.Orders,
			Interval:  c.PaymentPollInterval,
			Out:       out,
			Log:       log,
		},

		reader:       newLineReader(in),
		out:          out,
		listen:       callback.Listen,
		loginTimeout: defaultLoginTimeout,
	}, nil
}

// Run starts the REPL and blocks until the user exits or ctx ends.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to PohonKu (type 'help' for commands)")
	if a.config.APIBaseURL == "" {
		a.println(renderError(&client.ConfigurationError{}))
	}
	runREPL(ctx, a, func() string { return a.prompt(ctx) }, a.reader)
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	sess, err := a.authService.Session(ctx)
	return err == nil && sess != nil
}

func (a *App) prompt(ctx context.Context) string {
	if !interactive() {
		return ""
	}
	if a.isLoggedIn(ctx) {
		return "pohonku (signed in)>"
	}
	return "pohonku (guest)>"
}

func (a *App) println(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}
