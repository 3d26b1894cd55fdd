package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pohonku/pohonku/internal/client/models"
	"github.com/pohonku/pohonku/internal/logging"
)

// DefaultDebounce is the quiet period used when Config.Debounce is zero.
const DefaultDebounce = 500 * time.Millisecond

type Mode string

const (
	// ClientSide loads the full list once and filters it in memory.
	ClientSide Mode = "client"
	// ServerSide sends a debounced backend search after every edit.
	ServerSide Mode = "server"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ClientSide:
		return ClientSide, nil
	case ServerSide, "":
		return ServerSide, nil
	default:
		return "", fmt.Errorf("unknown search mode %q (want client or server)", s)
	}
}

// Source is the backend search used by the Controller. An empty query must
// return the full list.
type Source interface {
	SearchSpecies(ctx context.Context, q models.SearchQuery) (*models.SearchResult, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, q models.SearchQuery) (*models.SearchResult, error)

func (f SourceFunc) SearchSpecies(ctx context.Context, q models.SearchQuery) (*models.SearchResult, error) {
	return f(ctx, q)
}

// Result is one result set delivered to Config.OnResults.
type Result struct {
	// Seq is the sequence number of the query that produced the result.
	Seq   uint64
	Query models.SearchQuery

	Species []models.Species
	// Reported is the count the backend claimed, when it sent one. It may
	// differ from len(Species).
	Reported *int
	Err      error
}

func (r Result) Count() int { return len(r.Species) }

type Config struct {
	Mode     Mode
	Debounce time.Duration
	// IncludeDescription extends client-side text matching to descriptions.
	IncludeDescription bool
	// OnResults receives every non-stale result. It must not call back into
	// the Controller synchronously.
	OnResults func(Result)
	Logger    logging.Logger
}

// Controller owns the search state of one view. It is safe for concurrent
// use. OnResults is never called concurrently with itself, and results that
// arrive after Close are dropped.
type Controller struct {
	src Source
	cfg Config
	log logging.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	query     models.SearchQuery
	all       []models.Species
	loaded    bool
	timer     *time.Timer
	timerGen  uint64
	seq       uint64
	delivered uint64
	last      Result
	closed    bool

	emitMu sync.Mutex
}

func NewController(src Source, cfg Config) *Controller {
	if cfg.Mode == "" {
		cfg.Mode = ServerSide
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{
		src: src,
		cfg: cfg,
		log: log.With("component", "search", "mode", string(cfg.Mode)),
	}
}

// Start performs the initial load: the full list in ClientSide mode, the
// search for the current query in ServerSide mode (all species unless edits
// were made before Start). It blocks until that result has been delivered.
// The controller stops when ctx is cancelled or Close is called.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.ctx != nil {
		c.mu.Unlock()
		return fmt.Errorf("search controller already started")
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.seq++
	runCtx, seq, q := c.ctx, c.seq, c.query

	load := models.SearchQuery{}
	if c.cfg.Mode == ServerSide {
		// the initial search covers any edit still waiting for its timer
		load = q
		c.timerGen++
		if c.timer != nil {
			c.timer.Stop()
			c.timer = nil
		}
	}
	c.mu.Unlock()

	res, err := c.src.SearchSpecies(runCtx, load)
	if err != nil {
		c.deliver(Result{Seq: seq, Query: q, Species: []models.Species{}, Err: err})
		return err
	}

	if c.cfg.Mode == ClientSide {
		// edits made while loading are applied to the loaded list
		c.mu.Lock()
		c.all = res.Data
		c.loaded = true
		c.seq++
		seq, q = c.seq, c.query
		c.mu.Unlock()
		c.deliver(Result{Seq: seq, Query: q, Species: c.filter(res.Data, q)})
		return nil
	}

	c.deliver(Result{Seq: seq, Query: q, Species: nonNil(res.Data), Reported: res.Count})
	return nil
}

func (c *Controller) SetSearch(text string) {
	c.update(func(q *models.SearchQuery) { q.Search = text })
}

func (c *Controller) SetCategory(category string) {
	c.update(func(q *models.SearchQuery) { q.Category = category })
}

func (c *Controller) SetQuery(q models.SearchQuery) {
	c.update(func(cur *models.SearchQuery) { *cur = q })
}

// Reset clears both the text and the category.
func (c *Controller) Reset() {
	c.SetQuery(models.SearchQuery{})
}

// Query returns the current search state.
func (c *Controller) Query() models.SearchQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Last returns the most recently delivered result.
func (c *Controller) Last() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Close cancels any pending debounce timer and the controller context.
// Results that arrive afterwards are dropped. Close is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.timerGen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	cancel := c.cancel
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (c *Controller) update(edit func(q *models.SearchQuery)) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	edit(&c.query)
	q := c.query

	if c.cfg.Mode == ClientSide {
		if !c.loaded {
			// Start filters the list with this query once it arrives
			c.mu.Unlock()
			return
		}
		c.seq++
		seq, all := c.seq, c.all
		c.mu.Unlock()
		c.deliver(Result{Seq: seq, Query: q, Species: c.filter(all, q)})
		return
	}

	c.timerGen++
	gen := c.timerGen
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.cfg.Debounce, func() { c.fire(gen) })
	c.mu.Unlock()
}

// fire issues the backend search for the query current at the end of the
// quiet period. A timer superseded by a later edit does nothing.
func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.timerGen || c.ctx == nil {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.seq++
	seq, q, ctx := c.seq, c.query, c.ctx
	c.mu.Unlock()

	c.log.Debug(ctx, "search issued", "seq", seq, "search", q.Search, "category", q.Category)

	res, err := c.src.SearchSpecies(ctx, q)
	if err != nil {
		c.deliver(Result{Seq: seq, Query: q, Species: []models.Species{}, Err: err})
		return
	}
	c.deliver(Result{Seq: seq, Query: q, Species: nonNil(res.Data), Reported: res.Count})
}

// deliver hands r to OnResults unless a newer query has been issued or
// delivered since r's query, or the controller is closed.
func (c *Controller) deliver(r Result) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	if c.closed || r.Seq != c.seq || r.Seq <= c.delivered {
		latest := c.seq
		c.mu.Unlock()
		c.log.Debug(context.Background(), "stale search result dropped", "seq", r.Seq, "latest", latest)
		return
	}
	c.delivered = r.Seq
	c.last = r
	c.mu.Unlock()

	if r.Err != nil {
		c.log.Warn(context.Background(), "search failed", "seq", r.Seq, "error", r.Err)
	}
	if c.cfg.OnResults != nil {
		c.cfg.OnResults(r)
	}
}

func (c *Controller) filter(list []models.Species, q models.SearchQuery) []models.Species {
	if c.cfg.IncludeDescription {
		return Filter(list, q, WithDescription())
	}
	return Filter(list, q)
}

func nonNil(list []models.Species) []models.Species {
	if list == nil {
		return []models.Species{}
	}
	return list
}
