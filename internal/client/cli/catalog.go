package cli

import (
	"bytes"
	"context"
	"strings"

	"github.com/pohonku/pohonku/internal/client/models"
	"github.com/pohonku/pohonku/internal/client/search"
)

// Species lists the catalog, or shows one species when an id is given.
func (a *App) Species(ctx context.Context, args []string) error {
	if len(args) > 0 {
		s, err := a.catalogService.Get(ctx, args[0])
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		writeSpecies(&buf, s)
		a.printf("%s", buf.String())
		return nil
	}

	res, err := a.catalogService.List(ctx)
	if err != nil {
		return err
	}
	a.printSpecies(res.Data, res.Count)
	return nil
}

func (a *App) Category(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("category <name>")
	}
	res, err := a.catalogService.ByCategory(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	a.printSpecies(res.Data, res.Count)
	return nil
}

// Search runs one server-side search. Without text it lists everything.
func (a *App) Search(ctx context.Context, args []string) error {
	res, err := a.catalogService.Search(ctx, models.SearchQuery{Search: strings.Join(args, " ")})
	if err != nil {
		return err
	}
	a.printSpecies(res.Data, res.Count)
	return nil
}

// Filter narrows the full catalog in memory.
func (a *App) Filter(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("filter <text>")
	}
	list, err := a.catalogService.Filter(ctx, models.SearchQuery{Search: strings.Join(args, " ")})
	if err != nil {
		return err
	}
	a.printSpecies(list, nil)
	return nil
}

// Live turns every input line into a query edit until an empty line.
//
//	<text>        search text
//	:c <name>     category (":c" alone clears it)
//	:r            clear both
func (a *App) Live(ctx context.Context) error {
	mode, err := search.ParseMode(a.config.SearchMode)
	if err != nil {
		return err
	}

	c := search.NewController(search.SourceFunc(a.catalogService.Search), search.Config{
		Mode:      mode,
		Debounce:  a.config.SearchDebounce,
		OnResults: a.printResult,
		Logger:    a.log,
	})
	defer c.Close()

	a.println("Type to search, ':c <category>' to pick a category, ':r' to reset, empty line to stop.")
	if err := c.Start(ctx); err != nil {
		return err
	}

	for {
		line, err := readLine(a.reader)
		if err != nil || line == "" {
			return nil
		}
		switch {
		case line == ":r":
			c.Reset()
		case line == ":c" || strings.HasPrefix(line, ":c "):
			c.SetCategory(strings.TrimSpace(strings.TrimPrefix(line, ":c")))
		default:
			c.SetSearch(line)
		}
	}
}

func (a *App) printResult(r search.Result) {
	if r.Err != nil {
		a.println(renderError(r.Err))
		return
	}
	label := r.Query.Search
	if r.Query.Category != "" {
		label += " [" + r.Query.Category + "]"
	}
	if label != "" {
		a.printf("» %s\n", strings.TrimSpace(label))
	}
	a.printSpecies(r.Species, r.Reported)
}

func (a *App) printSpecies(list []models.Species, reported *int) {
	var buf bytes.Buffer
	if len(list) > 0 {
		writeSpeciesTable(&buf, list)
	}
	buf.WriteString(countLine(len(list), reported) + "\n")
	a.printf("%s", buf.String())
}
