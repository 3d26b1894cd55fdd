package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool

	Species(ctx context.Context, args []string) error
	Category(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	Live(ctx context.Context) error

	Adopt(ctx context.Context, args []string) error
	Order(ctx context.Context, args []string) error
	Dashboard(ctx context.Context) error
	Adoption(ctx context.Context, args []string) error

	Login(ctx context.Context) error
	Me(ctx context.Context) error
	Logout(ctx context.Context) error
}

const helpGuest = `Available commands:
  species [id]        list all species, or show one
  category <name>     list species of a category
  search [text]       search the catalog on the server
  filter <text>       filter the catalog locally
  live                search as you type (empty line to stop)
  login               sign in with Google
  exit | quit         leave the program`

const helpUser = helpGuest + `
  adopt <speciesId>   adopt a tree and pay for it
  order <orderId>     show the payment status of an order
  dashboard           your adoptions and totals
  adoption <id>       details of one adoption
  me                  your profile
  logout              sign out`

// runREPL starts the read–eval–print loop of the PohonKu CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on a. Command errors are rendered inline and the
// loop keeps running, so a failed command can simply be retried. The loop
// exits on EOF, when the user types "exit" or "quit", or when ctx ends.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader lineSource) {
	for {
		if ctx.Err() != nil {
			return
		}
		if p := promptFn(); p != "" {
			printlnFn(p)
		}

		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				printlnFn("read error:", err)
			}
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn(helpUser)
			} else {
				printlnFn(helpGuest)
			}

		case "species":
			err = a.Species(ctx, args)
		case "category":
			err = a.Category(ctx, args)
		case "search":
			err = a.Search(ctx, args)
		case "filter":
			err = a.Filter(ctx, args)
		case "live":
			err = a.Live(ctx)

		case "adopt":
			err = a.Adopt(ctx, args)
		case "order":
			err = a.Order(ctx, args)
		case "dashboard":
			err = a.Dashboard(ctx)
		case "adoption":
			err = a.Adoption(ctx, args)

		case "login":
			err = a.Login(ctx)
		case "me":
			err = a.Me(ctx)
		case "logout":
			err = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn(renderError(err))
		}
	}
}
