// Package console is the interactive front end of the café: a line-oriented
// menu loop over any reader and writer.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"cafe/pkg/analytics"
	"cafe/pkg/auth"
	"cafe/pkg/domain"
	"cafe/pkg/menu"
	"cafe/pkg/order"
	"cafe/pkg/session"
)

// Deps are the stores and services the console drives. All are required
// except Logger and Now.
type Deps struct {
	Catalog   *menu.Catalog
	Ledger    *order.Ledger
	Analytics *analytics.Engine
	Users     *auth.Store
	Sessions  *session.Manager
	Logger    *slog.Logger
	Now       func() time.Time
}

// Console runs the menus. It is not safe for concurrent use.
type Console struct {
	in        io.Reader
	lines     chan string
	readErr   error
	out       io.Writer
	catalog   *menu.Catalog
	ledger    *order.Ledger
	analytics *analytics.Engine
	users     *auth.Store
	sessions  *session.Manager
	logger    *slog.Logger
	now       func() time.Time
	ctx       context.Context
}

// New builds a console reading commands from in and printing to out.
func New(in io.Reader, out io.Writer, deps Deps) *Console {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Console{
		in:        in,
		out:       out,
		catalog:   deps.Catalog,
		ledger:    deps.Ledger,
		analytics: deps.Analytics,
		users:     deps.Users,
		sessions:  deps.Sessions,
		logger:    logger.With("component", "console"),
		now:       now,
		ctx:       context.Background(),
	}
}

// Run shows the main menu until the user exits, input ends or ctx is cancelled.
func (c *Console) Run(ctx context.Context) error {
	c.ctx = ctx
	c.lines = make(chan string)
	go c.readLines(ctx)

	c.println("=== Café Management System ===")
	err := c.menuLoop("Main Menu", "Exit", nil, []action{
		{"1", "Admin", c.enterAdmin},
		{"2", "Customer", c.customerMenu},
	})
	switch {
	case errors.Is(err, io.EOF):
		c.logger.Info("input closed")
	case errors.Is(err, context.Canceled):
		c.logger.Info("console interrupted")
	case err != nil:
		return err
	}
	c.println("Thanks for using Café Management System!")
	return nil
}

// readLines feeds input lines to ask so a cancelled context is noticed even
// while the user is not typing. The channel is closed at end of input.
func (c *Console) readLines(ctx context.Context) {
	defer close(c.lines)
	sc := bufio.NewScanner(c.in)
	for sc.Scan() {
		select {
		case c.lines <- sc.Text():
		case <-ctx.Done():
			return
		}
	}
	c.readErr = sc.Err()
}

type action struct {
	key   string
	label string
	run   func() error
}

// menuLoop prints actions and dispatches choices until the back key "0" is
// entered. checkpoint, when set, runs before every display and ends the
// loop when it returns false.
func (c *Console) menuLoop(title, back string, checkpoint func() bool, actions []action) error {
	for {
		if err := c.ctx.Err(); err != nil {
			return err
		}
		if checkpoint != nil && !checkpoint() {
			return nil
		}
		c.println("")
		c.println("--- " + title + " ---")
		for _, a := range actions {
			c.printf("%s. %s\n", a.key, a.label)
		}
		c.printf("0. %s\n", back)

		choice, err := c.ask("Select an option")
		if err != nil {
			return err
		}
		if choice == "0" {
			return nil
		}
		found := false
		for _, a := range actions {
			if a.key != choice {
				continue
			}
			found = true
			if err := a.run(); err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
					return err
				}
				c.report(err)
			}
		}
		if !found {
			c.println("Invalid choice. Please try again.")
		}
	}
}

// report explains a failed operation to the user.
func (c *Console) report(err error) {
	switch {
	case errors.Is(err, domain.ErrPersistence):
		c.println("Warning: the change was applied but could not be saved; it may be lost on restart.")
		c.logger.Error("operation not persisted", "err", err)
	case domain.IsValidation(err):
		c.println("Invalid input: " + err.Error())
	default:
		c.println("Error: " + err.Error())
	}
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
