package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/catalog"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/export"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// replTarget is what the read-eval-print loop drives. The browser
// satisfies it; tests can provide a lightweight stub.
type replTarget interface {
	prompt(ctx context.Context) string
	// dispatch runs one command and reports whether the loop goes on.
	dispatch(ctx context.Context, cmd string, args []string) bool
}

// runREPL reads commands from reader until EOF, "exit" or "quit", or until
// ctx is cancelled. The first word of a line is the command, the rest its
// arguments; blank lines are skipped.
func runREPL(ctx context.Context, t replTarget, reader *bufio.Reader, w io.Writer) {
	for ctx.Err() == nil {
		fmt.Fprint(w, t.prompt(ctx))
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if !t.dispatch(ctx, parts[0], parts[1:]) {
			return
		}
	}
}

const browseHelp = `Commands:
  reload                 fetch the catalog again
  list                   show the filtered desserts
  search [text]          filter by title or description (no text clears)
  category [name]        filter by category (no name clears)
  categories             list the known categories
  toggle <id>...         select or deselect desserts
  all                    select the filtered desserts, or clear when all are selected
  clear                  clear the selection
  selected               show the selection
  show <id>              show one dessert
  template [name]        show or choose the PDF template
  export [dest]          export the selection to a PDF
  login | logout         open or close the session
  exit | quit            leave`

// browser is the interactive catalog: a filtered view with a selection
// that is exported as one PDF.
type browser struct {
	app        *App
	state      *catalog.State
	categories []string
	builder    *export.Builder
}

func newBrowser(ctx context.Context, a *App) *browser {
	return &browser{
		app:     a,
		state:   catalog.NewState(nil),
		builder: a.newBuilder(ctx),
	}
}

// Browse loads the catalog and runs the interactive loop.
func (a *App) Browse(ctx context.Context) error {
	a.printf("Dessert catalog (type 'help' for commands)\n")
	b := newBrowser(ctx, a)
	if err := b.reload(ctx); err != nil {
		a.fail(err)
	}
	runREPL(ctx, b, a.reader, a.out)
	a.printf("Bye!\n")
	return nil
}

func newBrowseCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse, filter and select desserts interactively, then export them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.app.Browse(cmd.Context())
		},
	}
}

func (b *browser) prompt(ctx context.Context) string {
	name := "guest"
	if u, err := b.app.auth.StoredUser(ctx); err == nil && u != nil {
		name = u.Username
	}
	return fmt.Sprintf("catalog (%s, %d selected)> ", name, b.state.SelectedCount())
}

func (b *browser) dispatch(ctx context.Context, cmd string, args []string) bool {
	a := b.app
	var err error

	switch cmd {
	case "help":
		a.printf("%s\n", browseHelp)
	case "reload":
		err = b.reload(ctx)
	case "list", "ls":
		b.list()
	case "search":
		b.state.SetSearch(strings.Join(args, " "))
		b.list()
	case "category":
		b.setCategory(strings.Join(args, " "))
	case "categories":
		for _, c := range b.categories {
			a.printf("%s\n", c)
		}
	case "toggle", "t":
		err = b.toggle(args)
	case "all":
		b.state.SelectAll()
		a.printf("%d selected\n", b.state.SelectedCount())
	case "clear":
		b.state.ClearSelection()
		a.printf("Selection cleared\n")
	case "selected":
		b.selected()
	case "show":
		err = b.show(ctx, args)
	case "template":
		err = b.template(args)
	case "export":
		err = b.export(ctx, strings.Join(args, " "))
	case "login":
		if err = a.Login(ctx, strings.Join(args, " ")); err == nil {
			b.builder = b.rebuild(ctx)
			err = b.reload(ctx)
		}
	case "logout":
		if err = a.Logout(ctx); err == nil {
			b.builder = b.rebuild(ctx)
		}
	case "exit", "quit":
		return false
	default:
		a.printf("Unknown command: %s\n", cmd)
	}

	if err != nil {
		a.fail(err)
	}
	return true
}

// reload fetches entries and categories concurrently. On failure the
// previous state is kept.
func (b *browser) reload(ctx context.Context) error {
	var (
		entries []models.Dessert
		cats    []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = b.app.catalog.List(gctx, models.DessertQuery{})
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = b.app.catalog.Categories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	b.state.SetEntries(entries)
	b.categories = cats
	b.app.printf("Loaded %d dessert(s)\n", len(entries))
	return nil
}

// rebuild returns a fresh builder with the new user's company defaults,
// keeping the chosen template.
func (b *browser) rebuild(ctx context.Context) *export.Builder {
	next := b.app.newBuilder(ctx)
	_ = next.WithTemplate(b.builder.Template())
	return next
}

func (b *browser) list() {
	view := b.state.Filtered()
	a := b.app

	filters := []string{}
	if s := b.state.Search(); s != "" {
		filters = append(filters, fmt.Sprintf("search %q", s))
	}
	if c := b.state.Category(); c != "" {
		filters = append(filters, fmt.Sprintf("category %q", c))
	}
	summary := fmt.Sprintf("%d of %d dessert(s)", len(view), len(b.state.Entries()))
	if len(filters) > 0 {
		summary += ", " + strings.Join(filters, ", ")
	}
	a.heading("%s; %d selected", summary, b.state.SelectedCount())

	if len(view) == 0 {
		a.warn("Nothing matches")
		return
	}
	a.dessertTable(view, b.state.IsSelected)
}

func (b *browser) setCategory(name string) {
	if name != "" && len(b.categories) > 0 && !containsFold(b.categories, name) {
		b.app.warn("%q is not a known category", name)
	}
	b.state.SetCategory(name)
	b.list()
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}

func (b *browser) toggle(args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return errors.New("usage: toggle <id>...")
	}
	for _, id := range ids {
		if _, ok := b.state.Entry(id); !ok {
			b.app.warn("No dessert #%d", id)
			continue
		}
		b.state.Toggle(id)
	}
	b.app.printf("%d selected\n", b.state.SelectedCount())
	return nil
}

func (b *browser) selected() {
	ids := b.state.SelectedKnown()
	if len(ids) == 0 {
		b.app.printf("Nothing selected\n")
		return
	}
	entries := make([]models.Dessert, 0, len(ids))
	for _, id := range ids {
		e, _ := b.state.Entry(id)
		entries = append(entries, e)
	}
	b.app.dessertTable(entries, nil)
}

func (b *browser) show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: show <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if e, ok := b.state.Entry(id); ok {
		b.app.printDessert(&e)
		return nil
	}
	d, err := b.app.catalog.Get(ctx, id)
	if err != nil {
		return err
	}
	b.app.printDessert(d)
	return nil
}

func (b *browser) template(args []string) error {
	if len(args) == 0 {
		b.app.printTemplates(b.builder.Template())
		return nil
	}
	t, err := export.ParseTemplate(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if err := b.builder.WithTemplate(t); err != nil {
		return err
	}
	b.app.printf("Template: %s\n", t)
	return nil
}

// export sends the selected entries that are still in the catalog and
// clears the selection once the PDF is written.
func (b *browser) export(ctx context.Context, dest string) error {
	ids := b.state.SelectedKnown()
	if err := b.app.Export(ctx, b.builder, ids, dest); err != nil {
		return err
	}
	b.state.ClearSelection()
	return nil
}
