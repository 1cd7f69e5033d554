package console

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sooquk/dashboard/internal/application/listview"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/i18n"
)

// ErrUsage is returned when the command line cannot be understood
var ErrUsage = errors.New("usage")

type command struct {
	args  string
	about string
	run   func(ctx context.Context, args []string) error
}

// App is the dashboard command line: dashboard <resource> <verb> [flags] [args]
type App struct {
	svc  *Services
	deps Deps
	out  io.Writer

	commands map[string]map[string]command
}

// NewApp creates the command line over svc, writing pages to out
func NewApp(svc *Services, deps Deps, out io.Writer) *App {
	a := &App{svc: svc, deps: deps.withDefaults(), out: out}
	a.commands = a.register()
	return a
}

// Run executes one command. Failed actions were already reported as a
// toast; other failures are reported here.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		a.Usage("")
		return ErrUsage
	}
	resource, verb := args[0], args[1]
	verbs, ok := a.commands[resource]
	if !ok {
		a.Usage("")
		return fmt.Errorf("%w: unknown resource %q", ErrUsage, resource)
	}
	cmd, ok := verbs[verb]
	if !ok {
		a.Usage(resource)
		return fmt.Errorf("%w: unknown command %q for %s", ErrUsage, verb, resource)
	}

	log := a.deps.Logger.With(zap.String("resource", resource), zap.String("verb", verb))
	log.Debug("Running command")

	err := cmd.run(ctx, args[2:])
	var actionErr *ActionError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, flag.ErrHelp):
		return nil
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(a.out, "%v\nusage: dashboard %s %s %s\n", err, resource, verb, cmd.args)
	case errors.Is(err, shared.ErrNotConfirmed):
		fmt.Fprintln(a.out, a.deps.Translator.T(i18n.Cancelled))
	case errors.As(err, &actionErr):
	default:
		a.deps.Notifier.Error(ErrorMessage(err, a.deps.Translator))
	}
	log.Debug("Command failed", zap.Error(err))
	return err
}

// Usage lists the commands of resource, or every resource when empty
func (a *App) Usage(resource string) {
	resources := make([]string, 0, len(a.commands))
	for r := range a.commands {
		if resource == "" || r == resource {
			resources = append(resources, r)
		}
	}
	sort.Strings(resources)

	fmt.Fprintln(a.out, "usage: dashboard [flags] <resource> <command> [command flags] [args]")
	for _, r := range resources {
		verbs := make([]string, 0, len(a.commands[r]))
		for v := range a.commands[r] {
			verbs = append(verbs, v)
		}
		sort.Strings(verbs)
		fmt.Fprintf(a.out, "\n%s\n", r)
		tw := newTabWriter(a.out)
		for _, v := range verbs {
			c := a.commands[r][v]
			fmt.Fprintf(tw, "  %s %s\t%s\n", v, c.args, c.about)
		}
		tw.Flush()
	}
}

func (a *App) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// listFlags are shared by every list command
type listFlags struct {
	page   int
	search string
}

func (a *App) listFlags(name string) (*flag.FlagSet, *listFlags) {
	fs := a.flags(name)
	lf := &listFlags{}
	fs.IntVar(&lf.page, "page", 1, "page number")
	fs.StringVar(&lf.search, "search", "", "text search")
	return fs, lf
}

// showList mounts a list page on the requested page and renders it
func showList[T any, F listview.Filter](ctx context.Context, w io.Writer, lp *ListPage[T, F], page int) error {
	defer lp.Close()
	if page > 1 {
		lp.State().SetPage(page)
	}
	res, err := lp.Mount(ctx)
	if err != nil {
		return err
	}
	if res.HasData {
		// Await can return before the change callback has run
		lp.State().Observe(res.Data.Pagination)
		if res.Data.Pagination.PageNumber != lp.State().Page() {
			res = lp.Page(ctx, lp.State().Page())
		}
	}
	if err := lp.RenderResult(w, res); err != nil {
		return err
	}
	if !res.HasData && res.Err != nil {
		return res.Err
	}
	return nil
}

func argID(fs *flag.FlagSet) (int64, error) {
	if fs.NArg() < 1 {
		return 0, fmt.Errorf("%w: missing id", ErrUsage)
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", ErrUsage, fs.Arg(0))
	}
	return id, nil
}

func argString(fs *flag.FlagSet, i int, what string) (string, error) {
	if fs.NArg() <= i || strings.TrimSpace(fs.Arg(i)) == "" {
		return "", fmt.Errorf("%w: missing %s", ErrUsage, what)
	}
	return fs.Arg(i), nil
}

// optBool parses "", "true" or "false"
func optBool(s string) (*bool, error) {
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a boolean", ErrUsage, s)
	}
	return &b, nil
}

func optInt(n int) *int {
	if n < 0 {
		return nil
	}
	return &n
}

func optInt64(n int64) *int64 {
	if n <= 0 {
		return nil
	}
	return &n
}

func optDecimal(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a number", ErrUsage, s)
	}
	return &d, nil
}

// readPayload decodes the JSON file at path into v
func readPayload(path string, v any) error {
	if path == "" {
		return fmt.Errorf("%w: -f <file.json> is required", ErrUsage)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// readFile loads an upload. An empty path means no file.
func readFile(path string) (*shared.File, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &shared.File{
		Name:        filepath.Base(path),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}
