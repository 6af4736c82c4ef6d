package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/client"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/services"
	"github.com/fatih/color"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed)
	headColor = color.New(color.Bold)
)

var errBadCredentials = errors.New("invalid username or password")

// describe turns an error into the line shown to the user.
func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return "session expired, please login"
	case errors.Is(err, services.ErrNotLoggedIn):
		return "not logged in, please login"
	case errors.Is(err, client.ErrUnavailable):
		return "catalog service is unavailable, try again later"
	case errors.Is(err, client.ErrForbidden):
		return "you do not have permission to do that"
	case errors.As(err, &apiErr):
		return apiErr.Message()
	}
	return err.Error()
}

func printError(w io.Writer, err error) {
	errColor.Fprintln(w, "Error:", describe(err))
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) success(format string, args ...any) {
	okColor.Fprintf(a.out, format+"\n", args...)
}

func (a *App) warn(format string, args ...any) {
	warnColor.Fprintf(a.out, format+"\n", args...)
}

func (a *App) heading(format string, args ...any) {
	headColor.Fprintf(a.out, format+"\n", args...)
}

// fail reports err without stopping the caller; used by the REPL.
func (a *App) fail(err error) {
	printError(a.errOut, err)
}

// table writes tab-aligned rows under an upper-case header.
func (a *App) table(header []string, rows [][]string) {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(header, "\t")))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	_ = tw.Flush()
}

// fields writes "label: value" pairs with aligned values.
func (a *App) fields(pairs [][2]string) {
	tw := tabwriter.NewWriter(a.out, 0, 0, 1, ' ', 0)
	for _, p := range pairs {
		fmt.Fprintf(tw, "%s:\t%s\n", p[0], p[1])
	}
	_ = tw.Flush()
}

func str(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func num(f *float64) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// parseIDs accepts ids as separate arguments, comma lists, or both.
func parseIDs(args []string) ([]int64, error) {
	var ids []int64
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := parseID(part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
