package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/client"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/config"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/services"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/session"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/sink"
	"github.com/dmitrijs2005/dessertcatalog/internal/logging"

	_ "modernc.org/sqlite"
)

// App bundles the services a command needs and the streams it talks to.
type App struct {
	config   *config.Config
	auth     services.AuthService
	catalog  services.CatalogService
	exporter services.ExportService
	uploads  services.UploadService
	users    services.UserService
	logs     services.LogService
	log      logging.Logger

	out    io.Writer
	errOut io.Writer
	reader *bufio.Reader

	closers []func() error
}

// NewApp opens the local session database (or an in-memory store when
// ephemeral is set), the logger and the HTTP client described by c. A log
// file of "-" logs text to stderr and an empty one disables logging.
func NewApp(ctx context.Context, c *config.Config, ephemeral bool) (*App, error) {
	var closers []func() error
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}

	var log logging.Logger = logging.NewDiscardLogger()
	switch c.LogFile {
	case "":
	case "-":
		sl, err := logging.NewTextLogger(os.Stderr, c.LogLevel)
		if err != nil {
			return nil, err
		}
		log = sl
	default:
		zl, err := logging.NewFileLogger(c.LogFile, c.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("error opening log file: %w", err)
		}
		closers = append(closers, zl.Close)
		log = zl
	}

	var store session.Store
	if ephemeral {
		store = session.NewMemoryStore()
	} else {
		db, err := client.InitDatabase(ctx, c.DatabasePath)
		if err != nil {
			log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
			closeAll()
			return nil, fmt.Errorf("error initializing database: %w", err)
		}
		closers = append(closers, db.Close)
		store = session.NewSQLiteStore(db)
	}

	app := newApp(c, store, log, client.WithTimeout(c.RequestTimeout))
	app.closers = closers
	return app, nil
}

func newApp(c *config.Config, store session.Store, log logging.Logger, opts ...client.Option) *App {
	opts = append([]client.Option{client.WithLogger(log)}, opts...)
	api := client.NewHTTPClient(c.BaseURL, store, opts...)

	return &App{
		config:   c,
		auth:     services.NewAuthService(api, store, log),
		catalog:  services.NewCatalogService(api, c.CategoriesCacheTTL, log),
		exporter: services.NewExportService(api, log),
		uploads:  services.NewUploadService(api, log),
		users:    services.NewUserService(api),
		logs:     services.NewLogService(api),
		log:      log,
		out:      os.Stdout,
		errOut:   os.Stderr,
		reader:   bufio.NewReader(os.Stdin),
	}
}

// Close releases the database and flushes the log, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// imageBase is the origin relative image references are resolved against.
func (a *App) imageBase() string {
	u, err := url.Parse(a.config.BaseURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// resolveSink maps an export destination onto a sink. With no destination
// and a configured bucket the export goes to S3.
func (a *App) resolveSink(ctx context.Context, dest string) (sink.Sink, string, error) {
	c := a.config
	if dest == "" && c.S3Bucket != "" {
		dest = "s3://" + c.S3Bucket + "/"
	}
	return sink.Resolve(ctx, dest, sink.Options{
		ExportDir: c.ExportDir,
		S3: sink.S3Config{
			Region:    c.S3Region,
			Endpoint:  c.S3Endpoint,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
		},
	})
}
