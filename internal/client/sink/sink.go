// Package sink stores exported catalog documents: on the local disk or in
// an S3-compatible bucket.
package sink

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/dessertcatalog/internal/common"
	"github.com/dmitrijs2005/dessertcatalog/internal/filex"
)

// Sink writes one named document and returns where it ended up.
type Sink interface {
	Write(ctx context.Context, name string, data []byte) (string, error)
}

var ErrBadDestination = errors.New("bad destination")

// FileSink writes into a directory, creating it on first use.
type FileSink struct {
	Dir string
}

func (s FileSink) Write(_ context.Context, name string, data []byte) (string, error) {
	dir, err := filex.EnsureDir(s.Dir)
	if err != nil {
		return "", err
	}
	return filex.WriteFileAtomic(dir, filepath.Base(name), data)
}

// Options carries what Resolve needs to build a sink.
type Options struct {
	ExportDir string
	S3        S3Config
}

// Resolve turns a user supplied destination into a sink and a file name:
//
//	""                 -> ExportDir/catalog.pdf
//	"out/"             -> out/catalog.pdf (also for an existing directory)
//	"out/menu.pdf"     -> out/menu.pdf
//	"s3://bucket/key"  -> key in bucket
//	"s3://bucket"      -> catalog.pdf in bucket
func Resolve(ctx context.Context, dest string, opts Options) (Sink, string, error) {
	if strings.HasPrefix(dest, "s3://") {
		u, err := url.Parse(dest)
		if err != nil || u.Host == "" {
			return nil, "", fmt.Errorf("%w: %q", ErrBadDestination, dest)
		}
		key := strings.TrimPrefix(u.Path, "/")
		if key == "" || strings.HasSuffix(key, "/") {
			key += common.DefaultExportFileName
		}

		cfg := opts.S3
		cfg.Bucket = u.Host
		s, err := NewS3Sink(ctx, cfg)
		if err != nil {
			return nil, "", err
		}
		return s, key, nil
	}

	if dest == "" {
		dir := opts.ExportDir
		if dir == "" {
			dir = "."
		}
		return FileSink{Dir: dir}, common.DefaultExportFileName, nil
	}

	if strings.HasSuffix(dest, "/") || strings.HasSuffix(dest, string(filepath.Separator)) {
		return FileSink{Dir: dest}, common.DefaultExportFileName, nil
	}
	if fi, err := os.Stat(dest); err == nil && fi.IsDir() {
		return FileSink{Dir: dest}, common.DefaultExportFileName, nil
	}

	name := filepath.Base(dest)
	if filepath.Ext(name) == "" {
		name += ".pdf"
	}
	return FileSink{Dir: filepath.Dir(dest)}, name, nil
}
