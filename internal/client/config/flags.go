package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/dessertcatalog/internal/flagx"
)

// FlagSpec describes one config flag. Every config flag takes a value;
// there are no boolean config flags, so FilterArgs can always pair a flag
// with the token after it.
type FlagSpec struct {
	Name     string
	Short    string
	Usage    string
	Duration bool
}

var flagSpecs = []FlagSpec{
	{Name: "base-url", Short: "u", Usage: "catalog service base URL"},
	{Name: "timeout", Short: "t", Usage: "request timeout, e.g. 30s", Duration: true},
	{Name: "db", Usage: "path of the local session database"},
	{Name: "log-file", Usage: "log file path, - for stderr, empty to disable"},
	{Name: "log-level", Usage: "log level: debug, info, warn, error"},
	{Name: "export-dir", Usage: "directory for exported PDFs"},
	{Name: "s3-bucket", Usage: "default S3 bucket for exports"},
	{Name: "s3-region", Usage: "S3 region"},
	{Name: "s3-endpoint", Usage: "S3-compatible endpoint URL"},
	{Name: "s3-access-key", Usage: "S3 access key"},
	{Name: "s3-secret-key", Usage: "S3 secret key"},
	{Name: "categories-ttl", Usage: "category cache TTL, 0 disables", Duration: true},
}

// Flags lists the config flags so the command tree can declare them for
// help output and argument validation.
func Flags() []FlagSpec {
	out := make([]FlagSpec, len(flagSpecs))
	copy(out, flagSpecs)
	return out
}

func (c *Config) stringTarget(name string) *string {
	switch name {
	case "base-url":
		return &c.BaseURL
	case "db":
		return &c.DatabasePath
	case "log-file":
		return &c.LogFile
	case "log-level":
		return &c.LogLevel
	case "export-dir":
		return &c.ExportDir
	case "s3-bucket":
		return &c.S3Bucket
	case "s3-region":
		return &c.S3Region
	case "s3-endpoint":
		return &c.S3Endpoint
	case "s3-access-key":
		return &c.S3AccessKey
	case "s3-secret-key":
		return &c.S3SecretKey
	}
	panic("config: no field for flag " + name)
}

func (c *Config) durationTarget(name string) *time.Duration {
	switch name {
	case "timeout":
		return &c.RequestTimeout
	case "categories-ttl":
		return &c.CategoriesCacheTTL
	}
	panic("config: no field for flag " + name)
}

// parseFlags overlays cfg with the config flags found in args. Arguments
// that belong to subcommands are dropped by flagx.FilterArgs first.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var allowed []string
	for _, f := range flagSpecs {
		allowed = append(allowed, flagx.Spellings(f.Name, f.Short)...)
		names := []string{f.Name}
		if f.Short != "" {
			names = append(names, f.Short)
		}

		for _, name := range names {
			if f.Duration {
				target := cfg.durationTarget(f.Name)
				fs.DurationVar(target, name, *target, f.Usage)
			} else {
				target := cfg.stringTarget(f.Name)
				fs.StringVar(target, name, *target, f.Usage)
			}
		}
	}

	if err := fs.Parse(flagx.FilterArgs(args, allowed)); err != nil {
		return fmt.Errorf("config: flags: %w", err)
	}
	return nil
}
