// Package config loads runtime configuration for the catalog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c / --config.
//  3. CATALOG_* environment variables, read with cleanenv. A .env file in
//     the working directory is loaded into the environment beforehand.
//  4. Command-line flags, which override everything else.
//
// # JSON schema
//
// Durations may be strings like "30s" or integer nanoseconds:
//
//	{
//	  "base_url": "https://catalog.example.com/api",
//	  "request_timeout": "30s",
//	  "database_path": "catalog.db",
//	  "export_dir": "exports",
//	  "s3_bucket": "menus",
//	  "categories_cache_ttl": "5m"
//	}
//
// The resulting Config is validated with go-playground/validator before it
// is returned.
package config
