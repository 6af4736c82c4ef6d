// Package flagx extracts a known subset of flags from a command line that
// also carries subcommand arguments, so configuration can be parsed before
// (and independently of) the command tree.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs returns only the arguments in args that belong to one of the
// allowed flag spellings, together with their values.
//
// Both "-a value" and "-a=value" forms are understood. A token that starts
// with "-" is never consumed as a value, so "-c -x" keeps "-c" alone.
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// Spellings expands a flag name and its optional one-letter short form into
// every spelling the standard flag package accepts: -name, --name, -s, --s.
func Spellings(name, short string) []string {
	out := []string{"-" + name, "--" + name}
	if short != "" {
		out = append(out, "-"+short, "--"+short)
	}
	return out
}

// JsonConfigFlags returns the config file path given via -c, -config or
// --config in args, or "" when none is present. When the flag is repeated
// the last value wins.
func JsonConfigFlags(args []string) string {
	var config string

	filtered := FilterArgs(args, Spellings("config", "c"))

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&config, "config", "", "path to config file")
	fs.StringVar(&config, "c", "", "path to config file (short)")
	_ = fs.Parse(filtered)

	return config
}
