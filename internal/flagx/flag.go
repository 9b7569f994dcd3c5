// Package flagx lets several loaders share one command line: each one
// parses only the flags it owns.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// configFlags name the JSON config file. The double-dash form is what the
// cobra-based CLI documents.
var configFlags = []string{"-c", "-config", "--config"}

// FilterArgs keeps the allowed flags from args together with their values.
// Values are taken from "-f=value" or from the following argument when that
// argument does not itself start with "-". Everything else is dropped, so
// the result is never nil.
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

// JsonConfigFlags returns the config file path given with -c, -config or
// --config, or "" when none is present. The last occurrence wins.
func JsonConfigFlags() string {
	var config string

	args := FilterArgs(os.Args[1:], configFlags)

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
