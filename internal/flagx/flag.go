// Package flagx holds small helpers that let several config layers read
// their own flags from os.Args without tripping over each other.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the flags named in allowed, together with their
// values. Both "-f value" and "-f=value" forms are recognised; a following
// argument that starts with "-" is never consumed as a value.
func FilterArgs(args []string, allowed []string) []string {
	names := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		names[f] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, keep := names[name]; keep {
				out = append(out, arg)
			}
			continue
		}

		if _, keep := names[arg]; !keep {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}

	return out
}

// stringFlag parses a single string flag, registered under every alias,
// out of os.Args. The last occurrence wins; parse errors are ignored.
func stringFlag(aliases ...string) string {
	var value string

	dashed := make([]string, 0, len(aliases))
	fs := flag.NewFlagSet(aliases[0], flag.ContinueOnError)
	fs.SetOutput(discard{})
	for _, a := range aliases {
		fs.StringVar(&value, a, "", a)
		dashed = append(dashed, "-"+a)
	}
	_ = fs.Parse(FilterArgs(os.Args[1:], dashed))

	return value
}

// JsonConfigFlags returns the JSON config path given by -c or -config,
// or "" when neither is present.
func JsonConfigFlags() string {
	return stringFlag("config", "c")
}

// EnvFileFlags returns the dotenv file path given by -env, or "".
func EnvFileFlags() string {
	return stringFlag("env")
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
