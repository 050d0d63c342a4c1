// Package flagx lets independent components parse their own subset of
// command-line flags from the same os.Args without tripping over each other.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs returns the arguments from args that belong to the flags listed
// in valued or boolean, preserving their order.
//
// Valued flags may be written as "-f value" or "-f=value". Boolean flags never
// consume the following argument, so "-k -d dsn" keeps "-d dsn" intact; to
// switch one off use "-k=false".
func FilterArgs(args []string, valued []string, boolean ...string) []string {
	isValued := make(map[string]struct{}, len(valued))
	for _, f := range valued {
		isValued[f] = struct{}{}
	}
	isBool := make(map[string]struct{}, len(boolean))
	for _, f := range boolean {
		isBool[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, ok := strings.Cut(arg, "="); ok {
			_, v := isValued[name]
			_, b := isBool[name]
			if v || b {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := isBool[arg]; ok {
			filtered = append(filtered, arg)
			continue
		}

		if _, ok := isValued[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// ConfigFile extracts the JSON config path given via -c or -config.
// It returns "" when neither is present.
func ConfigFile(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	return path
}
