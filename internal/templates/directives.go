package templates

import (
	"fmt"
	"os"
	"strings"

	"github.com/themerdev/themer/internal/errors"
	"github.com/themerdev/themer/internal/upstream"
)

// Directives carries the configured marker token lists. Each list is
// [prefix] or [prefix, suffix]; the first list doubles as the comment syntax
// for generated-file headers.
type Directives struct {
	markers [][]string
}

// NewDirectives builds a Directives from the strip_directives configuration.
// At least one marker list with a non-empty prefix is required.
func NewDirectives(markers [][]string) (*Directives, error) {
	if len(markers) == 0 {
		return nil, errors.New(errors.KindConfig, "strip_directives must have at least one marker entry")
	}
	for i, m := range markers {
		if len(m) == 0 || m[0] == "" {
			return nil, errors.Newf(errors.KindConfig,
				"strip_directives entry %d must have a non-empty prefix marker", i)
		}
	}

	return &Directives{markers: markers}, nil
}

// Strip removes directive lines from source and collects the style options
// they set. A directive line is one whose trimmed form starts with any
// configured prefix marker; its content (between prefix and optional suffix)
// is parsed as "key value...".
func (d *Directives) Strip(source string) (string, map[string]string) {
	style := make(map[string]string)
	lines := strings.Split(source, "\n")
	kept := lines[:0]

	for _, line := range lines {
		content, ok := d.directiveContent(line)
		if !ok {
			kept = append(kept, line)
			continue
		}

		fields := strings.Fields(content)
		if len(fields) >= 2 {
			style[fields[0]] = strings.Join(fields[1:], " ")
		} else if len(fields) == 1 {
			style[fields[0]] = ""
		}
	}

	return strings.Join(kept, "\n"), style
}

func (d *Directives) directiveContent(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, m := range d.markers {
		if !strings.HasPrefix(trimmed, m[0]) {
			continue
		}
		content := strings.TrimPrefix(trimmed, m[0])
		if len(m) > 1 {
			content = strings.TrimSuffix(strings.TrimSpace(content), m[1])
		}

		return strings.TrimSpace(content), true
	}

	return "", false
}

// readFile wraps os.ReadFile with the package's error kind.
func readFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(errors.KindIO, err, "failed to read template").WithPath(path)
	}

	return string(content), nil
}

// MakeHeader builds the tool-managed header prepended to every generated
// file, using the first marker pair as comment syntax. The upstream blob URL
// is included when detection succeeded.
func (d *Directives) MakeHeader(outPath string, special *upstream.Special) string {
	prefix := d.markers[0][0]
	suffix := ""
	if len(d.markers[0]) > 1 {
		suffix = " " + d.markers[0][1]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s generated by themer; do not edit by hand%s\n", prefix, suffix)
	if special != nil && special.UpstreamFile != nil {
		fmt.Fprintf(&b, "%s upstream: %s%s\n", prefix, *special.UpstreamFile, suffix)
	}

	return b.String()
}
