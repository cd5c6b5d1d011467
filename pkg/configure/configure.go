package configure

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"

	"github.com/hashicorp/go-multierror"
)

// ErrUndefinedVariable indicates a template referenced a variable that was
// not supplied.
var ErrUndefinedVariable = errors.New("undefined variable")

var placeholderRE = regexp.MustCompile(`@([A-Za-z_][A-Za-z0-9_]*)@`)

// Render replaces every @NAME@ placeholder in src with vars[NAME].
//
// All placeholders must resolve. If any do not, Render returns an error
// listing each missing variable and its line, and no output.
func Render(src []byte, vars map[string]string) ([]byte, error) {
	var merr *multierror.Error

	out := replace(src, func(name []byte, offset int) []byte {
		v, ok := vars[string(name)]
		if !ok {
			line := bytes.Count(src[:offset], []byte("\n")) + 1
			merr = multierror.Append(merr, fmt.Errorf("%w %q on line %d", ErrUndefinedVariable, name, line))

			return nil
		}

		return []byte(v)
	})

	if err := merr.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	return out, nil
}

// Placeholders returns the distinct placeholder names in src, in order of
// first occurrence.
func Placeholders(src []byte) []string {
	seen := map[string]bool{}
	names := []string{}

	for _, m := range placeholderRE.FindAllSubmatch(src, -1) {
		name := string(m[1])
		if seen[name] {
			continue
		}

		seen[name] = true
		names = append(names, name)
	}

	return names
}

func replace(src []byte, fn func(name []byte, offset int) []byte) []byte {
	var buf bytes.Buffer

	last := 0
	for _, loc := range placeholderRE.FindAllSubmatchIndex(src, -1) {
		buf.Write(src[last:loc[0]])
		buf.Write(fn(src[loc[2]:loc[3]], loc[0]))
		last = loc[1]
	}

	buf.Write(src[last:])

	return buf.Bytes()
}
