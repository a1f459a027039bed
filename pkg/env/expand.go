package env

import (
	"strings"

	"github.com/gibfahn/dot/pkg/errors"
)

// Lookup resolves a variable name during expansion. Returning ok=false
// (with a nil error) defers the reference: the reference text is left in
// the output untouched and counted, so a later pass can retry it.
type Lookup func(name string) (value string, ok bool, err error)

// Expand substitutes $NAME and ${NAME} references in s using lookup.
// It returns the expanded string and the number of references that were
// deferred. A $ not followed by an identifier or brace is literal.
func Expand(s string, lookup Lookup) (string, int, error) {
	if !strings.ContainsRune(s, '$') {
		return s, 0, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	deferred := 0

	for i := 0; i < len(s); {
		c := s[i]
		if c != '$' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(s) {
			b.WriteByte(c)
			i++
			continue
		}

		var name, ref string
		if s[i+1] == '{' {
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				return "", 0, errors.Newf(errors.ErrInvalidInput,
					"unterminated ${ reference in %q", s)
			}
			name = s[i+2 : i+2+end]
			ref = s[i : i+2+end+1]
		} else {
			j := i + 1
			for j < len(s) && isNameByte(s[j]) {
				j++
			}
			if j == i+1 {
				// Bare $, keep it.
				b.WriteByte(c)
				i++
				continue
			}
			name = s[i+1 : j]
			ref = s[i:j]
		}

		value, ok, err := lookup(name)
		if err != nil {
			return "", 0, err
		}
		if ok {
			b.WriteString(value)
		} else {
			b.WriteString(ref)
			deferred++
		}
		i += len(ref)
	}

	return b.String(), deferred, nil
}

// ExpandTilde replaces a leading ~ with home. Only the shorthand forms
// "~" and "~/..." are recognized; ~user is not supported.
func ExpandTilde(s, home string) string {
	if s == "~" {
		return home
	}
	if strings.HasPrefix(s, "~/") {
		return home + s[1:]
	}
	return s
}

func isNameByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
