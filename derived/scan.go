package derived

import (
	"strconv"
	"strings"
)

// placeholderPrefix names the identifiers references are rewritten to.
const placeholderPrefix = "wf__"

// rewrite replaces every waveform reference in src with a placeholder
// identifier and returns the rewritten source with the distinct references in
// order of first use.
func rewrite(name, src string, known func(string) bool) (string, []string, error) {
	var (
		sb    strings.Builder
		refs  []string
		index = make(map[string]int)
	)
	use := func(ref string) {
		k, seen := index[ref]
		if !seen {
			k = len(refs)
			index[ref] = k
			refs = append(refs, ref)
		}
		sb.WriteString(placeholderPrefix + strconv.Itoa(k))
	}
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			j := scanNumber(src, i)
			sb.WriteString(src[i:j])
			i = j
		case isIdentStart(c):
			j := i
			for j < len(src) && isPathChar(src[j]) {
				j++
			}
			ref, err := longestReference(name, src[i:j], known)
			if err != nil {
				return "", nil, err
			}
			use(ref)
			i += len(ref)
		case c == '\'' || c == '`':
			end := strings.IndexByte(src[i+1:], c)
			if end < 0 {
				return "", nil, derivedErrorf(name, ErrUnsupportedSyntax, "unterminated quoted reference at %d", i)
			}
			ref, err := exactReference(name, src[i+1:i+1+end], known)
			if err != nil {
				return "", nil, err
			}
			use(ref)
			i += end + 2
		default:
			sb.WriteByte(c)
			i++
		}
	}

	return sb.String(), refs, nil
}

// longestReference picks the longest prefix of token, cut at a '/', that is a
// known waveform.
func longestReference(name, token string, known func(string) bool) (string, error) {
	cut := len(token)
	for cut > 0 {
		p := token[:cut]
		if p == name {
			return "", derivedErrorf(name, ErrSelfReference, "%q", p)
		}
		if known(p) {
			return p, nil
		}
		cut = strings.LastIndexByte(p, '/')
	}

	return "", derivedErrorf(name, ErrMissingReference, "%q", strings.TrimRight(token, "/"))
}

// exactReference resolves a quoted reference, which must name a known
// waveform verbatim.
func exactReference(name, ref string, known func(string) bool) (string, error) {
	switch {
	case ref == name:
		return "", derivedErrorf(name, ErrSelfReference, "%q", ref)
	case !known(ref):
		return "", derivedErrorf(name, ErrMissingReference, "%q", ref)
	}

	return ref, nil
}

// scanNumber returns the end of the numeric literal starting at i.
func scanNumber(src string, i int) int {
	j := i
	for j < len(src) && (isDigit(src[j]) || src[j] == '.' || src[j] == '_') {
		j++
	}
	if j < len(src) && (src[j] == 'e' || src[j] == 'E') {
		k := j + 1
		if k < len(src) && (src[k] == '+' || src[k] == '-') {
			k++
		}
		if k < len(src) && isDigit(src[k]) {
			for k < len(src) && isDigit(src[k]) {
				k++
			}
			j = k
		}
	}

	return j
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isPathChar(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '.' || c == '/'
}
