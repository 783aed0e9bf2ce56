package cache

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
)

// Key derives a fixed-length cache key from an operation name and its
// arguments. Every part is length-prefixed and positional arguments are
// kept apart from keyword arguments, so distinct argument lists never
// encode to the same string. Keyword arguments are sorted by name so
// call-site ordering does not matter.
func Key(op string, args []any, kwargs map[string]any) string {
	var b strings.Builder
	writePart(&b, op)
	fmt.Fprintf(&b, "args%d", len(args))
	for _, a := range args {
		writePart(&b, fmt.Sprint(a))
	}

	names := make([]string, 0, len(kwargs))
	for k := range kwargs {
		names = append(names, k)
	}
	sort.Strings(names)
	fmt.Fprintf(&b, "kwargs%d", len(names))
	for _, k := range names {
		writePart(&b, k)
		writePart(&b, fmt.Sprint(kwargs[k]))
	}

	sum := sha256.Sum256([]byte(b.String()))
	return fmt.Sprintf("%x", sum)
}

func writePart(b *strings.Builder, s string) {
	fmt.Fprintf(b, "[%d]%s", len(s), s)
}
