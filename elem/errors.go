package elem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/greglenerd/cheetah/beam"
)

// errInvalidBeamType reports the "invalid beam type" taxonomy entry of
// spec.md §7: an element received a beam kind it cannot process.
func errInvalidBeamType(e Element, in beam.Beam) error {
	return chk.Err("%s %q: cannot track beam of type %T", elementKind(e), e.Name(), in)
}

// elementKind returns a short tag for error messages; each element file
// overrides this via its own Kind() string when useful for factory
// lookups (see factory.go).
func elementKind(e Element) string {
	if k, ok := e.(interface{ Kind() string }); ok {
		return k.Kind()
	}
	return "element"
}
