// Package latticeio implements the external lattice interfaces of
// spec.md §6: a JSON round-trip (implemented) plus interface-only stubs
// for foreign lattice adapters and Astra particle files. The JSON
// document shape and encoding/json tagging are grounded on the
// teacher's inp/sim.go .sim file format (a JSON-tagged struct tree
// loaded via json.Unmarshal).
package latticeio

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"

	"github.com/greglenerd/cheetah/elem"
	"github.com/greglenerd/cheetah/segment"

	// Blank-imported so its init() registers the "SpaceChargeKick"
	// allocator into elem's factory; without this, Load would reject any
	// lattice JSON element of that type with "cannot get allocator".
	_ "github.com/greglenerd/cheetah/spacecharge"
)

// Document is the top-level lattice JSON document of spec.md §6:
// {title, info, lattice:{name, elements:[...]}}.
type Document struct {
	Title   string  `json:"title"`
	Info    string  `json:"info"`
	Lattice Lattice `json:"lattice"`
}

// Lattice is the named, ordered element list.
type Lattice struct {
	Name     string        `json:"name"`
	Elements []ElementJSON `json:"elements"`
}

// ElementJSON is a single lattice element: a `type` tag plus a flat
// mapping from its defining attributes to numeric, string, or boolean
// values (spec.md §6). Nested segments are permitted: an element whose
// type is "Segment" carries its own nested Elements list.
type ElementJSON struct {
	Type     string             `json:"type"`
	Name     string             `json:"name"`
	Floats   map[string]float64 `json:"floats,omitempty"`
	Strings  map[string]string  `json:"strings,omitempty"`
	Bools    map[string]bool    `json:"bools,omitempty"`
	Elements []ElementJSON      `json:"elements,omitempty"` // only when Type=="Segment"
}

// Load parses a lattice JSON document and reconstructs the Segment
// (spec.md §6). Undefined attributes default to zero via elem.Spec's
// nil-map accessors.
func Load(data []byte) (*segment.Segment, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, chk.Err("latticeio: invalid JSON: %v", err)
	}
	return buildSegment(doc.Lattice.Name, doc.Lattice.Elements)
}

func buildSegment(name string, items []ElementJSON) (*segment.Segment, error) {
	children := make([]elem.Element, 0, len(items))
	for _, it := range items {
		if it.Type == "Segment" {
			sub, err := buildSegment(it.Name, it.Elements)
			if err != nil {
				return nil, err
			}
			children = append(children, sub)
			continue
		}
		e, err := elem.New(&elem.Spec{
			Type:   it.Type,
			Name:   it.Name,
			Floats: it.Floats,
			Str:    it.Strings,
			Bool:   it.Bools,
		})
		if err != nil {
			return nil, err
		}
		children = append(children, e)
	}
	return segment.New(name, children...), nil
}

// Save emits a lattice JSON document for the given segment, under the
// given title/info header, with the elements in segment order. Each
// element is written with its type, name and length only (see
// encodeElement); its other attributes are not written.
func Save(title, info string, s *segment.Segment) ([]byte, error) {
	doc := Document{
		Title: title,
		Info:  info,
		Lattice: Lattice{
			Name:     s.Name(),
			Elements: encodeChildren(s.Children),
		},
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, chk.Err("latticeio: cannot encode lattice: %v", err)
	}
	return data, nil
}

func encodeChildren(children []elem.Element) []ElementJSON {
	out := make([]ElementJSON, 0, len(children))
	for _, c := range children {
		if sub, ok := c.(*segment.Segment); ok {
			out = append(out, ElementJSON{
				Type:     "Segment",
				Name:     sub.Name(),
				Elements: encodeChildren(sub.Children),
			})
			continue
		}
		out = append(out, encodeElement(c))
	}
	return out
}

// encodeElement writes an element's type tag, name and "length". No
// other attribute (k1, angle, voltage, misalignment, flags, ...) is
// emitted, so Load of the saved document rebuilds each element with
// those attributes at their defaults.
func encodeElement(e elem.Element) ElementJSON {
	ej := ElementJSON{Type: kindOf(e), Name: e.Name(), Floats: map[string]float64{}}
	if drift, ok := e.(*elem.Drift); ok {
		ej.Floats["length"] = drift.Length()
		return ej
	}
	ej.Floats["length"] = e.Length()
	return ej
}

func kindOf(e elem.Element) string {
	if k, ok := e.(interface{ Kind() string }); ok {
		return k.Kind()
	}
	return "Unknown"
}
