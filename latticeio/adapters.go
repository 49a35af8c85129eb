package latticeio

import (
	"github.com/cpmech/gosl/chk"

	"github.com/greglenerd/cheetah/beam"
	"github.com/greglenerd/cheetah/segment"
)

// LoadMADX is the entry point for a MAD-X-like magnet-lattice script
// (spec.md §6). It is not implemented: it always returns an error and
// never calls warn.
func LoadMADX(source []byte, warn func(elementName, message string)) (*segment.Segment, error) {
	return nil, chk.Err("latticeio: MAD-X adapter not implemented")
}

// LoadFacilityCSV is the entry point for a facility-specific tabular CSV
// lattice description (spec.md §6). It is not implemented: it always
// returns an error and never calls warn.
func LoadFacilityCSV(source []byte, warn func(elementName, message string)) (*segment.Segment, error) {
	return nil, chk.Err("latticeio: facility CSV adapter not implemented")
}

// LoadAstra is the entry point for an Astra particle dump (spec.md §6).
// It is not implemented: it always returns an error.
func LoadAstra(path string) (*beam.ParticleBeam, error) {
	return nil, chk.Err("latticeio: Astra particle-file adapter not implemented")
}
