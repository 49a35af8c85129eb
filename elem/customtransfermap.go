package elem

import (
	"github.com/greglenerd/cheetah/beam"
	"github.com/greglenerd/cheetah/tmap"
)

// CustomTransferMap carries a user- or merge-supplied 7x7 map and a
// length (spec.md §4.2); it is what segment merging produces in place
// of a run of skippable children.
type CustomTransferMap struct {
	name string
	M    tmap.Map7
	L    float64
}

// NewCustomTransferMap returns a CustomTransferMap wrapping M.
func NewCustomTransferMap(name string, m tmap.Map7, length float64) *CustomTransferMap {
	return &CustomTransferMap{name: name, M: m, L: length}
}

func (c *CustomTransferMap) Kind() string    { return "CustomTransferMap" }
func (c *CustomTransferMap) Name() string    { return c.name }
func (c *CustomTransferMap) Length() float64 { return c.L }
func (c *CustomTransferMap) Skippable() bool { return true }

func (c *CustomTransferMap) TransferMap(_ float64) tmap.Map7 { return c.M }

func (c *CustomTransferMap) Track(in beam.Beam) (beam.Beam, error) {
	return trackLinear(c, in)
}
