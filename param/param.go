// Package param implements the named, mutable scalar used for every
// differentiable element attribute in this tracker, modeled on
// github.com/cpmech/gosl/fun.Prm.
package param

// Param is a named floating-point value. Elements hold their defining
// numeric attributes as *Param so gradient-based retraining can update
// Value in place without altering element structure (spec.md §3
// "Lifecycles").
type Param struct {
	Name  string
	Value float64
}

// New returns a new Param with the given name and initial value.
func New(name string, value float64) *Param {
	return &Param{Name: name, Value: value}
}

// Get returns 0 for a nil Param, matching the "undefined attributes
// default to zero" rule of spec.md §6.
func (p *Param) Get() float64 {
	if p == nil {
		return 0
	}
	return p.Value
}

// Set updates Value; nil-safe no-op, so optimizers can iterate over a
// mixed list of optional parameters without nil checks at call sites.
func (p *Param) Set(v float64) {
	if p == nil {
		return
	}
	p.Value = v
}
