package curve

import (
	"fmt"
	"sync"
)

// GeneratorTable is the process-wide family of independent generators the
// range-proof engine commits against: a fixed G/H/H2 triple for the
// double-blinded Pedersen commitment, plus two indexed families G_i/H_i
// (i = 0..n-1) consumed by the vector commitment inside the zk-WIP fold.
// Every generator is derived deterministically from a domain-separation tag
// via Curve.HashToElement, so no party ever learns a discrete-log relation
// between them (the same role the teacher's Setup-time generator slice
// played in bulletproofs.BulletProofSetupParams, generalised to a lazily
// grown table instead of one fixed-size slice per Params instance).
type GeneratorTable struct {
	curve Curve

	mu     sync.Mutex
	gVec   []Element
	hVec   []Element
	gBase  Element
	hBase  Element
	h2Base Element
}

var (
	tablesMu sync.Mutex
	tables   = map[string]*GeneratorTable{}
)

// Generators returns the process-wide GeneratorTable for c, creating it on
// first use. Distinct Curve implementations (identified by Name()) get
// distinct tables.
func Generators(c Curve) *GeneratorTable {
	tablesMu.Lock()
	defer tablesMu.Unlock()
	if t, ok := tables[c.Name()]; ok {
		return t
	}
	t := &GeneratorTable{curve: c}
	tables[c.Name()] = t
	return t
}

// G returns the fixed base generator used for the committed value term.
func (t *GeneratorTable) G() Element {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.gBase == nil {
		t.gBase = t.curve.HashToElement("bppe/G")
	}
	return t.gBase
}

// H returns the fixed generator for the first blinding factor.
func (t *GeneratorTable) H() Element {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.hBase == nil {
		t.hBase = t.curve.HashToElement("bppe/H")
	}
	return t.hBase
}

// H2 returns the fixed generator for the second blinding factor, the
// addition Zarcanum Appendix D makes to classic BP+ single-blinded
// commitments.
func (t *GeneratorTable) H2() Element {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.h2Base == nil {
		t.h2Base = t.curve.HashToElement("bppe/H2")
	}
	return t.h2Base
}

func (t *GeneratorTable) grow(n int) {
	for len(t.gVec) < n {
		i := len(t.gVec)
		t.gVec = append(t.gVec, t.curve.HashToElement(fmt.Sprintf("bppe/G/%d", i)))
	}
	for len(t.hVec) < n {
		i := len(t.hVec)
		t.hVec = append(t.hVec, t.curve.HashToElement(fmt.Sprintf("bppe/H/%d", i)))
	}
}

// GVec returns the first n indexed G_i generators, growing the table if
// necessary.
func (t *GeneratorTable) GVec(n int) []Element {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.grow(n)
	return t.gVec[:n]
}

// HVec returns the first n indexed H_i generators, growing the table if
// necessary.
func (t *GeneratorTable) HVec(n int) []Element {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.grow(n)
	return t.hVec[:n]
}
