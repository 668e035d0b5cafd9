package prngvec

// Family names one generator algorithm. The value doubles as the name of the
// directory its vectors are written to.
type Family string

const (
	LCG64Shift Family = "lcg64shift"
	LCG64      Family = "lcg64"
	MRG2       Family = "mrg2"
	MRG3       Family = "mrg3"
	MT19937    Family = "mt19937"
	MT19937_64 Family = "mt19937_64"
	Taus88     Family = "taus88"
)

// Generator is the contract every family implements.
type Generator interface {
	// Seed resets the state deterministically from seed.
	Seed(seed uint64) error

	// Next advances the state by one step and returns the output value,
	// sign-extended from the family width.
	Next() int64
}

// Splitter is an optional interface for families that can be partitioned
// into interleaved sub-streams (leapfrogging).
type Splitter interface {
	Generator
	// Split turns the generator into the index-th of parts sub-streams.
	// It fails without touching the state if parts == 0 or index >= parts.
	Split(parts, index uint32) error
}

// Jumper is an optional interface for families that can advance their state
// in closed form.
type Jumper interface {
	Generator
	// Jump advances the state as if Next had been called distance times.
	Jump(distance uint64)
	// Jump2 is Jump(1 << log2). It rejects log2 >= 64.
	Jump2(log2 uint32) error
}

// Vector is one emitted conformance vector.
type Vector struct {
	Config Config
	Name   string
	Width  int
	Values []int64
}
