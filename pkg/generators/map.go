package generators

import (
	"fmt"
	"slices"

	"pkg.jsn.cam/prngvec/pkg/generators/lcg"
	"pkg.jsn.cam/prngvec/pkg/generators/mrg"
	"pkg.jsn.cam/prngvec/pkg/generators/mt19937"
	"pkg.jsn.cam/prngvec/pkg/generators/taus"
	"pkg.jsn.cam/prngvec/pkg/prngvec"
)

// Entry describes one registered family.
type Entry struct {
	Family      prngvec.Family
	Width       int // output width in bits: 32 or 64
	Description string
	New         func() prngvec.Generator
}

// CanSplit reports whether the family implements prngvec.Splitter.
func (e Entry) CanSplit() bool {
	_, ok := e.New().(prngvec.Splitter)
	return ok
}

// CanJump reports whether the family implements prngvec.Jumper.
func (e Entry) CanJump() bool {
	_, ok := e.New().(prngvec.Jumper)
	return ok
}

// Generators maps family names to their registry entries.
var Generators = map[prngvec.Family]Entry{
	prngvec.LCG64Shift: {
		Family:      prngvec.LCG64Shift,
		Width:       64,
		Description: "64-bit LCG with xor-shift output transition",
		New:         func() prngvec.Generator { return lcg.NewShift() },
	},
	prngvec.LCG64: {
		Family:      prngvec.LCG64,
		Width:       64,
		Description: "plain 64-bit LCG",
		New:         func() prngvec.Generator { return lcg.New() },
	},
	prngvec.MRG2: {
		Family:      prngvec.MRG2,
		Width:       32,
		Description: "order-2 multiple recursive generator mod 2^31-1",
		New:         func() prngvec.Generator { return mrg.New2() },
	},
	prngvec.MRG3: {
		Family:      prngvec.MRG3,
		Width:       32,
		Description: "order-3 multiple recursive generator mod 2^31-1",
		New:         func() prngvec.Generator { return mrg.New3() },
	},
	prngvec.MT19937: {
		Family:      prngvec.MT19937,
		Width:       32,
		Description: "32-bit Mersenne Twister",
		New:         func() prngvec.Generator { return mt19937.New() },
	},
	prngvec.MT19937_64: {
		Family:      prngvec.MT19937_64,
		Width:       64,
		Description: "64-bit Mersenne Twister",
		New:         func() prngvec.Generator { return mt19937.New64() },
	},
	prngvec.Taus88: {
		Family:      prngvec.Taus88,
		Width:       32,
		Description: "combined Tausworthe generator (taus88)",
		New:         func() prngvec.Generator { return taus.New() },
	},
}

func IsValidFamily(family prngvec.Family) bool {
	_, exists := Generators[family]
	return exists
}

// Get returns the entry for family.
func Get(family prngvec.Family) (Entry, error) {
	entry, exists := Generators[family]
	if !exists {
		return Entry{}, fmt.Errorf("%w: %s", prngvec.ErrUnknownFamily, family)
	}
	return entry, nil
}

// List returns all registered families in sorted order.
func List() []prngvec.Family {
	families := make([]prngvec.Family, 0, len(Generators))
	for family := range Generators {
		families = append(families, family)
	}
	slices.Sort(families)
	return families
}
