// Package grid enumerates the parameter tuples vectors are generated for.
package grid

import (
	"iter"

	"pkg.jsn.cam/prngvec/pkg/generators"
	"pkg.jsn.cam/prngvec/pkg/prngvec"
)

// Policy bounds the parameter ranges of a grid. The ranges are tunable; the
// enumeration order is not.
type Policy struct {
	Seeds64 []uint64 // seeds for 64-bit families
	Seeds32 []uint64 // seeds for 32-bit families

	SplitParts []uint32
	SplitStep  uint32 // split indices run 0, step, 2*step, ... < parts

	JumpDistances []uint64
	JumpLog2Step  uint32 // jump2 exponents run 0, step, 2*step, ... < JumpLog2Limit
	JumpLog2Limit uint32
}

// DefaultPolicy is the grid of the published reference vectors.
var DefaultPolicy = Policy{
	Seeds64:       []uint64{0, 74236788222246},
	Seeds32:       []uint64{0, 742367882},
	SplitParts:    []uint32{5, 8},
	SplitStep:     2,
	JumpDistances: []uint64{0, 948392782247324},
	JumpLog2Step:  23,
	JumpLog2Limit: prngvec.MaxJumpLog2,
}

func (p Policy) seeds(entry generators.Entry) []uint64 {
	if entry.Width == 64 {
		return p.Seeds64
	}
	return p.Seeds32
}

// Configs returns the tuples for one family in the fixed order
// seed, split parts, split index, jump distance, jump2 exponent. The
// sequence is lazy and can be ranged over any number of times.
//
// Families without split or jump only vary the seed; their remaining fields
// are pinned to (1, 0, 0, 0).
func (p Policy) Configs(entry generators.Entry) iter.Seq[prngvec.Config] {
	canSplit, canJump := entry.CanSplit(), entry.CanJump()

	splitParts := []uint32{1}
	if canSplit {
		splitParts = p.SplitParts
	}
	splitStep := max(p.SplitStep, 1)
	jumpStep := max(p.JumpLog2Step, 1)

	return func(yield func(prngvec.Config) bool) {
		for _, seed := range p.seeds(entry) {
			for _, parts := range splitParts {
				for index := uint32(0); index < parts; index += splitStep {
					if !canJump {
						cfg := prngvec.Config{Family: entry.Family, Seed: seed, SplitParts: parts, SplitIndex: index}
						if !yield(cfg) {
							return
						}
						continue
					}
					for _, jump := range p.JumpDistances {
						for log2 := uint32(0); log2 < p.JumpLog2Limit; log2 += jumpStep {
							cfg := prngvec.Config{
								Family:       entry.Family,
								Seed:         seed,
								SplitParts:   parts,
								SplitIndex:   index,
								JumpDistance: jump,
								JumpLog2:     log2,
							}
							if !yield(cfg) {
								return
							}
						}
					}
				}
			}
		}
	}
}

// All chains Configs over families, in the given order.
func (p Policy) All(families []generators.Entry) iter.Seq[prngvec.Config] {
	return func(yield func(prngvec.Config) bool) {
		for _, entry := range families {
			for cfg := range p.Configs(entry) {
				if !yield(cfg) {
					return
				}
			}
		}
	}
}

// Count returns the number of tuples All yields.
func (p Policy) Count(families []generators.Entry) int {
	n := 0
	for range p.All(families) {
		n++
	}
	return n
}
