package prngvec

import "fmt"

// MaxJumpLog2 is the exclusive upper bound for Jump2 arguments.
const MaxJumpLog2 = 64

// Config is the full parameter tuple of one vector. Families ignore the
// fields they have no operation for.
type Config struct {
	Family       Family `json:"family"`
	Seed         uint64 `json:"seed"`
	SplitParts   uint32 `json:"split_parts"`
	SplitIndex   uint32 `json:"split_index"`
	JumpDistance uint64 `json:"jump_distance"`
	JumpLog2     uint32 `json:"jump_log2"`
}

// Validate checks the invariants that hold for every family.
func (c Config) Validate() error {
	if c.SplitParts == 0 {
		return fmt.Errorf("%w: split parts must be >= 1 (%s)", ErrInvalidSplit, c)
	}
	if c.SplitIndex >= c.SplitParts {
		return fmt.Errorf("%w: split index %d must be < %d (%s)",
			ErrInvalidSplit, c.SplitIndex, c.SplitParts, c)
	}
	if c.JumpLog2 >= MaxJumpLog2 {
		return fmt.Errorf("%w: jump2 exponent %d must be < %d (%s)",
			ErrInvalidJump, c.JumpLog2, MaxJumpLog2, c)
	}
	return nil
}

// Apply configures g in the fixed order seed, split, jump, jump2. The config
// is validated up front, so a rejected config leaves g untouched.
func (c Config) Apply(g Generator) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if err := g.Seed(c.Seed); err != nil {
		return fmt.Errorf("seed %s: %w", c, err)
	}
	if s, ok := g.(Splitter); ok {
		if err := s.Split(c.SplitParts, c.SplitIndex); err != nil {
			return fmt.Errorf("split %s: %w", c, err)
		}
	}
	if j, ok := g.(Jumper); ok {
		j.Jump(c.JumpDistance)
		if err := j.Jump2(c.JumpLog2); err != nil {
			return fmt.Errorf("jump2 %s: %w", c, err)
		}
	}
	return nil
}

func (c Config) String() string {
	return string(c.Family) + "/" + c.Name()
}
