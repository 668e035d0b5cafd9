package prngvec

import (
	"fmt"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// NameSeparator joins the tuple fields of an artifact name.
const NameSeparator = "-"

// Name returns the artifact name
// <seed>-<splitParts>-<splitIndex>-<jumpDistance>-<jumpLog2>.
func (c Config) Name() string {
	b := make([]byte, 0, 64)
	b = strconv.AppendUint(b, c.Seed, 10)
	b = append(b, NameSeparator...)
	b = strconv.AppendUint(b, uint64(c.SplitParts), 10)
	b = append(b, NameSeparator...)
	b = strconv.AppendUint(b, uint64(c.SplitIndex), 10)
	b = append(b, NameSeparator...)
	b = strconv.AppendUint(b, c.JumpDistance, 10)
	b = append(b, NameSeparator...)
	b = strconv.AppendUint(b, uint64(c.JumpLog2), 10)
	return string(b)
}

// Path returns the artifact path relative to an output root.
func (c Config) Path() string {
	return filepath.Join(string(c.Family), c.Name())
}

// ParseName is the inverse of Config.Name.
func ParseName(family Family, name string) (Config, error) {
	fields := strings.Split(name, NameSeparator)
	if len(fields) != 5 {
		return Config{}, fmt.Errorf("%w: %q has %d fields, want 5", ErrInvalidName, name, len(fields))
	}

	var nums [5]uint64
	bits := [5]int{64, 32, 32, 64, 32}
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, bits[i])
		if err != nil {
			return Config{}, fmt.Errorf("%w: %q: %v", ErrInvalidName, name, err)
		}
		nums[i] = v
	}

	return Config{
		Family:       family,
		Seed:         nums[0],
		SplitParts:   uint32(nums[1]),
		SplitIndex:   uint32(nums[2]),
		JumpDistance: nums[3],
		JumpLog2:     uint32(nums[4]),
	}, nil
}

// ParsePath parses a relative artifact path of the form <family>/<name>.
func ParsePath(rel string) (Config, error) {
	dir, name := path.Split(filepath.ToSlash(rel))
	dir = strings.Trim(dir, "/")
	if dir == "" || strings.Contains(dir, "/") {
		return Config{}, fmt.Errorf("%w: %q is not <family>/<name>", ErrInvalidName, rel)
	}
	return ParseName(Family(dir), name)
}
