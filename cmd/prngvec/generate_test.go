package main

import (
	"errors"
	"testing"

	"pkg.jsn.cam/prngvec/pkg/generators"
	"pkg.jsn.cam/prngvec/pkg/prngvec"
)

func TestParseFamilies(t *testing.T) {
	all, err := parseFamilies("")
	if err != nil {
		t.Fatalf("parseFamilies failed: %v", err)
	}
	if len(all) != len(generators.Generators) {
		t.Errorf("empty list selected %d families, want %d", len(all), len(generators.Generators))
	}

	some, err := parseFamilies("mrg2, lcg64shift")
	if err != nil {
		t.Fatalf("parseFamilies failed: %v", err)
	}
	if len(some) != 2 || some[0].Family != prngvec.MRG2 || some[1].Family != prngvec.LCG64Shift {
		t.Errorf("parseFamilies kept order wrong: %+v", some)
	}

	if _, err := parseFamilies("mrg2,xorshift"); !errors.Is(err, prngvec.ErrUnknownFamily) {
		t.Errorf("error = %v, want ErrUnknownFamily", err)
	}
}
