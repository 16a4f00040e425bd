package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGeneratorProducesParseableUniqueIDs(t *testing.T) {
	t.Parallel()

	gen := NewUUIDGenerator()
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		v, err := gen.NewID()
		if err != nil {
			t.Fatalf("new id: %v", err)
		}
		parsed, err := uuid.Parse(v)
		if err != nil {
			t.Fatalf("parse id %q: %v", v, err)
		}
		if parsed.Version() != 7 {
			t.Fatalf("unexpected uuid version: %d", parsed.Version())
		}
		if _, dup := seen[v]; dup {
			t.Fatalf("duplicate id generated: %s", v)
		}
		seen[v] = struct{}{}
	}
}

func TestSequenceGenerator(t *testing.T) {
	t.Parallel()

	gen := NewSequenceGenerator("team")
	first, _ := gen.NewID()
	second, _ := gen.NewID()
	if first != "team-1" || second != "team-2" {
		t.Fatalf("unexpected sequence: %s, %s", first, second)
	}
}
