package auth

import "testing"

func TestCatalogBitsDistinct(t *testing.T) {
	seen := map[Bits]string{}
	for name, bits := range catalog {
		if bits == 0 {
			t.Fatalf("%s has no bit assigned", name)
		}
		if bits&(bits-1) != 0 {
			t.Fatalf("%s maps to more than one bit: %d", name, bits)
		}
		if other, ok := seen[bits]; ok {
			t.Fatalf("%s and %s share bit %d", name, other, bits)
		}
		seen[bits] = name
	}
}

func TestCatalogOrderComplete(t *testing.T) {
	if len(catalogOrder) != len(catalog) {
		t.Fatalf("order lists %d names, catalog defines %d", len(catalogOrder), len(catalog))
	}
	for _, name := range catalogOrder {
		if _, ok := catalog[name]; !ok {
			t.Fatalf("ordered name %s not in catalog", name)
		}
	}
}

func TestCatalogOrderFollowsBitPositions(t *testing.T) {
	var prev Bits
	for i, name := range catalogOrder {
		bits := catalog[name]
		if i > 0 && bits <= prev {
			t.Fatalf("%s breaks ascending bit order", name)
		}
		prev = bits
	}
}

func TestAllBitsFitsCatalogWidth(t *testing.T) {
	all := AllBits()
	if all != 1<<len(catalog)-1 {
		t.Fatalf("expected contiguous low bits, got %b", all)
	}
}

func TestFlagBits(t *testing.T) {
	bits, ok := FlagBits("TASKS_CREATE")
	if !ok || bits != 1 {
		t.Fatalf("expected bit 0 for TASKS_CREATE, got %d (%v)", bits, ok)
	}
	if _, ok := FlagBits("TASKS_EXPLODE"); ok {
		t.Fatal("unexpected catalog entry")
	}
}
