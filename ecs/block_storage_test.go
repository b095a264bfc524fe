package ecs

import (
	"testing"
)

func TestBlockStorage(t *testing.T) {
	var bs blockStorage[int]

	for i := range blockSize + 10 {
		if got := bs.Append(i * 10); got != i {
			t.Fatalf("expected slot %d, got %d", i, got)
		}
	}

	first := bs.Get(3)
	bs.Append(-1)
	if bs.Get(3) != first {
		t.Error("expected stored values to keep their address across appends")
	}

	bs.Delete(3)
	bs.Delete(3)
	if bs.Has(3) || bs.Get(3) != nil {
		t.Error("expected slot 3 to be empty after delete")
	}
	if bs.Len() != blockSize+10 {
		t.Errorf("expected %d values, got %d", blockSize+10, bs.Len())
	}

	if got := bs.Append(99); got != 3 {
		t.Errorf("expected freed slot 3 to be reused, got %d", got)
	}
	if *bs.Get(3) != 99 {
		t.Errorf("expected 99 in slot 3, got %d", *bs.Get(3))
	}

	for _, idx := range []int{-1, 1 << 20} {
		if bs.Has(idx) || bs.Get(idx) != nil {
			t.Errorf("expected out of range slot %d to be empty", idx)
		}
		bs.Delete(idx)
	}
}

func TestBlockStorageCompact(t *testing.T) {
	var bs blockStorage[string]

	for _, s := range []string{"a", "b", "c", "d", "e"} {
		bs.Append(s)
	}
	bs.Delete(1)
	bs.Delete(3)

	remap := bs.Compact()

	expected := map[int]int{0: 0, 2: 1, 4: 2}
	if len(remap) != len(expected) {
		t.Fatalf("expected remap %v, got %v", expected, remap)
	}
	for old, want := range expected {
		if remap[old] != want {
			t.Errorf("expected %d -> %d, got %d", old, want, remap[old])
		}
	}

	var values []string
	for idx := range bs.Iter() {
		values = append(values, *bs.Get(idx))
	}
	if len(values) != 3 || values[0] != "a" || values[1] != "c" || values[2] != "e" {
		t.Errorf("unexpected values after compact: %v", values)
	}

	for idx := range bs.Iter() {
		bs.Delete(idx)
	}
	if remap := bs.Compact(); len(remap) != 0 || bs.Len() != 0 {
		t.Error("expected empty storage after compacting only deleted slots")
	}
	if got := bs.Append("z"); got != 0 {
		t.Errorf("expected slot 0 after reset, got %d", got)
	}
}
