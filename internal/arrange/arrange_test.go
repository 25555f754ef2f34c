package arrange

import (
	"errors"
	"testing"

	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/apperr"
)

func TestGenerate_Shape(t *testing.T) {
	for _, poolSize := range []int{24, 25, 40, 100} {
		arr, err := Generate(poolSize)
		if err != nil {
			t.Fatalf("Generate(%d): %v", poolSize, err)
		}
		if len(arr) != Size {
			t.Fatalf("len = %d, want %d", len(arr), Size)
		}
		if arr[FreeSlot] != FreeSpace {
			t.Errorf("slot %d = %d, want %d", FreeSlot, arr[FreeSlot], FreeSpace)
		}
		seen := make(map[int]bool)
		for slot, v := range arr {
			if slot == FreeSlot {
				continue
			}
			if v < 0 || v >= poolSize {
				t.Errorf("slot %d index %d out of range [0, %d)", slot, v, poolSize)
			}
			if seen[v] {
				t.Errorf("index %d repeated", v)
			}
			seen[v] = true
		}
	}
}

func TestGenerate_Precondition(t *testing.T) {
	_, err := Generate(23)
	if err == nil {
		t.Fatal("Generate(23) should fail")
	}
	var ie *apperr.InsufficientTermsError
	if !errors.As(err, &ie) {
		t.Fatalf("error type = %T, want InsufficientTermsError", err)
	}
	if ie.Have != 23 || ie.Need != MinTerms {
		t.Errorf("counts = %d/%d, want 23/%d", ie.Have, ie.Need, MinTerms)
	}

	if _, err := Generate(24); err != nil {
		t.Fatalf("Generate(24): %v", err)
	}
}

func TestSequential(t *testing.T) {
	arr, err := Sequential(24)
	if err != nil {
		t.Fatal(err)
	}
	for slot, v := range arr {
		switch {
		case slot == FreeSlot:
			if v != FreeSpace {
				t.Errorf("slot %d = %d", slot, v)
			}
		case slot < FreeSlot:
			if v != slot {
				t.Errorf("slot %d = %d, want %d", slot, v, slot)
			}
		default:
			if v != slot-1 {
				t.Errorf("slot %d = %d, want %d", slot, v, slot-1)
			}
		}
	}

	if _, err := Sequential(23); err == nil {
		t.Error("Sequential(23) should fail")
	}
}

func TestValidate(t *testing.T) {
	arr, _ := Generate(30)
	if err := Validate(arr, 30); err != nil {
		t.Fatalf("valid arrangement rejected: %v", err)
	}

	short := arr[:24]
	if err := Validate(short, 30); err == nil {
		t.Error("24-slot arrangement accepted")
	}

	bad := append([]int(nil), arr...)
	bad[FreeSlot] = 0
	if err := Validate(bad, 30); err == nil {
		t.Error("arrangement without sentinel accepted")
	}

	dup := append([]int(nil), arr...)
	dup[0] = dup[1]
	if err := Validate(dup, 30); err == nil {
		t.Error("duplicate index accepted")
	}

	oob := append([]int(nil), arr...)
	oob[0] = 30
	if err := Validate(oob, 30); err == nil {
		t.Error("out-of-range index accepted")
	}
}
