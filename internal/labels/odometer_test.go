package labels

import (
	"fmt"
	"slices"
	"testing"
)

func TestOdometer_VisitsEveryCombinationOnce(t *testing.T) {
	o := NewOdometer([]int{2, 3})

	seen := map[string]bool{fmt.Sprint(o.Digits()): true}
	increments := 0
	for {
		_, ok := o.Increment()
		if !ok {
			break
		}
		increments++
		key := fmt.Sprint(o.Digits())
		if seen[key] {
			t.Fatalf("combination %s visited twice", key)
		}
		seen[key] = true
		if increments > 100 {
			t.Fatal("odometer never reported exhaustion")
		}
	}

	if len(seen) != 6 {
		t.Errorf("expected 6 distinct combinations, got %d", len(seen))
	}
	if !slices.Equal(o.Digits(), []int{0, 0}) {
		t.Errorf("expected wrap to all zeros, got %v", o.Digits())
	}
}

func TestOdometer_Order(t *testing.T) {
	o := NewOdometer([]int{2, 3})

	expected := [][]int{{1, 0}, {0, 1}, {1, 1}, {0, 2}, {1, 2}}
	for i, want := range expected {
		if _, ok := o.Increment(); !ok {
			t.Fatalf("step %d: unexpected exhaustion", i)
		}
		if got := o.Digits(); !slices.Equal(got, want) {
			t.Errorf("step %d: digits = %v, want %v", i, got, want)
		}
	}
}

func TestOdometer_ChangedDigits(t *testing.T) {
	o := NewOdometer([]int{2, 2, 2})

	changed, ok := o.Increment() // 1,0,0
	if !ok || !slices.Equal(changed, []int{0}) {
		t.Errorf("first increment changed %v (ok=%v), want [0]", changed, ok)
	}

	changed, ok = o.Increment() // 0,1,0 ripple carry
	if !ok || !slices.Equal(changed, []int{0, 1}) {
		t.Errorf("second increment changed %v (ok=%v), want [0 1]", changed, ok)
	}

	o.Increment() // 1,1,0
	o.Increment() // 0,0,1
	o.Increment() // 1,0,1
	o.Increment() // 0,1,1
	o.Increment() // 1,1,1
	changed, ok = o.Increment()
	if ok {
		t.Error("expected exhaustion after 8 combinations")
	}
	if !slices.Equal(changed, []int{0, 1, 2}) {
		t.Errorf("wrap changed %v, want all digits", changed)
	}
}

func TestOdometer_Empty(t *testing.T) {
	o := NewOdometer(nil)
	changed, ok := o.Increment()
	if ok || len(changed) != 0 {
		t.Errorf("empty odometer Increment() = (%v, %v), want (nil, false)", changed, ok)
	}
}

func TestOdometer_Reset(t *testing.T) {
	o := NewOdometer([]int{2, 3, 2})
	o.Increment() // 1,0,0
	o.Increment() // 0,1,0
	o.Increment() // 1,1,0

	if changed := o.Reset(); !slices.Equal(changed, []int{0, 1}) {
		t.Errorf("Reset() changed %v, want [0 1]", changed)
	}
	if !slices.Equal(o.Digits(), []int{0, 0, 0}) {
		t.Errorf("digits = %v after Reset, want all zeros", o.Digits())
	}
	if changed := o.Reset(); len(changed) != 0 {
		t.Errorf("second Reset() changed %v, want nothing", changed)
	}
}
