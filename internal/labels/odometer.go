package labels

// Odometer is a mixed-radix counter. Digit 0 is the lowest order digit.
// Starting from all zeros it enumerates every combination exactly once.
type Odometer struct {
	radices []int
	digits  []int
}

// NewOdometer creates a counter with the given per-digit radices.
func NewOdometer(radices []int) *Odometer {
	return &Odometer{
		radices: append([]int(nil), radices...),
		digits:  make([]int, len(radices)),
	}
}

// Len returns the number of digits.
func (o *Odometer) Len() int { return len(o.digits) }

// Digit returns the current value of digit i.
func (o *Odometer) Digit(i int) int { return o.digits[i] }

// Digits returns a copy of the current digits.
func (o *Odometer) Digits() []int { return append([]int(nil), o.digits...) }

// Increment advances to the next combination and returns the indices of the
// digits that changed. When every combination has been visited the counter
// wraps back to all zeros and ok is false.
func (o *Odometer) Increment() (changed []int, ok bool) {
	for i := range o.digits {
		o.digits[i]++
		changed = append(changed, i)
		if o.digits[i] < o.radices[i] {
			return changed, true
		}
		o.digits[i] = 0 // carry
	}
	return changed, false
}

// Reset sets every digit back to zero and returns the indices of the digits
// that changed.
func (o *Odometer) Reset() (changed []int) {
	for i, d := range o.digits {
		if d != 0 {
			o.digits[i] = 0
			changed = append(changed, i)
		}
	}
	return changed
}
