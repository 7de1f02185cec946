package engine

// FallField holds, per cell, the vertical pixel distance still to travel
type FallField struct {
	size    int
	offsets []float64
}

// NewFallField creates a settled field for an N×N board
func NewFallField(size int) *FallField {
	return &FallField{size: size, offsets: make([]float64, size*size)}
}

// At returns the offset of the cell at x,y. Out of range reads are zero.
func (f *FallField) At(x, y int) float64 {
	if x < 0 || x >= f.size || y < 0 || y >= f.size {
		return 0
	}
	return f.offsets[y*f.size+x]
}

// Max returns the largest remaining offset
func (f *FallField) Max() float64 {
	highest := 0.0
	for _, o := range f.offsets {
		if o > highest {
			highest = o
		}
	}
	return highest
}

// Animating reports whether any cell is still falling
func (f *FallField) Animating() bool {
	for _, o := range f.offsets {
		if o > 0 {
			return true
		}
	}
	return false
}

// Step moves every falling cell speed pixels closer to rest and reports
// whether anything is still falling afterwards.
func (f *FallField) Step(speed float64) bool {
	falling := false
	for i, o := range f.offsets {
		if o <= 0 {
			continue
		}
		o -= speed
		if o < 0 {
			o = 0
		}
		f.offsets[i] = o
		if o > 0 {
			falling = true
		}
	}
	return falling
}

// Settle zeroes every offset
func (f *FallField) Settle() {
	for i := range f.offsets {
		f.offsets[i] = 0
	}
}

func (f *FallField) set(x, y int, offset float64) {
	f.offsets[y*f.size+x] = offset
}
