package engine

import "fmt"

// Resolve removes the cells flagged in mask, compacts each column downward
// and refills the top with random tiles. Every cell that lands away from its
// previous row gets a fall offset of rows moved times tileSize; new tiles start
// (row+1)*tileSize above their slot.
func Resolve(b *Board, mask *MatchMask, falls *FallField, tileSize float64) error {
	if mask == nil || mask.size != b.size {
		return fmt.Errorf("resolve: %w", ErrMaskMismatch)
	}
	if falls == nil || falls.size != b.size {
		return fmt.Errorf("resolve: fall field does not fit board: %w", ErrMaskMismatch)
	}

	n := b.size
	for x := 0; x < n; x++ {
		write := n - 1
		for y := n - 1; y >= 0; y-- {
			if mask.At(x, y) {
				continue
			}
			if y != write {
				b.cells[b.index(x, write)] = b.at(x, y)
				falls.set(x, write, float64(write-y)*tileSize)
				b.cells[b.index(x, y)] = Empty
			}
			write--
		}
		for ; write >= 0; write-- {
			b.cells[b.index(x, write)] = b.RandomTile()
			falls.set(x, write, float64(write+1)*tileSize)
		}
	}
	return nil
}
