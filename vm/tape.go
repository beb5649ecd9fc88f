package vm

// TapeSize is the number of cells on the tape.
const TapeSize = 30000

// Tape is the machine's memory: TapeSize 8-bit cells and a pointer. Both the
// pointer and cell values wrap around.
type Tape struct {
	cells   [TapeSize]uint8
	pointer int
}

// NewTape returns a zeroed tape with the pointer at cell 0.
func NewTape() *Tape {
	return &Tape{}
}

// Pointer returns the index of the current cell.
func (t *Tape) Pointer() int {
	return t.pointer
}

// SetPointer moves the pointer to index, wrapping it into range.
func (t *Tape) SetPointer(index int) {
	t.pointer = wrapIndex(index)
}

// ShiftRight moves the pointer one cell right, wrapping to 0.
func (t *Tape) ShiftRight() {
	t.pointer++
	if t.pointer == TapeSize {
		t.pointer = 0
	}
}

// ShiftLeft moves the pointer one cell left, wrapping to TapeSize-1.
func (t *Tape) ShiftLeft() {
	if t.pointer == 0 {
		t.pointer = TapeSize - 1
	} else {
		t.pointer--
	}
}

// Increment adds one to the current cell modulo 256.
func (t *Tape) Increment() {
	t.cells[t.pointer]++
}

// Decrement subtracts one from the current cell modulo 256.
func (t *Tape) Decrement() {
	t.cells[t.pointer]--
}

// Get returns the value of the current cell.
func (t *Tape) Get() uint8 {
	return t.cells[t.pointer]
}

// Set stores v in the current cell.
func (t *Tape) Set(v uint8) {
	t.cells[t.pointer] = v
}

// Cell returns the value of the cell at index, wrapping the index.
func (t *Tape) Cell(index int) uint8 {
	return t.cells[wrapIndex(index)]
}

// SetCell stores v in the cell at index, wrapping the index.
func (t *Tape) SetCell(index int, v uint8) {
	t.cells[wrapIndex(index)] = v
}

// Window returns a copy of n cells starting at offset. The window is
// clamped so that it never runs past the end of the tape.
func (t *Tape) Window(offset, n int) []uint8 {
	if n <= 0 {
		return nil
	}
	if n > TapeSize {
		n = TapeSize
	}
	if offset < 0 {
		offset = 0
	}
	if offset > TapeSize-n {
		offset = TapeSize - n
	}
	out := make([]uint8, n)
	copy(out, t.cells[offset:offset+n])
	return out
}

// Used returns the index one past the last nonzero cell.
func (t *Tape) Used() int {
	for i := TapeSize - 1; i >= 0; i-- {
		if t.cells[i] != 0 {
			return i + 1
		}
	}
	return 0
}

// Reset zeroes every cell and moves the pointer to 0.
func (t *Tape) Reset() {
	t.cells = [TapeSize]uint8{}
	t.pointer = 0
}

// Clone returns an independent copy of the tape.
func (t *Tape) Clone() *Tape {
	c := *t
	return &c
}

// Equal reports whether both tapes hold the same cells and pointer.
func (t *Tape) Equal(other *Tape) bool {
	if other == nil {
		return false
	}
	return t.pointer == other.pointer && t.cells == other.cells
}

func wrapIndex(index int) int {
	index %= TapeSize
	if index < 0 {
		index += TapeSize
	}
	return index
}
