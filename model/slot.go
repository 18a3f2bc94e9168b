package model

// Slot is one numbered entry of an indexed list.
type Slot struct {
	Index uint64
	Value []byte
}

// Slots is the result of a list trim, ordered by ascending Index.
// Slots that were missing at read time are simply absent.
type Slots []Slot

func (s Slots) Len() int { return len(s) }

// Map indexes the slots by number.
func (s Slots) Map() map[uint64][]byte {
	m := make(map[uint64][]byte, len(s))
	for _, slot := range s {
		m[slot.Index] = slot.Value
	}
	return m
}

// Values returns the slot values in index order.
func (s Slots) Values() [][]byte {
	values := make([][]byte, len(s))
	for i, slot := range s {
		values[i] = slot.Value
	}
	return values
}
