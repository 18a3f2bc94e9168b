package model

import (
	"github.com/stretchr/testify/require"
	"testing"
)

// TestSlots_Views keeps order in Values and indexes in Map.
func TestSlots_Views(t *testing.T) {
	s := Slots{{Index: 1, Value: []byte("A")}, {Index: 3, Value: []byte("C")}}

	require.Equal(t, 2, s.Len())
	require.Equal(t, [][]byte{[]byte("A"), []byte("C")}, s.Values())
	require.Equal(t, map[uint64][]byte{1: []byte("A"), 3: []byte("C")}, s.Map())
}

// TestSlots_Empty is safe on nil.
func TestSlots_Empty(t *testing.T) {
	var s Slots
	require.Equal(t, 0, s.Len())
	require.Empty(t, s.Values())
	require.Empty(t, s.Map())
}
