package bytes

import (
	"github.com/stretchr/testify/require"
	"testing"
)

// TestFmtMem_Units picks the two most significant units.
func TestFmtMem_Units(t *testing.T) {
	require.Equal(t, "0B", FmtMem(0))
	require.Equal(t, "1023B", FmtMem(1023))
	require.Equal(t, "1KB 1B", FmtMem(KB+1))
	require.Equal(t, "2MB 512KB", FmtMem(2*MB+512*KB))
	require.Equal(t, "3GB 1MB", FmtMem(3*GB+MB+7))
}

// TestFmtMem_Negative keeps the sign.
func TestFmtMem_Negative(t *testing.T) {
	require.Equal(t, "-1KB 0B", FmtMem(-KB))
}
