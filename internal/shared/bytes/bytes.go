package bytes

import "fmt"

const (
	KB = 1024
	MB = KB * 1024
	GB = MB * 1024
)

// FmtMem renders a byte count with its two most significant units.
func FmtMem(n int64) string {
	if n < 0 {
		return "-" + FmtMem(-n)
	}
	switch {
	case n >= GB:
		return fmt.Sprintf("%dGB %dMB", n/GB, n%GB/MB)
	case n >= MB:
		return fmt.Sprintf("%dMB %dKB", n/MB, n%MB/KB)
	case n >= KB:
		return fmt.Sprintf("%dKB %dB", n/KB, n%KB)
	default:
		return fmt.Sprintf("%dB", n)
	}
}
