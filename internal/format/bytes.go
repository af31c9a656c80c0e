package format

import "fmt"

const bytesPerMB = 1024 * 1024

// FormatMB renders a byte count in binary megabytes with two decimals.
func FormatMB(n int64) string {
	return fmt.Sprintf("%.2f MB", float64(n)/bytesPerMB)
}
