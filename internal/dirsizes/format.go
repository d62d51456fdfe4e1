package dirsizes

import "strconv"

// units lists the binary size suffixes in increasing order.
//
//nolint:gochecknoglobals // Lookup table
var units = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// FormatSize renders size as "<n> <unit>", dividing by 1024 while the value is
// strictly greater than 1024. Division truncates, so 1536 becomes "1 KB" and
// 1024 stays "1024 B".
func FormatSize(size uint64) string {
	unit := 0

	for size > 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	return strconv.FormatUint(size, 10) + " " + units[unit]
}
