// Package podium arranges ranked rows for display.
package podium

import "strconv"

// Split takes the first three rows and orders them 2nd, 1st, 3rd. Shorter lists keep whatever
// of that order exists.
func Split[T any](rows []T) (podium []T, rest []T) {
	n := min(3, len(rows))
	podium = make([]T, 0, n)
	for _, i := range []int{1, 0, 2} {
		if i < n {
			podium = append(podium, rows[i])
		}
	}
	rest = append([]T{}, rows[n:]...)
	return podium, rest
}

// Label renders a 1-based position: "1st", "2nd", "3rd", then the bare number.
func Label(position int) string {
	switch position {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return strconv.Itoa(position)
	}
}
