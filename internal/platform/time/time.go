// Package time contains time related helpers
package time

import (
	"strconv"
	"strings"
	"time"
)

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func split(seconds int) (h, m, s int) {
	if seconds < 0 {
		seconds = 0
	}
	return seconds / 3600, (seconds % 3600) / 60, seconds % 60
}

// FormatOffset renders seconds as a player offset such as 1h2m3s, 4m0s or 7s
// hours are omitted when zero and minutes are omitted only when hours are too
func FormatOffset(seconds int) string {
	h, m, s := split(seconds)
	var b strings.Builder
	if h > 0 {
		b.WriteString(strconv.Itoa(h))
		b.WriteByte('h')
	}
	if h > 0 || m > 0 {
		b.WriteString(strconv.Itoa(m))
		b.WriteByte('m')
	}
	b.WriteString(strconv.Itoa(s))
	b.WriteByte('s')
	return b.String()
}

// FormatClock renders seconds as h:mm:ss, or mm:ss below one hour
func FormatClock(seconds int) string {
	h, m, s := split(seconds)
	pad := func(n int) string {
		if n < 10 {
			return "0" + strconv.Itoa(n)
		}
		return strconv.Itoa(n)
	}
	if h > 0 {
		return strconv.Itoa(h) + ":" + pad(m) + ":" + pad(s)
	}
	return pad(m) + ":" + pad(s)
}
