package play

import "strings"

// naturalLess reports whether a orders before b, comparing embedded
// digit runs by numeric value before falling back to byte comparison,
// so "frame2" sorts before "frame10".
func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		ad, bd := digitPrefix(a), digitPrefix(b)
		if ad != "" && bd != "" {
			at := strings.TrimLeft(ad, "0")
			bt := strings.TrimLeft(bd, "0")
			if len(at) != len(bt) {
				return len(at) < len(bt)
			}
			if at != bt {
				return at < bt
			}
			a, b = a[len(ad):], b[len(bd):]
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func digitPrefix(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}
