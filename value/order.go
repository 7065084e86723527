package value

// Compare orders two values. ok is false for any cross-type, Null, or Map
// comparison, where ordering is undefined and the caller (ge/gt/le/lt)
// must yield false.
func Compare(a, b Value) (cmp int, ok bool) {
	if a.kind != b.kind {
		return 0, false
	}
	switch a.kind {
	case KindNumber:
		return compareFloat(a.n, b.n), true
	case KindString:
		return compareString(a.s, b.s), true
	case KindBool:
		return compareBool(a.b, b.b), true
	case KindArray:
		return compareArray(a.arr, b.arr)
	default:
		// Null and Map are not orderable.
		return 0, false
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a && b:
		return -1
	default:
		return 1
	}
}

// compareArray orders element-wise left-to-right; a strict prefix is
// smaller than the longer array that extends it. The comparison is
// undefined as a whole (ok=false) as soon as one pair of elements at the
// same position is neither orderable nor equal.
func compareArray(a, b []Value) (int, bool) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c, ok := Compare(a[i], b[i]); ok {
			if c != 0 {
				return c, true
			}
			continue
		}
		if !Equal(a[i], b[i]) {
			return 0, false
		}
	}
	return compareFloat(float64(len(a)), float64(len(b))), true
}
