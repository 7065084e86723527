package value

import "strings"

// Contain is type-dependent: string substring test, array membership by
// structural equality, map key presence, false for any other combination.
func Contain(a, b Value) bool {
	switch a.kind {
	case KindString:
		sub, ok := b.AsString()
		if !ok {
			return false
		}
		return strings.Contains(a.s, sub)
	case KindArray:
		for _, e := range a.arr {
			if Equal(e, b) {
				return true
			}
		}
		return false
	case KindMap:
		key, ok := b.AsString()
		if !ok {
			return false
		}
		_, present := a.m[key]
		return present
	default:
		return false
	}
}
