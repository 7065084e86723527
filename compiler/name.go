package compiler

import "regexp"

var nameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

func isValidName(s string) bool {
	return s != "" && nameRe.MatchString(s)
}
