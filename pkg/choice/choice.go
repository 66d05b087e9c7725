package choice

// Ternary operator
func Ternary[T any](condition bool, isTrue, isFalse T) T {
	if condition {
		return isTrue
	}

	return isFalse
}
