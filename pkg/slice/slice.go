package slice

func ReverseInPlace[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func Contains[T comparable](s []T, value T) bool {
	for _, a := range s {
		if a == value {
			return true
		}
	}
	return false
}

// Pairs calls fn for every two consecutive elements of s.
func Pairs[T any](s []T, fn func(a, b T)) {
	for i := 0; i+1 < len(s); i++ {
		fn(s[i], s[i+1])
	}
}
