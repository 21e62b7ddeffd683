package pkg

// Contains check source have target
func Contains(slice []string, val string) bool {
	for _, v := range slice {
		if v == val {
			return true
		}
	}
	return false
}

// Remove returns slice without any occurrence of val
func Remove(slice []string, val string) []string {
	out := make([]string, 0, len(slice))
	for _, v := range slice {
		if v != val {
			out = append(out, v)
		}
	}
	return out
}
