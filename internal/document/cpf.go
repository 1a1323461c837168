package document

// IsCPF reports whether doc is a valid CPF. Formatting such as
// "529.982.247-25" is accepted.
func IsCPF(doc string) bool {
	d := clean(doc)
	if len(d) != 11 || !allDigits(d) || allSame(d) {
		return false
	}

	return cpfDigit(d[:9], 10) == value(d[9]) &&
		cpfDigit(d[:10], 11) == value(d[10])
}

// cpfDigit computes one CPF check digit with weights starting at weight and
// decreasing to 2.
func cpfDigit(base string, weight int) int {
	sum := 0
	for i := 0; i < len(base); i++ {
		sum += value(base[i]) * (weight - i)
	}
	r := (sum * 10) % 11
	if r == 10 {
		return 0
	}
	return r
}
