package document

// IsCNH reports whether doc is a valid driver's license (CNH) register number.
func IsCNH(doc string) bool {
	d := clean(doc)
	if len(d) != 11 || !allDigits(d) || allSame(d) {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += value(d[i]) * (9 - i)
	}
	first := sum % 11
	discount := 0
	if first >= 10 {
		first = 0
		discount = 2
	}

	sum = 0
	for i := 0; i < 9; i++ {
		sum += value(d[i]) * (i + 1)
	}
	second := sum%11 - discount
	if second < 0 {
		second += 11
	}
	if second >= 10 {
		second = 0
	}

	return first == value(d[9]) && second == value(d[10])
}
