package document

var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// IsCNPJ reports whether doc is a valid CNPJ, numeric or alphanumeric.
// Formatting such as "11.222.333/0001-81" is accepted.
func IsCNPJ(doc string) bool {
	d := clean(doc)
	if len(d) != 14 || allSame(d) {
		return false
	}
	for i := 0; i < 12; i++ {
		c := d[i]
		if !(c >= '0' && c <= '9') && !(c >= 'A' && c <= 'Z') {
			return false
		}
	}
	if !allDigits(d[12:]) {
		return false
	}

	return cnpjDigit(d[:12], cnpjWeights1) == value(d[12]) &&
		cnpjDigit(d[:13], cnpjWeights2) == value(d[13])
}

func cnpjDigit(base string, weights []int) int {
	sum := 0
	for i := 0; i < len(base); i++ {
		sum += value(base[i]) * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}
