package upc

import "fmt"

// CodeLength is the number of digits in a UPC-A code, including the check digit.
const CodeLength = 12

// Validate checks whether a single input line is a well-formed UPC-A code:
// exactly 12 ASCII digits. Length is checked before content, so a line that
// is both too short and non-numeric reports the length problem.
//
// A well-formed code can still be rejected later by the symbology encoder
// (wrong check digit); Validate only covers the cheap structural checks.
func Validate(line string) (bool, string) {
	if len(line) != CodeLength {
		return false, fmt.Sprintf("must be exactly %d digits, got %d characters", CodeLength, len(line))
	}
	for i := 0; i < len(line); i++ {
		if line[i] < '0' || line[i] > '9' {
			return false, "contains non-numeric characters"
		}
	}
	return true, ""
}

// CheckDigit computes the UPC-A check digit for the first 11 digits of a
// code: odd positions weighted by 3, even by 1, modulo 10.
func CheckDigit(digits string) (byte, error) {
	if len(digits) < CodeLength-1 {
		return 0, fmt.Errorf("need %d digits, got %d", CodeLength-1, len(digits))
	}

	sum := 0
	for i := 0; i < CodeLength-1; i++ {
		d := digits[i]
		if d < '0' || d > '9' {
			return 0, fmt.Errorf("non-numeric character at position %d", i)
		}
		if i%2 == 0 {
			sum += int(d-'0') * 3
		} else {
			sum += int(d - '0')
		}
	}
	return byte('0' + (10-sum%10)%10), nil
}
