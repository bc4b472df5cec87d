package service

import (
	"strconv"

	"github.com/Nik-Luchok/finance/internal/domain"
)

// ParseShareCount accepts only strings of decimal digits encoding a
// strictly positive integer. Signs, fractions, empty input and anything
// non-numeric are rejected.
func ParseShareCount(s string) (int64, error) {
	if s == "" {
		return 0, domain.ErrInvalidShareCount
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, domain.ErrInvalidShareCount
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, domain.ErrInvalidShareCount
	}

	return n, nil
}
