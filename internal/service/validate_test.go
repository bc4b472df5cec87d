package service

import (
	"errors"
	"testing"

	"github.com/Nik-Luchok/finance/internal/domain"
)

func TestParseShareCount(t *testing.T) {
	testCases := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{input: "1", want: 1},
		{input: "10", want: 10},
		{input: "1000000", want: 1000000},
		{input: "007", want: 7},
		{input: "", wantErr: true},
		{input: "0", wantErr: true},
		{input: "000", wantErr: true},
		{input: "-5", wantErr: true},
		{input: "+5", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "3.5", wantErr: true},
		{input: " 1", wantErr: true},
		{input: "1e3", wantErr: true},
		{input: "9223372036854775808", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseShareCount(tc.input)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrInvalidShareCount) {
					t.Fatalf("ParseShareCount(%q) error = %v, want ErrInvalidShareCount", tc.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseShareCount(%q) error = %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParseShareCount(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}
