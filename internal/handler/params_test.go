package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIDList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []uint
	}{
		{name: "empty", raw: "", want: nil},
		{name: "single id", raw: "5", want: []uint{5}},
		{name: "multiple ids", raw: "1,5,12", want: []uint{1, 5, 12}},
		{name: "spaces tolerated", raw: " 1 , 2 ", want: []uint{1, 2}},
		{name: "blank entries skipped", raw: "1,,2,", want: []uint{1, 2}},
		{name: "non-numeric entries skipped", raw: "1,abc,2", want: []uint{1, 2}},
		{name: "only junk", raw: "abc,-3", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseIDList(tt.raw))
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{raw: "", want: false},
		{raw: "1", want: true},
		{raw: "0", want: false},
		{raw: "true", want: true},
		{raw: "false", want: false},
		{raw: "TRUE", want: true},
		{raw: "2", want: true},
		{raw: "yes", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, truthy(tt.raw))
		})
	}
}
