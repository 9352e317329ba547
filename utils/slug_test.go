package utils_test

import (
	"coursex/utils"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Advanced SQL Tuning", "advanced-sql-tuning"},
		{"  Go: Concurrency & Channels!  ", "go-concurrency-channels"},
		{"C++ for Gophers", "c-for-gophers"},
		{"100 Days of Code", "100-days-of-code"},
		{"---", ""},
		{"", ""},
		{"UPPER case", "upper-case"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, utils.GenerateSlug(tc.title), "title %q", tc.title)
	}
}
