package grading_test

import (
	"testing"

	"github.com/lifeprep/backend/internal/grading"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"True.", "true"},
		{" TRUE! ", "true"},
		{"true??", "true"},
		{"PARIS.", "paris"},
		{"  Paris  ", "paris"},
		{"1415", "1415"},
		{"", ""},
	}
	for _, c := range cases {
		if got := grading.Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !grading.Equal("PARIS.", "Paris") {
		t.Error("expected PARIS. to match Paris")
	}
	if grading.Equal("London", "Paris") {
		t.Error("expected London not to match Paris")
	}
}
