package slugify

import (
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "Hello World", want: "hello-world"},
		{in: "  Trimmed Title  ", want: "trimmed-title"},
		{in: "snake_case_title", want: "snake-case-title"},
		{in: "path/to/something", want: "path-to-something"},
		{in: "Special !@#$ Characters", want: "special-characters"},
		{in: "Multiple   Spaces", want: "multiple-spaces"},
		{in: "--leading-and-trailing--", want: "leading-and-trailing"},
		{in: "Go 1.22 Release Notes", want: "go-122-release-notes"},
		{in: "ALL CAPS", want: "all-caps"},
		{in: "", want: ""},
		{in: "!!!", want: ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWithTimestamp(t *testing.T) {
	t.Parallel()

	now := time.Unix(1700000000, 0)
	if got := WithTimestamp("hello-world", now); got != "hello-world-1700000000" {
		t.Fatalf("WithTimestamp = %q, want %q", got, "hello-world-1700000000")
	}
}
