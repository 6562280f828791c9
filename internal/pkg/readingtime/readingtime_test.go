package readingtime

import (
	"strings"
	"testing"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "plain text", want: "plain text"},
		{in: "<p>hello</p>", want: " hello "},
		{in: "<a href=\"/x\">link</a> text", want: " link  text"},
		{in: "<br/>", want: " "},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		if got := StripHTML(tt.in); got != tt.want {
			t.Fatalf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEstimate(t *testing.T) {
	t.Parallel()

	if got := Estimate(""); got != 0 {
		t.Fatalf("expected empty content to estimate 0, got %d", got)
	}

	if got := Estimate("just a few words"); got != 1 {
		t.Fatalf("expected short content to round up to 1 minute, got %d", got)
	}

	exactly200 := strings.Repeat("word ", 200)
	if got := Estimate(exactly200); got != 1 {
		t.Fatalf("expected 200 words to estimate 1 minute, got %d", got)
	}

	words201 := strings.Repeat("word ", 201)
	if got := Estimate(words201); got != 2 {
		t.Fatalf("expected 201 words to round up to 2 minutes, got %d", got)
	}

	markup := "<article>" + strings.Repeat("<b>word</b> ", 400) + "</article>"
	if got := Estimate(markup); got != 2 {
		t.Fatalf("expected 400 words of markup to estimate 2 minutes, got %d", got)
	}
}
