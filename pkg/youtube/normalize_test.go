package youtube

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips non-speech markers",
			in:   "Welcome back [Music] to the channel (laughs)",
			want: "Welcome back to the channel",
		},
		{
			name: "strips filler words",
			in:   "So um this is uh basically the idea",
			want: "So this is the idea",
		},
		{
			name: "strips outro boilerplate",
			in:   "That is the whole proof. Thanks for watching and see you next time",
			want: "That is the whole proof.",
		},
		{
			name: "collapses whitespace",
			in:   "line one\n\nline   two\t line three",
			want: "line one line two line three",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("one two  three"); got != 3 {
		t.Errorf("WordCount = %d, want 3", got)
	}
	if got := WordCount(""); got != 0 {
		t.Errorf("WordCount = %d, want 0", got)
	}
}
