package intent

import (
	"reflect"
	"testing"
)

func TestClassifyNumber(t *testing.T) {
	cases := []struct {
		text      string
		want      int
		hasNumber bool
	}{
		{"I am 19", 19, true},
		{"i'm 22 years old", 22, true},
		{"21+", 21, true},
		{"1", 1, true},
		{"option 2 please", 2, true},
		{"19 or 20", 19, true}, // first run wins
		{"no digits here", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			in := Classify(tc.text)
			if in.HasNumber != tc.hasNumber {
				t.Fatalf("HasNumber = %v, want %v", in.HasNumber, tc.hasNumber)
			}
			if tc.hasNumber && in.Number != tc.want {
				t.Fatalf("Number = %d, want %d", in.Number, tc.want)
			}
		})
	}
}

func TestClassifyLines(t *testing.T) {
	in := Classify("  Lena  \n\n+971501234567\n lena@gmail.com \nFemale\n")
	want := []string{"Lena", "+971501234567", "lena@gmail.com", "Female"}
	if !reflect.DeepEqual(in.Lines, want) {
		t.Fatalf("Lines = %v, want %v", in.Lines, want)
	}
}

func TestHasIsCaseInsensitive(t *testing.T) {
	in := Classify("Tell Me MORE")
	if !in.Has("tell me more") {
		t.Fatal("Has must match case-insensitively")
	}
	if in.Has("yes") {
		t.Fatal("Has must not match absent substrings")
	}
}

func TestSaysYes(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"Yes", true},
		{"yes, let's start", true},
		{"YES!", true},
		{"no", false},
		// Substring semantics: any word containing "yes" counts.
		{"eyes", true},
	}
	for _, tc := range cases {
		if got := Classify(tc.text).SaysYes(); got != tc.want {
			t.Errorf("SaysYes(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestClassifyTrims(t *testing.T) {
	in := Classify("  hello  ")
	if in.Text != "hello" {
		t.Fatalf("Text = %q, want hello", in.Text)
	}
}
