package stopwatch

import (
	"errors"
	"regexp"
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want string
	}{
		{name: "zero", in: 0, want: "00:00:00.00"},
		{name: "one hour one minute one second", in: 3661015 * time.Millisecond, want: "01:01:01.01"},
		{name: "hundredths truncate", in: 999 * time.Millisecond, want: "00:00:00.99"},
		{name: "sub hundredth", in: 9 * time.Millisecond, want: "00:00:00.00"},
		{name: "just under an hour", in: time.Hour - 10*time.Millisecond, want: "00:59:59.99"},
		{name: "hours overflow two digits", in: 123*time.Hour + 4*time.Minute, want: "123:04:00.00"},
		{name: "negative clamps", in: -time.Second, want: "00:00:00.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.in); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormat_Pattern(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{2,}:\d{2}:\d{2}\.\d{2}$`)

	for ms := int64(0); ms < 400*3600000; ms += 7919333 {
		got := Format(time.Duration(ms) * time.Millisecond)
		if !pattern.MatchString(got) {
			t.Fatalf("Format(%dms) = %q does not match HH:MM:SS.cc", ms, got)
		}
	}
}

func TestParseElapsed_RoundTrip(t *testing.T) {
	for ms := int64(0); ms < 250*3600000; ms += 3333337 {
		d := time.Duration(ms) * time.Millisecond
		s := Format(d)

		back, err := ParseElapsed(s)
		if err != nil {
			t.Fatalf("ParseElapsed(%q) error: %v", s, err)
		}

		if again := Format(back); again != s {
			t.Errorf("Format(ParseElapsed(%q)) = %q", s, again)
		}

		if diff := d - back; diff < 0 || diff >= 10*time.Millisecond {
			t.Errorf("ParseElapsed(%q) = %v, more than a hundredth away from %v", s, back, d)
		}
	}
}

func TestParseElapsed_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"01:01",
		"1:01:01.01",
		"01:1:01.01",
		"01:01:01",
		"01:01:01.1",
		"01:60:00.00",
		"01:00:60.00",
		"aa:00:00.00",
		"-1:00:00.00",
		"01:00:00.+1",
		"2562047:00:00.00",
		"99999999999:00:00.00",
	}

	for _, in := range inputs {
		if _, err := ParseElapsed(in); !errors.Is(err, ErrInvalidElapsed) {
			t.Errorf("ParseElapsed(%q) error = %v, want ErrInvalidElapsed", in, err)
		}
	}
}

func TestParseElapsed_LargestHours(t *testing.T) {
	d, err := ParseElapsed("2562046:59:59.99")
	if err != nil {
		t.Fatalf("ParseElapsed() error = %v", err)
	}

	if got := Format(d); got != "2562046:59:59.99" {
		t.Errorf("Format(ParseElapsed()) = %q, want %q", got, "2562046:59:59.99")
	}
}
