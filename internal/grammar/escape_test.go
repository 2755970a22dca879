package grammar_test

import (
	"bytes"
	"testing"

	"github.com/ghettovoice/navurl/internal/grammar"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want string
	}{
		{"empty", "", ""},
		{"no escape", "abc-_.!~*()XYZ09", "abc-_.!~*()XYZ09"},
		{"apostrophe", "it's", "it%27s"},
		{"reserved", "a b&c=d/e?f#g+h%", "a%20b%26c%3Dd%2Fe%3Ff%23g%2Bh%25"},
		{"2 bytes", "héllo", "h%C3%A9llo"},
		{"3 bytes", "世界", "%E4%B8%96%E7%95%8C"}, //nolint:gosmopolitan
		{"4 bytes", "😀", "%F0%9F%98%80"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.Encode(c.str), c.want; got != want {
				t.Errorf("grammar.Encode(%q) = %q, want %q", c.str, got, want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want string
	}{
		{"empty", "", ""},
		{"no escape", "abc/def", "abc/def"},
		{"plus", "a+b++c", "a b  c"},
		{"escaped plus", "a%2Bb", "a+b"},
		{"ascii", "%41%62%7e%20", "Ab~ "},
		{"2 bytes", "h%C3%A9llo", "héllo"},
		{"2 bytes lower case", "h%c3%a9llo", "héllo"},
		{"2 bytes overlong", "%C0%AF%C1%81", "%C0%AF%C1%81"},
		{"3 bytes", "%E4%B8%96%E7%95%8C", "世界"}, //nolint:gosmopolitan
		{"overlong 3 bytes", "%E0%80%80%E0%9F%BF", "%E0%80%80%E0%9F%BF"},
		{"3 bytes lowest", "%E0%A0%80", "ࠀ"},
		{"3 bytes surrogate", "%ED%A0%80", "%ED%A0%80"},
		{"4 bytes", "%F0%9F%98%80", "😀"},
		{"4 bytes overlong", "%F0%80%80%80", "%F0%80%80%80"},
		{"truncated sequence", "%E4%B8", "%E4%B8"},
		{"broken continuation", "%E4%B8%C3%A9", "%E4%B8é"},
		{"lone continuation", "%80%BF", "%80%BF"},
		{"high single byte", "%FF", "%FF"},
		{"malformed", "abc%ax%", "abc%ax%"},
		{"trailing percent", "100%", "100%"},
		{"short escape", "%4", "%4"},
		{"escaped percent", "%2541", "%41"},
		{"mixed", "%C3%A9%E4%B8%96%41", "é世A"}, //nolint:gosmopolitan
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.Decode(c.str), c.want; got != want {
				t.Errorf("grammar.Decode(%q) = %q, want %q", c.str, got, want)
			}
		})
	}
}

func TestDecode_Bytes(t *testing.T) {
	t.Parallel()

	in := []byte("h%C3%A9llo+world")
	if got, want := grammar.Decode(in), []byte("héllo world"); !bytes.Equal(got, want) {
		t.Errorf("grammar.Decode(%q) = %q, want %q", in, got, want)
	}
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"",
		"héllo'world",
		"a b+c&d=e",
		"100% sure",
		"世界 😀", //nolint:gosmopolitan
		"%E0%80%80",
	} {
		if got := grammar.Decode(grammar.Encode(s)); got != s {
			t.Errorf("grammar.Decode(grammar.Encode(%q)) = %q, want %q", s, got, s)
		}
	}
}

func BenchmarkEncode(b *testing.B) {
	cases := []struct {
		name    string
		in, out any
	}{
		{"string", "héllo'world", "h%C3%A9llo%27world"},
		{"bytes", []byte("héllo'world"), []byte("h%C3%A9llo%27world")},
	}

	b.ResetTimer()
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ResetTimer()
			for b.Loop() {
				switch in := c.in.(type) {
				case string:
					want, _ := c.out.(string)
					if got := grammar.Encode(in); got != want {
						b.Errorf("grammar.Encode(%q) = %q, want %q", in, got, want)
					}
				case []byte:
					want, _ := c.out.([]byte)
					if got := grammar.Encode(in); !bytes.Equal(got, want) {
						b.Errorf("grammar.Encode(%q) = %q, want %q", in, got, want)
					}
				}
			}
		})
	}
}

func BenchmarkDecode(b *testing.B) {
	in := "h%C3%A9llo+%E4%B8%96%E7%95%8C+%27world%27"
	want := "héllo 世界 'world'" //nolint:gosmopolitan

	b.ResetTimer()
	for b.Loop() {
		if got := grammar.Decode(in); got != want {
			b.Errorf("grammar.Decode(%q) = %q, want %q", in, got, want)
		}
	}
}
