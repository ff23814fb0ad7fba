package nginlog

import (
	"testing"
)

// FuzzNewParser tests format compilation with arbitrary input to ensure it
// never panics and either compiles or fails with InvalidFormatError.
func FuzzNewParser(f *testing.F) {
	// Seed corpus with realistic formats
	f.Add(`$remote_addr [$time_local] "$request" $status $body_bytes_sent`)
	f.Add(`$host$request_uri $method $status`)
	f.Add(`$remote_addr - $remote_user [$time_local] "$request" $status $body_bytes_sent "$http_referer" "$http_user_agent"`)

	// Seed with edge cases
	f.Add("")           // Empty format
	f.Add("$")          // Bare dollar
	f.Add("$a$b$c")     // Triple adjacency
	f.Add("no fields")  // Literal only
	f.Add(`\(\[\{\|\^`) // Metacharacters
	f.Add("$x $x $x")   // Duplicate names
	f.Add(string([]byte{0xff, 0xfe, 0xfd}))

	f.Fuzz(func(t *testing.T, format string) {
		parser, err := NewParser(format)
		if err != nil {
			if _, ok := err.(*InvalidFormatError); !ok {
				t.Errorf("NewParser(%q) returned non-InvalidFormatError: %v", format, err)
			}
			return
		}
		// A compiled parser must handle any line without panicking.
		_, _ = parser.ParseString(format)
		_, _ = parser.ParseString("")
		_, _ = parser.ParseString("127.0.0.1 - - GET / 200")
	})
}

// FuzzParseString tests line matching with arbitrary input against a fixed
// compiled format.
func FuzzParseString(f *testing.F) {
	parser, err := NewParser(`$remote_addr [$time_local] "$request" $status`)
	if err != nil {
		f.Fatalf("failed to compile format: %v", err)
	}

	f.Add(`127.0.0.1 [08/Nov/2013:13:39:18 +0000] "GET /api/foo HTTP/1.1" 200`)
	f.Add("")
	f.Add("garbage")
	f.Add(`[] "" `)
	f.Add(string([]byte{0xff, 0xfe, 0xfd}))

	f.Fuzz(func(t *testing.T, line string) {
		entry, err := parser.ParseString(line)
		if err == nil && entry == nil {
			t.Error("ParseString returned nil entry with nil error")
		}
	})
}
