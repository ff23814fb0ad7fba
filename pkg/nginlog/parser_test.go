package nginlog_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nginlog/nginlog-go/pkg/nginlog"
)

func TestParser_CommonFormat(t *testing.T) {
	parser, err := nginlog.NewParser(`$remote_addr [$time_local] "$request" $status $body_bytes_sent`)
	require.NoError(t, err)

	entry, err := parser.ParseString(`127.0.0.1 [08/Nov/2013:13:39:18 +0000] "GET /api/foo HTTP/1.1" 200 612`)
	require.NoError(t, err)

	tests := []struct {
		field string
		want  string
	}{
		{"remote_addr", "127.0.0.1"},
		{"time_local", "08/Nov/2013:13:39:18 +0000"},
		{"request", "GET /api/foo HTTP/1.1"},
		{"status", "200"},
		{"body_bytes_sent", "612"},
	}
	for _, tt := range tests {
		got, err := entry.Field(tt.field)
		require.NoError(t, err, "field %s", tt.field)
		assert.Equal(t, tt.want, got, "field %s", tt.field)
	}
}

func TestParser_CombinedFormat(t *testing.T) {
	format := `$remote_addr - $remote_user [$time_local] "$request" $status $body_bytes_sent "$http_referer" "$http_user_agent"`
	parser, err := nginlog.NewParser(format)
	require.NoError(t, err)

	line := `192.168.1.1 - john [25/Dec/2013:14:30:00 +0000] "POST /api/login HTTP/1.1" 201 45 "https://example.com/login" "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"`
	entry, err := parser.ParseString(line)
	require.NoError(t, err)

	user, err := entry.Field("remote_user")
	require.NoError(t, err)
	assert.Equal(t, "john", user)

	referer, err := entry.Field("http_referer")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/login", referer)

	agent, err := entry.Field("http_user_agent")
	require.NoError(t, err)
	assert.Contains(t, agent, "Mozilla/5.0")
}

func TestParser_AdjacentFields(t *testing.T) {
	parser, err := nginlog.NewParser(`$host$request_uri`)
	require.NoError(t, err)

	entry, err := parser.ParseString(`example.com/api/users?id=123`)
	require.NoError(t, err)

	host, err := entry.Field("host")
	require.NoError(t, err)
	assert.Equal(t, "example.com", host)

	uri, err := entry.Field("request_uri")
	require.NoError(t, err)
	assert.Equal(t, "/api/users?id=123", uri)
}

func TestParser_AdjacentFieldsWithTrailingLiteral(t *testing.T) {
	parser, err := nginlog.NewParser(`$host$request_uri $method $status`)
	require.NoError(t, err)

	entry, err := parser.ParseString(`example.com/api/users?id=123 GET 200`)
	require.NoError(t, err)

	host, err := entry.Field("host")
	require.NoError(t, err)
	assert.Equal(t, "example.com", host)

	uri, err := entry.Field("request_uri")
	require.NoError(t, err)
	assert.Equal(t, "/api/users?id=123", uri)

	method, err := entry.Field("method")
	require.NoError(t, err)
	assert.Equal(t, "GET", method)

	status, err := entry.Field("status")
	require.NoError(t, err)
	assert.Equal(t, "200", status)
}

func TestParser_SpecialCharactersInLiterals(t *testing.T) {
	parser, err := nginlog.NewParser(`[$level] $timestamp $user "$params" $duration`)
	require.NoError(t, err)

	line := `[INFO] 2023-12-25T14:30:00Z user@example.com "action=login&result=success" 1.234ms`
	entry, err := parser.ParseString(line)
	require.NoError(t, err)

	level, err := entry.Field("level")
	require.NoError(t, err)
	assert.Equal(t, "INFO", level)

	params, err := entry.Field("params")
	require.NoError(t, err)
	assert.Equal(t, "action=login&result=success", params)

	duration, err := entry.Field("duration")
	require.NoError(t, err)
	assert.Equal(t, "1.234ms", duration)
}

func TestParser_LastFieldGreedyToEnd(t *testing.T) {
	parser, err := nginlog.NewParser(`$status $message`)
	require.NoError(t, err)

	entry, err := parser.ParseString(`500 upstream timed out while reading response`)
	require.NoError(t, err)

	message, err := entry.Field("message")
	require.NoError(t, err)
	assert.Equal(t, "upstream timed out while reading response", message)
}

func TestParser_Mismatch(t *testing.T) {
	format := `$remote_addr [$time_local] $status`
	parser, err := nginlog.NewParser(format)
	require.NoError(t, err)

	_, err = parser.ParseString(`not an access log line at all`)
	require.Error(t, err)

	var mismatch *nginlog.LineFormatMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "not an access log line at all", mismatch.Line)
	assert.Equal(t, format, mismatch.Format)
}

func TestParser_SubstringIsNotAMatch(t *testing.T) {
	parser, err := nginlog.NewParser(`$status bytes`)
	require.NoError(t, err)

	// The pattern occurs inside the line, but the whole line must match.
	_, err = parser.ParseString(`prefix 200 bytes suffix`)
	require.Error(t, err)

	var mismatch *nginlog.LineFormatMismatchError
	assert.True(t, errors.As(err, &mismatch))
}

func TestParser_EmptyFormat(t *testing.T) {
	parser, err := nginlog.NewParser("")
	require.NoError(t, err)

	entry, err := parser.ParseString("")
	require.NoError(t, err)
	assert.True(t, entry.IsEmpty())

	_, err = parser.ParseString("anything")
	require.Error(t, err)
}

func TestParser_EmptyCaptureIsPresent(t *testing.T) {
	parser, err := nginlog.NewParser(`[$user] $status`)
	require.NoError(t, err)

	entry, err := parser.ParseString(`[] 200`)
	require.NoError(t, err)

	// Zero-length capture yields an empty string, not an absent field.
	user, err := entry.Field("user")
	require.NoError(t, err)
	assert.Equal(t, "", user)

	_, err = entry.Field("nonexistent")
	var notFound *nginlog.FieldNotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestParser_DuplicateFieldNameLastWins(t *testing.T) {
	parser, err := nginlog.NewParser(`$id $id`)
	require.NoError(t, err)

	entry, err := parser.ParseString(`first second`)
	require.NoError(t, err)

	id, err := entry.Field("id")
	require.NoError(t, err)
	assert.Equal(t, "second", id)
}

func TestParser_Fields(t *testing.T) {
	parser, err := nginlog.NewParser(`$remote_addr [$time_local] $status`)
	require.NoError(t, err)

	assert.Equal(t, []string{"remote_addr", "time_local", "status"}, parser.Fields())
	assert.Equal(t, `$remote_addr [$time_local] $status`, parser.Format())
}

func TestParser_RoundTrip(t *testing.T) {
	format := `$a|$b|$c`
	parser, err := nginlog.NewParser(format)
	require.NoError(t, err)

	placed := map[string]string{"a": "one", "b": "two 2", "c": "three/3"}
	entry, err := parser.ParseString("one|two 2|three/3")
	require.NoError(t, err)

	for name, want := range placed {
		got, err := entry.Field(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParser_ConcurrentUse(t *testing.T) {
	parser, err := nginlog.NewParser(`$addr $status`)
	require.NoError(t, err)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				entry, err := parser.ParseString("10.0.0.1 204")
				if err != nil {
					t.Error(err)
					return
				}
				if status, _ := entry.Field("status"); status != "204" {
					t.Errorf("status = %q", status)
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
