package formats

import "github.com/nginlog/nginlog-go/pkg/nginlog"

// Stock nginx log formats, as defined by the nginx distribution.
const (
	// Combined is the default nginx access log format ("combined").
	Combined = `$remote_addr - $remote_user [$time_local] "$request" $status $body_bytes_sent "$http_referer" "$http_user_agent"`

	// Common is the Common Log Format ("common"), as used by Apache httpd.
	Common = `$remote_addr - $remote_user [$time_local] "$request" $status $body_bytes_sent`
)

// builtins maps the stock format names to their format strings.
var builtins = map[string]string{
	"combined": Combined,
	"common":   Common,
}

// Builtin returns the format string for a stock nginx format name
// ("combined" or "common").
// Returns a *nginlog.FormatNotFoundError for unknown names.
func Builtin(name string) (string, error) {
	format, ok := builtins[name]
	if !ok {
		return "", &nginlog.FormatNotFoundError{Name: name}
	}
	return format, nil
}

// BuiltinNames returns the names of the stock formats.
func BuiltinNames() []string {
	return []string{"combined", "common"}
}
