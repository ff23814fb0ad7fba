// Package nginlog provides parsing of nginx-style access logs.
//
// This package allows you to:
//   - Compile nginx log format strings ($remote_addr, $status, ...) into reusable parsers
//   - Parse log lines into structured entries with typed field access
//   - Extract log_format definitions directly from nginx configuration files
//   - Read log files line by line or follow them in real time
//
// # Basic Usage
//
// To parse a log file with a known format:
//
//	format := `$remote_addr [$time_local] "$request" $status $body_bytes_sent`
//
//	f, err := os.Open("access.log")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	reader, err := nginlog.NewReader(f, format)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for {
//	    entry, err := reader.Read()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        log.Printf("skipping line: %v", err)
//	        continue
//	    }
//	    addr, _ := entry.Field("remote_addr")
//	    status, _ := entry.IntField("status")
//	    fmt.Printf("%s -> %d\n", addr, status)
//	}
//
// To reuse one format from an nginx configuration file:
//
//	reader, err := nginlog.NewNginxReader(logFile, confFile, "main")
//
// # Custom Parsers
//
// Implement the [StringParser] interface for custom line parsing:
//
//	type StringParser interface {
//	    ParseString(line string) (*Entry, error)
//	}
//
// # Format Definition Files
//
// For named formats managed outside code, use the [formats] subpackage:
//
//	import "github.com/nginlog/nginlog-go/pkg/nginlog/formats"
//
//	file, err := formats.Load("formats.yaml")
//	format, err := file.Lookup("main")
//
// See the [formats] package for details on the YAML layout.
//
// # Concurrency
//
// A Parser is immutable after construction and safe for concurrent use.
// Readers and Entries are not; each is owned by a single goroutine.
package nginlog
