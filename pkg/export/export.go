// Package export renders tabular datasets to CSV and PDF. The export
// service uses it to produce printable day schedules.
package export

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}
