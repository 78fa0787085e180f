package importer

// result.go aggregates commit output for inspection views: summary counts,
// success rate, and a generic text search so callers can filter result
// rows without re-running the pipeline. Everything here is read-only.

import (
	"strings"

	"github.com/elias3446/reportes-ciudadanos/internal/schema"
)

// Summary condenses a commit result into the counts shown to the user.
type Summary struct {
	Total       int     `json:"total"`
	Succeeded   int     `json:"succeeded"`
	Failed      int     `json:"failed"`
	SuccessRate float64 `json:"successRate"`
}

// Summarize computes the summary for a commit result.
// The rate is 0 for an empty result.
func Summarize(res *Result) Summary {
	s := Summary{
		Total:     res.Total,
		Succeeded: len(res.Success),
		Failed:    len(res.Failed),
	}
	if s.Total > 0 {
		s.SuccessRate = float64(s.Succeeded) / float64(s.Total)
	}
	return s
}

// SearchRecords returns the records whose schema field values contain the
// query, case-insensitively. An empty query matches everything.
func SearchRecords(records []Record, fields []schema.Field, query string) []Record {
	query = strings.ToLower(strings.TrimSpace(query))

	var out []Record
	for _, rec := range records {
		if query == "" || recordMatches(rec, fields, query) {
			out = append(out, rec)
		}
	}
	return out
}

// SearchFailed filters failed records the same way, also matching the
// failure reason so users can search by error text.
func SearchFailed(failed []FailedRecord, fields []schema.Field, query string) []FailedRecord {
	query = strings.ToLower(strings.TrimSpace(query))

	var out []FailedRecord
	for _, fr := range failed {
		if query == "" ||
			recordMatches(fr.Record, fields, query) ||
			strings.Contains(strings.ToLower(fr.Reason), query) {
			out = append(out, fr)
		}
	}
	return out
}

func recordMatches(rec Record, fields []schema.Field, query string) bool {
	for _, f := range fields {
		v := rec.Values[f.Key]
		if strings.Contains(strings.ToLower(v.String()), query) {
			return true
		}
	}
	return false
}
