// Package report renders a set of expense records into the CSV and HTML
// representations used by the export and email endpoints. Rendering is pure:
// no I/O, no store access.
package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/corpspend/expense-api/internal/core/ports"
)

const (
	// bom is the UTF-8 byte-order marker expected by spreadsheet tools.
	bom = "\uFEFF"
	// rowDateFormat renders per-row dates (day/month/year).
	rowDateFormat = "02/01/2006"
)

// CsvFilename builds the attachment name for an export generated at now.
func CsvFilename(now time.Time) string {
	return "expense-report-" + now.UTC().Format("2006-01-02") + ".csv"
}

// RenderCsv produces the CSV document for records. Privileged callers get two
// extra columns identifying each requester. Rows are CRLF-terminated and the
// whole document carries a BOM prefix.
func RenderCsv(records []ports.ExpenseRecord, privileged bool) []byte {
	headers := []string{"Description", "Category", "Amount (₹)", "Status"}
	if privileged {
		headers = append(headers, "Requested by", "Department")
	}
	headers = append(headers, "Date")

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, joinCsv(headers))

	for _, r := range records {
		fields := []string{
			r.Title,
			string(r.Category),
			strconv.FormatFloat(r.Amount, 'f', -1, 64),
			string(r.Status),
		}
		if privileged {
			username, department := "", ""
			if r.Requester != nil {
				username = r.Requester.Username
				department = r.Requester.Department
			}
			fields = append(fields, username, department)
		}
		fields = append(fields, r.Date.Format(rowDateFormat))
		lines = append(lines, joinCsv(fields))
	}

	return []byte(bom + strings.Join(lines, "\r\n"))
}

func joinCsv(fields []string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = escapeCsv(f)
	}
	return strings.Join(escaped, ",")
}

// escapeCsv quote-wraps a field only when it contains a comma, quote, or
// newline, doubling interior quotes.
func escapeCsv(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
