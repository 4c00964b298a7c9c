package report

import (
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/corpspend/expense-api/internal/core/ports"
)

// dash is the placeholder rendered for empty or missing fields.
const dash = "—"

// headerDateFormat renders the generation date in the report header and
// email subject.
const headerDateFormat = "2 January 2006"

// HeaderDate formats now the way the report header and subject line expect.
func HeaderDate(now time.Time) string {
	return now.Format(headerDateFormat)
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><style>body{font-family:system-ui,sans-serif;color:#334155;line-height:1.5;max-width:720px;margin:0 auto;padding:24px}</style></head>
<body>
    <h1 style="color:#1e293b;margin-bottom:4px">CorpSpend Expense Report</h1>
    <p style="color:#64748b;margin-bottom:24px">Generated on {{.GeneratedOn}}</p>
    <p style="margin-bottom:16px"><strong>Total amount:</strong> ₹{{.Total}}</p>
    <p style="margin-bottom:16px"><strong>Total entries:</strong> {{.Count}}</p>
    <table style="width:100%;border-collapse:collapse;margin-top:16px">
        <thead>
            <tr style="background:#f1f5f9">
                <th style="padding:8px 12px;border:1px solid #e2e8f0;text-align:left">Description</th>
                <th style="padding:8px 12px;border:1px solid #e2e8f0;text-align:left">Category</th>
                <th style="padding:8px 12px;border:1px solid #e2e8f0;text-align:left">Amount</th>
                <th style="padding:8px 12px;border:1px solid #e2e8f0;text-align:left">Status</th>
                {{if .Privileged}}<th style="padding:8px 12px;border:1px solid #e2e8f0;text-align:left">Requested by</th>
                {{end}}<th style="padding:8px 12px;border:1px solid #e2e8f0;text-align:left">Date</th>
            </tr>
        </thead>
        <tbody>{{range .Rows}}
        <tr>
            <td style="padding:8px 12px;border:1px solid #e2e8f0">{{.Title}}</td>
            <td style="padding:8px 12px;border:1px solid #e2e8f0">{{.Category}}</td>
            <td style="padding:8px 12px;border:1px solid #e2e8f0">₹{{.Amount}}</td>
            <td style="padding:8px 12px;border:1px solid #e2e8f0">{{.Status}}</td>
            {{if $.Privileged}}<td style="padding:8px 12px;border:1px solid #e2e8f0">{{.RequestedBy}}</td>
            {{end}}<td style="padding:8px 12px;border:1px solid #e2e8f0">{{.Date}}</td>
        </tr>{{end}}
        </tbody>
    </table>
    <p style="margin-top:24px;color:#64748b;font-size:14px">This is an automated report from CorpSpend.</p>
</body>
</html>`))

type htmlRow struct {
	Title       string
	Category    string
	Amount      string
	Status      string
	RequestedBy string
	Date        string
}

type htmlReport struct {
	GeneratedOn string
	Total       string
	Count       int
	Privileged  bool
	Rows        []htmlRow
}

// RenderHtml produces the self-contained HTML report document. Every textual
// field is escaped by the template engine; empty fields render as an em-dash.
func RenderHtml(records []ports.ExpenseRecord, privileged bool, now time.Time) (string, error) {
	var total float64
	rows := make([]htmlRow, 0, len(records))
	for _, r := range records {
		total += r.Amount
		rows = append(rows, htmlRow{
			Title:       orDash(r.Title),
			Category:    orDash(string(r.Category)),
			Amount:      FormatAmount(r.Amount),
			Status:      orDash(string(r.Status)),
			RequestedBy: requesterLabel(r.Requester),
			Date:        dateLabel(r.Date),
		})
	}

	data := htmlReport{
		GeneratedOn: HeaderDate(now),
		Total:       FormatAmount(total),
		Count:       len(records),
		Privileged:  privileged,
		Rows:        rows,
	}

	var sb strings.Builder
	if err := reportTemplate.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func requesterLabel(r *ports.RequesterInfo) string {
	if r == nil {
		return dash
	}
	name := r.Username
	if name == "" {
		name = r.Email
	}
	if name == "" {
		return dash
	}
	if r.Department != "" {
		return name + " (" + r.Department + ")"
	}
	return name
}

func dateLabel(t time.Time) string {
	if t.IsZero() {
		return dash
	}
	return t.Format(rowDateFormat)
}

func orDash(s string) string {
	if s == "" {
		return dash
	}
	return s
}

// FormatAmount renders an amount with thousands separators, keeping decimals
// only when present.
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}
	var sb strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(d)
	}
	out := sb.String() + frac
	if neg {
		return "-" + out
	}
	return out
}
