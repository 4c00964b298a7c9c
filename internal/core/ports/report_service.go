package ports

import "context"

// CsvExport is a rendered CSV attachment ready to stream to the client.
type CsvExport struct {
	Filename string
	Content  []byte
}

// SendOutcome describes the result of a report delivery.
type SendOutcome struct {
	Message string
	// PreviewURL is set when the mail channel ran in test mode and captured
	// the message instead of delivering it.
	PreviewURL string
}

// ReportService renders and delivers expense summaries. Both operations apply
// the same visibility rule as expense listings.
type ReportService interface {
	ExportCsv(ctx context.Context, viewer Viewer) (*CsvExport, error)
	// SendReport emails the HTML summary to recipient. The address must have
	// a local@domain.tld shape or the call fails with
	// domain.ErrInvalidRecipient before any records are read.
	SendReport(ctx context.Context, viewer Viewer, recipient string) (*SendOutcome, error)
}
