package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/eduops/scheduling-api/pkg/export"
	appErrors "github.com/eduops/scheduling-api/pkg/errors"
)

// Export formats supported by the day-roster download.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportService renders day rosters into downloadable documents.
type ExportService struct {
	calendar *CalendarService
	logger   *zap.Logger
}

// NewExportService wires the export service.
func NewExportService(calendar *CalendarService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{calendar: calendar, logger: logger}
}

// ExportResult carries a rendered document and its download metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// DayRoster renders the roster for one date in the requested format.
func (s *ExportService) DayRoster(ctx context.Context, date, format string) (*ExportResult, error) {
	sessions, _, err := s.calendar.SessionsOnDate(ctx, date)
	if err != nil {
		return nil, err
	}

	table := export.RosterTable{Date: date}
	for _, session := range sessions {
		table.Rows = append(table.Rows, export.RosterRow{
			SessionID: session.SessionID,
			Name:      session.Name,
			Hour:      session.Hour,
			Teacher:   session.TeacherName,
			Enrolled:  session.Enrolled,
		})
	}

	switch format {
	case ExportFormatCSV:
		content, err := export.RenderCSV(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv roster")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("roster-%s.csv", date),
		}, nil
	case ExportFormatPDF:
		content, err := export.RenderPDF(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf roster")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("roster-%s.pdf", date),
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}
