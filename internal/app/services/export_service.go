package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/keiji0711/final-final/internal/app/models"
	"github.com/keiji0711/final-final/internal/app/repositories"
	"github.com/keiji0711/final-final/internal/pkg/apperrors"
)

// ExportService renders an event's attendance sheet as an XLSX workbook
type ExportService struct {
	eventRepo      *repositories.EventRepository
	attendanceRepo *repositories.AttendanceRepository
}

// NewExportService creates a new export service
func NewExportService(eventRepo *repositories.EventRepository, attendanceRepo *repositories.AttendanceRepository) *ExportService {
	return &ExportService{
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
	}
}

var exportHeaders = []string{"USN", "Name", "Date", "Time In", "Time Out", "Status"}

// ExportEvent builds the attendance workbook for one event and returns the
// serialized file alongside a download filename derived from the event name.
func (s *ExportService) ExportEvent(ctx context.Context, eventID int64) ([]byte, string, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, "", fmt.Errorf("error fetching event: %w", err)
	}
	if event == nil {
		return nil, "", apperrors.ErrEventNotFound
	}

	rows, err := s.attendanceRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, "", fmt.Errorf("error listing attendance: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, "", fmt.Errorf("error creating header style: %w", err)
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", fmt.Errorf("error writing header: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, "", fmt.Errorf("error styling header: %w", err)
		}
	}

	for i, row := range rows {
		values := []interface{}{row.USN, row.Name, row.Date, row.TimeIn, row.TimeOut, string(models.DeriveStatus(row.TimeIn))}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", fmt.Errorf("error writing row: %w", err)
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "F", 20); err != nil {
		return nil, "", fmt.Errorf("error sizing columns: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("error serializing workbook: %w", err)
	}

	return buf.Bytes(), exportFilename(event.EventName), nil
}

// exportFilename sanitizes the event name into a safe attachment filename.
func exportFilename(eventName string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '_'
		default:
			return -1
		}
	}, eventName)
	if name == "" {
		name = "event"
	}
	return name + "_attendance.xlsx"
}
