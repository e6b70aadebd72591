package reporting

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Call Reports"

var exportHeader = []any{"Call ID", "Received At", "Duration (s)", "Duration", "User Question", "Assistant Response"}

// ExportXLSX writes every stored call report, oldest first, as a workbook.
func (s *Service) ExportXLSX(ctx context.Context, w io.Writer) error {
	if s.reports == nil {
		return errors.New("reporting: call report source not configured")
	}
	rows, err := s.reports.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("reporting: list call reports: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return err
	}
	for i, c := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			c.CallID,
			c.ReceivedAt.UTC().Format(time.RFC3339),
			c.Payload.Duration,
			FormatDuration(c.Payload.Duration),
			c.Payload.UserQuestion,
			c.Payload.AssistantResponse,
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
