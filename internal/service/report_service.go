package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/campushq/hostel-api/internal/store"
	appErrors "github.com/campushq/hostel-api/pkg/errors"
	"github.com/campushq/hostel-api/pkg/export"
)

// ReportFormat selects the export encoding.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

// Report carries rendered bytes plus the content type to serve them with.
type Report struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportService renders the room occupancy report for download.
type ReportService struct {
	store  store.Store
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewReportService constructs the report service.
func NewReportService(st store.Store, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		store:  st,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

var occupancyHeaders = []string{"Room", "Block", "Floor", "Type", "Capacity", "Occupied", "Rent", "Status"}

// Occupancy renders a room-by-room occupancy report in the requested format.
func (s *ReportService) Occupancy(ctx context.Context, format ReportFormat) (*Report, error) {
	dataset := export.Dataset{Headers: occupancyHeaders}
	err := s.store.View(ctx, func(state *store.State) error {
		for _, room := range state.Rooms {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"Room":     room.Number,
				"Block":    room.Block,
				"Floor":    strconv.Itoa(room.Floor),
				"Type":     room.Type,
				"Capacity": strconv.Itoa(room.Capacity),
				"Occupied": strconv.Itoa(room.Occupied),
				"Rent":     strconv.Itoa(room.Rent),
				"Status":   string(room.Status),
			})
		}
		return nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms for report")
	}

	var report *Report
	switch format {
	case ReportFormatPDF:
		data, err := s.pdf.Render(dataset, "Room Occupancy Report")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		report = &Report{Filename: "occupancy.pdf", ContentType: "application/pdf", Data: data}
	case ReportFormatCSV, "":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		report = &Report{Filename: "occupancy.csv", ContentType: "text/csv", Data: data}
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported report format")
	}

	s.logger.Info("occupancy report rendered",
		zap.String("filename", report.Filename),
		zap.Int("rooms", len(dataset.Rows)),
		zap.Int("bytes", len(report.Data)))
	return report, nil
}
