package analytics

import "context"

// ReportPDFGenerator genera la versión imprimible del bundle (implementado por infrastructure/pdf).
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, b *ReportBundle) ([]byte, error)
}

// ReportXLSXExporter exporta el bundle a una planilla (implementado por infrastructure/xlsx).
type ReportXLSXExporter interface {
	ExportReportXLSX(ctx context.Context, b *ReportBundle) ([]byte, error)
}
