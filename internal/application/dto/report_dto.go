package dto

// ExpiringReportResponse respuesta de GET /api/reports/expiring.
type ExpiringReportResponse struct {
	Days  int               `json:"days"`
	Items []ProductResponse `json:"items"`
}

// LowStockReportResponse respuesta de GET /api/reports/low-stock.
type LowStockReportResponse struct {
	Threshold int               `json:"threshold"`
	Items     []ProductResponse `json:"items"`
}

// CategoryMarginDTO margen promedio de una categoría.
type CategoryMarginDTO struct {
	Category     string  `json:"category"`
	AvgMarginPct float64 `json:"avg_margin_pct"`
	Products     int     `json:"products"`
}

// MarginsReportResponse respuesta de GET /api/reports/margins.
// ByCategory es el mapa nombre -> margen promedio; Items lo mismo ordenado por nombre.
type MarginsReportResponse struct {
	ByCategory map[string]float64  `json:"by_category"`
	Items      []CategoryMarginDTO `json:"items"`
}

// SectorGroupDTO productos de un sector.
type SectorGroupDTO struct {
	Sector   string            `json:"sector"`
	Products []ProductResponse `json:"products"`
}

// SectorsReportResponse respuesta de GET /api/reports/sectors.
type SectorsReportResponse struct {
	Items []SectorGroupDTO `json:"items"`
}
