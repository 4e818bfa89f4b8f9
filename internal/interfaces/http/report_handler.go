package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-productos/internal/application/analytics"
	"github.com/jhoicas/catalogo-productos/internal/application/dto"
)

// ReportHandler expone los reportes del catálogo y sus exportaciones.
type ReportHandler struct {
	uc               *analytics.ReportUseCase
	pdf              analytics.ReportPDFGenerator
	xlsx             analytics.ReportXLSXExporter
	defaultDays      int
	defaultThreshold int
}

// NewReportHandler construye el handler. days/threshold se usan cuando la query no los trae.
func NewReportHandler(
	uc *analytics.ReportUseCase,
	pdf analytics.ReportPDFGenerator,
	xlsx analytics.ReportXLSXExporter,
	days, threshold int,
) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdf, xlsx: xlsx, defaultDays: days, defaultThreshold: threshold}
}

// Expiring godoc
// @Summary      Productos que vencen en los próximos N días
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana en días"  default(60)
// @Success      200   {object}  dto.ExpiringReportResponse
// @Router       /api/reports/expiring [get]
func (h *ReportHandler) Expiring(c *fiber.Ctx) error {
	days := c.QueryInt("days", h.defaultDays)
	return c.JSON(dto.ExpiringReportResponse{
		Days:  days,
		Items: dto.ToProductResponses(h.uc.ExpiringWithin(days)),
	})
}

// LowStock godoc
// @Summary      Productos con stock menor al umbral
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "Umbral"  default(10)
// @Success      200        {object}  dto.LowStockReportResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", h.defaultThreshold)
	return c.JSON(dto.LowStockReportResponse{
		Threshold: threshold,
		Items:     dto.ToProductResponses(h.uc.LowStock(threshold)),
	})
}

// Margins godoc
// @Summary      Margen porcentual promedio por categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MarginsReportResponse
// @Router       /api/reports/margins [get]
func (h *ReportHandler) Margins(c *fiber.Ctx) error {
	b := h.uc.Bundle(h.defaultDays, h.defaultThreshold)
	out := dto.MarginsReportResponse{
		ByCategory: make(map[string]float64, len(b.Margins)),
		Items:      make([]dto.CategoryMarginDTO, 0, len(b.Margins)),
	}
	for _, m := range b.Margins {
		out.ByCategory[m.Category] = m.AvgMarginPct
		out.Items = append(out.Items, dto.CategoryMarginDTO{Category: m.Category, AvgMarginPct: m.AvgMarginPct, Products: m.Products})
	}
	return c.JSON(out)
}

// Sectors godoc
// @Summary      Productos agrupados por sector
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SectorsReportResponse
// @Router       /api/reports/sectors [get]
func (h *ReportHandler) Sectors(c *fiber.Ctx) error {
	b := h.uc.Bundle(h.defaultDays, h.defaultThreshold)
	out := dto.SectorsReportResponse{Items: make([]dto.SectorGroupDTO, 0, len(b.Sectors))}
	for _, s := range b.Sectors {
		out.Items = append(out.Items, dto.SectorGroupDTO{Sector: s.Sector, Products: dto.ToProductResponses(s.Products)})
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Exportar todos los reportes en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        days       query  int  false  "Ventana de vencimiento"
// @Param        threshold  query  int  false  "Umbral de stock"
// @Success      200  {file}  binary
// @Router       /api/reports/export.pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	b := h.bundle(c)
	out, err := h.pdf.GenerateReportPDF(c.UserContext(), b)
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, "application/pdf", fmt.Sprintf("reportes-%s.pdf", b.GeneratedAt.Format("20060102")), out)
}

// ExportXLSX godoc
// @Summary      Exportar todos los reportes en XLSX
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        days       query  int  false  "Ventana de vencimiento"
// @Param        threshold  query  int  false  "Umbral de stock"
// @Success      200  {file}  binary
// @Router       /api/reports/export.xlsx [get]
func (h *ReportHandler) ExportXLSX(c *fiber.Ctx) error {
	b := h.bundle(c)
	out, err := h.xlsx.ExportReportXLSX(c.UserContext(), b)
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		fmt.Sprintf("reportes-%s.xlsx", b.GeneratedAt.Format("20060102")), out)
}

func (h *ReportHandler) bundle(c *fiber.Ctx) *analytics.ReportBundle {
	return h.uc.Bundle(c.QueryInt("days", h.defaultDays), c.QueryInt("threshold", h.defaultThreshold))
}

func sendAttachment(c *fiber.Ctx, contentType, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(body)
}
