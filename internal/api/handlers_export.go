package api

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/finora/internal/services"
)

const (
	exportFormatCSV  = "csv"
	exportFormatXLSX = "xlsx"
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (handler *Handler) ExportTransactions(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	format := strings.ToLower(strings.TrimSpace(c.Query("format", exportFormatCSV)))
	if format != exportFormatCSV && format != exportFormatXLSX {
		return apiError(c, fiber.StatusBadRequest, "unsupported export format")
	}

	rows, err := handler.exportService.BuildRows(c.UserContext(), user.ID, transactionQuery(c))
	if err != nil {
		return serviceError(c, err, "failed to export transactions")
	}

	var body bytes.Buffer
	contentType := "text/csv; charset=utf-8"
	if format == exportFormatXLSX {
		contentType = xlsxContentType
		err = services.WriteXLSX(&body, rows)
	} else {
		err = services.WriteCSV(&body, rows)
	}
	if err != nil {
		log.Printf("api: export for user %d failed: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to export transactions")
	}

	filename := fmt.Sprintf("finora-transactions-%s.%s", services.CalendarDate(handler.now(), handler.location).Format(services.CalendarDateLayout), format)
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(body.Bytes())
}
