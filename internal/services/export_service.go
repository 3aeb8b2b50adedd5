package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/finora/internal/models"
	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Transactions"

var ExportHeaders = []string{
	"Date",
	"Account",
	"Category",
	"Type",
	"Amount",
	"Description",
	"Recurring",
}

type AccountLister interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Account, error)
}

type CategoryLister interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Category, error)
}

type ExportRow struct {
	Date        string
	Account     string
	Category    string
	Type        string
	Amount      decimal.Decimal
	Description string
	Recurring   bool
}

type ExportService struct {
	transactions *TransactionService
	accounts     AccountLister
	categories   CategoryLister
}

func NewExportService(transactions *TransactionService, accounts AccountLister, categories CategoryLister) *ExportService {
	return &ExportService{transactions: transactions, accounts: accounts, categories: categories}
}

// BuildRows resolves account and category names for every transaction
// matching query, newest first.
func (service *ExportService) BuildRows(ctx context.Context, userID uint, query TransactionQuery) ([]ExportRow, error) {
	transactions, err := service.transactions.List(ctx, userID, query)
	if err != nil {
		return nil, err
	}
	accounts, err := service.accounts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	categories, err := service.categories.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	accountNames := make(map[string]string, len(accounts))
	for _, account := range accounts {
		accountNames[account.ID] = account.Name
	}
	categoryNames := make(map[string]string, len(categories))
	for _, category := range categories {
		categoryNames[category.ID] = category.Name
	}

	rows := make([]ExportRow, 0, len(transactions))
	for _, transaction := range transactions {
		rowType := models.CategoryTypeIncome
		if transaction.Amount.IsNegative() {
			rowType = models.CategoryTypeExpense
		}
		rows = append(rows, ExportRow{
			Date:        transaction.Date.Format(CalendarDateLayout),
			Account:     accountNames[transaction.AccountID],
			Category:    categoryNames[transaction.CategoryID],
			Type:        rowType,
			Amount:      transaction.Amount,
			Description: transaction.Description,
			Recurring:   transaction.IsRecurring,
		})
	}
	return rows, nil
}

func WriteCSV(output io.Writer, rows []ExportRow) error {
	writer := csv.NewWriter(output)
	if err := writer.Write(ExportHeaders); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{
			row.Date,
			row.Account,
			row.Category,
			row.Type,
			row.Amount.StringFixed(2),
			row.Description,
			yesNo(row.Recurring),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func WriteXLSX(output io.Writer, rows []ExportRow) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", exportSheetName); err != nil {
		return err
	}
	for index, header := range ExportHeaders {
		cell, err := excelize.CoordinatesToCellName(index+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(exportSheetName, cell, header); err != nil {
			return err
		}
	}

	for index, row := range rows {
		line := index + 2
		values := []any{
			row.Date,
			row.Account,
			row.Category,
			row.Type,
			row.Amount.InexactFloat64(),
			row.Description,
			yesNo(row.Recurring),
		}
		for column, value := range values {
			cell, err := excelize.CoordinatesToCellName(column+1, line)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(exportSheetName, cell, value); err != nil {
				return err
			}
		}
	}

	if err := file.SetColWidth(exportSheetName, "A", "A", 12); err != nil {
		return err
	}
	if err := file.SetColWidth(exportSheetName, "B", "C", 18); err != nil {
		return err
	}
	if err := file.SetColWidth(exportSheetName, "F", "F", 32); err != nil {
		return err
	}
	if err := file.Write(output); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func yesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}
