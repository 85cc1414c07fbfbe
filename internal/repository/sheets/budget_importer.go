// Package sheets imports annual budgets from a Google Sheets workbook into
// the budget store. Each sheet row holds one month: year, month, then the
// food, beverage, and event sales and cost figures.
package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/harborview/venue-metrics/internal/config"
	"github.com/harborview/venue-metrics/internal/domain/models"
	"github.com/harborview/venue-metrics/internal/domain/repository"
)

// BudgetImporter reads budget rows from a spreadsheet and upserts them.
type BudgetImporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	budgetRange   string
	budgets       repository.BudgetRepository
	logger        *zap.Logger
}

// NewBudgetImporter builds a Google Sheets backed budget importer.
func NewBudgetImporter(ctx context.Context, cfg config.SheetsConfig, budgets repository.BudgetRepository, logger *zap.Logger) (*BudgetImporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &BudgetImporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		budgetRange:   cfg.BudgetRange,
		budgets:       budgets,
		logger:        logger.Named("sheets.importer"),
	}, nil
}

// Import reads the configured range and upserts one budget per row. Rows that
// fail to parse are logged and skipped; the count of imported budgets is
// returned.
func (i *BudgetImporter) Import(ctx context.Context) (int, error) {
	resp, err := i.service.Spreadsheets.Values.Get(i.spreadsheetID, i.budgetRange).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read range %s: %w", i.budgetRange, err)
	}

	imported := 0
	for idx, row := range resp.Values {
		budget, err := parseBudgetRow(row)
		if err != nil {
			i.logger.Warn("skipping malformed budget row",
				zap.Int("row", idx+1), zap.Error(err))
			continue
		}
		if err := i.budgets.Upsert(ctx, budget); err != nil {
			return imported, fmt.Errorf("upsert budget %d-%02d: %w", budget.Year, budget.Month, err)
		}
		imported++
	}

	i.logger.Info("budget import finished",
		zap.Int("rows", len(resp.Values)), zap.Int("imported", imported))
	return imported, nil
}

// parseBudgetRow maps a sheet row onto a budget document. Expected columns:
// year, month, food sales, beverage sales, event sales, food cost, beverage
// cost, event cost.
func parseBudgetRow(row []interface{}) (*models.Budget, error) {
	if len(row) < 8 {
		return nil, fmt.Errorf("expected 8 columns, got %d", len(row))
	}

	year, err := parseInt(row[0])
	if err != nil {
		return nil, fmt.Errorf("year: %w", err)
	}
	month, err := parseInt(row[1])
	if err != nil {
		return nil, fmt.Errorf("month: %w", err)
	}

	figures := make([]float64, 6)
	for idx := 0; idx < 6; idx++ {
		value, err := parseFloat(row[idx+2])
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", idx+3, err)
		}
		figures[idx] = value
	}

	return models.NewBudget(month, year, figures[0], figures[1], figures[2], figures[3], figures[4], figures[5])
}

func parseInt(cell interface{}) (int, error) {
	value, err := strconv.Atoi(cleanCell(cell))
	if err != nil {
		return 0, fmt.Errorf("not an integer: %v", cell)
	}
	return value, nil
}

func parseFloat(cell interface{}) (float64, error) {
	raw := cleanCell(cell)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %v", cell)
	}
	return value, nil
}

func cleanCell(cell interface{}) string {
	raw := strings.TrimSpace(fmt.Sprint(cell))
	raw = strings.ReplaceAll(raw, ",", "")
	return strings.TrimPrefix(raw, "$")
}
