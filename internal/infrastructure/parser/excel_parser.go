package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/ozon-stock-sync/internal/domain/apperror"
	"github.com/yourusername/ozon-stock-sync/internal/domain/entity"
	"github.com/yourusername/ozon-stock-sync/internal/domain/repository"
	"go.uber.org/zap"
)

// Jadval ustunlari nomlari
const (
	ColumnCode     = "Код"
	ColumnQuantity = "Количество"
	ColumnPrice    = "Цена"
)

const xlsCharset = "utf-8"

type excelParser struct {
	headerRow int
	logger    *zap.Logger
}

// NewExcelParser yangi parser yaratish. headerRow - sarlavha qatorining 0 dan boshlangan indeksi.
func NewExcelParser(headerRow int, logger *zap.Logger) repository.FeedParser {
	return &excelParser{
		headerRow: headerRow,
		logger:    logger,
	}
}

// ParseFile fayldan qatorlarni o'qish
func (e *excelParser) ParseFile(ctx context.Context, filePath string) ([]entity.FeedRow, error) {
	if isLegacyXLS(filePath) {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, apperror.Parse("parse feed", fmt.Errorf("failed to open xls file: %w", err))
		}
		defer f.Close()

		rows, err := readXLS(f)
		if err != nil {
			return nil, err
		}
		return e.parseRows(rows)
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, apperror.Parse("parse feed", fmt.Errorf("failed to open excel file: %w", err))
	}
	defer f.Close()

	rows, err := readExcelizeRows(f)
	if err != nil {
		return nil, err
	}
	return e.parseRows(rows)
}

// ParseBytes byte array dan parse qilish
func (e *excelParser) ParseBytes(ctx context.Context, data []byte, filename string) ([]entity.FeedRow, error) {
	reader := bytes.NewReader(data)

	if isLegacyXLS(filename) {
		rows, err := readXLS(reader)
		if err != nil {
			return nil, err
		}
		return e.parseRows(rows)
	}

	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, apperror.Parse("parse feed", fmt.Errorf("failed to open excel from bytes: %w", err))
	}
	defer f.Close()

	rows, err := readExcelizeRows(f)
	if err != nil {
		return nil, err
	}
	return e.parseRows(rows)
}

func isLegacyXLS(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xls")
}

// readExcelizeRows birinchi sheet qatorlari
func readExcelizeRows(f *excelize.File) ([][]string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperror.Parse("parse feed", fmt.Errorf("excel file has no sheets"))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperror.Parse("parse feed", fmt.Errorf("failed to get rows: %w", err))
	}
	return rows, nil
}

// readXLS eski .xls (BIFF8) formatdagi birinchi sheet qatorlari.
// Buzilgan fayllarda xls kutubxonasi panic qiladi, u Parse xatoga aylantiriladi.
func readXLS(r io.ReadSeeker) (rows [][]string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			rows, err = nil, apperror.Parse("parse feed", fmt.Errorf("malformed xls file: %v", rec))
		}
	}()

	wb, err := xls.OpenReader(r, xlsCharset)
	if err != nil {
		return nil, apperror.Parse("parse feed", fmt.Errorf("failed to open xls file: %w", err))
	}
	if wb == nil {
		return nil, apperror.Parse("parse feed", fmt.Errorf("xls file has no workbook stream"))
	}
	return readXLSRows(wb), nil
}

// readXLSRows birinchi sheet qatorlari; yozuvi yo'q qatorlar nil bo'lib qoladi.
// WorkSheet.Row mavjud bo'lmagan qatorda panic qiladi, shuning uchun ReadAllCells ishlatiladi:
// u faqat mavjud qatorlarni o'qiydi va limit bilan birinchi sheetdan chiqmaydi.
func readXLSRows(wb *xls.WorkBook) [][]string {
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil
	}
	// MaxRow == 0 da ReadAllCells sheetni tashlab keyingisiga o'tadi
	if sheet.MaxRow == 0 {
		return nil
	}
	return wb.ReadAllCells(int(sheet.MaxRow) + 1)
}

// parseRows sarlavhadan keyingi qatorlarni FeedRow ga aylantirish
func (e *excelParser) parseRows(rows [][]string) ([]entity.FeedRow, error) {
	if e.headerRow >= len(rows) {
		return nil, apperror.Parse("parse feed",
			fmt.Errorf("header row %d is beyond the sheet (%d rows)", e.headerRow, len(rows)))
	}

	columns := mapColumns(rows[e.headerRow])
	codeCol, ok := columns[ColumnCode]
	if !ok {
		return nil, apperror.Parse("parse feed", fmt.Errorf("column %q not found in header row %d", ColumnCode, e.headerRow))
	}
	quantityCol, hasQuantity := columns[ColumnQuantity]
	priceCol, hasPrice := columns[ColumnPrice]
	if !hasQuantity || !hasPrice {
		e.logger.Warn("feed header is incomplete",
			zap.Bool("quantity", hasQuantity),
			zap.Bool("price", hasPrice),
		)
	}

	feedRows := make([]entity.FeedRow, 0, len(rows)-e.headerRow-1)
	for i := e.headerRow + 1; i < len(rows); i++ {
		row := rows[i]

		// Bo'sh qatorlarni skip qilish
		if isEmptyRow(row) {
			continue
		}

		feedRow := entity.FeedRow{Code: strings.TrimSpace(cell(row, codeCol))}
		if hasQuantity {
			// Miqdor o'zgarishsiz: ">10" va "1" aynan solishtiriladi
			feedRow.Quantity = cell(row, quantityCol)
		}
		if hasPrice {
			feedRow.Price = strings.TrimSpace(cell(row, priceCol))
		}
		feedRows = append(feedRows, feedRow)
	}

	e.logger.Info("feed parsed", zap.Int("rows", len(feedRows)))
	return feedRows, nil
}

// mapColumns sarlavha qatoridan column mapping yaratish
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, col := range header {
		name := strings.TrimSpace(col)
		if name == "" {
			continue
		}
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}
	return columns
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

// isEmptyRow qator bo'sh yoki yo'qligini tekshirish
func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
