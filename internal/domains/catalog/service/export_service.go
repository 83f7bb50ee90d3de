package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"streamhub-backend/internal/domains/catalog"
	"streamhub-backend/internal/shared/access"
	"streamhub-backend/pkg/database"
)

const (
	seriesSheet   = "Series"
	episodesSheet = "Episodes"
	timeLayout    = "2006-01-02 15:04:05"
)

var (
	seriesHeaders   = []string{"ID", "Title", "Genre", "Status", "Description", "Poster", "Banner", "Created By", "Updated By", "Version", "Created At", "Updated At"}
	episodesHeaders = []string{"ID", "Series ID", "Number", "Title", "Status", "Video URL", "Created By", "Updated By", "Version", "Created At", "Updated At"}
)

// ExportCatalog builds a workbook with every series and episode, drafts included.
func (s *LifecycleService) ExportCatalog(ctx context.Context, caller access.Caller) (*excelize.File, error) {
	// 1. Chỉ admin được export
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}

	// 2. Lấy dữ liệu
	series, err := database.Read(ctx, s.boundary, "series.list", func(ctx context.Context) ([]*catalog.Series, error) {
		return s.store.Series().List(ctx, false)
	})
	if err != nil {
		return nil, toAppError(err)
	}

	episodes, err := database.Read(ctx, s.boundary, "episodes.list_all", func(ctx context.Context) ([]*catalog.Episode, error) {
		return s.store.Episodes().ListAll(ctx)
	})
	if err != nil {
		return nil, toAppError(err)
	}

	// 3. Tạo file Excel
	f, err := buildCatalogWorkbook(series, episodes)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	return f, nil
}

func buildCatalogWorkbook(series []*catalog.Series, episodes []*catalog.Episode) (*excelize.File, error) {
	f := excelize.NewFile()

	// Rename default sheet
	if err := f.SetSheetName("Sheet1", seriesSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(episodesSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	seriesRows := make([][]interface{}, 0, len(series))
	for _, s := range series {
		seriesRows = append(seriesRows, []interface{}{
			s.ID, s.Title, s.Genre, string(s.Status), s.Description, s.Poster, s.Banner,
			s.CreatedBy, s.UpdatedBy, s.Version,
			s.CreatedAt.Format(timeLayout), s.UpdatedAt.Format(timeLayout),
		})
	}
	if err := writeSheet(f, seriesSheet, seriesHeaders, seriesRows, headerStyle); err != nil {
		return nil, err
	}

	episodeRows := make([][]interface{}, 0, len(episodes))
	for _, e := range episodes {
		episodeRows = append(episodeRows, []interface{}{
			e.ID, e.SeriesID, e.Number, e.Title, string(e.Status), e.VideoURL,
			e.CreatedBy, e.UpdatedBy, e.Version,
			e.CreatedAt.Format(timeLayout), e.UpdatedAt.Format(timeLayout),
		})
	}
	if err := writeSheet(f, episodesSheet, episodesHeaders, episodeRows, headerStyle); err != nil {
		return nil, err
	}

	return f, nil
}

// writeSheet ghi header ở row 1, data từ row 2
func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}, headerStyle int) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
