package handler

import (
	"context"

	"github.com/xuri/excelize/v2"

	"streamhub-backend/internal/domains/catalog"
	"streamhub-backend/internal/shared/access"
)

// CatalogService là phần của service.LifecycleService mà handler cần
type CatalogService interface {
	ListSeries(ctx context.Context, caller access.Caller) ([]*catalog.Series, error)
	GetSeries(ctx context.Context, caller access.Caller, id int64) (*catalog.Series, error)
	CreateSeries(ctx context.Context, caller access.Caller, req catalog.CreateSeriesRequest) (*catalog.Series, error)
	UpdateSeriesStatus(ctx context.Context, caller access.Caller, id int64, req catalog.UpdateStatusRequest) (*catalog.Series, error)
	DeleteSeries(ctx context.Context, caller access.Caller, id int64) error
	ExportCatalog(ctx context.Context, caller access.Caller) (*excelize.File, error)

	ListEpisodes(ctx context.Context, caller access.Caller, seriesID int64) ([]*catalog.Episode, error)
	ListAllEpisodes(ctx context.Context, caller access.Caller) ([]*catalog.Episode, error)
	GetEpisode(ctx context.Context, caller access.Caller, id int64) (*catalog.Episode, error)
	CreateEpisode(ctx context.Context, caller access.Caller, req catalog.CreateEpisodeRequest) (*catalog.Episode, error)
	UpdateEpisodeStatus(ctx context.Context, caller access.Caller, id int64, req catalog.UpdateStatusRequest) (*catalog.Episode, error)
	DeleteEpisode(ctx context.Context, caller access.Caller, id int64) error
}
