package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamhub-backend/internal/shared/access"
	"streamhub-backend/internal/shared/apperror"
)

func TestExportCatalog(t *testing.T) {
	svc, _ := newService(t, access.ReadPublic)
	a := createSeries(t, svc)
	b := createSeries(t, svc)
	createEpisode(t, svc, b.ID, 2)
	createEpisode(t, svc, a.ID, 1)
	createEpisode(t, svc, b.ID, 1)

	f, err := svc.ExportCatalog(context.Background(), adminCaller)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{seriesSheet, episodesSheet}, f.GetSheetList())

	seriesRows, err := f.GetRows(seriesSheet)
	require.NoError(t, err)
	require.Len(t, seriesRows, 3)
	assert.Equal(t, seriesHeaders, seriesRows[0])
	assert.Equal(t, "Spirit Blade", seriesRows[1][1])
	assert.Equal(t, "draft", seriesRows[1][3])

	episodeRows, err := f.GetRows(episodesSheet)
	require.NoError(t, err)
	require.Len(t, episodeRows, 4)
	// series then number
	assert.Equal(t, []string{"1", "1"}, []string{episodeRows[1][1], episodeRows[1][2]})
	assert.Equal(t, []string{"2", "1"}, []string{episodeRows[2][1], episodeRows[2][2]})
	assert.Equal(t, []string{"2", "2"}, []string{episodeRows[3][1], episodeRows[3][2]})
}

func TestExportCatalog_AdminOnly(t *testing.T) {
	svc, _ := newService(t, access.ReadPublic)

	_, err := svc.ExportCatalog(context.Background(), viewer)

	assert.True(t, apperror.IsForbidden(err))
}
