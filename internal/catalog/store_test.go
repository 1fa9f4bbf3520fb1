package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"report-catalog/internal/models"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "reports.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateGetList(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	first := &models.Report{DateModified: "01.02.2024 10:00:00", FileName: "database_01022024_100000.db", DBPath: "/d/database_01022024_100000.db"}
	second := &models.Report{DateModified: "02.02.2024 10:00:00", FederalDistrict: "Volga"}
	require.NoError(t, s.Create(ctx, first))
	require.NoError(t, s.Create(ctx, second))
	assert.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)

	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, *first, *got)

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, "Volga", all[1].FederalDistrict)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestGetMissing(t *testing.T) {
	_, err := openStore(t).Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveUpdatesAndInserts(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	r := &models.Report{DateModified: "01.02.2024 10:00:00"}
	require.NoError(t, s.Create(ctx, r))

	r.ControlLocation = "Kazan"
	r.ControlPeriod = "01.02.2024 - 03.02.2024"
	require.NoError(t, s.Save(ctx, r))

	got, err := s.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kazan", got.ControlLocation)
	assert.Equal(t, "01.02.2024 - 03.02.2024", got.ControlPeriod)

	fresh := &models.Report{ID: 40, FileName: "x.db"}
	require.NoError(t, s.Save(ctx, fresh))
	got, err = s.Get(ctx, 40)
	require.NoError(t, err)
	assert.Equal(t, "x.db", got.FileName)
}

func TestDeleteIsIdempotentAndRestorable(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	r := &models.Report{DateModified: "01.02.2024 10:00:00", DBPath: "/d/a.db"}
	require.NoError(t, s.Create(ctx, r))

	deleted, err := s.Delete(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.Delete(ctx, r.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	restored := *r
	require.NoError(t, s.Create(ctx, &restored))
	assert.Equal(t, r.ID, restored.ID)

	got, err := s.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "/d/a.db", got.DBPath)
}

func TestFindByDateModified(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	r := &models.Report{DateModified: "05.05.2024 08:30:00"}
	require.NoError(t, s.Create(ctx, r))

	got, err := s.FindByDateModified(ctx, "05.05.2024 08:30:00")
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)

	_, err = s.FindByDateModified(ctx, "06.05.2024 08:30:00")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reports.db")

	s, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, &models.Report{FileName: "kept.db"}))
	require.NoError(t, s.Close())

	s, err = Open(path, nil)
	require.NoError(t, err)
	defer s.Close()

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "kept.db", all[0].FileName)
}
