package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/lawcorpus/lexscan"
	"github.com/lawcorpus/lexscan/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestScanLogService_CreateScanRecord(t *testing.T) {
	t.Parallel()

	t.Run("creates record with generated ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScanLogService(db)
		ctx := context.Background()

		rec := &lexscan.ScanRecord{
			Query:            "constructive trust",
			Mode:             lexscan.MatchAll,
			DocumentsScanned: 12,
			DocumentsFailed:  1,
			MatchedDocuments: 3,
			BytesScanned:     1 << 20,
			ElapsedMS:        840,
		}

		err := svc.CreateScanRecord(ctx, rec)
		require.NoError(t, err)

		assert.NotEmpty(t, rec.ID, "ID should be generated")
		assert.False(t, rec.StartedAt.IsZero(), "StartedAt should be stamped")
	})

	t.Run("keeps the caller's start time", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScanLogService(db)
		ctx := context.Background()

		startedAt := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)
		rec := &lexscan.ScanRecord{
			Query:     "trust",
			Mode:      lexscan.MatchAll,
			StartedAt: startedAt,
		}

		require.NoError(t, svc.CreateScanRecord(ctx, rec))

		found, err := svc.FindScanRecordByID(ctx, rec.ID)
		require.NoError(t, err)
		assert.True(t, found.StartedAt.Equal(startedAt))
	})

	t.Run("returns error for invalid record", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScanLogService(db)
		ctx := context.Background()

		rec := &lexscan.ScanRecord{} // missing query and mode

		err := svc.CreateScanRecord(ctx, rec)
		require.Error(t, err)
		assert.Equal(t, lexscan.EINVALID, lexscan.ErrorCode(err))
	})
}

func TestScanLogService_FindScanRecordByID(t *testing.T) {
	t.Parallel()

	t.Run("returns record when found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScanLogService(db)
		ctx := context.Background()

		rec := &lexscan.ScanRecord{
			Query:            "riparian rights",
			Mode:             lexscan.MatchAny,
			DocumentsScanned: 40,
			MatchedDocuments: 6,
			BytesScanned:     2048,
			ElapsedMS:        120,
		}
		require.NoError(t, svc.CreateScanRecord(ctx, rec))

		found, err := svc.FindScanRecordByID(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, rec.ID, found.ID)
		assert.Equal(t, "riparian rights", found.Query)
		assert.Equal(t, lexscan.MatchAny, found.Mode)
		assert.Equal(t, 40, found.DocumentsScanned)
		assert.Equal(t, 6, found.MatchedDocuments)
		assert.Equal(t, int64(2048), found.BytesScanned)
		assert.Equal(t, int64(120), found.ElapsedMS)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScanLogService(db)
		ctx := context.Background()

		_, err := svc.FindScanRecordByID(ctx, "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, lexscan.ENOTFOUND, lexscan.ErrorCode(err))
	})
}

func TestScanLogService_FindScanRecords(t *testing.T) {
	t.Parallel()

	t.Run("returns records newest first", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScanLogService(db)
		ctx := context.Background()

		base := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
		for i, q := range []string{"oldest", "middle", "newest"} {
			rec := &lexscan.ScanRecord{
				Query:     q,
				Mode:      lexscan.MatchAll,
				StartedAt: base.Add(time.Duration(i) * time.Minute),
			}
			require.NoError(t, svc.CreateScanRecord(ctx, rec))
		}

		records, err := svc.FindScanRecords(ctx, lexscan.ScanRecordFilter{})
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "newest", records[0].Query)
		assert.Equal(t, "middle", records[1].Query)
		assert.Equal(t, "oldest", records[2].Query)
	})

	t.Run("filters by query", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScanLogService(db)
		ctx := context.Background()

		r1 := &lexscan.ScanRecord{Query: "trust", Mode: lexscan.MatchAll}
		r2 := &lexscan.ScanRecord{Query: "easement", Mode: lexscan.MatchAll}
		require.NoError(t, svc.CreateScanRecord(ctx, r1))
		require.NoError(t, svc.CreateScanRecord(ctx, r2))

		q := "trust"
		records, err := svc.FindScanRecords(ctx, lexscan.ScanRecordFilter{Query: &q})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "trust", records[0].Query)
	})

	t.Run("respects limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScanLogService(db)
		ctx := context.Background()

		base := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
		for i := 0; i < 5; i++ {
			rec := &lexscan.ScanRecord{
				Query:     "q",
				Mode:      lexscan.MatchAll,
				StartedAt: base.Add(time.Duration(i) * time.Minute),
			}
			require.NoError(t, svc.CreateScanRecord(ctx, rec))
		}

		records, err := svc.FindScanRecords(ctx, lexscan.ScanRecordFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("breaks same-second ties by insertion order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScanLogService(db)
		ctx := context.Background()

		at := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
		for _, q := range []string{"first", "second"} {
			rec := &lexscan.ScanRecord{Query: q, Mode: lexscan.MatchAll, StartedAt: at}
			require.NoError(t, svc.CreateScanRecord(ctx, rec))
		}

		records, err := svc.FindScanRecords(ctx, lexscan.ScanRecordFilter{})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "second", records[0].Query)
		assert.Equal(t, "first", records[1].Query)
	})
}
