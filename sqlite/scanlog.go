package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lawcorpus/lexscan"
)

// Compile-time interface verification.
var _ lexscan.ScanLogService = (*ScanLogService)(nil)

// ScanLogService implements lexscan.ScanLogService using SQLite.
type ScanLogService struct {
	db *DB
}

// NewScanLogService creates a new ScanLogService.
func NewScanLogService(db *DB) *ScanLogService {
	return &ScanLogService{db: db}
}

// CreateScanRecord persists a new scan record. The record's ID is
// generated; StartedAt is kept if the caller set it, otherwise stamped now.
func (s *ScanLogService) CreateScanRecord(ctx context.Context, rec *lexscan.ScanRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scans (id, query, mode, documents_scanned, documents_failed, matched_documents, bytes_scanned, elapsed_ms, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Query, string(rec.Mode), rec.DocumentsScanned, rec.DocumentsFailed,
		rec.MatchedDocuments, rec.BytesScanned, rec.ElapsedMS, rec.StartedAt.Format(time.RFC3339))

	return err
}

// FindScanRecordByID retrieves a scan record by ID.
func (s *ScanLogService) FindScanRecordByID(ctx context.Context, id string) (*lexscan.ScanRecord, error) {
	var rec lexscan.ScanRecord
	var mode, startedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, query, mode, documents_scanned, documents_failed, matched_documents, bytes_scanned, elapsed_ms, started_at
		FROM scans
		WHERE id = ?
	`, id).Scan(&rec.ID, &rec.Query, &mode, &rec.DocumentsScanned, &rec.DocumentsFailed,
		&rec.MatchedDocuments, &rec.BytesScanned, &rec.ElapsedMS, &startedAt)

	if err == sql.ErrNoRows {
		return nil, lexscan.Errorf(lexscan.ENOTFOUND, "scan record not found")
	}
	if err != nil {
		return nil, err
	}

	rec.Mode = lexscan.MatchMode(mode)
	rec.StartedAt, err = parseRFC3339(startedAt, "started_at")
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// FindScanRecords retrieves scan records matching the filter, newest first.
func (s *ScanLogService) FindScanRecords(ctx context.Context, filter lexscan.ScanRecordFilter) ([]*lexscan.ScanRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, query, mode, documents_scanned, documents_failed, matched_documents, bytes_scanned, elapsed_ms, started_at FROM scans WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Query != nil {
		query.WriteString(" AND query = ?")
		args = append(args, *filter.Query)
	}

	// started_at has second resolution; rowid breaks ties in insertion order.
	query.WriteString(" ORDER BY started_at DESC, rowid DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*lexscan.ScanRecord
	for rows.Next() {
		var rec lexscan.ScanRecord
		var mode, startedAt string

		if err := rows.Scan(&rec.ID, &rec.Query, &mode, &rec.DocumentsScanned, &rec.DocumentsFailed,
			&rec.MatchedDocuments, &rec.BytesScanned, &rec.ElapsedMS, &startedAt); err != nil {
			return nil, err
		}

		rec.Mode = lexscan.MatchMode(mode)
		rec.StartedAt, err = parseRFC3339(startedAt, "started_at")
		if err != nil {
			return nil, err
		}

		records = append(records, &rec)
	}

	return records, rows.Err()
}
