package lexscan

import (
	"context"
	"time"
)

// ScanRecord is the persisted summary of one completed scan run.
type ScanRecord struct {
	ID               string    `json:"id"`
	Query            string    `json:"query"`
	Mode             MatchMode `json:"mode"`
	DocumentsScanned int       `json:"documentsScanned"`
	DocumentsFailed  int       `json:"documentsFailed"`
	MatchedDocuments int       `json:"matchedDocuments"`
	BytesScanned     int64     `json:"bytesScanned"`
	ElapsedMS        int64     `json:"elapsedMs"`
	StartedAt        time.Time `json:"startedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *ScanRecord) Validate() error {
	if r.Query == "" {
		return Errorf(EINVALID, "scan record query required")
	}
	if _, err := ParseMatchMode(string(r.Mode)); err != nil {
		return err
	}
	return nil
}

// ScanLogService represents a service for managing scan history.
type ScanLogService interface {
	// CreateScanRecord persists a new scan record.
	CreateScanRecord(ctx context.Context, rec *ScanRecord) error

	// FindScanRecordByID retrieves a scan record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindScanRecordByID(ctx context.Context, id string) (*ScanRecord, error)

	// FindScanRecords retrieves scan records matching the filter, newest
	// first.
	FindScanRecords(ctx context.Context, filter ScanRecordFilter) ([]*ScanRecord, error)
}

// ScanRecordFilter represents a filter for FindScanRecords.
type ScanRecordFilter struct {
	ID    *string `json:"id"`
	Query *string `json:"query"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
