package mock

import (
	"context"

	"github.com/lawcorpus/lexscan"
)

var _ lexscan.ScanLogService = (*ScanLogService)(nil)

// ScanLogService is a mock implementation of lexscan.ScanLogService.
type ScanLogService struct {
	CreateScanRecordFn   func(ctx context.Context, rec *lexscan.ScanRecord) error
	FindScanRecordByIDFn func(ctx context.Context, id string) (*lexscan.ScanRecord, error)
	FindScanRecordsFn    func(ctx context.Context, filter lexscan.ScanRecordFilter) ([]*lexscan.ScanRecord, error)
}

func (s *ScanLogService) CreateScanRecord(ctx context.Context, rec *lexscan.ScanRecord) error {
	return s.CreateScanRecordFn(ctx, rec)
}

func (s *ScanLogService) FindScanRecordByID(ctx context.Context, id string) (*lexscan.ScanRecord, error) {
	return s.FindScanRecordByIDFn(ctx, id)
}

func (s *ScanLogService) FindScanRecords(ctx context.Context, filter lexscan.ScanRecordFilter) ([]*lexscan.ScanRecord, error) {
	return s.FindScanRecordsFn(ctx, filter)
}
