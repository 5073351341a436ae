package mock

import (
	"context"

	"github.com/fwojciec/harvest"
)

var (
	_ harvest.RecordService        = (*RecordService)(nil)
	_ harvest.ProductRecordService = (*ProductRecordService)(nil)
)

// RecordService is a mock implementation of harvest.RecordService.
type RecordService struct {
	UpsertRecordFn    func(ctx context.Context, record *harvest.GeneralRecord) (harvest.UpsertStatus, error)
	FindRecordByURLFn func(ctx context.Context, url string) (*harvest.GeneralRecord, error)
	FindRecordsFn     func(ctx context.Context) ([]*harvest.GeneralRecord, error)
}

func (s *RecordService) UpsertRecord(ctx context.Context, record *harvest.GeneralRecord) (harvest.UpsertStatus, error) {
	return s.UpsertRecordFn(ctx, record)
}

func (s *RecordService) FindRecordByURL(ctx context.Context, url string) (*harvest.GeneralRecord, error) {
	return s.FindRecordByURLFn(ctx, url)
}

func (s *RecordService) FindRecords(ctx context.Context) ([]*harvest.GeneralRecord, error) {
	return s.FindRecordsFn(ctx)
}

// ProductRecordService is a mock implementation of harvest.ProductRecordService.
type ProductRecordService struct {
	UpsertProductRecordFn    func(ctx context.Context, record *harvest.ProductRecord) (harvest.UpsertStatus, error)
	FindProductRecordByURLFn func(ctx context.Context, url string) (*harvest.ProductRecord, error)
	FindProductRecordsFn     func(ctx context.Context) ([]*harvest.ProductRecord, error)
}

func (s *ProductRecordService) UpsertProductRecord(ctx context.Context, record *harvest.ProductRecord) (harvest.UpsertStatus, error) {
	return s.UpsertProductRecordFn(ctx, record)
}

func (s *ProductRecordService) FindProductRecordByURL(ctx context.Context, url string) (*harvest.ProductRecord, error) {
	return s.FindProductRecordByURLFn(ctx, url)
}

func (s *ProductRecordService) FindProductRecords(ctx context.Context) ([]*harvest.ProductRecord, error) {
	return s.FindProductRecordsFn(ctx)
}
