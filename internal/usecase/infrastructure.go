package usecase

import "context"

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

type ReportsInfra interface {
	ExportSnapshot(ctx context.Context, req *ExportSnapshotReq) (*ExportSnapshotRes, error)
}
