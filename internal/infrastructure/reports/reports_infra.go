package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/cfg"
	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/jitter"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const reportContentType = "text/csv"

// ReportsInfrastructure управляет выгрузкой CSV-снимков склада в MinIO
// и фоновой очисткой неудачных загрузок.
type ReportsInfrastructure struct {
	reportRepo  usecase.ReportRepository
	cfg         *cfg.MinIOCfg
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
}

func NewReportsInfrastructure(reportRepo usecase.ReportRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *ReportsInfrastructure {
	return &ReportsInfrastructure{
		reportRepo:  reportRepo,
		cfg:         cfg,
		logger:      logger,
		shutdownCtx: shutdownCtx,
	}
}

// ExportSnapshot рендерит снимок склада в CSV и загружает его в MinIO.
// Ошибка загрузки запускает фоновую очистку объекта, чтобы в бакете
// не оставалось частично записанных отчётов.
func (r *ReportsInfrastructure) ExportSnapshot(ctx context.Context, req *usecase.ExportSnapshotReq) (*usecase.ExportSnapshotRes, error) {
	const op = "ReportsInfrastructure.ExportSnapshot"

	data, err := renderCSV(req.View)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	reportID := uuid.NewString()
	objKey := fmt.Sprintf("reports/inventory-%s-%s.csv", time.Now().UTC().Format("20060102T150405Z"), reportID)
	report := domain.NewReport(reportID, r.cfg.BucketName, objKey, data, reportContentType)

	key, err := r.reportRepo.Upload(ctx, report)
	if err != nil {
		r.wg.Add(1)
		go r.cleanupObject(objKey)
		return nil, e.Wrap(op, err)
	}

	return usecase.NewExportSnapshotRes(key), nil
}

// cleanupObject удаляет объект из MinIO с экспоненциальной задержкой и jitter.
func (r *ReportsInfrastructure) cleanupObject(key string) {
	defer r.wg.Done()
	const (
		op          = "ReportsInfrastructure.cleanupObject"
		maxAttempts = 3
		baseBackoff = time.Second
		maxBackoff  = 10 * time.Second
	)

	ctx, cancel := context.WithTimeout(r.shutdownCtx, 30*time.Second)
	defer cancel()

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := r.reportRepo.Delete(ctx, key); err == nil {
			return
		}

		select {
		case <-ctx.Done():
			r.logger.Warnf("%s: cleanup interrupted by shutdown, key=%v", op, key)
			return
		case <-time.After(jitter.ExponentialBackoff(baseBackoff, maxBackoff, attempt, jitter.DefaultJitter)):
		}
	}

	r.logger.Warnf("%s: giving up on cleanup after %d attempts, key=%v", op, maxAttempts, key)
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (r *ReportsInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}

// renderCSV строит CSV-снимок: строки склада плюс итоговая строка с метриками.
func renderCSV(view *usecase.InventoryView) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"id", "name", "quantity", "unit_price", "category"},
	}
	for _, row := range view.Rows {
		records = append(records, []string{
			strconv.FormatInt(row.ID, 10),
			row.Name,
			strconv.FormatInt(row.Quantity, 10),
			centsToPrice(row.Price),
			row.CategoryName,
		})
	}

	s := view.Summary
	records = append(records, []string{
		"TOTAL",
		s.MostExpensive,
		strconv.FormatInt(s.TotalUnits, 10),
		centsToPrice(s.TotalValue),
		strconv.Itoa(s.CategoryCount),
	})

	if err := w.WriteAll(records); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// centsToPrice форматирует копейки в строку с двумя знаками после запятой.
func centsToPrice(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}
