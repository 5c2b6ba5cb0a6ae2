package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"soldi_persi/pkg/models"
)

// ReportRepository stores final reports. Hybrid: DB (primary) + in-memory
// map (fallback when no pool is configured). Memory entries do not survive
// a restart.
type ReportRepository struct {
	mu      sync.RWMutex
	reports map[string]*models.FinalReport
}

// NewReportRepository creates a repository. It uses the package pool when one
// was initialized and keeps an in-memory map otherwise.
func NewReportRepository() *ReportRepository {
	return &ReportRepository{reports: make(map[string]*models.FinalReport)}
}

// Save persists a report under its ReportID.
func (r *ReportRepository) Save(ctx context.Context, report *models.FinalReport) error {
	if p := GetPool(); p != nil {
		dataJSON, err := json.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		query := `
			INSERT INTO final_reports (report_id, anno_riferimento, data, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (report_id)
			DO UPDATE SET data = EXCLUDED.data
		`
		_, err = p.Exec(ctx, query, report.ReportID, report.AnnoRiferimento, dataJSON, time.Now())
		if err != nil {
			return fmt.Errorf("failed to save report to db: %w", err)
		}
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[report.ReportID] = report
	return nil
}

// Get retrieves a report by id. Returns (nil, nil) when not found.
func (r *ReportRepository) Get(ctx context.Context, reportID string) (*models.FinalReport, error) {
	if p := GetPool(); p != nil {
		query := `SELECT data FROM final_reports WHERE report_id = $1 LIMIT 1`
		var dataJSON []byte
		if err := p.QueryRow(ctx, query, reportID).Scan(&dataJSON); err != nil {
			return nil, nil // not found
		}
		var report models.FinalReport
		if err := json.Unmarshal(dataJSON, &report); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stored report: %w", err)
		}
		return &report, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reports[reportID], nil
}
