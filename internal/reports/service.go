package reports

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/inspectai/inspectai-backend/pkg/config"
	"github.com/inspectai/inspectai-backend/pkg/db/models"
	"github.com/inspectai/inspectai-backend/pkg/enums"
	pkgerrors "github.com/inspectai/inspectai-backend/pkg/errors"
)

type repository interface {
	Create(ctx context.Context, report *models.Report) (*models.Report, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	ListByInspection(ctx context.Context, inspectionID uuid.UUID) ([]models.Report, error)
}

type findingsRepository interface {
	SumCostEstimates(ctx context.Context, inspectionID uuid.UUID) (string, error)
	CountByInspection(ctx context.Context, inspectionID uuid.UUID) (int64, error)
}

type ownershipGuard interface {
	ResolveOwned(ctx context.Context, inspectionID, userID uuid.UUID) (*models.Inspection, error)
}

type urlMinter interface {
	SignedReadURL(bucket, object string, ttl time.Duration) (string, error)
}

// Service exposes report generation and download. Generation is
// append-only: each request snapshots the findings and inserts a new
// row, never replacing an earlier one.
type Service interface {
	Generate(ctx context.Context, userID uuid.UUID, input GenerateReportInput) (*ReportDTO, error)
	ListByInspection(ctx context.Context, userID, inspectionID uuid.UUID) ([]ReportDTO, error)
	Get(ctx context.Context, userID, reportID uuid.UUID) (*ReportDTO, error)
	Download(ctx context.Context, userID, reportID uuid.UUID) (*DownloadResponse, error)
}

// ServiceParams wires the dependencies for NewService.
type ServiceParams struct {
	Repo     repository
	Findings findingsRepository
	Guard    ownershipGuard
	Storage  urlMinter
	Buckets  config.GCSConfig
	Now      func() time.Time
}

type service struct {
	repo     repository
	findings findingsRepository
	guard    ownershipGuard
	storage  urlMinter
	buckets  config.GCSConfig
	now      func() time.Time
}

// NewService builds the report service after validating dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	if params.Findings == nil {
		return nil, fmt.Errorf("findings repository required")
	}
	if params.Guard == nil {
		return nil, fmt.Errorf("ownership guard required")
	}
	if params.Storage == nil {
		return nil, fmt.Errorf("url minter required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     params.Repo,
		findings: params.Findings,
		guard:    params.Guard,
		storage:  params.Storage,
		buckets:  params.Buckets,
		now:      now,
	}, nil
}

func (s *service) Generate(ctx context.Context, userID uuid.UUID, input GenerateReportInput) (*ReportDTO, error) {
	reportType, err := resolveType(input.Type)
	if err != nil {
		return nil, err
	}
	inspection, err := s.guard.ResolveOwned(ctx, input.InspectionID, userID)
	if err != nil {
		return nil, err
	}

	rawTotal, err := s.findings.SumCostEstimates(ctx, inspection.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum finding costs")
	}
	total, err := decimal.NewFromString(rawTotal)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parse cost total")
	}
	count, err := s.findings.CountByInspection(ctx, inspection.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count findings")
	}

	report := &models.Report{
		InspectionID: inspection.ID,
		Type:         reportType,
		Summary:      buildSummary(inspection, count, total),
		TotalCost:    total,
		GeneratedAt:  s.now().UTC(),
	}
	created, err := s.repo.Create(ctx, report)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create report")
	}
	return fromModel(created), nil
}

func (s *service) ListByInspection(ctx context.Context, userID, inspectionID uuid.UUID) ([]ReportDTO, error) {
	if _, err := s.guard.ResolveOwned(ctx, inspectionID, userID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByInspection(ctx, inspectionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reports")
	}

	dtos := make([]ReportDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *fromModel(&items[i]))
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, userID, reportID uuid.UUID) (*ReportDTO, error) {
	report, err := s.resolveOwned(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}
	return fromModel(report), nil
}

func (s *service) resolveOwned(ctx context.Context, userID, reportID uuid.UUID) (*models.Report, error) {
	if reportID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Report not found")
	}
	report, err := s.repo.FindByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Report not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load report")
	}
	if _, err := s.guard.ResolveOwned(ctx, report.InspectionID, userID); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *service) Download(ctx context.Context, userID, reportID uuid.UUID) (*DownloadResponse, error) {
	report, err := s.resolveOwned(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}
	if report.StoragePath == nil || *report.StoragePath == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Report file not yet generated")
	}

	ttl := s.buckets.DownloadURLExpiry
	url, err := s.storage.SignedReadURL(s.buckets.ReportsBucket, *report.StoragePath, ttl)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mint report download url")
	}
	return &DownloadResponse{
		ReportID:    report.ID,
		DownloadURL: url,
		ExpiresAt:   s.now().UTC().Add(ttl),
		FileName:    path.Base(*report.StoragePath),
	}, nil
}

func resolveType(raw string) (enums.ReportType, error) {
	if strings.TrimSpace(raw) == "" {
		return enums.ReportTypeFull, nil
	}
	reportType, err := enums.ParseReportType(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Invalid report type")
	}
	return reportType, nil
}

func buildSummary(inspection *models.Inspection, findingCount int64, total decimal.Decimal) string {
	address := strings.TrimSpace(fmt.Sprintf("%s, %s, %s %s", inspection.Address, inspection.City, inspection.State, inspection.ZipCode))
	noun := "findings"
	if findingCount == 1 {
		noun = "finding"
	}
	return fmt.Sprintf("Inspection report for %s: %d %s, estimated repair cost $%s.",
		address, findingCount, noun, total.StringFixed(2))
}
