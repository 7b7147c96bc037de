package findings

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/inspectai/inspectai-backend/pkg/config"
	"github.com/inspectai/inspectai-backend/pkg/db/models"
	"github.com/inspectai/inspectai-backend/pkg/enums"
	pkgerrors "github.com/inspectai/inspectai-backend/pkg/errors"
)

type stubRepo struct {
	rows    map[uuid.UUID]*models.Finding
	created *models.Finding
	updated *models.Finding
}

func newStubRepo() *stubRepo {
	return &stubRepo{rows: map[uuid.UUID]*models.Finding{}}
}

func (s *stubRepo) Create(_ context.Context, finding *models.Finding) (*models.Finding, error) {
	finding.ID = uuid.New()
	s.created = finding
	s.rows[finding.ID] = finding
	return finding, nil
}

func (s *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Finding, error) {
	finding, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return finding, nil
}

func (s *stubRepo) ListByInspection(_ context.Context, inspectionID uuid.UUID, _ ListFilters) ([]models.Finding, error) {
	var items []models.Finding
	for _, finding := range s.rows {
		if finding.InspectionID == inspectionID {
			items = append(items, *finding)
		}
	}
	return items, nil
}

func (s *stubRepo) Update(_ context.Context, finding *models.Finding) error {
	s.updated = finding
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

type stubPhotos struct {
	photo *models.Photo
}

func (s *stubPhotos) FindByID(_ context.Context, _ uuid.UUID) (*models.Photo, error) {
	if s.photo == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.photo, nil
}

type stubGuard struct {
	inspection *models.Inspection
	err        error
}

func (s *stubGuard) ResolveOwned(_ context.Context, _, _ uuid.UUID) (*models.Inspection, error) {
	return s.inspection, s.err
}

type stubMinter struct{}

func (stubMinter) SignedReadURL(bucket, object string, _ time.Duration) (string, error) {
	return fmt.Sprintf("https://signed.example.com/%s/%s", bucket, object), nil
}

func newFindingService(t *testing.T, repo *stubRepo, photos *stubPhotos, guard *stubGuard) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:    repo,
		Photos:  photos,
		Guard:   guard,
		Storage: stubMinter{},
		Buckets: config.GCSConfig{PhotosBucket: "inspection-photos", DownloadURLExpiry: time.Hour},
		Logger:  zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func validFindingInput(inspectionID uuid.UUID) CreateFindingInput {
	return CreateFindingInput{
		InspectionID: inspectionID,
		Title:        "Corroded panel",
		Description:  "Main panel shows corrosion on bus bars",
		Category:     enums.FindingCategoryElectrical,
		Severity:     enums.SeverityMajor,
	}
}

func TestCreateForcesActiveStatus(t *testing.T) {
	inspection := &models.Inspection{ID: uuid.New(), UserID: uuid.New()}
	repo := newStubRepo()
	svc := newFindingService(t, repo, &stubPhotos{}, &stubGuard{inspection: inspection})

	dto, err := svc.Create(context.Background(), inspection.UserID, validFindingInput(inspection.ID))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if dto.Status != enums.FindingStatusActive {
		t.Fatalf("status = %s", dto.Status)
	}
	if repo.created.Status != enums.FindingStatusActive {
		t.Fatalf("persisted status = %s", repo.created.Status)
	}
}

func TestCreateReportsFirstMissingField(t *testing.T) {
	inspection := &models.Inspection{ID: uuid.New(), UserID: uuid.New()}
	svc := newFindingService(t, newStubRepo(), &stubPhotos{}, &stubGuard{inspection: inspection})

	cases := []struct {
		mutate  func(*CreateFindingInput)
		message string
	}{
		{func(in *CreateFindingInput) { in.InspectionID = uuid.Nil }, "Missing required field: inspectionId"},
		{func(in *CreateFindingInput) { in.Title = " " }, "Missing required field: title"},
		{func(in *CreateFindingInput) { in.Description = "" }, "Missing required field: description"},
		{func(in *CreateFindingInput) { in.Category = "" }, "Missing required field: category"},
		{func(in *CreateFindingInput) { in.Severity = "" }, "Missing required field: severity"},
	}
	for _, tc := range cases {
		input := validFindingInput(inspection.ID)
		tc.mutate(&input)

		_, err := svc.Create(context.Background(), inspection.UserID, input)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation || typed.Message() != tc.message {
			t.Fatalf("expected %q, got %v", tc.message, err)
		}
	}
}

func TestCreatePropagatesGuardError(t *testing.T) {
	guard := &stubGuard{err: pkgerrors.New(pkgerrors.CodeForbidden, "Forbidden")}
	svc := newFindingService(t, newStubRepo(), &stubPhotos{}, guard)

	_, err := svc.Create(context.Background(), uuid.New(), validFindingInput(uuid.New()))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestGetMintsPhotoURLWhenLinked(t *testing.T) {
	inspection := &models.Inspection{ID: uuid.New(), UserID: uuid.New()}
	repo := newStubRepo()
	photoID := uuid.New()
	finding := &models.Finding{
		ID:           uuid.New(),
		InspectionID: inspection.ID,
		PhotoID:      &photoID,
		Title:        "Missing shingles",
		Description:  "Wind damage on south slope",
		Category:     enums.FindingCategoryRoofing,
		Severity:     enums.SeverityMajor,
		Status:       enums.FindingStatusActive,
	}
	repo.rows[finding.ID] = finding
	photos := &stubPhotos{photo: &models.Photo{ID: photoID, StoragePath: "o/i/roof.jpg"}}
	svc := newFindingService(t, repo, photos, &stubGuard{inspection: inspection})

	dto, err := svc.Get(context.Background(), inspection.UserID, finding.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if dto.PhotoURL != "https://signed.example.com/inspection-photos/o/i/roof.jpg" {
		t.Fatalf("photo url = %s", dto.PhotoURL)
	}
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	inspection := &models.Inspection{ID: uuid.New(), UserID: uuid.New()}
	repo := newStubRepo()
	finding := &models.Finding{
		ID:           uuid.New(),
		InspectionID: inspection.ID,
		Title:        "Original",
		Description:  "Original description",
		Category:     enums.FindingCategorySafety,
		Severity:     enums.SeverityCritical,
		Status:       enums.FindingStatusActive,
	}
	repo.rows[finding.ID] = finding
	svc := newFindingService(t, repo, &stubPhotos{}, &stubGuard{inspection: inspection})

	status := enums.FindingStatusResolved
	dto, err := svc.Update(context.Background(), inspection.UserID, finding.ID, UpdateFindingInput{
		Status: &status,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if dto.Status != enums.FindingStatusResolved {
		t.Fatalf("status = %s", dto.Status)
	}
	if dto.Title != "Original" || dto.Severity != enums.SeverityCritical {
		t.Fatalf("untouched fields changed: %+v", dto)
	}
}

func TestSimilarReturnsRankedStub(t *testing.T) {
	inspection := &models.Inspection{ID: uuid.New(), UserID: uuid.New()}
	repo := newStubRepo()
	finding := &models.Finding{
		ID:           uuid.New(),
		InspectionID: inspection.ID,
		Title:        "Water staining",
		Description:  "Ceiling stains in bedroom",
		Category:     enums.FindingCategoryInterior,
		Severity:     enums.SeverityMinor,
		Status:       enums.FindingStatusActive,
	}
	repo.rows[finding.ID] = finding
	svc := newFindingService(t, repo, &stubPhotos{}, &stubGuard{inspection: inspection})

	similar, err := svc.Similar(context.Background(), inspection.UserID, finding.ID)
	if err != nil {
		t.Fatalf("Similar failed: %v", err)
	}
	if len(similar) != 3 {
		t.Fatalf("entries = %d", len(similar))
	}
	scores := []float64{0.94, 0.89, 0.85}
	for i, entry := range similar {
		if entry.Similarity != scores[i] {
			t.Fatalf("similarity[%d] = %v", i, entry.Similarity)
		}
		if entry.Similarity < 0 || entry.Similarity > 1 {
			t.Fatalf("similarity out of range: %v", entry.Similarity)
		}
	}
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	inspection := &models.Inspection{ID: uuid.New(), UserID: uuid.New()}
	svc := newFindingService(t, newStubRepo(), &stubPhotos{}, &stubGuard{inspection: inspection})

	err := svc.Delete(context.Background(), inspection.UserID, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
