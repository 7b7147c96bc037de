package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inspectai/inspectai-backend/pkg/db/models"
	pkgerrors "github.com/inspectai/inspectai-backend/pkg/errors"
)

type inspectionsRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Inspection, error)
}

// Guard resolves an inspection and enforces the ownership rule every
// child resource inherits: the caller must own the parent inspection.
// Resolution failures surface as not-found before ownership is checked,
// so a foreign caller cannot distinguish missing from unowned children.
type Guard struct {
	repo inspectionsRepository
}

// NewGuard builds an ownership guard over the inspections repository.
func NewGuard(repo inspectionsRepository) (*Guard, error) {
	if repo == nil {
		return nil, fmt.Errorf("inspections repository required")
	}
	return &Guard{repo: repo}, nil
}

// ResolveOwned loads the inspection and verifies the caller owns it.
func (g *Guard) ResolveOwned(ctx context.Context, inspectionID, userID uuid.UUID) (*models.Inspection, error) {
	if inspectionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Inspection not found")
	}
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized")
	}

	inspection, err := g.repo.FindByID(ctx, inspectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Inspection not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inspection")
	}

	if inspection.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Forbidden")
	}
	return inspection, nil
}
