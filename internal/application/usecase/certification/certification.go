package certification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/skillfolio/internal/domain/certification"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type CertificationUseCase struct {
	repo   certification.Repository
	logger logger.Logger
}

func NewCertificationUseCase(r certification.Repository, log logger.Logger) *CertificationUseCase {
	return &CertificationUseCase{repo: r, logger: log}
}

type CreateCertificationInput struct {
	UserID              uuid.UUID
	Name                string
	IssuingOrganization string
	Sector              string
	CredentialID        *string
	CredentialURL       *string
	IssueDate           time.Time
	ExpiryDate          *time.Time
	NeverExpires        bool
	RelatedSkills       []string
}

func (uc *CertificationUseCase) CreateCertification(ctx context.Context, in CreateCertificationInput) (*certification.Certification, error) {
	sec, err := sector.Parse(in.Sector)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	now := time.Now().UTC()
	c := &certification.Certification{
		ID:                  uuid.New(),
		UserID:              in.UserID,
		Name:                in.Name,
		IssuingOrganization: in.IssuingOrganization,
		Sector:              sec,
		CredentialID:        in.CredentialID,
		CredentialURL:       in.CredentialURL,
		IssueDate:           in.IssueDate,
		ExpiryDate:          in.ExpiryDate,
		NeverExpires:        in.NeverExpires,
		RelatedSkills:       in.RelatedSkills,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := c.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	if err := uc.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

type UpdateCertificationInput struct {
	CertificationID     uuid.UUID
	UserID              uuid.UUID
	Sector              sector.Sector
	Name                *string
	IssuingOrganization *string
	CredentialID        *string
	CredentialURL       *string
	IssueDate           *time.Time
	ExpiryDate          *time.Time
	NeverExpires        *bool
	RelatedSkills       *[]string
}

func (uc *CertificationUseCase) UpdateCertification(ctx context.Context, in UpdateCertificationInput) (*certification.Certification, error) {
	c, err := uc.GetCertification(ctx, in.CertificationID, in.UserID, in.Sector)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.IssuingOrganization != nil {
		c.IssuingOrganization = *in.IssuingOrganization
	}
	if in.CredentialID != nil {
		c.CredentialID = in.CredentialID
	}
	if in.CredentialURL != nil {
		c.CredentialURL = in.CredentialURL
	}
	if in.IssueDate != nil {
		c.IssueDate = *in.IssueDate
	}
	if in.ExpiryDate != nil {
		c.ExpiryDate = in.ExpiryDate
	}
	if in.NeverExpires != nil {
		c.NeverExpires = *in.NeverExpires
	}
	if in.RelatedSkills != nil {
		c.RelatedSkills = *in.RelatedSkills
	}

	if err := c.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	c.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *CertificationUseCase) DeleteCertification(ctx context.Context, id, userID uuid.UUID, scope sector.Sector) error {
	if _, err := uc.GetCertification(ctx, id, userID, scope); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id, userID)
}

func (uc *CertificationUseCase) GetCertification(ctx context.Context, id, userID uuid.UUID, scope sector.Sector) (*certification.Certification, error) {
	c, err := uc.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if scope != "" && c.Sector != scope {
		return nil, apperror.NewNotFound("certification", id.String())
	}
	return c, nil
}

func (uc *CertificationUseCase) ListCertifications(ctx context.Context, userID uuid.UUID, scope sector.Sector, search string, page, limit int) ([]*certification.Certification, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}
	return uc.repo.List(ctx, certification.Filter{
		UserID: userID,
		Sector: scope,
		Search: search,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
}
