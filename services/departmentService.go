package services

import (
	"MediBook/models"
	"MediBook/policy"
	"MediBook/repositories"
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DepartmentRequest carries the admin-editable department fields.
type DepartmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (r DepartmentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 255)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

type DepartmentService struct {
	repository *repositories.DepartmentRepository
}

func NewDepartmentService(repository *repositories.DepartmentRepository) *DepartmentService {
	return &DepartmentService{repository: repository}
}

// List is open to every authenticated role; it feeds the booking flow's
// first step.
func (s *DepartmentService) List(ctx context.Context) ([]models.Department, error) {
	return s.repository.GetAll(ctx)
}

func (s *DepartmentService) Get(ctx context.Context, id string) (*models.Department, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *DepartmentService) Create(ctx context.Context, scope policy.Scope, req DepartmentRequest) (*models.Department, error) {
	if scope.Role != models.RoleAdmin {
		return nil, policy.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	department := &models.Department{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	}
	if err := s.repository.Create(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

func (s *DepartmentService) Update(ctx context.Context, scope policy.Scope, id string, req DepartmentRequest) (*models.Department, error) {
	if scope.Role != models.RoleAdmin {
		return nil, policy.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	department := &models.Department{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	}
	if err := s.repository.Update(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

func (s *DepartmentService) Delete(ctx context.Context, scope policy.Scope, id string) error {
	if scope.Role != models.RoleAdmin {
		return policy.ErrForbidden
	}
	return s.repository.Delete(ctx, id)
}
