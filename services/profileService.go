package services

import (
	"MediBook/models"
	"MediBook/policy"
	"MediBook/repositories"
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ProfileUpdateRequest carries the owner-editable profile fields. Role and
// account binding are not updatable through this path.
type ProfileUpdateRequest struct {
	FullName       string `json:"full_name"`
	AvatarURL      string `json:"avatar_url"`
	Phone          string `json:"phone"`
	DateOfBirth    string `json:"date_of_birth"`
	Address        string `json:"address"`
	DepartmentID   string `json:"department_id"`
	Specialization string `json:"specialization"`
	Bio            string `json:"bio"`
}

func (r ProfileUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Phone, validation.Length(0, 50)),
		validation.Field(&r.Bio, validation.Length(0, 2000)),
	)
}

type ProfileService struct {
	repository *repositories.ProfileRepository
}

func NewProfileService(repository *repositories.ProfileRepository) *ProfileService {
	return &ProfileService{repository: repository}
}

// Get returns the profile for a user id. Profiles carry display data only,
// so any authenticated caller may read them.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return s.repository.GetByUserID(ctx, userID)
}

// Update mutates the profile owned by userID. Owners and admins only.
func (s *ProfileService) Update(ctx context.Context, scope policy.Scope, userID string, req ProfileUpdateRequest) (*models.Profile, error) {
	profile, err := s.repository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !scope.CanEditProfile(profile) {
		return nil, policy.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	profile.FullName = req.FullName
	profile.AvatarURL = req.AvatarURL
	profile.Phone = req.Phone
	profile.DateOfBirth = req.DateOfBirth
	profile.Address = req.Address
	profile.Specialization = req.Specialization
	profile.Bio = req.Bio
	// Department moves are an admin decision.
	if scope.Role == models.RoleAdmin {
		profile.DepartmentID = req.DepartmentID
	}

	if err := s.repository.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ListDoctors returns the doctors of one department for the booking flow.
func (s *ProfileService) ListDoctors(ctx context.Context, departmentID string) ([]models.Profile, error) {
	return s.repository.ListDoctorsByDepartment(ctx, departmentID)
}

// ListUsers returns profiles by role for the admin user view.
func (s *ProfileService) ListUsers(ctx context.Context, scope policy.Scope, role models.Role) ([]models.Profile, error) {
	if scope.Role != models.RoleAdmin {
		return nil, policy.ErrForbidden
	}
	if role != "" && !role.Valid() {
		return nil, validation.NewError("validation_invalid_role", "unknown role filter")
	}
	return s.repository.ListByRole(ctx, role)
}
