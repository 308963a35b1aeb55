package repositories

import (
	"MediBook/cache"
	"MediBook/database"
	"MediBook/models"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

const (
	ProfileCacheExpiry = 24 * time.Hour
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository struct {
	cache *cache.Cache
}

func NewProfileRepository(cache *cache.Cache) *ProfileRepository {
	return &ProfileRepository{cache: cache}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.profileCacheKey(userID)
	var cached models.Profile
	if err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if err != cache.ErrMiss {
		log.Printf("Failed to get profile from cache: %v", err)
	}

	var profile models.Profile
	err := database.DB.WithContext(ctx).
		Preload("Department").
		First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, profile, ProfileCacheExpiry); err != nil {
		log.Printf("Failed to set profile in cache: %v", err)
	}
	return &profile, nil
}

// Update persists the mutable profile fields. Role and user binding never
// change through this path.
func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	result := database.DB.WithContext(ctx).Model(&models.Profile{}).
		Where("user_id = ?", profile.UserID).
		Updates(map[string]interface{}{
			"full_name":      profile.FullName,
			"avatar_url":     profile.AvatarURL,
			"phone":          profile.Phone,
			"date_of_birth":  profile.DateOfBirth,
			"address":        profile.Address,
			"department_id":  profile.DepartmentID,
			"specialization": profile.Specialization,
			"bio":            profile.Bio,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return r.cache.Delete(ctx, r.profileCacheKey(profile.UserID))
}

// ListDoctorsByDepartment returns doctor profiles for the booking flow's
// second step.
func (r *ProfileRepository) ListDoctorsByDepartment(ctx context.Context, departmentID string) ([]models.Profile, error) {
	var doctors []models.Profile
	err := database.DB.WithContext(ctx).
		Where("role = ? AND department_id = ?", models.RoleDoctor, departmentID).
		Order("full_name").
		Find(&doctors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

// ListByRole returns all profiles in a role, or every profile when role is
// empty. Admin-only.
func (r *ProfileRepository) ListByRole(ctx context.Context, role models.Role) ([]models.Profile, error) {
	query := database.DB.WithContext(ctx).Model(&models.Profile{})
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var profiles []models.Profile
	if err := query.Preload("Department").Order("full_name").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func (r *ProfileRepository) profileCacheKey(userID string) string {
	return fmt.Sprintf("profile_cache:%s", userID)
}
