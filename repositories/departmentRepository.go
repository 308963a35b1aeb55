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

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DepartmentCacheExpiry = 7 * 24 * time.Hour
)

var ErrDepartmentNotFound = errors.New("department not found")

const departmentListCacheKey = "department_cache:all"

type DepartmentRepository struct {
	cache *cache.Cache
}

func NewDepartmentRepository(cache *cache.Cache) *DepartmentRepository {
	return &DepartmentRepository{cache: cache}
}

func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	var existing models.Department
	if err := database.DB.Where("name = ?", department.Name).First(&existing).Error; err == nil {
		return errors.New("department with the same name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for existing department: %w", err)
	}

	if department.ID == "" {
		department.ID = uuid.New().String()
	}
	if err := database.DB.Create(department).Error; err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	return r.cache.DeleteAll(ctx, "department_cache:*")
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id string) (*models.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.departmentCacheKey(id)
	var cached models.Department
	if err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if err != cache.ErrMiss {
		log.Printf("Failed to get department from cache: %v", err)
	}

	var department models.Department
	err := database.DB.WithContext(ctx).First(&department, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, department, DepartmentCacheExpiry); err != nil {
		log.Printf("Failed to set department in cache: %v", err)
	}
	return &department, nil
}

// GetAll returns every department ordered by name.
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]models.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := departmentListCacheKey
	var cached []models.Department
	if err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	} else if err != cache.ErrMiss {
		log.Printf("Failed to get departments from cache: %v", err)
	}

	var departments []models.Department
	err := database.DB.WithContext(ctx).Order("name").Find(&departments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all departments: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, departments, DepartmentCacheExpiry); err != nil {
		log.Printf("Failed to set departments in cache: %v", err)
	}
	return departments, nil
}

func (r *DepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	result := database.DB.WithContext(ctx).Model(&models.Department{}).
		Where("id = ?", department.ID).
		Updates(map[string]interface{}{
			"name":        department.Name,
			"description": department.Description,
			"icon":        department.Icon,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update department: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDepartmentNotFound
	}
	return r.cache.DeleteBatch(ctx, r.departmentCacheKey(department.ID), departmentListCacheKey)
}

func (r *DepartmentRepository) Delete(ctx context.Context, id string) error {
	result := database.DB.WithContext(ctx).Delete(&models.Department{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete department: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDepartmentNotFound
	}
	return r.cache.DeleteBatch(ctx, r.departmentCacheKey(id), departmentListCacheKey)
}

func (r *DepartmentRepository) departmentCacheKey(id string) string {
	return fmt.Sprintf("department_cache:%s", id)
}
