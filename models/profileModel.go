package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile holds the display and role-specific data for one account.
// Doctors carry specialization/department/bio, patients carry
// date_of_birth/address; the remaining fields are shared.
type Profile struct {
	ID             string     `gorm:"primaryKey;column:id" json:"id"`
	UserID         string     `gorm:"column:user_id;not null;unique;index" json:"user_id"`
	Role           Role       `gorm:"size:20;not null;index;column:role" json:"role"`
	FullName       string     `gorm:"size:255;column:full_name" json:"full_name"`
	AvatarURL      string     `gorm:"column:avatar_url" json:"avatar_url"`
	Phone          string     `gorm:"size:50;column:phone" json:"phone"`
	DateOfBirth    string     `gorm:"column:date_of_birth" json:"date_of_birth"`
	Address        string     `gorm:"column:address" json:"address"`
	DepartmentID   string     `gorm:"column:department_id;index" json:"department_id"`
	Specialization string     `gorm:"size:255;column:specialization" json:"specialization"`
	Bio            string     `gorm:"type:text;column:bio" json:"bio"`
	CreatedAt      time.Time  `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`
	Department     Department `gorm:"foreignKey:DepartmentID;references:ID" json:"department,omitempty"`
}

func (Profile) TableName() string {
	return "profiles"
}

// Department is an admin-managed organizational unit owning doctors.
type Department struct {
	ID          string    `gorm:"primaryKey;column:id" json:"id"`
	Name        string    `gorm:"size:255;not null;unique;index;column:name" json:"name"`
	Description string    `gorm:"type:text;column:description" json:"description"`
	Icon        string    `gorm:"size:100;column:icon" json:"icon"`
	CreatedAt   time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	Doctors     []Profile `gorm:"foreignKey:DepartmentID;references:ID" json:"-"`
}

func (Department) TableName() string {
	return "departments"
}

// SeedDepartments inserts the initial departments into the database
func SeedDepartments(db *gorm.DB, departments []Department) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, department := range departments {
			if err := tx.FirstOrCreate(&department, Department{Name: department.Name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
