package database

import (
	"MediBook/models"
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance.
var DB *gorm.DB

// InitDB initializes the database connection and configures it.
func InitDB(ctx context.Context, dsn string) (*gorm.DB, error) {
	var err error

	// Configure logging level based on environment
	logMode := logger.Silent
	if os.Getenv("ENV") == "development" {
		logMode = logger.Info
	}

	// Open the database connection
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: false,
		PrepareStmt:                              true,
		Logger:                                   logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database connection")
	}

	// Configure connection pool
	if err := configureConnectionPool(); err != nil {
		return nil, err
	}

	// Test the database connection
	if err := testDatabaseConnection(ctx); err != nil {
		return nil, err
	}

	// Run migrations
	if err := runMigrations(); err != nil {
		return nil, err
	}

	// Seed initial data
	if err := seedInitialData(); err != nil {
		return nil, err
	}

	log.Println("Database initialized successfully.")
	return DB, nil
}

// configureConnectionPool sets up the connection pool settings for the database.
func configureConnectionPool() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	sqlDB.SetMaxOpenConns(40)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

// testDatabaseConnection verifies that the database connection is functional.
func testDatabaseConnection(ctx context.Context) error {
	sqlDB, err := DB.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "failed to ping database")
	}
	return nil
}

// runMigrations performs database schema migrations.
func runMigrations() error {
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.Profile{},
		&models.DoctorSchedule{},
		&models.Appointment{},
		&models.MedicalRecord{},
	); err != nil {
		return errors.Wrap(err, "failed to run migrations")
	}

	// A doctor's slot admits at most one live booking. Cancelled rows are
	// excluded so a freed slot becomes bookable again.
	if err := DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_live_slot
		ON appointments (doctor_id, appointment_date, start_time)
		WHERE status NOT IN ('cancelled')
	`).Error; err != nil {
		return errors.Wrap(err, "failed to create live-slot index")
	}
	return nil
}

// seedInitialData populates the database with the initial departments.
func seedInitialData() error {
	departments := []models.Department{
		{ID: uuid.New().String(), Name: "Cardiology", Description: "Heart and vascular care", Icon: "heart"},
		{ID: uuid.New().String(), Name: "Dermatology", Description: "Skin, hair and nail care", Icon: "sun"},
		{ID: uuid.New().String(), Name: "Neurology", Description: "Brain and nervous system", Icon: "activity"},
		{ID: uuid.New().String(), Name: "Orthopedics", Description: "Bones, joints and muscles", Icon: "bone"},
		{ID: uuid.New().String(), Name: "Pediatrics", Description: "Care for children", Icon: "baby"},
		{ID: uuid.New().String(), Name: "General Medicine", Description: "Primary and preventive care", Icon: "stethoscope"},
	}
	if err := models.SeedDepartments(DB, departments); err != nil {
		return errors.Wrap(err, "failed to seed departments")
	}
	return nil
}

// LoadEnvConfig retrieves configuration values from environment variables.
func LoadEnvConfig() (string, error) {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		return "", errors.New("missing DB_URL environment variable")
	}
	return dsn, nil
}
