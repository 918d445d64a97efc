package services

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/repos"
	"github.com/coursebay/coursebay-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	// Postgres LIKE is case-sensitive; sqlite's is not unless told so
	require.NoError(t, db.Exec("PRAGMA case_sensitive_like = ON").Error)
	require.NoError(t, db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Category{},
		&types.Course{},
		&types.CourseContent{},
		&types.CourseSkill{},
		&types.TargetLearner{},
		&types.Enrollment{},
		&types.Review{},
		&types.Cart{},
		&types.CartItem{},
		&types.History{},
		&types.Notification{},
	))
	return db
}

// fakeImageService stands in for the GCS-backed store; it records calls and
// mints deterministic URLs.
type fakeImageService struct {
	uploads []string
	deletes []string
}

func (f *fakeImageService) Upload(_ context.Context, filename string, _ io.Reader) (string, error) {
	f.uploads = append(f.uploads, filename)
	return "https://img.test/" + filename, nil
}

func (f *fakeImageService) Delete(_ context.Context, imageURL string) error {
	f.deletes = append(f.deletes, imageURL)
	return nil
}

type courseFixture struct {
	db            *gorm.DB
	svc           CourseService
	images        *fakeImageService
	notifications NotificationService
}

func newCourseFixture(t *testing.T) *courseFixture {
	t.Helper()
	db := newTestDB(t)
	log := logger.NewNop()

	notificationRepo := repos.NewNotificationRepo(db, log)
	notifications, err := NewNotificationService(db, log, notificationRepo)
	require.NoError(t, err)

	images := &fakeImageService{}
	svc := NewCourseService(db, log,
		repos.NewCourseRepo(db, log),
		repos.NewCourseContentRepo(db, log),
		repos.NewCourseSkillRepo(db, log),
		repos.NewTargetLearnerRepo(db, log),
		repos.NewUserRepo(db, log),
		repos.NewEnrollmentRepo(db, log),
		repos.NewHistoryRepo(db, log),
		images, notifications)

	return &courseFixture{db: db, svc: svc, images: images, notifications: notifications}
}

var userSeq int

func seedUser(t *testing.T, db *gorm.DB, role string) *types.User {
	t.Helper()
	userSeq++
	user := &types.User{
		ID:       uuid.New(),
		Email:    fmt.Sprintf("user%d@test.dev", userSeq),
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *types.Category {
	t.Helper()
	category := &types.Category{ID: uuid.New(), Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

// seedCourse creates an approved, unrestricted course; mutate tweaks it
// before the insert.
func seedCourse(t *testing.T, db *gorm.DB, seller *types.User, category *types.Category, mutate func(*types.Course)) *types.Course {
	t.Helper()
	course := &types.Course{
		ID:         uuid.New(),
		Title:      "Course " + uuid.NewString()[:8],
		Price:      10,
		Level:      types.LevelBeginner,
		CategoryID: category.ID,
		SellerID:   seller.ID,
		IsApproved: true,
	}
	if mutate != nil {
		mutate(course)
	}
	require.NoError(t, db.Create(course).Error)
	return course
}

func seedEnrollment(t *testing.T, db *gorm.DB, buyer *types.User, course *types.Course, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&types.Enrollment{
		ID:       uuid.New(),
		BuyerID:  buyer.ID,
		CourseID: course.ID,
		EnrollAt: at,
	}).Error)
}
