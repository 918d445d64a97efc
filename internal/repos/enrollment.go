package repos

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursebay/coursebay-backend/internal/dto"
	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/types"
)

// EnrollmentRepo is read-only on purpose: rows are written by the external
// purchase flow.
type EnrollmentRepo interface {
	Exists(ctx context.Context, tx *gorm.DB, buyerID, courseID uuid.UUID) (bool, error)
	ListByBuyer(ctx context.Context, tx *gorm.DB, buyerID uuid.UUID, q dto.CourseQuery) ([]*types.Enrollment, int64, error)
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return &enrollmentRepo{db: db, log: baseLog.With("repo", "EnrollmentRepo")}
}

func (er *enrollmentRepo) Exists(ctx context.Context, tx *gorm.DB, buyerID, courseID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Enrollment{}).
		Where("buyer_id = ? AND course_id = ?", buyerID, courseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func applyEnrollmentCourseFilters(db *gorm.DB, q dto.CourseQuery) *gorm.DB {
	if q.CategoryID != nil {
		db = db.Where("course.category_id = ?", *q.CategoryID)
	}
	if q.SellerID != nil {
		db = db.Where("course.seller_id = ?", *q.SellerID)
	}
	if strings.TrimSpace(q.Level) != "" {
		db = db.Where("course.level = ?", q.Level)
	}
	if q.MinPrice != nil {
		db = db.Where("course.price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		db = db.Where("course.price <= ?", *q.MaxPrice)
	}
	if text := strings.TrimSpace(q.Keyword); text != "" {
		pattern := "%" + text + "%"
		db = db.Where("course.title LIKE ? OR course.description LIKE ?", pattern, pattern)
	}
	return db
}

func enrollmentOrderClause(sortBy string) string {
	switch strings.ToLower(sortBy) {
	case dto.SortPriceAsc:
		return "course.price ASC"
	case dto.SortPriceDesc:
		return "course.price DESC"
	case dto.SortRatingDesc:
		return "course.average_rating DESC"
	case dto.SortPopular:
		return "course.total_purchased DESC"
	default:
		// Buyer library defaults to most recent purchase first.
		return "enrollment.enroll_at DESC"
	}
}

// ListByBuyer pages through a buyer's purchases, filtering and sorting on the
// joined course columns.
func (er *enrollmentRepo) ListByBuyer(ctx context.Context, tx *gorm.DB, buyerID uuid.UUID, q dto.CourseQuery) ([]*types.Enrollment, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	base := func() *gorm.DB {
		return applyEnrollmentCourseFilters(
			transaction.WithContext(ctx).
				Model(&types.Enrollment{}).
				Joins("JOIN course ON course.id = enrollment.course_id").
				Where("enrollment.buyer_id = ?", buyerID),
			q,
		)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var enrollments []*types.Enrollment
	if err := base().
		Order(enrollmentOrderClause(q.SortBy)).
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Preload("Course").
		Preload("Course.Category").
		Find(&enrollments).Error; err != nil {
		return nil, 0, err
	}
	return enrollments, total, nil
}
