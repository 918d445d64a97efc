package repos

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursebay/coursebay-backend/internal/dto"
	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/types"
)

type CourseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, course *types.Course) error
	Save(ctx context.Context, tx *gorm.DB, course *types.Course) error
	Delete(ctx context.Context, tx *gorm.DB, course *types.Course) error
	GetByID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.Course, error)
	GetDetailByID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.Course, error)
	List(ctx context.Context, tx *gorm.DB, q dto.CourseQuery) ([]*types.Course, int64, error)
	ListBySeller(ctx context.Context, tx *gorm.DB, sellerID uuid.UUID, page, pageSize int) ([]*types.Course, int64, error)
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return &courseRepo{db: db, log: baseLog.With("repo", "CourseRepo")}
}

func (cr *courseRepo) Create(ctx context.Context, tx *gorm.DB, course *types.Course) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Create(course).Error
}

func (cr *courseRepo) Save(ctx context.Context, tx *gorm.DB, course *types.Course) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Save(course).Error
}

// Delete removes the course row only; child rows go away through the
// ON DELETE CASCADE constraints.
func (cr *courseRepo) Delete(ctx context.Context, tx *gorm.DB, course *types.Course) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Delete(course).Error
}

// GetByID returns the bare row, (nil, nil) when absent.
func (cr *courseRepo) GetByID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var course types.Course
	if err := transaction.WithContext(ctx).First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

// GetDetailByID loads the course with everything the detail view needs.
func (cr *courseRepo) GetDetailByID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var course types.Course
	if err := transaction.WithContext(ctx).
		Preload("Contents").
		Preload("Skills").
		Preload("TargetLearners").
		Preload("Category").
		Preload("Seller").
		Preload("Reviews").
		Preload("Enrollments").
		First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

func applyCourseFilters(db *gorm.DB, q dto.CourseQuery) *gorm.DB {
	if !q.IncludeUnapproved {
		db = db.Where("is_approved = ?", true)
	}
	if !q.IncludeRestricted {
		db = db.Where("is_restricted = ?", false)
	}
	if q.CategoryID != nil {
		db = db.Where("category_id = ?", *q.CategoryID)
	}
	if q.SellerID != nil {
		db = db.Where("seller_id = ?", *q.SellerID)
	}
	if strings.TrimSpace(q.Level) != "" {
		db = db.Where("level = ?", q.Level)
	}
	if q.MinPrice != nil {
		db = db.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		db = db.Where("price <= ?", *q.MaxPrice)
	}
	if text := strings.TrimSpace(q.Keyword); text != "" {
		// LIKE is case-sensitive on Postgres; sqlite needs
		// case_sensitive_like for the same behavior
		pattern := "%" + text + "%"
		db = db.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	return db
}

func courseOrderClause(sortBy string) string {
	switch strings.ToLower(sortBy) {
	case dto.SortPriceAsc:
		return "price ASC"
	case dto.SortPriceDesc:
		return "price DESC"
	case dto.SortRatingDesc:
		return "average_rating DESC"
	case dto.SortPopular:
		return "total_purchased DESC"
	default:
		return "created_at DESC"
	}
}

// List counts the filtered set, then fetches one page with children loaded.
func (cr *courseRepo) List(ctx context.Context, tx *gorm.DB, q dto.CourseQuery) ([]*types.Course, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var total int64
	if err := applyCourseFilters(transaction.WithContext(ctx).Model(&types.Course{}), q).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []*types.Course
	if err := applyCourseFilters(transaction.WithContext(ctx).Model(&types.Course{}), q).
		Order(courseOrderClause(q.SortBy)).
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Preload("Category").
		Preload("Contents").
		Preload("Skills").
		Preload("TargetLearners").
		Preload("Enrollments").
		Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (cr *courseRepo) ListBySeller(ctx context.Context, tx *gorm.DB, sellerID uuid.UUID, page, pageSize int) ([]*types.Course, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var total int64
	if err := transaction.WithContext(ctx).
		Model(&types.Course{}).
		Where("seller_id = ?", sellerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []*types.Course
	if err := transaction.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Preload("Category").
		Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}
