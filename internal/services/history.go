package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursebay/coursebay-backend/internal/apperr"
	"github.com/coursebay/coursebay-backend/internal/dto"
	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/repos"
	"github.com/coursebay/coursebay-backend/internal/types"
)

// HistoryService is a recency log keyed by (user, course): re-viewing a
// course refreshes its timestamp instead of adding a row.
type HistoryService interface {
	Add(ctx context.Context, userID, courseID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, page, pageSize int) (*dto.PagedResult[dto.HistoryItem], error)
	Remove(ctx context.Context, userID, courseID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type historyService struct {
	db          *gorm.DB
	log         *logger.Logger
	historyRepo repos.HistoryRepo
	courseRepo  repos.CourseRepo
}

func NewHistoryService(db *gorm.DB, log *logger.Logger, historyRepo repos.HistoryRepo, courseRepo repos.CourseRepo) HistoryService {
	return &historyService{
		db:          db,
		log:         log.With("service", "HistoryService"),
		historyRepo: historyRepo,
		courseRepo:  courseRepo,
	}
}

func (hs *historyService) Add(ctx context.Context, userID, courseID uuid.UUID) error {
	course, err := hs.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return apperr.Internal("failed to load course", err)
	}
	if course == nil {
		return apperr.NotFound("course not found")
	}
	return hs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, gErr := hs.historyRepo.Get(ctx, tx, userID, courseID)
		if gErr != nil {
			return apperr.Internal("failed to load history entry", gErr)
		}
		if existing == nil {
			if cErr := hs.historyRepo.Create(ctx, tx, &types.History{
				UserID:    userID,
				CourseID:  courseID,
				CreatedAt: time.Now(),
			}); cErr != nil {
				return apperr.Internal("failed to create history entry", cErr)
			}
			return nil
		}
		existing.CreatedAt = time.Now()
		if tErr := hs.historyRepo.Touch(ctx, tx, existing); tErr != nil {
			return apperr.Internal("failed to refresh history entry", tErr)
		}
		return nil
	})
}

func (hs *historyService) List(ctx context.Context, userID uuid.UUID, page, pageSize int) (*dto.PagedResult[dto.HistoryItem], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	entries, total, err := hs.historyRepo.ListByUser(ctx, nil, userID, page, pageSize)
	if err != nil {
		return nil, apperr.Internal("failed to list history", err)
	}
	items := make([]dto.HistoryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.NewHistoryItem(e))
	}
	return &dto.PagedResult[dto.HistoryItem]{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		Items:      items,
	}, nil
}

func (hs *historyService) Remove(ctx context.Context, userID, courseID uuid.UUID) error {
	entry, err := hs.historyRepo.Get(ctx, nil, userID, courseID)
	if err != nil {
		return apperr.Internal("failed to load history entry", err)
	}
	if entry == nil {
		return apperr.NotFound("history entry not found")
	}
	if err := hs.historyRepo.Delete(ctx, nil, entry); err != nil {
		return apperr.Internal("failed to delete history entry", err)
	}
	return nil
}

func (hs *historyService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := hs.historyRepo.ClearByUser(ctx, nil, userID); err != nil {
		return apperr.Internal("failed to clear history", err)
	}
	return nil
}
