package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/coursebay/coursebay-backend/internal/apperr"
	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/repos"
	"github.com/coursebay/coursebay-backend/internal/types"
)

func newHistoryService(t *testing.T) (HistoryService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	log := logger.NewNop()
	svc := NewHistoryService(db, log, repos.NewHistoryRepo(db, log), repos.NewCourseRepo(db, log))
	return svc, db
}

func TestHistoryUpsert(t *testing.T) {
	svc, db := newHistoryService(t)
	ctx := context.Background()
	buyer := seedUser(t, db, types.RoleBuyer)
	seller := seedUser(t, db, types.RoleSeller)
	category := seedCategory(t, db, "Hist")
	course := seedCourse(t, db, seller, category, nil)

	require.True(t, apperr.IsNotFound(svc.Add(ctx, buyer.ID, uuid.New())))

	require.NoError(t, svc.Add(ctx, buyer.ID, course.ID))
	var first types.History
	require.NoError(t, db.First(&first, "user_id = ? AND course_id = ?", buyer.ID, course.ID).Error)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, svc.Add(ctx, buyer.ID, course.ID))

	var count int64
	require.NoError(t, db.Model(&types.History{}).Where("user_id = ?", buyer.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)

	var second types.History
	require.NoError(t, db.First(&second, "user_id = ? AND course_id = ?", buyer.ID, course.ID).Error)
	require.True(t, second.CreatedAt.After(first.CreatedAt), "re-view refreshes the timestamp")
}

func TestHistoryListOrderAndPagination(t *testing.T) {
	svc, db := newHistoryService(t)
	ctx := context.Background()
	buyer := seedUser(t, db, types.RoleBuyer)
	seller := seedUser(t, db, types.RoleSeller)
	category := seedCategory(t, db, "Hist")

	courses := make([]*types.Course, 0, 3)
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		course := seedCourse(t, db, seller, category, nil)
		courses = append(courses, course)
		require.NoError(t, db.Create(&types.History{
			UserID:    buyer.ID,
			CourseID:  course.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	page1, err := svc.List(ctx, buyer.ID, 1, 2)
	require.NoError(t, err)
	require.EqualValues(t, 3, page1.TotalCount)
	require.Len(t, page1.Items, 2)
	// most recently viewed first
	require.Equal(t, courses[2].ID, page1.Items[0].CourseID)
	require.Equal(t, courses[1].ID, page1.Items[1].CourseID)
	require.Equal(t, courses[2].Title, page1.Items[0].Title)
	require.Equal(t, "Hist", page1.Items[0].CategoryName)

	page2, err := svc.List(ctx, buyer.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)
	require.Equal(t, courses[0].ID, page2.Items[0].CourseID)
}

func TestHistoryRemoveAndClear(t *testing.T) {
	svc, db := newHistoryService(t)
	ctx := context.Background()
	buyer := seedUser(t, db, types.RoleBuyer)
	seller := seedUser(t, db, types.RoleSeller)
	category := seedCategory(t, db, "Hist")
	course := seedCourse(t, db, seller, category, nil)

	require.True(t, apperr.IsNotFound(svc.Remove(ctx, buyer.ID, course.ID)))

	require.NoError(t, svc.Add(ctx, buyer.ID, course.ID))
	require.NoError(t, svc.Remove(ctx, buyer.ID, course.ID))
	var count int64
	require.NoError(t, db.Model(&types.History{}).Count(&count).Error)
	require.EqualValues(t, 0, count)

	// clear is a no-op on empty history
	require.NoError(t, svc.Clear(ctx, buyer.ID))
	require.NoError(t, svc.Add(ctx, buyer.ID, course.ID))
	require.NoError(t, svc.Clear(ctx, buyer.ID))
	require.NoError(t, db.Model(&types.History{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}
