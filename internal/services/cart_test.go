package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/coursebay/coursebay-backend/internal/apperr"
	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/repos"
	"github.com/coursebay/coursebay-backend/internal/types"
)

func newCartService(t *testing.T) (CartService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	log := logger.NewNop()
	svc := NewCartService(db, log, repos.NewCartRepo(db, log), repos.NewCourseRepo(db, log))
	return svc, db
}

func TestGetMyCartLazilyCreates(t *testing.T) {
	svc, db := newCartService(t)
	ctx := context.Background()
	buyer := seedUser(t, db, types.RoleBuyer)

	view, err := svc.GetMyCart(ctx, buyer.ID)
	require.NoError(t, err)
	require.Equal(t, buyer.ID, view.UserID)
	require.Empty(t, view.Items)

	again, err := svc.GetMyCart(ctx, buyer.ID)
	require.NoError(t, err)
	require.Equal(t, view.ID, again.ID, "second access reuses the cart")
}

func TestAddToCartRejectsDuplicates(t *testing.T) {
	svc, db := newCartService(t)
	ctx := context.Background()
	buyer := seedUser(t, db, types.RoleBuyer)
	seller := seedUser(t, db, types.RoleSeller)
	category := seedCategory(t, db, "Carts")
	course := seedCourse(t, db, seller, category, nil)

	require.NoError(t, svc.AddToCart(ctx, buyer.ID, course.ID))

	err := svc.AddToCart(ctx, buyer.ID, course.ID)
	require.True(t, apperr.IsBadRequest(err))

	view, err := svc.GetMyCart(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, course.ID, view.Items[0].CourseID)
	require.Equal(t, course.Title, view.Items[0].Title)
}

func TestAddToCartMissingCourse(t *testing.T) {
	svc, db := newCartService(t)
	ctx := context.Background()
	buyer := seedUser(t, db, types.RoleBuyer)

	err := svc.AddToCart(ctx, buyer.ID, uuid.New())
	require.True(t, apperr.IsNotFound(err))
}

func TestRemoveFromCart(t *testing.T) {
	svc, db := newCartService(t)
	ctx := context.Background()
	buyer := seedUser(t, db, types.RoleBuyer)
	seller := seedUser(t, db, types.RoleSeller)
	category := seedCategory(t, db, "Carts")
	course := seedCourse(t, db, seller, category, nil)

	// no cart at all yet
	require.True(t, apperr.IsNotFound(svc.RemoveFromCart(ctx, buyer.ID, course.ID)))

	require.NoError(t, svc.AddToCart(ctx, buyer.ID, course.ID))
	require.True(t, apperr.IsNotFound(svc.RemoveFromCart(ctx, buyer.ID, uuid.New())))

	require.NoError(t, svc.RemoveFromCart(ctx, buyer.ID, course.ID))
	view, err := svc.GetMyCart(ctx, buyer.ID)
	require.NoError(t, err)
	require.Empty(t, view.Items)
}

func TestClearCart(t *testing.T) {
	svc, db := newCartService(t)
	ctx := context.Background()
	buyer := seedUser(t, db, types.RoleBuyer)
	seller := seedUser(t, db, types.RoleSeller)
	category := seedCategory(t, db, "Carts")

	// clearing a non-existent cart is a no-op
	require.NoError(t, svc.ClearCart(ctx, buyer.ID))

	for i := 0; i < 3; i++ {
		course := seedCourse(t, db, seller, category, nil)
		require.NoError(t, svc.AddToCart(ctx, buyer.ID, course.ID))
	}
	require.NoError(t, svc.ClearCart(ctx, buyer.ID))

	view, err := svc.GetMyCart(ctx, buyer.ID)
	require.NoError(t, err)
	require.Empty(t, view.Items)
}
