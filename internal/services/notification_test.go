package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/coursebay/coursebay-backend/internal/apperr"
	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/repos"
	"github.com/coursebay/coursebay-backend/internal/types"
)

func TestNotificationsAreScopedToSeller(t *testing.T) {
	db := newTestDB(t)
	log := logger.NewNop()
	svc, err := NewNotificationService(db, log, repos.NewNotificationRepo(db, log))
	require.NoError(t, err)
	ctx := context.Background()

	seller := seedUser(t, db, types.RoleSeller)
	other := seedUser(t, db, types.RoleSeller)

	require.NoError(t, svc.NotifySeller(ctx, nil, seller.ID, "pending approval", map[string]any{"k": "v"}))
	require.NoError(t, svc.NotifySeller(ctx, nil, other.ID, "something else", nil))

	mine, err := svc.ListBySeller(ctx, seller.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "pending approval", mine[0].Message)
	require.False(t, mine[0].Read)

	// another seller cannot mark it read
	err = svc.MarkRead(ctx, other.ID, mine[0].ID)
	require.True(t, apperr.IsNotFound(err))

	require.True(t, apperr.IsNotFound(svc.MarkRead(ctx, seller.ID, uuid.New())))

	require.NoError(t, svc.MarkRead(ctx, seller.ID, mine[0].ID))
	mine, err = svc.ListBySeller(ctx, seller.ID)
	require.NoError(t, err)
	require.True(t, mine[0].Read)
}
