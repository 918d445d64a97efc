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

// CartService keeps one cart per user, created lazily on first access.
type CartService interface {
	GetMyCart(ctx context.Context, userID uuid.UUID) (*dto.CartView, error)
	AddToCart(ctx context.Context, userID, courseID uuid.UUID) error
	RemoveFromCart(ctx context.Context, userID, courseID uuid.UUID) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	db         *gorm.DB
	log        *logger.Logger
	cartRepo   repos.CartRepo
	courseRepo repos.CourseRepo
}

func NewCartService(db *gorm.DB, log *logger.Logger, cartRepo repos.CartRepo, courseRepo repos.CourseRepo) CartService {
	return &cartService{
		db:         db,
		log:        log.With("service", "CartService"),
		cartRepo:   cartRepo,
		courseRepo: courseRepo,
	}
}

func (cs *cartService) GetMyCart(ctx context.Context, userID uuid.UUID) (*dto.CartView, error) {
	cart, err := cs.ensureCart(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	view := &dto.CartView{
		ID:     cart.ID,
		UserID: cart.UserID,
		Items:  make([]dto.CartLine, 0, len(cart.Items)),
	}
	for i := range cart.Items {
		view.Items = append(view.Items, dto.NewCartLine(&cart.Items[i]))
	}
	return view, nil
}

func (cs *cartService) AddToCart(ctx context.Context, userID, courseID uuid.UUID) error {
	course, err := cs.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return apperr.Internal("failed to load course", err)
	}
	if course == nil {
		return apperr.NotFound("course not found")
	}

	return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, cErr := cs.ensureCart(ctx, tx, userID)
		if cErr != nil {
			return cErr
		}
		for i := range cart.Items {
			if cart.Items[i].CourseID == courseID {
				return apperr.BadRequest("course already in cart")
			}
		}
		// Two racing adds can both pass the check above; the unique index on
		// (cart_id, course_id) rejects the second insert.
		item := &types.CartItem{
			ID:       uuid.New(),
			CartID:   cart.ID,
			CourseID: courseID,
			AddedAt:  time.Now(),
		}
		if aErr := cs.cartRepo.AddItem(ctx, tx, item); aErr != nil {
			return apperr.Internal("failed to add cart item", aErr)
		}
		return nil
	})
}

func (cs *cartService) RemoveFromCart(ctx context.Context, userID, courseID uuid.UUID) error {
	cart, err := cs.cartRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return apperr.Internal("failed to load cart", err)
	}
	if cart == nil {
		return apperr.NotFound("cart not found")
	}
	for i := range cart.Items {
		if cart.Items[i].CourseID == courseID {
			if rErr := cs.cartRepo.RemoveItem(ctx, nil, &cart.Items[i]); rErr != nil {
				return apperr.Internal("failed to remove cart item", rErr)
			}
			return nil
		}
	}
	return apperr.NotFound("course not in cart")
}

func (cs *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	cart, err := cs.cartRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return apperr.Internal("failed to load cart", err)
	}
	if cart == nil {
		return nil
	}
	if err := cs.cartRepo.ClearItems(ctx, nil, cart.ID); err != nil {
		return apperr.Internal("failed to clear cart", err)
	}
	return nil
}

func (cs *cartService) ensureCart(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Cart, error) {
	cart, err := cs.cartRepo.GetByUserID(ctx, tx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to load cart", err)
	}
	if cart != nil {
		return cart, nil
	}
	cart = &types.Cart{ID: uuid.New(), UserID: userID}
	if err := cs.cartRepo.Create(ctx, tx, cart); err != nil {
		return nil, apperr.Internal("failed to create cart", err)
	}
	cs.log.Debug("created cart", "user_id", userID, "cart_id", cart.ID)
	return cart, nil
}
