package services

import (
	"database/sql"
	"errors"

	"ecofinds/internal/repos"

	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("cart is empty")

type CheckoutService struct {
	Carts  *repos.CartRepo
	Orders *repos.OrderRepo
}

func NewCheckoutService(carts *repos.CartRepo, orders *repos.OrderRepo) *CheckoutService {
	return &CheckoutService{Carts: carts, Orders: orders}
}

// Checkout converts the session's cart into an immutable order owned by the
// user. The whole conversion runs in one transaction: either the order, its
// snapshot lines and the cart clear all land, or none do. A cart whose every
// line points at a deleted listing counts as empty.
func (s *CheckoutService) Checkout(sessionID, userID string) (repos.OrderWithItems, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return repos.OrderWithItems{}, err
	}
	order, err := s.Orders.CreateFromCart(uuid.NewString(), userID, cartID)
	if errors.Is(err, sql.ErrNoRows) {
		return repos.OrderWithItems{}, ErrEmptyCart
	}
	return order, err
}
