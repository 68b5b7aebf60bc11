package tests

import (
	"context"
	"errors"
	"testing"

	"harveys-cafe/order-svc/internal/cart"
	"harveys-cafe/order-svc/internal/domain"
	"harveys-cafe/order-svc/internal/mocks"
	"harveys-cafe/order-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMenuService_ListCapsDisplayedCount(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMenuRepository(t)
	svc := service.NewMenuService(repo, nil)

	stored := []domain.MenuItem{
		{ID: "a", Name: "Veg Roll", AvailableCount: 40, DailyCap: 12},
		{ID: "b", Name: "Cold Coffee", AvailableCount: 3, DailyCap: 12},
	}
	repo.On("ListMenuItems", ctx).Return(stored, nil).Twice()

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, items[0].AvailableCount)
	assert.Equal(t, 3, items[1].AvailableCount)
	assert.Equal(t, 40, stored[0].AvailableCount, "repository result must not be rewritten")

	raw, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40, raw[0].AvailableCount)
}

func TestMenuService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		item          domain.MenuItem
		prepareMocks  func(repo *mocks.MenuRepository)
		expectedError error
	}{
		{
			name: "applies_defaults",
			item: domain.MenuItem{Name: "  Masala Fries ", Price: []string{"₹90"}, AvailableCount: 12},
			prepareMocks: func(repo *mocks.MenuRepository) {
				repo.On("CreateMenuItem", ctx, mock.MatchedBy(func(item *domain.MenuItem) bool {
					return item.ID != "" &&
						item.Name == "Masala Fries" &&
						item.Image == domain.DefaultImage &&
						item.Size != nil &&
						item.DailyCap == domain.DailyCap
				})).Return(nil).Once()
			},
		},
		{
			name:          "rejects_missing_price",
			item:          domain.MenuItem{Name: "Masala Fries"},
			prepareMocks:  func(repo *mocks.MenuRepository) {},
			expectedError: service.ErrValidation,
		},
		{
			name:          "rejects_bad_price",
			item:          domain.MenuItem{Name: "Masala Fries", Price: []string{"ninety"}},
			prepareMocks:  func(repo *mocks.MenuRepository) {},
			expectedError: service.ErrValidation,
		},
		{
			name:          "rejects_negative_count",
			item:          domain.MenuItem{Name: "Masala Fries", Price: []string{"90"}, AvailableCount: -1},
			prepareMocks:  func(repo *mocks.MenuRepository) {},
			expectedError: service.ErrValidation,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewMenuRepository(t)
			testCase.prepareMocks(repo)
			svc := service.NewMenuService(repo, nil)

			item := testCase.item
			err := svc.Create(ctx, &item)
			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMenuService_SetStock(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts_values_above_cap", func(t *testing.T) {
		repo := mocks.NewMenuRepository(t)
		publisher := mocks.NewEventPublisher(t)
		svc := service.NewMenuService(repo, publisher)

		repo.On("SetAvailableCount", ctx, "veg-roll", 30).Return(nil).Once()
		repo.On("GetMenuItem", ctx, "veg-roll").Return(&domain.MenuItem{ID: "veg-roll", Name: "Veg Roll", AvailableCount: 30}, nil).Once()
		publisher.On("PublishStockEvent", ctx, isStockEvent("veg-roll", 30)).Return(nil).Once()

		item, err := svc.SetStock(ctx, "veg-roll", 30)
		require.NoError(t, err)
		assert.Equal(t, 30, item.AvailableCount)
	})

	t.Run("rejects_negative", func(t *testing.T) {
		svc := service.NewMenuService(mocks.NewMenuRepository(t), nil)
		_, err := svc.SetStock(ctx, "veg-roll", -2)
		assert.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("unknown_item", func(t *testing.T) {
		repo := mocks.NewMenuRepository(t)
		repo.On("SetAvailableCount", ctx, "nope", 5).Return(domain.ErrMenuItemNotFound).Once()
		svc := service.NewMenuService(repo, nil)

		_, err := svc.SetStock(ctx, "nope", 5)
		assert.ErrorIs(t, err, domain.ErrMenuItemNotFound)
	})
}

func TestMenuService_ImportSkipsExistingNames(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMenuRepository(t)
	catalogue := func() ([]domain.MenuItem, error) {
		return []domain.MenuItem{
			{Name: "Veg Roll", Price: []string{"₹100"}},
			{Name: "Cold Coffee", Price: []string{"₹120"}},
		}, nil
	}
	svc := service.NewMenuService(repo, nil).WithCatalogue(catalogue)

	repo.On("ListMenuItems", ctx).Return([]domain.MenuItem{{ID: "a", Name: " veg roll"}}, nil).Once()
	repo.On("CreateMenuItem", ctx, mock.MatchedBy(func(item *domain.MenuItem) bool {
		return item.Name == "Cold Coffee" && item.AvailableCount == domain.DailyCap
	})).Return(nil).Once()

	inserted, err := svc.Import(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
}

func vegRollLine() cart.Item {
	return cart.Item{MenuItemID: "veg-roll", Name: "Veg Roll", Price: "₹100", Category: "Rolls"}
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		existing      *cart.Cart
		item          cart.Item
		qty           int
		prepareMocks  func(menu *mocks.MenuRepository, carts *mocks.CartStore)
		expectedError error
		expectedCount int
	}{
		{
			name:     "adds_within_stock",
			existing: cart.New(),
			item:     vegRollLine(),
			qty:      2,
			prepareMocks: func(menu *mocks.MenuRepository, carts *mocks.CartStore) {
				menu.On("GetMenuItem", ctx, "veg-roll").Return(&domain.MenuItem{ID: "veg-roll", AvailableCount: 5}, nil).Once()
				carts.On("Save", ctx, "c1", mock.Anything).Return(nil).Once()
			},
			expectedCount: 2,
		},
		{
			name:     "rejects_above_stock",
			existing: cart.New(),
			item:     vegRollLine(),
			qty:      3,
			prepareMocks: func(menu *mocks.MenuRepository, carts *mocks.CartStore) {
				menu.On("GetMenuItem", ctx, "veg-roll").Return(&domain.MenuItem{ID: "veg-roll", AvailableCount: 2}, nil).Once()
			},
			expectedError: cart.ErrOutOfStock,
		},
		{
			name:     "placeholder_id_skips_stock_check",
			existing: cart.New(),
			item: func() cart.Item {
				item := vegRollLine()
				item.MenuItemID = "static-1"
				return item
			}(),
			qty: 3,
			prepareMocks: func(menu *mocks.MenuRepository, carts *mocks.CartStore) {
				carts.On("Save", ctx, "c1", mock.Anything).Return(nil).Once()
			},
			expectedCount: 3,
		},
		{
			name:     "missing_record_skips_stock_check",
			existing: cart.New(),
			item:     vegRollLine(),
			qty:      1,
			prepareMocks: func(menu *mocks.MenuRepository, carts *mocks.CartStore) {
				menu.On("GetMenuItem", ctx, "veg-roll").Return(nil, domain.ErrMenuItemNotFound).Once()
				carts.On("Save", ctx, "c1", mock.Anything).Return(nil).Once()
			},
			expectedCount: 1,
		},
		{
			name: "rejects_fourth_unit",
			existing: &cart.Cart{Items: []cart.Item{
				{ID: "line-1", MenuItemID: "veg-roll", Name: "Veg Roll", Price: "₹100", Category: "Rolls", Quantity: 3},
			}},
			item: vegRollLine(),
			qty:  1,
			prepareMocks: func(menu *mocks.MenuRepository, carts *mocks.CartStore) {
				menu.On("GetMenuItem", ctx, "veg-roll").Return(&domain.MenuItem{ID: "veg-roll", AvailableCount: 12}, nil).Once()
			},
			expectedError: cart.ErrPerItemLimit,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			menu := mocks.NewMenuRepository(t)
			carts := mocks.NewCartStore(t)
			carts.On("Load", ctx, "c1").Return(testCase.existing, nil).Once()
			testCase.prepareMocks(menu, carts)
			svc := service.NewCartService(carts, menu).WithClock(fixedClock{now: testNow})

			c, err := svc.AddItem(ctx, "c1", testCase.item, testCase.qty)
			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
				var violation *cart.Violation
				if errors.As(err, &violation) {
					assert.NotEmpty(t, violation.Message)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expectedCount, c.Count())
		})
	}
}

func TestCartService_UpdateRemoveClear(t *testing.T) {
	ctx := context.Background()
	existing := func() *cart.Cart {
		return &cart.Cart{Items: []cart.Item{
			{ID: "line-1", MenuItemID: "veg-roll", Name: "Veg Roll", Price: "₹100", Category: "Rolls", Quantity: 1},
		}}
	}

	t.Run("update_checks_stock", func(t *testing.T) {
		menu := mocks.NewMenuRepository(t)
		carts := mocks.NewCartStore(t)
		carts.On("Load", ctx, "c1").Return(existing(), nil).Once()
		menu.On("GetMenuItem", ctx, "veg-roll").Return(&domain.MenuItem{ID: "veg-roll", AvailableCount: 2}, nil).Once()

		_, err := service.NewCartService(carts, menu).UpdateItem(ctx, "c1", "line-1", 3)
		assert.ErrorIs(t, err, cart.ErrOutOfStock)
	})

	t.Run("update_to_zero_removes_line", func(t *testing.T) {
		carts := mocks.NewCartStore(t)
		carts.On("Load", ctx, "c1").Return(existing(), nil).Once()
		carts.On("Save", ctx, "c1", mock.MatchedBy(func(c *cart.Cart) bool { return len(c.Items) == 0 })).Return(nil).Once()

		c, err := service.NewCartService(carts, mocks.NewMenuRepository(t)).UpdateItem(ctx, "c1", "line-1", 0)
		require.NoError(t, err)
		assert.Equal(t, 0, c.Count())
	})

	t.Run("update_unknown_line", func(t *testing.T) {
		carts := mocks.NewCartStore(t)
		carts.On("Load", ctx, "c1").Return(existing(), nil).Once()

		_, err := service.NewCartService(carts, mocks.NewMenuRepository(t)).UpdateItem(ctx, "c1", "line-9", 2)
		assert.ErrorIs(t, err, cart.ErrLineNotFound)
	})

	t.Run("remove", func(t *testing.T) {
		carts := mocks.NewCartStore(t)
		carts.On("Load", ctx, "c1").Return(existing(), nil).Once()
		carts.On("Save", ctx, "c1", mock.Anything).Return(nil).Once()

		c, err := service.NewCartService(carts, mocks.NewMenuRepository(t)).RemoveItem(ctx, "c1", "line-1")
		require.NoError(t, err)
		assert.Empty(t, c.Items)
	})

	t.Run("clear", func(t *testing.T) {
		carts := mocks.NewCartStore(t)
		carts.On("Delete", ctx, "c1").Return(nil).Once()

		assert.NoError(t, service.NewCartService(carts, mocks.NewMenuRepository(t)).Clear(ctx, "c1"))
	})

	t.Run("empty_cart_id", func(t *testing.T) {
		svc := service.NewCartService(mocks.NewCartStore(t), mocks.NewMenuRepository(t))
		_, err := svc.Get(ctx, "")
		assert.ErrorIs(t, err, service.ErrEmptyCartID)
	})
}
