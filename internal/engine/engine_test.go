package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/hammamikhairi/coffeemaker/internal/domain"
	"github.com/hammamikhairi/coffeemaker/internal/inventory"
	"github.com/hammamikhairi/coffeemaker/internal/logger"
	"github.com/hammamikhairi/coffeemaker/internal/recipe"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	coffee       = domain.Recipe{Name: "Coffee", Price: 50, Amounts: domain.NewQuantities(3, 1, 1, 0)}
	mocha        = domain.Recipe{Name: "Mocha", Price: 75, Amounts: domain.NewQuantities(3, 1, 1, 20)}
	latte        = domain.Recipe{Name: "Latte", Price: 100, Amounts: domain.NewQuantities(3, 3, 1, 0)}
	hotChocolate = domain.Recipe{Name: "Hot Chocolate", Price: 65, Amounts: domain.NewQuantities(0, 1, 1, 4)}
)

type recordingNotifier struct {
	mu     sync.Mutex
	normal []string
	urgent []string
	err    error
}

func (n *recordingNotifier) Notify(ctx context.Context, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.normal = append(n.normal, message)
	return n.err
}

func (n *recordingNotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.urgent = append(n.urgent, message)
	return n.err
}

func setupEngine(t *testing.T, opts ...Option) (*Engine, context.Context) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	eng := New(recipe.NewBook(log), inventory.New(log), log, opts...)
	return eng, context.Background()
}

func TestAddRecipes(t *testing.T) {
	eng, ctx := setupEngine(t)

	assert.True(t, eng.AddRecipe(ctx, coffee))
	assert.True(t, eng.AddRecipe(ctx, mocha))
	assert.True(t, eng.AddRecipe(ctx, latte))
}

func TestAddMoreThanThreeRecipes(t *testing.T) {
	eng, ctx := setupEngine(t)

	for _, r := range []domain.Recipe{coffee, mocha, latte} {
		require.True(t, eng.AddRecipe(ctx, r))
	}
	assert.False(t, eng.AddRecipe(ctx, hotChocolate))
	assert.ErrorIs(t, eng.AddRecipeErr(ctx, hotChocolate), domain.ErrBookFull)

	occupied := 0
	for _, s := range eng.Recipes(ctx) {
		if s.Recipe != nil {
			occupied++
		}
	}
	assert.Equal(t, 3, occupied)
}

func TestAddInventory(t *testing.T) {
	eng, ctx := setupEngine(t)

	require.NoError(t, eng.AddInventory(ctx, "4", "7", "1", "9"))
	assert.Equal(t, "Coffee: 19\nMilk: 22\nSugar: 16\nChocolate: 24\n", eng.CheckInventory(ctx))
}

func TestAddInventoryMalformed(t *testing.T) {
	eng, ctx := setupEngine(t)
	before := eng.CheckInventory(ctx)

	err := eng.AddInventory(ctx, "4", "-1", "asdf", "3")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, before, eng.CheckInventory(ctx))
}

func TestMakeCoffee(t *testing.T) {
	tests := []struct {
		name       string
		selection  int
		paid       int
		wantChange int
		wantReason error
		wantReport string
	}{
		{"exact change back", 0, 75, 25, nil, "Coffee: 12\nMilk: 14\nSugar: 14\nChocolate: 15\n"},
		{"exact price", 0, 50, 0, nil, "Coffee: 12\nMilk: 14\nSugar: 14\nChocolate: 15\n"},
		{"less money", 0, 1, 1, domain.ErrInsufficientFunds, "Coffee: 15\nMilk: 15\nSugar: 15\nChocolate: 15\n"},
		{"negative selection", -1, 56, 56, domain.ErrInvalidSelection, "Coffee: 15\nMilk: 15\nSugar: 15\nChocolate: 15\n"},
		{"out of range selection", 100, 56, 56, domain.ErrInvalidSelection, "Coffee: 15\nMilk: 15\nSugar: 15\nChocolate: 15\n"},
		{"empty slot", 2, 56, 56, domain.ErrInvalidSelection, "Coffee: 15\nMilk: 15\nSugar: 15\nChocolate: 15\n"},
		{"negative payment", 0, -5, -5, domain.ErrInvalidPayment, "Coffee: 15\nMilk: 15\nSugar: 15\nChocolate: 15\n"},
		{"not enough chocolate", 1, 100, 100, domain.ErrInsufficientStock, "Coffee: 15\nMilk: 15\nSugar: 15\nChocolate: 15\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, ctx := setupEngine(t)
			require.True(t, eng.AddRecipe(ctx, coffee))
			require.True(t, eng.AddRecipe(ctx, mocha))

			receipt := eng.Purchase(ctx, tt.selection, tt.paid)
			assert.Equal(t, tt.wantChange, receipt.Change)
			assert.NotEmpty(t, receipt.ID)
			if tt.wantReason == nil {
				assert.Equal(t, domain.Completed, receipt.Outcome)
				assert.NoError(t, receipt.Reason)
			} else {
				assert.Equal(t, domain.Refunded, receipt.Outcome)
				if !errors.Is(receipt.Reason, tt.wantReason) {
					t.Fatalf("expected reason %v, got %v", tt.wantReason, receipt.Reason)
				}
			}
			assert.Equal(t, tt.wantReport, eng.CheckInventory(ctx))
		})
	}
}

func TestMakeCoffeeReturnsChange(t *testing.T) {
	eng, ctx := setupEngine(t)
	require.True(t, eng.AddRecipe(ctx, coffee))

	assert.Equal(t, 25, eng.MakeCoffee(ctx, 0, 75))
	assert.Equal(t, 1, eng.MakeCoffee(ctx, 0, 1))
	assert.Equal(t, "Coffee: 12\nMilk: 14\nSugar: 14\nChocolate: 15\n", eng.CheckInventory(ctx))
}

func TestPurchaseUntilEmpty(t *testing.T) {
	eng, ctx := setupEngine(t)
	require.True(t, eng.AddRecipe(ctx, coffee))

	// 15 coffee units allow five cups.
	for i := 0; i < 5; i++ {
		require.Equal(t, 0, eng.MakeCoffee(ctx, 0, 50), "cup %d", i+1)
	}
	receipt := eng.Purchase(ctx, 0, 50)
	assert.ErrorIs(t, receipt.Reason, domain.ErrInsufficientStock)
	assert.Equal(t, 50, receipt.Change)

	require.NoError(t, eng.AddInventory(ctx, "3", "0", "0", "0"))
	assert.Equal(t, 10, eng.MakeCoffee(ctx, 0, 60))

	assert.Equal(t, SalesSummary{Completed: 6, Refunded: 1, Revenue: 300}, eng.Sales(ctx))
}

func TestEditRecipe(t *testing.T) {
	eng, ctx := setupEngine(t)
	require.True(t, eng.AddRecipe(ctx, coffee))

	prev, ok := eng.EditRecipe(ctx, 0, hotChocolate)
	require.True(t, ok)
	assert.Equal(t, "Coffee", prev)

	// The edited recipe is what gets brewed.
	assert.Equal(t, 35, eng.MakeCoffee(ctx, 0, 100))
	assert.Equal(t, "Coffee: 15\nMilk: 14\nSugar: 14\nChocolate: 11\n", eng.CheckInventory(ctx))
}

func TestEditInvalidRecipe(t *testing.T) {
	eng, ctx := setupEngine(t)
	require.True(t, eng.AddRecipe(ctx, coffee))

	for _, idx := range []int{-1, 5} {
		prev, ok := eng.EditRecipe(ctx, idx, mocha)
		assert.False(t, ok)
		assert.Empty(t, prev)
	}
	slots := eng.Recipes(ctx)
	assert.Equal(t, "Coffee", slots[0].Recipe.Name)
}

func TestDeleteRecipe(t *testing.T) {
	eng, ctx := setupEngine(t)
	require.True(t, eng.AddRecipe(ctx, coffee))
	require.True(t, eng.AddRecipe(ctx, latte))

	name, ok := eng.DeleteRecipe(ctx, 0)
	require.True(t, ok)
	assert.Equal(t, "Coffee", name)

	// Slot 0 is now empty, slot 1 still holds Latte.
	assert.Equal(t, 50, eng.MakeCoffee(ctx, 0, 50))
	assert.Equal(t, 0, eng.MakeCoffee(ctx, 1, 100))
}

func TestDeleteInvalidRecipe(t *testing.T) {
	eng, ctx := setupEngine(t)

	for _, idx := range []int{-1, 5} {
		name, ok := eng.DeleteRecipe(ctx, idx)
		assert.False(t, ok)
		assert.Empty(t, name)
	}
}

func TestNotifier(t *testing.T) {
	n := &recordingNotifier{}
	eng, ctx := setupEngine(t, WithNotifier(n))
	require.True(t, eng.AddRecipe(ctx, coffee))

	eng.MakeCoffee(ctx, 0, 75)
	eng.MakeCoffee(ctx, 0, 10)

	require.Len(t, n.normal, 1)
	assert.Contains(t, n.normal[0], "Coffee")
	assert.Contains(t, n.normal[0], "25")
	require.Len(t, n.urgent, 1)
	assert.Contains(t, n.urgent[0], domain.ErrInsufficientFunds.Error())
}

func TestNotifierErrorDoesNotChangeOutcome(t *testing.T) {
	n := &recordingNotifier{err: errors.New("speaker unplugged")}
	eng, ctx := setupEngine(t, WithNotifier(n))
	require.True(t, eng.AddRecipe(ctx, coffee))

	receipt := eng.Purchase(ctx, 0, 75)
	assert.True(t, receipt.Completed())
	assert.Equal(t, 25, receipt.Change)
}

func TestConcurrentPurchasesNeverOversell(t *testing.T) {
	eng, ctx := setupEngine(t)
	require.True(t, eng.AddRecipe(ctx, coffee))

	var (
		mu        sync.Mutex
		completed int
	)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			if eng.Purchase(gctx, 0, 50).Completed() {
				mu.Lock()
				completed++
				mu.Unlock()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// Coffee runs out first: 15 units at 3 per cup.
	assert.Equal(t, 5, completed)
	assert.Equal(t, "Coffee: 0\nMilk: 10\nSugar: 10\nChocolate: 15\n", eng.CheckInventory(ctx))
	assert.Equal(t, SalesSummary{Completed: 5, Refunded: 45, Revenue: 250}, eng.Sales(ctx))
}
