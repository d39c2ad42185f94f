package repository

import (
	"context"
	"sync"
	"testing"

	"storefront/entity"
	"storefront/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUpsertLineCreatesThenMerges(t *testing.T) {
	db := testdb.Open(t)
	repo := NewCartRepository(db)
	u := testdb.CreateUser(t, db, "0810000001")
	p := testdb.CreateProduct(t, db, "Mug", "249.00")

	line, created, err := repo.UpsertLine(db, u.ID, p.ID, 2)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, "Mug", line.Product.Title)

	merged, created, err := repo.UpsertLine(db, u.ID, p.ID, 3)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, line.ID, merged.ID)
	assert.Equal(t, 5, merged.Quantity)

	var count int64
	require.NoError(t, db.Model(&entity.CartLine{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpsertLineConcurrentAddsAreNotLost(t *testing.T) {
	db := testdb.Open(t)
	repo := NewCartRepository(db)
	u := testdb.CreateUser(t, db, "0810000002")
	p := testdb.CreateProduct(t, db, "Candle", "349.00")

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- db.Transaction(func(tx *gorm.DB) error {
				_, _, err := repo.UpsertLine(tx, u.ID, p.ID, 1)
				return err
			})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	lines, err := repo.ListForUser(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, workers, lines[0].Quantity)
}

func TestDecrementRemovesLastUnit(t *testing.T) {
	db := testdb.Open(t)
	repo := NewCartRepository(db)
	u := testdb.CreateUser(t, db, "0810000003")
	p := testdb.CreateProduct(t, db, "Tee", "499.00")
	line := testdb.AddToCart(t, db, u.ID, p.ID, 2)

	removed, found, err := repo.Decrement(db, u.ID, line.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, removed)

	got, err := repo.FindInTx(db, u.ID, line.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity)

	removed, found, err = repo.Decrement(db, u.ID, line.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, removed)

	_, found, err = repo.Decrement(db, u.ID, line.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCartLinesAreScopedToOwner(t *testing.T) {
	db := testdb.Open(t)
	repo := NewCartRepository(db)
	ctx := context.Background()
	owner := testdb.CreateUser(t, db, "0810000004")
	other := testdb.CreateUser(t, db, "0810000005")
	p := testdb.CreateProduct(t, db, "Watch", "2999.00")
	line := testdb.AddToCart(t, db, owner.ID, p.ID, 1)

	_, err := repo.FindForUser(ctx, other.ID, line.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	n, err := repo.Increment(db, other.ID, line.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.RemoveLine(ctx, other.ID, line.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.DeleteLines(db, other.ID, []uint{line.ID})
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, repo.SetQuantity(db, other.ID, line.ID, 9))
	kept, err := repo.FindForUser(ctx, owner.ID, line.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, kept.Quantity, "another user's set does not land")

	require.NoError(t, repo.SetQuantity(db, owner.ID, line.ID, 4))
	kept, err = repo.FindForUser(ctx, owner.ID, line.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, kept.Quantity)

	n, err = repo.RemoveLine(ctx, owner.ID, line.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestClearCartOnlyTouchesOneUser(t *testing.T) {
	db := testdb.Open(t)
	repo := NewCartRepository(db)
	ctx := context.Background()
	a := testdb.CreateUser(t, db, "0810000006")
	b := testdb.CreateUser(t, db, "0810000007")
	p := testdb.CreateProduct(t, db, "Jacket", "1899.00")
	testdb.AddToCart(t, db, a.ID, p.ID, 1)
	testdb.AddToCart(t, db, b.ID, p.ID, 4)

	require.NoError(t, repo.ClearCart(ctx, a.ID))
	require.NoError(t, repo.ClearCart(ctx, a.ID))

	left, err := repo.ListForUser(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
	kept, err := repo.ListForUser(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, 4, kept[0].Quantity)
}
