package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbweber/homelab/restkit/internal/entity"
	"github.com/jbweber/homelab/restkit/internal/testutil"
)

var _ Repository[*testProduct] = (*SQLRepository[*testProduct])(nil)

// testProduct maps onto the products table from the service schema.
type testProduct struct {
	entity.Model
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

func testMapper() Mapper[*testProduct] {
	return Mapper[*testProduct]{
		Table:   "products",
		Columns: []string{"name", "price", "description"},
		Fields: map[string]string{
			"name":        "name",
			"price":       "price",
			"description": "description",
		},
		New: func() *testProduct { return &testProduct{} },
		Values: func(p *testProduct) []any {
			return []any{p.Name, p.Price, p.Description}
		},
		Scan: func(row RowScanner) (*testProduct, error) {
			var p testProduct
			if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Description); err != nil {
				return nil, err
			}
			return &p, nil
		},
	}
}

func newTestRepo(t *testing.T, testName string) *SQLRepository[*testProduct] {
	t.Helper()
	db, cleanup := testutil.SetupTestDB(t, testName)
	t.Cleanup(cleanup)

	repo := NewSQLRepository(db, testMapper())
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLRepository_CreateAndFindByID(t *testing.T) {
	repo := newTestRepo(t, "TestSQLRepository_CreateAndFindByID")
	ctx := context.Background()

	p := &testProduct{Name: "Product 1", Price: 10.99}
	require.NoError(t, repo.Create(ctx, p))
	assert.Positive(t, p.GetID())

	found, err := repo.FindByID(ctx, p.GetID())
	require.NoError(t, err)
	assert.Equal(t, p.GetID(), found.GetID())
	assert.Equal(t, "Product 1", found.Name)
	assert.Equal(t, 10.99, found.Price)

	// Missing row
	_, err = repo.FindByID(ctx, 99999)
	assert.ErrorIs(t, err, ErrNotFound)

	// Invalid ID short-circuits before storage
	_, err = repo.FindByID(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = repo.FindByID(ctx, -5)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSQLRepository_FindPage(t *testing.T) {
	repo := newTestRepo(t, "TestSQLRepository_FindPage")
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		require.NoError(t, repo.Create(ctx, &testProduct{Name: "Product", Price: float64(i)}))
	}

	first, err := repo.FindPage(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, first.Items, 10)
	assert.Equal(t, 1, first.CurrentPage)
	assert.Equal(t, 10, first.PageSize)
	assert.Equal(t, int64(25), first.TotalCount)

	last, err := repo.FindPage(ctx, 3, 10)
	require.NoError(t, err)
	assert.Len(t, last.Items, 5)

	// TotalCount is invariant across pages.
	assert.Equal(t, first.TotalCount, last.TotalCount)

	// Natural ID order: page 3 starts right after page 2 ends.
	assert.Equal(t, int64(1), first.Items[0].GetID())
	assert.Equal(t, int64(21), last.Items[0].GetID())

	_, err = repo.FindPage(ctx, 0, 10)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = repo.FindPage(ctx, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSQLRepository_FindPage_Empty(t *testing.T) {
	repo := newTestRepo(t, "TestSQLRepository_FindPage_Empty")

	page, err := repo.FindPage(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.TotalCount)
}

func TestSQLRepository_FindPage_Filter(t *testing.T) {
	repo := newTestRepo(t, "TestSQLRepository_FindPage_Filter")
	ctx := context.Background()

	for i := 1; i <= 10; i++ {
		require.NoError(t, repo.Create(ctx, &testProduct{Name: "Product", Price: float64(i)}))
	}

	page, err := repo.FindPage(ctx, 1, 10, WithFilter[*testProduct]("price > ?", 7.0))
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)

	// TotalCount counts the filtered set, not the whole table.
	assert.Equal(t, int64(3), page.TotalCount)
}

func TestSQLRepository_Includes(t *testing.T) {
	repo := newTestRepo(t, "TestSQLRepository_Includes")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &testProduct{Name: "Product 1", Price: 1}))
	require.NoError(t, repo.Create(ctx, &testProduct{Name: "Product 2", Price: 2}))

	var seen int
	inc := func(ctx context.Context, items []*testProduct) error {
		seen = len(items)
		for _, p := range items {
			p.Description = "loaded"
		}
		return nil
	}

	page, err := repo.FindPage(ctx, 1, 10, WithInclude(Include[*testProduct](inc)))
	require.NoError(t, err)
	assert.Equal(t, 2, seen)
	assert.Equal(t, "loaded", page.Items[0].Description)

	found, err := repo.FindByID(ctx, 1, WithInclude(Include[*testProduct](inc)))
	require.NoError(t, err)
	assert.Equal(t, 1, seen)
	assert.Equal(t, "loaded", found.Description)
}

func TestSQLRepository_Update(t *testing.T) {
	repo := newTestRepo(t, "TestSQLRepository_Update")
	ctx := context.Background()

	p := &testProduct{Name: "Product 1", Price: 10.99}
	require.NoError(t, repo.Create(ctx, p))

	p.Name = "Renamed"
	p.Price = 12.50
	require.NoError(t, repo.Update(ctx, p))

	found, err := repo.FindByID(ctx, p.GetID())
	require.NoError(t, err)
	assert.Equal(t, "Renamed", found.Name)
	assert.Equal(t, 12.50, found.Price)

	// Conditional write reports a missing row as not-found.
	ghost := &testProduct{Name: "Ghost", Price: 1}
	ghost.SetID(99999)
	assert.ErrorIs(t, repo.Update(ctx, ghost), ErrNotFound)

	ghost.SetID(0)
	assert.ErrorIs(t, repo.Update(ctx, ghost), ErrInvalidArgument)
}

func TestSQLRepository_UpdateFields(t *testing.T) {
	repo := newTestRepo(t, "TestSQLRepository_UpdateFields")
	ctx := context.Background()

	p := &testProduct{Name: "Product 1", Price: 10.99, Description: "original"}
	require.NoError(t, repo.Create(ctx, p))

	err := repo.UpdateFields(ctx, p.GetID(), entity.Fields{"price": entity.Float(18.99)})
	require.NoError(t, err)

	// Only the named field changed.
	found, err := repo.FindByID(ctx, p.GetID())
	require.NoError(t, err)
	assert.Equal(t, 18.99, found.Price)
	assert.Equal(t, "Product 1", found.Name)
	assert.Equal(t, "original", found.Description)

	err = repo.UpdateFields(ctx, p.GetID(), entity.Fields{"color": entity.String("red")})
	assert.ErrorIs(t, err, ErrStorage)
	assert.Contains(t, err.Error(), "color")

	err = repo.UpdateFields(ctx, 99999, entity.Fields{"price": entity.Float(1)})
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.UpdateFields(ctx, p.GetID(), entity.Fields{})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = repo.UpdateFields(ctx, 0, entity.Fields{"price": entity.Float(1)})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSQLRepository_DeleteAndExists(t *testing.T) {
	repo := newTestRepo(t, "TestSQLRepository_DeleteAndExists")
	ctx := context.Background()

	p := &testProduct{Name: "Product 1", Price: 10.99}
	require.NoError(t, repo.Create(ctx, p))

	ok, err := repo.Exists(ctx, p.GetID())
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.Delete(ctx, p.GetID()))

	ok, err = repo.Exists(ctx, p.GetID())
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.FindByID(ctx, p.GetID())
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, p.GetID()), ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 0), ErrInvalidArgument)

	// Non-positive IDs never reach storage and never error.
	ok, err = repo.Exists(ctx, 0)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = repo.Exists(ctx, -5)
	require.NoError(t, err)
	assert.False(t, ok)
}
