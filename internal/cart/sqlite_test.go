package cart_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"robomart/internal/cart"
)

func cartDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	_, err = db.Exec(`
	CREATE TABLE cart_items(
	  session_id TEXT NOT NULL,
	  product_id TEXT NOT NULL,
	  name TEXT NOT NULL,
	  price NUMERIC NOT NULL,
	  qty INTEGER NOT NULL CHECK (qty >= 1),
	  image TEXT DEFAULT '',
	  updated_at TEXT,
	  PRIMARY KEY (session_id, product_id)
	)`)
	require.NoError(t, err)
	return db
}

func TestSQLiteAdapterRoundTrip(t *testing.T) {
	store := cart.NewSQLiteAdapter(cartDB(t))

	var c cart.Cart
	c.Add(line("prd-a", "1499", 2))
	c.Add(line("prd-b", "89.50", 1))
	require.NoError(t, store.Save("sid-1", c))

	got, err := store.Load("sid-1")
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.True(t, got.Total().Equal(c.Total()), "want %s got %s", c.Total(), got.Total())

	// Carts are scoped per session.
	other, err := store.Load("sid-2")
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())
}

func TestSQLiteAdapterSaveEmptyClearsLines(t *testing.T) {
	store := cart.NewSQLiteAdapter(cartDB(t))

	var c cart.Cart
	c.Add(line("prd-a", "100", 1))
	require.NoError(t, store.Save("sid-1", c))
	require.NoError(t, store.Save("sid-1", cart.Cart{}))

	got, err := store.Load("sid-1")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}
