package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/craftledger/internal/domain"
	"github.com/andresuchdata/craftledger/internal/storage"
)

var fixedNow = time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(t *testing.T, backend storage.BlobStore, policy InitPolicy) *Store {
	t.Helper()
	s, err := New(context.Background(), backend, DefaultKey, policy,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)
	return s
}

type failingBackend struct {
	storage.BlobStore
	loadErr error
	saveErr error
}

func (f *failingBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if f.loadErr != nil {
		return nil, false, f.loadErr
	}
	return f.BlobStore.Load(ctx, key)
}

func (f *failingBackend) Save(ctx context.Context, key string, data []byte) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.BlobStore.Save(ctx, key, data)
}

func TestParseInitPolicy(t *testing.T) {
	p, err := ParseInitPolicy("seed")
	require.NoError(t, err)
	assert.Equal(t, SeedWithDefaults, p)

	p, err = ParseInitPolicy(" Empty ")
	require.NoError(t, err)
	assert.Equal(t, StartEmpty, p)

	_, err = ParseInitPolicy("maybe")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestNewAppliesInitPolicy(t *testing.T) {
	seeded := newTestStore(t, storage.NewMemoryStore(), SeedWithDefaults)
	assert.Len(t, seeded.Orders(), 5)
	assert.Len(t, seeded.Materials(), 2)

	empty := newTestStore(t, storage.NewMemoryStore(), StartEmpty)
	snap := empty.Snapshot()
	assert.Empty(t, snap.Materials)
	assert.Empty(t, snap.Products)
	assert.Empty(t, snap.Orders)
	assert.Empty(t, snap.Ads)
}

func TestNewFallsBackOnMalformedBlob(t *testing.T) {
	backend := storage.NewMemoryStore()
	require.NoError(t, backend.Save(context.Background(), DefaultKey, []byte(`{"orders": "nope"`)))

	s := newTestStore(t, backend, SeedWithDefaults)
	assert.Len(t, s.Products(), 1)

	s = newTestStore(t, backend, StartEmpty)
	assert.Empty(t, s.Products())
	assert.Equal(t, 1, backend.Saves(), "fallback must not overwrite the saved blob")
}

func TestNewReturnsBackendError(t *testing.T) {
	boom := errors.New("disk on fire")
	_, err := New(context.Background(), &failingBackend{BlobStore: storage.NewMemoryStore(), loadErr: boom}, "", StartEmpty)
	assert.ErrorIs(t, err, boom)
}

func TestLegacyBlobLoads(t *testing.T) {
	backend := storage.NewMemoryStore()
	blob := `{
		"materials":[{"id":"m1","name":"Leather","cost":300,"yield":15,"date":"2023-10-01","remainingUnits":15}],
		"products":[{"id":"p1","name":"Wallet","price":350,"materialIds":["m1"],"laborCost":40,"packagingCost":15,"shippingCost":35}],
		"orders":[{"id":"o1","customerName":"Ahmed","productId":"p1","status":"Returned","date":"2023-10-12","lastUpdated":"2023-10-14"}],
		"ads":[]
	}`
	require.NoError(t, backend.Save(context.Background(), DefaultKey, []byte(blob)))

	s := newTestStore(t, backend, SeedWithDefaults)
	orders := s.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, domain.OrderStatus("Returned"), orders[0].Status)
	assert.False(t, orders[0].FinalPrice.IsSet())
}

func TestRoundTripKeepsAbsentOverrides(t *testing.T) {
	backend := storage.NewMemoryStore()
	s := newTestStore(t, backend, StartEmpty)
	ctx := context.Background()

	_, err := s.AddOrder(ctx, domain.Order{CustomerName: "Sara", ProductID: "p1"})
	require.NoError(t, err)
	_, err = s.AddOrder(ctx, domain.Order{CustomerName: "Omar", ProductID: "p1", FinalPrice: domain.Set(0)})
	require.NoError(t, err)

	data, ok, err := backend.Load(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, string(data), "manualShippingCost")
	assert.Contains(t, string(data), `"finalPrice":0`)
	assert.Contains(t, string(data), `"version":1`)

	reloaded := newTestStore(t, backend, SeedWithDefaults)
	orders := reloaded.Orders()
	require.Len(t, orders, 2)
	assert.False(t, orders[0].FinalPrice.IsSet())
	assert.False(t, orders[0].ManualShippingCost.IsSet())
	v, set := orders[1].FinalPrice.Value()
	assert.True(t, set)
	assert.Zero(t, v)
	assert.Equal(t, s.Snapshot(), reloaded.Snapshot())
}

func TestAddAssignsDefaults(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryStore(), StartEmpty)
	ctx := context.Background()

	m, err := s.AddMaterial(ctx, domain.Material{Name: "Leather", Cost: 300, Yield: 15})
	require.NoError(t, err)
	assert.Equal(t, "id-1", m.ID)
	assert.Equal(t, 15.0, m.RemainingUnits)
	assert.Equal(t, "2024-03-09", m.Date)

	p, err := s.AddProduct(ctx, domain.Product{Name: "Wallet", Price: 350})
	require.NoError(t, err)
	assert.Equal(t, "id-2", p.ID)
	assert.NotNil(t, p.MaterialIDs)

	o, err := s.AddOrder(ctx, domain.Order{CustomerName: "Sara", ProductID: p.ID, Quantity: -3})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, o.Status)
	assert.Equal(t, 1, o.Quantity)
	assert.Equal(t, "2024-03-09T14:30:00Z", o.LastUpdated)

	a, err := s.AddAdSpend(ctx, domain.AdSpend{Platform: "tiktok", Purpose: "scaling", Amount: 120})
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformTikTok, a.Platform)
	assert.Equal(t, domain.PurposeScaling, a.Purpose)

	snap := s.Snapshot()
	assert.Len(t, snap.Materials, 1)
	assert.Len(t, snap.Products, 1)
	assert.Len(t, snap.Orders, 1)
	assert.Len(t, snap.Ads, 1)
}

func TestValidation(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryStore(), StartEmpty)
	ctx := context.Background()

	_, err := s.AddMaterial(ctx, domain.Material{Name: "Leather", Yield: -1})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = s.AddProduct(ctx, domain.Product{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = s.AddOrder(ctx, domain.Order{CustomerName: "Sara", ProductID: "p1", Status: "Returned"})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = s.AddOrder(ctx, domain.Order{CustomerName: "Sara"})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = s.AddAdSpend(ctx, domain.AdSpend{Platform: "Snapchat", Purpose: domain.PurposeTesting})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = s.AddAdSpend(ctx, domain.AdSpend{Platform: domain.PlatformFacebook, Purpose: "Branding"})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	assert.Empty(t, s.Snapshot().Orders)
}

func TestUpdateAndDelete(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryStore(), SeedWithDefaults)
	ctx := context.Background()

	m := s.Materials()[0]
	m.RemainingUnits = 3
	_, err := s.UpdateMaterial(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, 3.0, s.Materials()[0].RemainingUnits)

	require.NoError(t, s.DeleteMaterial(ctx, "m1"))
	assert.Len(t, s.Materials(), 1)
	assert.Equal(t, []string{"m1", "m2"}, s.Products()[0].MaterialIDs, "products keep dangling references")

	o, err := s.UpdateOrderStatus(ctx, "o5", domain.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, o.Status)
	assert.Equal(t, "2024-03-09T14:30:00Z", o.LastUpdated)
	assert.Equal(t, 2, o.Quantity)

	_, err = s.UpdateOrderStatus(ctx, "o5", domain.OrderStatus("Teleported"))
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = s.UpdateOrderStatus(ctx, "missing", domain.StatusShipped)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.UpdateProduct(ctx, domain.Product{ID: "nope", Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, s.DeleteOrder(ctx, "nope"), domain.ErrNotFound)
	assert.ErrorIs(t, s.DeleteAdSpend(ctx, "nope"), domain.ErrNotFound)

	require.NoError(t, s.DeleteProduct(ctx, "p1"))
	assert.Len(t, s.Orders(), 5, "orders survive product deletion")

	ad := s.Ads()[0]
	ad.Amount = 999
	_, err = s.UpdateAdSpend(ctx, ad)
	require.NoError(t, err)
	assert.Equal(t, 999.0, s.Ads()[0].Amount)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryStore(), SeedWithDefaults)
	products := s.Products()
	products[0].MaterialIDs[0] = "tampered"
	products[0].Name = "tampered"

	assert.Equal(t, "m1", s.Products()[0].MaterialIDs[0])
	assert.Equal(t, "Classic Bifold Wallet", s.Products()[0].Name)
}

func TestFailedSaveLeavesStateUnchanged(t *testing.T) {
	backend := &failingBackend{BlobStore: storage.NewMemoryStore()}
	s := newTestStore(t, backend, SeedWithDefaults)
	ctx := context.Background()
	before := s.Snapshot()

	backend.saveErr = errors.New("quota exceeded")
	_, err := s.AddOrder(ctx, domain.Order{CustomerName: "Sara", ProductID: "p1"})
	assert.ErrorIs(t, err, backend.saveErr)
	assert.ErrorIs(t, s.ClearAll(ctx), backend.saveErr)
	assert.Equal(t, before, s.Snapshot())
}

func TestBulkOperations(t *testing.T) {
	backend := storage.NewMemoryStore()
	s := newTestStore(t, backend, SeedWithDefaults)
	ctx := context.Background()

	require.NoError(t, s.StartFresh(ctx))
	snap := s.Snapshot()
	assert.Empty(t, snap.Materials)
	assert.Empty(t, snap.Orders)
	assert.Empty(t, snap.Ads)
	require.Len(t, snap.Products, 1)
	assert.Empty(t, snap.Products[0].MaterialIDs)

	require.NoError(t, s.ClearAll(ctx))
	assert.Empty(t, s.Products())

	data, _, err := backend.Load(ctx, DefaultKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"materials":[],"products":[],"orders":[],"ads":[]}`, string(data))

	require.NoError(t, s.ResetToDemo(ctx))
	assert.Equal(t, domain.DemoRecords(), s.Snapshot())
}
