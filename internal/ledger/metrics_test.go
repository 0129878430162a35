package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/craftledger/internal/domain"
)

func walletRecords(orders ...domain.Order) domain.Records {
	return domain.Records{
		Materials: []domain.Material{{ID: "m1", Name: "Leather", Cost: 300, Yield: 15, RemainingUnits: 15}},
		Products: []domain.Product{{
			ID:            "p1",
			Name:          "Wallet",
			Price:         350,
			MaterialIDs:   []string{"m1"},
			LaborCost:     40,
			PackagingCost: 15,
			ShippingCost:  35,
		}},
		Orders: orders,
	}
}

func TestCompute_DeliveredWallet(t *testing.T) {
	records := walletRecords(domain.Order{ID: "o1", ProductID: "p1", Quantity: 1, Status: domain.StatusDelivered})

	m := Compute(records, Options{})

	assert.InDelta(t, 20.0, UnitMaterialCost(records.Products[0], IndexMaterials(records.Materials)), 1e-9)
	assert.InDelta(t, 110.0, m.COGSDelivered, 1e-9)
	assert.InDelta(t, 350.0, m.Revenue, 1e-9)
	assert.InDelta(t, 240.0, m.CampaignProfit, 1e-9)
	assert.InDelta(t, 240.0, m.ProfitPerUnit, 1e-9)
	assert.Equal(t, 1, m.DeliveredUnits)
	assert.Equal(t, 100.0, m.DeliveryRate)
}

func TestCompute_ReturnedPaidOnly(t *testing.T) {
	records := walletRecords(domain.Order{ID: "o1", ProductID: "p1", Quantity: 1, Status: domain.StatusReturnedPaid})

	m := Compute(records, Options{})

	assert.InDelta(t, 50.0, m.LossesReturnedPaid, 1e-9)
	assert.InDelta(t, 50.0, m.TotalLosses, 1e-9)
	assert.InDelta(t, -50.0, m.CampaignProfit, 1e-9)
	assert.Equal(t, 0.0, m.ProfitPerUnit)
	assert.Equal(t, 0, m.DeliveredUnits)
	assert.Equal(t, 0.0, m.DeliveryRate)
	assert.Equal(t, 1, m.AttemptedOutcomes)
}

func TestCompute_FinalPriceIsOrderTotal(t *testing.T) {
	records := walletRecords(domain.Order{
		ID: "o1", ProductID: "p1", Quantity: 2, Status: domain.StatusDelivered,
		FinalPrice: domain.Set(700),
	})
	records.Products[0].Price = 400

	m := Compute(records, Options{})
	assert.InDelta(t, 700.0, m.Revenue, 1e-9)

	records.Orders[0].FinalPrice = domain.UseDefault()
	m = Compute(records, Options{})
	assert.InDelta(t, 800.0, m.Revenue, 1e-9)
}

func TestCompute_ExplicitZeroOverrides(t *testing.T) {
	records := walletRecords(domain.Order{
		ID: "o1", ProductID: "p1", Quantity: 1, Status: domain.StatusDelivered,
		FinalPrice: domain.Set(0), ManualShippingCost: domain.Set(0),
	})

	m := Compute(records, Options{})
	assert.Equal(t, 0.0, m.Revenue)
	assert.InDelta(t, 75.0, m.COGSDelivered, 1e-9)
}

func TestCompute_QuantityWeighting(t *testing.T) {
	records := walletRecords(
		domain.Order{ID: "d", ProductID: "p1", Quantity: 3, Status: domain.StatusDelivered},
		domain.Order{ID: "f", ProductID: "p1", Quantity: 2, Status: domain.StatusReturnedFree},
		domain.Order{ID: "r", ProductID: "p1", Quantity: 2, Status: domain.StatusReturnedPaid, ManualShippingCost: domain.Set(20)},
		domain.Order{ID: "l", ProductID: "p1", Quantity: 2, Status: domain.StatusLostDamaged},
	)

	m := Compute(records, Options{})

	assert.InDelta(t, 1050.0, m.Revenue, 1e-9)
	// 75 per unit * 3 + one 35 shipment
	assert.InDelta(t, 260.0, m.COGSDelivered, 1e-9)
	assert.InDelta(t, 30.0, m.LossesReturnedFree, 1e-9)
	assert.InDelta(t, 50.0, m.LossesReturnedPaid, 1e-9)
	assert.InDelta(t, 185.0, m.LossesLostDamaged, 1e-9)
	assert.InDelta(t, 265.0, m.TotalLosses, 1e-9)
	assert.InDelta(t, 525.0, m.CampaignProfit, 1e-9)
	assert.Equal(t, 3, m.DeliveredUnits)
	assert.InDelta(t, 175.0, m.ProfitPerUnit, 1e-9)
	assert.Equal(t, 4, m.AttemptedOutcomes)
	assert.Equal(t, 25.0, m.DeliveryRate)
}

func TestCompute_NoOrders(t *testing.T) {
	records := walletRecords()
	records.Ads = []domain.AdSpend{
		{ID: "a1", Amount: 500, Purpose: domain.PurposeScaling},
		{ID: "a2", Amount: 120, Purpose: domain.PurposeScaling},
		{ID: "a3", Amount: 200, Purpose: domain.PurposeTesting},
		{ID: "a4", Amount: 80, Purpose: domain.PurposeAwareness},
	}

	m := Compute(records, Options{})

	assert.InDelta(t, 620.0, m.ScalingAdSpend, 1e-9)
	assert.InDelta(t, 280.0, m.NonScalingAdSpend, 1e-9)
	assert.InDelta(t, -m.ScalingAdSpend, m.CampaignProfit, 1e-9)
	assert.Equal(t, 0.0, m.ProfitPerUnit)
	assert.Equal(t, 0.0, m.DeliveryRate)
	assert.Equal(t, 0, m.TotalOrders)
}

func TestCompute_DeliveryRateBounds(t *testing.T) {
	statuses := []domain.OrderStatus{
		domain.StatusPending, domain.StatusConfirmed, domain.StatusShipped,
		domain.StatusDelivered, domain.StatusReturnedFree, domain.StatusReturnedPaid,
		domain.StatusLostDamaged,
	}

	tests := []struct {
		name   string
		counts map[domain.OrderStatus]int
		want   float64
	}{
		{name: "no orders", counts: nil, want: 0},
		{name: "only in flight", counts: map[domain.OrderStatus]int{domain.StatusPending: 2, domain.StatusShipped: 3}, want: 0},
		{name: "all delivered", counts: map[domain.OrderStatus]int{domain.StatusDelivered: 4, domain.StatusPending: 9}, want: 100},
		{name: "none delivered", counts: map[domain.OrderStatus]int{domain.StatusLostDamaged: 1, domain.StatusReturnedFree: 1}, want: 0},
		{name: "two of three", counts: map[domain.OrderStatus]int{domain.StatusDelivered: 2, domain.StatusReturnedPaid: 1}, want: 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var orders []domain.Order
			for _, status := range statuses {
				for i := 0; i < tt.counts[status]; i++ {
					orders = append(orders, domain.Order{ProductID: "p1", Status: status})
				}
			}

			m := Compute(walletRecords(orders...), Options{})
			assert.Equal(t, tt.want, m.DeliveryRate)
			assert.GreaterOrEqual(t, m.DeliveryRate, 0.0)
			assert.LessOrEqual(t, m.DeliveryRate, 100.0)
		})
	}
}

func TestCompute_MissingProduct(t *testing.T) {
	records := walletRecords(
		domain.Order{ID: "ghost", ProductID: "deleted", Quantity: 4, Status: domain.StatusDelivered, FinalPrice: domain.Set(999), ManualShippingCost: domain.Set(50)},
		domain.Order{ID: "lost", ProductID: "deleted", Status: domain.StatusLostDamaged},
	)

	m := Compute(records, Options{})

	assert.Equal(t, 2, m.TotalOrders)
	assert.Equal(t, 0.0, m.Revenue)
	assert.Equal(t, 0.0, m.COGSDelivered)
	assert.Equal(t, 0.0, m.TotalLosses)
	assert.Equal(t, 0, m.DeliveredUnits)
	assert.Equal(t, 0.0, m.CashFlow.TotalShippingPaid)
	assert.Equal(t, 1, m.StatusCounts[domain.StatusDelivered])
	assert.Equal(t, 50.0, m.DeliveryRate)
}

func TestBreakEvenDeliveryRate(t *testing.T) {
	records := walletRecords()
	materials := IndexMaterials(records.Materials)
	p := records.Products[0]

	// fail 50, success 110, denominator 350 - 110 + 50
	assert.InDelta(t, 100*50/290.0, BreakEvenDeliveryRate(p, materials, false), 1e-9)

	p.FailBuffer = domain.Set(10)
	assert.InDelta(t, 100*50/280.0, BreakEvenDeliveryRate(p, materials, true), 1e-9)

	p.FailBuffer = domain.UseDefault()
	p.Price = 60
	assert.Equal(t, 0.0, BreakEvenDeliveryRate(p, materials, false))
}

func TestCompute_BreakEvenUsesFirstProduct(t *testing.T) {
	records := walletRecords()
	records.Products = append(records.Products, domain.Product{ID: "p2", Price: 1000, ShippingCost: 10})

	m := Compute(records, Options{})
	assert.Equal(t, "p1", m.BreakEvenProductID)
	assert.InDelta(t, 100*50/290.0, m.BreakEvenDeliveryRate, 1e-9)

	m = Compute(domain.Records{}, Options{})
	assert.Equal(t, 0.0, m.BreakEvenDeliveryRate)
	assert.Empty(t, m.BreakEvenProductID)
}

func TestCompute_DemoRecords(t *testing.T) {
	m := Compute(domain.DemoRecords(), Options{})

	assert.InDelta(t, 700.0, m.Revenue, 1e-9)
	assert.InDelta(t, 284.0, m.COGSDelivered, 1e-9)
	assert.InDelta(t, 50.0, m.LossesReturnedPaid, 1e-9)
	assert.InDelta(t, 500.0, m.ScalingAdSpend, 1e-9)
	assert.InDelta(t, -134.0, m.CampaignProfit, 1e-9)
	assert.InDelta(t, -67.0, m.ProfitPerUnit, 1e-9)
	assert.Equal(t, 67.0, m.DeliveryRate)
	assert.InDelta(t, 100*50/258.0, m.BreakEvenDeliveryRate, 1e-9)

	cf := m.CashFlow
	assert.InDelta(t, 1600.0, cf.TotalMaterialSpend, 1e-9)
	assert.InDelta(t, 700.0, cf.TotalAdSpend, 1e-9)
	assert.InDelta(t, 140.0, cf.TotalShippingPaid, 1e-9)
	assert.InDelta(t, -1740.0, cf.CashBalance, 1e-9)
	assert.InDelta(t, 810.0, cf.InventoryValue, 1e-9)
}

func TestEconomics(t *testing.T) {
	records := domain.DemoRecords()
	records.Products[0].MaterialIDs = append(records.Products[0].MaterialIDs, "gone")

	cards := Economics(records, Options{})
	require.Len(t, cards, 1)

	card := cards[0]
	assert.Equal(t, "p1", card.ProductID)
	assert.InDelta(t, 52.0, card.UnitMaterialCost, 1e-9)
	assert.InDelta(t, 142.0, card.UnitTotalCost, 1e-9)
	assert.InDelta(t, 208.0, card.UnitMargin, 1e-9)
	assert.Equal(t, 1, card.MissingMaterials)
}
