package ledger

import (
	"math"

	"github.com/andresuchdata/craftledger/internal/domain"
)

// Options selects model variants.
type Options struct {
	// IncludeFailBuffer adds each product's fail buffer to its unit total cost and to
	// the success cost of the break-even formula.
	IncludeFailBuffer bool
}

// Metrics is the dashboard snapshot derived from all collections.
type Metrics struct {
	TotalOrders  int                        `json:"total_orders"`
	StatusCounts map[domain.OrderStatus]int `json:"status_counts"`

	Revenue           float64 `json:"revenue"`
	ScalingAdSpend    float64 `json:"scaling_ad_spend"`
	NonScalingAdSpend float64 `json:"non_scaling_ad_spend"`
	COGSDelivered     float64 `json:"cogs_delivered"`

	LossesReturnedFree float64 `json:"losses_returned_free"`
	LossesReturnedPaid float64 `json:"losses_returned_paid"`
	LossesLostDamaged  float64 `json:"losses_lost_damaged"`
	TotalLosses        float64 `json:"total_losses"`

	CampaignProfit float64 `json:"campaign_profit"`
	DeliveredUnits int     `json:"delivered_units"`
	ProfitPerUnit  float64 `json:"profit_per_unit"`

	DeliveredCount        int     `json:"delivered_count"`
	AttemptedOutcomes     int     `json:"attempted_outcomes"`
	DeliveryRate          float64 `json:"delivery_rate"`
	BreakEvenDeliveryRate float64 `json:"break_even_delivery_rate"`
	// BreakEvenProductID is the product the break-even rate was computed from. Only the
	// first product in the catalog is used.
	BreakEvenProductID string `json:"break_even_product_id,omitempty"`

	CashFlow CashFlow `json:"cash_flow"`
}

// CashFlow is the cash view: purchases are recognised in full when made.
type CashFlow struct {
	Revenue            float64 `json:"revenue"`
	TotalMaterialSpend float64 `json:"total_material_spend"`
	TotalAdSpend       float64 `json:"total_ad_spend"`
	TotalShippingPaid  float64 `json:"total_shipping_paid"`
	CashBalance        float64 `json:"cash_balance"`
	InventoryValue     float64 `json:"inventory_value"`
}

// Compute derives every metric from scratch.
func Compute(records domain.Records, opts Options) Metrics {
	materials := IndexMaterials(records.Materials)
	products := make(map[string]domain.Product, len(records.Products))
	for _, p := range records.Products {
		products[p.ID] = p
	}

	buckets := Partition(records.Orders)
	m := Metrics{
		TotalOrders:  len(records.Orders),
		StatusCounts: make(map[domain.OrderStatus]int),
	}
	for _, o := range records.Orders {
		m.StatusCounts[o.Status]++
	}

	// 1. Ad spend: only scaling campaigns count against unit economics
	for _, ad := range records.Ads {
		if ad.Purpose == domain.PurposeScaling {
			m.ScalingAdSpend += ad.Amount
		} else {
			m.NonScalingAdSpend += ad.Amount
		}
	}

	// 2. Delivered orders: revenue and full cost of goods sold
	for _, o := range buckets[OutcomeDelivered] {
		p, ok := products[o.ProductID]
		if !ok {
			continue
		}
		units := o.Units()
		m.Revenue += revenueForOrder(o, p)
		m.COGSDelivered += UnitProductionCost(p, materials)*float64(units) + shippingForOrder(o, p)
		m.DeliveredUnits += units
	}

	// 3. Free returns: material is salvaged, no shipping charged, packaging is lost
	for _, o := range buckets[OutcomeReturnedFree] {
		if p, ok := products[o.ProductID]; ok {
			m.LossesReturnedFree += p.PackagingCost * float64(o.Units())
		}
	}

	// 4. Paid returns: packaging plus the shipment
	for _, o := range buckets[OutcomeReturnedPaid] {
		if p, ok := products[o.ProductID]; ok {
			m.LossesReturnedPaid += p.PackagingCost*float64(o.Units()) + shippingForOrder(o, p)
		}
	}

	// 5. Lost or damaged: everything is sunk
	for _, o := range buckets[OutcomeLostDamaged] {
		if p, ok := products[o.ProductID]; ok {
			m.LossesLostDamaged += UnitProductionCost(p, materials)*float64(o.Units()) + shippingForOrder(o, p)
		}
	}

	m.TotalLosses = m.LossesReturnedFree + m.LossesReturnedPaid + m.LossesLostDamaged

	// 6. Campaign profit and unit economics
	m.CampaignProfit = m.Revenue - m.COGSDelivered - m.TotalLosses - m.ScalingAdSpend
	if m.DeliveredUnits > 0 {
		m.ProfitPerUnit = m.CampaignProfit / float64(m.DeliveredUnits)
	}

	// 7. Delivery rate over orders whose outcome is known
	m.DeliveredCount = buckets.Count(OutcomeDelivered)
	m.AttemptedOutcomes = buckets.Attempted()
	if m.AttemptedOutcomes > 0 {
		m.DeliveryRate = math.Round(100 * float64(m.DeliveredCount) / float64(m.AttemptedOutcomes))
	}

	// 8. Break-even delivery rate from the first product only
	if len(records.Products) > 0 {
		first := records.Products[0]
		m.BreakEvenProductID = first.ID
		m.BreakEvenDeliveryRate = BreakEvenDeliveryRate(first, materials, opts.IncludeFailBuffer)
	}

	m.CashFlow = computeCashFlow(records, products, m)
	return m
}

// BreakEvenDeliveryRate is the minimum percentage of attempted deliveries that must
// succeed for one product to cover the costs of both successes and failures. It is 0
// when the denominator is zero.
func BreakEvenDeliveryRate(p domain.Product, materials MaterialIndex, withFailBuffer bool) float64 {
	failCost := p.ShippingCost + p.PackagingCost
	successCost := UnitTotalCost(p, materials, withFailBuffer)
	denominator := p.Price - successCost + failCost
	if denominator == 0 {
		return 0
	}
	return 100 * failCost / denominator
}

func computeCashFlow(records domain.Records, products map[string]domain.Product, m Metrics) CashFlow {
	cf := CashFlow{
		Revenue:      m.Revenue,
		TotalAdSpend: m.ScalingAdSpend + m.NonScalingAdSpend,
	}

	for _, mat := range records.Materials {
		cf.TotalMaterialSpend += mat.Cost
		cf.InventoryValue += PerUnitCost(mat) * mat.RemainingUnits
	}

	for _, o := range records.Orders {
		if !ShippingDispatched(o.Status) {
			continue
		}
		if p, ok := products[o.ProductID]; ok {
			cf.TotalShippingPaid += shippingForOrder(o, p)
		}
	}

	cf.CashBalance = cf.Revenue - cf.TotalMaterialSpend - cf.TotalAdSpend - cf.TotalShippingPaid
	return cf
}
