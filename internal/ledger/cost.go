// Package ledger derives the dashboard's financial metrics from the raw record
// collections. Everything here is a pure function of its inputs.
package ledger

import "github.com/andresuchdata/craftledger/internal/domain"

// MaterialIndex looks materials up by id.
type MaterialIndex map[string]domain.Material

// IndexMaterials builds a MaterialIndex. Later duplicates win.
func IndexMaterials(materials []domain.Material) MaterialIndex {
	idx := make(MaterialIndex, len(materials))
	for _, m := range materials {
		idx[m.ID] = m
	}
	return idx
}

// PerUnitCost is the material cost of one product unit made from m, or 0 when the
// yield is not positive.
func PerUnitCost(m domain.Material) float64 {
	if m.Yield <= 0 {
		return 0
	}
	return m.Cost / m.Yield
}

// UnitMaterialCost sums cost/yield over the product's linked materials. Dangling ids
// contribute nothing.
func UnitMaterialCost(p domain.Product, materials MaterialIndex) float64 {
	var cost float64
	for _, id := range p.MaterialIDs {
		m, ok := materials[id]
		if !ok {
			continue
		}
		cost += PerUnitCost(m)
	}
	return cost
}

// UnitProductionCost is material + labor + packaging for one unit, i.e. everything
// except the shipment.
func UnitProductionCost(p domain.Product, materials MaterialIndex) float64 {
	return UnitMaterialCost(p, materials) + p.LaborCost + p.PackagingCost
}

// UnitTotalCost is the full landed cost of one unit. The fail buffer is only added
// when withFailBuffer is set and the product carries one.
func UnitTotalCost(p domain.Product, materials MaterialIndex, withFailBuffer bool) float64 {
	total := UnitProductionCost(p, materials) + p.ShippingCost
	if withFailBuffer {
		total += p.FailBuffer.Or(0)
	}
	return total
}

// shippingForOrder is the shipment cost of a whole order: the manual override when
// present, otherwise the product default (one parcel per order).
func shippingForOrder(o domain.Order, p domain.Product) float64 {
	return o.ManualShippingCost.Or(p.ShippingCost)
}

// revenueForOrder is the collected amount for a whole order.
func revenueForOrder(o domain.Order, p domain.Product) float64 {
	if price, ok := o.FinalPrice.Value(); ok {
		return price
	}
	return p.Price * float64(o.Units())
}
