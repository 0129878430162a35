package ledger

import "github.com/andresuchdata/craftledger/internal/domain"

// ProductEconomics is the per-unit cost card of a product.
type ProductEconomics struct {
	ProductID        string  `json:"product_id"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	UnitMaterialCost float64 `json:"unit_material_cost"`
	UnitTotalCost    float64 `json:"unit_total_cost"`
	UnitMargin       float64 `json:"unit_margin"`
	MissingMaterials int     `json:"missing_materials"`
}

// Economics computes the cost card of every product, in catalog order.
func Economics(records domain.Records, opts Options) []ProductEconomics {
	materials := IndexMaterials(records.Materials)
	out := make([]ProductEconomics, 0, len(records.Products))
	for _, p := range records.Products {
		total := UnitTotalCost(p, materials, opts.IncludeFailBuffer)
		var missing int
		for _, id := range p.MaterialIDs {
			if _, ok := materials[id]; !ok {
				missing++
			}
		}
		out = append(out, ProductEconomics{
			ProductID:        p.ID,
			Name:             p.Name,
			Price:            p.Price,
			UnitMaterialCost: UnitMaterialCost(p, materials),
			UnitTotalCost:    total,
			UnitMargin:       p.Price - total,
			MissingMaterials: missing,
		})
	}
	return out
}
