// internal/domain/models.go
package domain

import "errors"

// SchemaVersion is written into every persisted blob. Blobs from earlier builds carry no
// version (0) and load unchanged.
const SchemaVersion = 1

var (
	ErrNotFound = errors.New("record not found")
	ErrInvalid  = errors.New("invalid record")
)

// Material is a bulk raw-material purchase.
type Material struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Cost           float64 `json:"cost"`  // total spent on the bulk buy
	Yield          float64 `json:"yield"` // product units the purchase can make
	Date           string  `json:"date"`
	RemainingUnits float64 `json:"remainingUnits"`
}

// Product is a sellable item and its per-unit cost structure.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	MaterialIDs   []string `json:"materialIds"`
	LaborCost     float64  `json:"laborCost"`
	PackagingCost float64  `json:"packagingCost"`
	ShippingCost  float64  `json:"shippingCost"`
	FailBuffer    Override `json:"failBuffer,omitzero"`
}

// Order is a cash-on-delivery customer order.
type Order struct {
	ID                 string      `json:"id"`
	CustomerName       string      `json:"customerName"`
	City               string      `json:"city,omitempty"`
	ProductID          string      `json:"productId"`
	Quantity           int         `json:"quantity,omitempty"`
	Status             OrderStatus `json:"status"`
	Date               string      `json:"date"`
	LastUpdated        string      `json:"lastUpdated"`
	FinalPrice         Override    `json:"finalPrice,omitzero"`
	ManualShippingCost Override    `json:"manualShippingCost,omitzero"`
}

// Units returns the order quantity, treating an absent or non-positive quantity as 1.
func (o Order) Units() int {
	if o.Quantity < 1 {
		return 1
	}
	return o.Quantity
}

// AdSpend is a single marketing expenditure.
type AdSpend struct {
	ID       string    `json:"id"`
	Platform Platform  `json:"platform"`
	Amount   float64   `json:"amount"`
	Purpose  AdPurpose `json:"purpose"`
	Date     string    `json:"date"`
}

// Records is the full set of collections and also the persisted blob layout.
type Records struct {
	Version   int        `json:"version,omitempty"`
	Materials []Material `json:"materials"`
	Products  []Product  `json:"products"`
	Orders    []Order    `json:"orders"`
	Ads       []AdSpend  `json:"ads"`
}

// Clone returns a deep copy so callers can never mutate store-owned slices.
func (r Records) Clone() Records {
	out := Records{
		Version:   r.Version,
		Materials: append([]Material{}, r.Materials...),
		Products:  make([]Product, len(r.Products)),
		Orders:    append([]Order{}, r.Orders...),
		Ads:       append([]AdSpend{}, r.Ads...),
	}
	for i, p := range r.Products {
		p.MaterialIDs = append([]string{}, p.MaterialIDs...)
		out.Products[i] = p
	}
	return out
}

// FindProduct returns the product with the given id.
func (r Records) FindProduct(id string) (Product, bool) {
	for _, p := range r.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
