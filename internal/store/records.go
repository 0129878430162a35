package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/andresuchdata/craftledger/internal/domain"
)

func materialID(m domain.Material) string { return m.ID }
func productID(p domain.Product) string   { return p.ID }
func orderID(o domain.Order) string       { return o.ID }
func adID(a domain.AdSpend) string        { return a.ID }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalid, fmt.Sprintf(format, args...))
}

func validateMaterial(m domain.Material) error {
	if strings.TrimSpace(m.Name) == "" {
		return invalid("material name is required")
	}
	if m.Yield < 0 {
		return invalid("material yield must not be negative, got %v", m.Yield)
	}
	if m.Cost < 0 {
		return invalid("material cost must not be negative, got %v", m.Cost)
	}
	return nil
}

// AddMaterial stores a new purchase. Remaining units start at the full yield.
func (s *Store) AddMaterial(ctx context.Context, m domain.Material) (domain.Material, error) {
	if err := validateMaterial(m); err != nil {
		return domain.Material{}, err
	}
	m.ID = s.newID()
	m.RemainingUnits = m.Yield
	if m.Date == "" {
		m.Date = s.today()
	}

	err := s.mutate(ctx, func(r *domain.Records) error {
		r.Materials = append(r.Materials, m)
		return nil
	})
	return m, err
}

// UpdateMaterial replaces the material with the same id.
func (s *Store) UpdateMaterial(ctx context.Context, m domain.Material) (domain.Material, error) {
	if err := validateMaterial(m); err != nil {
		return domain.Material{}, err
	}
	err := s.mutate(ctx, func(r *domain.Records) error {
		i := indexOf(r.Materials, m.ID, materialID)
		if i < 0 {
			return fmt.Errorf("%w: material %s", domain.ErrNotFound, m.ID)
		}
		r.Materials[i] = m
		return nil
	})
	return m, err
}

// DeleteMaterial leaves products that still reference the id untouched.
func (s *Store) DeleteMaterial(ctx context.Context, id string) error {
	return s.mutate(ctx, func(r *domain.Records) (err error) {
		r.Materials, err = remove(r.Materials, id, materialID)
		return err
	})
}

func validateProduct(p domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid("product name is required")
	}
	if p.Price < 0 {
		return invalid("product price must not be negative, got %v", p.Price)
	}
	for _, id := range p.MaterialIDs {
		if strings.TrimSpace(id) == "" {
			return invalid("product %q references an empty material id", p.Name)
		}
	}
	return nil
}

func (s *Store) AddProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := validateProduct(p); err != nil {
		return domain.Product{}, err
	}
	p.ID = s.newID()
	if p.MaterialIDs == nil {
		p.MaterialIDs = []string{}
	}

	err := s.mutate(ctx, func(r *domain.Records) error {
		r.Products = append(r.Products, p)
		return nil
	})
	return p, err
}

func (s *Store) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := validateProduct(p); err != nil {
		return domain.Product{}, err
	}
	if p.MaterialIDs == nil {
		p.MaterialIDs = []string{}
	}
	err := s.mutate(ctx, func(r *domain.Records) error {
		i := indexOf(r.Products, p.ID, productID)
		if i < 0 {
			return fmt.Errorf("%w: product %s", domain.ErrNotFound, p.ID)
		}
		r.Products[i] = p
		return nil
	})
	return p, err
}

// DeleteProduct keeps orders for the product; they then count with zero revenue and cost.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return s.mutate(ctx, func(r *domain.Records) (err error) {
		r.Products, err = remove(r.Products, id, productID)
		return err
	})
}

func (s *Store) prepareOrder(o domain.Order) (domain.Order, error) {
	if strings.TrimSpace(o.CustomerName) == "" {
		return o, invalid("customer name is required")
	}
	if strings.TrimSpace(o.ProductID) == "" {
		return o, invalid("order must reference a product")
	}
	if o.Status == "" {
		o.Status = domain.StatusPending
	}
	if !o.Status.Valid() {
		return o, invalid("unknown order status %q", o.Status)
	}
	if o.Quantity < 1 {
		o.Quantity = 1
	}
	if o.Date == "" {
		o.Date = s.today()
	}
	o.LastUpdated = s.timestamp()
	return o, nil
}

// AddOrder stores a new order. Status defaults to Pending and quantity to 1.
func (s *Store) AddOrder(ctx context.Context, o domain.Order) (domain.Order, error) {
	o.ID = s.newID()
	o, err := s.prepareOrder(o)
	if err != nil {
		return domain.Order{}, err
	}

	err = s.mutate(ctx, func(r *domain.Records) error {
		r.Orders = append(r.Orders, o)
		return nil
	})
	return o, err
}

func (s *Store) UpdateOrder(ctx context.Context, o domain.Order) (domain.Order, error) {
	o, err := s.prepareOrder(o)
	if err != nil {
		return domain.Order{}, err
	}

	err = s.mutate(ctx, func(r *domain.Records) error {
		i := indexOf(r.Orders, o.ID, orderID)
		if i < 0 {
			return fmt.Errorf("%w: order %s", domain.ErrNotFound, o.ID)
		}
		r.Orders[i] = o
		return nil
	})
	return o, err
}

// UpdateOrderStatus moves an order to status. Any transition is allowed.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, invalid("unknown order status %q", status)
	}

	var updated domain.Order
	err := s.mutate(ctx, func(r *domain.Records) error {
		i := indexOf(r.Orders, id, orderID)
		if i < 0 {
			return fmt.Errorf("%w: order %s", domain.ErrNotFound, id)
		}
		r.Orders[i].Status = status
		r.Orders[i].LastUpdated = s.timestamp()
		updated = r.Orders[i]
		return nil
	})
	return updated, err
}

func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	return s.mutate(ctx, func(r *domain.Records) (err error) {
		r.Orders, err = remove(r.Orders, id, orderID)
		return err
	})
}

func validateAd(a domain.AdSpend) error {
	if _, ok := domain.ParsePlatform(string(a.Platform)); !ok {
		return invalid("unknown platform %q", a.Platform)
	}
	if _, ok := domain.ParseAdPurpose(string(a.Purpose)); !ok {
		return invalid("unknown ad purpose %q", a.Purpose)
	}
	if a.Amount < 0 {
		return invalid("ad amount must not be negative, got %v", a.Amount)
	}
	return nil
}

func canonicalAd(a domain.AdSpend) domain.AdSpend {
	a.Platform, _ = domain.ParsePlatform(string(a.Platform))
	a.Purpose, _ = domain.ParseAdPurpose(string(a.Purpose))
	return a
}

func (s *Store) AddAdSpend(ctx context.Context, a domain.AdSpend) (domain.AdSpend, error) {
	if err := validateAd(a); err != nil {
		return domain.AdSpend{}, err
	}
	a = canonicalAd(a)
	a.ID = s.newID()
	if a.Date == "" {
		a.Date = s.today()
	}

	err := s.mutate(ctx, func(r *domain.Records) error {
		r.Ads = append(r.Ads, a)
		return nil
	})
	return a, err
}

func (s *Store) UpdateAdSpend(ctx context.Context, a domain.AdSpend) (domain.AdSpend, error) {
	if err := validateAd(a); err != nil {
		return domain.AdSpend{}, err
	}
	a = canonicalAd(a)

	err := s.mutate(ctx, func(r *domain.Records) error {
		i := indexOf(r.Ads, a.ID, adID)
		if i < 0 {
			return fmt.Errorf("%w: ad spend %s", domain.ErrNotFound, a.ID)
		}
		r.Ads[i] = a
		return nil
	})
	return a, err
}

func (s *Store) DeleteAdSpend(ctx context.Context, id string) error {
	return s.mutate(ctx, func(r *domain.Records) (err error) {
		r.Ads, err = remove(r.Ads, id, adID)
		return err
	})
}
