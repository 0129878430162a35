package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/craftledger/internal/domain"
	"github.com/andresuchdata/craftledger/internal/ledger"
)

func idFlag() *cli.StringFlag {
	return &cli.StringFlag{Name: "id", Usage: "Record id", Required: true}
}

// parseOverride reads "default" (or empty) as UseDefault and anything else as a value.
func parseOverride(raw string) (domain.Override, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "default") {
		return domain.UseDefault(), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return domain.Override{}, fmt.Errorf("%w: override %q is not a number", domain.ErrInvalid, raw)
	}
	return domain.Set(v), nil
}

func newTable(c *cli.Context) *tabwriter.Writer {
	return tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
}

// Materials

func materialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "Material name"},
		&cli.Float64Flag{Name: "cost", Usage: "Total cost of the bulk purchase (MAD)"},
		&cli.Float64Flag{Name: "yield", Usage: "Product units the purchase can make"},
		&cli.Float64Flag{Name: "remaining", Usage: "Remaining units"},
		&cli.StringFlag{Name: "date", Usage: "Purchase date (YYYY-MM-DD)"},
	}
}

func applyMaterialFlags(c *cli.Context, m *domain.Material) {
	if c.IsSet("name") {
		m.Name = c.String("name")
	}
	if c.IsSet("cost") {
		m.Cost = c.Float64("cost")
	}
	if c.IsSet("yield") {
		m.Yield = c.Float64("yield")
	}
	if c.IsSet("remaining") {
		m.RemainingUnits = c.Float64("remaining")
	}
	if c.IsSet("date") {
		m.Date = c.String("date")
	}
}

func materialCommand() *cli.Command {
	return &cli.Command{
		Name:  "material",
		Usage: "Manage raw material purchases",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Flags: []cli.Flag{jsonFlag()},
				Action: func(c *cli.Context) error {
					materials := ledgerFrom(c).Materials()
					if c.Bool("json") {
						return printJSON(c, materials)
					}
					w := newTable(c)
					fmt.Fprintln(w, "ID\tNAME\tCOST\tYIELD\tPER UNIT\tREMAINING\tDATE")
					for _, m := range materials {
						fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%s\t%g\t%s\n", m.ID, m.Name, ledger.FormatMAD(m.Cost), m.Yield,
							ledger.FormatMADCents(ledger.PerUnitCost(m)), m.RemainingUnits, m.Date)
					}
					return w.Flush()
				},
			},
			{
				Name:  "add",
				Flags: materialFlags(),
				Action: func(c *cli.Context) error {
					var m domain.Material
					applyMaterialFlags(c, &m)
					created, err := ledgerFrom(c).AddMaterial(c.Context, m)
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, created.ID)
					return nil
				},
			},
			{
				Name:  "update",
				Flags: append(materialFlags(), idFlag()),
				Action: func(c *cli.Context) error {
					svc := ledgerFrom(c)
					for _, m := range svc.Materials() {
						if m.ID == c.String("id") {
							applyMaterialFlags(c, &m)
							_, err := svc.UpdateMaterial(c.Context, m)
							return err
						}
					}
					return fmt.Errorf("%w: material %s", domain.ErrNotFound, c.String("id"))
				},
			},
			{
				Name:  "delete",
				Flags: []cli.Flag{idFlag(), yesFlag()},
				Action: func(c *cli.Context) error {
					if !confirm(c, "Delete material "+c.String("id")+"?") {
						return errAborted
					}
					return ledgerFrom(c).DeleteMaterial(c.Context, c.String("id"))
				},
			},
		},
	}
}

// Products

func productFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "Product name"},
		&cli.Float64Flag{Name: "price", Usage: "Selling price (MAD)"},
		&cli.StringSliceFlag{Name: "material", Usage: "Material id used per unit (repeatable)"},
		&cli.Float64Flag{Name: "labor", Usage: "Labor cost per unit"},
		&cli.Float64Flag{Name: "packaging", Usage: "Packaging cost per unit"},
		&cli.Float64Flag{Name: "shipping", Usage: "Default shipping cost per order"},
		&cli.StringFlag{Name: "buffer", Usage: "Per-unit fail buffer, or 'default' to clear"},
	}
}

func applyProductFlags(c *cli.Context, p *domain.Product) error {
	if c.IsSet("name") {
		p.Name = c.String("name")
	}
	if c.IsSet("price") {
		p.Price = c.Float64("price")
	}
	if c.IsSet("material") {
		p.MaterialIDs = c.StringSlice("material")
	}
	if c.IsSet("labor") {
		p.LaborCost = c.Float64("labor")
	}
	if c.IsSet("packaging") {
		p.PackagingCost = c.Float64("packaging")
	}
	if c.IsSet("shipping") {
		p.ShippingCost = c.Float64("shipping")
	}
	if c.IsSet("buffer") {
		o, err := parseOverride(c.String("buffer"))
		if err != nil {
			return err
		}
		p.FailBuffer = o
	}
	return nil
}

func productCommand() *cli.Command {
	return &cli.Command{
		Name:  "product",
		Usage: "Manage the product catalog",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Flags: []cli.Flag{jsonFlag()},
				Action: func(c *cli.Context) error {
					products := ledgerFrom(c).Products()
					if c.Bool("json") {
						return printJSON(c, products)
					}
					w := newTable(c)
					fmt.Fprintln(w, "ID\tNAME\tPRICE\tMATERIALS\tLABOR\tPACKAGING\tSHIPPING\tFAIL BUFFER")
					for _, p := range products {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g\t%g\t%g\t%s\n", p.ID, p.Name, ledger.FormatMAD(p.Price),
							strings.Join(p.MaterialIDs, ","), p.LaborCost, p.PackagingCost, p.ShippingCost, p.FailBuffer)
					}
					return w.Flush()
				},
			},
			{
				Name:  "add",
				Flags: productFlags(),
				Action: func(c *cli.Context) error {
					var p domain.Product
					if err := applyProductFlags(c, &p); err != nil {
						return err
					}
					created, err := ledgerFrom(c).AddProduct(c.Context, p)
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, created.ID)
					return nil
				},
			},
			{
				Name:  "update",
				Flags: append(productFlags(), idFlag()),
				Action: func(c *cli.Context) error {
					svc := ledgerFrom(c)
					p, ok := svc.Snapshot().FindProduct(c.String("id"))
					if !ok {
						return fmt.Errorf("%w: product %s", domain.ErrNotFound, c.String("id"))
					}
					if err := applyProductFlags(c, &p); err != nil {
						return err
					}
					_, err := svc.UpdateProduct(c.Context, p)
					return err
				},
			},
			{
				Name:  "delete",
				Flags: []cli.Flag{idFlag(), yesFlag()},
				Action: func(c *cli.Context) error {
					if !confirm(c, "Delete product "+c.String("id")+"? Its orders are kept.") {
						return errAborted
					}
					return ledgerFrom(c).DeleteProduct(c.Context, c.String("id"))
				},
			},
		},
	}
}

// Orders

func orderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "customer", Usage: "Customer name"},
		&cli.StringFlag{Name: "city", Usage: "Delivery city"},
		&cli.StringFlag{Name: "product", Usage: "Product id"},
		&cli.IntFlag{Name: "quantity", Usage: "Units ordered"},
		&cli.StringFlag{Name: "status", Usage: "Order status, e.g. pending, delivered, returned-paid"},
		&cli.StringFlag{Name: "date", Usage: "Order date (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "final-price", Usage: "Negotiated order total, or 'default'"},
		&cli.StringFlag{Name: "shipping", Usage: "Actual shipping paid, or 'default'"},
	}
}

func parseStatusFlag(raw string) (domain.OrderStatus, error) {
	status, ok := domain.ParseOrderStatus(raw)
	if !ok {
		return "", fmt.Errorf("%w: unknown order status %q", domain.ErrInvalid, raw)
	}
	return status, nil
}

func applyOrderFlags(c *cli.Context, o *domain.Order) error {
	if c.IsSet("customer") {
		o.CustomerName = c.String("customer")
	}
	if c.IsSet("city") {
		o.City = c.String("city")
	}
	if c.IsSet("product") {
		o.ProductID = c.String("product")
	}
	if c.IsSet("quantity") {
		o.Quantity = c.Int("quantity")
	}
	if c.IsSet("status") {
		status, err := parseStatusFlag(c.String("status"))
		if err != nil {
			return err
		}
		o.Status = status
	}
	if c.IsSet("date") {
		o.Date = c.String("date")
	}
	if c.IsSet("final-price") {
		v, err := parseOverride(c.String("final-price"))
		if err != nil {
			return err
		}
		o.FinalPrice = v
	}
	if c.IsSet("shipping") {
		v, err := parseOverride(c.String("shipping"))
		if err != nil {
			return err
		}
		o.ManualShippingCost = v
	}
	return nil
}

func orderCommand() *cli.Command {
	return &cli.Command{
		Name:  "order",
		Usage: "Manage customer orders",
		Subcommands: []*cli.Command{
			{
				Name: "list",
				Flags: []cli.Flag{
					jsonFlag(),
					&cli.StringFlag{Name: "status", Usage: "Only orders with this status"},
				},
				Action: func(c *cli.Context) error {
					orders := ledgerFrom(c).Orders()
					if c.IsSet("status") {
						status, err := parseStatusFlag(c.String("status"))
						if err != nil {
							return err
						}
						filtered := orders[:0]
						for _, o := range orders {
							if o.Status == status {
								filtered = append(filtered, o)
							}
						}
						orders = filtered
					}
					if c.Bool("json") {
						return printJSON(c, orders)
					}
					w := newTable(c)
					fmt.Fprintln(w, "ID\tCUSTOMER\tCITY\tPRODUCT\tQTY\tSTATUS\tDATE\tFINAL PRICE\tSHIPPING")
					for _, o := range orders {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n", o.ID, o.CustomerName, o.City, o.ProductID,
							o.Units(), o.Status, o.Date, o.FinalPrice, o.ManualShippingCost)
					}
					return w.Flush()
				},
			},
			{
				Name:  "add",
				Flags: orderFlags(),
				Action: func(c *cli.Context) error {
					var o domain.Order
					if err := applyOrderFlags(c, &o); err != nil {
						return err
					}
					created, err := ledgerFrom(c).AddOrder(c.Context, o)
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, created.ID)
					return nil
				},
			},
			{
				Name:  "update",
				Flags: append(orderFlags(), idFlag()),
				Action: func(c *cli.Context) error {
					svc := ledgerFrom(c)
					o, ok := svc.Order(c.String("id"))
					if !ok {
						return fmt.Errorf("%w: order %s", domain.ErrNotFound, c.String("id"))
					}
					if err := applyOrderFlags(c, &o); err != nil {
						return err
					}
					_, err := svc.UpdateOrder(c.Context, o)
					return err
				},
			},
			{
				Name:      "status",
				Usage:     "Move an order to a new status",
				ArgsUsage: "<status>",
				Flags:     []cli.Flag{idFlag()},
				Action: func(c *cli.Context) error {
					status, err := parseStatusFlag(c.Args().First())
					if err != nil {
						return err
					}
					o, err := ledgerFrom(c).UpdateOrderStatus(c.Context, c.String("id"), status)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "%s -> %s\n", o.ID, o.Status)
					return nil
				},
			},
			{
				Name:  "delete",
				Flags: []cli.Flag{idFlag(), yesFlag()},
				Action: func(c *cli.Context) error {
					if !confirm(c, "Delete order "+c.String("id")+"?") {
						return errAborted
					}
					return ledgerFrom(c).DeleteOrder(c.Context, c.String("id"))
				},
			},
		},
	}
}

// Ads

func adFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "platform", Usage: "Facebook, Instagram or TikTok"},
		&cli.Float64Flag{Name: "amount", Usage: "Amount spent (MAD)"},
		&cli.StringFlag{Name: "purpose", Usage: "Testing, Scaling or Awareness"},
		&cli.StringFlag{Name: "date", Usage: "Spend date (YYYY-MM-DD)"},
	}
}

func applyAdFlags(c *cli.Context, a *domain.AdSpend) {
	if c.IsSet("platform") {
		a.Platform = domain.Platform(c.String("platform"))
	}
	if c.IsSet("amount") {
		a.Amount = c.Float64("amount")
	}
	if c.IsSet("purpose") {
		a.Purpose = domain.AdPurpose(c.String("purpose"))
	}
	if c.IsSet("date") {
		a.Date = c.String("date")
	}
}

func adCommand() *cli.Command {
	return &cli.Command{
		Name:  "ad",
		Usage: "Manage ad spend",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Flags: []cli.Flag{jsonFlag()},
				Action: func(c *cli.Context) error {
					ads := ledgerFrom(c).Ads()
					if c.Bool("json") {
						return printJSON(c, ads)
					}
					w := newTable(c)
					fmt.Fprintln(w, "ID\tPLATFORM\tPURPOSE\tAMOUNT\tDATE")
					for _, a := range ads {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Platform, a.Purpose, ledger.FormatMAD(a.Amount), a.Date)
					}
					return w.Flush()
				},
			},
			{
				Name:  "add",
				Flags: adFlags(),
				Action: func(c *cli.Context) error {
					var a domain.AdSpend
					applyAdFlags(c, &a)
					created, err := ledgerFrom(c).AddAdSpend(c.Context, a)
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, created.ID)
					return nil
				},
			},
			{
				Name:  "update",
				Flags: append(adFlags(), idFlag()),
				Action: func(c *cli.Context) error {
					svc := ledgerFrom(c)
					for _, a := range svc.Ads() {
						if a.ID == c.String("id") {
							applyAdFlags(c, &a)
							_, err := svc.UpdateAdSpend(c.Context, a)
							return err
						}
					}
					return fmt.Errorf("%w: ad spend %s", domain.ErrNotFound, c.String("id"))
				},
			},
			{
				Name:  "delete",
				Flags: []cli.Flag{idFlag(), yesFlag()},
				Action: func(c *cli.Context) error {
					if !confirm(c, "Delete ad spend "+c.String("id")+"?") {
						return errAborted
					}
					return ledgerFrom(c).DeleteAdSpend(c.Context, c.String("id"))
				},
			},
		},
	}
}
