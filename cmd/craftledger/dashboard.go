package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/craftledger/internal/domain"
	"github.com/andresuchdata/craftledger/internal/export"
	"github.com/andresuchdata/craftledger/internal/ledger"
)

func metricsCommand() *cli.Command {
	return &cli.Command{
		Name:  "metrics",
		Usage: "Show campaign profit, losses, delivery rate and cash flow",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			m := ledgerFrom(c).Metrics()
			if c.Bool("json") {
				return printJSON(c, m)
			}

			w := newTable(c)
			fmt.Fprintf(w, "Orders\t%d\n", m.TotalOrders)
			for _, status := range domain.OrderStatuses {
				fmt.Fprintf(w, "  %s\t%d\n", status, m.StatusCounts[status])
			}
			fmt.Fprintf(w, "Revenue (delivered)\t%s\n", ledger.FormatMAD(m.Revenue))
			fmt.Fprintf(w, "COGS (delivered)\t%s\n", ledger.FormatMAD(m.COGSDelivered))
			fmt.Fprintf(w, "Scaling ad spend\t%s\n", ledger.FormatMAD(m.ScalingAdSpend))
			fmt.Fprintf(w, "Other ad spend\t%s\n", ledger.FormatMAD(m.NonScalingAdSpend))
			fmt.Fprintf(w, "Losses\t%s\n", ledger.FormatMAD(m.TotalLosses))
			fmt.Fprintf(w, "  Returned (Free)\t%s\n", ledger.FormatMAD(m.LossesReturnedFree))
			fmt.Fprintf(w, "  Returned (Paid)\t%s\n", ledger.FormatMAD(m.LossesReturnedPaid))
			fmt.Fprintf(w, "  Lost/Damaged\t%s\n", ledger.FormatMAD(m.LossesLostDamaged))
			fmt.Fprintf(w, "Campaign profit\t%s\n", ledger.FormatMAD(m.CampaignProfit))
			fmt.Fprintf(w, "Profit per unit\t%s\n", ledger.FormatMAD(m.ProfitPerUnit))
			fmt.Fprintf(w, "Delivery rate\t%.0f%%\n", m.DeliveryRate)
			if m.BreakEvenProductID != "" {
				fmt.Fprintf(w, "Break-even delivery rate\t%.0f%% (product %s)\n", m.BreakEvenDeliveryRate, m.BreakEvenProductID)
			}
			fmt.Fprintf(w, "Cash balance\t%s\n", ledger.FormatMAD(m.CashFlow.CashBalance))
			fmt.Fprintf(w, "Inventory value\t%s\n", ledger.FormatMAD(m.CashFlow.InventoryValue))
			return w.Flush()
		},
	}
}

func insightCommand() *cli.Command {
	return &cli.Command{
		Name:  "insight",
		Usage: "Show the coaching message for the current numbers",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			in := ledgerFrom(c).Insight()
			if c.Bool("json") {
				return printJSON(c, in)
			}
			fmt.Fprintf(c.App.Writer, "[%s] %s\n%s\n", in.Level, in.Title, in.Message)
			return nil
		},
	}
}

func economicsCommand() *cli.Command {
	return &cli.Command{
		Name:  "economics",
		Usage: "Show per-unit cost and margin of every product",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			cards := ledgerFrom(c).ProductEconomics()
			if c.Bool("json") {
				return printJSON(c, cards)
			}
			w := newTable(c)
			fmt.Fprintln(w, "ID\tNAME\tPRICE\tMATERIAL/UNIT\tTOTAL/UNIT\tMARGIN/UNIT\tMISSING MATERIALS")
			for _, e := range cards {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n", e.ProductID, e.Name, ledger.FormatMAD(e.Price),
					ledger.FormatMADCents(e.UnitMaterialCost), ledger.FormatMADCents(e.UnitTotalCost),
					ledger.FormatMADCents(e.UnitMargin), e.MissingMaterials)
			}
			return w.Flush()
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write every collection and the metrics to an .xlsx workbook",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "craftledger.xlsx", Usage: "Output file"},
		},
		Action: func(c *cli.Context) error {
			svc := ledgerFrom(c)
			f, err := os.Create(c.String("out"))
			if err != nil {
				return fmt.Errorf("create %s: %w", c.String("out"), err)
			}
			if err := export.WriteXLSX(f, svc.Snapshot(), svc.Options()); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, c.String("out"))
			return nil
		},
	}
}

func resetCommand() *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Replace everything with the demo data set",
		Flags: []cli.Flag{yesFlag()},
		Action: func(c *cli.Context) error {
			if !confirm(c, "This replaces all records with demo data.") {
				return errAborted
			}
			return ledgerFrom(c).ResetToDemo(c.Context)
		},
	}
}

func clearCommand() *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Delete every record, products included",
		Flags: []cli.Flag{yesFlag()},
		Action: func(c *cli.Context) error {
			if !confirm(c, "This deletes all records, products included.") {
				return errAborted
			}
			return ledgerFrom(c).ClearAll(c.Context)
		},
	}
}

func startFreshCommand() *cli.Command {
	return &cli.Command{
		Name:  "start-fresh",
		Usage: "Delete orders, ads and materials but keep the product catalog",
		Flags: []cli.Flag{yesFlag()},
		Action: func(c *cli.Context) error {
			if !confirm(c, "This deletes orders, ads and materials. Products are kept.") {
				return errAborted
			}
			return ledgerFrom(c).StartFresh(c.Context)
		},
	}
}
