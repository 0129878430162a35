// Package export writes the ledger to a spreadsheet for accountants and backups.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/andresuchdata/craftledger/internal/domain"
	"github.com/andresuchdata/craftledger/internal/ledger"
)

const (
	SheetOrders    = "Orders"
	SheetProducts  = "Products"
	SheetMaterials = "Materials"
	SheetAds       = "Ads"
	SheetMetrics   = "Metrics"
)

// WriteXLSX writes one sheet per collection plus a metrics summary sheet.
func WriteXLSX(w io.Writer, records domain.Records, opts ledger.Options) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetOrders); err != nil {
		return fmt.Errorf("rename first sheet: %w", err)
	}
	for _, name := range []string{SheetProducts, SheetMaterials, SheetAds, SheetMetrics} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	if err := writeRows(f, SheetOrders, orderRows(records.Orders)); err != nil {
		return err
	}
	if err := writeRows(f, SheetProducts, productRows(records, opts)); err != nil {
		return err
	}
	if err := writeRows(f, SheetMaterials, materialRows(records.Materials)); err != nil {
		return err
	}
	if err := writeRows(f, SheetAds, adRows(records.Ads)); err != nil {
		return err
	}
	if err := writeRows(f, SheetMetrics, metricRows(ledger.Compute(records, opts))); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// overrideCell leaves the cell blank when the default applies.
func overrideCell(o domain.Override) any {
	if v, ok := o.Value(); ok {
		return v
	}
	return ""
}

func orderRows(orders []domain.Order) [][]any {
	rows := [][]any{{"ID", "Customer", "City", "Product ID", "Quantity", "Status", "Date", "Last Updated", "Final Price", "Manual Shipping"}}
	for _, o := range orders {
		rows = append(rows, []any{
			o.ID, o.CustomerName, o.City, o.ProductID, o.Units(), string(o.Status),
			o.Date, o.LastUpdated, overrideCell(o.FinalPrice), overrideCell(o.ManualShippingCost),
		})
	}
	return rows
}

func productRows(records domain.Records, opts ledger.Options) [][]any {
	rows := [][]any{{"ID", "Name", "Price", "Labor", "Packaging", "Shipping", "Fail Buffer", "Unit Material Cost", "Unit Total Cost", "Unit Margin"}}
	economics := ledger.Economics(records, opts)
	for i, p := range records.Products {
		e := economics[i]
		rows = append(rows, []any{
			p.ID, p.Name, p.Price, p.LaborCost, p.PackagingCost, p.ShippingCost,
			overrideCell(p.FailBuffer), e.UnitMaterialCost, e.UnitTotalCost, e.UnitMargin,
		})
	}
	return rows
}

func materialRows(materials []domain.Material) [][]any {
	rows := [][]any{{"ID", "Name", "Cost", "Yield", "Per Unit Cost", "Remaining Units", "Date"}}
	for _, m := range materials {
		rows = append(rows, []any{m.ID, m.Name, m.Cost, m.Yield, ledger.PerUnitCost(m), m.RemainingUnits, m.Date})
	}
	return rows
}

func adRows(ads []domain.AdSpend) [][]any {
	rows := [][]any{{"ID", "Platform", "Purpose", "Amount", "Date"}}
	for _, a := range ads {
		rows = append(rows, []any{a.ID, string(a.Platform), string(a.Purpose), a.Amount, a.Date})
	}
	return rows
}

func metricRows(m ledger.Metrics) [][]any {
	rows := [][]any{
		{"Metric", "Value"},
		{"Total Orders", m.TotalOrders},
		{"Revenue", m.Revenue},
		{"Scaling Ad Spend", m.ScalingAdSpend},
		{"Non-Scaling Ad Spend", m.NonScalingAdSpend},
		{"COGS (Delivered)", m.COGSDelivered},
		{"Losses: Returned (Free)", m.LossesReturnedFree},
		{"Losses: Returned (Paid)", m.LossesReturnedPaid},
		{"Losses: Lost/Damaged", m.LossesLostDamaged},
		{"Total Losses", m.TotalLosses},
		{"Campaign Profit", m.CampaignProfit},
		{"Delivered Units", m.DeliveredUnits},
		{"Profit Per Unit", m.ProfitPerUnit},
		{"Delivery Rate %", m.DeliveryRate},
		{"Break-even Delivery Rate %", m.BreakEvenDeliveryRate},
		{"Break-even Product", m.BreakEvenProductID},
		{"Cash Balance", m.CashFlow.CashBalance},
		{"Inventory Value", m.CashFlow.InventoryValue},
	}
	for _, status := range domain.OrderStatuses {
		rows = append(rows, []any{"Orders: " + string(status), m.StatusCounts[status]})
	}
	return rows
}
