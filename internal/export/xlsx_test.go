package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/andresuchdata/craftledger/internal/domain"
	"github.com/andresuchdata/craftledger/internal/ledger"
)

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, domain.DemoRecords(), ledger.Options{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetOrders, SheetProducts, SheetMaterials, SheetAds, SheetMetrics}, f.GetSheetList())

	orders, err := f.GetRows(SheetOrders)
	require.NoError(t, err)
	require.Len(t, orders, 6)
	assert.Equal(t, "Customer", orders[0][1])
	assert.Equal(t, "Ahmed B.", orders[1][1])
	assert.Equal(t, "Returned (Paid)", orders[4][5])

	products, err := f.GetRows(SheetProducts)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Classic Bifold Wallet", products[1][1])

	metrics, err := f.GetRows(SheetMetrics)
	require.NoError(t, err)
	assert.Equal(t, []string{"Total Orders", "5"}, metrics[1])
	assert.Equal(t, []string{"Revenue", "700"}, metrics[2])
}

func TestWriteXLSXLeavesDefaultsBlank(t *testing.T) {
	records := domain.Records{
		Products: []domain.Product{{ID: "p1", Name: "Wallet", Price: 350}},
		Orders:   []domain.Order{{ID: "o1", CustomerName: "Sara", ProductID: "p1", Status: domain.StatusPending}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, records, ledger.Options{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	final, err := f.GetCellValue(SheetOrders, "I2")
	require.NoError(t, err)
	assert.Empty(t, final)

	qty, err := f.GetCellValue(SheetOrders, "E2")
	require.NoError(t, err)
	assert.Equal(t, "1", qty)
}
