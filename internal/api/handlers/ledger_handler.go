package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/craftledger/internal/domain"
	"github.com/andresuchdata/craftledger/internal/export"
	"github.com/andresuchdata/craftledger/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type LedgerHandler struct {
	service *service.LedgerService
}

func NewLedgerHandler(service *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{service: service}
}

// respondError maps store sentinels to 404/400 and everything else to 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("ledger request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update ledger"})
	}
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func (h *LedgerHandler) GetRecords(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Snapshot())
}

// Materials

func (h *LedgerHandler) ListMaterials(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Materials())
}

func (h *LedgerHandler) CreateMaterial(c *gin.Context) {
	var m domain.Material
	if !bindJSON(c, &m) {
		return
	}
	created, err := h.service.AddMaterial(c.Request.Context(), m)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *LedgerHandler) UpdateMaterial(c *gin.Context) {
	var m domain.Material
	if !bindJSON(c, &m) {
		return
	}
	m.ID = c.Param("id")
	updated, err := h.service.UpdateMaterial(c.Request.Context(), m)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *LedgerHandler) DeleteMaterial(c *gin.Context) {
	if err := h.service.DeleteMaterial(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Products

func (h *LedgerHandler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Products())
}

func (h *LedgerHandler) CreateProduct(c *gin.Context) {
	var p domain.Product
	if !bindJSON(c, &p) {
		return
	}
	created, err := h.service.AddProduct(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *LedgerHandler) UpdateProduct(c *gin.Context) {
	var p domain.Product
	if !bindJSON(c, &p) {
		return
	}
	p.ID = c.Param("id")
	updated, err := h.service.UpdateProduct(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *LedgerHandler) DeleteProduct(c *gin.Context) {
	if err := h.service.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Orders

func (h *LedgerHandler) ListOrders(c *gin.Context) {
	orders := h.service.Orders()
	if raw := c.Query("status"); raw != "" {
		status, ok := domain.ParseOrderStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status " + raw})
			return
		}
		filtered := make([]domain.Order, 0, len(orders))
		for _, o := range orders {
			if o.Status == status {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	c.JSON(http.StatusOK, orders)
}

func (h *LedgerHandler) GetOrder(c *gin.Context) {
	o, ok := h.service.Order(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *LedgerHandler) CreateOrder(c *gin.Context) {
	var o domain.Order
	if !bindJSON(c, &o) {
		return
	}
	created, err := h.service.AddOrder(c.Request.Context(), o)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *LedgerHandler) UpdateOrder(c *gin.Context) {
	var o domain.Order
	if !bindJSON(c, &o) {
		return
	}
	o.ID = c.Param("id")
	updated, err := h.service.UpdateOrder(c.Request.Context(), o)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type statusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

func (h *LedgerHandler) UpdateOrderStatus(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.service.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *LedgerHandler) DeleteOrder(c *gin.Context) {
	if err := h.service.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Ads

func (h *LedgerHandler) ListAds(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Ads())
}

func (h *LedgerHandler) CreateAd(c *gin.Context) {
	var a domain.AdSpend
	if !bindJSON(c, &a) {
		return
	}
	created, err := h.service.AddAdSpend(c.Request.Context(), a)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *LedgerHandler) UpdateAd(c *gin.Context) {
	var a domain.AdSpend
	if !bindJSON(c, &a) {
		return
	}
	a.ID = c.Param("id")
	updated, err := h.service.UpdateAdSpend(c.Request.Context(), a)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *LedgerHandler) DeleteAd(c *gin.Context) {
	if err := h.service.DeleteAdSpend(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Dashboard

func (h *LedgerHandler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Dashboard())
}

func (h *LedgerHandler) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Metrics())
}

func (h *LedgerHandler) GetInsight(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Insight())
}

func (h *LedgerHandler) GetProductEconomics(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ProductEconomics())
}

func (h *LedgerHandler) ExportXLSX(c *gin.Context) {
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, h.service.Snapshot(), h.service.Options()); err != nil {
		log.Error().Err(err).Msg("xlsx export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export ledger"})
		return
	}

	filename := "craftledger-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Admin

func (h *LedgerHandler) ResetToDemo(c *gin.Context) {
	if err := h.service.ResetToDemo(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.service.Snapshot())
}

func (h *LedgerHandler) ClearAll(c *gin.Context) {
	if err := h.service.ClearAll(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.service.Snapshot())
}

func (h *LedgerHandler) StartFresh(c *gin.Context) {
	if err := h.service.StartFresh(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.service.Snapshot())
}
