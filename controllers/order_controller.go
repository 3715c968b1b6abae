package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/Govind-619/ebook-store/middleware"
	"github.com/Govind-619/ebook-store/services"
	"github.com/Govind-619/ebook-store/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// OrderController serves order creation, listing and the admin workflow
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// OrderLineRequest is one requested book and its quantity
type OrderLineRequest struct {
	Book     uint `json:"book" binding:"required"`
	Quantity int  `json:"quantity"`
}

type CreateOrderRequest struct {
	Books []OrderLineRequest `json:"books" binding:"required,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// CreateOrder places an order for the authenticated client
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]services.LineItemInput, 0, len(req.Books))
	for _, line := range req.Books {
		items = append(items, services.LineItemInput{BookID: line.Book, Quantity: line.Quantity})
	}

	order, err := oc.orders.CreateOrder(c.Request.Context(), middleware.CurrentUserID(c), items)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, order)
}

// ListMyOrders returns the authenticated client's orders, newest first
func (oc *OrderController) ListMyOrders(c *gin.Context) {
	orders, err := oc.orders.ListOrdersForUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, orders)
}

// ListAllOrders returns every order with its owner, newest first
func (oc *OrderController) ListAllOrders(c *gin.Context) {
	orders, err := oc.orders.ListAllOrders(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, orders)
}

// UpdateStatus changes the status of an order. Only the status can be set.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var req UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := oc.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, order)
}

func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := oc.orders.DeleteOrder(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Message(c, utils.MsgDeleteSuccess)
}

// DownloadInvoice renders a PDF invoice for one of the caller's orders
func (oc *OrderController) DownloadInvoice(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	order, err := oc.orders.GetOrderForUser(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	pdf, err := services.RenderInvoice(order)
	if err != nil {
		utils.RespondError(c, utils.InternalError("Failed to generate invoice", err))
		return
	}
	utils.LogInfo("Invoice generated for order %d", order.ID)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%d.pdf", order.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ExportOrders downloads every order as an XLSX workbook
func (oc *OrderController) ExportOrders(c *gin.Context) {
	orders, err := oc.orders.ListAllOrders(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := services.WriteOrdersReport(&buf, orders); err != nil {
		utils.RespondError(c, utils.InternalError("Failed to generate orders report", err))
		return
	}
	utils.LogInfo("Orders report generated with %d orders", len(orders))

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=orders_%s.xlsx", time.Now().Format("20060102")))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
