package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/billtrack/billing-system/internal/api/metrics"
	"github.com/billtrack/billing-system/internal/core/ports"
)

// BillHandler handles HTTP requests for billing records.
type BillHandler struct {
	service ports.BillService
}

func NewBillHandler(service ports.BillService) *BillHandler {
	return &BillHandler{service: service}
}

// Create registers a new bill. The attacher is always the token subject.
//
// @Summary      Create a bill
// @Tags         bills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      billRequest  true  "Bill details"
// @Success      201   {object}  billResponse
// @Failure      400   {object}  errorResponse
// @Router       /bills [post]
func (h *BillHandler) Create(c echo.Context) error {
	var req billRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	dateline, err := parseDateline(req.Dateline)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dateline must be YYYY-MM-DD")
	}

	subjectID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	bill, err := h.service.CreateBill(c.Request().Context(), ports.CreateBillInput{
		BillingHolder: req.BillingHolder,
		Phone:         req.Phone,
		Amount:        req.Amount,
		Status:        req.Status,
		Dateline:      dateline,
		AttacherID:    subjectID,
	})
	if err != nil {
		return err
	}

	metrics.BillsCreatedTotal.WithLabelValues(bill.Status).Inc()
	return c.JSON(http.StatusCreated, billResponse{Data: bill})
}

// List returns a filtered, paginated bill listing with dashboard totals.
//
// @Summary      List bills
// @Tags         bills
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "Paid or Unpaid"
// @Param        search  query  string  false  "substring over holder/phone/status"
// @Param        page    query  int     false  "page number"
// @Param        limit   query  int     false  "page size"
// @Success      200  {object}  billListResponse
// @Router       /bills [get]
func (h *BillHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListBills(c.Request().Context(), ports.BillFilter{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, billListResponse{
		Data:         result.Bills,
		Total:        result.Total,
		Page:         result.Page,
		Limit:        result.Limit,
		PaidAmount:   result.PaidAmount,
		UnpaidAmount: result.UnpaidAmount,
	})
}

// Get returns one bill by id.
//
// @Summary      Get a bill
// @Tags         bills
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "bill id"
// @Success      200  {object}  billResponse
// @Failure      404  {object}  errorResponse
// @Router       /bills/{id} [get]
func (h *BillHandler) Get(c echo.Context) error {
	bill, err := h.service.GetBill(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, billResponse{Data: bill})
}

// Update replaces the mutable fields of a bill.
//
// @Summary      Update a bill
// @Tags         bills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string       true  "bill id"
// @Param        body  body  billRequest  true  "Bill details"
// @Success      200  {object}  billResponse
// @Failure      404  {object}  errorResponse
// @Router       /bills/{id} [put]
func (h *BillHandler) Update(c echo.Context) error {
	var req billRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	dateline, err := parseDateline(req.Dateline)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dateline must be YYYY-MM-DD")
	}

	bill, err := h.service.UpdateBill(c.Request().Context(), ports.UpdateBillInput{
		ID:            c.Param("id"),
		BillingHolder: req.BillingHolder,
		Phone:         req.Phone,
		Amount:        req.Amount,
		Status:        req.Status,
		Dateline:      dateline,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, billResponse{Data: bill})
}

// Delete removes a bill.
//
// @Summary      Delete a bill
// @Tags         bills
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "bill id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /bills/{id} [delete]
func (h *BillHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteBill(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Bill deleted successfully."})
}
