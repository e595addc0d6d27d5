package api

import (
	"context"
	"errors"
	"net/http"

	"coursemarket-be/internal/client"
	"coursemarket-be/internal/logger"
	"coursemarket-be/internal/order"
	"coursemarket-be/internal/payment"
	"coursemarket-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserLookup resolves a user record when the token does not carry an email.
type UserLookup interface {
	GetUser(ctx context.Context, id string) (*client.User, error)
}

type Handler struct {
	service order.Service
	users   UserLookup
}

func NewHandler(service order.Service, users UserLookup) *Handler {
	return &Handler{service: service, users: users}
}

type createOrderRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
}

type complexOrderItemRequest struct {
	CourseID string   `json:"courseId"`
	Price    *float64 `json:"price"`
	Discount float64  `json:"discount"`
}

type complexOrderRequest struct {
	Amount         float64                   `json:"amount"`
	PaymentMethod  string                    `json:"paymentMethod" binding:"required"`
	Tax            *float64                  `json:"tax"`
	Discount       *float64                  `json:"discount"`
	Currency       *string                   `json:"currency"`
	PaymentGateway *string                   `json:"paymentGateway"`
	Items          []complexOrderItemRequest `json:"items"`
}

type refundRequest struct {
	Amount *float64 `json:"amount"`
}

// identity pulls the caller's id and email out of the request context,
// falling back to the user service when the token had no email claim.
func (h *Handler) identity(c *gin.Context) (userID, email string, ok bool) {
	ctx := c.Request.Context()

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return "", "", false
	}

	email = utils.GetUserEmailFromContext(ctx)
	if email == "" && h.users != nil {
		user, err := h.users.GetUser(ctx, userID)
		if err != nil {
			logger.FromCtx(ctx).Warn("failed to resolve user email",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		} else {
			email = user.Email
		}
	}

	return userID, email, true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrNotPending), errors.Is(err, order.ErrNotRefundable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, payment.ErrUnsupportedGateway),
		errors.Is(err, order.ErrItemPriceMissing),
		errors.Is(err, client.ErrCourseNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.FromCtx(c.Request.Context()).Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *Handler) CreateOrder(c *gin.Context) {
	userID, email, ok := h.identity(c)
	if !ok {
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.service.CreateSimpleOrder(c.Request.Context(), userID, email, req.Amount, req.PaymentMethod)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, o)
}

func (h *Handler) CreateComplexOrder(c *gin.Context) {
	userID, email, ok := h.identity(c)
	if !ok {
		return
	}

	var req complexOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := &order.ComplexOrderOptions{
		Tax:      req.Tax,
		Discount: req.Discount,
		Currency: req.Currency,
	}
	if req.PaymentGateway != nil {
		gateway := payment.Gateway(*req.PaymentGateway)
		opts.PaymentGateway = &gateway
	}
	for _, item := range req.Items {
		opts.Items = append(opts.Items, order.ComplexOrderItemInput{
			CourseID: item.CourseID,
			Price:    item.Price,
			Discount: item.Discount,
		})
	}

	o, err := h.service.CreateComplexOrder(c.Request.Context(), userID, email, req.Amount, req.PaymentMethod, opts)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, o)
}

func (h *Handler) GetOrder(c *gin.Context) {
	if _, _, ok := h.identity(c); !ok {
		return
	}

	o, err := h.service.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *Handler) GetOrderByNumber(c *gin.Context) {
	if _, _, ok := h.identity(c); !ok {
		return
	}

	o, err := h.service.GetOrderByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *Handler) GetStudentOrders(c *gin.Context) {
	if _, _, ok := h.identity(c); !ok {
		return
	}

	orders, err := h.service.GetStudentOrders(c.Request.Context(), c.Param("userID"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetStatistics scopes non-admin callers to their own orders. Admins see the
// whole platform unless they pass userId.
func (h *Handler) GetStatistics(c *gin.Context) {
	userID, _, ok := h.identity(c)
	if !ok {
		return
	}

	var scope *string
	if utils.GetUserRoleFromContext(c.Request.Context()) == "admin" {
		if q := c.Query("userId"); q != "" {
			scope = &q
		}
	} else {
		scope = &userID
	}

	stats, err := h.service.GetOrderStatistics(c.Request.Context(), scope)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) CancelOrder(c *gin.Context) {
	_, email, ok := h.identity(c)
	if !ok {
		return
	}

	o, err := h.service.CancelOrder(c.Request.Context(), c.Param("id"), email)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *Handler) RefundOrder(c *gin.Context) {
	_, email, ok := h.identity(c)
	if !ok {
		return
	}

	// an empty body means a full refund
	var req refundRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	o, err := h.service.RefundOrder(c.Request.Context(), email, c.Param("id"), req.Amount)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}
