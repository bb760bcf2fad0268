package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/finbits/tips-service/internal/adapters/http/dto"
	"github.com/finbits/tips-service/internal/app"
	"github.com/finbits/tips-service/internal/domain"
)

// tipsCreated counts tips that were durably stored.
// Exposed through the /-/metrics endpoint.
var tipsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "tips_created_total",
	Help: "Total number of tips successfully stored.",
})

// TipHandler handles tip-related HTTP endpoints.
type TipHandler struct {
	service *app.TipService
}

// NewTipHandler creates a new tip handler.
func NewTipHandler(service *app.TipService) *TipHandler {
	return &TipHandler{
		service: service,
	}
}

// AddTipRequest is the request body for creating a tip.
type AddTipRequest struct {
	Tip string `json:"tip" validate:"required"`
}

// AddTipResponse confirms that a tip was stored.
// The id of the created tip is included for callers that want it;
// existing callers only rely on the message.
type AddTipResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}

// TipListResponse carries all stored tip texts in creation order.
type TipListResponse struct {
	Tips []string `json:"tips"`
}

// toTipListResponse converts domain tips to the HTTP response.
// An empty store marshals as an empty array, never null.
func toTipListResponse(tips []domain.Tip) TipListResponse {
	texts := make([]string, 0, len(tips))
	for _, tip := range tips {
		texts = append(texts, tip.Text)
	}

	return TipListResponse{Tips: texts}
}

// ListTips handles GET /tips
// Returns every stored tip text, oldest first.
//
// @Summary List all tips
// @Description Returns all stored tips in the order they were added
// @Tags tips
// @Produce json
// @Success 200 {object} TipListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tips [get]
func (h *TipHandler) ListTips(c *gin.Context) {
	tips, err := h.service.ListTips(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTipListResponse(tips))
}

// AddTip handles POST /tips
// Validates the request body and durably stores a new tip.
//
// @Summary Add a tip
// @Description Stores a new financial tip
// @Tags tips
// @Accept json
// @Produce json
// @Param tip body AddTipRequest true "Tip to store"
// @Success 201 {object} AddTipResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tips [post]
func (h *TipHandler) AddTip(c *gin.Context) {
	var req AddTipRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindingError(c, err)
		return
	}

	tip, err := h.service.AddTip(c.Request.Context(), req.Tip)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	tipsCreated.Inc()

	c.JSON(http.StatusCreated, AddTipResponse{
		Message: "Tip added!",
		ID:      tip.ID,
	})
}

// RegisterTipRoutes registers tip routes on the given router group.
func (h *TipHandler) RegisterTipRoutes(rg *gin.RouterGroup) {
	tips := rg.Group("/tips")
	tips.GET("", h.ListTips)
	tips.POST("", h.AddTip)
}
