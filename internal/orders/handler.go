package orders

import (
	"strconv"
	"time"

	"envanter-backend/internal/auth"
	"envanter-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type OrderLineResponse struct {
	StockID           uint   `json:"stock_id"`
	StockName         string `json:"stock_name"`
	StockDescription  string `json:"stock_description"`
	AvailableQuantity int64  `json:"available_quantity"` // okuma anındaki stok
	Quantity          int64  `json:"quantity"`
}

type OrderResponse struct {
	ID          uint                `json:"id"`
	UserID      uint                `json:"user_id"`
	UserName    string              `json:"user_name"`
	Status      uint                `json:"status"`
	StatusLabel string              `json:"status_label"`
	CreatedAt   time.Time           `json:"created_at"`
	Lines       []OrderLineResponse `json:"lines"`
}

type CreateOrderRequest struct {
	Lines []Line `json:"lines"`
}

type UpdateStatusRequest struct {
	NewStatus uint `json:"new_status"`
}

type ModifyLinesRequest struct {
	Lines []Line `json:"lines"`
}

type StatusResponse struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
}

func toOrderResponse(o *models.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, OrderLineResponse{
			StockID:           l.StockItemID,
			StockName:         l.StockItem.Name,
			StockDescription:  l.StockItem.Description,
			AvailableQuantity: l.StockItem.AvailableQuantity,
			Quantity:          l.Quantity,
		})
	}
	return OrderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		UserName:    o.User.Name,
		Status:      uint(o.Status),
		StatusLabel: o.Status.Label(),
		CreatedAt:   o.CreatedAt,
		Lines:       lines,
	}
}

func parseOrderID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz sipariş id")
	}
	return uint(id), nil
}

// GET /api/orders — admin tüm siparişleri, kullanıcı kendininkileri görür
func ListOrdersHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, role, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var filter *uint
		if role != models.RoleAdmin {
			filter = &userID
		}

		list, err := svc.List(c.Context(), filter)
		if err != nil {
			return err
		}

		res := make([]OrderResponse, 0, len(list))
		for i := range list {
			res = append(res, toOrderResponse(&list[i]))
		}
		return c.JSON(fiber.Map{"orders": res})
	}
}

// POST /api/orders
func CreateOrderHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		order, err := svc.Create(c.Context(), userID, body.Lines)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order": toOrderResponse(order)})
	}
}

// GET /api/orders/statuses — sabit durum kümesi (id + etiket)
func ListStatusesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		statuses := models.Statuses()
		res := make([]StatusResponse, 0, len(statuses))
		for _, s := range statuses {
			res = append(res, StatusResponse{ID: uint(s), Label: s.Label()})
		}
		return c.JSON(fiber.Map{"statuses": res})
	}
}

// GET /api/orders/:id
func GetOrderHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, role, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := parseOrderID(c)
		if err != nil {
			return err
		}

		order, err := svc.Get(c.Context(), id)
		if err != nil {
			return err
		}
		if !CanView(order, userID, role) {
			return fiber.NewError(fiber.StatusForbidden, "Bu siparişi görme yetkiniz yok")
		}
		return c.JSON(fiber.Map{"order": toOrderResponse(order)})
	}
}

// PUT /api/orders/:id/status
func UpdateStatusHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, role, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := parseOrderID(c)
		if err != nil {
			return err
		}

		var body UpdateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		target := models.OrderStatus(body.NewStatus)
		if !target.Valid() || target == models.StatusPending {
			return fiber.NewError(fiber.StatusBadRequest, "Yeni durum geçersiz")
		}

		order, err := svc.Get(c.Context(), id)
		if err != nil {
			return err
		}
		if !CanRequestStatus(order, target, userID, role) {
			return fiber.NewError(fiber.StatusForbidden, "Bu durum değişikliği için yetkiniz yok")
		}

		updated, err := svc.AdvanceStatus(c.Context(), id, target, userID)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"order": toOrderResponse(updated)})
	}
}

// PATCH /api/orders/:id/lines
func ModifyLinesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, role, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := parseOrderID(c)
		if err != nil {
			return err
		}

		var body ModifyLinesRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		order, err := svc.Get(c.Context(), id)
		if err != nil {
			return err
		}
		if !CanModify(order, userID, role) {
			return fiber.NewError(fiber.StatusForbidden, "Bu siparişi düzenleme yetkiniz yok")
		}

		updated, err := svc.ModifyLines(c.Context(), id, body.Lines, userID)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"order": toOrderResponse(updated)})
	}
}
