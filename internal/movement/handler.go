package movement

import (
	"strconv"
	"time"

	"envanter-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type MovementResponse struct {
	ID        uint      `json:"id"`
	StockID   uint      `json:"stock_id"`
	StockName string    `json:"stock_name"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	UserID    uint      `json:"user_id"`
	UserName  string    `json:"user_name"`
	OrderID   *uint     `json:"order_id"`
	CreatedAt time.Time `json:"created_at"`
}

func ToResponse(m *models.Movement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		StockID:   m.StockItemID,
		StockName: m.StockItem.Name,
		Type:      string(m.Type),
		Quantity:  m.Quantity,
		UserID:    m.UserID,
		UserName:  m.User.Name,
		OrderID:   m.OrderID,
		CreatedAt: m.CreatedAt,
	}
}

// GET /api/movements?stock_id=&limit= (sadece admin)
func ListMovementsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stockID *uint
		if s := c.Query("stock_id"); s != "" {
			id, err := strconv.ParseUint(s, 10, 32)
			if err != nil || id == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz stock_id")
			}
			v := uint(id)
			stockID = &v
		}

		limit, _ := strconv.Atoi(c.Query("limit", "100"))

		movs, err := svc.List(c.Context(), stockID, limit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareketler listelenemedi")
		}

		res := make([]MovementResponse, 0, len(movs))
		for i := range movs {
			res = append(res, ToResponse(&movs[i]))
		}
		return c.JSON(fiber.Map{"movements": res})
	}
}
