package dashboard

import (
	"time"

	"envanter-backend/internal/movement"

	"github.com/gofiber/fiber/v2"
)

type OrderSummary struct {
	ID          uint      `json:"id"`
	UserName    string    `json:"user_name"`
	Status      uint      `json:"status"`
	StatusLabel string    `json:"status_label"`
	CreatedAt   time.Time `json:"created_at"`
}

// GET /api/dashboard
func SummaryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := svc.Summary(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dashboard verisi toplanamadı")
		}

		lastMovements := make([]movement.MovementResponse, 0, len(data.LastMovements))
		for i := range data.LastMovements {
			lastMovements = append(lastMovements, movement.ToResponse(&data.LastMovements[i]))
		}

		lastOrders := make([]OrderSummary, 0, len(data.LastOrders))
		for _, o := range data.LastOrders {
			lastOrders = append(lastOrders, OrderSummary{
				ID:          o.ID,
				UserName:    o.User.Name,
				Status:      uint(o.Status),
				StatusLabel: o.Status.Label(),
				CreatedAt:   o.CreatedAt,
			})
		}

		return c.JSON(fiber.Map{
			"stock_by_category": data.StockByCategory,
			"orders_by_day":     data.OrdersByDay,
			"last_movements":    lastMovements,
			"last_orders":       lastOrders,
		})
	}
}
