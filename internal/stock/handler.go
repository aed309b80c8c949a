package stock

import (
	"strconv"

	"envanter-backend/internal/auth"
	"envanter-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StockResponse struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	CategoryID        uint   `json:"category_id"`
	CategoryName      string `json:"category_name"`
	AvailableQuantity int64  `json:"available_quantity"`
	CanDelete         bool   `json:"can_delete"`
}

type CreateStockRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  uint   `json:"category_id"`
}

type AdjustStockRequest struct {
	Delta int64 `json:"delta"` // pozitif giriş, negatif çıkış
}

func toStockResponse(item *models.StockItem, canDelete bool) StockResponse {
	return StockResponse{
		ID:                item.ID,
		Name:              item.Name,
		Description:       item.Description,
		CategoryID:        item.CategoryID,
		CategoryName:      item.Category.Name,
		AvailableQuantity: item.AvailableQuantity,
		CanDelete:         canDelete,
	}
}

func parseStockID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz stok id")
	}
	return uint(id), nil
}

// GET /api/stocks (tüm authenticated kullanıcılar)
func ListStocksHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := svc.List(c.Context())
		if err != nil {
			return err
		}

		res := make([]StockResponse, 0, len(rows))
		for i := range rows {
			res = append(res, toStockResponse(&rows[i].Item, rows[i].CanDelete))
		}
		return c.JSON(fiber.Map{"stocks": res})
	}
}

// POST /api/stocks (sadece admin) — yeni stok 0 miktarla açılır
func CreateStockHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		item, err := svc.Create(c.Context(), body.Name, body.Description, body.CategoryID)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"stock": toStockResponse(item, true)})
	}
}

// PUT /api/stocks/:id/quantity (sadece admin) — işaretli manuel düzeltme
func AdjustStockHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := parseStockID(c)
		if err != nil {
			return err
		}

		var body AdjustStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		item, err := svc.Adjust(c.Context(), id, body.Delta, userID)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"stock": toStockResponse(item, false)})
	}
}

// DELETE /api/stocks/:id (sadece admin)
func DeleteStockHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseStockID(c)
		if err != nil {
			return err
		}

		if err := svc.Delete(c.Context(), id); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Stok silindi"})
	}
}
