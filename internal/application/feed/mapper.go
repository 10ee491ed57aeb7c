package feed

import (
	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/fcr"
	"github.com/jhoicas/Granja-api/internal/domain/inventory"
)

func toItemResponse(it *entity.FeedInventoryItem) *dto.FeedInventoryResponse {
	return &dto.FeedInventoryResponse{
		ID:              it.ID,
		FeedType:        it.FeedType,
		Brand:           it.Brand,
		SupplierID:      it.SupplierID,
		CurrentStock:    it.CurrentStock,
		ReorderLevel:    it.ReorderLevel,
		UnitCost:        it.UnitCost,
		StockValue:      it.CurrentStock.Mul(it.UnitCost),
		LowStock:        inventory.IsLowStock(it.CurrentStock, it.ReorderLevel),
		LastRestockDate: dto.FormatOptionalDate(it.LastRestockDate),
		Notes:           it.Notes,
		CreatedAt:       it.CreatedAt,
		UpdatedAt:       it.UpdatedAt,
	}
}

func toPurchaseResponse(p *entity.FeedPurchase) *dto.FeedPurchaseResponse {
	return &dto.FeedPurchaseResponse{
		ID:            p.ID,
		InventoryID:   p.InventoryID,
		SupplierID:    p.SupplierID,
		PurchaseDate:  dto.FormatDate(p.PurchaseDate),
		Quantity:      p.Quantity,
		PricePerBag:   p.PricePerBag,
		TotalCost:     p.TotalCost,
		InvoiceNumber: p.InvoiceNumber,
		PaymentStatus: p.PaymentStatus,
		Notes:         p.Notes,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toConsumptionResponse(c *entity.FeedConsumption) *dto.FeedConsumptionResponse {
	return &dto.FeedConsumptionResponse{
		ID:           c.ID,
		InventoryID:  c.InventoryID,
		FlockID:      c.FlockID,
		BatchID:      c.BatchID,
		Date:         dto.FormatDate(c.Date),
		QuantityBags: c.QuantityBags,
		QuantityKg:   c.QuantityBags.Mul(fcr.BagWeightKg),
		UnitCost:     c.UnitCost,
		TotalCost:    c.Cost(),
		Notes:        c.Notes,
		CreatedBy:    c.CreatedBy,
		CreatedAt:    c.CreatedAt,
	}
}
