package inventory

import (
	"context"

	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP a RegisterMovement.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.CreateStockMovementRequest) (*dto.StockMovementResponse, error) {
	date, err := dto.ParseDate("date", in.Date, false)
	if err != nil {
		return nil, err
	}
	mov, err := uc.RegisterMovement(ctx, MovementInput{
		UserID:    userID,
		ItemID:    in.ItemID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Reason:    in.Reason,
		Reference: in.Reference,
		Date:      date,
	})
	if err != nil {
		return nil, err
	}
	out := ToMovementResponse(mov)
	return &out, nil
}

// ToMovementResponse mapea una fila del libro a su DTO.
func ToMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:           m.ID,
		ItemID:       m.ItemID,
		Type:         m.Type,
		Quantity:     m.Quantity,
		BalanceAfter: m.BalanceAfter,
		UnitCost:     m.UnitCost,
		Reason:       m.Reason,
		Reference:    m.Reference,
		Date:         dto.FormatDate(m.Date),
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}
