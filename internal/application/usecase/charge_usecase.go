package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

// ChargeUseCase CRUD de gastos.
type ChargeUseCase struct {
	repo repository.ChargeRepository
}

// NewChargeUseCase construye el caso de uso.
func NewChargeUseCase(repo repository.ChargeRepository) *ChargeUseCase {
	return &ChargeUseCase{repo: repo}
}

// Create registra un gasto.
func (uc *ChargeUseCase) Create(ctx context.Context, in dto.ChargeRequest) (*dto.ChargeResponse, error) {
	charge, err := toCharge(in)
	if err != nil {
		return nil, err
	}
	charge.ID = uuid.New().String()
	if err := uc.repo.Create(ctx, charge); err != nil {
		return nil, err
	}
	return toChargeResponse(charge), nil
}

// GetByID obtiene un gasto; (nil, nil) si no existe.
func (uc *ChargeUseCase) GetByID(ctx context.Context, id string) (*dto.ChargeResponse, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrInvalidInput
	}
	charge, err := uc.repo.GetByID(ctx, id)
	if err != nil || charge == nil {
		return nil, err
	}
	return toChargeResponse(charge), nil
}

// Update reemplaza tipo, monto y fecha. domain.ErrNotFound si no existe.
func (uc *ChargeUseCase) Update(ctx context.Context, id string, in dto.ChargeRequest) (*dto.ChargeResponse, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrInvalidInput
	}
	charge, err := toCharge(in)
	if err != nil {
		return nil, err
	}
	charge.ID = id
	if err := uc.repo.Update(ctx, charge); err != nil {
		return nil, err
	}
	return toChargeResponse(charge), nil
}

// Delete elimina un gasto. domain.ErrNotFound si no existe.
func (uc *ChargeUseCase) Delete(ctx context.Context, id string) error {
	if !domain.ValidID(id) {
		return domain.ErrInvalidInput
	}
	return uc.repo.Delete(ctx, id)
}

// List lista gastos del período (extremos opcionales e inclusivos), los más recientes primero.
func (uc *ChargeUseCase) List(ctx context.Context, start, end *time.Time) ([]dto.ChargeResponse, error) {
	if start != nil && end != nil && end.Before(*start) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ChargeResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toChargeResponse(c))
	}
	return out, nil
}

func toCharge(in dto.ChargeRequest) (*entity.Charge, error) {
	typ := strings.TrimSpace(in.Type)
	if typ == "" || in.Amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	date, err := dto.ParseDate(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &entity.Charge{Type: typ, Amount: in.Amount.Round(2), Date: date}, nil
}

func toChargeResponse(c *entity.Charge) *dto.ChargeResponse {
	return &dto.ChargeResponse{ID: c.ID, Type: c.Type, Amount: c.Amount, Date: dto.FormatDate(c.Date)}
}
