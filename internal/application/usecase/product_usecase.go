package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/pricing"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock solo cambia por entradas y ventas,
// salvo la corrección manual del formulario de edición.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate(ctx, &in); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		CategoryID:    in.CategoryID,
		PurchasePrice: in.PurchasePrice,
		BottlePrice:   in.BottlePrice,
		GlassPrice:    in.GlassPrice,
		Stock:         in.Stock,
		Unit:          in.Unit,
		ContainerML:   in.ContainerML,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, product.ID)
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update reemplaza los datos del producto. Devuelve domain.ErrNotFound si no existe.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.validate(ctx, &in); err != nil {
		return nil, err
	}
	product.Name = in.Name
	product.CategoryID = in.CategoryID
	product.PurchasePrice = in.PurchasePrice
	product.BottlePrice = in.BottlePrice
	product.GlassPrice = in.GlassPrice
	product.Stock = in.Stock
	product.Unit = in.Unit
	product.ContainerML = in.ContainerML
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// List lista el catálogo ordenado por nombre.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// ListLowStock productos con stock <= threshold, de menor a mayor stock y luego por nombre.
func (uc *ProductUseCase) ListLowStock(ctx context.Context, threshold int) ([]dto.LowStockResponse, error) {
	if threshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListLowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.LowStockResponse{ID: p.ID, Name: p.Name, Category: p.CategoryLabel, Stock: p.Stock})
	}
	return items, nil
}

// Delete elimina un producto. Si tiene ventas o entradas el almacenamiento lo rechaza (ErrConflict).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if !domain.ValidID(id) {
		return domain.ErrInvalidInput
	}
	return uc.repo.Delete(ctx, id)
}

// validate normaliza y valida la entrada. Un producto vendido por copa necesita al menos
// una copa de referencia de contenido para que el margen por rendimiento esté definido.
func (uc *ProductUseCase) validate(ctx context.Context, in *dto.CreateProductRequest) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Unit == "" {
		in.Unit = entity.UnitBottle
	}
	if in.Name == "" || !domain.ValidID(in.CategoryID) || !entity.ValidUnit(in.Unit) {
		return domain.ErrInvalidInput
	}
	if in.Stock < 0 || in.ContainerML < 0 {
		return domain.ErrInvalidInput
	}
	for _, price := range []decimal.Decimal{in.PurchasePrice, in.BottlePrice, in.GlassPrice} {
		if price.IsNegative() {
			return domain.ErrInvalidInput
		}
	}
	if in.GlassPrice.IsPositive() {
		if _, err := pricing.GlassYield(in.ContainerML); err != nil {
			return domain.ErrInvalidInput
		}
	}
	category, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		CategoryID:    p.CategoryID,
		Category:      p.CategoryLabel,
		PurchasePrice: p.PurchasePrice,
		BottlePrice:   p.BottlePrice,
		GlassPrice:    p.GlassPrice,
		Stock:         p.Stock,
		Unit:          p.Unit,
		ContainerML:   p.ContainerML,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
