package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)
var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// ProductRepo productos en memoria. Cada llamada incrementa Store.ProductCalls.
type ProductRepo struct {
	v view
}

func (r *ProductRepo) touch() { r.v.s.productCalls.Add(1) }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.touch()
	return r.v.write(func(st *state) error {
		if _, ok := st.categories[p.CategoryID]; !ok {
			return conflict("insert product", "categoría inexistente")
		}
		if _, ok := st.products[p.ID]; ok {
			return conflict("insert product", "id duplicado")
		}
		if p.Stock < 0 {
			return conflict("insert product", "stock negativo")
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.touch()
	var out *entity.Product
	err := r.v.read(func(st *state) error {
		out = st.product(id)
		return nil
	})
	return out, err
}

// GetForUpdate igual que GetByID, sin bloqueo propio. La exclusión depende de que inTx
// mantenga writeMu, global a toda la tienda, durante la transacción completa; si writeMu
// pasara a ser por producto, este método debe bloquear la fila por su cuenta.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.touch()
	return r.v.write(func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := st.categories[p.CategoryID]; !ok {
			return conflict("update product", "categoría inexistente")
		}
		if p.Stock < 0 {
			return conflict("update product", "stock negativo")
		}
		stored := *p
		stored.CategoryLabel = ""
		st.products[p.ID] = stored
		return nil
	})
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.touch()
	return r.v.write(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		for _, row := range st.sales {
			if row.sale.ProductID == id {
				return conflict("delete product", "producto con ventas")
			}
		}
		for _, row := range st.entries {
			if row.entry.ProductID == id {
				return conflict("delete product", "producto con entradas de stock")
			}
		}
		delete(st.products, id)
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.touch()
	var list []*entity.Product
	err := r.v.read(func(st *state) error {
		for id := range st.products {
			list = append(list, st.product(id))
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, err
}

func (r *ProductRepo) ListLowStock(_ context.Context, threshold int) ([]*entity.Product, error) {
	r.touch()
	var list []*entity.Product
	err := r.v.read(func(st *state) error {
		for id, p := range st.products {
			if p.Stock <= threshold {
				list = append(list, st.product(id))
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].Stock != list[j].Stock {
			return list[i].Stock < list[j].Stock
		}
		return list[i].Name < list[j].Name
	})
	return list, err
}

func (r *ProductRepo) DecrementStock(_ context.Context, id string, quantity int) error {
	r.touch()
	return r.v.write(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		if p.Stock-quantity < 0 {
			return conflict("decrement stock", "stock negativo")
		}
		p.Stock -= quantity
		st.products[id] = p
		return nil
	})
}

func (r *ProductRepo) ApplyStockEntry(_ context.Context, id string, quantity int, purchasePrice, salePrice decimal.Decimal, unit string) error {
	r.touch()
	return r.v.write(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.Stock += quantity
		p.PurchasePrice = purchasePrice
		if unit == entity.UnitGlass {
			p.GlassPrice = salePrice
		} else {
			p.BottlePrice = salePrice
		}
		p.Unit = unit
		st.products[id] = p
		return nil
	})
}

// product devuelve una copia con la etiqueta de categoría resuelta; nil si no existe.
func (st *state) product(id string) *entity.Product {
	p, ok := st.products[id]
	if !ok {
		return nil
	}
	p.CategoryLabel = st.categories[p.CategoryID].Label
	return &p
}

// CategoryRepo categorías en memoria.
type CategoryRepo struct {
	v view
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.v.read(func(st *state) error {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) List(_ context.Context, stockable *bool) ([]*entity.Category, error) {
	var list []*entity.Category
	err := r.v.read(func(st *state) error {
		for _, c := range st.categories {
			if stockable != nil && c.Stockable != *stockable {
				continue
			}
			c := c
			list = append(list, &c)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Label < list[j].Label })
	return list, err
}
