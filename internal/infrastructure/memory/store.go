// Package memory implementa los puertos de persistencia en memoria, para el modo demo
// (STORE_DRIVER=memory) y para los tests del motor de ventas.
//
// Las transacciones trabajan sobre una copia del estado y la publican en el commit.
// Todas las escrituras, dentro o fuera de una transacción, se serializan con writeMu:
// eso equivale al bloqueo de fila de PostgreSQL con granularidad de tienda completa.
package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jhoicas/barstock-api/internal/application/inventory"
	"github.com/jhoicas/barstock-api/internal/application/sales"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)
var _ sales.TxRunner = (*Store)(nil)

// Store estado completo del bar en memoria.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	st      *state

	productCalls atomic.Int64
}

type saleRow struct {
	seq  int64
	sale entity.Sale
}

type entryRow struct {
	seq   int64
	entry entity.StockEntry
}

type state struct {
	seq        int64
	categories map[string]entity.Category
	products   map[string]entity.Product
	receipts   map[string]entity.Receipt
	sales      []saleRow
	charges    map[string]entity.Charge
	entries    []entryRow
}

func newState() *state {
	return &state{
		categories: map[string]entity.Category{},
		products:   map[string]entity.Product{},
		receipts:   map[string]entity.Receipt{},
		charges:    map[string]entity.Charge{},
	}
}

func (s *state) clone() *state {
	c := &state{
		seq:        s.seq,
		categories: make(map[string]entity.Category, len(s.categories)),
		products:   make(map[string]entity.Product, len(s.products)),
		receipts:   make(map[string]entity.Receipt, len(s.receipts)),
		sales:      append([]saleRow(nil), s.sales...),
		charges:    make(map[string]entity.Charge, len(s.charges)),
		entries:    append([]entryRow(nil), s.entries...),
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.receipts {
		c.receipts[k] = v
	}
	for k, v := range s.charges {
		c.charges[k] = v
	}
	return c
}

func (s *state) next() int64 {
	s.seq++
	return s.seq
}

// NewStore crea una tienda vacía (sin categorías).
func NewStore() *Store {
	return &Store{st: newState()}
}

// NewSeededStore crea una tienda con las categorías por defecto del bar.
func NewSeededStore() *Store {
	s := NewStore()
	for _, c := range DefaultCategories() {
		s.SeedCategory(c)
	}
	return s
}

// DefaultCategories las mismas categorías que carga la migración de PostgreSQL.
func DefaultCategories() []entity.Category {
	return []entity.Category{
		{ID: "6f1c1b7e-0001-4c1a-9a00-000000000001", Label: "Bières", Stockable: true},
		{ID: "6f1c1b7e-0002-4c1a-9a00-000000000002", Label: "Liqueurs", Stockable: true},
		{ID: "6f1c1b7e-0003-4c1a-9a00-000000000003", Label: "Vins", Stockable: true},
		{ID: "6f1c1b7e-0004-4c1a-9a00-000000000004", Label: "Sucreries", Stockable: true},
		{ID: "6f1c1b7e-0005-4c1a-9a00-000000000005", Label: "Cocktails", Stockable: false},
		{ID: "6f1c1b7e-0006-4c1a-9a00-000000000006", Label: "Cuisine", Stockable: false},
	}
}

// SeedCategory inserta o reemplaza una categoría.
func (s *Store) SeedCategory(c entity.Category) {
	_ = s.write(func(st *state) error {
		st.categories[c.ID] = c
		return nil
	})
}

// SeedProduct inserta o reemplaza un producto sin validar la categoría.
func (s *Store) SeedProduct(p entity.Product) {
	_ = s.write(func(st *state) error {
		st.products[p.ID] = p
		return nil
	})
}

// ProductCalls número de operaciones de repositorio sobre productos desde la creación.
func (s *Store) ProductCalls() int64 {
	return s.productCalls.Load()
}

// SaleCount número de líneas de venta guardadas.
func (s *Store) SaleCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.st.sales)
}

// ReceiptCount número de recibos guardados.
func (s *Store) ReceiptCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.st.receipts)
}

func (s *Store) read(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

func (s *Store) write(fn func(st *state) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// view es el punto de acceso de los repos: fuera de tx usa el estado publicado,
// dentro de tx la copia de trabajo (el llamador ya tiene writeMu).
type view struct {
	s  *Store
	tx *state
}

func (v view) read(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	return v.s.read(fn)
}

func (v view) write(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	return v.s.write(fn)
}

func (s *Store) inTx(ctx context.Context, fn func(v view) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w: %w", domain.ErrStoreFailure, err)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	work := s.st.clone()
	s.mu.RUnlock()

	if err := fn(view{s: s, tx: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: %w: %w", domain.ErrStoreFailure, err)
	}
	s.mu.Lock()
	s.st = work
	s.mu.Unlock()
	return nil
}

// Run transacción de entrada de stock.
func (s *Store) Run(ctx context.Context, fn func(
	entryRepo repository.StockEntryRepository,
	productRepo repository.ProductRepository,
) error) error {
	return s.inTx(ctx, func(v view) error {
		return fn(&StockEntryRepo{v: v}, &ProductRepo{v: v})
	})
}

// RunSales transacción de venta.
func (s *Store) RunSales(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	receiptRepo repository.ReceiptRepository,
) error) error {
	return s.inTx(ctx, func(v view) error {
		return fn(&ProductRepo{v: v}, &SaleRepo{v: v}, &ReceiptRepo{v: v})
	})
}

// Products, Categories, Receipts, Sales, Charges, StockEntries y Reports devuelven los
// repositorios fuera de transacción. Cada escritura toma writeMu por sí sola; para varias
// operaciones atómicas usar Run o RunSales.
func (s *Store) Products() *ProductRepo        { return &ProductRepo{v: view{s: s}} }
func (s *Store) Categories() *CategoryRepo     { return &CategoryRepo{v: view{s: s}} }
func (s *Store) Receipts() *ReceiptRepo        { return &ReceiptRepo{v: view{s: s}} }
func (s *Store) Sales() *SaleRepo              { return &SaleRepo{v: view{s: s}} }
func (s *Store) Charges() *ChargeRepo          { return &ChargeRepo{v: view{s: s}} }
func (s *Store) StockEntries() *StockEntryRepo { return &StockEntryRepo{v: view{s: s}} }
func (s *Store) Reports() *ReportRepo          { return &ReportRepo{v: view{s: s}} }

// conflict emula una violación de constraint del motor SQL.
func conflict(op, detail string) error {
	return fmt.Errorf("%s: %w: %w: %s", op, domain.ErrConflict, domain.ErrStoreFailure, detail)
}
