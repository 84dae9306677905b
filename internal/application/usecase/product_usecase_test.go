package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	testOwner    = "00000000-0000-0000-0000-00000000000a"
	otherOwner   = "00000000-0000-0000-0000-00000000000b"
	testCategory = "00000000-0000-0000-0000-0000000000c1"
)

type memMovementRepo struct {
	movements []*entity.StockMovement
	createErr error
}

func (f *memMovementRepo) Create(m *entity.StockMovement) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.movements = append(f.movements, m)
	return nil
}

func (f *memMovementRepo) ListByProduct(productID, ownerID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.movements {
		if m.ProductID == productID && m.CreatedBy == ownerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *memMovementRepo) ListByOwner(ownerID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.movements {
		if m.CreatedBy == ownerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *memMovementRepo) List(ownerID string, _ repository.MovementFilter) ([]*repository.MovementWithRefs, error) {
	var out []*repository.MovementWithRefs
	for _, m := range f.movements {
		if m.CreatedBy == ownerID {
			out = append(out, &repository.MovementWithRefs{StockMovement: *m})
		}
	}
	return out, nil
}

func (f *memMovementRepo) Delete(id, ownerID string) error {
	for i, m := range f.movements {
		if m.ID == id && m.CreatedBy == ownerID {
			f.movements = append(f.movements[:i], f.movements[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *memMovementRepo) DeleteByProduct(productID string) error {
	kept := f.movements[:0]
	for _, m := range f.movements {
		if m.ProductID != productID {
			kept = append(kept, m)
		}
	}
	f.movements = kept
	return nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func (f *memProductRepo) Create(p *entity.Product) error {
	for _, existing := range f.products {
		if existing.SKU == p.SKU && existing.CreatedBy == p.CreatedBy {
			return domain.ErrDuplicate
		}
	}
	f.products[p.ID] = p
	return nil
}

func (f *memProductRepo) GetByID(id, ownerID string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok || p.CreatedBy != ownerID {
		return nil, nil
	}
	return p, nil
}

func (f *memProductRepo) List(ownerID string, _ repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if p.CreatedBy == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *memProductRepo) Update(p *entity.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	f.products[p.ID] = p
	return nil
}

func (f *memProductRepo) SetImageURL(id, ownerID, imageURL string) error {
	p, _ := f.GetByID(id, ownerID)
	if p == nil {
		return domain.ErrNotFound
	}
	p.ImageURL = imageURL
	return nil
}

func (f *memProductRepo) CountByCategory(categoryID, ownerID string) (int, error) {
	n := 0
	for _, p := range f.products {
		if p.CategoryID == categoryID && p.CreatedBy == ownerID {
			n++
		}
	}
	return n, nil
}

func (f *memProductRepo) Delete(id, ownerID string) error {
	p, _ := f.GetByID(id, ownerID)
	if p == nil {
		return domain.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

type memCategoryRepo struct {
	categories map[string]*entity.Category
}

func (f *memCategoryRepo) Create(c *entity.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *memCategoryRepo) GetByID(id, ownerID string) (*entity.Category, error) {
	c, ok := f.categories[id]
	if !ok || c.CreatedBy != ownerID {
		return nil, nil
	}
	return c, nil
}

func (f *memCategoryRepo) List(ownerID string, _ repository.CategoryFilter) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.categories {
		if c.CreatedBy == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *memCategoryRepo) Update(c *entity.Category) error {
	if _, ok := f.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	f.categories[c.ID] = c
	return nil
}

func (f *memCategoryRepo) Delete(id, ownerID string) error {
	c, _ := f.GetByID(id, ownerID)
	if c == nil {
		return domain.ErrNotFound
	}
	delete(f.categories, id)
	return nil
}

// memTxRunner ejecuta el callback sobre los mismos repos en memoria: si el
// callback falla, el test verifica el estado para asegurar la atomicidad
// observable del caso de uso.
type memTxRunner struct {
	movements *memMovementRepo
	products  *memProductRepo
}

func (r *memTxRunner) Run(_ context.Context, fn func(repository.StockMovementRepository, repository.ProductRepository) error) error {
	return fn(r.movements, r.products)
}

type fixture struct {
	productUC  *usecase.ProductUseCase
	categoryUC *usecase.CategoryUseCase
	movements  *memMovementRepo
	products   *memProductRepo
	categories *memCategoryRepo
}

func newFixture() *fixture {
	movements := &memMovementRepo{}
	products := &memProductRepo{products: map[string]*entity.Product{}}
	categories := &memCategoryRepo{categories: map[string]*entity.Category{
		testCategory: {ID: testCategory, Name: "Ferretería", CreatedBy: testOwner},
	}}
	tx := &memTxRunner{movements: movements, products: products}
	return &fixture{
		productUC:  usecase.NewProductUseCase(products, categories, movements, tx),
		categoryUC: usecase.NewCategoryUseCase(categories, products),
		movements:  movements,
		products:   products,
		categories: categories,
	}
}

func createRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:       "Tornillo 3mm",
		SKU:        "tor-3mm",
		Price:      decimal.NewFromFloat(150.50),
		MinStock:   10,
		CategoryID: testCategory,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_SinStockInicial(t *testing.T) {
	fx := newFixture()

	out, err := fx.productUC.Create(testOwner, createRequest())
	require.NoError(t, err)

	assert.Empty(t, out.Warning)
	assert.Equal(t, 0, out.CurrentStock)
	assert.Equal(t, "TOR-3MM", out.SKU, "el SKU debe normalizarse a mayúsculas")
	assert.Empty(t, fx.movements.movements, "sin stock inicial no debe haber movimientos")
}

func TestProductCreate_StockInicialGeneraMovimientoIN(t *testing.T) {
	fx := newFixture()

	in := createRequest()
	in.InitialStock = 5
	out, err := fx.productUC.Create(testOwner, in)
	require.NoError(t, err)

	assert.Empty(t, out.Warning)
	assert.Equal(t, 5, out.CurrentStock)

	require.Len(t, fx.movements.movements, 1)
	mov := fx.movements.movements[0]
	assert.Equal(t, entity.MovementTypeIn, mov.Type)
	assert.Equal(t, 5, mov.Quantity)
	assert.Equal(t, "Stock inicial", mov.Notes)
	assert.Equal(t, out.ID, mov.ProductID)
}

// El fallo del insert del movimiento inicial no revierte el producto: la
// respuesta es exitosa pero con warning, nunca un fallo silencioso.
func TestProductCreate_FalloDeStockInicial_DevuelveWarning(t *testing.T) {
	fx := newFixture()
	fx.movements.createErr = errors.New("conexión perdida")

	in := createRequest()
	in.InitialStock = 5
	out, err := fx.productUC.Create(testOwner, in)
	require.NoError(t, err, "el producto debe quedar creado aunque falle el movimiento")

	assert.Equal(t, usecase.WarningInitialStock, out.Warning)
	assert.Equal(t, 0, out.CurrentStock, "sin movimiento persistido el stock derivado es 0")

	p, _ := fx.products.GetByID(out.ID, testOwner)
	assert.NotNil(t, p, "el producto debe existir")
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	fx := newFixture()

	in := createRequest()
	in.CategoryID = "00000000-0000-0000-0000-0000000000ff"
	_, err := fx.productUC.Create(testOwner, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductCreate_ValoresNegativos(t *testing.T) {
	fx := newFixture()

	in := createRequest()
	in.InitialStock = -1
	_, err := fx.productUC.Create(testOwner, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = createRequest()
	in.Price = decimal.NewFromInt(-10)
	_, err = fx.productUC.Create(testOwner, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	fx := newFixture()

	_, err := fx.productUC.Create(testOwner, createRequest())
	require.NoError(t, err)

	_, err = fx.productUC.Create(testOwner, createRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// List — filtro minStock below/above sobre el stock derivado
// ──────────────────────────────────────────────────────────────────────────────

func TestProductList_FiltroMinStock(t *testing.T) {
	fx := newFixture()

	// Tres productos con minStock 10: stock 5 (debajo), 10 (no debajo), 20.
	for _, tc := range []struct {
		sku   string
		stock int
	}{
		{"SKU-A", 5},
		{"SKU-B", 10},
		{"SKU-C", 20},
	} {
		in := createRequest()
		in.SKU = tc.sku
		in.InitialStock = tc.stock
		_, err := fx.productUC.Create(testOwner, in)
		require.NoError(t, err)
	}

	below, err := fx.productUC.List(testOwner, dto.ListProductsRequest{MinStock: "below"})
	require.NoError(t, err)
	require.Len(t, below.Items, 1, "solo stock 5 está por debajo del mínimo 10")
	assert.Equal(t, "SKU-A", below.Items[0].SKU)
	assert.Equal(t, 5, below.Items[0].CurrentStock)

	above, err := fx.productUC.List(testOwner, dto.ListProductsRequest{MinStock: "above"})
	require.NoError(t, err)
	assert.Len(t, above.Items, 2, "stock igual al mínimo no cuenta como below")

	all, err := fx.productUC.List(testOwner, dto.ListProductsRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
}

func TestProductList_NoMezclaPropietarios(t *testing.T) {
	fx := newFixture()

	_, err := fx.productUC.Create(testOwner, createRequest())
	require.NoError(t, err)

	out, err := fx.productUC.List(otherOwner, dto.ListProductsRequest{})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete — producto y movimientos caen juntos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductDelete_EliminaMovimientos(t *testing.T) {
	fx := newFixture()

	in := createRequest()
	in.InitialStock = 7
	out, err := fx.productUC.Create(testOwner, in)
	require.NoError(t, err)
	require.Len(t, fx.movements.movements, 1)

	require.NoError(t, fx.productUC.Delete(context.Background(), out.ID, testOwner))

	p, _ := fx.products.GetByID(out.ID, testOwner)
	assert.Nil(t, p, "el producto debe quedar eliminado")
	assert.Empty(t, fx.movements.movements, "sus movimientos deben caer con él")
}

func TestProductDelete_Inexistente(t *testing.T) {
	fx := newFixture()

	err := fx.productUC.Delete(context.Background(), "00000000-0000-0000-0000-0000000000ff", testOwner)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductDelete_DeOtroPropietario(t *testing.T) {
	fx := newFixture()

	in := createRequest()
	in.InitialStock = 3
	out, err := fx.productUC.Create(testOwner, in)
	require.NoError(t, err)

	err = fx.productUC.Delete(context.Background(), out.ID, otherOwner)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, _ := fx.products.GetByID(out.ID, testOwner)
	assert.NotNil(t, p, "el producto del propietario debe seguir existiendo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryDelete_ConProductos_Conflicto(t *testing.T) {
	fx := newFixture()

	_, err := fx.productUC.Create(testOwner, createRequest())
	require.NoError(t, err)

	err = fx.categoryUC.Delete(testCategory, testOwner)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCategoryDelete_SinProductos(t *testing.T) {
	fx := newFixture()

	require.NoError(t, fx.categoryUC.Delete(testCategory, testOwner))

	c, _ := fx.categories.GetByID(testCategory, testOwner)
	assert.Nil(t, c)
}

func TestCategoryUpdate_Inexistente(t *testing.T) {
	fx := newFixture()

	_, err := fx.categoryUC.Update("00000000-0000-0000-0000-0000000000ff", testOwner, dto.UpdateCategoryRequest{Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
