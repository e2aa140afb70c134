package inventory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybodega/productos-api/internal/application/inventory"
	"github.com/mybodega/productos-api/internal/domain"
	"github.com/mybodega/productos-api/internal/domain/entity"
	"github.com/mybodega/productos-api/internal/domain/repository"
	"github.com/mybodega/productos-api/internal/infrastructure/memory"
)

// newEngine construye el motor sobre repositorios en memoria y devuelve
// también los repos para inspeccionar el estado final.
func newEngine() (*inventory.UseCase, *memory.ProductRepo, *memory.MovementRepo) {
	productRepo := memory.NewProductRepository()
	movRepo := memory.NewMovementRepository()
	uc := inventory.NewUseCase(memory.NewTxRunner(productRepo, movRepo))
	return uc, productRepo, movRepo
}

func createInput(name string, qty int) inventory.CreateProductInput {
	return inventory.CreateProductInput{
		Name:     name,
		Category: "Alimentos",
		Quantity: qty,
		Location: "Bodega A",
	}
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// CreateProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_RegistraMovimientoAgregar(t *testing.T) {
	uc, _, movRepo := newEngine()

	product, err := uc.CreateProduct(context.Background(), createInput("Arroz", 10))
	require.NoError(t, err)
	require.NotEmpty(t, product.ID)
	assert.Equal(t, 10, product.Quantity)

	movements, err := movRepo.List()
	require.NoError(t, err)
	require.Len(t, movements, 1, "crear debe registrar exactamente un movimiento")

	mov := movements[0]
	assert.Equal(t, entity.MovementTypeCreate, mov.Type)
	assert.Equal(t, "Arroz", mov.ProductName)
	require.NotNil(t, mov.ProductID)
	assert.Equal(t, product.ID, *mov.ProductID)
	require.NotNil(t, mov.QuantityBefore)
	require.NotNil(t, mov.QuantityAfter)
	assert.Equal(t, 0, *mov.QuantityBefore)
	assert.Equal(t, 10, *mov.QuantityAfter)
	require.NotNil(t, mov.Details)
	assert.Equal(t, "Producto creado con 10 unidades", *mov.Details)
}

func TestCreateProduct_NombreDuplicado_NoRegistraMovimiento(t *testing.T) {
	uc, _, movRepo := newEngine()

	_, err := uc.CreateProduct(context.Background(), createInput("Arroz", 5))
	require.NoError(t, err)

	// Mismo nombre con distinta capitalización
	_, err = uc.CreateProduct(context.Background(), createInput("ARROZ", 3))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	movements, err := movRepo.List()
	require.NoError(t, err)
	assert.Len(t, movements, 1, "el intento fallido no debe dejar movimiento")
}

func TestCreateProduct_CantidadNegativa_Rechazada(t *testing.T) {
	uc, productRepo, movRepo := newEngine()

	_, err := uc.CreateProduct(context.Background(), createInput("Arroz", -1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	products, err := productRepo.List()
	require.NoError(t, err)
	assert.Empty(t, products)

	movements, err := movRepo.List()
	require.NoError(t, err)
	assert.Empty(t, movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateProduct_CambioDeCantidad_MovimientoConAntesYDespues(t *testing.T) {
	uc, _, movRepo := newEngine()

	product, err := uc.CreateProduct(context.Background(), createInput("Arroz", 10))
	require.NoError(t, err)

	updated, err := uc.UpdateProduct(context.Background(), product.ID, inventory.UpdateProductInput{
		Quantity: intPtr(25),
	})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.Quantity)

	movements, err := movRepo.ListByProductID(product.ID)
	require.NoError(t, err)
	require.Len(t, movements, 2)

	// El más reciente primero
	mov := movements[0]
	assert.Equal(t, entity.MovementTypeEdit, mov.Type)
	require.NotNil(t, mov.QuantityBefore)
	require.NotNil(t, mov.QuantityAfter)
	assert.Equal(t, 10, *mov.QuantityBefore)
	assert.Equal(t, 25, *mov.QuantityAfter)
	require.NotNil(t, mov.Details)
	assert.Equal(t, "Cantidad actualizada de 10 a 25", *mov.Details)
}

func TestUpdateProduct_SoloMetadata_MovimientoSinCantidades(t *testing.T) {
	uc, _, movRepo := newEngine()

	product, err := uc.CreateProduct(context.Background(), createInput("Arroz", 10))
	require.NoError(t, err)

	updated, err := uc.UpdateProduct(context.Background(), product.ID, inventory.UpdateProductInput{
		Description: strPtr("Arroz blanco de grano largo"),
		Location:    strPtr("Bodega B"),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Quantity, "la cantidad no debe cambiar")
	assert.Equal(t, "Bodega B", updated.Location)

	movements, err := movRepo.ListByProductID(product.ID)
	require.NoError(t, err)
	require.Len(t, movements, 2, "editar metadata también registra movimiento")

	mov := movements[0]
	assert.Equal(t, entity.MovementTypeEdit, mov.Type)
	assert.Nil(t, mov.QuantityBefore)
	assert.Nil(t, mov.QuantityAfter)
	require.NotNil(t, mov.Details)
	assert.Equal(t, "Información del producto actualizada", *mov.Details)
}

func TestUpdateProduct_RenombrarANombreExistente_ErrDuplicate(t *testing.T) {
	uc, productRepo, movRepo := newEngine()

	_, err := uc.CreateProduct(context.Background(), createInput("Arroz", 5))
	require.NoError(t, err)
	frijol, err := uc.CreateProduct(context.Background(), createInput("Frijol", 3))
	require.NoError(t, err)

	// Mismo nombre con distinta capitalización
	_, err = uc.UpdateProduct(context.Background(), frijol.ID, inventory.UpdateProductInput{
		Name: strPtr("arroz"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := productRepo.GetByID(frijol.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Frijol", got.Name, "el rename rechazado no debe aplicarse")

	movements, err := movRepo.ListByProductID(frijol.ID)
	require.NoError(t, err)
	assert.Len(t, movements, 1, "el rename rechazado no deja movimiento")
}

func TestUpdateProduct_NoExiste_ErrNotFound(t *testing.T) {
	uc, _, movRepo := newEngine()

	_, err := uc.UpdateProduct(context.Background(), "no-existe", inventory.UpdateProductInput{
		Quantity: intPtr(5),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	movements, err := movRepo.List()
	require.NoError(t, err)
	assert.Empty(t, movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteProduct_ConservaHistorialDeMovimientos(t *testing.T) {
	uc, productRepo, movRepo := newEngine()

	product, err := uc.CreateProduct(context.Background(), createInput("Arroz", 7))
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProduct(context.Background(), product.ID))

	got, err := productRepo.GetByID(product.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "el producto debe desaparecer del inventario")

	movements, err := movRepo.ListByProductID(product.ID)
	require.NoError(t, err)
	require.Len(t, movements, 2, "los movimientos sobreviven al borrado")

	mov := movements[0]
	assert.Equal(t, entity.MovementTypeDelete, mov.Type)
	assert.Equal(t, "Arroz", mov.ProductName)
	require.NotNil(t, mov.QuantityBefore)
	require.NotNil(t, mov.QuantityAfter)
	assert.Equal(t, 7, *mov.QuantityBefore)
	assert.Equal(t, 0, *mov.QuantityAfter)
	require.NotNil(t, mov.Details)
	assert.Equal(t, "Producto eliminado del inventario", *mov.Details)
}

func TestDeleteProduct_NoExiste_ErrNotFound(t *testing.T) {
	uc, _, _ := newEngine()
	err := uc.DeleteProduct(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consume / Restock
// ──────────────────────────────────────────────────────────────────────────────

func TestConsume_DescuentaYRegistra(t *testing.T) {
	uc, _, movRepo := newEngine()

	product, err := uc.CreateProduct(context.Background(), createInput("Arroz", 10))
	require.NoError(t, err)

	updated, err := uc.Consume(context.Background(), product.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Quantity)

	movements, err := movRepo.ListByProductID(product.ID)
	require.NoError(t, err)
	require.Len(t, movements, 2)

	mov := movements[0]
	assert.Equal(t, entity.MovementTypeConsume, mov.Type)
	assert.Equal(t, 10, *mov.QuantityBefore)
	assert.Equal(t, 6, *mov.QuantityAfter)
	assert.Equal(t, "Consumo de 4 unidad(es)", *mov.Details)
}

func TestConsume_TodoElStock_DejaEnCero(t *testing.T) {
	uc, _, _ := newEngine()

	product, err := uc.CreateProduct(context.Background(), createInput("Arroz", 5))
	require.NoError(t, err)

	updated, err := uc.Consume(context.Background(), product.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity, "consumir exactamente el stock es válido")
}

func TestConsume_StockInsuficiente_NoCambiaNada(t *testing.T) {
	uc, productRepo, movRepo := newEngine()

	product, err := uc.CreateProduct(context.Background(), createInput("Arroz", 3))
	require.NoError(t, err)

	_, err = uc.Consume(context.Background(), product.ID, 4)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := productRepo.GetByID(product.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Quantity, "el stock no debe cambiar tras el rechazo")

	movements, err := movRepo.ListByProductID(product.ID)
	require.NoError(t, err)
	assert.Len(t, movements, 1, "el consumo rechazado no deja movimiento")
}

func TestConsume_CantidadInvalida(t *testing.T) {
	uc, _, _ := newEngine()

	product, err := uc.CreateProduct(context.Background(), createInput("Arroz", 3))
	require.NoError(t, err)

	_, err = uc.Consume(context.Background(), product.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Consume(context.Background(), product.ID, -2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConsume_ProductoNoExiste_ErrNotFound(t *testing.T) {
	uc, _, _ := newEngine()
	_, err := uc.Consume(context.Background(), "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRestock_SumaYRegistra(t *testing.T) {
	uc, _, movRepo := newEngine()

	product, err := uc.CreateProduct(context.Background(), createInput("Arroz", 2))
	require.NoError(t, err)

	updated, err := uc.Restock(context.Background(), product.ID, 8)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Quantity)

	movements, err := movRepo.ListByProductID(product.ID)
	require.NoError(t, err)
	require.Len(t, movements, 2)

	mov := movements[0]
	assert.Equal(t, entity.MovementTypeRestock, mov.Type)
	assert.Equal(t, 2, *mov.QuantityBefore)
	assert.Equal(t, 10, *mov.QuantityAfter)
	assert.Equal(t, "Reabastecimiento de 8 unidad(es)", *mov.Details)
}

func TestRestock_CantidadInvalida(t *testing.T) {
	uc, _, _ := newEngine()

	product, err := uc.CreateProduct(context.Background(), createInput("Arroz", 2))
	require.NoError(t, err)

	_, err = uc.Restock(context.Background(), product.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: consumos en paralelo sobre el mismo producto
// ──────────────────────────────────────────────────────────────────────────────

func TestConsume_Concurrente_NuncaNegativo(t *testing.T) {
	uc, productRepo, movRepo := newEngine()

	const n = 50
	product, err := uc.CreateProduct(context.Background(), createInput("Arroz", n))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Consume(context.Background(), product.ID, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err, "con stock exacto todos los consumos deben aceptarse")
	}

	got, err := productRepo.GetByID(product.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 0, got.Quantity)

	movements, err := movRepo.ListByProductID(product.ID)
	require.NoError(t, err)
	assert.Len(t, movements, n+1, "un movimiento por consumo más el de creación")
}

func TestConsume_ConcurrenteSobreDemanda_RechazaElExcedente(t *testing.T) {
	uc, productRepo, _ := newEngine()

	const stock = 10
	const intentos = 25
	product, err := uc.CreateProduct(context.Background(), createInput("Arroz", stock))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, intentos)
	for i := 0; i < intentos; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Consume(context.Background(), product.ID, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, rechazados int
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, domain.ErrInsufficientStock)
		rechazados++
	}
	assert.Equal(t, stock, ok, fmt.Sprintf("deben aceptarse exactamente %d consumos", stock))
	assert.Equal(t, intentos-stock, rechazados)

	got, err := productRepo.GetByID(product.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 0, got.Quantity, "el stock nunca baja de cero")
}

// heldTxRunner retiene la siguiente transacción en la puerta hasta que se
// cierre hold, como una operación que espera el bloqueo de fila mientras
// otra termina primero. entered se cierra al llegar a la puerta.
type heldTxRunner struct {
	inner   inventory.TxRunner
	mu      sync.Mutex
	hold    chan struct{}
	entered chan struct{}
}

func (r *heldTxRunner) holdNext() (hold chan struct{}, entered chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hold = make(chan struct{})
	r.entered = make(chan struct{})
	return r.hold, r.entered
}

func (r *heldTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) error) error {
	r.mu.Lock()
	hold, entered := r.hold, r.entered
	r.hold, r.entered = nil, nil
	r.mu.Unlock()
	if hold != nil {
		close(entered)
		<-hold
	}
	return r.inner.Run(ctx, fn)
}

func TestConsume_Contencion_FechasSiguenElOrdenDeCommit(t *testing.T) {
	productRepo := memory.NewProductRepository()
	movRepo := memory.NewMovementRepository()
	runner := &heldTxRunner{inner: memory.NewTxRunner(productRepo, movRepo)}
	uc := inventory.NewUseCase(runner)

	product, err := uc.CreateProduct(context.Background(), createInput("Arroz", 10))
	require.NoError(t, err)

	// El primer consumo queda detenido en la puerta de la transacción; el
	// segundo arranca después pero confirma primero.
	hold, entered := runner.holdNext()
	done := make(chan error, 1)
	go func() {
		_, err := uc.Consume(context.Background(), product.ID, 1)
		done <- err
	}()
	<-entered

	_, err = uc.Consume(context.Background(), product.ID, 1)
	require.NoError(t, err)

	close(hold)
	require.NoError(t, <-done)

	// Listado fecha desc, id desc: la cadena de cantidades debe leerse en
	// orden causal (9→8 antes que 10→9, creación al final).
	movements, err := movRepo.ListByProductID(product.ID)
	require.NoError(t, err)
	require.Len(t, movements, 3)
	assert.Equal(t, 8, *movements[0].QuantityAfter)
	assert.Equal(t, 9, *movements[1].QuantityAfter)
	assert.Equal(t, 10, *movements[2].QuantityAfter)

	// Con IDs crecientes, las fechas nunca retroceden.
	for i := 0; i < len(movements)-1; i++ {
		assert.GreaterOrEqual(t, movements[i].ID, movements[i+1].ID)
		assert.False(t, movements[i].Date.Before(movements[i+1].Date),
			"la fecha debe ser no decreciente con el orden de inserción")
	}
}
