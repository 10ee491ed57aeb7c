// Package memory implementa todos los repositorios y el TxRunner sobre mapas en memoria.
// Una transacción trabaja sobre una copia del estado y la publica al hacer commit, bajo
// un único mutex, por lo que las transacciones quedan serializadas.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"

	"github.com/jhoicas/Granja-api/internal/application/ports"
	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

type state struct {
	users           map[string]entity.User
	suppliers       map[string]entity.Supplier
	feedInventory   map[string]entity.FeedInventoryItem
	feedPurchases   map[string]entity.FeedPurchase
	feedConsumption map[string]entity.FeedConsumption
	inventoryItems  map[string]entity.InventoryItem
	stockMovements  map[string]entity.StockMovement
	purchaseOrders  map[string]entity.PurchaseOrder
	flocks          map[string]entity.Flock
	batches         map[string]entity.Batch
	mortality       map[string]entity.MortalityRecord
	eggs            map[string]entity.EggCollection
	weights         map[string]entity.WeightRecord
	health          map[string]entity.HealthRecord
	income          map[string]entity.FinancialTransaction
	expense         map[string]entity.FinancialTransaction

	// seq orden de inserción, desempata listados con la misma fecha.
	seq   int64
	order map[string]int64
}

func newState() *state {
	return &state{
		users:           map[string]entity.User{},
		suppliers:       map[string]entity.Supplier{},
		feedInventory:   map[string]entity.FeedInventoryItem{},
		feedPurchases:   map[string]entity.FeedPurchase{},
		feedConsumption: map[string]entity.FeedConsumption{},
		inventoryItems:  map[string]entity.InventoryItem{},
		stockMovements:  map[string]entity.StockMovement{},
		purchaseOrders:  map[string]entity.PurchaseOrder{},
		flocks:          map[string]entity.Flock{},
		batches:         map[string]entity.Batch{},
		mortality:       map[string]entity.MortalityRecord{},
		eggs:            map[string]entity.EggCollection{},
		weights:         map[string]entity.WeightRecord{},
		health:          map[string]entity.HealthRecord{},
		income:          map[string]entity.FinancialTransaction{},
		expense:         map[string]entity.FinancialTransaction{},
		order:           map[string]int64{},
	}
}

func (s *state) clone() *state {
	c := &state{
		users:           maps.Clone(s.users),
		suppliers:       maps.Clone(s.suppliers),
		feedInventory:   maps.Clone(s.feedInventory),
		feedPurchases:   maps.Clone(s.feedPurchases),
		feedConsumption: maps.Clone(s.feedConsumption),
		inventoryItems:  maps.Clone(s.inventoryItems),
		stockMovements:  maps.Clone(s.stockMovements),
		purchaseOrders:  make(map[string]entity.PurchaseOrder, len(s.purchaseOrders)),
		flocks:          maps.Clone(s.flocks),
		batches:         maps.Clone(s.batches),
		mortality:       maps.Clone(s.mortality),
		eggs:            maps.Clone(s.eggs),
		weights:         maps.Clone(s.weights),
		health:          maps.Clone(s.health),
		income:          maps.Clone(s.income),
		expense:         maps.Clone(s.expense),
		seq:             s.seq,
		order:           maps.Clone(s.order),
	}
	for k, o := range s.purchaseOrders {
		c.purchaseOrders[k] = copyOrder(o)
	}
	return c
}

func (s *state) touch(id string) {
	if _, ok := s.order[id]; ok {
		return
	}
	s.seq++
	s.order[id] = s.seq
}

func copyOrder(o entity.PurchaseOrder) entity.PurchaseOrder {
	o.Items = append([]entity.PurchaseOrderItem(nil), o.Items...)
	return o
}

// Store almacenamiento en memoria.
type Store struct {
	mu sync.RWMutex
	st *state
}

// New crea un store vacío.
func New() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn sobre una copia del estado; si fn no falla la copia reemplaza al estado.
func (s *Store) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(reposFor(view{tx: work})); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Repos devuelve los repositorios fuera de transacción.
func (s *Store) Repos() ports.Repos {
	return reposFor(view{store: s})
}

func reposFor(v view) ports.Repos {
	return ports.Repos{
		FeedInventory:   &FeedInventoryRepo{v: v},
		FeedPurchases:   &FeedPurchaseRepo{v: v},
		FeedConsumption: &FeedConsumptionRepo{v: v},
		InventoryItems:  &InventoryItemRepo{v: v},
		StockMovements:  &StockMovementRepo{v: v},
		PurchaseOrders:  &PurchaseOrderRepo{v: v},
		Suppliers:       &SupplierRepo{v: v},
		Flocks:          &FlockRepo{v: v},
		Batches:         &BatchRepo{v: v},
		Mortality:       &MortalityRepo{v: v},
	}
}

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{v: view{store: s}} }

// EggCollections repositorio de recolecciones.
func (s *Store) EggCollections() *EggCollectionRepo { return &EggCollectionRepo{v: view{store: s}} }

// WeightRecords repositorio de pesajes.
func (s *Store) WeightRecords() *WeightRecordRepo { return &WeightRecordRepo{v: view{store: s}} }

// HealthRecords repositorio sanitario.
func (s *Store) HealthRecords() *HealthRecordRepo { return &HealthRecordRepo{v: view{store: s}} }

// Transactions repositorio de ingresos y egresos.
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{v: view{store: s}} }

// view apunta al estado publicado (store) o a la copia de una transacción (tx).
type view struct {
	store *Store
	tx    *state
}

func (v view) read(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return fn(v.store.st)
}

func (v view) write(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

func duplicate(what string) error {
	return fmt.Errorf("%s: %w", what, domain.ErrDuplicate)
}

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
}

func referenced(what string) error {
	return fmt.Errorf("%s tiene registros asociados: %w", what, domain.ErrConflict)
}

func sameID(p *string, id string) bool {
	return p != nil && *p == id
}

// matchGroup aplica los filtros de parvada/lote sobre ids opcionales.
func matchGroup(flockID, batchID *string, flock, batch string) bool {
	if flock != "" && !sameID(flockID, flock) {
		return false
	}
	if batch != "" && !sameID(batchID, batch) {
		return false
	}
	return true
}

// sortByKey ordena por clave de fecha (asc o desc) y luego por orden de inserción.
func sortByKey[T any](st *state, items []*T, key func(*T) (int64, string), desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		ki, idi := key(items[i])
		kj, idj := key(items[j])
		if ki != kj {
			if desc {
				return ki > kj
			}
			return ki < kj
		}
		if desc {
			return st.order[idi] > st.order[idj]
		}
		return st.order[idi] < st.order[idj]
	})
}

func paginate[T any](items []*T, limit, offset int) []*T {
	if offset > 0 {
		if offset >= len(items) {
			return []*T{}
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// checkViolation emula el CHECK (current_stock >= 0) de la tabla.
func checkViolation(table string) error {
	return &domain.StoreError{Code: "23514", Op: table, Err: domain.ErrInsufficientStock}
}
