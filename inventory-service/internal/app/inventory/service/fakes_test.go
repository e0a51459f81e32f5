package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"inventorystore/inventory-service/internal/app/inventory/entity"
	"inventorystore/inventory-service/internal/app/inventory/repository"
)

// Хранилища в памяти для проверки сценариев целиком, без моков на каждый вызов

type memoryStore struct {
	mu     sync.Mutex
	nextID int
	clock  time.Time
}

func (m *memoryStore) newID() string {
	m.nextID++
	return fmt.Sprintf("%024x", m.nextID)
}

// tick выдает строго возрастающее время, чтобы порядок "новые первыми" был детерминирован
func (m *memoryStore) tick() time.Time {
	if m.clock.IsZero() {
		m.clock = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func isValidMemoryID(id string) bool {
	var n int
	_, err := fmt.Sscanf(id, "%x", &n)
	return err == nil && len(id) == 24
}

type memoryProductRepo struct {
	*memoryStore
	items map[string]entity.Product
}

func newMemoryProductRepo(store *memoryStore) *memoryProductRepo {
	return &memoryProductRepo{memoryStore: store, items: map[string]entity.Product{}}
}

func (r *memoryProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.SKU == product.SKU {
			return repository.ErrDuplicateKey
		}
	}
	product.ID = r.newID()
	product.CreatedAt = r.tick()
	product.UpdatedAt = product.CreatedAt
	r.items[product.ID] = *product
	return nil
}

func (r *memoryProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !isValidMemoryID(id) {
		return nil, repository.ErrInvalidID
	}
	product, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &product, nil
}

func (r *memoryProductRepo) GetByIDs(_ context.Context, ids []string) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []entity.Product
	for _, id := range ids {
		if !isValidMemoryID(id) {
			return nil, repository.ErrInvalidID
		}
		if product, ok := r.items[id]; ok {
			result = append(result, product)
		}
	}
	return result, nil
}

func (r *memoryProductRepo) List(_ context.Context, offset, limit int64) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]entity.Product, 0, len(r.items))
	for _, product := range r.items {
		all = append(all, product)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return window(all, offset, limit), nil
}

func (r *memoryProductRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *memoryProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[product.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.items {
		if id != product.ID && existing.SKU == product.SKU {
			return repository.ErrDuplicateKey
		}
	}
	product.UpdatedAt = r.tick()
	r.items[product.ID] = *product
	return nil
}

func (r *memoryProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memoryProductRepo) DeleteAll(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.items))
	r.items = map[string]entity.Product{}
	return n, nil
}

type memorySupplierRepo struct {
	*memoryStore
	items map[string]entity.Supplier
}

func newMemorySupplierRepo(store *memoryStore) *memorySupplierRepo {
	return &memorySupplierRepo{memoryStore: store, items: map[string]entity.Supplier{}}
}

func (r *memorySupplierRepo) Create(_ context.Context, supplier *entity.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	supplier.ID = r.newID()
	supplier.CreatedAt = r.tick()
	supplier.UpdatedAt = supplier.CreatedAt
	r.items[supplier.ID] = *supplier
	return nil
}

func (r *memorySupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !isValidMemoryID(id) {
		return nil, repository.ErrInvalidID
	}
	supplier, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &supplier, nil
}

func (r *memorySupplierRepo) GetByIDs(_ context.Context, ids []string) ([]entity.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []entity.Supplier
	for _, id := range ids {
		if !isValidMemoryID(id) {
			return nil, repository.ErrInvalidID
		}
		if supplier, ok := r.items[id]; ok {
			result = append(result, supplier)
		}
	}
	return result, nil
}

func (r *memorySupplierRepo) List(_ context.Context, offset, limit int64) ([]entity.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]entity.Supplier, 0, len(r.items))
	for _, supplier := range r.items {
		all = append(all, supplier)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return window(all, offset, limit), nil
}

func (r *memorySupplierRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *memorySupplierRepo) Update(_ context.Context, supplier *entity.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[supplier.ID]; !ok {
		return repository.ErrNotFound
	}
	supplier.UpdatedAt = r.tick()
	r.items[supplier.ID] = *supplier
	return nil
}

func (r *memorySupplierRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memorySupplierRepo) DeleteAll(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.items))
	r.items = map[string]entity.Supplier{}
	return n, nil
}

type memoryOrderRepo struct {
	*memoryStore
	items map[string]entity.Order
}

func newMemoryOrderRepo(store *memoryStore) *memoryOrderRepo {
	return &memoryOrderRepo{memoryStore: store, items: map[string]entity.Order{}}
}

func (r *memoryOrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.newID()
	order.CreatedAt = r.tick()
	order.UpdatedAt = order.CreatedAt
	r.items[order.ID] = cloneOrder(*order)
	return nil
}

func (r *memoryOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !isValidMemoryID(id) {
		return nil, repository.ErrInvalidID
	}
	order, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	order = cloneOrder(order)
	return &order, nil
}

func (r *memoryOrderRepo) List(_ context.Context, offset, limit int64) ([]entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]entity.Order, 0, len(r.items))
	for _, order := range r.items {
		all = append(all, cloneOrder(order))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return window(all, offset, limit), nil
}

func (r *memoryOrderRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *memoryOrderRepo) Update(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[order.ID]; !ok {
		return repository.ErrNotFound
	}
	order.UpdatedAt = r.tick()
	r.items[order.ID] = cloneOrder(*order)
	return nil
}

func (r *memoryOrderRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memoryOrderRepo) DeleteAll(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.items))
	r.items = map[string]entity.Order{}
	return n, nil
}

func cloneOrder(order entity.Order) entity.Order {
	order.Items = append([]entity.OrderItem(nil), order.Items...)
	return order
}

func window[T any](all []T, offset, limit int64) []T {
	if offset >= int64(len(all)) {
		return []T{}
	}
	end := offset + limit
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[offset:end]
}

// testEnv сервисы поверх общего хранилища в памяти
type testEnv struct {
	productRepo  *memoryProductRepo
	supplierRepo *memorySupplierRepo
	orderRepo    *memoryOrderRepo
	products     *ProductService
	suppliers    *SupplierService
	orders       *OrderService
}

func newTestEnv() *testEnv {
	store := &memoryStore{}
	env := &testEnv{
		productRepo:  newMemoryProductRepo(store),
		supplierRepo: newMemorySupplierRepo(store),
		orderRepo:    newMemoryOrderRepo(store),
	}
	env.products = NewProductService(env.productRepo, nil)
	env.suppliers = NewSupplierService(env.supplierRepo, nil)
	env.orders = NewOrderService(env.orderRepo, env.products, env.suppliers, nil)
	return env
}
