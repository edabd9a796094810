package warehouse

import "context"

// ListFruits returns the fruit master data.
func (s *Service) ListFruits(ctx context.Context) ([]Fruit, error) {
	return list[Fruit](ctx, s, FruitsEndpoint, nil)
}

// SaveFruit creates fruit when fruit.ID is 0 and updates it otherwise.
func (s *Service) SaveFruit(ctx context.Context, fruit Fruit) (*MessageResponse, error) {
	id := fruit.ID
	fruit.ID = 0
	return s.save(ctx, FruitsEndpoint, id, fruit)
}

func (s *Service) DeleteFruit(ctx context.Context, id int) (*MessageResponse, error) {
	return s.remove(ctx, FruitsEndpoint, id)
}

// ListSuppliers returns the supplier master data.
func (s *Service) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	return list[Supplier](ctx, s, SuppliersEndpoint, nil)
}

// SaveSupplier creates supplier when supplier.ID is 0 and updates it otherwise.
func (s *Service) SaveSupplier(ctx context.Context, supplier Supplier) (*MessageResponse, error) {
	id := supplier.ID
	supplier.ID = 0
	return s.save(ctx, SuppliersEndpoint, id, supplier)
}

func (s *Service) DeleteSupplier(ctx context.Context, id int) (*MessageResponse, error) {
	return s.remove(ctx, SuppliersEndpoint, id)
}

// ListCustomers returns the customer master data.
func (s *Service) ListCustomers(ctx context.Context) ([]Customer, error) {
	return list[Customer](ctx, s, CustomersEndpoint, nil)
}

// SaveCustomer creates customer when customer.ID is 0 and updates it otherwise.
func (s *Service) SaveCustomer(ctx context.Context, customer Customer) (*MessageResponse, error) {
	id := customer.ID
	customer.ID = 0
	return s.save(ctx, CustomersEndpoint, id, customer)
}

func (s *Service) DeleteCustomer(ctx context.Context, id int) (*MessageResponse, error) {
	return s.remove(ctx, CustomersEndpoint, id)
}

// ListUsers returns every account. Admin only.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return list[User](ctx, s, UsersEndpoint, nil)
}

func (s *Service) CreateUser(ctx context.Context, user UserInput) (*MessageResponse, error) {
	return s.save(ctx, UsersEndpoint, 0, user)
}

// UpdateUser replaces the account id. Leave user.Password empty to keep the password.
func (s *Service) UpdateUser(ctx context.Context, id int, user UserInput) (*MessageResponse, error) {
	return s.save(ctx, UsersEndpoint, id, user)
}

func (s *Service) DeleteUser(ctx context.Context, id int) (*MessageResponse, error) {
	return s.remove(ctx, UsersEndpoint, id)
}
