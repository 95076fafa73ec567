package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sakif/ecommerce-api/internal/apperror"
	"github.com/sakif/ecommerce-api/internal/model"
)

// Hand-written in-memory mocks. The services only see the repository
// interfaces, so these swap in transparently — no database, no disk, and
// errors can be injected exactly where a test needs them.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockUserRepo struct {
	users   map[int64]*model.User
	nextID  int64
	failAll error // when set, every call returns this error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, username, email, passwordHash string) (int64, error) {
	if m.failAll != nil {
		return 0, m.failAll
	}
	for _, u := range m.users {
		if u.Username == username {
			return 0, errors.New("UNIQUE constraint failed: users.username")
		}
		if u.Email == email {
			return 0, errors.New("UNIQUE constraint failed: users.email")
		}
	}
	m.nextID++
	m.users[m.nextID] = &model.User{
		ID:           m.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	return m.nextID, nil
}

func (m *mockUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	copied := *u
	return &copied, nil
}

type createdOrder struct {
	userID      int64
	code        string
	totalAmount float64
	items       []model.OrderItemInput
}

type mockOrderRepo struct {
	created   []createdOrder
	rows      []model.OrderRow
	createErr error
	listErr   error
}

func (m *mockOrderRepo) CreateOrder(_ context.Context, userID int64, code string, totalAmount float64, items []model.OrderItemInput) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.created = append(m.created, createdOrder{userID, code, totalAmount, items})
	return int64(len(m.created)), nil
}

func (m *mockOrderRepo) ListOrderRowsByUser(_ context.Context, userID int64) ([]model.OrderRow, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.rows, nil
}

type mockProductRepo struct {
	products []model.Product
	listErr  error
}

func (m *mockProductRepo) InsertProduct(_ context.Context, p *model.Product) (int64, error) {
	copied := *p
	copied.ID = int64(len(m.products) + 1)
	m.products = append(m.products, copied)
	return copied.ID, nil
}

func (m *mockProductRepo) ListProducts(_ context.Context) ([]model.Product, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.products, nil
}

func (m *mockProductRepo) GetProductByID(_ context.Context, id int64) (*model.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			copied := p
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("product", id)
}

type mockQueryExecutor struct {
	results    []map[string]any
	err        error
	lastQuery  string
	queryCount int
}

func (m *mockQueryExecutor) Execute(_ context.Context, query string) ([]map[string]any, error) {
	m.lastQuery = query
	m.queryCount++
	if m.err != nil {
		return nil, m.err
	}
	if m.results == nil {
		return []map[string]any{}, nil
	}
	return m.results, nil
}

// seedMockUser inserts a user directly, bypassing CreateUser's uniqueness
// checks, for tests that need a known id/hash.
func seedMockUser(m *mockUserRepo, id int64, username, hash string) {
	m.users[id] = &model.User{
		ID:           id,
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if id > m.nextID {
		m.nextID = id
	}
}
