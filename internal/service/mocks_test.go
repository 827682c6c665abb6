package service

import (
	"context"
	"time"

	"schoollib-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockBookRepo
type MockBookRepo struct {
	mock.Mock
}

func (m *MockBookRepo) Create(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}
func (m *MockBookRepo) GetByID(ctx context.Context, id int32) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookRepo) Update(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}
func (m *MockBookRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBookRepo) List(ctx context.Context, query, category string, page, pageSize int32) ([]domain.Book, int32, error) {
	args := m.Called(ctx, query, category, page, pageSize)
	return args.Get(0).([]domain.Book), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookRepo) GetInventoryStats(ctx context.Context) (*domain.InventoryStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryStats), args.Error(1)
}

// MockIssueRepo
type MockIssueRepo struct {
	mock.Mock
}

func (m *MockIssueRepo) CreateRequest(ctx context.Context, rec *domain.IssueRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *MockIssueRepo) GetByID(ctx context.Context, id int32) (*domain.IssueRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssueRecord), args.Error(1)
}
func (m *MockIssueRepo) List(ctx context.Context, filter domain.IssueFilter, page, pageSize int32) ([]domain.IssueRecord, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.IssueRecord), args.Get(1).(int32), args.Error(2)
}
func (m *MockIssueRepo) ListIssuedDueBefore(ctx context.Context, cutoff time.Time) ([]domain.IssueRecord, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.IssueRecord), args.Error(1)
}
func (m *MockIssueRepo) CountActiveByUser(ctx context.Context, userID int32) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockIssueRepo) HasActiveForBook(ctx context.Context, userID, bookID int32) (bool, error) {
	args := m.Called(ctx, userID, bookID)
	return args.Bool(0), args.Error(1)
}
func (m *MockIssueRepo) Reject(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCirculationRepo
type MockCirculationRepo struct {
	mock.Mock
}

func (m *MockCirculationRepo) Issue(ctx context.Context, rec *domain.IssueRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *MockCirculationRepo) Approve(ctx context.Context, id int32, issueDate, dueDate time.Time) (*domain.IssueRecord, error) {
	args := m.Called(ctx, id, issueDate, dueDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssueRecord), args.Error(1)
}
func (m *MockCirculationRepo) Return(ctx context.Context, id int32, returnDate time.Time, fine int32) (*domain.IssueRecord, error) {
	args := m.Called(ctx, id, returnDate, fine)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssueRecord), args.Error(1)
}

// MockPolicyRepo
type MockPolicyRepo struct {
	mock.Mock
}

func (m *MockPolicyRepo) Get(ctx context.Context) (*domain.Policy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Policy), args.Error(1)
}
func (m *MockPolicyRepo) Update(ctx context.Context, policy *domain.Policy) error {
	args := m.Called(ctx, policy)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendIssueApprovedNotification(ctx context.Context, email, name, bookTitle string, dueDate time.Time) error {
	args := m.Called(ctx, email, name, bookTitle, dueDate)
	return args.Error(0)
}
func (m *MockEmailService) SendIssueRejectedNotification(ctx context.Context, email, name, bookTitle string) error {
	args := m.Called(ctx, email, name, bookTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendBookReturnedNotification(ctx context.Context, email, name, bookTitle string, fine int32) error {
	args := m.Called(ctx, email, name, bookTitle, fine)
	return args.Error(0)
}
