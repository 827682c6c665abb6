package service

import (
	"context"
	"testing"

	"schoollib-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func strPtr(s string) *string { return &s }
func int32Ptr(v int32) *int32 { return &v }

func TestCreateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		bookRepo := new(MockBookRepo)
		bookRepo.On("Create", ctx, mock.AnythingOfType("*domain.Book")).Return(nil)

		svc := NewCatalogService(bookRepo)
		err := svc.CreateBook(ctx, &domain.Book{Title: "Algebra I", Author: "K. Rao", Category: domain.BookCategoryTextbook, Quantity: 3})
		assert.NoError(t, err)
		bookRepo.AssertExpectations(t)
	})

	t.Run("Blank title", func(t *testing.T) {
		bookRepo := new(MockBookRepo)
		svc := NewCatalogService(bookRepo)
		err := svc.CreateBook(ctx, &domain.Book{Title: "   ", Author: "K. Rao", Quantity: 3})
		assert.True(t, domain.IsValidation(err))
		bookRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Negative quantity", func(t *testing.T) {
		svc := NewCatalogService(new(MockBookRepo))
		err := svc.CreateBook(ctx, &domain.Book{Title: "Algebra I", Author: "K. Rao", Quantity: -1})
		assert.True(t, domain.IsValidation(err))
	})
}

func TestUpdateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("Partial update keeps unset fields", func(t *testing.T) {
		bookRepo := new(MockBookRepo)
		bookRepo.On("GetByID", ctx, int32(1)).
			Return(&domain.Book{ID: 1, Title: "Algebra I", Author: "K. Rao", Quantity: 3, Available: 2}, nil)
		bookRepo.On("Update", ctx, mock.MatchedBy(func(b *domain.Book) bool {
			return b.Title == "Algebra II" && b.Author == "K. Rao" && b.Quantity == 5
		})).Return(nil)

		svc := NewCatalogService(bookRepo)
		book, err := svc.UpdateBook(ctx, 1, BookUpdate{Title: strPtr("Algebra II"), Quantity: int32Ptr(5)})
		assert.NoError(t, err)
		assert.Equal(t, "Algebra II", book.Title)
		assert.Equal(t, "K. Rao", book.Author)
	})

	t.Run("Unknown book", func(t *testing.T) {
		bookRepo := new(MockBookRepo)
		bookRepo.On("GetByID", ctx, int32(9)).Return(nil, domain.ErrNotFound)

		svc := NewCatalogService(bookRepo)
		_, err := svc.UpdateBook(ctx, 9, BookUpdate{Title: strPtr("X")})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Quantity below copies on loan surfaces conflict", func(t *testing.T) {
		bookRepo := new(MockBookRepo)
		bookRepo.On("GetByID", ctx, int32(1)).
			Return(&domain.Book{ID: 1, Title: "Algebra I", Author: "K. Rao", Quantity: 5, Available: 1}, nil)
		bookRepo.On("Update", ctx, mock.AnythingOfType("*domain.Book")).Return(domain.ErrConflict)

		svc := NewCatalogService(bookRepo)
		_, err := svc.UpdateBook(ctx, 1, BookUpdate{Quantity: int32Ptr(2)})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestListBooks(t *testing.T) {
	ctx := context.Background()
	bookRepo := new(MockBookRepo)
	bookRepo.On("List", ctx, "algebra", "", int32(1), int32(20)).
		Return([]domain.Book{{ID: 1, Title: "Algebra I"}}, int32(1), nil)

	svc := NewCatalogService(bookRepo)
	// Out-of-range paging falls back to the defaults.
	books, total, err := svc.ListBooks(ctx, "algebra", "", 0, 500)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), total)
	assert.Len(t, books, 1)
}

func TestDeleteBook(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		bookRepo := new(MockBookRepo)
		bookRepo.On("Delete", ctx, int32(1)).Return(nil)

		svc := NewCatalogService(bookRepo)
		assert.NoError(t, svc.DeleteBook(ctx, 1))
	})

	t.Run("Active loans block deletion", func(t *testing.T) {
		bookRepo := new(MockBookRepo)
		bookRepo.On("Delete", ctx, int32(1)).Return(domain.ErrConflict)

		svc := NewCatalogService(bookRepo)
		assert.ErrorIs(t, svc.DeleteBook(ctx, 1), domain.ErrConflict)
	})
}
