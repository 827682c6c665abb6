package service

import (
	"context"
	"strings"

	"schoollib-backend/internal/domain"
	"schoollib-backend/internal/logger"
	"schoollib-backend/internal/repository"
)

type catalogService struct {
	bookRepo repository.BookRepository
}

func NewCatalogService(bookRepo repository.BookRepository) CatalogService {
	return &catalogService{bookRepo: bookRepo}
}

func (s *catalogService) CreateBook(ctx context.Context, book *domain.Book) error {
	if strings.TrimSpace(book.Title) == "" {
		return domain.NewValidationError("title", "required")
	}
	if strings.TrimSpace(book.Author) == "" {
		return domain.NewValidationError("author", "required")
	}
	if book.Quantity < 0 {
		return domain.NewValidationError("quantity", "must not be negative")
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Book added to catalog", "book_id", book.ID, "title", book.Title, "quantity", book.Quantity)
	return nil
}

func (s *catalogService) GetBook(ctx context.Context, id int32) (*domain.Book, error) {
	return s.bookRepo.GetByID(ctx, id)
}

func (s *catalogService) UpdateBook(ctx context.Context, id int32, upd BookUpdate) (*domain.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return nil, domain.NewValidationError("title", "required")
		}
		book.Title = *upd.Title
	}
	if upd.Author != nil {
		if strings.TrimSpace(*upd.Author) == "" {
			return nil, domain.NewValidationError("author", "required")
		}
		book.Author = *upd.Author
	}
	if upd.Subject != nil {
		book.Subject = *upd.Subject
	}
	if upd.ISBN != nil {
		book.ISBN = *upd.ISBN
	}
	if upd.Category != nil {
		book.Category = *upd.Category
	}
	if upd.Quantity != nil {
		if *upd.Quantity < 0 {
			return nil, domain.NewValidationError("quantity", "must not be negative")
		}
		book.Quantity = *upd.Quantity
	}

	// The repository adjusts available by the quantity delta inside a
	// row lock and rejects edits that would strand copies on loan.
	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *catalogService) DeleteBook(ctx context.Context, id int32) error {
	if err := s.bookRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Book removed from catalog", "book_id", id)
	return nil
}

func (s *catalogService) ListBooks(ctx context.Context, query, category string, page, pageSize int32) ([]domain.Book, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.bookRepo.List(ctx, query, category, page, pageSize)
}
