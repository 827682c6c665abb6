package service

import (
	"context"
	"fmt"
	"time"

	"schoollib-backend/internal/domain"
	"schoollib-backend/internal/logger"
	"schoollib-backend/internal/repository"
	"schoollib-backend/internal/utils"
)

type circulationService struct {
	bookRepo   repository.BookRepository
	issueRepo  repository.IssueRepository
	circRepo   repository.CirculationRepository
	policyRepo repository.PolicyRepository
	emailSvc   EmailService
	now        func() time.Time
}

func NewCirculationService(
	bookRepo repository.BookRepository,
	issueRepo repository.IssueRepository,
	circRepo repository.CirculationRepository,
	policyRepo repository.PolicyRepository,
	emailSvc EmailService,
) CirculationService {
	return &circulationService{
		bookRepo:   bookRepo,
		issueRepo:  issueRepo,
		circRepo:   circRepo,
		policyRepo: policyRepo,
		emailSvc:   emailSvc,
		now:        time.Now,
	}
}

// checkAllowance enforces the per-user limit and the one-active-record-
// per-title rule before a request or direct issue is recorded.
func (s *circulationService) checkAllowance(ctx context.Context, bookID int32, borrower domain.Actor, policy *domain.Policy) error {
	hasActive, err := s.issueRepo.HasActiveForBook(ctx, borrower.ID, bookID)
	if err != nil {
		return err
	}
	if hasActive {
		return fmt.Errorf("%w: user already has an active request or loan for this book", domain.ErrConflict)
	}

	active, err := s.issueRepo.CountActiveByUser(ctx, borrower.ID)
	if err != nil {
		return err
	}
	if active >= policy.MaxBooksPerUser {
		return fmt.Errorf("%w: user already holds %d active loans (limit %d)", domain.ErrConflict, active, policy.MaxBooksPerUser)
	}
	return nil
}

func (s *circulationService) RequestBook(ctx context.Context, bookID int32, borrower domain.Actor) (*domain.IssueRecord, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		return nil, err
	}

	policy, err := s.policyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.checkAllowance(ctx, bookID, borrower, policy); err != nil {
		return nil, err
	}

	rec := &domain.IssueRecord{
		BookID:    bookID,
		UserID:    borrower.ID,
		UserName:  borrower.Name,
		UserEmail: borrower.Email,
		UserRole:  borrower.Role,
	}
	if err := s.issueRepo.CreateRequest(ctx, rec); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Book requested", "issue_id", rec.ID, "book_id", bookID, "user_id", borrower.ID)
	return rec, nil
}

func (s *circulationService) IssueBook(ctx context.Context, bookID int32, borrower domain.Actor) (*domain.IssueRecord, error) {
	policy, err := s.policyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.checkAllowance(ctx, bookID, borrower, policy); err != nil {
		return nil, err
	}

	now := s.now()
	due := now.AddDate(0, 0, int(policy.IssueDurationDays))
	rec := &domain.IssueRecord{
		BookID:    bookID,
		UserID:    borrower.ID,
		UserName:  borrower.Name,
		UserEmail: borrower.Email,
		UserRole:  borrower.Role,
		IssueDate: &now,
		DueDate:   &due,
	}
	// The repository owns the availability check; a Conflict here means
	// the last copy went to someone else and nothing was written.
	if err := s.circRepo.Issue(ctx, rec); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Book issued", "issue_id", rec.ID, "book_id", bookID, "user_id", borrower.ID, "due_date", due)
	return rec, nil
}

func (s *circulationService) ApproveRequest(ctx context.Context, issueID int32) (*domain.IssueRecord, error) {
	policy, err := s.policyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	due := now.AddDate(0, 0, int(policy.IssueDurationDays))
	rec, err := s.circRepo.Approve(ctx, issueID, now, due)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Request approved", "issue_id", rec.ID, "book_id", rec.BookID, "user_id", rec.UserID, "due_date", due)

	s.notifyApproved(ctx, rec)
	return rec, nil
}

func (s *circulationService) RejectRequest(ctx context.Context, issueID int32) (*domain.IssueRecord, error) {
	if err := s.issueRepo.Reject(ctx, issueID); err != nil {
		return nil, err
	}
	rec, err := s.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Request rejected", "issue_id", rec.ID, "book_id", rec.BookID, "user_id", rec.UserID)

	s.notifyRejected(ctx, rec)
	return rec, nil
}

func (s *circulationService) ReturnBook(ctx context.Context, issueID int32) (*domain.IssueRecord, error) {
	rec, err := s.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if rec.Status != domain.IssueStatusIssued {
		return nil, fmt.Errorf("%w: record is %s, expected ISSUED", domain.ErrInvalidState, rec.Status)
	}

	policy, err := s.policyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	fine := utils.CalculateFine(*rec.DueDate, now, policy.FinePerDay)
	returned, err := s.circRepo.Return(ctx, issueID, now, fine)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Book returned", "issue_id", returned.ID, "book_id", returned.BookID, "user_id", returned.UserID, "fine", returned.Fine)

	s.notifyReturned(ctx, returned)
	return returned, nil
}

func (s *circulationService) LiveFine(ctx context.Context, issueID int32) (int32, error) {
	rec, err := s.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return 0, err
	}
	switch rec.Status {
	case domain.IssueStatusIssued:
		policy, err := s.policyRepo.Get(ctx)
		if err != nil {
			return 0, err
		}
		return utils.CalculateFine(*rec.DueDate, s.now(), policy.FinePerDay), nil
	case domain.IssueStatusReturned:
		return rec.Fine, nil
	default:
		return 0, fmt.Errorf("%w: no fine applies to a %s record", domain.ErrInvalidState, rec.Status)
	}
}

func (s *circulationService) GetIssue(ctx context.Context, issueID int32) (*domain.IssueRecord, error) {
	return s.issueRepo.GetByID(ctx, issueID)
}

func (s *circulationService) ListIssues(ctx context.Context, filter domain.IssueFilter, page, pageSize int32) ([]domain.IssueRecord, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.issueRepo.List(ctx, filter, page, pageSize)
}

func (s *circulationService) GetStats(ctx context.Context) (*domain.InventoryStats, error) {
	stats, err := s.bookRepo.GetInventoryStats(ctx)
	if err != nil {
		return nil, err
	}

	policy, err := s.policyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	overdue, err := s.issueRepo.ListIssuedDueBefore(ctx, utils.TruncateToDay(now))
	if err != nil {
		return nil, err
	}
	for _, rec := range overdue {
		stats.OverdueFines += utils.CalculateFine(*rec.DueDate, now, policy.FinePerDay)
	}
	return stats, nil
}

func (s *circulationService) notifyApproved(ctx context.Context, rec *domain.IssueRecord) {
	if s.emailSvc == nil || rec.UserEmail == "" {
		return
	}
	title := s.bookTitle(ctx, rec.BookID)
	if err := s.emailSvc.SendIssueApprovedNotification(ctx, rec.UserEmail, rec.UserName, title, *rec.DueDate); err != nil {
		logger.WarnContext(ctx, "Failed to send approval notification", "issue_id", rec.ID, "error", err)
	}
}

func (s *circulationService) notifyRejected(ctx context.Context, rec *domain.IssueRecord) {
	if s.emailSvc == nil || rec.UserEmail == "" {
		return
	}
	title := s.bookTitle(ctx, rec.BookID)
	if err := s.emailSvc.SendIssueRejectedNotification(ctx, rec.UserEmail, rec.UserName, title); err != nil {
		logger.WarnContext(ctx, "Failed to send rejection notification", "issue_id", rec.ID, "error", err)
	}
}

func (s *circulationService) notifyReturned(ctx context.Context, rec *domain.IssueRecord) {
	if s.emailSvc == nil || rec.UserEmail == "" {
		return
	}
	title := s.bookTitle(ctx, rec.BookID)
	if err := s.emailSvc.SendBookReturnedNotification(ctx, rec.UserEmail, rec.UserName, title, rec.Fine); err != nil {
		logger.WarnContext(ctx, "Failed to send return notification", "issue_id", rec.ID, "error", err)
	}
}

func (s *circulationService) bookTitle(ctx context.Context, bookID int32) string {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return fmt.Sprintf("book %d", bookID)
	}
	return book.Title
}
