package service

import (
	"context"

	"schoollib-backend/internal/domain"
	"schoollib-backend/internal/logger"
	"schoollib-backend/internal/repository"
)

type policyService struct {
	policyRepo repository.PolicyRepository
}

func NewPolicyService(policyRepo repository.PolicyRepository) PolicyService {
	return &policyService{policyRepo: policyRepo}
}

func (s *policyService) GetPolicy(ctx context.Context) (*domain.Policy, error) {
	return s.policyRepo.Get(ctx)
}

// UpdatePolicy replaces the lending configuration. Existing loans keep
// the due dates they were issued with; only future issuances see the
// new values.
func (s *policyService) UpdatePolicy(ctx context.Context, policy *domain.Policy) error {
	if policy.MaxBooksPerUser < 1 {
		return domain.NewValidationError("max_books_per_user", "must be at least 1")
	}
	if policy.IssueDurationDays < 1 {
		return domain.NewValidationError("issue_duration_days", "must be at least 1")
	}
	if policy.FinePerDay < 0 {
		return domain.NewValidationError("fine_per_day", "must not be negative")
	}
	if err := s.policyRepo.Update(ctx, policy); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Lending policy updated",
		"max_books_per_user", policy.MaxBooksPerUser,
		"issue_duration_days", policy.IssueDurationDays,
		"fine_per_day", policy.FinePerDay)
	return nil
}
