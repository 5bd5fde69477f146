package services

import (
	"context"
	"errors"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/autoventa/autoventa-api/internal/repository"
	"gorm.io/gorm"
)

type BranchService struct {
	repo repository.BranchRepository
}

func NewBranchService(repo repository.BranchRepository) *BranchService {
	return &BranchService{repo: repo}
}

func (s *BranchService) FindByID(ctx context.Context, id uint) (*models.Branch, error) {
	branch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return branch, nil
}

func (s *BranchService) FindAll(ctx context.Context) ([]models.Branch, error) {
	return s.repo.FindAll(ctx)
}

func (s *BranchService) Create(ctx context.Context, branch *models.Branch) error {
	return s.repo.Create(ctx, branch)
}

func (s *BranchService) Update(ctx context.Context, branch *models.Branch) error {
	return s.repo.Update(ctx, branch)
}

// Delete deactivates the branch instead of removing rows that other
// records reference.
func (s *BranchService) Delete(ctx context.Context, id uint) error {
	branch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	branch.Active = false
	return s.repo.Update(ctx, branch)
}
