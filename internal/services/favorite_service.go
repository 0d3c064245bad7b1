package services

import "ecofinds/internal/repos"

type FavoriteService struct {
	Repo *repos.FavoriteRepo
}

func NewFavoriteService(r *repos.FavoriteRepo) *FavoriteService { return &FavoriteService{Repo: r} }

func (s *FavoriteService) Save(sessionID, productID string) error {
	id, err := s.Repo.Ensure(sessionID)
	if err != nil {
		return err
	}
	return s.Repo.Add(id, productID)
}

func (s *FavoriteService) Unsave(sessionID, productID string) error {
	id, err := s.Repo.Ensure(sessionID)
	if err != nil {
		return err
	}
	return s.Repo.Remove(id, productID)
}

func (s *FavoriteService) List(sessionID string) ([]repos.FavoriteRow, error) {
	id, err := s.Repo.Ensure(sessionID)
	if err != nil {
		return nil, err
	}
	return s.Repo.List(id)
}
