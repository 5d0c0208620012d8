package services

import (
	"robomart/internal/domain"
	"robomart/internal/repos"
)

// SettingsService reads the flat key/value store consumed by the header,
// footer and checkout.
type SettingsService struct {
	Repo *repos.SettingsRepo
}

func NewSettingsService(repo *repos.SettingsRepo) *SettingsService {
	return &SettingsService{Repo: repo}
}

func (s *SettingsService) All() (map[string]string, error) {
	rows, err := s.Repo.All()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

func (s *SettingsService) List() ([]domain.Setting, error) {
	return s.Repo.All()
}

func (s *SettingsService) Save(values map[string]string) error {
	for k, v := range values {
		if err := s.Repo.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}
