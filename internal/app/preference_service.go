package app

import (
	"context"
	"errors"

	"linkboard/internal/domain"
)

// PreferenceService encapsulates dashboard preference use cases.
type PreferenceService struct {
	repo domain.PreferenceStore
}

// NewPreferenceService creates a PreferenceService backed by the given store.
func NewPreferenceService(repo domain.PreferenceStore) *PreferenceService {
	return &PreferenceService{repo: repo}
}

// Get returns the current preferences.
func (s *PreferenceService) Get(ctx context.Context) (domain.Preferences, error) {
	return s.repo.Preferences(ctx)
}

// Save validates and persists the full preference set.
func (s *PreferenceService) Save(ctx context.Context, prefs domain.Preferences) error {
	if prefs.Title == "" {
		return errors.New("title must not be empty")
	}
	if prefs.Theme == "" {
		return errors.New("theme must not be empty")
	}
	return s.repo.SavePreferences(ctx, prefs)
}
