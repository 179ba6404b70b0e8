package app

import (
	"context"
	"errors"
	"net/url"
	"sort"

	"linkboard/internal/domain"
)

// ErrLinkNotFound indicates that no link with the given id exists.
var ErrLinkNotFound = errors.New("link not found")

// LinkService encapsulates link-curation use cases.
type LinkService struct {
	repo domain.LinkStore
}

// NewLinkService creates a LinkService backed by the given store.
func NewLinkService(repo domain.LinkStore) *LinkService {
	return &LinkService{repo: repo}
}

// List returns all links ordered by position.
func (s *LinkService) List(ctx context.Context) ([]domain.Link, error) {
	links, err := s.repo.Links(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(links, func(i, j int) bool { return links[i].Position < links[j].Position })
	return links, nil
}

// Create validates and stores a new link at the end of the board.
func (s *LinkService) Create(ctx context.Context, title, rawURL, icon string) (domain.Link, error) {
	if err := validateLink(title, rawURL); err != nil {
		return domain.Link{}, err
	}

	links, err := s.repo.Links(ctx)
	if err != nil {
		return domain.Link{}, err
	}

	link := domain.Link{
		ID:       nextLinkID(links),
		Title:    title,
		URL:      rawURL,
		Icon:     icon,
		Position: len(links),
	}
	links = append(links, link)
	if err := s.repo.SaveLinks(ctx, links); err != nil {
		return domain.Link{}, err
	}
	return link, nil
}

// Update replaces the title, URL, and icon of an existing link.
func (s *LinkService) Update(ctx context.Context, id int64, title, rawURL, icon string) (domain.Link, error) {
	if err := validateLink(title, rawURL); err != nil {
		return domain.Link{}, err
	}

	links, err := s.repo.Links(ctx)
	if err != nil {
		return domain.Link{}, err
	}

	for i := range links {
		if links[i].ID != id {
			continue
		}
		links[i].Title = title
		links[i].URL = rawURL
		links[i].Icon = icon
		if err := s.repo.SaveLinks(ctx, links); err != nil {
			return domain.Link{}, err
		}
		return links[i], nil
	}
	return domain.Link{}, ErrLinkNotFound
}

// Delete removes a link and closes the position gap it leaves.
func (s *LinkService) Delete(ctx context.Context, id int64) error {
	links, err := s.repo.Links(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range links {
		if links[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrLinkNotFound
	}

	links = append(links[:idx], links[idx+1:]...)
	sort.SliceStable(links, func(i, j int) bool { return links[i].Position < links[j].Position })
	for i := range links {
		links[i].Position = i
	}
	return s.repo.SaveLinks(ctx, links)
}

// Reorder assigns positions following the given id order. The ids must be
// a permutation of the current links; anything else is rejected so a stale
// drag-and-drop payload cannot drop entries.
func (s *LinkService) Reorder(ctx context.Context, ids []int64) error {
	links, err := s.repo.Links(ctx)
	if err != nil {
		return err
	}
	if len(ids) != len(links) {
		return errors.New("reorder must include every link exactly once")
	}

	byID := make(map[int64]int, len(links))
	for i := range links {
		byID[links[i].ID] = i
	}
	seen := make(map[int64]bool, len(ids))
	for pos, id := range ids {
		i, ok := byID[id]
		if !ok || seen[id] {
			return errors.New("reorder must include every link exactly once")
		}
		seen[id] = true
		links[i].Position = pos
	}
	return s.repo.SaveLinks(ctx, links)
}

func validateLink(title, rawURL string) error {
	if title == "" {
		return errors.New("title must not be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("url must be absolute http or https")
	}
	return nil
}

func nextLinkID(links []domain.Link) int64 {
	var max int64
	for i := range links {
		if links[i].ID > max {
			max = links[i].ID
		}
	}
	return max + 1
}
