package service

import (
	"math/rand"
	"strings"
	"sync"

	"souqeats/internal/domain"
)

// CatalogService serves reads from an in-memory snapshot of the full
// catalog. Writes go through AdminService, which reloads the snapshot;
// readers never see a half-applied catalog.
type CatalogService struct {
	repo CatalogRepository

	mu       sync.RWMutex
	snapshot []domain.Restaurant
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// Load replaces the snapshot wholesale. On a storage error the previous
// snapshot stays in place so the storefront keeps serving.
func (s *CatalogService) Load() error {
	restaurants, err := s.repo.ListCatalog()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snapshot = restaurants
	s.mu.Unlock()
	return nil
}

// Restaurants returns the current snapshot.
func (s *CatalogService) Restaurants() []domain.Restaurant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// FindRestaurant looks up a restaurant by id.
func (s *CatalogService) FindRestaurant(id int) (domain.Restaurant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rest := range s.snapshot {
		if rest.ID == id {
			return rest, true
		}
	}
	return domain.Restaurant{}, false
}

// FindDish looks up a dish across all restaurants.
func (s *CatalogService) FindDish(dishID int) (domain.Dish, domain.Restaurant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rest := range s.snapshot {
		for _, dish := range rest.Menu {
			if dish.ID == dishID {
				return dish, rest, true
			}
		}
	}
	return domain.Dish{}, domain.Restaurant{}, false
}

// FilterByCategory returns the restaurants in the given category. The
// "all" category returns everything.
func (s *CatalogService) FilterByCategory(category domain.Category) []domain.Restaurant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if category == domain.CategoryAll || category == "" {
		return s.snapshot
	}

	var matched []domain.Restaurant
	for _, rest := range s.snapshot {
		if rest.Category == category {
			matched = append(matched, rest)
		}
	}
	return matched
}

// Search matches restaurants case-insensitively by name, or by the name or
// description of any dish on their menu. An empty query returns everything.
func (s *CatalogService) Search(query string) []domain.Restaurant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return s.snapshot
	}

	var matched []domain.Restaurant
	for _, rest := range s.snapshot {
		if restaurantMatches(rest, needle) {
			matched = append(matched, rest)
		}
	}
	return matched
}

// Browse applies the category filter and the search query together.
func (s *CatalogService) Browse(category domain.Category, query string) []domain.Restaurant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(query))

	var matched []domain.Restaurant
	for _, rest := range s.snapshot {
		if category != domain.CategoryAll && category != "" && rest.Category != category {
			continue
		}
		if needle != "" && !restaurantMatches(rest, needle) {
			continue
		}
		matched = append(matched, rest)
	}
	return matched
}

func restaurantMatches(rest domain.Restaurant, needle string) bool {
	if strings.Contains(strings.ToLower(rest.Name), needle) {
		return true
	}
	for _, dish := range rest.Menu {
		if strings.Contains(strings.ToLower(dish.Name), needle) ||
			strings.Contains(strings.ToLower(dish.Description), needle) {
			return true
		}
	}
	return false
}

// PopularDishes picks up to limit dishes at random across the catalog.
func (s *CatalogService) PopularDishes(limit int) []domain.PopularDish {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []domain.PopularDish
	for _, rest := range s.snapshot {
		for _, dish := range rest.Menu {
			all = append(all, domain.PopularDish{Dish: dish, RestaurantName: rest.Name})
		}
	}

	rand.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})

	if len(all) > limit {
		all = all[:limit]
	}
	return all
}
