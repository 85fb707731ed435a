package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"souqeats/internal/auth"
	"souqeats/internal/domain"
)

// AdminService owns catalog writes: restaurant and dish CRUD plus the
// owner-facing open/closed toggle. Every write reloads the storefront
// snapshot on success.
type AdminService struct {
	restaurants RestaurantRepository
	dishes      DishRepository
	objects     ObjectStore
	catalog     *CatalogService
	now         func() time.Time
}

func NewAdminService(restaurants RestaurantRepository, dishes DishRepository, objects ObjectStore, catalog *CatalogService) *AdminService {
	return &AdminService{
		restaurants: restaurants,
		dishes:      dishes,
		objects:     objects,
		catalog:     catalog,
		now:         time.Now,
	}
}

// SaveRestaurant creates or updates a restaurant. When an image is
// attached it is uploaded first; an upload failure aborts before any row
// is touched.
func (s *AdminService) SaveRestaurant(ctx context.Context, role domain.Role, rest *domain.Restaurant, image *FileUpload) error {
	if !auth.Can(role, auth.ActionManageCatalog) {
		return domain.ErrForbidden
	}

	imageURL := ""
	if image != nil {
		key := fmt.Sprintf("restaurant-images/%d-%s", s.now().UnixMilli(), image.Filename)
		url, err := s.objects.Upload(ctx, key, image.ContentType, image.Body)
		if err != nil {
			return fmt.Errorf("upload restaurant image: %w", err)
		}
		imageURL = url
	}

	if rest.ID == 0 {
		rest.ImageURL = imageURL
		if err := s.restaurants.CreateRestaurant(rest); err != nil {
			return err
		}
	} else {
		if err := s.restaurants.UpdateRestaurant(rest); err != nil {
			return err
		}
		if imageURL != "" {
			if err := s.restaurants.UpdateRestaurantImage(rest.ID, imageURL); err != nil {
				return err
			}
			rest.ImageURL = imageURL
		}
	}

	s.reload()
	return nil
}

func (s *AdminService) DeleteRestaurant(role domain.Role, id int) error {
	if !auth.Can(role, auth.ActionManageCatalog) {
		return domain.ErrForbidden
	}

	rows, err := s.restaurants.DeleteRestaurant(id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	s.reload()
	return nil
}

// SaveDish creates or updates a dish, with the same upload-first rule as
// SaveRestaurant.
func (s *AdminService) SaveDish(ctx context.Context, role domain.Role, dish *domain.Dish, image *FileUpload) error {
	if !auth.Can(role, auth.ActionManageCatalog) {
		return domain.ErrForbidden
	}

	imageURL := ""
	if image != nil {
		key := fmt.Sprintf("dish-images/%d-%s", s.now().UnixMilli(), image.Filename)
		url, err := s.objects.Upload(ctx, key, image.ContentType, image.Body)
		if err != nil {
			return fmt.Errorf("upload dish image: %w", err)
		}
		imageURL = url
	}

	if dish.ID == 0 {
		dish.ImageURL = imageURL
		if err := s.dishes.CreateDish(dish); err != nil {
			return err
		}
	} else {
		if err := s.dishes.UpdateDish(dish); err != nil {
			return err
		}
		if imageURL != "" {
			if err := s.dishes.UpdateDishImage(dish.RestaurantID, dish.ID, imageURL); err != nil {
				return err
			}
			dish.ImageURL = imageURL
		}
	}

	s.reload()
	return nil
}

func (s *AdminService) DeleteDish(role domain.Role, restaurantID, dishID int) error {
	if !auth.Can(role, auth.ActionManageCatalog) {
		return domain.ErrForbidden
	}

	rows, err := s.dishes.DeleteDish(restaurantID, dishID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	s.reload()
	return nil
}

// SetOpen flips a restaurant's open flag. Owners may only touch their own
// restaurant; admins may touch any.
func (s *AdminService) SetOpen(role domain.Role, userID, restaurantID int, open bool) error {
	if !auth.Can(role, auth.ActionToggleOpen) {
		return domain.ErrForbidden
	}

	if role == domain.RoleOwner {
		rest, err := s.restaurants.GetRestaurant(restaurantID)
		if err != nil {
			return err
		}
		if rest.OwnerID != userID {
			return domain.ErrForbidden
		}
	}

	if err := s.restaurants.SetRestaurantOpen(restaurantID, open); err != nil {
		return err
	}

	s.reload()
	return nil
}

// OwnedRestaurants lists the restaurants assigned to an owner account.
func (s *AdminService) OwnedRestaurants(role domain.Role, userID int) ([]domain.Restaurant, error) {
	if !auth.Can(role, auth.ActionViewOwner) {
		return nil, domain.ErrForbidden
	}
	if role == domain.RoleAdmin {
		return s.catalog.Restaurants(), nil
	}
	return s.restaurants.ListRestaurantsByOwner(userID)
}

func (s *AdminService) reload() {
	if err := s.catalog.Load(); err != nil {
		log.Printf("reload catalog: %v", err)
	}
}
