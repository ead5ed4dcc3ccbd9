package services

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/moftahak/studio-service/internal/models"
)

// LibraryRegistry is the read-only content-library collaborator: static
// catalogs of placeable item definitions per room type.
type LibraryRegistry interface {
	ListItems(roomType models.SlideType) []models.LibraryItem
}

// StaticLibraryRegistry is the built-in catalog set.
type StaticLibraryRegistry struct{}

var builtinCatalogs = map[models.SlideType][]models.LibraryItem{
	models.SlideTypeKitchen: {
		{ID: "kitchen-oven", Name: "Oven", Icon: "oven", DefaultPrice: 1800, Category: "appliance"},
		{ID: "kitchen-fridge", Name: "Refrigerator", Icon: "fridge", DefaultPrice: 2400, Category: "appliance"},
		{ID: "kitchen-dishwasher", Name: "Dishwasher", Icon: "dishwasher", DefaultPrice: 1100, Category: "appliance"},
		{ID: "kitchen-microwave", Name: "Microwave", Icon: "microwave", DefaultPrice: 350, Category: "appliance"},
		{ID: "kitchen-sink", Name: "Sink", Icon: "sink", DefaultPrice: 600, Category: "fixture"},
		{ID: "kitchen-cabinets", Name: "Cabinets", Icon: "cabinets", DefaultPrice: 3200, Category: "furniture"},
	},
	models.SlideTypeBathroom: {
		{ID: "bathroom-toilet", Name: "Toilet", Icon: "toilet", DefaultPrice: 450, Category: "fixture"},
		{ID: "bathroom-shower", Name: "Shower", Icon: "shower", DefaultPrice: 1200, Category: "fixture"},
		{ID: "bathroom-bathtub", Name: "Bathtub", Icon: "bathtub", DefaultPrice: 1600, Category: "fixture"},
		{ID: "bathroom-vanity", Name: "Vanity", Icon: "vanity", DefaultPrice: 900, Category: "furniture"},
		{ID: "bathroom-mirror", Name: "Mirror", Icon: "mirror", DefaultPrice: 220, Category: "decor"},
	},
	models.SlideTypeBedroom: {
		{ID: "bedroom-bed", Name: "Bed", Icon: "bed", DefaultPrice: 1500, Category: "furniture"},
		{ID: "bedroom-wardrobe", Name: "Wardrobe", Icon: "wardrobe", DefaultPrice: 1300, Category: "furniture"},
		{ID: "bedroom-nightstand", Name: "Nightstand", Icon: "nightstand", DefaultPrice: 280, Category: "furniture"},
		{ID: "bedroom-dresser", Name: "Dresser", Icon: "dresser", DefaultPrice: 750, Category: "furniture"},
		{ID: "bedroom-tv", Name: "TV", Icon: "tv", DefaultPrice: 800, Category: "appliance"},
	},
	models.SlideTypeLivingRoom: {
		{ID: "living-sofa", Name: "Sofa", Icon: "sofa", DefaultPrice: 2200, Category: "furniture"},
		{ID: "living-coffee-table", Name: "Coffee Table", Icon: "coffee-table", DefaultPrice: 480, Category: "furniture"},
		{ID: "living-tv-stand", Name: "TV Stand", Icon: "tv-stand", DefaultPrice: 650, Category: "furniture"},
		{ID: "living-armchair", Name: "Armchair", Icon: "armchair", DefaultPrice: 850, Category: "furniture"},
		{ID: "living-rug", Name: "Rug", Icon: "rug", DefaultPrice: 400, Category: "decor"},
	},
}

func (StaticLibraryRegistry) ListItems(roomType models.SlideType) []models.LibraryItem {
	return builtinCatalogs[roomType]
}

// LibraryCacheService fronts a registry with an explicit, injected
// cache instead of module-level state, so lifecycle and invalidation
// stay controllable.
type LibraryCacheService struct {
	registry LibraryRegistry
	cache    *gocache.Cache
}

func NewLibraryCacheService(registry LibraryRegistry, ttl time.Duration) *LibraryCacheService {
	return &LibraryCacheService{
		registry: registry,
		cache:    gocache.New(ttl, 2*ttl),
	}
}

// ListItems returns a copy of the catalog for a room type, serving from
// cache when warm.
func (s *LibraryCacheService) ListItems(roomType models.SlideType) []models.LibraryItem {
	key := string(roomType)
	if cached, ok := s.cache.Get(key); ok {
		return cloneItems(cached.([]models.LibraryItem))
	}
	items := s.registry.ListItems(roomType)
	s.cache.Set(key, items, gocache.DefaultExpiration)
	return cloneItems(items)
}

// FindItem scans every room catalog for the definition with the id.
func (s *LibraryCacheService) FindItem(itemID string) (models.LibraryItem, bool) {
	for _, roomType := range []models.SlideType{
		models.SlideTypeKitchen, models.SlideTypeBedroom,
		models.SlideTypeLivingRoom, models.SlideTypeBathroom,
	} {
		for _, item := range s.ListItems(roomType) {
			if item.ID == itemID {
				return item, true
			}
		}
	}
	return models.LibraryItem{}, false
}

// Invalidate drops one room type's cached catalog.
func (s *LibraryCacheService) Invalidate(roomType models.SlideType) {
	s.cache.Delete(string(roomType))
}

// InvalidateAll drops every cached catalog.
func (s *LibraryCacheService) InvalidateAll() {
	s.cache.Flush()
}

// Refresh re-reads one room type from the registry and re-primes the
// cache.
func (s *LibraryCacheService) Refresh(roomType models.SlideType) []models.LibraryItem {
	items := s.registry.ListItems(roomType)
	s.cache.Set(string(roomType), items, gocache.DefaultExpiration)
	return cloneItems(items)
}

func cloneItems(items []models.LibraryItem) []models.LibraryItem {
	out := make([]models.LibraryItem, len(items))
	copy(out, items)
	return out
}
