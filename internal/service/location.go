package service

import (
	"context"
	"log"

	"star-burger/internal/domain"
)

// LocationService resolves free-text addresses to coordinates. Lookups go
// cache-first (Redis, then the locations table) and fall back to the external
// geocoder; successful network results are written through to both stores.
// Every external failure degrades to an unknown location instead of an error,
// so a flaky geocoder can never break order registration or listing.
type LocationService struct {
	repo     LocationRepository
	cache    LocationCache
	geocoder Geocoder
}

func NewLocationService(repo LocationRepository, cache LocationCache, geocoder Geocoder) *LocationService {
	return &LocationService{
		repo:     repo,
		cache:    cache,
		geocoder: geocoder,
	}
}

// Resolve returns the coordinates for an address, or nil when they cannot be
// determined. Addresses are matched by exact string; textual variants of the
// same place resolve independently.
func (s *LocationService) Resolve(ctx context.Context, address string) *domain.Coordinates {
	if address == "" {
		return nil
	}

	key := s.cache.LocationKey(address)
	if coords, err := s.cache.Get(ctx, key); err == nil && coords != nil {
		return coords
	}

	if location, err := s.repo.GetByAddress(address); err != nil {
		log.Printf("location lookup for %q failed: %v", address, err)
	} else if location != nil {
		if err := s.cache.Set(ctx, key, location.Coordinates); err != nil {
			log.Printf("Warning: failed to cache location %q: %v", address, err)
		}
		coords := location.Coordinates
		return &coords
	}

	coords, err := s.geocoder.FetchCoordinates(ctx, address)
	if err != nil {
		log.Printf("geocoding %q failed: %v", address, err)
		return nil
	}
	if coords == nil {
		return nil
	}

	// Insert is idempotent; a concurrent writer landing the same address
	// first is not an error.
	if err := s.repo.Insert(address, *coords); err != nil {
		log.Printf("Warning: failed to persist location %q: %v", address, err)
	}
	if err := s.cache.Set(ctx, key, *coords); err != nil {
		log.Printf("Warning: failed to cache location %q: %v", address, err)
	}

	return coords
}

// KnownLocations returns the already-resolved coordinates for a batch of
// addresses in one read, with no network calls. Addresses that were never
// geocoded are simply absent from the result.
func (s *LocationService) KnownLocations(addresses []string) map[string]domain.Coordinates {
	locations, err := s.repo.GetByAddresses(addresses)
	if err != nil {
		log.Printf("batch location lookup failed: %v", err)
		return map[string]domain.Coordinates{}
	}
	return locations
}
