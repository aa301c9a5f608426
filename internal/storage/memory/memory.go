// Package memory implements the storage contracts with mutex-guarded maps.
// It backs the test suites and the STORAGE_DRIVER=memory mode, and mirrors
// the relational backend's observable behavior: sentinel errors, timestamp
// maintenance, uniqueness enforcement and cascading deletes.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/avenn/stayfinder-be/internal/models"
	"github.com/avenn/stayfinder-be/internal/storage"
)

// Store holds every table in process. A single mutex guards all of them so
// cross-entity invariants (cascades, association cleanup) stay atomic.
type Store struct {
	mu             sync.RWMutex
	users          map[string]models.User
	places         map[string]models.Place
	reviews        map[string]models.Review
	amenities      map[string]models.Amenity
	placeAmenities map[string][]string
	events         []models.Event
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:          make(map[string]models.User),
		places:         make(map[string]models.Place),
		reviews:        make(map[string]models.Review),
		amenities:      make(map[string]models.Amenity),
		placeAmenities: make(map[string][]string),
	}
}

// Users returns the user table view of the store.
func (s *Store) Users() storage.UserStore { return &userStore{s} }

// Places returns the place table view of the store.
func (s *Store) Places() storage.PlaceStore { return &placeStore{s} }

// Reviews returns the review table view of the store.
func (s *Store) Reviews() storage.ReviewStore { return &reviewStore{s} }

// Amenities returns the amenity table view of the store.
func (s *Store) Amenities() storage.AmenityStore { return &amenityStore{s} }

// Events returns the audit trail view of the store.
func (s *Store) Events() storage.EventStore { return &eventStore{s} }

func now() time.Time {
	return time.Now().UTC()
}

type userStore struct{ s *Store }

func (st *userStore) Create(_ context.Context, user *models.User) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	if _, ok := st.s.users[user.ID]; ok {
		return storage.ErrDuplicate
	}
	for _, existing := range st.s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return storage.ErrDuplicate
		}
	}

	ts := now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = ts
	}
	user.UpdatedAt = user.CreatedAt
	st.s.users[user.ID] = *user
	return nil
}

func (st *userStore) GetByID(_ context.Context, id string) (*models.User, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	user, ok := st.s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &user, nil
}

func (st *userStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	for _, user := range st.s.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (st *userStore) List(_ context.Context) ([]models.User, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	users := make([]models.User, 0, len(st.s.users))
	for _, user := range st.s.users {
		users = append(users, user)
	}
	sortByCreation(users, func(u models.User) (time.Time, string) { return u.CreatedAt, u.ID })
	return users, nil
}

func (st *userStore) Update(_ context.Context, user *models.User) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	stored, ok := st.s.users[user.ID]
	if !ok {
		return storage.ErrNotFound
	}
	for id, existing := range st.s.users {
		if id != user.ID && strings.EqualFold(existing.Email, user.Email) {
			return storage.ErrDuplicate
		}
	}

	user.CreatedAt = stored.CreatedAt
	user.UpdatedAt = now()
	st.s.users[user.ID] = *user
	return nil
}

func (st *userStore) Delete(_ context.Context, id string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	if _, ok := st.s.users[id]; !ok {
		return storage.ErrNotFound
	}
	delete(st.s.users, id)

	// Cascade: the user's places (with their reviews and associations) and
	// the user's own reviews go with the account.
	for placeID, place := range st.s.places {
		if place.OwnerID == id {
			st.s.dropPlaceLocked(placeID)
		}
	}
	for reviewID, review := range st.s.reviews {
		if review.UserID == id {
			delete(st.s.reviews, reviewID)
		}
	}
	return nil
}

type placeStore struct{ s *Store }

func (st *placeStore) Create(_ context.Context, place *models.Place) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	if _, ok := st.s.places[place.ID]; ok {
		return storage.ErrDuplicate
	}

	ts := now()
	if place.CreatedAt.IsZero() {
		place.CreatedAt = ts
	}
	place.UpdatedAt = place.CreatedAt
	st.s.places[place.ID] = stripAssociations(*place)
	return nil
}

func (st *placeStore) GetByID(_ context.Context, id string) (*models.Place, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	place, ok := st.s.places[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &place, nil
}

func (st *placeStore) List(_ context.Context, filter storage.PlaceFilter) ([]models.Place, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	places := make([]models.Place, 0, len(st.s.places))
	for id, place := range st.s.places {
		if filter.OwnerID != "" && place.OwnerID != filter.OwnerID {
			continue
		}
		if filter.MinPrice != nil && place.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && place.Price > *filter.MaxPrice {
			continue
		}
		if filter.AmenityID != "" && !containsID(st.s.placeAmenities[id], filter.AmenityID) {
			continue
		}
		places = append(places, place)
	}
	sortByCreation(places, func(p models.Place) (time.Time, string) { return p.CreatedAt, p.ID })
	return places, nil
}

func (st *placeStore) Update(_ context.Context, place *models.Place) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	stored, ok := st.s.places[place.ID]
	if !ok {
		return storage.ErrNotFound
	}

	place.CreatedAt = stored.CreatedAt
	place.UpdatedAt = now()
	st.s.places[place.ID] = stripAssociations(*place)
	return nil
}

func (st *placeStore) Delete(_ context.Context, id string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	if _, ok := st.s.places[id]; !ok {
		return storage.ErrNotFound
	}
	st.s.dropPlaceLocked(id)
	return nil
}

func (st *placeStore) SetAmenities(_ context.Context, placeID string, amenityIDs []string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	if _, ok := st.s.places[placeID]; !ok {
		return storage.ErrNotFound
	}
	ids := make([]string, len(amenityIDs))
	copy(ids, amenityIDs)
	st.s.placeAmenities[placeID] = ids
	return nil
}

func (st *placeStore) AmenityIDs(_ context.Context, placeID string) ([]string, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	stored := st.s.placeAmenities[placeID]
	ids := make([]string, len(stored))
	copy(ids, stored)
	return ids, nil
}

type reviewStore struct{ s *Store }

func (st *reviewStore) Create(_ context.Context, review *models.Review) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	if _, ok := st.s.reviews[review.ID]; ok {
		return storage.ErrDuplicate
	}
	for _, existing := range st.s.reviews {
		if existing.UserID == review.UserID && existing.PlaceID == review.PlaceID {
			return storage.ErrDuplicate
		}
	}

	ts := now()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = ts
	}
	review.UpdatedAt = review.CreatedAt
	st.s.reviews[review.ID] = *review
	return nil
}

func (st *reviewStore) GetByID(_ context.Context, id string) (*models.Review, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	review, ok := st.s.reviews[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &review, nil
}

func (st *reviewStore) GetByUserAndPlace(_ context.Context, userID, placeID string) (*models.Review, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	for _, review := range st.s.reviews {
		if review.UserID == userID && review.PlaceID == placeID {
			r := review
			return &r, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (st *reviewStore) ListByPlace(_ context.Context, placeID string) ([]models.Review, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	reviews := make([]models.Review, 0)
	for _, review := range st.s.reviews {
		if review.PlaceID == placeID {
			reviews = append(reviews, review)
		}
	}
	sortByCreation(reviews, func(r models.Review) (time.Time, string) { return r.CreatedAt, r.ID })
	return reviews, nil
}

func (st *reviewStore) List(_ context.Context) ([]models.Review, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	reviews := make([]models.Review, 0, len(st.s.reviews))
	for _, review := range st.s.reviews {
		reviews = append(reviews, review)
	}
	sortByCreation(reviews, func(r models.Review) (time.Time, string) { return r.CreatedAt, r.ID })
	return reviews, nil
}

func (st *reviewStore) Update(_ context.Context, review *models.Review) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	stored, ok := st.s.reviews[review.ID]
	if !ok {
		return storage.ErrNotFound
	}
	for id, existing := range st.s.reviews {
		if id != review.ID && existing.UserID == review.UserID && existing.PlaceID == review.PlaceID {
			return storage.ErrDuplicate
		}
	}

	review.CreatedAt = stored.CreatedAt
	review.UpdatedAt = now()
	st.s.reviews[review.ID] = *review
	return nil
}

func (st *reviewStore) Delete(_ context.Context, id string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	if _, ok := st.s.reviews[id]; !ok {
		return storage.ErrNotFound
	}
	delete(st.s.reviews, id)
	return nil
}

type amenityStore struct{ s *Store }

func (st *amenityStore) Create(_ context.Context, amenity *models.Amenity) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	if _, ok := st.s.amenities[amenity.ID]; ok {
		return storage.ErrDuplicate
	}
	for _, existing := range st.s.amenities {
		if existing.Name == amenity.Name {
			return storage.ErrDuplicate
		}
	}

	ts := now()
	if amenity.CreatedAt.IsZero() {
		amenity.CreatedAt = ts
	}
	amenity.UpdatedAt = amenity.CreatedAt
	st.s.amenities[amenity.ID] = *amenity
	return nil
}

func (st *amenityStore) GetByID(_ context.Context, id string) (*models.Amenity, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	amenity, ok := st.s.amenities[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &amenity, nil
}

func (st *amenityStore) GetByName(_ context.Context, name string) (*models.Amenity, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	for _, amenity := range st.s.amenities {
		if amenity.Name == name {
			a := amenity
			return &a, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (st *amenityStore) List(_ context.Context) ([]models.Amenity, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	amenities := make([]models.Amenity, 0, len(st.s.amenities))
	for _, amenity := range st.s.amenities {
		amenities = append(amenities, amenity)
	}
	sortByCreation(amenities, func(a models.Amenity) (time.Time, string) { return a.CreatedAt, a.ID })
	return amenities, nil
}

func (st *amenityStore) Update(_ context.Context, amenity *models.Amenity) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	stored, ok := st.s.amenities[amenity.ID]
	if !ok {
		return storage.ErrNotFound
	}
	for id, existing := range st.s.amenities {
		if id != amenity.ID && existing.Name == amenity.Name {
			return storage.ErrDuplicate
		}
	}

	amenity.CreatedAt = stored.CreatedAt
	amenity.UpdatedAt = now()
	st.s.amenities[amenity.ID] = *amenity
	return nil
}

func (st *amenityStore) Delete(_ context.Context, id string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	if _, ok := st.s.amenities[id]; !ok {
		return storage.ErrNotFound
	}
	delete(st.s.amenities, id)
	for placeID, ids := range st.s.placeAmenities {
		st.s.placeAmenities[placeID] = removeID(ids, id)
	}
	return nil
}

type eventStore struct{ s *Store }

func (st *eventStore) Create(_ context.Context, event *models.Event) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = now()
	}
	stored := *event
	if event.SubjectID != nil {
		id := *event.SubjectID
		stored.SubjectID = &id
	}
	st.s.events = append(st.s.events, stored)
	return nil
}

func (st *eventStore) ListRecent(_ context.Context, limit int) ([]models.Event, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	if limit <= 0 || limit > len(st.s.events) {
		limit = len(st.s.events)
	}
	events := make([]models.Event, 0, limit)
	for i := len(st.s.events) - 1; i >= len(st.s.events)-limit; i-- {
		events = append(events, st.s.events[i])
	}
	return events, nil
}

// dropPlaceLocked removes a place with its reviews and amenity associations.
// Callers must hold the write lock.
func (s *Store) dropPlaceLocked(placeID string) {
	delete(s.places, placeID)
	delete(s.placeAmenities, placeID)
	for reviewID, review := range s.reviews {
		if review.PlaceID == placeID {
			delete(s.reviews, reviewID)
		}
	}
}

// stripAssociations drops the resolved amenity fields before storing; the
// association lives in placeAmenities, keyed like the relational join table.
func stripAssociations(place models.Place) models.Place {
	place.AmenityIDs = nil
	place.Amenities = nil
	return place
}

func sortByCreation[T any](items []T, key func(T) (time.Time, string)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if ti.Equal(tj) {
			return idi < idj
		}
		return ti.Before(tj)
	})
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}
