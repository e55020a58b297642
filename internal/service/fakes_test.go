package service

import (
	"context"
	"time"

	"github.com/iliyamo/cinema-management/internal/model"
	"github.com/iliyamo/cinema-management/internal/repository"
)

// Function adapters for the read-only getter interfaces.

type cinemaGetterFunc func(ctx context.Context, id uint64) (*model.Cinema, error)

func (f cinemaGetterFunc) GetByID(ctx context.Context, id uint64) (*model.Cinema, error) {
	return f(ctx, id)
}

type auditoriumGetterFunc func(ctx context.Context, id uint64) (*model.Auditorium, error)

func (f auditoriumGetterFunc) GetByID(ctx context.Context, id uint64) (*model.Auditorium, error) {
	return f(ctx, id)
}

type movieGetterFunc func(ctx context.Context, id uint64) (*model.Movie, error)

func (f movieGetterFunc) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	return f(ctx, id)
}

type tagGetterFunc func(ctx context.Context, id uint64) (*model.Tag, error)

func (f tagGetterFunc) GetByID(ctx context.Context, id uint64) (*model.Tag, error) {
	return f(ctx, id)
}

type projectionGetterFunc func(ctx context.Context, id uint64) (*model.Projection, error)

func (f projectionGetterFunc) GetByID(ctx context.Context, id uint64) (*model.Projection, error) {
	return f(ctx, id)
}

type seatGetterFunc func(ctx context.Context, id uint64) (*model.Seat, error)

func (f seatGetterFunc) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	return f(ctx, id)
}

type userGetterFunc func(ctx context.Context, id uint64) (*model.User, error)

func (f userGetterFunc) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return f(ctx, id)
}

// memCinemaStore is an in-memory CinemaStore.
type memCinemaStore struct {
	cinemas map[uint64]model.Cinema
	nextID  uint64
	sold    map[uint64]bool
}

func newMemCinemaStore() *memCinemaStore {
	return &memCinemaStore{cinemas: map[uint64]model.Cinema{}, sold: map[uint64]bool{}}
}

func (s *memCinemaStore) Create(_ context.Context, c *model.Cinema) error {
	s.nextID++
	c.ID = s.nextID
	s.cinemas[c.ID] = *c
	return nil
}

func (s *memCinemaStore) CreateWithAuditorium(ctx context.Context, c *model.Cinema, a *model.Auditorium) error {
	if err := s.Create(ctx, c); err != nil {
		return err
	}
	a.ID = 1
	a.CinemaID = c.ID
	return nil
}

func (s *memCinemaStore) GetByID(_ context.Context, id uint64) (*model.Cinema, error) {
	c, ok := s.cinemas[id]
	if !ok {
		return nil, repository.ErrCinemaNotFound
	}
	return &c, nil
}

func (s *memCinemaStore) List(_ context.Context) ([]model.Cinema, error) {
	out := make([]model.Cinema, 0, len(s.cinemas))
	for _, c := range s.cinemas {
		out = append(out, c)
	}
	return out, nil
}

func (s *memCinemaStore) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, c := range s.cinemas {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *memCinemaStore) UpdateName(_ context.Context, id uint64, name string) error {
	c, ok := s.cinemas[id]
	if !ok {
		return repository.ErrCinemaNotFound
	}
	c.Name = name
	s.cinemas[id] = c
	return nil
}

func (s *memCinemaStore) HasSoldTickets(_ context.Context, id uint64) (bool, error) {
	return s.sold[id], nil
}

func (s *memCinemaStore) Delete(_ context.Context, id uint64) error {
	delete(s.cinemas, id)
	return nil
}

// memAuditoriumStore is an in-memory AuditoriumStore.
type memAuditoriumStore struct {
	auditoriums map[uint64]model.Auditorium
	nextID      uint64
	sold        map[uint64]bool
}

func newMemAuditoriumStore() *memAuditoriumStore {
	return &memAuditoriumStore{auditoriums: map[uint64]model.Auditorium{}, sold: map[uint64]bool{}}
}

func (s *memAuditoriumStore) Create(_ context.Context, a *model.Auditorium) error {
	s.nextID++
	a.ID = s.nextID
	s.auditoriums[a.ID] = *a
	return nil
}

func (s *memAuditoriumStore) GetByID(_ context.Context, id uint64) (*model.Auditorium, error) {
	a, ok := s.auditoriums[id]
	if !ok {
		return nil, repository.ErrAuditoriumNotFound
	}
	return &a, nil
}

func (s *memAuditoriumStore) List(_ context.Context) ([]model.Auditorium, error) {
	out := make([]model.Auditorium, 0, len(s.auditoriums))
	for _, a := range s.auditoriums {
		out = append(out, a)
	}
	return out, nil
}

func (s *memAuditoriumStore) ListByCinema(_ context.Context, cinemaID uint64) ([]model.Auditorium, error) {
	out := []model.Auditorium{}
	for _, a := range s.auditoriums {
		if a.CinemaID == cinemaID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memAuditoriumStore) ExistsByCinemaAndName(_ context.Context, cinemaID uint64, name string) (bool, error) {
	for _, a := range s.auditoriums {
		if a.CinemaID == cinemaID && a.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *memAuditoriumStore) UpdateName(_ context.Context, id uint64, name string) error {
	a, ok := s.auditoriums[id]
	if !ok {
		return repository.ErrAuditoriumNotFound
	}
	a.Name = name
	s.auditoriums[id] = a
	return nil
}

func (s *memAuditoriumStore) HasSoldTickets(_ context.Context, id uint64) (bool, error) {
	return s.sold[id], nil
}

func (s *memAuditoriumStore) Delete(_ context.Context, id uint64) error {
	delete(s.auditoriums, id)
	return nil
}

// memProjectionStore is an in-memory ProjectionStore that records
// whether any method was called.
type memProjectionStore struct {
	projections map[uint64]model.Projection
	nextID      uint64
	tickets     map[uint64]bool
	touched     bool
}

func newMemProjectionStore() *memProjectionStore {
	return &memProjectionStore{projections: map[uint64]model.Projection{}, tickets: map[uint64]bool{}}
}

func (s *memProjectionStore) Create(_ context.Context, p *model.Projection) error {
	s.touched = true
	s.nextID++
	p.ID = s.nextID
	s.projections[p.ID] = *p
	return nil
}

func (s *memProjectionStore) GetByID(_ context.Context, id uint64) (*model.Projection, error) {
	s.touched = true
	p, ok := s.projections[id]
	if !ok {
		return nil, repository.ErrProjectionNotFound
	}
	return &p, nil
}

func (s *memProjectionStore) List(_ context.Context) ([]model.Projection, error) {
	s.touched = true
	out := make([]model.Projection, 0, len(s.projections))
	for _, p := range s.projections {
		out = append(out, p)
	}
	return out, nil
}

func (s *memProjectionStore) ListByMovie(_ context.Context, movieID uint64) ([]model.Projection, error) {
	s.touched = true
	out := []model.Projection{}
	for _, p := range s.projections {
		if p.MovieID == movieID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memProjectionStore) ListByAuditorium(_ context.Context, auditoriumID uint64) ([]model.Projection, error) {
	s.touched = true
	out := []model.Projection{}
	for _, p := range s.projections {
		if p.AuditoriumID == auditoriumID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memProjectionStore) ExistsAt(_ context.Context, auditoriumID uint64, startsAt time.Time, excludeID uint64) (bool, error) {
	s.touched = true
	for _, p := range s.projections {
		if p.ID != excludeID && p.AuditoriumID == auditoriumID && p.StartsAt.Equal(startsAt.UTC()) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memProjectionStore) HasTickets(_ context.Context, id uint64) (bool, error) {
	s.touched = true
	return s.tickets[id], nil
}

func (s *memProjectionStore) Update(_ context.Context, p *model.Projection) error {
	s.touched = true
	s.projections[p.ID] = *p
	return nil
}

func (s *memProjectionStore) Delete(_ context.Context, id uint64) error {
	s.touched = true
	delete(s.projections, id)
	return nil
}

// memTicketStore is an in-memory TicketStore. Bonus points per user are
// tracked so purchase tests can observe the counter.
type memTicketStore struct {
	tickets     map[uint64]model.Ticket
	nextID      uint64
	bonus       map[uint64]uint32
	purchaseErr error
}

func newMemTicketStore() *memTicketStore {
	return &memTicketStore{tickets: map[uint64]model.Ticket{}, bonus: map[uint64]uint32{}}
}

func (s *memTicketStore) Purchase(_ context.Context, userID, projectionID uint64, seatIDs []uint64, priceCents uint32, reference string) ([]model.Ticket, error) {
	if s.purchaseErr != nil {
		return nil, s.purchaseErr
	}
	out := make([]model.Ticket, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		s.nextID++
		t := model.Ticket{
			ID:           s.nextID,
			UserID:       userID,
			SeatID:       seatID,
			ProjectionID: projectionID,
			PriceCents:   priceCents,
			Reference:    reference,
		}
		s.tickets[t.ID] = t
		out = append(out, t)
	}
	s.bonus[userID] += uint32(len(seatIDs))
	return out, nil
}

func (s *memTicketStore) GetByID(_ context.Context, id uint64) (*model.Ticket, error) {
	t, ok := s.tickets[id]
	if !ok {
		return nil, repository.ErrTicketNotFound
	}
	return &t, nil
}

func (s *memTicketStore) List(_ context.Context) ([]model.Ticket, error) {
	out := make([]model.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		out = append(out, t)
	}
	return out, nil
}

func (s *memTicketStore) ListByUser(_ context.Context, userID uint64) ([]model.Ticket, error) {
	out := []model.Ticket{}
	for _, t := range s.tickets {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *memTicketStore) ListByProjection(_ context.Context, projectionID uint64) ([]model.Ticket, error) {
	out := []model.Ticket{}
	for _, t := range s.tickets {
		if t.ProjectionID == projectionID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *memTicketStore) ExistsForSeat(_ context.Context, projectionID, seatID uint64) (bool, error) {
	for _, t := range s.tickets {
		if t.ProjectionID == projectionID && t.SeatID == seatID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memTicketStore) ExistsForUser(_ context.Context, userID uint64) (bool, error) {
	for _, t := range s.tickets {
		if t.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memTicketStore) Update(_ context.Context, t *model.Ticket) error {
	if _, ok := s.tickets[t.ID]; !ok {
		return repository.ErrTicketNotFound
	}
	s.tickets[t.ID] = *t
	return nil
}

func (s *memTicketStore) Delete(_ context.Context, id uint64) error {
	delete(s.tickets, id)
	return nil
}

// memUserStore is an in-memory UserStore.
type memUserStore struct {
	users  map[uint64]model.User
	nextID uint64
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[uint64]model.User{}}
}

func (s *memUserStore) Create(_ context.Context, u *model.User) error {
	s.nextID++
	u.ID = s.nextID
	u.IsActive = true
	s.users[u.ID] = *u
	return nil
}

func (s *memUserStore) GetByID(_ context.Context, id uint64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (s *memUserStore) GetByUserName(_ context.Context, userName string) (*model.User, error) {
	for _, u := range s.users {
		if u.UserName == userName {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *memUserStore) ExistsByUserName(_ context.Context, userName string) (bool, error) {
	for _, u := range s.users {
		if u.UserName == userName {
			return true, nil
		}
	}
	return false, nil
}

func (s *memUserStore) Update(_ context.Context, u *model.User) error {
	if _, ok := s.users[u.ID]; !ok {
		return repository.ErrUserNotFound
	}
	s.users[u.ID] = *u
	return nil
}

func (s *memUserStore) Delete(_ context.Context, id uint64) error {
	delete(s.users, id)
	return nil
}
