//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bikefleet/internal/domain/bike"
	"bikefleet/internal/domain/rental"
	"bikefleet/internal/infra"
	"bikefleet/internal/infra/repository"
	"bikefleet/internal/pkg/clock"
	"bikefleet/internal/pkg/errs"
	"bikefleet/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================
// In-memory collaborators
// ============================================================

// passthroughTx runs the closure directly; the fakes below do their own
// locking, so there is no transaction to manage.
type passthroughTx struct{}

func (passthroughTx) Run(ctx context.Context, fn func(tx repository.DBTX) error) error {
	return fn(nil)
}

type fakeBikeRepo struct {
	mu       sync.Mutex
	statuses map[uuid.UUID]bike.Status
	chips    map[string]uuid.UUID
	casCalls int
}

func newFakeBikeRepo() *fakeBikeRepo {
	return &fakeBikeRepo{
		statuses: make(map[uuid.UUID]bike.Status),
		chips:    make(map[string]uuid.UUID),
	}
}

func (f *fakeBikeRepo) FindByID(_ context.Context, id uuid.UUID) (*bike.Bike, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.statuses[id]
	if !ok {
		return nil, infra.WrapRepoErr("bike not found", nil, infra.KindNotFound)
	}
	return bike.Reconstruct(id, nil, nil, nil, st)
}

func (f *fakeBikeRepo) FindByChip(ctx context.Context, chipID string) (*bike.Bike, error) {
	f.mu.Lock()
	id, ok := f.chips[chipID]
	f.mu.Unlock()
	if !ok {
		return nil, infra.WrapRepoErr("bike not found", nil, infra.KindNotFound)
	}
	return f.FindByID(ctx, id)
}

func (f *fakeBikeRepo) CompareAndSetStatus(_ context.Context, _ repository.DBTX, id uuid.UUID, from, to bike.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.casCalls++
	if f.statuses[id] != from {
		return infra.WrapRepoErr("bike status changed", nil, infra.KindConflict)
	}
	f.statuses[id] = to
	return nil
}

func (f *fakeBikeRepo) SetStatus(_ context.Context, _ repository.DBTX, id uuid.UUID, to bike.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[id] = to
	return nil
}

func (f *fakeBikeRepo) statusOf(id uuid.UUID) bike.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statuses[id]
}

type fakeRentalRepo struct {
	mu      sync.Mutex
	rentals map[uuid.UUID]*rental.Rental
}

func newFakeRentalRepo() *fakeRentalRepo {
	return &fakeRentalRepo{rentals: make(map[uuid.UUID]*rental.Rental)}
}

func (f *fakeRentalRepo) Create(_ context.Context, _ repository.DBTX, r *rental.Rental) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rentals[r.ID()] = r
	return nil
}

func (f *fakeRentalRepo) FindByIDForUpdate(_ context.Context, _ repository.DBTX, id uuid.UUID) (*rental.Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rentals[id]
	if !ok {
		return nil, infra.WrapRepoErr("rental not found", nil, infra.KindNotFound)
	}
	return r, nil
}

func (f *fakeRentalRepo) FindReservedByUserAndBike(_ context.Context, _ repository.DBTX, userID, bikeID uuid.UUID) (*rental.Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rentals {
		if r.UserID() == userID && r.BikeID() == bikeID && r.Status() == rental.StatusReserved {
			return r, nil
		}
	}
	return nil, infra.WrapRepoErr("reserved rental not found", nil, infra.KindNotFound)
}

func (f *fakeRentalRepo) Update(_ context.Context, _ repository.DBTX, r *rental.Rental) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rentals[r.ID()] = r
	return nil
}

func (f *fakeRentalRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rentals)
}

type fakeCardDirectory struct {
	users map[string]uuid.UUID
}

func (f *fakeCardDirectory) FindUserByCardUID(_ context.Context, cardUID string) (uuid.UUID, error) {
	id, ok := f.users[cardUID]
	if !ok {
		return uuid.Nil, infra.WrapRepoErr("card not found", nil, infra.KindNotFound)
	}
	return id, nil
}

type recordingPublisher struct {
	mu         sync.Mutex
	types      []string
	bikeFrames []string
}

func (p *recordingPublisher) Notify(_ uuid.UUID, msgType string, _ any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, msgType)
}

func (p *recordingPublisher) NotifyBikeStatus(_, _ uuid.UUID, bikeStatus string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bikeFrames = append(p.bikeFrames, bikeStatus)
}

type rentalFixture struct {
	cmds      commands.RentalCommands
	bikes     *fakeBikeRepo
	rentals   *fakeRentalRepo
	publisher *recordingPublisher
	clk       *clock.MockClock
}

func newRentalFixture() *rentalFixture {
	bikes := newFakeBikeRepo()
	rentals := newFakeRentalRepo()
	publisher := &recordingPublisher{}
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	cmds := commands.NewRentalCommands(
		rentals, bikes, &fakeCardDirectory{}, rental.NewDefaultPriceCalculator(),
		publisher, passthroughTx{}, clk,
	)
	return &rentalFixture{cmds: cmds, bikes: bikes, rentals: rentals, publisher: publisher, clk: clk}
}

// ============================================================
// Tests
// ============================================================

func TestStartRentalRace(t *testing.T) {
	t.Run("only one of two concurrent starts wins the bike", func(t *testing.T) {
		f := newRentalFixture()
		bikeID := uuid.New()
		f.bikes.statuses[bikeID] = bike.StatusAvailable
		riders := []uuid.UUID{uuid.New(), uuid.New()}

		results := make([]error, len(riders))
		var wg sync.WaitGroup
		for i, userID := range riders {
			i, userID := i, userID
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, results[i] = f.cmds.Start(context.Background(), userID, bikeID)
			}()
		}
		wg.Wait()

		var won, lost int
		for _, err := range results {
			if err == nil {
				won++
				continue
			}
			assert.True(t, errors.Is(err, errs.ErrBikeNotAvailable), "loser should see ErrBikeNotAvailable, got %v", err)
			lost++
		}
		assert.Equal(t, 1, won)
		assert.Equal(t, 1, lost)
		assert.Equal(t, 1, f.rentals.count(), "exactly one rental row")
		assert.Equal(t, bike.StatusRented, f.bikes.statusOf(bikeID))
	})

	t.Run("a start after the winner is rejected on the status swap", func(t *testing.T) {
		f := newRentalFixture()
		bikeID := uuid.New()
		f.bikes.statuses[bikeID] = bike.StatusAvailable

		_, err := f.cmds.Start(context.Background(), uuid.New(), bikeID)
		require.NoError(t, err)

		_, err = f.cmds.Start(context.Background(), uuid.New(), bikeID)
		assert.True(t, errors.Is(err, errs.ErrBikeNotAvailable))
		assert.Equal(t, 1, f.rentals.count())
	})

	t.Run("the winner's stream gets a rental frame and a bike frame", func(t *testing.T) {
		f := newRentalFixture()
		bikeID := uuid.New()
		f.bikes.statuses[bikeID] = bike.StatusAvailable

		_, err := f.cmds.Start(context.Background(), uuid.New(), bikeID)
		require.NoError(t, err)

		assert.Equal(t, []string{"rental_status"}, f.publisher.types)
		assert.Equal(t, []string{"rented"}, f.publisher.bikeFrames)
	})
}

func TestReserveRental(t *testing.T) {
	t.Run("reserves an available bike", func(t *testing.T) {
		f := newRentalFixture()
		bikeID := uuid.New()
		f.bikes.statuses[bikeID] = bike.StatusAvailable
		startAt := f.clk.Now().Add(2 * time.Hour)

		r, err := f.cmds.Reserve(context.Background(), uuid.New(), bikeID, startAt)
		require.NoError(t, err)
		assert.Equal(t, rental.StatusReserved, r.Status())
		assert.Equal(t, bike.StatusRented, f.bikes.statusOf(bikeID))
	})

	t.Run("a held bike is rejected before any write", func(t *testing.T) {
		f := newRentalFixture()
		bikeID := uuid.New()
		f.bikes.statuses[bikeID] = bike.StatusMaintenance

		_, err := f.cmds.Reserve(context.Background(), uuid.New(), bikeID, f.clk.Now())
		assert.True(t, errors.Is(err, errs.ErrBikeNotAvailable))
		assert.Equal(t, 0, f.bikes.casCalls, "rejection should not reach the status swap")
		assert.Equal(t, 0, f.rentals.count())
	})
}
