package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemService(store *memStore) Service {
	return NewService(store, store, store, nil)
}

func TestRandomOperationsKeepInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewSource(seed))
			store := newMemStore()
			for i := 0; i < 4; i++ {
				store.addSession(fmt.Sprintf("s%d", i), 1+rng.Intn(3))
			}
			for i := 0; i < 6; i++ {
				store.addUser(fmt.Sprintf("u%d", i))
			}
			svc := newMemService(store)
			ctx := context.Background()

			for step := 0; step < 200; step++ {
				uid := fmt.Sprintf("u%d", rng.Intn(6))
				sid := fmt.Sprintf("s%d", rng.Intn(4))
				if rng.Intn(3) == 0 {
					require.NoError(t, svc.Unbook(ctx, uid, sid))
				} else {
					_, err := svc.Book(ctx, uid, sid)
					if err != nil {
						require.True(t, errors.Is(err, ErrSessionFull) || errors.Is(err, ErrAlreadyBooked), "unexpected error %v", err)
					}
				}

				ok, why := store.consistent()
				require.True(t, ok, "step %d: %s", step, why)
			}
		})
	}
}

func TestConcurrentBookingsNeverOvershootCapacity(t *testing.T) {
	const (
		capacity = 5
		bookers  = 40
	)
	store := newMemStore()
	store.addSession("s1", capacity)
	for i := 0; i < bookers; i++ {
		store.addUser(fmt.Sprintf("u%d", i))
	}
	svc := newMemService(store)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		booked int
		full   int
	)
	for i := 0; i < bookers; i++ {
		wg.Add(1)
		go func(uid string) {
			defer wg.Done()
			_, err := svc.Book(context.Background(), uid, "s1")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				booked++
			case errors.Is(err, ErrSessionFull):
				full++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(fmt.Sprintf("u%d", i))
	}
	wg.Wait()

	assert.Equal(t, capacity, booked)
	assert.Equal(t, bookers-capacity, full)
	s, err := store.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, s.Participants, capacity)
	ok, why := store.consistent()
	assert.True(t, ok, why)
}

func TestDoubleBookingAddsOneEntry(t *testing.T) {
	store := newMemStore()
	store.addSession("s1", 3)
	store.addUser("u1")
	svc := newMemService(store)
	ctx := context.Background()

	_, err := svc.Book(ctx, "u1", "s1")
	require.NoError(t, err)
	_, err = svc.Book(ctx, "u1", "s1")
	require.ErrorIs(t, err, ErrAlreadyBooked)
	assert.Equal(t, "User already booked in this session", err.Error())

	s, _ := store.GetByID(ctx, "s1")
	u, _ := store.FindByID(ctx, "u1")
	assert.Equal(t, []string{"u1"}, []string(s.Participants))
	assert.Equal(t, []string{"s1"}, []string(u.BookedSessions))
}

func TestUnbookNeverBookedIsNoop(t *testing.T) {
	store := newMemStore()
	store.addSession("s1", 2)
	store.addSession("s2", 2)
	store.addUser("u1")
	store.addUser("u2")
	svc := newMemService(store)
	ctx := context.Background()

	_, err := svc.Book(ctx, "u2", "s1")
	require.NoError(t, err)
	_, err = svc.Book(ctx, "u1", "s2")
	require.NoError(t, err)

	require.NoError(t, svc.Unbook(ctx, "u1", "s1"))

	s1, _ := store.GetByID(ctx, "s1")
	u1, _ := store.FindByID(ctx, "u1")
	assert.Equal(t, []string{"u2"}, []string(s1.Participants))
	assert.Equal(t, []string{"s2"}, []string(u1.BookedSessions))
}

func TestBookingFullSessionMutatesNothing(t *testing.T) {
	store := newMemStore()
	store.addSession("s1", 1)
	store.addUser("u1")
	store.addUser("u2")
	svc := newMemService(store)
	ctx := context.Background()

	_, err := svc.Book(ctx, "u1", "s1")
	require.NoError(t, err)

	_, err = svc.Book(ctx, "u2", "s1")
	require.ErrorIs(t, err, ErrSessionFull)
	assert.Equal(t, "Session is full", err.Error())

	s, _ := store.GetByID(ctx, "s1")
	u2, _ := store.FindByID(ctx, "u2")
	assert.Equal(t, []string{"u1"}, []string(s.Participants))
	assert.Empty(t, u2.BookedSessions)
}

func TestListUserSessionsExpandsRecords(t *testing.T) {
	store := newMemStore()
	store.addSession("s1", 2)
	store.addSession("s2", 2)
	store.addUser("u1")
	svc := newMemService(store)
	ctx := context.Background()

	_, err := svc.Book(ctx, "u1", "s1")
	require.NoError(t, err)
	_, err = svc.Book(ctx, "u1", "s2")
	require.NoError(t, err)

	sessions, err := svc.ListUserSessions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "session s1", sessions[0].Name)
	assert.Equal(t, 2, sessions[1].Capacity)
}
