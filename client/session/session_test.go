package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reconnect/client"
)

func countingFetch(user *client.User, err error, calls *int) FetchFunc {
	return func(ctx context.Context) (*client.User, error) {
		*calls++
		return user, err
	}
}

func TestLoadCachesSuccess(t *testing.T) {
	calls := 0
	store := NewStore(countingFetch(&client.User{ID: 1, FullName: "Ann Chovey", IsOnboarded: true}, nil, &calls))

	state := store.Load(context.Background())
	require.True(t, state.IsAuthenticated())
	assert.True(t, state.IsOnboarded())
	assert.Equal(t, "Ann Chovey", state.User.FullName)

	store.Load(context.Background())
	store.Load(context.Background())
	assert.Equal(t, 1, calls)
}

func TestLoadDoesNotRetryFailure(t *testing.T) {
	calls := 0
	store := NewStore(countingFetch(nil, errors.New("unauthorized"), &calls))

	state := store.Load(context.Background())
	assert.False(t, state.IsAuthenticated())
	assert.Error(t, state.Err)

	store.Load(context.Background())
	store.Load(context.Background())
	assert.Equal(t, 1, calls, "a failed fetch must stay cached until invalidated")
}

func TestInvalidateForcesRefetch(t *testing.T) {
	calls := 0
	store := NewStore(countingFetch(&client.User{ID: 1}, nil, &calls))

	store.Load(context.Background())
	store.Invalidate()
	store.Load(context.Background())
	assert.Equal(t, 2, calls)
}

func TestRefreshAfterFailure(t *testing.T) {
	calls := 0
	var fetchErr error = errors.New("unauthorized")
	store := NewStore(func(ctx context.Context) (*client.User, error) {
		calls++
		if fetchErr != nil {
			return nil, fetchErr
		}
		return &client.User{ID: 3, IsOnboarded: false}, nil
	})

	state := store.Load(context.Background())
	require.Error(t, state.Err)

	fetchErr = nil
	state = store.Refresh(context.Background())
	require.True(t, state.IsAuthenticated())
	assert.False(t, state.IsOnboarded())
	assert.Equal(t, 2, calls)
}

func TestInvalidateDuringFetchDiscardsResult(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	var mu sync.Mutex
	calls := 0
	store := NewStore(func(ctx context.Context) (*client.User, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(started)
			<-release
			return &client.User{ID: 1, FullName: "Ann Chovey"}, nil
		}
		return nil, errors.New("unauthorized")
	})

	var subMu sync.Mutex
	var sawUserAfterInvalidate bool
	invalidated := false
	store.Subscribe(func(s State) {
		subMu.Lock()
		defer subMu.Unlock()
		if invalidated && s.IsAuthenticated() {
			sawUserAfterInvalidate = true
		}
	})

	done := make(chan struct{})
	go func() {
		store.Load(context.Background())
		close(done)
	}()

	// Logout while the current-user fetch is still on the wire.
	<-started
	subMu.Lock()
	invalidated = true
	subMu.Unlock()
	store.Invalidate()
	close(release)
	<-done

	state := store.State()
	assert.False(t, state.IsAuthenticated(), "late fetch must not resurrect the logged-out session")
	assert.NoError(t, state.Err)

	subMu.Lock()
	assert.False(t, sawUserAfterInvalidate, "no subscriber may observe the stale user")
	subMu.Unlock()

	// The discarded outcome left nothing cached; the next Load fetches.
	state = store.Load(context.Background())
	assert.Error(t, state.Err)
	mu.Lock()
	assert.Equal(t, 2, calls)
	mu.Unlock()
}

func TestRefreshDuringFetchStartsNewFetch(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	var mu sync.Mutex
	calls := 0
	store := NewStore(func(ctx context.Context) (*client.User, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(started)
			<-release
			return &client.User{ID: 1, FullName: "Ann Chovey"}, nil
		}
		return &client.User{ID: 2, FullName: "Bo Vine"}, nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		store.Load(context.Background())
	}()

	<-started
	state := store.Refresh(context.Background())
	require.True(t, state.IsAuthenticated())
	assert.Equal(t, "Bo Vine", state.User.FullName, "refresh must fetch anew, not hand back the in-flight result")

	close(release)
	wg.Wait()

	assert.Equal(t, "Bo Vine", store.State().User.FullName)
	mu.Lock()
	assert.Equal(t, 2, calls)
	mu.Unlock()
}

func TestSubscribeNotifies(t *testing.T) {
	store := NewStore(countingFetch(&client.User{ID: 5}, nil, new(int)))

	var states []State
	cancel := store.Subscribe(func(s State) { states = append(states, s) })

	store.Load(context.Background())

	// Initial snapshot, loading, resolved.
	require.GreaterOrEqual(t, len(states), 3)
	assert.False(t, states[0].IsAuthenticated())
	assert.True(t, states[1].Loading)
	assert.True(t, states[len(states)-1].IsAuthenticated())

	seen := len(states)
	cancel()
	store.Invalidate()
	assert.Equal(t, seen, len(states), "cancelled subscriber must not be notified")
}
