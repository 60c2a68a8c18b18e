package session

import (
	"context"
	"errors"
	"testing"
	"zoodash/internal/testutil"
	"zoodash/internal/zooapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDenied = &zooapi.HttpError{StatusCode: 401, Body: "unauthorized"}

func operator() *zooapi.User {
	return &zooapi.User{ID: 1, Username: "keeper", FullName: "Head Keeper"}
}

func TestStore_StartsChecking(t *testing.T) {
	store := NewStore(&testutil.MockClient{}, &testutil.MockLogger{})
	assert.Equal(t, StateChecking, store.State())
	assert.Nil(t, store.User())
}

func TestEstablish_ExistingSession(t *testing.T) {
	api := &testutil.MockClient{
		MeFn: func(_ context.Context) (*zooapi.User, error) { return operator(), nil },
	}
	store := NewStore(api, &testutil.MockLogger{})

	store.Establish(context.Background())

	assert.Equal(t, StateAuthenticated, store.State())
	require.NotNil(t, store.User())
	assert.Equal(t, "keeper", store.User().Username)
	assert.Equal(t, 0, api.RefreshCalls)
}

func TestEstablish_RefreshRecoversSession(t *testing.T) {
	calls := 0
	api := &testutil.MockClient{
		MeFn: func(_ context.Context) (*zooapi.User, error) {
			calls++
			if calls == 1 {
				return nil, errDenied
			}
			return operator(), nil
		},
	}
	store := NewStore(api, &testutil.MockLogger{})

	store.Establish(context.Background())

	assert.Equal(t, StateAuthenticated, store.State())
	assert.Equal(t, 1, api.RefreshCalls)
	assert.Equal(t, 2, api.MeCalls)
}

func TestEstablish_SettlesAnonymous(t *testing.T) {
	api := &testutil.MockClient{
		MeFn: func(_ context.Context) (*zooapi.User, error) { return nil, errDenied },
	}
	store := NewStore(api, &testutil.MockLogger{})

	store.Establish(context.Background())

	assert.Equal(t, StateAnonymous, store.State())
	assert.Nil(t, store.User())
	// exactly one refresh between the two identity checks
	assert.Equal(t, 1, api.RefreshCalls)
	assert.Equal(t, 2, api.MeCalls)
}

func TestEstablish_RefreshFailureIsNotFatal(t *testing.T) {
	calls := 0
	api := &testutil.MockClient{
		MeFn: func(_ context.Context) (*zooapi.User, error) {
			calls++
			if calls == 1 {
				return nil, errDenied
			}
			return operator(), nil
		},
		RefreshFn: func(_ context.Context) error { return errors.New("backend down") },
	}
	store := NewStore(api, &testutil.MockLogger{})

	store.Establish(context.Background())

	// second Me still ran and succeeded
	assert.Equal(t, StateAuthenticated, store.State())
}

func TestLogin_Success(t *testing.T) {
	api := &testutil.MockClient{
		LoginFn: func(_ context.Context, _, _ string) (*zooapi.User, error) {
			return &zooapi.User{ID: 1, Username: "stale-name"}, nil
		},
		MeFn: func(_ context.Context) (*zooapi.User, error) { return operator(), nil },
	}
	store := NewStore(api, &testutil.MockLogger{})

	err := store.Login(context.Background(), "keeper", "secret")

	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, store.State())
	// identity comes from the who-am-I check, not the login response
	assert.Equal(t, "Head Keeper", store.User().FullName)
}

func TestLogin_BadCredentials(t *testing.T) {
	api := &testutil.MockClient{
		LoginFn: func(_ context.Context, _, _ string) (*zooapi.User, error) {
			return nil, errDenied
		},
	}
	store := NewStore(api, &testutil.MockLogger{})

	err := store.Login(context.Background(), "keeper", "wrong")

	assert.Error(t, err)
	assert.Equal(t, StateChecking, store.State())
	assert.Equal(t, 0, api.MeCalls)
}

func TestLogout_AlwaysSettlesAnonymous(t *testing.T) {
	api := &testutil.MockClient{
		MeFn:     func(_ context.Context) (*zooapi.User, error) { return operator(), nil },
		LogoutFn: func(_ context.Context) error { return errors.New("backend down") },
	}
	logger := &testutil.MockLogger{}
	store := NewStore(api, logger)

	store.Establish(context.Background())
	require.Equal(t, StateAuthenticated, store.State())

	store.Logout(context.Background())

	assert.Equal(t, StateAnonymous, store.State())
	assert.Nil(t, store.User())
	assert.Equal(t, 1, api.LogoutCalls)
}
