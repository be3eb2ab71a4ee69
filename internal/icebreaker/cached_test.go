package icebreaker

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pribylovaa/icebreaker-frame/internal/models"
	"github.com/pribylovaa/icebreaker-frame/mocks"
	"github.com/stretchr/testify/require"
)

// Тесты декоратора Cached: кэш — MockProfileCache, источник — фейковый каталог.

func newCachedWithMocks(t *testing.T, routes map[string]route) (*Cached, *mocks.MockProfileCache, *fakeDirectory) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mc := mocks.NewMockProfileCache(ctrl)
	dir := newDirectory(t, routes)
	return NewCached(New(dir.URL, dir.Client()), mc, 30*time.Second), mc, dir
}

// Попадание: каталог не вызывается.
func TestCached_Hit(t *testing.T) {
	c, mc, dir := newCachedWithMocks(t, nil)

	want := &models.Profile{WalletAddress: "0x1", DisplayName: "cached"}
	mc.EXPECT().Get(gomock.Any(), "fname/alice").Return(want, true, nil)

	got := c.ByUsername(context.Background(), "Alice")
	require.Equal(t, want, got)
	require.Zero(t, dir.Hits())
}

// Промах: загрузка из каталога и запись с TTL.
func TestCached_MissStoresFound(t *testing.T) {
	c, mc, dir := newCachedWithMocks(t, map[string]route{
		"/fid/42": {http.StatusOK, aliceJSON},
	})

	mc.EXPECT().Get(gomock.Any(), "fid/42").Return(nil, false, nil)
	mc.EXPECT().Set(gomock.Any(), "fid/42", gomock.Any(), 30*time.Second).
		DoAndReturn(func(_ context.Context, _ string, p *models.Profile, _ time.Duration) error {
			require.Equal(t, "alice", p.DisplayName)
			return nil
		})

	got := c.ByFID(context.Background(), 42)
	require.NotNil(t, got)
	require.Equal(t, 1, dir.Hits())
}

// Промах каталога не кэшируется.
func TestCached_NotFoundIsNotStored(t *testing.T) {
	c, mc, _ := newCachedWithMocks(t, nil)

	mc.EXPECT().Get(gomock.Any(), "ens/nobody.eth").Return(nil, false, nil)
	// Set не ожидается.

	require.Nil(t, c.ByENS(context.Background(), "nobody.eth"))
}

// Ошибки кэша не ломают lookup.
func TestCached_CacheErrorsAreIgnored(t *testing.T) {
	c, mc, _ := newCachedWithMocks(t, map[string]route{
		"/eth/0xABC": {http.StatusOK, aliceJSON},
	})

	mc.EXPECT().Get(gomock.Any(), "eth/0xabc").Return(nil, false, errors.New("redis down"))
	mc.EXPECT().Set(gomock.Any(), "eth/0xabc", gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	require.NotNil(t, c.ByAddress(context.Background(), "0xABC"))
}

func TestCached_EmptyInputs(t *testing.T) {
	c, _, dir := newCachedWithMocks(t, nil)
	ctx := context.Background()

	require.Nil(t, c.ByUsername(ctx, ""))
	require.Nil(t, c.ByFID(ctx, 0))
	require.Nil(t, c.ByAddress(ctx, " "))
	require.Nil(t, c.ByENS(ctx, ""))
	require.Zero(t, dir.Hits())
}
