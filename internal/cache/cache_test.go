package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/pribylovaa/icebreaker-frame/internal/models"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты для пакета cache:
// — поднимают реальный Redis через testcontainers-go;
// — проверяют промах, запись/чтение профиля, истечение TTL и изоляцию по префиксу.
//
// Запуск:
//   GO_TEST_INTEGRATION=1 go test ./internal/cache -v -race -count=1

func startRedis(t *testing.T) string {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "docker.io/redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
	}

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func sampleProfile() *models.Profile {
	return &models.Profile{
		WalletAddress: "0x1111111111111111",
		DisplayName:   "alice",
		Channels: []models.Channel{
			{Type: "farcaster", IsVerified: true, Metadata: []models.ChannelMetadata{{Name: "fid", Value: "42"}}},
		},
	}
}

func TestNewRedisCache_BadURL(t *testing.T) {
	t.Parallel()

	_, err := NewRedisCache(context.Background(), "not-a-url", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse url")
}

func TestIntegration_GetSet(t *testing.T) {
	url := startRedis(t)
	ctx := context.Background()

	c, err := NewRedisCache(ctx, url, "test:")
	require.NoError(t, err)
	defer c.Close()

	_, ok, err := c.Get(ctx, "fid/42")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, "fid/42", sampleProfile(), time.Minute))

	got, ok, err := c.Get(ctx, "fid/42")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, sampleProfile(), got)

	// nil не пишется.
	require.NoError(t, c.Set(ctx, "fid/43", nil, time.Minute))
	_, ok, err = c.Get(ctx, "fid/43")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestIntegration_TTLAndPrefix(t *testing.T) {
	url := startRedis(t)
	ctx := context.Background()

	a, err := NewRedisCache(ctx, url, "a:")
	require.NoError(t, err)
	defer a.Close()
	b, err := NewRedisCache(ctx, url, "b:")
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.Set(ctx, "fname/alice", sampleProfile(), 500*time.Millisecond))

	_, ok, err := b.Get(ctx, "fname/alice")
	require.NoError(t, err)
	require.False(t, ok, "different prefix must not see the key")

	require.Eventually(t, func() bool {
		_, ok, err := a.Get(ctx, "fname/alice")
		return err == nil && !ok
	}, 5*time.Second, 100*time.Millisecond)
}
