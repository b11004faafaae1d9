package session_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/session"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisStoreIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	store     *session.RedisStore
}

func (suite *RedisStoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	store, err := session.NewRedisStore(ctx, session.RedisConfig{Addr: endpoint})
	suite.Require().NoError(err)
	suite.store = store
}

func (suite *RedisStoreIntegrationTestSuite) TearDownSuite() {
	if suite.store != nil {
		suite.Require().NoError(suite.store.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RedisStoreIntegrationTestSuite) TestSaveAndLoad() {
	ctx := context.Background()

	_, err := suite.store.Load(ctx, "unknown")
	suite.ErrorIs(err, ports.ErrSessionNotFound)

	suite.Require().NoError(suite.store.Save(ctx, "s1", map[string]string{"cart_session_key": "k1"}, time.Minute))
	suite.Require().NoError(suite.store.Save(ctx, "s1", map[string]string{"cart_session_key": "k2"}, time.Minute))

	got, err := suite.store.Load(ctx, "s1")
	suite.Require().NoError(err)
	suite.Equal(map[string]string{"cart_session_key": "k2"}, got)
}

func (suite *RedisStoreIntegrationTestSuite) TestExpiry() {
	ctx := context.Background()
	suite.Require().NoError(suite.store.Save(ctx, "short", map[string]string{"a": "b"}, time.Second))

	suite.Eventually(func() bool {
		_, err := suite.store.Load(ctx, "short")
		return err != nil
	}, 5*time.Second, 100*time.Millisecond)
}

func TestRedisStoreIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreIntegrationTestSuite))
}
