package model_test

import (
	"context"
	"testing"

	"github.com/one-love/onelove/pkg/model"

	"github.com/stretchr/testify/assert"
)

func TestUserContext(t *testing.T) {
	id := uint(1000)
	email := "some@thing.dk"
	user := &model.User{
		ID:    id,
		Email: email,
	}

	ctx := context.Background()

	got, ok := model.GetUserFromContext(ctx)
	assert.Nil(t, got, "want nil when no user is in the context")
	assert.False(t, ok, "want an error when no user is in the context")

	ctx = model.NewContextWithUser(ctx, user)

	got, ok = model.GetUserFromContext(ctx)
	assert.True(t, ok)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, email, got.Email)
}

func TestCluster_FindProvider(t *testing.T) {
	cluster := &model.Cluster{
		Providers: []model.Provider{
			{ID: 1, Name: "digitalocean"},
			{ID: 2, Name: "aws"},
		},
	}

	provider := cluster.FindProvider("aws")
	assert.NotNil(t, provider)
	assert.Equal(t, uint(2), provider.ID)

	assert.Nil(t, cluster.FindProvider("gcp"))
}

func TestProvider_FindHost_ReturnsFirstMatch(t *testing.T) {
	provider := &model.Provider{
		Hosts: []model.Host{
			{ID: 1, Hostname: "web1", IP: "10.0.0.1"},
			{ID: 2, Hostname: "web1", IP: "10.0.0.2"},
			{ID: 3, Hostname: "db1", IP: "10.0.0.3"},
		},
	}

	host := provider.FindHost("web1")
	assert.NotNil(t, host)
	assert.Equal(t, uint(1), host.ID)

	assert.Nil(t, provider.FindHost("cache1"))
}
