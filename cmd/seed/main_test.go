package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-ddd-event-management/internal/domain/repository/repotest"
	"github.com/oksasatya/go-ddd-event-management/pkg/helpers"
)

func TestSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	users := repotest.NewUsers()
	events := repotest.NewEvents()

	require.NoError(t, seed(ctx, users, events, bcrypt.MinCost))
	require.NoError(t, seed(ctx, users, events, bcrypt.MinCost))

	u, err := users.GetByUsername(ctx, demoUsername)
	require.NoError(t, err)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, demoPassword))

	list, err := events.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Launch", list[0].Name)
	require.NotNil(t, list[0].Description)
	assert.Equal(t, "kickoff", *list[0].Description)
}
