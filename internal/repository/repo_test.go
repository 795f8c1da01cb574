package repository_test

import (
	"alcyxob/studio-admin/internal/domain"
	"alcyxob/studio-admin/internal/repository"
	"alcyxob/studio-admin/internal/repository/memory"
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestPlanRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := repository.NewPlanRepository(store, quietLogger())

	plan := &domain.SubscriptionPlan{
		Name:             "Personal Training 4x",
		Price:            decimal.NewFromInt(315),
		Type:             domain.PlanTypePersonal,
		SessionsPerMonth: 4,
		Features:         []string{"1 op 1 personal training"},
	}
	id, err := repo.Create(ctx, plan)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Equal(t, id, plan.ID)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Personal Training 4x", got.Name)

	got.Name = "Personal Training 4x (new)"
	got.Features = nil
	require.NoError(t, repo.Replace(ctx, got))

	got, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Personal Training 4x (new)", got.Name)
	assert.Empty(t, got.Features, "replace is a full overwrite")

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, id), repository.ErrNotFound)
}

func TestPlanRepositoryListSkipsMalformed(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Set(ctx, repository.PlanCollection, "ok", repository.Document{"type": "group", "name": "SGT"}))
	require.NoError(t, store.Set(ctx, repository.PlanCollection, "bad", repository.Document{"type": "weekly"}))

	plans, err := repository.NewPlanRepository(store, quietLogger()).List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "ok", plans[0].ID)
}

func TestReplaceRequiresID(t *testing.T) {
	store := memory.NewStore()
	err := repository.NewPlanRepository(store, quietLogger()).Replace(context.Background(), &domain.SubscriptionPlan{Type: domain.PlanTypeGroup})
	assert.ErrorIs(t, err, repository.ErrMissingID)
	err = repository.NewClientRepository(store, quietLogger()).Replace(context.Background(), &domain.Client{})
	assert.ErrorIs(t, err, repository.ErrMissingID)
}

func TestClientRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewClientRepository(memory.NewStore(), quietLogger())

	client := &domain.Client{
		FirstName:       "Sanne",
		LastName:        "de Vries",
		Email:           "sanne@example.com",
		Phone:           "0612345678",
		SubscriptionIDs: []string{"pt-4x"},
		StartDate:       "2024-02-01",
		Status:          domain.StatusActive,
	}
	id, err := repo.Create(ctx, client)
	require.NoError(t, err)

	clients, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, id, clients[0].ID)
	assert.Equal(t, []string{"pt-4x"}, clients[0].SubscriptionIDs)

	client.SubscriptionIDs = []string{"sgt-2x"}
	require.NoError(t, repo.Replace(ctx, client))
	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"sgt-2x"}, got.SubscriptionIDs)

	require.NoError(t, repo.Delete(ctx, id))
	clients, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestClientRepositoryLogsLegacySubscriptionField(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Set(ctx, repository.ClientCollection, "c1", repository.Document{
		"firstName":      "Sanne",
		"subscriptionId": "pt-8x",
	}))

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	repo := repository.NewClientRepository(store, logger)

	got, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"pt-8x"}, got.SubscriptionIDs)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "c1", hook.LastEntry().Data["client_id"])
}
