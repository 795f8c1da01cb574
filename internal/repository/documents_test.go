package repository

import (
	"alcyxob/studio-admin/internal/domain"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPlanFromDocument(t *testing.T) {
	doc := Document{
		"name":             "Small Group Training 1x",
		"price":            int32(60),
		"type":             "group",
		"sessionsPerMonth": int64(4),
		"features":         primitive.A{"Techniek", "", 42, "Max 8 personen"},
		"schedule":         []interface{}{"Dinsdag 19:00-20:00"},
	}

	plan, err := PlanFromDocument("sgt-1x", doc)
	require.NoError(t, err)
	assert.Equal(t, "sgt-1x", plan.ID)
	assert.Equal(t, domain.PlanTypeGroup, plan.Type)
	assert.True(t, plan.Price.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, 4, plan.SessionsPerMonth)
	assert.Equal(t, []string{"Techniek", "Max 8 personen"}, plan.Features)
	assert.Equal(t, []string{"Dinsdag 19:00-20:00"}, plan.Schedule)
}

func TestPlanFromDocumentDefaults(t *testing.T) {
	plan, err := PlanFromDocument("p1", Document{"type": "personal", "price": -5.0, "sessionsPerMonth": 2.5})
	require.NoError(t, err)
	assert.True(t, plan.Price.IsZero(), "negative price falls back to zero")
	assert.Zero(t, plan.SessionsPerMonth)
	assert.NotNil(t, plan.Features)
	assert.Empty(t, plan.Features)
}

func TestPlanFromDocumentDropsScheduleOnPersonal(t *testing.T) {
	plan, err := PlanFromDocument("p1", Document{"type": "personal", "schedule": []string{"Ma 9:00"}})
	require.NoError(t, err)
	assert.Nil(t, plan.Schedule)
}

func TestPlanFromDocumentRejectsUnknownType(t *testing.T) {
	for _, doc := range []Document{{}, {"type": "flex"}, {"type": 1}} {
		_, err := PlanFromDocument("bad", doc)
		assert.ErrorIs(t, err, ErrMalformedDocument)
	}
}

func TestPlanPriceEncodings(t *testing.T) {
	d128, err := primitive.ParseDecimal128("546.50")
	require.NoError(t, err)

	tests := []struct {
		name  string
		price interface{}
		want  string
	}{
		{name: "decimal128", price: d128, want: "546.5"},
		{name: "double", price: 99.95, want: "99.95"},
		{name: "int", price: 315, want: "315"},
		{name: "string", price: " 12.5 ", want: "12.5"},
		{name: "garbage", price: "twelve", want: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := PlanFromDocument("p", Document{"type": "personal", "price": tt.price})
			require.NoError(t, err)
			assert.Equal(t, tt.want, plan.Price.String())
		})
	}
}

func TestPlanDocumentRoundTrip(t *testing.T) {
	in := domain.SubscriptionPlan{
		ID:               "sgt-2x",
		Name:             "Small Group Training 2x",
		Price:            decimal.RequireFromString("100.25"),
		Type:             domain.PlanTypeGroup,
		SessionsPerMonth: 8,
		Features:         []string{"a", "b"},
		Schedule:         []string{"Zondag 10:00-11:00"},
	}
	doc, err := PlanToDocument(&in)
	require.NoError(t, err)
	_, hasID := doc["_id"]
	assert.False(t, hasID)
	assert.IsType(t, primitive.Decimal128{}, doc["price"])

	out, err := PlanFromDocument(in.ID, doc)
	require.NoError(t, err)
	assert.True(t, in.Price.Equal(out.Price))
	out.Price = in.Price
	assert.Equal(t, in, out)
}

func TestPlanToDocumentRejectsPriceBeyondDecimal128(t *testing.T) {
	in := domain.SubscriptionPlan{
		Name:             "Jaarabonnement",
		Price:            decimal.RequireFromString("12345678901234567890123456789012345.5"),
		Type:             domain.PlanTypePersonal,
		SessionsPerMonth: 4,
	}
	_, err := PlanToDocument(&in)
	assert.ErrorIs(t, err, ErrPriceOutOfRange)

	for _, ok := range []string{"0.1", "1e40", "693"} {
		assert.NoError(t, CheckPrice(decimal.RequireFromString(ok)), ok)
	}
}

func TestPlanSessionsOutOfIntRange(t *testing.T) {
	for _, sessions := range []interface{}{1e300, -1e300, float64(math.MaxInt32) + 1, int64(math.MaxInt64)} {
		plan, err := PlanFromDocument("p", Document{"type": "personal", "sessionsPerMonth": sessions})
		require.NoError(t, err)
		assert.Zero(t, plan.SessionsPerMonth, "%v", sessions)
	}

	plan, err := PlanFromDocument("p", Document{"type": "personal", "sessionsPerMonth": 12.0})
	require.NoError(t, err)
	assert.Equal(t, 12, plan.SessionsPerMonth)
}

func TestClientFromDocument(t *testing.T) {
	doc := Document{
		"firstName":       " Sanne ",
		"lastName":        "de Vries",
		"email":           "sanne@example.com",
		"phone":           "0612345678",
		"subscriptionIds": primitive.A{"pt-4x", "sgt-1x", "pt-4x"},
		"startDate":       "2024-01-15",
		"status":          "inactive",
	}

	c := ClientFromDocument("c1", doc)
	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, "Sanne", c.FirstName)
	assert.Equal(t, []string{"pt-4x", "sgt-1x"}, c.SubscriptionIDs)
	assert.Equal(t, "2024-01-15", c.StartDate)
	assert.Equal(t, domain.StatusInactive, c.Status)
}

func TestClientFromDocumentDefaults(t *testing.T) {
	c := ClientFromDocument("c1", Document{"status": "paused", "startDate": "yesterday"})
	assert.Equal(t, domain.StatusActive, c.Status)
	assert.Equal(t, domain.Today(), c.StartDate)
	assert.NotNil(t, c.SubscriptionIDs)
	assert.Empty(t, c.SubscriptionIDs)
}

func TestClientFromDocumentLegacySubscriptionID(t *testing.T) {
	c := ClientFromDocument("c1", Document{"subscriptionId": "pt-8x"})
	assert.Equal(t, []string{"pt-8x"}, c.SubscriptionIDs)

	c = ClientFromDocument("c2", Document{"subscriptionId": "pt-8x", "subscriptionIds": []string{"sgt-1x"}})
	assert.Equal(t, []string{"sgt-1x"}, c.SubscriptionIDs, "the set wins over the legacy field")
}

func TestClientStartDateEncodings(t *testing.T) {
	ts := time.Date(2023, 9, 1, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, "2023-09-01", ClientFromDocument("c", Document{"startDate": ts}).StartDate)
	assert.Equal(t, "2023-09-01", ClientFromDocument("c", Document{"startDate": primitive.NewDateTimeFromTime(ts)}).StartDate)
	assert.Equal(t, "2023-09-01", ClientFromDocument("c", Document{"startDate": "2023-09-01T22:30:00Z"}).StartDate)
}

func TestClientToDocumentNeverWritesLegacyField(t *testing.T) {
	doc := ClientToDocument(&domain.Client{SubscriptionIDs: []string{"a", "a", "b"}, Status: domain.StatusActive})
	_, legacy := doc["subscriptionId"]
	assert.False(t, legacy)
	assert.Equal(t, []string{"a", "b"}, doc["subscriptionIds"])
}
