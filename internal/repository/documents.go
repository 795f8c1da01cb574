package repository

import (
	"alcyxob/studio-admin/internal/domain"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field names as they appear in stored documents.
const (
	fieldName             = "name"
	fieldPrice            = "price"
	fieldType             = "type"
	fieldSessionsPerMonth = "sessionsPerMonth"
	fieldFeatures         = "features"
	fieldSchedule         = "schedule"

	fieldFirstName       = "firstName"
	fieldLastName        = "lastName"
	fieldEmail           = "email"
	fieldPhone           = "phone"
	fieldSubscriptionIDs = "subscriptionIds"
	fieldSubscriptionID  = "subscriptionId" // legacy single-plan form, read only
	fieldStartDate       = "startDate"
	fieldStatus          = "status"
)

// PlanFromDocument maps a stored plan into the domain type.
// A missing or unknown type makes the document unusable; every other field
// falls back to its zero value.
func PlanFromDocument(id string, doc Document) (domain.SubscriptionPlan, error) {
	plan := domain.NewPlanDefaults()
	plan.ID = id

	planType := domain.PlanType(stringField(doc, fieldType))
	if !planType.Valid() {
		return plan, fmt.Errorf("%w: plan %s has type %q", ErrMalformedDocument, id, planType)
	}
	plan.Type = planType
	plan.Name = stringField(doc, fieldName)

	if price, ok := decimalValue(doc[fieldPrice]); ok && !price.IsNegative() {
		plan.Price = price
	}
	if sessions, ok := intValue(doc[fieldSessionsPerMonth]); ok && sessions > 0 {
		plan.SessionsPerMonth = sessions
	}
	plan.Features = stringSlice(doc[fieldFeatures])
	if plan.IsGroup() {
		if schedule := stringSlice(doc[fieldSchedule]); len(schedule) > 0 {
			plan.Schedule = schedule
		}
	}
	return plan, nil
}

// PlanToDocument builds the full document written for a plan.
// It fails when the price cannot be stored without loss.
func PlanToDocument(plan *domain.SubscriptionPlan) (Document, error) {
	price, err := decimal128(plan.Price)
	if err != nil {
		return nil, err
	}
	features := plan.Features
	if features == nil {
		features = []string{}
	}
	doc := Document{
		fieldName:             plan.Name,
		fieldPrice:            price,
		fieldType:             string(plan.Type),
		fieldSessionsPerMonth: plan.SessionsPerMonth,
		fieldFeatures:         features,
	}
	if plan.IsGroup() && len(plan.Schedule) > 0 {
		doc[fieldSchedule] = plan.Schedule
	}
	return doc, nil
}

// ClientFromDocument maps a stored client into the domain type.
// Clients written by the old single-plan form carry subscriptionId instead of
// subscriptionIds; that value is lifted into the set.
func ClientFromDocument(id string, doc Document) domain.Client {
	client := domain.NewClientDefaults()
	client.ID = id
	client.FirstName = stringField(doc, fieldFirstName)
	client.LastName = stringField(doc, fieldLastName)
	client.Email = stringField(doc, fieldEmail)
	client.Phone = stringField(doc, fieldPhone)

	ids := stringSlice(doc[fieldSubscriptionIDs])
	if len(ids) == 0 {
		if legacy := stringField(doc, fieldSubscriptionID); legacy != "" {
			ids = []string{legacy}
		}
	}
	client.SubscriptionIDs = domain.Dedupe(ids)

	if start := dateValue(doc[fieldStartDate]); start != "" {
		client.StartDate = start
	}
	if status := domain.ClientStatus(stringField(doc, fieldStatus)); status.Valid() {
		client.Status = status
	}
	return client
}

// ClientToDocument builds the full document written for a client.
func ClientToDocument(client *domain.Client) Document {
	return Document{
		fieldFirstName:       client.FirstName,
		fieldLastName:        client.LastName,
		fieldEmail:           client.Email,
		fieldPhone:           client.Phone,
		fieldSubscriptionIDs: domain.Dedupe(client.SubscriptionIDs),
		fieldStartDate:       client.StartDate,
		fieldStatus:          string(client.Status),
	}
}

func stringField(doc Document, key string) string {
	s, _ := doc[key].(string)
	return strings.TrimSpace(s)
}

func stringSlice(v interface{}) []string {
	var items []interface{}
	switch t := v.(type) {
	case []string:
		out := make([]string, 0, len(t))
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case primitive.A:
		items = t
	case []interface{}:
		items = t
	default:
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func decimalValue(v interface{}) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, true
	case primitive.Decimal128:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(t), true
	case float32:
		return decimal.NewFromFloat32(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int32:
		return decimal.NewFromInt32(t), true
	case int64:
		return decimal.NewFromInt(t), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		return d, err == nil
	}
	return decimal.Zero, false
}

func intValue(v interface{}) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		if t > math.MaxInt32 || t < math.MinInt32 {
			return 0, false
		}
		return int(t), true
	case float64:
		if t != math.Trunc(t) || t > math.MaxInt32 || t < math.MinInt32 {
			return 0, false
		}
		return int(t), true
	}
	return 0, false
}

func dateValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if _, err := time.Parse(domain.DateLayout, s); err == nil {
			return s
		}
		// full timestamps keep their date part
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			return ts.UTC().Format(domain.DateLayout)
		}
	case time.Time:
		return t.UTC().Format(domain.DateLayout)
	case primitive.DateTime:
		return t.Time().UTC().Format(domain.DateLayout)
	}
	return ""
}

// CheckPrice reports whether d fits the stored price encoding.
func CheckPrice(d decimal.Decimal) error {
	_, err := decimal128(d)
	return err
}

func decimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("%w: %s does not fit a 34-digit decimal", ErrPriceOutOfRange, d.String())
	}
	return v, nil
}
