package service

import (
	"alcyxob/studio-admin/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	personalFeatures = []string{
		"Duurzame voedingsadviezen",
		"1 op 1 personal training",
		"Elke 6 weken een progressie meting",
		"Elke 6 weken een nieuw trainingsschema",
	}
	groupFeatures = []string{
		"Aandacht voor techniek en verantwoord sporten",
		"In een groep van max 8 werken aan je persoonlijke doelstelling",
		"De gezelligheid en betrokkenheid van het samen trainen",
	}
	groupSchedule = []string{
		"Dinsdag 19:00-20:00",
		"Woensdag 20:00-21:00",
		"Donderdag 19:00-20:00",
		"Donderdag 20:00-21:00",
		"Zaterdag 9:30-10:30",
		"Zondag 10:00-11:00",
	}
)

// SeedPlans returns the studio's standard catalog. Each call returns fresh slices.
func SeedPlans() []domain.SubscriptionPlan {
	personal := func(id, name string, sessions int, price int64) domain.SubscriptionPlan {
		return domain.SubscriptionPlan{
			ID:               id,
			Name:             name,
			Price:            decimal.NewFromInt(price),
			Type:             domain.PlanTypePersonal,
			SessionsPerMonth: sessions,
			Features:         append([]string(nil), personalFeatures...),
		}
	}
	group := func(id, name string, sessions int, price int64) domain.SubscriptionPlan {
		return domain.SubscriptionPlan{
			ID:               id,
			Name:             name,
			Price:            decimal.NewFromInt(price),
			Type:             domain.PlanTypeGroup,
			SessionsPerMonth: sessions,
			Features:         append([]string(nil), groupFeatures...),
			Schedule:         append([]string(nil), groupSchedule...),
		}
	}

	return []domain.SubscriptionPlan{
		personal("pt-4x", "Personal Training 4x", 4, 315),
		personal("pt-8x", "Personal Training 8x", 8, 546),
		personal("pt-12x", "Personal Training 12x", 12, 693),
		group("sgt-1x", "Small Group Training 1x", 4, 60),
		group("sgt-2x", "Small Group Training 2x", 8, 100),
	}
}
