package wagerule_test

import (
	"testing"
	"time"

	"go-shien/internal/wagerule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestResolve(t *testing.T) {
	clientID := uuid.New()
	otherClientID := uuid.New()
	periodStart := date("2026-08-01")
	periodEnd := date("2026-08-31")

	t.Run("client specific rule beats the default", func(t *testing.T) {
		clientRule := wagerule.WageRule{
			ID:        uuid.New(),
			ClientID:  &clientID,
			Name:      "per-client hourly",
			ValidFrom: date("2026-01-01"),
		}
		defaultRule := wagerule.WageRule{
			ID:        uuid.New(),
			Name:      "facility default",
			IsDefault: true,
			ValidFrom: date("2026-06-01"),
		}

		got := wagerule.Resolve([]wagerule.WageRule{defaultRule, clientRule}, clientID.String(), periodStart, periodEnd)

		assert.NotNil(t, got)
		assert.Equal(t, clientRule.ID, got.ID)
	})

	t.Run("latest valid_from wins within a bucket", func(t *testing.T) {
		older := wagerule.WageRule{
			ID:        uuid.New(),
			ClientID:  &clientID,
			ValidFrom: date("2025-04-01"),
		}
		newer := wagerule.WageRule{
			ID:        uuid.New(),
			ClientID:  &clientID,
			ValidFrom: date("2026-04-01"),
		}

		got := wagerule.Resolve([]wagerule.WageRule{older, newer}, clientID.String(), periodStart, periodEnd)

		assert.Equal(t, newer.ID, got.ID)
	})

	t.Run("same valid_from falls back to created_at then id", func(t *testing.T) {
		validFrom := date("2026-04-01")
		created := date("2026-04-02")
		first := wagerule.WageRule{
			ID:        uuid.MustParse("00000000-0000-0000-0000-000000000001"),
			ClientID:  &clientID,
			ValidFrom: validFrom,
			CreatedAt: created,
		}
		second := wagerule.WageRule{
			ID:        uuid.MustParse("00000000-0000-0000-0000-000000000002"),
			ClientID:  &clientID,
			ValidFrom: validFrom,
			CreatedAt: created.Add(time.Hour),
		}

		got := wagerule.Resolve([]wagerule.WageRule{second, first}, clientID.String(), periodStart, periodEnd)
		assert.Equal(t, second.ID, got.ID)

		// Identical created_at: the larger id wins, regardless of slice order.
		second.CreatedAt = created
		got = wagerule.Resolve([]wagerule.WageRule{second, first}, clientID.String(), periodStart, periodEnd)
		assert.Equal(t, second.ID, got.ID)
		got = wagerule.Resolve([]wagerule.WageRule{first, second}, clientID.String(), periodStart, periodEnd)
		assert.Equal(t, second.ID, got.ID)
	})

	t.Run("rules outside the period are skipped", func(t *testing.T) {
		ended := date("2026-07-31")
		expired := wagerule.WageRule{
			ID:         uuid.New(),
			ClientID:   &clientID,
			ValidFrom:  date("2026-01-01"),
			ValidUntil: &ended,
		}
		future := wagerule.WageRule{
			ID:        uuid.New(),
			ClientID:  &clientID,
			ValidFrom: date("2026-09-01"),
		}
		defaultRule := wagerule.WageRule{
			ID:        uuid.New(),
			Name:      "facility default",
			IsDefault: true,
			ValidFrom: date("2026-01-01"),
		}

		got := wagerule.Resolve([]wagerule.WageRule{expired, future, defaultRule}, clientID.String(), periodStart, periodEnd)

		assert.Equal(t, defaultRule.ID, got.ID)
	})

	t.Run("another client's rule never applies", func(t *testing.T) {
		foreign := wagerule.WageRule{
			ID:        uuid.New(),
			ClientID:  &otherClientID,
			ValidFrom: date("2026-01-01"),
		}

		got := wagerule.Resolve([]wagerule.WageRule{foreign}, clientID.String(), periodStart, periodEnd)

		assert.Nil(t, got)
	})

	t.Run("non-default org rule without client never applies", func(t *testing.T) {
		orphan := wagerule.WageRule{
			ID:        uuid.New(),
			ValidFrom: date("2026-01-01"),
		}

		got := wagerule.Resolve([]wagerule.WageRule{orphan}, clientID.String(), periodStart, periodEnd)

		assert.Nil(t, got)
	})

	t.Run("rule overlapping only part of the period still covers it", func(t *testing.T) {
		until := date("2026-08-10")
		partial := wagerule.WageRule{
			ID:         uuid.New(),
			ClientID:   &clientID,
			ValidFrom:  date("2026-05-01"),
			ValidUntil: &until,
		}

		got := wagerule.Resolve([]wagerule.WageRule{partial}, clientID.String(), periodStart, periodEnd)

		assert.Equal(t, partial.ID, got.ID)
	})
}
