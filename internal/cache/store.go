package cache

import (
	"context"

	"github.com/fantasybrain/roster-api/internal/models"
)

// KindInjuries shares the default lifetime; injury reports move as fast as
// the daily slate does.
const KindInjuries = "injuries"

// League-independent signals share one scope.
const scopeGlobal = "global"

// Refresh reconciles one request's collaborator signals with the cache.
// Maps the caller supplied are written through; maps the caller left empty
// are backfilled from the last fresh copy, when one exists. The returned
// value is always usable, a cold cache simply leaves the gaps in place.
func (c *SignalCache) Refresh(ctx context.Context, leagueID string, sig models.Signals) models.Signals {
	if len(sig.TodayGames) > 0 {
		c.Set(ctx, KindTodayGames, scopeGlobal, sig.TodayGames)
	} else {
		c.Get(ctx, KindTodayGames, scopeGlobal, &sig.TodayGames)
	}

	if len(sig.Schedule) > 0 {
		c.Set(ctx, KindSchedule, scopeGlobal, sig.Schedule)
	} else {
		c.Get(ctx, KindSchedule, scopeGlobal, &sig.Schedule)
	}

	if len(sig.Injuries) > 0 {
		c.Set(ctx, KindInjuries, scopeGlobal, sig.Injuries)
	} else {
		c.Get(ctx, KindInjuries, scopeGlobal, &sig.Injuries)
	}

	if len(sig.Expert) > 0 {
		c.Set(ctx, KindExpert, leagueID, sig.Expert)
	} else {
		c.Get(ctx, KindExpert, leagueID, &sig.Expert)
	}

	return sig
}
