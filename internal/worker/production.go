package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/fantasybrain/roster-api/internal/logic"
)

// pgProductionSource reads per-game fantasy production from the
// player_game_logs table the stat sync job maintains.
type pgProductionSource struct {
	pg logic.PgPool
}

func NewProductionSource(pg logic.PgPool) ProductionSource {
	return &pgProductionSource{pg: pg}
}

func (s *pgProductionSource) AverageProduction(ctx context.Context, playerName string, from, to time.Time) (float64, bool, error) {
	var avg float64
	var games int
	err := s.pg.QueryRow(ctx, `
		SELECT COALESCE(AVG(fantasy_points), 0), COUNT(*)
		FROM player_game_logs
		WHERE player_name = $1 AND game_date >= $2 AND game_date < $3
	`, playerName, from, to).Scan(&avg, &games)
	if err != nil {
		return 0, false, fmt.Errorf("production lookup for %s: %w", playerName, err)
	}
	return avg, games > 0, nil
}
