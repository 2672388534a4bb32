// Package worker implements the buffered worker pool for async decision
// persistence. This decouples analysis requests from database writes:
// - Per-league serialization so matchup upserts never race
// - Load shedding when the store falls behind
// - Graceful shutdown with flush guarantees
package worker

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/fantasybrain/roster-api/internal/logic"
	"github.com/fantasybrain/roster-api/internal/models"
)

var (
	decisionsQueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roster_decisions_queued_total",
		Help: "Total number of decision rows accepted for persistence",
	})

	decisionsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roster_decisions_written_total",
		Help: "Total number of decision rows written to the store",
	})

	decisionsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roster_decisions_failed_total",
		Help: "Total number of decision rows that failed to persist",
	})

	decisionsShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roster_decisions_load_shed_total",
		Help: "Total number of decision rows dropped because the queue was full",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "roster_decision_queue_depth",
		Help: "Current depth of the decision write queue",
	})
)

// PoolConfig configures the decision write pool.
type PoolConfig struct {
	WorkerCount  int
	QueueSize    int
	WriteTimeout time.Duration
	History      logic.HistoryService
	Logger       *zap.Logger
}

// Pool fans decision rows out to per-shard writers. Rows for the same
// league always land on the same shard, so writes within a league stay
// ordered and matchup upserts cannot race each other.
type Pool struct {
	config PoolConfig
	shards []chan models.DecisionRecord
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.SugaredLogger
}

func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}

	shards := make([]chan models.DecisionRecord, cfg.WorkerCount)
	for i := range shards {
		shards[i] = make(chan models.DecisionRecord, cfg.QueueSize/cfg.WorkerCount+1)
	}

	return &Pool{
		config: cfg,
		shards: shards,
		logger: cfg.Logger.Sugar(),
	}
}

// Start launches one writer goroutine per shard.
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i, shard := range p.shards {
		p.wg.Add(1)
		go p.writer(i, shard)
	}
	go p.reportQueueDepth()

	p.logger.Infow("decision write pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
	)
}

// Stop drains the queues and waits for in-flight writes.
func (p *Pool) Stop() {
	p.logger.Info("stopping decision write pool...")
	p.cancel()
	for _, shard := range p.shards {
		close(shard)
	}
	p.wg.Wait()
	p.logger.Info("decision write pool stopped")
}

// Enqueue accepts a decision row for persistence. Returns false when the
// row's shard is full; the caller logs and moves on.
func (p *Pool) Enqueue(rec models.DecisionRecord) (ok bool) {
	// Protect against sending on a closed shard during shutdown.
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("enqueue after shutdown, dropping decision", "decision_id", rec.ID)
			ok = false
		}
	}()

	shard := p.shards[p.shardFor(rec.LeagueID)]
	select {
	case shard <- rec:
		decisionsQueued.Inc()
		return true
	default:
		decisionsShed.Inc()
		return false
	}
}

func (p *Pool) shardFor(leagueID string) int {
	h := fnv.New32a()
	h.Write([]byte(leagueID))
	return int(h.Sum32()) % len(p.shards)
}

// QueueDepth returns the total rows waiting across all shards.
func (p *Pool) QueueDepth() int {
	depth := 0
	for _, shard := range p.shards {
		depth += len(shard)
	}
	return depth
}

func (p *Pool) writer(id int, shard chan models.DecisionRecord) {
	defer p.wg.Done()
	p.logger.Infow("decision writer started", "worker", id)

	for rec := range shard {
		ctx, cancel := context.WithTimeout(context.Background(), p.config.WriteTimeout)
		_, err := p.config.History.SaveDecision(ctx, rec)
		cancel()

		if err != nil {
			decisionsFailed.Inc()
			p.logger.Errorw("decision write failed",
				"decision_id", rec.ID, "league_id", rec.LeagueID, "error", err)
			continue
		}
		decisionsWritten.Inc()
	}
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(p.QueueDepth()))
		case <-p.ctx.Done():
			return
		}
	}
}
