package api

import (
	"os"

	"fleet-experiment/tarmac/internal/common"
	"fleet-experiment/tarmac/internal/db"
	"fleet-experiment/tarmac/internal/db/repositories"
	"fleet-experiment/tarmac/internal/logging"
	"fleet-experiment/tarmac/internal/metrics"
	"fleet-experiment/tarmac/internal/services"
)

type Repositories struct {
	Runs     *repositories.RunRepository
	RunStats *repositories.RunStatsRepo
	Keys     *repositories.KeysRepo
}

type Services struct {
	Cache     common.CacheInterface
	Scenario  *services.ScenarioService
	Queue     *common.ScenarioQueueService
	URLSigner *common.URLSignerService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
}

func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Runs:     repositories.NewRunRepository(db.PgDB),
		RunStats: repositories.NewRunStatsRepo(db.DB, metricsReg),
		Keys:     repositories.NewApiKeysRepo(db.DB),
	}

	redisClient := common.NewRedisClient()

	// The Redis cache shares documents between replicas; without Redis
	// configured, fall back to the in-process cache.
	var cache common.CacheInterface
	if os.Getenv("REDIS_HOST") != "" {
		cache = common.NewRedisCacheService(redisClient)
		logging.Info("Using Redis scenario cache")
	} else {
		cache = common.NewCacheService(1800, 600)
		logging.Info("Using in-memory scenario cache")
	}

	signingKey := os.Getenv("DOWNLOAD_SIGNING_KEY")
	if signingKey == "" {
		signingKey = "tarmac-dev-signing-key"
		logging.Warn("DOWNLOAD_SIGNING_KEY not set, using development default")
	}

	scenarioSvc := services.NewScenarioService(repos.Runs, cache, metricsReg)

	svcs := &Services{
		Cache:     cache,
		Scenario:  scenarioSvc,
		Queue:     common.NewScenarioQueueService(redisClient),
		URLSigner: common.NewURLSignerService([]byte(signingKey), redisClient),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
	}, nil
}
