package cmd

import (
	"log/slog"

	httpin "kitchen/internal/adapters/in/http"
	kafkaout "kitchen/internal/adapters/out/kafka"
	"kitchen/internal/adapters/out/postgres"
	redisout "kitchen/internal/adapters/out/redis"
	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/application/usecases/queries"
	"kitchen/internal/core/ports"
	"kitchen/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use-case handlers. Everything is
// created per call except the shared connections it holds.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   ports.OrderNotifier
	cache      queries.PacingCache
	logger     *slog.Logger
}

// NewCompositionRoot builds the root over the shared connections. The
// notifier and cache may be nil when Kafka or Redis are not configured;
// dependent components degrade gracefully.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) CompositionRoot {
	root := CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}

	if config.KafkaHost != "" {
		writer := kafkaout.NewWriter([]string{config.KafkaHost}, config.KafkaOrderChangedTopic)
		root.notifier = kafkaout.NewOrderNotifier(writer)
	}
	if redisClient != nil {
		root.cache = redisout.NewPacingCache(redisClient, 0)
	}

	return root
}

func (c *CompositionRoot) commandUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateFireCourseCommandHandler() commands.FireCourseCommandHandler {
	return commands.NewFireCourseCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateFireItemCommandHandler() commands.FireItemCommandHandler {
	return commands.NewFireItemCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateMarkItemsReadyCommandHandler() commands.MarkItemsReadyCommandHandler {
	return commands.NewMarkItemsReadyCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateApplyAutoThrottleCommandHandler() commands.ApplyAutoThrottleCommandHandler {
	return commands.NewApplyAutoThrottleCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateHoldOrderCommandHandler() commands.HoldOrderCommandHandler {
	return commands.NewHoldOrderCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateReleaseOrderCommandHandler() commands.ReleaseOrderCommandHandler {
	return commands.NewReleaseOrderCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateEvaluateReleaseCommandHandler() commands.EvaluateReleaseCommandHandler {
	return commands.NewEvaluateReleaseCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateGetThrottlingStatusQueryHandler() queries.GetThrottlingStatusQueryHandler {
	return queries.NewGetThrottlingStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStatusHistoryQueryHandler() queries.GetStatusHistoryQueryHandler {
	return queries.NewGetStatusHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPacingMetricsQueryHandler() queries.GetPacingMetricsQueryHandler {
	return queries.NewGetPacingMetricsQueryHandler(c.gormDB, c.cache)
}

func (c *CompositionRoot) CreateGetThrottledRestaurantsQueryHandler() queries.GetThrottledRestaurantsQueryHandler {
	return queries.NewGetThrottledRestaurantsQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the API server with every handler wired.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateFireCourseCommandHandler(),
		c.CreateFireItemCommandHandler(),
		c.CreateMarkItemsReadyCommandHandler(),
		c.CreateApplyAutoThrottleCommandHandler(),
		c.CreateHoldOrderCommandHandler(),
		c.CreateReleaseOrderCommandHandler(),
		c.CreateEvaluateReleaseCommandHandler(),
		c.CreateGetThrottlingStatusQueryHandler(),
		c.CreateGetStatusHistoryQueryHandler(),
		c.CreateGetPacingMetricsQueryHandler(),
		c.CreateGetThrottledRestaurantsQueryHandler(),
		c.notifier,
		c.logger,
	)
}

// CreateJobManager assembles the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateEvaluateReleaseCommandHandler(),
		c.CreateGetThrottledRestaurantsQueryHandler(),
		c.notifier,
		c.logger,
	)
}

// FuncUoWFactory adapts a closure to commands.UoWFactory.
type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
