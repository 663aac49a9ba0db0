package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	httpadapter "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/rabbitmq"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"
)

// CompositionRoot wires adapters into use case handlers. Everything the
// application serves is constructed here and nowhere else.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.OrderEventPublisher
	policy     services.TransitionPolicy
	logger     *slog.Logger
}

// NewCompositionRoot creates the composition root. When no AMQP URL is
// configured, order change events are logged and dropped instead of
// published.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	var publisher ports.OrderEventPublisher
	if config.AmqpURL != "" {
		broker, err := rabbitmq.NewOrderEventPublisher(config.AmqpURL, logger)
		if err != nil {
			return CompositionRoot{}, err
		}
		publisher = broker
	} else {
		publisher = rabbitmq.NewNopOrderEventPublisher(logger)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		policy:     services.NewTransitionPolicy(),
		logger:     logger,
	}, nil
}

// Close releases resources held by the composition root.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.PlacementUoWFactory = FuncPlacementUoWFactory(func() commands.PlacementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.policy, c.publisher)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.policy, c.publisher)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignCourierCommandHandler(f, c.policy, c.publisher)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f, c.policy, c.publisher)
}

func (c *CompositionRoot) CreateDispatchOrdersCommandHandler() commands.DispatchOrdersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchOrdersCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the REST server with all handlers wired in.
func (c *CompositionRoot) CreateHTTPServer(jwtSecret []byte) *httpadapter.Server {
	placeOrder := c.CreatePlaceOrderCommandHandler()
	transitionOrder := c.CreateTransitionOrderCommandHandler()
	assignCourier := c.CreateAssignCourierCommandHandler()
	acceptOrder := c.CreateAcceptOrderCommandHandler()
	activeOrders := c.CreateGetActiveOrdersQueryHandler()
	customerOrders := c.CreateGetCustomerOrdersQueryHandler()
	availableOrders := c.CreateGetAvailableOrdersQueryHandler()
	allCouriers := c.CreateGetAllCouriersQueryHandler()

	return httpadapter.NewServer(
		placeOrder,
		transitionOrder,
		assignCourier,
		acceptOrder,
		activeOrders,
		customerOrders,
		availableOrders,
		allCouriers,
		jwtSecret,
	)
}

// CreateJobManager builds the background job manager.
func (c *CompositionRoot) CreateJobManager(dispatchSpec string) *jobs.JobManager {
	handler := c.CreateDispatchOrdersCommandHandler()
	return jobs.NewJobManager(handler, dispatchSpec, c.logger)
}

type FuncPlacementUoWFactory func() commands.PlacementUoW

func (f FuncPlacementUoWFactory) Create() commands.PlacementUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
