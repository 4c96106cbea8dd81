package provider

import (
	"edu-platform/biz/application/service"
	"edu-platform/biz/infrastructure/cache"
	"edu-platform/biz/infrastructure/config"
	"edu-platform/biz/infrastructure/event"
	"edu-platform/biz/infrastructure/mongodb"
	"edu-platform/biz/infrastructure/redis"
	"edu-platform/biz/infrastructure/relay"
	"edu-platform/biz/infrastructure/repository/assignment"
	"edu-platform/biz/infrastructure/repository/course"
	"edu-platform/biz/infrastructure/repository/message"
	"edu-platform/biz/infrastructure/repository/question_bank"
	"edu-platform/biz/infrastructure/repository/user"
	"edu-platform/biz/infrastructure/storage"

	"github.com/google/wire"
)

var provider *Provider

func Init() {
	var err error
	provider, err = NewProvider()
	if err != nil {
		panic(err)
	}
}

// Provider holds what controllers and main depend on.
type Provider struct {
	Config               *config.Config
	UserService          service.IUserService
	CourseService        service.ICourseService
	AssignmentService    service.IAssignmentService
	AnalyticsService     service.IAnalyticsService
	AIService            service.IAIService
	HealthService        service.IHealthService
	RelayService         service.IRelayService
	CommunicationService service.ICommunicationService
	Limiter              redis.ILimiter
	Bus                  event.IBus
}

func Get() *Provider {
	return provider
}

var ApplicationSet = wire.NewSet(
	service.UserServiceSet,
	service.CourseServiceSet,
	service.AssignmentServiceSet,
	service.AnalyticsServiceSet,
	service.AIServiceSet,
	service.HealthServiceSet,
	service.RelayServiceSet,
	service.CommunicationServiceSet,
)

var MapperSet = wire.NewSet(
	user.NewMongoMapper,
	wire.Bind(new(user.IMongoMapper), new(*user.MongoMapper)),
	course.NewMongoMapper,
	wire.Bind(new(course.IMongoMapper), new(*course.MongoMapper)),
	assignment.NewMongoMapper,
	wire.Bind(new(assignment.IMongoMapper), new(*assignment.MongoMapper)),
	message.NewMongoMapper,
	wire.Bind(new(message.IMongoMapper), new(*message.MongoMapper)),
	question_bank.NewMapperFromConfig,
)

var InfrastructureSet = wire.NewSet(
	config.NewConfig,
	MapperSet,
	mongodb.NewDatabase,
	wire.Bind(new(mongodb.IDatabase), new(*mongodb.Database)),
	redis.NewLimiter,
	wire.Bind(new(redis.ILimiter), new(*redis.Limiter)),
	redis.NewLocker,
	wire.Bind(new(redis.ILocker), new(*redis.Locker)),
	cache.NewChatCache,
	wire.Bind(new(cache.IChatCache), new(*cache.ChatCache)),
	cache.NewClassHistory,
	wire.Bind(new(cache.IClassHistory), new(*cache.ClassHistory)),
	storage.NewS3Storage,
	event.NewBus,
	wire.Bind(new(event.IBus), new(*event.Bus)),
	relay.NewHub,
	wire.Bind(new(relay.IHub), new(*relay.Hub)),
)

var AllProvider = wire.NewSet(
	ApplicationSet,
	InfrastructureSet,
)
