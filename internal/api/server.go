package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/sorteo-app/raffles-api/docs"
	v1 "github.com/sorteo-app/raffles-api/internal/api/handler/v1"
	"github.com/sorteo-app/raffles-api/internal/api/middleware"
	"github.com/sorteo-app/raffles-api/internal/config"
	"github.com/sorteo-app/raffles-api/internal/repository"
	"github.com/sorteo-app/raffles-api/internal/repository/dao"
	"github.com/sorteo-app/raffles-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	cascadeDAO := dao.NewCascadeDAO(db)
	entityRepo := repository.NewEntityRepository(dao.NewEntityDAO(db), cascadeDAO)
	managerRepo := repository.NewManagerRepository(dao.NewManagerDAO(db), cascadeDAO)
	projectRepo := repository.NewProjectRepository(dao.NewProjectDAO(db), cascadeDAO)
	raffleSetRepo := repository.NewRaffleSetRepository(dao.NewRaffleSetDAO(db), cascadeDAO)
	raffleRepo := repository.NewRaffleRepository(dao.NewRaffleDAO(db))
	buyerRepo := repository.NewBuyerRepository(dao.NewBuyerDAO(db))

	authSvc := service.NewAuthService(entityRepo, managerRepo)

	authHandler := v1.NewAuthHandler(s.Config.API, authSvc)
	entityHandler := v1.NewEntityHandler(service.NewEntityService(entityRepo))
	managerHandler := v1.NewManagerHandler(service.NewManagerService(managerRepo))
	projectHandler := v1.NewProjectHandler(service.NewProjectService(projectRepo))
	raffleSetHandler := v1.NewRaffleSetHandler(service.NewRaffleSetService(raffleSetRepo))
	raffleHandler := v1.NewRaffleHandler(service.NewRaffleService(raffleRepo, managerRepo))
	buyerHandler := v1.NewBuyerHandler(service.NewBuyerService(buyerRepo))

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey, authSvc)

	s.MountHandlers(authenticator, authHandler, entityHandler, managerHandler,
		projectHandler, raffleSetHandler, raffleHandler, buyerHandler)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authenticator *middleware.Authenticator,
	authHandler *v1.AuthHandler,
	entityHandler *v1.EntityHandler,
	managerHandler *v1.ManagerHandler,
	projectHandler *v1.ProjectHandler,
	raffleSetHandler *v1.RaffleSetHandler,
	raffleHandler *v1.RaffleHandler,
	buyerHandler *v1.BuyerHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/entity/register", authHandler.HandleRegisterEntity)
		auth.POST("/auth/entity/login", authHandler.HandleLoginEntity)
		auth.POST("/auth/manager/login", authHandler.HandleLoginManager)
	}

	protected := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		protected.GET("/entity", entityHandler.HandleGetEntity)
		protected.DELETE("/entity", entityHandler.HandleDeleteEntity)

		protected.POST("/managers", authHandler.HandleRegisterManager)
		protected.GET("/managers", managerHandler.HandleListManagers)
		protected.GET("/managers/:managerNumber", managerHandler.HandleGetManager)
		protected.PATCH("/managers/:managerNumber", managerHandler.HandleUpdateManager)
		protected.DELETE("/managers/:managerNumber", managerHandler.HandleDeleteManager)

		protected.POST("/projects", projectHandler.HandleCreateProject)
		protected.GET("/projects", projectHandler.HandleListProjects)
		protected.GET("/projects/:projectNumber", projectHandler.HandleGetProject)
		protected.PATCH("/projects/:projectNumber", projectHandler.HandleUpdateProject)
		protected.DELETE("/projects/:projectNumber", projectHandler.HandleDeleteProject)

		protected.POST("/projects/:projectNumber/rafflesets", raffleSetHandler.HandleCreateRaffleSet)
		protected.GET("/projects/:projectNumber/rafflesets", raffleSetHandler.HandleListRaffleSets)
		protected.GET("/projects/:projectNumber/rafflesets/:setNumber", raffleSetHandler.HandleGetRaffleSet)
		protected.PATCH("/projects/:projectNumber/rafflesets/:setNumber", raffleSetHandler.HandleUpdateRaffleSet)
		protected.DELETE("/projects/:projectNumber/rafflesets/:setNumber", raffleSetHandler.HandleDeleteRaffleSet)

		protected.GET("/projects/:projectNumber/raffles", raffleHandler.HandleListRaffles)
		protected.GET("/projects/:projectNumber/raffles/:raffleNumber", raffleHandler.HandleGetRaffle)
		protected.POST("/projects/:projectNumber/raffles/:raffleNumber/sell", raffleHandler.HandleSellRaffle)
		protected.PATCH("/projects/:projectNumber/raffles/:raffleNumber", raffleHandler.HandleUpdateRaffle)
		protected.DELETE("/projects/:projectNumber/raffles/:raffleNumber", raffleHandler.HandleDeleteRaffle)

		protected.POST("/buyers", buyerHandler.HandleCreateBuyer)
		protected.GET("/buyers", buyerHandler.HandleListBuyers)
		protected.GET("/buyers/:buyerNumber", buyerHandler.HandleGetBuyer)
		protected.PATCH("/buyers/:buyerNumber", buyerHandler.HandleUpdateBuyer)
		protected.DELETE("/buyers/:buyerNumber", buyerHandler.HandleDeleteBuyer)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Raffles API"
	docs.SwaggerInfo.Description = "Multi-tenant raffle administration API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
