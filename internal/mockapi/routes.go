package mockapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"staybook/internal/middleware"
	"staybook/internal/repository"
)

// NewServiceFromDB wires the gorm repositories into a Service.
func NewServiceFromDB(db *gorm.DB, log *zap.Logger) *Service {
	return NewService(
		repository.NewPropertyRepository(db),
		repository.NewBookingRepository(db),
		repository.NewProfileRepository(db),
		log,
	)
}

func NewRouter(svc *Service, log *zap.Logger, origins []string) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log), middleware.CORS(origins...))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	NewHandler(svc, log).RegisterRoutes(r)
	return r
}
