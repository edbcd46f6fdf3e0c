package handlers

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	intconfig "tours/internal/config"
	"tours/internal/http/middleware"
	"tours/internal/notify"
	"tours/internal/services"
)

// Deps holds what handlers need beyond the shared DB connection.
type Deps struct {
	DB      *sql.DB
	Mailer  notify.Mailer
	Auth    services.AuthService
	Contact string
}

var deps = Deps{Mailer: notify.LogMailer{}}

// Configure installs the dependencies used by every handler. It is called
// once while building the router.
func Configure(d Deps) {
	if d.Mailer == nil {
		d.Mailer = notify.LogMailer{}
	}
	deps = d
}

// NewDeps wires the production dependencies from env.
func NewDeps(env intconfig.Env) Deps {
	return Deps{
		Mailer:  notify.New(env.SMTP),
		Auth:    services.AuthService{Secret: []byte(env.JWTSecret), TTL: env.JWTTTL},
		Contact: env.SMTP.From,
	}
}

// TokenParser exposes the configured auth service to the auth middleware.
func TokenParser() middleware.TokenParser { return deps.Auth }

func catalogService(c *gin.Context) services.CatalogService {
	return services.CatalogService{DB: deps.DB, RequestID: middleware.GetRequestID(c)}
}

func routeService(c *gin.Context) services.RouteService {
	return services.RouteService{DB: deps.DB, RequestID: middleware.GetRequestID(c)}
}

func priceService(c *gin.Context) services.PriceService {
	return services.PriceService{DB: deps.DB, RequestID: middleware.GetRequestID(c)}
}

func searchService(c *gin.Context) services.SearchService {
	return services.SearchService{DB: deps.DB, RequestID: middleware.GetRequestID(c)}
}

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{DB: deps.DB, Mailer: deps.Mailer, RequestID: middleware.GetRequestID(c)}
}

func adminBookingService(c *gin.Context) services.AdminBookingService {
	return services.AdminBookingService{DB: deps.DB, Mailer: deps.Mailer, RequestID: middleware.GetRequestID(c)}
}

func docsService(c *gin.Context) services.DocsService {
	return services.DocsService{DB: deps.DB, RequestID: middleware.GetRequestID(c)}
}

func authService(c *gin.Context) services.AuthService {
	s := deps.Auth
	s.DB = deps.DB
	s.RequestID = middleware.GetRequestID(c)
	return s
}
