// Package fakeapi is an in-memory implementation of the storefront HTTP API.
// It backs the store's tests and the fake-api command used for local
// development. State lives in memory for the lifetime of the Server.
package fakeapi

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"storefront/internal/middleware"
	"storefront/internal/models"
)

// BasePath is the prefix every route is mounted under.
const BasePath = "/api"

type failure struct {
	status  int
	message string
}

type Server struct {
	mu       sync.Mutex
	products []models.Product
	cart     []models.CartLine
	wishlist []models.WishlistEntry
	profile  models.Profile
	orders   []models.Order

	failures        map[string]failure
	calls           map[string]int
	omitOrderID     bool
	omitLineRemoved bool

	secret string
	logger *zap.Logger
	engine *gin.Engine
}

type Option func(*Server)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithSecret sets the HMAC secret used to sign and verify bearer tokens.
func WithSecret(secret string) Option {
	return func(s *Server) { s.secret = secret }
}

func New(opts ...Option) *Server {
	s := &Server{
		profile: models.Profile{
			ID:        primitive.NewObjectID().Hex(),
			Name:      "Guest Shopper",
			Email:     "guest@example.com",
			Addresses: []models.Address{},
		},
		products: []models.Product{},
		cart:     []models.CartLine{},
		wishlist: []models.WishlistEntry{},
		orders:   []models.Order{},
		failures: make(map[string]failure),
		calls:    make(map[string]int),
		secret:   "dev-secret",
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	api := r.Group(BasePath)
	api.Use(s.instrument())
	{
		api.GET("/products", s.listProducts)
		api.GET("/products/:id", s.getProduct)

		api.GET("/cart", s.getCart)
		api.POST("/cart", s.addToCart)
		api.POST("/cart/quantity", s.changeQuantity)
		api.DELETE("/cart/clear", s.clearCart)
		api.DELETE("/cart/:productId", s.removeFromCart)

		api.GET("/wishlist", s.getWishlist)
		api.POST("/wishlist", s.updateWishlist)
		api.DELETE("/wishlist/clear", s.clearWishlist)

		api.GET("/user/profile", s.getProfile)
		api.GET("/user/orders", s.listOrders)
		api.GET("/user/order/:id", middleware.UserAuth(s.secret, s.logger), s.getOrder)
		api.POST("/user/addresses", s.createAddress)
		api.PUT("/user/addresses/:id", s.updateAddress)
		api.DELETE("/user/addresses/:id", s.deleteAddress)

		api.POST("/checkout", s.checkout)
	}
	return r
}

func routeKey(method, route string) string {
	return strings.ToUpper(method) + " " + strings.TrimPrefix(route, BasePath)
}

// instrument counts calls per route and serves injected failures.
func (s *Server) instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := routeKey(c.Request.Method, c.FullPath())

		s.mu.Lock()
		s.calls[key]++
		f, failing := s.failures[key]
		s.mu.Unlock()

		if failing {
			if f.message == "" {
				c.AbortWithStatus(f.status)
				return
			}
			respondWithError(c, s.logger, f.status, key, f.message)
			return
		}
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("fake api request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

// Fail makes every subsequent call to route answer with status and message.
// Route uses the registered pattern without the base path, for example
// "/cart/:productId". An empty message sends no body.
func (s *Server) Fail(method, route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[routeKey(method, route)] = failure{status: status, message: message}
}

// Heal removes an injected failure.
func (s *Server) Heal(method, route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, routeKey(method, route))
}

// Calls returns how many requests reached route, failed ones included.
func (s *Server) Calls(method, route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[routeKey(method, route)]
}

// OmitOrderID makes checkout succeed without returning an orderId.
func (s *Server) OmitOrderID(omit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.omitOrderID = omit
}

// OmitLineRemoved drops the lineRemoved flag from quantity responses.
func (s *Server) OmitLineRemoved(omit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.omitLineRemoved = omit
}

// IssueToken signs a bearer token for the fake user.
func (s *Server) IssueToken(ttl time.Duration) (string, error) {
	s.mu.Lock()
	userID := s.profile.ID
	s.mu.Unlock()

	claims := jwt.MapClaims{
		"userId": userID,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
}
