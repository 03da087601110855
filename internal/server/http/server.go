package internalhttp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lomoval/famboard/internal/app"
	"github.com/lomoval/famboard/internal/ws"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Host string
	Port int
}

type Server struct {
	srv  *http.Server
	addr string
}

func NewServer(config Config, dashboard *app.App, hub *ws.Hub) *Server {
	addr := net.JoinHostPort(config.Host, strconv.Itoa(config.Port))
	return &Server{
		addr: addr,
		srv:  &http.Server{Addr: addr, Handler: NewRouter(dashboard, hub)},
	}
}

// NewRouter builds the full route table. Split out of NewServer so tests
// can drive it with httptest without binding a port.
func NewRouter(dashboard *app.App, hub *ws.Hub) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(loggingMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ws", gin.WrapF(ws.Handler(hub)))

	h := handlers{dashboard: dashboard}
	api := r.Group("/api")
	{
		api.GET("/events", h.listEvents)
		api.GET("/stats", h.stats)
		api.GET("/families", h.listFamilies)
		api.GET("/families/:id/members", h.listFamilyMembers)
		api.GET("/availability", h.availability)
		api.POST("/events", h.createEvent)
		api.PUT("/events/:id", h.updateEvent)
		api.DELETE("/events/:id", h.removeEvent)
	}
	return r
}

func (s *Server) Start(_ context.Context) error {
	log.Printf("starting http server on %s", s.addr)
	err := s.srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func getIP(req *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return "", fmt.Errorf("userip: %q is not IP:port", req.RemoteAddr)
	}

	if parsed := net.ParseIP(ip); parsed == nil {
		return "", fmt.Errorf("userip: %q is not IP:port", req.RemoteAddr)
	}
	return ip, nil
}
