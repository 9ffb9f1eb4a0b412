package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-event-management/internal/interface/http"
)

// EventModule mounts the event CRUD routes under /<backend>.
// Reads are public; mutations go through Auth when it is set.
type EventModule struct {
	Handler *handlers.EventHandler
	Backend string
	Auth    gin.HandlerFunc
}

func NewEventModule(h *handlers.EventHandler, backend string, auth gin.HandlerFunc) *EventModule {
	return &EventModule{Handler: h, Backend: backend, Auth: auth}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/" + m.Backend)
	g.GET("/events", m.Handler.List)
	g.GET("/events/:id", m.Handler.Get)

	write := g.Group("/")
	if m.Auth != nil {
		write.Use(m.Auth)
	}
	{
		write.POST("/event", m.Handler.Create)
		write.PUT("/events/:id", m.Handler.Update)
		write.DELETE("/events/:id", m.Handler.Delete)
	}
}
