// Package kernel assembles the middleware stack and the route table into a
// single http.Handler.
package kernel

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rohanwest/pancake/app/routes"
	"github.com/rohanwest/pancake/app/services"
	"github.com/rohanwest/pancake/pkg/event"
	"github.com/rohanwest/pancake/pkg/metrics"
	"github.com/rohanwest/pancake/pkg/middleware"
	"github.com/rohanwest/pancake/pkg/reqid"
	"github.com/rohanwest/pancake/pkg/router"
	"github.com/rohanwest/pancake/pkg/ws"
)

// BuildRouter constructs the full application router. The middleware order
// matters: metrics outermost for accurate latency, recovery before anything
// that can panic, request-id before the logger that reads it.
func BuildRouter() *router.Router {
	authService := services.NewAuthService()
	orderService := services.NewOrderService()
	rewardService := services.NewRewardService()
	snapshotService := services.NewSnapshotService()

	hub := ws.NewHub()
	go hub.Run()
	wireEvents(hub)

	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	// Prometheus endpoint — no auth, no rate limit concerns at this volume.
	r.Handle("/metrics", metrics.Handler())

	routes.RegisterAPI(r, authService, orderService, rewardService, snapshotService, hub)

	return r
}

// Handler builds the router and returns its http.Handler.
func Handler() http.Handler {
	return BuildRouter().Handler()
}

// wireEvents forwards every domain event to the websocket hub as a JSON
// frame {"event": name, "data": payload}.
func wireEvents(hub *ws.Hub) {
	forward := func(name string) event.Handler {
		return func(payload interface{}) {
			frame, err := json.Marshal(map[string]interface{}{
				"event": name,
				"data":  payload,
			})
			if err != nil {
				return
			}
			select {
			case hub.Broadcast <- frame:
			default:
			}
		}
	}

	for _, name := range []string{
		services.EventOrderCreated,
		services.EventOrderStatusChanged,
		services.EventRewardIssued,
		services.EventRewardStatusChanged,
		services.EventUserPromoted,
	} {
		event.Listen(name, forward(name))
	}
}
