package controllers

import (
	"errors"
	"net/http"

	"github.com/rohanwest/pancake/app/services"
	"github.com/rohanwest/pancake/pkg/logger"
	"github.com/rohanwest/pancake/pkg/middleware"
	"github.com/rohanwest/pancake/pkg/response"
	"github.com/rohanwest/pancake/pkg/router"
	"github.com/rohanwest/pancake/pkg/ws"
)

// AdminController serves the admin dashboard endpoints: user listing,
// promotion, the live event stream, and snapshot backup/restore.
type AdminController struct {
	auth     *services.AuthService
	snapshot *services.SnapshotService
	hub      *ws.Hub
}

func NewAdminController(auth *services.AuthService, snapshot *services.SnapshotService, hub *ws.Hub) *AdminController {
	return &AdminController{auth: auth, snapshot: snapshot, hub: hub}
}

// ListUsers returns every account. Passwords are never serialised.
func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.auth.ListUsers()
	if err != nil {
		logger.WithCtx(r.Context()).Error("list users failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Success(w, users)
}

// Promote grants admin rank to the target user. Only the master admin
// reaches this handler; the gate runs in middleware.
func (c *AdminController) Promote(w http.ResponseWriter, r *http.Request) {
	targetID := router.Param(r, "id")

	user, err := c.auth.Promote(targetID)
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w, "User not found")
	case err != nil:
		logger.WithCtx(r.Context()).Error("promote failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	default:
		actor, _ := middleware.ClaimsFromCtx(r.Context())
		logger.WithCtx(r.Context()).Info("user promoted", "user_id", user.ID, "by", actor.Email)
		response.Message(w, "User promoted")
	}
}

// Stream upgrades the connection to a websocket subscribed to domain events.
func (c *AdminController) Stream(w http.ResponseWriter, r *http.Request) {
	ws.Upgrade(w, r, c.hub)
}

// ExportSnapshot writes the full dataset to the storage disk.
func (c *AdminController) ExportSnapshot(w http.ResponseWriter, r *http.Request) {
	path, err := c.snapshot.Export()
	if err != nil {
		logger.WithCtx(r.Context()).Error("snapshot export failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Success(w, map[string]string{"path": path})
}

// RestoreSnapshot replaces the dataset with the stored snapshot.
func (c *AdminController) RestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := c.snapshot.Restore()
	if err != nil {
		logger.WithCtx(r.Context()).Error("snapshot restore failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Success(w, snap.Counts())
}
