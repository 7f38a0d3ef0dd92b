package controller

import (
	"database/sql"
	"net/http"
)

type HealthController struct {
	DB *sql.DB
}

func (c *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	if err := c.DB.PingContext(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "down"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
