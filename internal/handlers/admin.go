package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type sessionEntryResponse struct {
	Token   string            `json:"token"`
	Stale   bool              `json:"stale"`
	Session *identityResponse `json:"session,omitempty"`
}

// ListPrincipalSessions shows the index as stored, stale entries included.
func (h HandlerSet) ListPrincipalSessions(c *gin.Context) {
	principalID := c.Param("principalId")

	listed, err := h.auth.ListSessions(c.Request.Context(), principalID)
	if err != nil {
		h.internalError(c, err, "list sessions failed")
		return
	}

	resp := make([]sessionEntryResponse, 0, len(listed))
	for _, entry := range listed {
		item := sessionEntryResponse{Token: entry.Token, Stale: entry.Stale}
		if !entry.Stale {
			identity := toIdentityResponse(entry.Identity)
			item.Session = &identity
		}
		resp = append(resp, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"principalId": principalID,
		"maxSessions": h.cfg.Session.MaxSessions,
		"sessions":    resp,
	})
}
