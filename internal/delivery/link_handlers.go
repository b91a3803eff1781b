package delivery

import (
	"net/http"

	"trackerdash/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *HTTPHandlers) ListLinks(c *gin.Context) {
	links, err := h.links.List(c.Request.Context(), c.Param("trackerID"))
	if err != nil {
		h.respondError(c, err, "Failed to list tracking links")
		return
	}
	h.respond(c, http.StatusOK, links)
}

func (h *HTTPHandlers) CreateLink(c *gin.Context) {
	var req domain.CreateTrackingLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	link, err := h.links.Create(c.Request.Context(), c.Param("trackerID"), req)
	if err != nil {
		h.respondError(c, err, "Failed to create tracking link")
		return
	}
	h.respond(c, http.StatusCreated, link)
}

func (h *HTTPHandlers) UpdateLink(c *gin.Context) {
	var req domain.UpdateTrackingLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	link, err := h.links.Update(c.Request.Context(), c.Param("linkID"), req)
	if err != nil {
		h.respondError(c, err, "Failed to update tracking link")
		return
	}
	h.respond(c, http.StatusOK, link)
}

func (h *HTTPHandlers) DeleteLink(c *gin.Context) {
	if err := h.links.Delete(c.Request.Context(), c.Param("linkID")); err != nil {
		h.respondError(c, err, "Failed to delete tracking link")
		return
	}
	c.Status(http.StatusNoContent)
}
