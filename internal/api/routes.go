package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/health", health)
	r.GET("/outfit-image", h.outfitImage)
	r.GET("/outfit-qr", h.outfitQR)
}
