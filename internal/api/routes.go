package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/sets", s.listSets)
		api.POST("/sets/filter", s.filterSets)
		api.POST("/deck/parse", s.parseDeck)
		api.POST("/deck/export", s.exportDeck)
		api.POST("/deck/label", s.deckLabel)
		api.GET("/deck/cardback", s.cardBack)
		api.GET("/qr", s.qr)
	}
}
