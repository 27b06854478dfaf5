package api

import "github.com/gin-gonic/gin"

// SetupRoutes sets up the dApp API routes.
//
// router is the Gin Engine instance used to set up the routes.
func SetupRoutes(router *gin.Engine, h *Handler) {
	router.GET("api/user", h.GetUser)
	router.GET("api/user/delegations", h.GetUserDelegations)
	router.GET("api/app/config", h.GetAppConfig)
	router.GET("api/app/chains", h.GetSupportedChains)
	router.GET("api/app/due", h.GetDueRegistrations)

	router.POST("api/tx/register", h.RegisterUser)
	router.POST("api/tx/topup", h.TopupUserBalance)
	router.POST("api/tx/autocompound", h.Autocompound)
	router.POST("api/tx/grant", h.GrantAuthz)
	router.POST("api/tx/revoke", h.RevokeAuthz)
}
