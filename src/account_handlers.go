package main

import (
	"acecampus/src/db"
	"acecampus/src/models"
	"acecampus/src/types"
	"acecampus/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func accountHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/account/me", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var user models.User
			if err := db.
				Model(&models.User{}).
				Where(&models.User{ID: userId}).
				First(&user).
				Error; err != nil {
				respondError(ctx, types.NewNotFoundError("user not found"))
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": user})
		}).
		POST("/account/role-request", func(ctx *gin.Context) {
			var body types.CreateRoleRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			user, err := utils.SubmitRoleRequest(userId, body.RequestedRole)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": user})
		})
	return g
}
