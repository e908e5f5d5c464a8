package controllers

import (
	"acecampus/src/db"
	"acecampus/src/lib"
	"acecampus/src/models"
	"acecampus/src/types"
	"acecampus/src/utils"
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AuthRegister(ctx *gin.Context) (token *string, status int, err error) {
	var body types.RegisterUserRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	role := body.Role
	if role == "" {
		role = "student"
	}
	user := models.User{
		Name:              body.Name,
		Email:             body.Email,
		Role:              role,
		RoleRequestStatus: types.ROLE_REQUEST_NONE,
	}
	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&models.User{}).
			Where(&models.User{Email: body.Email}).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count > 0 {
			return types.NewConflictError("email is already registered")
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("Error registering user: %s\n", err.Error())
		return nil, types.StatusCode(err), err
	}
	jwt, err := utils.GenerateJWT(user.Email, user.ID, user.Role)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return &jwt, http.StatusCreated, nil
}

func AuthLogin(ctx *gin.Context) (token *string, status int, err error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	db := db.GetDb()
	var user models.User
	if err = db.
		Model(&models.User{}).
		Where(&models.User{Email: body.Email}).
		First(&user).
		Error; err != nil {
		log.Printf("error: %s\n", err.Error())
		return nil, http.StatusNotFound, types.NewNotFoundError("no account for this email")
	}

	jwt, err := utils.GenerateJWT(user.Email, user.ID, user.Role)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	if rd := lib.GetRedisClient(); rd != nil {
		if _, err := rd.JSONSet(context.Background(), fmt.Sprintf("%d:user", user.ID), "$", &user).Result(); err != nil {
			log.Printf("[redis] Error updating user cache: %s\n", err.Error())
		}
	}
	return &jwt, http.StatusOK, nil
}
