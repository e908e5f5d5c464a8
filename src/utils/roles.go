package utils

import (
	"acecampus/src/db"
	"acecampus/src/models"
	"acecampus/src/types"
	"log"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmitRoleRequest opens (or re-opens) a role upgrade request on the user
// row. A re-request after rejection overwrites the previous rejection reason.
func SubmitRoleRequest(userId uint, requestedRole string) (*models.User, error) {
	var user models.User
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.User{ID: userId}).
			First(&user).
			Error; err != nil {
			return types.NewNotFoundError("user not found")
		}
		if user.Role == requestedRole {
			return types.NewConflictError("user already holds the requested role")
		}
		if user.RoleRequestStatus == types.ROLE_REQUEST_PENDING {
			return types.NewConflictError("a role request is already pending")
		}
		if err := tx.
			Model(&models.User{}).
			Where(&models.User{ID: userId}).
			Updates(map[string]any{
				"requested_role":        requestedRole,
				"role_request_status":   types.ROLE_REQUEST_PENDING,
				"role_rejection_reason": nil,
			}).Error; err != nil {
			return err
		}
		user.RequestedRole = requestedRole
		user.RoleRequestStatus = types.ROLE_REQUEST_PENDING
		user.RoleRejectionReason = nil
		return nil
	})
	if err != nil {
		log.Printf("SubmitRoleRequest failed for user [%d]: %s\n", userId, err.Error())
		return nil, err
	}
	return &user, nil
}

// ApplyRoleRequestDecision resolves a pending role request. Approving
// promotes the role; rejecting records the reason and leaves the role as is.
// The update is conditional on the request still being pending.
func ApplyRoleRequestDecision(userId uint, action types.BookingAction, reason string) (*models.User, error) {
	var user models.User
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.User{ID: userId}).
			First(&user).
			Error; err != nil {
			return types.NewNotFoundError("user not found")
		}
		if user.RoleRequestStatus != types.ROLE_REQUEST_PENDING {
			return types.NewConflictError("no pending role request for this user")
		}
		updates := map[string]any{}
		switch action {
		case types.ACTION_APPROVE:
			updates["role"] = user.RequestedRole
			updates["role_request_status"] = types.ROLE_REQUEST_APPROVED
			updates["role_rejection_reason"] = nil
		case types.ACTION_REJECT:
			if strings.TrimSpace(reason) == "" {
				return types.NewValidationError("Rejection reason is required")
			}
			updates["role_request_status"] = types.ROLE_REQUEST_REJECTED
			updates["role_rejection_reason"] = reason
		default:
			return types.NewValidationError("action must be approve or reject")
		}
		res := tx.
			Model(&models.User{}).
			Where("id = ? AND role_request_status = ?", userId, types.ROLE_REQUEST_PENDING).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return types.NewConflictError("role request was updated concurrently")
		}
		if action == types.ACTION_APPROVE {
			user.Role = user.RequestedRole
			user.RoleRequestStatus = types.ROLE_REQUEST_APPROVED
			user.RoleRejectionReason = nil
		} else {
			user.RoleRequestStatus = types.ROLE_REQUEST_REJECTED
			user.RoleRejectionReason = &reason
		}
		return nil
	})
	if err != nil {
		log.Printf("ApplyRoleRequestDecision failed for user [%d]: %s\n", userId, err.Error())
		return nil, err
	}
	return &user, nil
}
