package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jauntkid/TailorPro/database"
	"github.com/jauntkid/TailorPro/errs"
	"github.com/jauntkid/TailorPro/middlewares"
	"github.com/jauntkid/TailorPro/models"
	"github.com/jauntkid/TailorPro/utils"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	Name         *string `json:"name"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone"`
	ProfileImage *string `json:"profileImage"`
}

type UpdatePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type AdminUpdateUserInput struct {
	Name         *string `json:"name"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Role         *string `json:"role"`
	Phone        *string `json:"phone"`
	ProfileImage *string `json:"profileImage"`
}

const refreshCookie = "refreshToken"

func findUser(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user not found with id of %s", id)
		}
		return nil, err
	}
	return &user, nil
}

// issueTokens signs a fresh access/refresh pair, stores the refresh token on
// the user row and sets the refresh cookie.
func issueTokens(c *fiber.Ctx, user *models.User) (string, error) {
	accessToken, err := middlewares.GenerateJWT(user.ID, string(user.Role))
	if err != nil {
		return "", err
	}
	refreshToken, err := middlewares.GenerateRefreshToken(user.ID)
	if err != nil {
		return "", err
	}

	user.RefreshToken = refreshToken
	if err := database.DB.Model(user).Update("refresh_token", refreshToken).Error; err != nil {
		return "", err
	}

	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    refreshToken,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HTTPOnly: true,
	})
	return accessToken, nil
}

func userData(user *models.User) fiber.Map {
	return fiber.Map{
		"id":           user.ID,
		"name":         user.Name,
		"email":        user.Email,
		"role":         user.Role,
		"phone":        user.Phone,
		"profileImage": user.ProfileImage,
	}
}

func RegisterUser(c *fiber.Ctx) error {
	var input RegisterInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	var existing models.User
	if err := database.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return errs.Conflict("user already exists")
	}

	role := models.RoleStaff
	if input.Role != "" {
		role = models.Role(input.Role)
		if !models.ValidRole(role) {
			return errs.Validation("invalid role %q", input.Role)
		}
	}

	user := models.User{
		Name:  input.Name,
		Email: input.Email,
		Role:  role,
		Phone: input.Phone,
	}
	if err := user.SetPassword(input.Password); err != nil {
		return err
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return err
	}

	accessToken, err := issueTokens(c, &user)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"accessToken": accessToken,
		"data":        userData(&user),
	})
}

func LoginUser(c *fiber.Ctx) error {
	var input LoginInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	var user models.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err := user.ComparePassword(input.Password); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	accessToken, err := issueTokens(c, &user)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"accessToken": accessToken,
		"data":        userData(&user),
	})
}

func LogoutUser(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	if userID != "" {
		database.DB.Model(&models.User{}).
			Where("id = ?", userID).
			Update("refresh_token", "")
	}

	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
	})
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

// RefreshToken exchanges a valid refresh cookie for a new access token.
func RefreshToken(c *fiber.Ctx) error {
	raw := c.Cookies(refreshCookie)
	if raw == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "No refresh token found")
	}

	userID, err := middlewares.ParseRefreshToken(raw)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	user, err := findUser(database.DB, userID)
	if err != nil {
		return err
	}
	if user.RefreshToken != raw {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid refresh token")
	}

	accessToken, err := middlewares.GenerateJWT(user.ID, string(user.Role))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"accessToken": accessToken,
	})
}

func GetUserProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	user, err := findUser(database.DB, userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

func UpdateUserProfile(c *fiber.Ctx) error {
	var input UpdateProfileInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&input)
	userID, _ := c.Locals("userID").(string)

	user, err := findUser(database.DB, userID)
	if err != nil {
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&input, map[string]string{"profileImage": "profile_image"})
	if len(updates) > 0 {
		if err := database.DB.Model(user).Updates(updates).Error; err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

func UpdatePassword(c *fiber.Ctx) error {
	var input UpdatePasswordInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	userID, _ := c.Locals("userID").(string)

	user, err := findUser(database.DB, userID)
	if err != nil {
		return err
	}

	if err := user.ComparePassword(input.CurrentPassword); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Current password is incorrect")
	}
	if err := user.SetPassword(input.NewPassword); err != nil {
		return err
	}
	if err := database.DB.Model(user).Update("password", user.Password).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password updated successfully",
	})
}

func GetUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Find(&users).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(users),
		"data":    users,
	})
}

func GetUserByID(c *fiber.Ctx) error {
	user, err := findUser(database.DB, c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

func UpdateUser(c *fiber.Ctx) error {
	var input AdminUpdateUserInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&input)

	user, err := findUser(database.DB, c.Params("id"))
	if err != nil {
		return err
	}

	if input.Role != nil && !models.ValidRole(models.Role(*input.Role)) {
		return errs.Validation("invalid role %q", *input.Role)
	}

	updates := utils.UpdatesFromPtrDTO(&input, map[string]string{"profileImage": "profile_image"})
	if len(updates) > 0 {
		if err := database.DB.Model(user).Updates(updates).Error; err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

func DeleteUser(c *fiber.Ctx) error {
	user, err := findUser(database.DB, c.Params("id"))
	if err != nil {
		return err
	}

	if err := database.DB.Delete(user).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{},
	})
}
