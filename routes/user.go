package routes

import (
	"errors"
	"strings"

	"society-portal-server/models"
	"society-portal-server/storage"
	"society-portal-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterUserInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=256"`
	SocietyName string `json:"societyName"`
	Area        string `json:"area"`
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/user/register
func Register(ctx iris.Context) {
	var input RegisterUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.JSONError(ctx, iris.StatusUnprocessableEntity, "invalid_payload", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing models.User
	err := storage.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		utils.JSONError(ctx, iris.StatusConflict, "conflict", "email already registered")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(ctx, iris.StatusInternalServerError, "server_error", err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "server_error", "could not hash password")
		return
	}

	user := models.User{
		Name:        input.Name,
		Email:       email,
		Password:    string(hash),
		Role:        "user",
		SocietyName: input.SocietyName,
		Area:        input.Area,
	}
	if err := storage.DB.Create(&user).Error; err != nil {
		// A concurrent registration can slip past the First check above
		// and land on the unique email index instead.
		if isDuplicateKey(err) {
			utils.JSONError(ctx, iris.StatusConflict, "conflict", "email already registered")
			return
		}
		utils.JSONError(ctx, iris.StatusInternalServerError, "server_error", err.Error())
		return
	}

	pair, err := utils.CreateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "server_error", "could not issue tokens")
		return
	}
	ctx.JSON(iris.Map{"user": user, "tokens": pair})
}

// POST /api/user/login
func Login(ctx iris.Context) {
	var input LoginUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.JSONError(ctx, iris.StatusUnprocessableEntity, "invalid_payload", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var user models.User
	if err := storage.DB.Where("email = ?", email).First(&user).Error; err != nil {
		utils.JSONError(ctx, iris.StatusUnauthorized, "invalid_credentials", "wrong email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.JSONError(ctx, iris.StatusUnauthorized, "invalid_credentials", "wrong email or password")
		return
	}

	pair, err := utils.CreateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "server_error", "could not issue tokens")
		return
	}
	ctx.JSON(iris.Map{"user": user, "tokens": pair})
}

// isDuplicateKey matches unique-index violations whether or not the gorm
// driver translated them. Postgres reports SQLSTATE 23505.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "SQLSTATE 23505")
}

// LookupUserByEmail resolves refresh-token subjects back to accounts.
func LookupUserByEmail(email string) (uint, string, bool) {
	var user models.User
	if err := storage.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return 0, "", false
	}
	return user.ID, user.Role, true
}
