package server

import (
	"strconv"
	"time"

	"esperanca/internal/models"
	"esperanca/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates an admin account and returns a signed JWT.
func (s *Server) Login(c *fiber.Ctx) error {
	var payload loginPayload
	if err := c.BodyParser(&payload); err != nil {
		return models.NewValidationError("Corpo da requisição inválido.")
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	user, err := s.userRepo.GetByUsername(c.UserContext(), payload.Username)
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive || !user.CheckPassword(payload.Password) {
		// Same message for unknown user and wrong password.
		return models.NewUnauthorizedError("Usuário ou senha incorretos.")
	}

	token, err := s.generateToken(user)
	if err != nil {
		s.logger.ErrorContext(c.UserContext(), "failed to sign token", "error", err)
		return models.NewInternalError(err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user's profile.
func (s *Server) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return models.NewUnauthorizedError("Sessão inválida ou expirada. Faça login novamente.")
	}
	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": user})
}

func (s *Server) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"username": user.Username,
		"admin":    user.IsAdmin,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
