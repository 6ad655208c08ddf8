package middleware

import (
	"strings"
	"time"

	"retail-mis-console/internal/model"
	"retail-mis-console/internal/repository"
	"retail-mis-console/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// UserCache keeps recently seen API users so every bearer request does not hit the database
type UserCache = expirable.LRU[uuid.UUID, *model.User]

func NewUserCache(size int, ttl time.Duration) *UserCache {
	return expirable.NewLRU[uuid.UUID, *model.User](size, nil, ttl)
}

// RequireAuth validates the bearer JWT and sets user info in context.
// cache may be nil.
func RequireAuth(tokens *jwt.Manager, userRepo repository.UserRepository, cache *UserCache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		var user *model.User
		if cache != nil {
			user, _ = cache.Get(claims.UserID)
		}
		if user == nil {
			user, err = userRepo.FindByID(c.UserContext(), claims.UserID)
			if err != nil {
				return c.Status(401).JSON(fiber.Map{"error": "User not found"})
			}
			if cache != nil {
				cache.Add(user.ID, user)
			}
		}

		if !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "User account is inactive"})
		}

		c.Locals("user_id", claims.UserID.String())
		c.Locals("user_email", claims.Email)
		c.Locals("user_name", claims.Name)
		c.Locals("user_role", string(user.Role))

		return c.Next()
	}
}

// RequireRole lets through API users holding one of roles
func RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		for _, r := range roles {
			if string(r) == role {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{"error": "Forbidden"})
	}
}
