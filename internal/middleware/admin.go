package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/ahmetcoskunkizilkaya/duotrack/internal/config"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/dto"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/identity"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const adminRole = "admin"

// adminPolicy decides who may run maintenance endpoints such as the
// partner reconcile job.
type adminPolicy struct {
	db     *gorm.DB
	token  string
	emails map[string]struct{}
	ids    map[string]struct{}
}

// AdminRequired admits a request that carries the configured X-Admin-Token,
// or whose caller is listed in ADMIN_EMAILS / ADMIN_USER_IDS or holds the
// admin role.
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	policy := &adminPolicy{
		db:     db,
		token:  cfg.AdminToken,
		emails: csvSet(strings.ToLower(cfg.AdminEmails)),
		ids:    csvSet(cfg.AdminUserIDs),
	}

	return func(c *fiber.Ctx) error {
		if policy.tokenMatches(c.Get("X-Admin-Token")) {
			return c.Next()
		}

		userID, err := identity.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if policy.listed(userID, identity.GetEmail(c)) || policy.hasRole(c, userID) {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

func (p *adminPolicy) tokenMatches(got string) bool {
	if p.token == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(p.token)) == 1
}

func (p *adminPolicy) listed(userID uuid.UUID, email string) bool {
	if _, ok := p.ids[userID.String()]; ok {
		return true
	}
	_, ok := p.emails[strings.ToLower(email)]
	return ok && email != ""
}

func (p *adminPolicy) hasRole(c *fiber.Ctx, userID uuid.UUID) bool {
	var user models.User
	err := p.db.WithContext(c.UserContext()).Select("id", "role").First(&user, "id = ?", userID).Error
	return err == nil && user.Role == adminRole
}

func csvSet(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		if item := strings.TrimSpace(part); item != "" {
			set[item] = struct{}{}
		}
	}
	return set
}
