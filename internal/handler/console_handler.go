package handler

import (
	"errors"

	"retail-mis-console/internal/authclient"
	"retail-mis-console/internal/middleware"
	"retail-mis-console/internal/model"
	"retail-mis-console/internal/page"
	"retail-mis-console/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ConsoleHandler serves the session-scoped console endpoints
type ConsoleHandler struct {
	sessions *service.SessionManager
	nav      *service.NavigationResolver
	registry *service.ViewRegistry
	logger   *zap.Logger
}

func NewConsoleHandler(sessions *service.SessionManager, nav *service.NavigationResolver, registry *service.ViewRegistry, lg *zap.Logger) *ConsoleHandler {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &ConsoleHandler{sessions: sessions, nav: nav, registry: registry, logger: lg}
}

type sessionResponse struct {
	*model.Session
	RoleName string `json:"role_name"`
}

func loginRedirect(c *fiber.Ctx) error {
	return c.Status(401).JSON(fiber.Map{
		"error":    "Not signed in",
		"redirect": model.ViewRoute(model.LoginView),
	})
}

// current returns the caller's session, treating unreadable sessions as absent
func (h *ConsoleHandler) current(c *fiber.Ctx) *model.Session {
	sess, err := h.sessions.Scope(middleware.Scope(c)).Session(c.UserContext())
	if err != nil {
		h.logger.Debug("session unreadable", zap.String("scope", middleware.Scope(c)), zap.Error(err))
		return nil
	}
	return sess
}

func (h *ConsoleHandler) defaultRoute(role model.Role) string {
	view, ok := h.nav.DefaultView(role)
	if !ok {
		view = model.LoginView
	}
	return model.ViewRoute(view)
}

// LoginPage describes the sign-in screen, or sends signed-in callers to their landing view
// GET /console/login
func (h *ConsoleHandler) LoginPage(c *fiber.Ctx) error {
	if sess := h.current(c); sess != nil {
		return c.Redirect(h.defaultRoute(sess.Role), fiber.StatusFound)
	}
	return c.JSON(page.Login())
}

// Login starts a session for the caller's scope
// POST /console/login
func (h *ConsoleHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sess, err := h.sessions.Scope(middleware.Scope(c)).Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		var authErr *service.AuthError
		if errors.As(err, &authErr) {
			return c.Status(401).JSON(fiber.Map{"error": authErr.Message})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Unable to sign in"})
	}

	return c.JSON(fiber.Map{
		"redirect": h.defaultRoute(sess.Role),
		"session":  sessionResponse{Session: sess, RoleName: sess.Role.DisplayName()},
	})
}

// Logout clears the caller's session. Repeating it is harmless.
// POST /console/logout
func (h *ConsoleHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Scope(middleware.Scope(c)).Logout(c.UserContext()); err != nil {
		h.logger.Error("logout failed", zap.String("scope", middleware.Scope(c)), zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "Failed to sign out"})
	}
	return c.JSON(fiber.Map{"redirect": model.ViewRoute(model.LoginView)})
}

// Session returns the caller's session
// GET /console/session
func (h *ConsoleHandler) Session(c *fiber.Ctx) error {
	sess := h.current(c)
	if sess == nil {
		return loginRedirect(c)
	}
	return c.JSON(sessionResponse{Session: sess, RoleName: sess.Role.DisplayName()})
}

// Nav returns the navigation, quick actions and landing view of the caller's role
// GET /console/nav
func (h *ConsoleHandler) Nav(c *fiber.Ctx) error {
	sess := h.current(c)
	if sess == nil {
		return loginRedirect(c)
	}
	menu, err := h.nav.Menu(sess.Role)
	if err != nil {
		return loginRedirect(c)
	}
	return c.JSON(menu)
}

// View renders a page. It runs behind middleware.ConsoleGuard.
// GET /console/views/:view
func (h *ConsoleHandler) View(c *fiber.Ctx) error {
	d, ok := middleware.Decision(c)
	if !ok {
		return c.Redirect(model.ViewRoute(model.LoginView), fiber.StatusFound)
	}

	ctx := authclient.ContextWithToken(c.UserContext(), d.Session.Token)
	p, err := h.registry.Render(ctx, d)
	if err != nil {
		h.logger.Error("render failed", zap.String("view", string(d.View)), zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "Failed to render view"})
	}
	return c.JSON(p)
}
