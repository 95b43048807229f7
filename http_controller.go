package identity

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// IdentityAPI is the service surface the HTTP controller depends on.
type IdentityAPI interface {
	SignIn(ctx context.Context, req SignInRequest) (*AuthenticationResult, error)
	Register(ctx context.Context, req RegisterRequest) (*AuthenticationResult, error)
}

// IdentityController exposes the identity service as a JSON API. Business
// outcomes, including failed sign-ins, respond 200 with the result
// envelope; callers branch on isSuccessful and message codes. Only
// malformed bodies (400) and unexpected faults (500) use the transport
// status.
type IdentityController struct {
	service IdentityAPI
	logger  Logger
}

type IdentityControllerOption func(*IdentityController)

func WithControllerLogger(logger Logger) IdentityControllerOption {
	return func(c *IdentityController) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewIdentityController(service IdentityAPI, opts ...IdentityControllerOption) *IdentityController {
	c := &IdentityController{
		service: service,
		logger:  defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// RegisterRoutes mounts the identity endpoints on the app.
func RegisterRoutes(app *fiber.App, controller *IdentityController) {
	api := app.Group("/api")

	api.Post("/identity", controller.SignIn).Name("identity.sign-in")
	api.Post("/identity/register", controller.Register).Name("identity.register")
}

// SignIn handles POST /api/identity.
func (c *IdentityController) SignIn(ctx *fiber.Ctx) error {
	var req SignInRequest
	if err := ctx.BodyParser(&req); err != nil {
		c.logger.Debug("sign-in body parse error", "error", err)
		return badRequest(ctx, "Request body could not be parsed.")
	}

	result, err := c.service.SignIn(ctx.UserContext(), req)
	if err != nil {
		c.logger.Error("sign-in fault", "error", err)
		return fiber.ErrInternalServerError
	}

	return ctx.Status(fiber.StatusOK).JSON(result)
}

// Register handles POST /api/identity/register.
func (c *IdentityController) Register(ctx *fiber.Ctx) error {
	var req RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		c.logger.Debug("register body parse error", "error", err)
		return badRequest(ctx, "Request body could not be parsed.")
	}

	result, err := c.service.Register(ctx.UserContext(), req)
	if err != nil {
		c.logger.Error("register fault", "error", err)
		return fiber.ErrInternalServerError
	}

	return ctx.Status(fiber.StatusOK).JSON(result)
}

func badRequest(ctx *fiber.Ctx, message string) error {
	result := &AuthenticationResult{}
	result.AddError("InvalidRequest", message)
	return ctx.Status(fiber.StatusBadRequest).JSON(result)
}
