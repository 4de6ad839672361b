// Package api exposes the HTTP surface: authentication endpoints plus the
// post, tag, user and upload resources. Handlers bind the request, delegate
// to a service and map the error taxonomy onto HTTP statuses with generic
// bodies; the specific cause is only logged.
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/inkwell-cms/inkwell/internal/auth"
	"github.com/inkwell-cms/inkwell/internal/auth/token"
	"github.com/inkwell-cms/inkwell/internal/post"
	"github.com/inkwell-cms/inkwell/internal/tag"
	"github.com/inkwell-cms/inkwell/internal/upload"
	"github.com/inkwell-cms/inkwell/internal/user"
)

type Handler struct {
	signIn  *auth.SignInService
	refresh *auth.RefreshService
	google  *auth.GoogleService
	signer  *token.Signer

	users   *user.Service
	posts   *post.Service
	tags    *tag.Service
	uploads *upload.Service

	log *zap.Logger
}

func NewHandler(
	signIn *auth.SignInService,
	refresh *auth.RefreshService,
	google *auth.GoogleService,
	signer *token.Signer,
	users *user.Service,
	posts *post.Service,
	tags *tag.Service,
	uploads *upload.Service,
	log *zap.Logger,
) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		signIn:  signIn,
		refresh: refresh,
		google:  google,
		signer:  signer,
		users:   users,
		posts:   posts,
		tags:    tags,
		uploads: uploads,
		log:     log,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/sign-in", h.HandleSignIn)
	g.POST("/auth/refresh-tokens", h.HandleRefresh)
	g.POST("/auth/google", h.HandleGoogleAuth)
	g.POST("/users", h.HandleCreateUser)

	protected := g.Group("", h.RequireAuth)
	protected.GET("/users/me", h.HandleWhoAmI)
	protected.POST("/posts", h.HandleCreatePost)
	protected.GET("/posts", h.HandleListPosts)
	protected.GET("/posts/:id", h.HandleGetPost)
	protected.PATCH("/posts/:id", h.HandleUpdatePost)
	protected.DELETE("/posts/:id", h.HandleDeletePost)
	protected.POST("/tags", h.HandleCreateTag)
	protected.DELETE("/tags/:id", h.HandleDeleteTag)
	protected.POST("/uploads/file", h.HandleUpload)
}

func (h *Handler) HandleSignIn(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errBody("Invalid request body"))
	}
	if body.Email == "" || body.Password == "" {
		return c.JSON(http.StatusBadRequest, errBody("Email and password are required"))
	}

	pair, err := h.signIn.SignIn(c.Request().Context(), body.Email, body.Password)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, pair)
}

func (h *Handler) HandleRefresh(c echo.Context) error {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errBody("Invalid request body"))
	}
	if body.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, errBody("Refresh token is required"))
	}

	pair, err := h.refresh.Refresh(c.Request().Context(), body.RefreshToken)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, pair)
}

func (h *Handler) HandleGoogleAuth(c echo.Context) error {
	var body struct {
		Token string `json:"token"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errBody("Invalid request body"))
	}
	if body.Token == "" {
		return c.JSON(http.StatusBadRequest, errBody("Token is required"))
	}

	pair, err := h.google.Authenticate(c.Request().Context(), body.Token)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, pair)
}

// mapError translates the error taxonomy into HTTP responses. The
// unauthenticated cases share one body on purpose: callers cannot tell a
// wrong password from an unknown account or a bad token.
func (h *Handler) mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, errBody("Unauthorized"))
	case errors.Is(err, auth.ErrConflict), errors.Is(err, auth.ErrDuplicateUser):
		return c.JSON(http.StatusConflict, errBody("Account conflict, manual resolution required"))
	case errors.Is(err, auth.ErrTransient):
		return c.JSON(http.StatusServiceUnavailable, errBody("Service busy, try again later"))
	case errors.Is(err, auth.ErrNoSuchUser), errors.Is(err, post.ErrNotFound):
		return c.JSON(http.StatusNotFound, errBody("Not found"))
	case errors.Is(err, post.ErrUnknownTags):
		return c.JSON(http.StatusBadRequest, errBody("Please check your tag ids"))
	case errors.Is(err, post.ErrDuplicateSlug):
		return c.JSON(http.StatusConflict, errBody("Slug already in use"))
	case errors.Is(err, upload.ErrUnsupportedType):
		return c.JSON(http.StatusBadRequest, errBody("Mime type not supported"))
	default:
		h.log.Error("request failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errBody("Internal server error"))
	}
}

func errBody(message string) map[string]string {
	return map[string]string{"message": message}
}
