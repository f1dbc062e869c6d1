package router

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"notely/internal/auth"
	"notely/internal/config"
	apperrors "notely/internal/errors"
	"notely/internal/handler"
)

var errTokenRevoked = errors.New("token revoked")

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *zap.SugaredLogger,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	noteHandler *handler.NoteHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/signup", authHandler.SignUp)
	e.POST("/signin", authHandler.SignIn)

	// Secured routes (require JWT authentication)
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		ContextKey:     handler.ClaimsContextKey,
		ParseTokenFunc: parseToken(jwtService, tokenStore),
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "missing or invalid token",
				Code:  "UNAUTHORIZED",
			}).SetInternal(err)
		},
	}))

	secured.POST("/signout", authHandler.SignOut)
	secured.POST("/update-password", authHandler.UpdatePassword)

	// Note routes
	secured.GET("/notes", noteHandler.ListNotes)
	secured.POST("/upload-note", noteHandler.CreateNote)
	secured.PUT("/upload-note/:id", noteHandler.UpdateNote)
	secured.DELETE("/notes/:id", noteHandler.DeleteNote)
	secured.PATCH("/notes/:user_id/:note_id", noteHandler.ToggleFavorite)
	secured.POST("/notes/upload-image/:noteId", noteHandler.UploadNoteImage)
	secured.POST("/notes/upload-audio/:noteId", noteHandler.UploadNoteAudio)

	// Profile routes
	secured.POST("/upload/:userId", userHandler.UploadProfileImage)
	secured.GET("/profile-image/:userId", userHandler.GetProfileImage)
}

// parseToken validates a bearer token and rejects revoked ones.
func parseToken(jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) func(echo.Context, string) (interface{}, error) {
	return func(c echo.Context, token string) (interface{}, error) {
		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			return nil, err
		}
		revoked, err := tokenStore.IsRevoked(c.Request().Context(), claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, errTokenRevoked
		}
		return claims, nil
	}
}

func requestLogger(log *zap.SugaredLogger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				log.Errorw("request failed", append(fields, "error", v.Error)...)
				return nil
			}
			log.Infow("request", fields...)
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
