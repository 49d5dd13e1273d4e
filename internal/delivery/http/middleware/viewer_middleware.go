package middleware

import (
	"strings"

	"nosh/config"
	deliverycontext "nosh/internal/delivery/context"
	domainerrors "nosh/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ViewerMiddleware attaches the authenticated viewer identity to the request
// context when a bearer token is presented. Search works anonymously; the
// viewer identity is only the extension point for future personalization and
// is ignored by the ranking formula. Token issuance is owned by an external
// collaborator; this middleware only verifies.
type ViewerMiddleware struct {
	cfg *config.Config
}

// NewViewerMiddleware is the constructor for ViewerMiddleware.
func NewViewerMiddleware(cfg *config.Config) *ViewerMiddleware {
	return &ViewerMiddleware{cfg: cfg}
}

// Attach validates a present bearer token and stores the viewer ID in the
// request context. Requests without a token pass through anonymously; a token
// that is presented but invalid is rejected.
func (m *ViewerMiddleware) Attach(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" || m.cfg.SecretKey.Access == "" {
			return next(c)
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return domainerrors.ErrUnauthorized.WithDetails("authorization header must carry a Bearer token")
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, domainerrors.ErrUnauthorized
			}

			return []byte(m.cfg.SecretKey.Access), nil
		})
		if err != nil || !token.Valid {
			return domainerrors.ErrUnauthorized
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return domainerrors.ErrUnauthorized
		}

		subject, _ := claims["sub"].(string)
		viewerID, err := uuid.Parse(subject)
		if err != nil {
			return domainerrors.ErrUnauthorized.WithDetails("token subject is not a valid viewer ID")
		}

		ctx := deliverycontext.WithViewerID(c.Request().Context(), viewerID)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
