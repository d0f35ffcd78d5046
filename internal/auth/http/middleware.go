package http

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/cube/simple/internal/auth/domain"
	authService "github.com/cube/simple/internal/auth/service"
	apperrors "github.com/cube/simple/internal/errors"
	"github.com/cube/simple/internal/httputil"
	"github.com/cube/simple/internal/metrics"
)

const bearerPrefix = "bearer "

// AuthenticationMiddleware verifies bearer tokens and attaches the Principal to
// the request context.
//
// The middleware:
// 1. Reads the Authorization header; when it is absent or uses another scheme the
// request continues unauthenticated (the route policy decides whether that is allowed)
// 2. Strips the "Bearer " prefix (case-insensitive) and calls TokenService.Verify
// 3. On an expired token responds 401 with message key api.response.jwt.expired
// 4. On any other verification failure responds 401 with api.response.jwt.invalid
// 5. Rejects refresh tokens presented as access tokens as invalid
// 6. On success stores Principal{Subject, Role} via WithPrincipal
//
// Both 401 responses carry a WWW-Authenticate challenge whose error_description is
// "token_expired" or "token_invalid" so clients can tell the cases apart without
// parsing the localized message.
//
// Usage:
//
//	router.Use(AuthenticationMiddleware(tokenService, responder, securityMetrics, logger))
//	router.Use(AuthorizationMiddleware(policy, responder, securityMetrics, logger))
func AuthenticationMiddleware(
	tokenService authService.TokenService,
	responder *httputil.ErrorResponder,
	securityMetrics metrics.SecurityMetrics,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			securityMetrics.RecordAuthentication(ctx, metrics.AuthOutcomeAbsent)
			c.Next()
			return
		}

		token := strings.TrimSpace(authHeader[len(bearerPrefix):])
		claims, err := tokenService.Verify(token)
		if err == nil && claims.Type != authDomain.TokenTypeAccess {
			err = fmt.Errorf("%w: %s token used as access token", authDomain.ErrSignatureInvalid, claims.Type)
		}

		if err != nil {
			messageKey, description, outcome := httputil.MsgJWTInvalid, "token_invalid", metrics.AuthOutcomeInvalid
			if apperrors.Is(err, authDomain.ErrTokenExpired) {
				messageKey, description, outcome = httputil.MsgJWTExpired, "token_expired", metrics.AuthOutcomeExpired
			}

			securityMetrics.RecordAuthentication(ctx, outcome)
			logger.Debug("authentication failed", slog.String("outcome", outcome))

			c.Header(
				"WWW-Authenticate",
				fmt.Sprintf(`Bearer error="invalid_token", error_description=%q`, description),
			)
			responder.Unauthorized(c, messageKey, err)
			return
		}

		principal := claims.Principal()
		c.Request = c.Request.WithContext(WithPrincipal(ctx, principal))
		securityMetrics.RecordAuthentication(ctx, metrics.AuthOutcomeValid)

		logger.Debug("authentication successful",
			slog.String("subject", principal.Subject),
			slog.String("role", principal.Role.String()))

		c.Next()
	}
}

// AuthorizationMiddleware enforces the static route policy. It must run after
// AuthenticationMiddleware.
//
// Decisions:
//   - Allow: the request continues to the handler
//   - Unauthenticated (protected route, no principal): 401 via ErrorResponder.Unauthorized
//   - Forbidden (principal lacks the required role or identity): 403 via ErrorResponder.Forbidden
//
// The decision is taken on the raw request path, so it also covers requests that
// no route matches.
func AuthorizationMiddleware(
	policy *authDomain.RoutePolicy,
	responder *httputil.ErrorResponder,
	securityMetrics metrics.SecurityMetrics,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		path := c.Request.URL.Path
		principal, _ := GetPrincipal(c.Request.Context())

		decision := policy.Decide(method, path, principal)
		securityMetrics.RecordAuthorization(c.Request.Context(), decision.String())

		switch decision {
		case authDomain.DecisionAllow:
			c.Next()
		case authDomain.DecisionUnauthenticated:
			logger.Debug("authorization failed: authentication required",
				slog.String("method", method),
				slog.String("path", path))
			c.Header("WWW-Authenticate", "Bearer")
			responder.Unauthorized(
				c,
				httputil.MsgUnauthorized,
				fmt.Errorf("%w: %s %s", authDomain.ErrUnauthenticated, method, path),
			)
		default:
			logger.Debug("authorization failed: insufficient role",
				slog.String("subject", principal.Subject),
				slog.String("role", principal.Role.String()),
				slog.String("method", method),
				slog.String("path", path))
			responder.Forbidden(
				c,
				fmt.Errorf("%w: role %s cannot %s %s", authDomain.ErrAccessDenied, principal.Role, method, path),
			)
		}
	}
}
