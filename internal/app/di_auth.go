package app

import (
	"fmt"

	authDomain "github.com/cube/simple/internal/auth/domain"
	authHTTP "github.com/cube/simple/internal/auth/http"
	authService "github.com/cube/simple/internal/auth/service"
	authUseCase "github.com/cube/simple/internal/auth/usecase"
	"github.com/cube/simple/internal/httputil"
)

// TokenService returns the token service signing with the configured key material.
func (c *Container) TokenService() (authService.TokenService, error) {
	var err error
	c.tokenServiceInit.Do(func() {
		c.tokenService, err = c.initTokenService()
		if err != nil {
			c.initErrors["tokenService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenService"]; exists {
		return nil, storedErr
	}
	return c.tokenService, nil
}

// RoutePolicy returns the static route policy table.
func (c *Container) RoutePolicy() *authDomain.RoutePolicy {
	c.routePolicyInit.Do(func() {
		c.routePolicy = authDomain.DefaultRoutePolicy()
	})
	return c.routePolicy
}

// Responder returns the error responder shared by middlewares and handlers.
func (c *Container) Responder() *httputil.ErrorResponder {
	c.responderInit.Do(func() {
		c.responder = httputil.NewErrorResponder(httputil.NewMessages(), c.config.ErrorExposeDetail, c.Logger())
	})
	return c.responder
}

// LoginUseCase returns the login use case.
func (c *Container) LoginUseCase() (authUseCase.LoginUseCase, error) {
	var err error
	c.loginUseCaseInit.Do(func() {
		c.loginUseCase, err = c.initLoginUseCase()
		if err != nil {
			c.initErrors["loginUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["loginUseCase"]; exists {
		return nil, storedErr
	}
	return c.loginUseCase, nil
}

// TokenHandler returns the HTTP handler for login, refresh and me.
func (c *Container) TokenHandler() (*authHTTP.TokenHandler, error) {
	var err error
	c.tokenHandlerInit.Do(func() {
		c.tokenHandler, err = c.initTokenHandler()
		if err != nil {
			c.initErrors["tokenHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenHandler"]; exists {
		return nil, storedErr
	}
	return c.tokenHandler, nil
}

func (c *Container) initTokenService() (authService.TokenService, error) {
	km, err := c.KeyMaterial()
	if err != nil {
		return nil, fmt.Errorf("failed to get key material for token service: %w", err)
	}
	return authService.NewTokenService(
		km,
		c.config.AccessTokenExpiration,
		c.config.RefreshTokenExpiration,
	), nil
}

func (c *Container) initLoginUseCase() (authUseCase.LoginUseCase, error) {
	members, err := c.MemberUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get member use case for login use case: %w", err)
	}

	tokenService, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for login use case: %w", err)
	}

	baseUseCase := authUseCase.NewLoginUseCase(members, tokenService)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for login use case: %w", err)
		}
		return authUseCase.NewLoginUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initTokenHandler() (*authHTTP.TokenHandler, error) {
	loginUseCase, err := c.LoginUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get login use case for token handler: %w", err)
	}
	return authHTTP.NewTokenHandler(loginUseCase, c.Responder(), c.Logger()), nil
}
