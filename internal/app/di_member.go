package app

import (
	"fmt"

	"github.com/cube/simple/internal/database"
	memberHTTP "github.com/cube/simple/internal/member/http"
	memberRepository "github.com/cube/simple/internal/member/repository"
	memberUseCase "github.com/cube/simple/internal/member/usecase"
)

// MemberRepository returns the member repository based on database driver.
func (c *Container) MemberRepository() (memberUseCase.MemberRepository, error) {
	var err error
	c.memberRepositoryInit.Do(func() {
		c.memberRepository, err = c.initMemberRepository()
		if err != nil {
			c.initErrors["memberRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["memberRepository"]; exists {
		return nil, storedErr
	}
	return c.memberRepository, nil
}

// MemberUseCase returns the member use case.
func (c *Container) MemberUseCase() (memberUseCase.MemberUseCase, error) {
	var err error
	c.memberUseCaseInit.Do(func() {
		c.memberUseCase, err = c.initMemberUseCase()
		if err != nil {
			c.initErrors["memberUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["memberUseCase"]; exists {
		return nil, storedErr
	}
	return c.memberUseCase, nil
}

// MemberHandler returns the HTTP handler for member CRUD.
func (c *Container) MemberHandler() (*memberHTTP.MemberHandler, error) {
	var err error
	c.memberHandlerInit.Do(func() {
		c.memberHandler, err = c.initMemberHandler()
		if err != nil {
			c.initErrors["memberHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["memberHandler"]; exists {
		return nil, storedErr
	}
	return c.memberHandler, nil
}

func (c *Container) initMemberRepository() (memberUseCase.MemberRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for member repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return memberRepository.NewPostgreSQLMemberRepository(db), nil
	case database.DriverMySQL:
		return memberRepository.NewMySQLMemberRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initMemberUseCase() (memberUseCase.MemberUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for member use case: %w", err)
	}

	repo, err := c.MemberRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get member repository for member use case: %w", err)
	}

	engine, err := c.TransformEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to get transform engine for member use case: %w", err)
	}

	hasher, err := c.CredentialHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential hasher for member use case: %w", err)
	}

	baseUseCase := memberUseCase.NewMemberUseCase(txManager, repo, engine, hasher)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for member use case: %w", err)
		}
		return memberUseCase.NewMemberUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initMemberHandler() (*memberHTTP.MemberHandler, error) {
	useCase, err := c.MemberUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get member use case for member handler: %w", err)
	}
	return memberHTTP.NewMemberHandler(useCase, c.Responder(), c.Logger()), nil
}
