package services

import (
	"context"
)

// Checker reports whether a backing service is reachable
type Checker interface {
	// Type returns the service type name
	Type() string

	// HealthCheck checks if the service is available
	HealthCheck(ctx context.Context) error
}

// BaseChecker provides the service type for checkers
type BaseChecker struct {
	serviceType string
}

// Type returns the service type
func (c *BaseChecker) Type() string {
	return c.serviceType
}

// FuncChecker adapts a health function to Checker
type FuncChecker struct {
	BaseChecker
	check func(ctx context.Context) error
}

// NewFuncChecker creates a checker of the given type from check
func NewFuncChecker(serviceType string, check func(ctx context.Context) error) *FuncChecker {
	return &FuncChecker{
		BaseChecker: BaseChecker{serviceType: serviceType},
		check:       check,
	}
}

// HealthCheck runs the wrapped function
func (c *FuncChecker) HealthCheck(ctx context.Context) error {
	return c.check(ctx)
}
