package services

import (
	"fmt"

	"github.com/christoffels/menu/internal/domain/ports"
	"github.com/christoffels/menu/pkg/auth"
	"github.com/christoffels/menu/pkg/expression"
)

// ManagerOptions carries the settings services need at construction
type ManagerOptions struct {
	Tokens        *auth.TokenManager
	MenuItemRules []string
	SweepSchedule string
}

// ServiceManager orchestrates all services with dependency injection
type ServiceManager struct {
	store *ports.Store

	EventBus    *EventBus
	Permissions *PermissionService
	Validation  *ValidationService
	Auth        *AuthService
	Menu        *MenuService
	Basket      *BasketService
	Scheduler   *SchedulerService
}

// NewServiceManager creates a new service manager with all dependencies wired
func NewServiceManager(store *ports.Store, opts ManagerOptions) (*ServiceManager, error) {
	if opts.Tokens == nil {
		return nil, fmt.Errorf("token manager is required")
	}

	sm := &ServiceManager{store: store}

	// Initialize services in dependency order
	sm.EventBus = NewEventBus()
	sm.Permissions = NewPermissionService()

	validation, err := NewValidationService(expression.NewEngine(), opts.MenuItemRules)
	if err != nil {
		return nil, err
	}
	sm.Validation = validation

	sm.Auth = NewAuthService(store, opts.Tokens, sm.Permissions, sm.EventBus)
	sm.Menu = NewMenuService(store.Menu, sm.Permissions, sm.Validation, sm.EventBus)
	sm.Basket = NewBasketService(store.Baskets, store.Menu, sm.EventBus)

	if opts.SweepSchedule != "" {
		scheduler, err := NewSchedulerService(sm.Auth, opts.SweepSchedule)
		if err != nil {
			return nil, err
		}
		sm.Scheduler = scheduler
	}

	return sm, nil
}

// Store returns the repositories the services were built on
func (sm *ServiceManager) Store() *ports.Store {
	return sm.store
}
