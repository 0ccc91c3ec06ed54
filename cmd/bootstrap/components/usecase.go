package components

import (
	"time"

	"guildhall/internal/pkg/clock"
	"guildhall/internal/pkg/config"
	"guildhall/internal/usecase"
	"guildhall/internal/usecase/commands"
	"guildhall/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewLocation,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewBookingQueries,
		queries.NewAvailabilityQueries,
		queries.NewTransactionQueries,
		queries.NewCatalogQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBillingCommands,
		commands.NewBookingCommands,
		commands.NewCatalogCommands,
	),
)

// NewLocation resolves the association's local timezone. Slot times, quota
// windows and billing cycles are all anchored to it.
func NewLocation(cfg config.Config) (*time.Location, error) {
	return time.LoadLocation(cfg.Log.TimeZone)
}
