package components

import (
	"bikefleet/internal/infra/readstore"
	repo_impl "bikefleet/internal/infra/repository"
	"bikefleet/internal/usecase/commands"
	"bikefleet/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			repo_impl.NewRentalRepository,
			fx.As(new(commands.RentalRepository)),
		),
		fx.Annotate(
			repo_impl.NewBikeRepository,
			fx.As(new(commands.BikeRepository)),
		),
		fx.Annotate(
			repo_impl.NewSOSRepository,
			fx.As(new(commands.SOSRepository)),
		),
		fx.Annotate(
			repo_impl.NewCardRepository,
			fx.As(new(commands.CardDirectory)),
		),
		fx.Annotate(
			repo_impl.NewAgentRepository,
			fx.As(new(commands.AgentDirectory)),
		),
		// Read-side stores for queries
		fx.Annotate(
			readstore.NewRentalReadStore,
			fx.As(new(queries.RentalReadStore)),
		),
		fx.Annotate(
			readstore.NewSOSReadStore,
			fx.As(new(queries.SOSReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) repo_impl.DBTX {
	return pool
}
