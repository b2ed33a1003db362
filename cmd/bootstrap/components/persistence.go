package components

import (
	"courtside/internal/infra/db"
	"courtside/internal/infra/readstore"
	"courtside/internal/infra/uow"
	"courtside/internal/usecase/commands"
	"courtside/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork
		uow.NewPostgresUoW,
		// Command-side reads (also feeds the availability query)
		fx.Annotate(
			readstore.NewCommandReadStore,
			fx.As(new(commands.CommandReads)),
			fx.As(new(queries.AvailabilityReadStore)),
		),
		// Reservation views
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
