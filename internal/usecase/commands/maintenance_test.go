//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"courtside/internal/domain/maintenance"
	"courtside/internal/domain/reservation"
	"courtside/internal/domain/user"
	"courtside/internal/infra"
	"courtside/internal/usecase/commands"
	"courtside/tests/common/builder"
	commandsmock "courtside/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type MaintenanceCommandsTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockUoW     *commandsmock.MockUnitOfWork
	mockReads   *commandsmock.MockCommandReads
	mockTx      *commandsmock.MockTx
	mockRepo    *commandsmock.MockMaintenanceRepository
	mockEvtRepo *commandsmock.MockEventRepository
	sut         commands.MaintenanceCommands
	startAt     time.Time
	endAt       time.Time
}

func (s *MaintenanceCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUoW = commandsmock.NewMockUnitOfWork(s.mockCtrl)
	s.mockReads = commandsmock.NewMockCommandReads(s.mockCtrl)
	s.mockTx = commandsmock.NewMockTx(s.mockCtrl)
	s.mockRepo = commandsmock.NewMockMaintenanceRepository(s.mockCtrl)
	s.mockEvtRepo = commandsmock.NewMockEventRepository(s.mockCtrl)
	s.sut = commands.NewMaintenanceCommands(s.mockUoW, s.mockReads)

	s.startAt = time.Date(2026, time.June, 20, 8, 0, 0, 0, time.UTC)
	s.endAt = s.startAt.Add(6 * time.Hour)
}

func (s *MaintenanceCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestMaintenanceCommandsSuite(t *testing.T) {
	suite.Run(t, new(MaintenanceCommandsTestSuite))
}

func (s *MaintenanceCommandsTestSuite) expectWithinTx() {
	s.mockUoW.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, commands.Tx) error) error {
			return fn(ctx, s.mockTx)
		})
}

func (s *MaintenanceCommandsTestSuite) TestScheduleMaintenance() {
	s.Run("success: owner schedules a window and sees conflict warnings", func() {
		owner := commands.Actor{UserID: uuid.New(), Role: user.RoleOwner}
		courtEntity, err := builder.NewCourtBuilder().WithOwnerID(owner.UserID).BuildDomain()
		s.Require().NoError(err)

		confirmed, err := builder.NewReservationBuilder().WithCourtID(courtEntity.ID()).BuildDomain()
		s.Require().NoError(err)
		s.Require().NoError(confirmed.ConfirmPayment())

		s.mockReads.EXPECT().CourtByID(gomock.Any(), courtEntity.ID()).Return(courtEntity, nil)
		s.expectWithinTx()
		s.mockTx.EXPECT().Maintenance().Return(s.mockRepo)
		s.mockTx.EXPECT().Events().Return(s.mockEvtRepo)
		s.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.mockEvtRepo.EXPECT().Append(gomock.Any(), commands.TopicMaintenanceScheduled, gomock.Any()).Return(nil)
		s.mockReads.EXPECT().ConfirmedReservationsBetween(gomock.Any(), courtEntity.ID(), s.startAt, s.endAt).
			Return([]*reservation.Reservation{confirmed}, nil)

		result, err := s.sut.ScheduleMaintenance(context.Background(), owner, courtEntity.ID(), "resurfacing", "", s.startAt, s.endAt)

		s.Require().NoError(err)
		s.Equal(maintenance.StatusScheduled, result.Window.Status())
		s.Require().Len(result.Warnings, 1)
		s.Equal(confirmed.ID(), result.Warnings[0].ReservationID)
	})

	s.Run("admin may schedule on any court", func() {
		admin := commands.Actor{UserID: uuid.New(), Role: user.RoleAdmin}
		courtEntity, err := builder.NewCourtBuilder().BuildDomain()
		s.Require().NoError(err)

		s.mockReads.EXPECT().CourtByID(gomock.Any(), courtEntity.ID()).Return(courtEntity, nil)
		s.expectWithinTx()
		s.mockTx.EXPECT().Maintenance().Return(s.mockRepo)
		s.mockTx.EXPECT().Events().Return(s.mockEvtRepo)
		s.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.mockEvtRepo.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.mockReads.EXPECT().ConfirmedReservationsBetween(gomock.Any(), courtEntity.ID(), s.startAt, s.endAt).Return(nil, nil)

		result, err := s.sut.ScheduleMaintenance(context.Background(), admin, courtEntity.ID(), "net replacement", "", s.startAt, s.endAt)
		s.Require().NoError(err)
		s.Empty(result.Warnings)
	})

	s.Run("member is forbidden", func() {
		member := commands.Actor{UserID: uuid.New(), Role: user.RoleMember}
		courtEntity, err := builder.NewCourtBuilder().BuildDomain()
		s.Require().NoError(err)
		s.mockReads.EXPECT().CourtByID(gomock.Any(), courtEntity.ID()).Return(courtEntity, nil)

		_, err = s.sut.ScheduleMaintenance(context.Background(), member, courtEntity.ID(), "resurfacing", "", s.startAt, s.endAt)
		s.ErrorIs(err, commands.ErrForbidden)
	})

	s.Run("owner of another court is forbidden", func() {
		owner := commands.Actor{UserID: uuid.New(), Role: user.RoleOwner}
		courtEntity, err := builder.NewCourtBuilder().BuildDomain()
		s.Require().NoError(err)
		s.mockReads.EXPECT().CourtByID(gomock.Any(), courtEntity.ID()).Return(courtEntity, nil)

		_, err = s.sut.ScheduleMaintenance(context.Background(), owner, courtEntity.ID(), "resurfacing", "", s.startAt, s.endAt)
		s.ErrorIs(err, commands.ErrForbidden)
	})

	s.Run("unknown court", func() {
		admin := commands.Actor{UserID: uuid.New(), Role: user.RoleAdmin}
		id := uuid.New()
		s.mockReads.EXPECT().CourtByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("court", errors.New("no rows"), infra.KindNotFound))

		_, err := s.sut.ScheduleMaintenance(context.Background(), admin, id, "resurfacing", "", s.startAt, s.endAt)
		s.ErrorIs(err, commands.ErrCourtNotFound)
	})

	s.Run("warnings read failure aborts before anything is written", func() {
		admin := commands.Actor{UserID: uuid.New(), Role: user.RoleAdmin}
		courtEntity, err := builder.NewCourtBuilder().BuildDomain()
		s.Require().NoError(err)

		// No transaction expected: the window must not be created when
		// the caller would only see an error and retry.
		s.mockReads.EXPECT().CourtByID(gomock.Any(), courtEntity.ID()).Return(courtEntity, nil)
		s.mockReads.EXPECT().ConfirmedReservationsBetween(gomock.Any(), courtEntity.ID(), s.startAt, s.endAt).
			Return(nil, errors.New("connection reset"))

		_, err = s.sut.ScheduleMaintenance(context.Background(), admin, courtEntity.ID(), "resurfacing", "", s.startAt, s.endAt)
		s.ErrorIs(err, commands.ErrDatabaseOperationFailed)
	})

	s.Run("inverted span is rejected", func() {
		admin := commands.Actor{UserID: uuid.New(), Role: user.RoleAdmin}
		courtEntity, err := builder.NewCourtBuilder().BuildDomain()
		s.Require().NoError(err)
		s.mockReads.EXPECT().CourtByID(gomock.Any(), courtEntity.ID()).Return(courtEntity, nil)

		_, err = s.sut.ScheduleMaintenance(context.Background(), admin, courtEntity.ID(), "resurfacing", "", s.endAt, s.startAt)
		s.ErrorIs(err, commands.ErrInvalidWindow)
	})
}

func (s *MaintenanceCommandsTestSuite) TestUpdateStatus() {
	newWindow := func() *maintenance.Window {
		w, err := builder.NewMaintenanceBuilder().BuildDomain()
		s.Require().NoError(err)
		return w
	}

	s.Run("success: scheduled moves to in_progress", func() {
		admin := commands.Actor{UserID: uuid.New(), Role: user.RoleAdmin}
		window := newWindow()

		s.mockReads.EXPECT().WindowByID(gomock.Any(), window.ID()).Return(window, nil)
		s.expectWithinTx()
		s.mockTx.EXPECT().Maintenance().Return(s.mockRepo)
		s.mockRepo.EXPECT().UpdateStatus(gomock.Any(), window).Return(nil)

		got, err := s.sut.UpdateStatus(context.Background(), admin, window.ID(), maintenance.StatusInProgress)
		s.Require().NoError(err)
		s.Equal(maintenance.StatusInProgress, got.Status())
	})

	s.Run("owner advances a window on their own court", func() {
		owner := commands.Actor{UserID: uuid.New(), Role: user.RoleOwner}
		courtEntity, err := builder.NewCourtBuilder().WithOwnerID(owner.UserID).BuildDomain()
		s.Require().NoError(err)
		window, err := builder.NewMaintenanceBuilder().WithCourtID(courtEntity.ID()).BuildDomain()
		s.Require().NoError(err)

		s.mockReads.EXPECT().WindowByID(gomock.Any(), window.ID()).Return(window, nil)
		s.mockReads.EXPECT().CourtByID(gomock.Any(), courtEntity.ID()).Return(courtEntity, nil)
		s.expectWithinTx()
		s.mockTx.EXPECT().Maintenance().Return(s.mockRepo)
		s.mockRepo.EXPECT().UpdateStatus(gomock.Any(), window).Return(nil)

		got, err := s.sut.UpdateStatus(context.Background(), owner, window.ID(), maintenance.StatusInProgress)
		s.Require().NoError(err)
		s.Equal(maintenance.StatusInProgress, got.Status())
	})

	s.Run("owner of another court is forbidden", func() {
		owner := commands.Actor{UserID: uuid.New(), Role: user.RoleOwner}
		courtEntity, err := builder.NewCourtBuilder().BuildDomain()
		s.Require().NoError(err)
		window, err := builder.NewMaintenanceBuilder().WithCourtID(courtEntity.ID()).BuildDomain()
		s.Require().NoError(err)

		s.mockReads.EXPECT().WindowByID(gomock.Any(), window.ID()).Return(window, nil)
		s.mockReads.EXPECT().CourtByID(gomock.Any(), courtEntity.ID()).Return(courtEntity, nil)

		_, err = s.sut.UpdateStatus(context.Background(), owner, window.ID(), maintenance.StatusInProgress)
		s.ErrorIs(err, commands.ErrForbidden)
	})

	s.Run("backward transition is rejected", func() {
		admin := commands.Actor{UserID: uuid.New(), Role: user.RoleAdmin}
		window := newWindow()
		s.Require().NoError(window.Advance(maintenance.StatusCompleted))

		s.mockReads.EXPECT().WindowByID(gomock.Any(), window.ID()).Return(window, nil)

		_, err := s.sut.UpdateStatus(context.Background(), admin, window.ID(), maintenance.StatusInProgress)
		s.ErrorIs(err, commands.ErrInvalidStatusChange)
	})

	s.Run("member is forbidden", func() {
		member := commands.Actor{UserID: uuid.New(), Role: user.RoleMember}

		_, err := s.sut.UpdateStatus(context.Background(), member, uuid.New(), maintenance.StatusInProgress)
		s.ErrorIs(err, commands.ErrForbidden)
	})

	s.Run("unknown window", func() {
		admin := commands.Actor{UserID: uuid.New(), Role: user.RoleAdmin}
		id := uuid.New()
		s.mockReads.EXPECT().WindowByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("window", errors.New("no rows"), infra.KindNotFound))

		_, err := s.sut.UpdateStatus(context.Background(), admin, id, maintenance.StatusInProgress)
		s.ErrorIs(err, commands.ErrWindowNotFound)
	})
}
