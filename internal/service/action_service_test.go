package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gstims/internal/domain"
	"gstims/internal/port"
	"gstims/internal/service"
	"gstims/mocks"
)

const testGSTIN = "24AAACC1206D1ZM"

func setupActionService() (*service.ActionService, *mocks.MockInwardSupplyRepo) {
	inwardRepo := new(mocks.MockInwardSupplyRepo)
	svc := service.NewActionService(inwardRepo)
	return svc, inwardRepo
}

func unlinkedSupply(id uuid.UUID) domain.InwardSupply {
	return domain.InwardSupply{
		ID:                id,
		CompanyGSTIN:      testGSTIN,
		SupplierGSTIN:     "29AABCU9603R1ZJ",
		BillNo:            "INV-001",
		Action:            domain.MatchActionAcceptMyValues,
		PreviousAction:    domain.MatchActionNone,
		IMSAction:         domain.ActionNone,
		PreviousIMSAction: domain.ActionNone,
	}
}

// --- UpdateAction ---

func TestActionService_UpdateAction_RejectShadowsMatchAction(t *testing.T) {
	svc, inwardRepo := setupActionService()

	id := uuid.New()
	supply := unlinkedSupply(id)

	inwardRepo.On("List", mock.Anything, testGSTIN, []uuid.UUID{id}).
		Return([]domain.InwardSupply{supply}, nil)

	var captured []port.ActionStateUpdate
	inwardRepo.On("ApplyActionState", mock.Anything, mock.AnythingOfType("[]port.ActionStateUpdate")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).([]port.ActionStateUpdate)
		}).
		Return(nil)

	err := svc.UpdateAction(context.Background(), testGSTIN, []uuid.UUID{id}, domain.ActionRejected)

	assert.NoError(t, err)
	assert.Len(t, captured, 1)
	assert.Equal(t, domain.MatchActionAcceptMyValues, captured[0].PreviousAction)
	assert.Equal(t, domain.MatchActionIgnore, captured[0].Action)
	assert.Equal(t, domain.ActionRejected, captured[0].IMSAction)
	inwardRepo.AssertExpectations(t)
}

func TestActionService_UpdateAction_RejectLinkedKeepsMatchAction(t *testing.T) {
	svc, inwardRepo := setupActionService()

	id := uuid.New()
	supply := unlinkedSupply(id)
	supply.LinkDoctype = "Purchase Invoice"
	supply.LinkName = "PINV-0042"

	inwardRepo.On("List", mock.Anything, testGSTIN, []uuid.UUID{id}).
		Return([]domain.InwardSupply{supply}, nil)

	var captured []port.ActionStateUpdate
	inwardRepo.On("ApplyActionState", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).([]port.ActionStateUpdate)
		}).
		Return(nil)

	err := svc.UpdateAction(context.Background(), testGSTIN, []uuid.UUID{id}, domain.ActionRejected)

	assert.NoError(t, err)
	assert.Len(t, captured, 1)
	// A linked invoice's match action is governed by its match, so rejection
	// only records the user-facing action.
	assert.Equal(t, domain.MatchActionAcceptMyValues, captured[0].Action)
	assert.Equal(t, domain.MatchActionNone, captured[0].PreviousAction)
	assert.Equal(t, domain.ActionRejected, captured[0].IMSAction)
}

func TestActionService_UpdateAction_UnrejectRestoresShadowedAction(t *testing.T) {
	svc, inwardRepo := setupActionService()

	id := uuid.New()
	supply := unlinkedSupply(id)
	// State after a prior rejection.
	supply.Action = domain.MatchActionIgnore
	supply.PreviousAction = domain.MatchActionAcceptMyValues
	supply.IMSAction = domain.ActionRejected

	inwardRepo.On("List", mock.Anything, testGSTIN, []uuid.UUID{id}).
		Return([]domain.InwardSupply{supply}, nil)

	var captured []port.ActionStateUpdate
	inwardRepo.On("ApplyActionState", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).([]port.ActionStateUpdate)
		}).
		Return(nil)

	err := svc.UpdateAction(context.Background(), testGSTIN, []uuid.UUID{id}, domain.ActionAccepted)

	assert.NoError(t, err)
	assert.Len(t, captured, 1)
	assert.Equal(t, domain.MatchActionAcceptMyValues, captured[0].Action)
	assert.Equal(t, domain.ActionAccepted, captured[0].IMSAction)
}

func TestActionService_UpdateAction_RepeatedAcceptIsIdempotent(t *testing.T) {
	svc, inwardRepo := setupActionService()

	id := uuid.New()
	supply := unlinkedSupply(id)
	supply.IMSAction = domain.ActionAccepted

	inwardRepo.On("List", mock.Anything, testGSTIN, []uuid.UUID{id}).
		Return([]domain.InwardSupply{supply}, nil)

	var captured []port.ActionStateUpdate
	inwardRepo.On("ApplyActionState", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).([]port.ActionStateUpdate)
		}).
		Return(nil)

	err := svc.UpdateAction(context.Background(), testGSTIN, []uuid.UUID{id}, domain.ActionAccepted)

	assert.NoError(t, err)
	assert.Len(t, captured, 1)
	assert.Equal(t, supply.Action, captured[0].Action)
	assert.Equal(t, supply.PreviousAction, captured[0].PreviousAction)
	assert.Equal(t, domain.ActionAccepted, captured[0].IMSAction)
}

func TestActionService_UpdateAction_MixedLinkedAndUnlinkedBatch(t *testing.T) {
	svc, inwardRepo := setupActionService()

	linkedID := uuid.New()
	unlinkedID := uuid.New()

	linked := unlinkedSupply(linkedID)
	linked.LinkName = "PINV-0007"
	unlinked := unlinkedSupply(unlinkedID)

	ids := []uuid.UUID{linkedID, unlinkedID}
	inwardRepo.On("List", mock.Anything, testGSTIN, ids).
		Return([]domain.InwardSupply{linked, unlinked}, nil)

	var captured []port.ActionStateUpdate
	inwardRepo.On("ApplyActionState", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).([]port.ActionStateUpdate)
		}).
		Return(nil)

	err := svc.UpdateAction(context.Background(), testGSTIN, ids, domain.ActionRejected)

	assert.NoError(t, err)
	assert.Len(t, captured, 2)

	byID := map[uuid.UUID]port.ActionStateUpdate{}
	for _, u := range captured {
		byID[u.ID] = u
	}
	assert.Equal(t, domain.MatchActionAcceptMyValues, byID[linkedID].Action)
	assert.Equal(t, domain.MatchActionIgnore, byID[unlinkedID].Action)
	assert.Equal(t, domain.ActionRejected, byID[linkedID].IMSAction)
	assert.Equal(t, domain.ActionRejected, byID[unlinkedID].IMSAction)
}

func TestActionService_UpdateAction_InvalidAction(t *testing.T) {
	svc, inwardRepo := setupActionService()

	err := svc.UpdateAction(context.Background(), testGSTIN, []uuid.UUID{uuid.New()}, domain.IMSAction("Approved"))

	assert.ErrorIs(t, err, domain.ErrInvalidAction)
	inwardRepo.AssertNotCalled(t, "List")
	inwardRepo.AssertNotCalled(t, "ApplyActionState")
}

func TestActionService_UpdateAction_EmptyIDsIsNoOp(t *testing.T) {
	svc, inwardRepo := setupActionService()

	err := svc.UpdateAction(context.Background(), testGSTIN, nil, domain.ActionAccepted)

	assert.NoError(t, err)
	inwardRepo.AssertNotCalled(t, "List")
	inwardRepo.AssertNotCalled(t, "ApplyActionState")
}

func TestActionService_UpdateAction_ListError(t *testing.T) {
	svc, inwardRepo := setupActionService()

	inwardRepo.On("List", mock.Anything, testGSTIN, mock.Anything).
		Return(nil, errors.New("db down"))

	err := svc.UpdateAction(context.Background(), testGSTIN, []uuid.UUID{uuid.New()}, domain.ActionPending)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	inwardRepo.AssertNotCalled(t, "ApplyActionState")
}
