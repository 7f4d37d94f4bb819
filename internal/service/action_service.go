package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gstims/internal/domain"
	"gstims/internal/port"
)

// ActionService enforces the legal action-state transitions when a user sets
// or clears an IMS action on inward supplies.
type ActionService struct {
	inwardRepo port.InwardSupplyRepository
}

// NewActionService creates a new ActionService.
func NewActionService(inwardRepo port.InwardSupplyRepository) *ActionService {
	return &ActionService{inwardRepo: inwardRepo}
}

// UpdateAction applies the requested IMS action to the given invoices as one
// atomic batch.
//
// Rejecting an invoice shadows its match-governed action into previous_action
// and parks it as Ignore, so the match state can be restored if the rejection
// is reversed. Linked invoices are excluded from the shadow copy (their action
// is governed by the match, not free user choice) but still receive the
// ims_action update.
func (s *ActionService) UpdateAction(ctx context.Context, companyGSTIN string, ids []uuid.UUID, action domain.IMSAction) error {
	if !domain.ValidIMSActions[action] {
		return fmt.Errorf("%w: %q", domain.ErrInvalidAction, action)
	}
	if len(ids) == 0 {
		return nil
	}

	supplies, err := s.inwardRepo.List(ctx, companyGSTIN, ids)
	if err != nil {
		return fmt.Errorf("actionService.UpdateAction: %w", err)
	}

	updates := make([]port.ActionStateUpdate, 0, len(supplies))
	for i := range supplies {
		supply := &supplies[i]
		update := port.ActionStateUpdate{
			ID:             supply.ID,
			Action:         supply.Action,
			PreviousAction: supply.PreviousAction,
			IMSAction:      action,
		}

		unlinked := supply.LinkName == ""
		switch {
		case action == domain.ActionRejected && unlinked:
			update.PreviousAction = supply.Action
			update.Action = domain.MatchActionIgnore
		case action != domain.ActionRejected && unlinked && supply.IMSAction == domain.ActionRejected:
			update.Action = supply.PreviousAction
		}

		updates = append(updates, update)
	}

	if err := s.inwardRepo.ApplyActionState(ctx, updates); err != nil {
		return fmt.Errorf("actionService.UpdateAction: %w", err)
	}
	return nil
}
