package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-connection/internal/domain"
	"github.com/spec-kit/ticket-connection/internal/events"
)

// ConnectionCommand carries the raw identifiers of a connection ticket.
type ConnectionCommand struct {
	HouseID         string
	ChannelID       string
	AgentID         string
	IsOpportunity   bool
	Customer        CommandCustomer
	ITServiceID     string
	OperationTypeID string
	ProviderID      string
	ReasonID        string
	ServiceTypeIDs  []string
}

// ConnectionBundle is the resolved entity set handed to ticket creation.
// Optional references stay nil when the command omitted them.
type ConnectionBundle struct {
	House    *domain.House
	Channel  *domain.Channel
	Agent    *domain.User
	Customer domain.Customer
	// CustomerIsNew is set when Customer was built from the command and
	// still has to be persisted by the caller.
	CustomerIsNew bool
	ITService     *domain.ITService
	OperationType *domain.OperationType
	Provider      *domain.Provider
	Reason        *domain.Reason
	ServiceTypes  []domain.ITServiceServiceType
	WorkType      *domain.WorkType
}

// Assemble resolves every identifier in cmd. requester is the operator
// submitting the ticket and drives the partner dispatcher rule.
func (f *ConnectionFetcher) Assemble(ctx context.Context, cmd ConnectionCommand, requester *domain.User) (*ConnectionBundle, error) {
	house, err := f.GetHouse(ctx, cmd.HouseID)
	if err != nil {
		return nil, err
	}
	bundle := &ConnectionBundle{House: house}

	if bundle.Channel, err = f.FindChannel(ctx, cmd.ChannelID); err != nil {
		return nil, err
	}
	if bundle.Agent, err = f.FindAgent(ctx, cmd.AgentID, cmd.IsOpportunity); err != nil {
		return nil, err
	}
	if bundle.Customer, err = f.FindCustomer(ctx, cmd.Customer); err != nil {
		return nil, err
	}
	bundle.CustomerIsNew = bundle.Customer != nil && cmd.Customer.ID == ""
	if bundle.ITService, err = f.GetITService(ctx, cmd.ITServiceID); err != nil {
		return nil, err
	}
	if bundle.OperationType, err = f.FindOperationType(ctx, cmd.OperationTypeID); err != nil {
		return nil, err
	}
	if bundle.Provider, err = f.FindProvider(ctx, cmd.ProviderID, house); err != nil {
		return nil, err
	}
	if bundle.Reason, err = f.FindReason(ctx, cmd.ReasonID); err != nil {
		return nil, err
	}
	if bundle.ServiceTypes, err = f.FindITServiceServiceTypes(ctx, cmd.ServiceTypeIDs); err != nil {
		return nil, err
	}
	if bundle.WorkType, err = f.GetWorkType(ctx, bundle.ITService, bundle.Reason, bundle.ServiceTypes, house, requester); err != nil {
		return nil, err
	}

	payload := events.ConnectionAssembledPayload{
		HouseID:     house.ID,
		ITServiceID: bundle.ITService.ID,
		WorkTypeID:  bundle.WorkType.ID,
	}
	if bundle.Customer != nil {
		id := bundle.Customer.CustomerID()
		payload.CustomerID = &id
	}
	if bundle.Provider != nil {
		payload.ProviderID = &bundle.Provider.ID
	}
	event := events.Event{Type: events.EventConnectionAssembled, Payload: payload}
	if requester != nil {
		event.ActorID = requester.ID
	}
	f.publishEvent(ctx, event)

	f.logger.Debug("connection assembled",
		zap.String("house_id", house.ID),
		zap.String("itservice_id", bundle.ITService.ID),
		zap.String("work_type_id", bundle.WorkType.ID))
	return bundle, nil
}
