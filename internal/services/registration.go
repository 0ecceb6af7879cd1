package services

import (
	"context"
	"errors"
	"fmt"

	"commerceregistrations/internal/domain"
)

type registrationService struct {
	events        domain.EventManager
	registrations domain.RegistrationRepository
	registrants   domain.RegistrantRepository
	orders        domain.OrderRepository
	products      domain.ProductRepository
}

// NewRegistrationService creates a RegistrationService with the given
// event manager and repositories.
func NewRegistrationService(
	events domain.EventManager,
	registrations domain.RegistrationRepository,
	registrants domain.RegistrantRepository,
	orders domain.OrderRepository,
	products domain.ProductRepository,
) domain.RegistrationService {
	return &registrationService{
		events:        events,
		registrations: registrations,
		registrants:   registrants,
		orders:        orders,
		products:      products,
	}
}

func (s *registrationService) OrderItemEvent(ctx context.Context, item *domain.OrderItem) (*domain.Product, error) {
	variation, err := s.products.GetVariation(ctx, item.VariationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The purchased entity is not a product variation.
			return nil, nil
		}
		return nil, fmt.Errorf("get variation: %w", err)
	}

	product, err := s.products.GetProduct(ctx, variation.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	isEvent, err := s.events.IsEvent(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("check event: %w", err)
	}
	if !isEvent {
		return nil, nil
	}
	return product, nil
}

func (s *registrationService) GenerateOrderRegistrations(ctx context.Context, order *domain.Order) error {
	for _, item := range order.Items {
		product, err := s.OrderItemEvent(ctx, item)
		if err != nil {
			return fmt.Errorf("resolve event for order item %d: %w", item.ID, err)
		}
		if product == nil {
			// Not an event.
			continue
		}

		// Check for an existing registration on the order item.
		if _, err := s.registrations.GetByOrderItemID(ctx, item.ID); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get registration for order item %d: %w", item.ID, err)
		}

		reg, err := s.createRegistration(ctx, product, item.ID)
		if err != nil {
			return err
		}
		if err := s.registrations.Create(ctx, reg); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				// A concurrent caller created the registration first; the
				// unique constraint on the order item reference makes that
				// row the winner.
				continue
			}
			return fmt.Errorf("create registration for order item %d: %w", item.ID, err)
		}
	}
	return nil
}

// createRegistration builds an unsaved registration for the event, enforcing
// the single-registration-type rule.
func (s *registrationService) createRegistration(ctx context.Context, event *domain.Product, orderItemID int64) (*domain.Registration, error) {
	types, err := s.events.RegistrationTypes(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("get registration types for event %d: %w", event.ID, err)
	}
	if len(types) != 1 {
		return nil, &domain.ConfigurationError{EventID: event.ID, TypeCount: len(types)}
	}
	return domain.NewRegistration(types[0].ID, event.ID, orderItemID), nil
}

func (s *registrationService) RegistrationByOrderItemID(ctx context.Context, orderItemID int64) (*domain.Registration, error) {
	reg, err := s.registrations.GetByOrderItemID(ctx, orderItemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

func (s *registrationService) OrderRegistrations(ctx context.Context, order *domain.Order) ([]*domain.Registration, error) {
	itemIDs := order.ItemIDs()
	if len(itemIDs) == 0 {
		// No order items. Bail out to avoid an unbounded query.
		return []*domain.Registration{}, nil
	}

	regs, err := s.registrations.ListByOrderItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return regs, nil
}

func (s *registrationService) RegistrationOrderItem(ctx context.Context, reg *domain.Registration) (*domain.OrderItem, error) {
	item, err := s.orders.GetItem(ctx, reg.OrderItemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get order item: %w", err)
	}
	return item, nil
}

func (s *registrationService) OrderItemUpdateQuantity(ctx context.Context, item *domain.OrderItem) error {
	reg, err := s.registrations.GetByOrderItemID(ctx, item.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get registration for order item %d: %w", item.ID, err)
	}

	if reg == nil {
		product, err := s.OrderItemEvent(ctx, item)
		if err != nil {
			return fmt.Errorf("resolve event for order item %d: %w", item.ID, err)
		}
		if product == nil {
			return nil
		}
		// Event item without a registration yet: the quantity is always one.
		item.Quantity = 1
		if err := s.orders.UpdateItemQuantity(ctx, item.ID, 1); err != nil {
			return fmt.Errorf("update order item %d quantity: %w", item.ID, err)
		}
		return nil
	}

	quantity, err := s.countAssignedRegistrants(ctx, reg)
	if err != nil {
		return err
	}
	if quantity > 0 {
		item.Quantity = quantity
		reg.RegistrantQty = quantity
	} else {
		// Without registrants the quantity is always one, so the item does
		// not get pruned from the cart after the last registrant is removed.
		item.Quantity = 1
		// On the registration the quantity becomes zero, else registrant
		// stubs get created that are missing identities.
		reg.RegistrantQty = 0
	}
	if err := s.registrations.UpdateRegistrantQty(ctx, reg.ID, reg.RegistrantQty); err != nil {
		return fmt.Errorf("update registration %d registrant qty: %w", reg.ID, err)
	}
	if err := s.orders.UpdateItemQuantity(ctx, item.ID, item.Quantity); err != nil {
		return fmt.Errorf("update order item %d quantity: %w", item.ID, err)
	}
	return nil
}

// countAssignedRegistrants counts the registration's non-stub registrants.
func (s *registrationService) countAssignedRegistrants(ctx context.Context, reg *domain.Registration) (int, error) {
	registrants := reg.Registrants
	if registrants == nil {
		var err error
		registrants, err = s.registrants.ListByRegistrationID(ctx, reg.ID)
		if err != nil {
			return 0, fmt.Errorf("list registrants for registration %d: %w", reg.ID, err)
		}
	}
	count := 0
	for _, r := range registrants {
		if !r.IsStub() {
			count++
		}
	}
	return count, nil
}

func (s *registrationService) RegistrantLists(ctx context.Context, order *domain.Order) (map[int64]*domain.RegistrantList, error) {
	lists := make(map[int64]*domain.RegistrantList)
	for _, item := range order.Items {
		reg, err := s.registrations.GetByOrderItemID(ctx, item.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get registration for order item %d: %w", item.ID, err)
		}

		registrants := reg.Registrants
		if registrants == nil {
			registrants, err = s.registrants.ListByRegistrationID(ctx, reg.ID)
			if err != nil {
				return nil, fmt.Errorf("list registrants for registration %d: %w", reg.ID, err)
			}
		}

		var labels []string
		for _, registrant := range registrants {
			// Skip stub registrants.
			if registrant.IsStub() {
				continue
			}
			labels = append(labels, registrant.DisplayLabel())
		}
		if len(labels) == 0 {
			continue
		}
		lists[item.ID] = &domain.RegistrantList{
			OrderItemID: item.ID,
			Title:       "Registrants",
			Items:       labels,
		}
	}
	return lists, nil
}

func (s *registrationService) ExportRegistrationData(ctx context.Context, regs []*domain.Registration) (map[int64]*domain.ExportRow, error) {
	data := make(map[int64]*domain.ExportRow)

	// Orders and profiles recur across registrations of the same order;
	// cache them to keep the lookups per unique entity.
	ordersByID := make(map[int64]*domain.Order)
	profilesByID := make(map[int64]*domain.Profile)

	for _, reg := range regs {
		regType, err := s.events.RegistrationType(ctx, reg.TypeID)
		if err != nil {
			return nil, fmt.Errorf("registration %d: get type %q: %w", reg.ID, reg.TypeID, err)
		}
		conference, err := s.products.GetProduct(ctx, reg.EventID)
		if err != nil {
			return nil, fmt.Errorf("registration %d: get event product %d: %w", reg.ID, reg.EventID, err)
		}
		orderItem, err := s.orders.GetItem(ctx, reg.OrderItemID)
		if err != nil {
			return nil, fmt.Errorf("registration %d: get order item %d: %w", reg.ID, reg.OrderItemID, err)
		}
		order, ok := ordersByID[orderItem.OrderID]
		if !ok {
			order, err = s.orders.GetByID(ctx, orderItem.OrderID)
			if err != nil {
				return nil, fmt.Errorf("registration %d: get order %d: %w", reg.ID, orderItem.OrderID, err)
			}
			ordersByID[orderItem.OrderID] = order
		}
		variation, err := s.products.GetVariation(ctx, orderItem.VariationID)
		if err != nil {
			return nil, fmt.Errorf("registration %d: get variation %d: %w", reg.ID, orderItem.VariationID, err)
		}
		variationType, err := s.products.GetVariationType(ctx, variation.TypeID)
		if err != nil {
			return nil, fmt.Errorf("registration %d: get variation type %q: %w", reg.ID, variation.TypeID, err)
		}

		company := ""
		if order.BillingProfileID != nil {
			profile, ok := profilesByID[*order.BillingProfileID]
			if !ok {
				profile, err = s.orders.GetBillingProfile(ctx, *order.BillingProfileID)
				if err != nil {
					return nil, fmt.Errorf("registration %d: get billing profile %d: %w", reg.ID, *order.BillingProfileID, err)
				}
				profilesByID[*order.BillingProfileID] = profile
			}
			company = profile.Organization
		}

		registrants := reg.Registrants
		if registrants == nil {
			registrants, err = s.registrants.ListByRegistrationID(ctx, reg.ID)
			if err != nil {
				return nil, fmt.Errorf("registration %d: list registrants: %w", reg.ID, err)
			}
		}

		for _, registrant := range registrants {
			if registrant.IsStub() {
				continue
			}
			row := &domain.ExportRow{
				OrderID:                   order.OrderNumber,
				OrderDate:                 order.CreatedAt,
				ConferenceID:              conference.ID,
				ConferenceName:            conference.Title,
				RegistrationID:            reg.ID,
				RegistrationType:          regType.Label,
				OrderItemID:               orderItem.ID,
				ProductVariationID:        variation.ID,
				ProductVariationTitle:     variation.Title,
				ProductVariationType:      variation.TypeID,
				ProductVariationTypeTitle: variationType.Label,
				RegistrantCompany:         company,
				RegistrantID:              registrant.ID,
				RegistrantLabel:           registrant.Label,
			}
			if registrant.Identity != nil {
				row.RegistrantIdentityID = registrant.Identity.ID
				row.RegistrantIdentityType = registrant.Identity.Type
				row.RegistrantLabel = registrant.Identity.Label
			}
			data[registrant.ID] = row
		}
	}
	return data, nil
}
