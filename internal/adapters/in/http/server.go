// Package http is the inbound HTTP adapter. It translates the REST surface
// into application commands and queries and maps their errors to status codes.
package http

import (
	"net/http"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/application/usecases/queries"
	"campusdelivery/internal/core/domain/model/agent"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler          commands.CreateOrderCommandHandler
	confirmPaymentHandler       commands.ConfirmPaymentCommandHandler
	applyOrderEventHandler      commands.ApplyOrderEventCommandHandler
	createAgentHandler          commands.CreateAgentCommandHandler
	setAgentDutyStatusHandler   commands.SetAgentDutyStatusCommandHandler
	setAgentAdminControlHandler commands.SetAgentAdminControlCommandHandler

	// Query handlers
	getOrderHandler             queries.GetOrderQueryHandler
	getAllAgentsHandler         queries.GetAllAgentsQueryHandler
	getPendingDeliveriesHandler queries.GetPendingDeliveryOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler,
	applyOrderEventHandler commands.ApplyOrderEventCommandHandler,
	createAgentHandler commands.CreateAgentCommandHandler,
	setAgentDutyStatusHandler commands.SetAgentDutyStatusCommandHandler,
	setAgentAdminControlHandler commands.SetAgentAdminControlCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAllAgentsHandler queries.GetAllAgentsQueryHandler,
	getPendingDeliveriesHandler queries.GetPendingDeliveryOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		confirmPaymentHandler:       confirmPaymentHandler,
		applyOrderEventHandler:      applyOrderEventHandler,
		createAgentHandler:          createAgentHandler,
		setAgentDutyStatusHandler:   setAgentDutyStatusHandler,
		setAgentAdminControlHandler: setAgentAdminControlHandler,
		getOrderHandler:             getOrderHandler,
		getAllAgentsHandler:         getAllAgentsHandler,
		getPendingDeliveriesHandler: getPendingDeliveriesHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/pending-delivery", s.GetPendingDeliveryOrders)
	v1.GET("/orders/:id", s.GetOrder)
	v1.POST("/orders/:id/events", s.ApplyOrderEvent)

	v1.POST("/payments/confirm", s.ConfirmPayment)

	v1.POST("/agents", s.CreateAgent)
	v1.GET("/agents", s.GetAgents)
	v1.PATCH("/agents/:id/status", s.SetAgentDutyStatus)
	v1.PATCH("/agents/:id/admin-control", s.SetAgentAdminControl)
}

// CreateOrder handles POST /api/v1/orders - places a new order for the
// authenticated customer.
func (s *Server) CreateOrder(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var newOrder NewOrder
	if err = ctx.Bind(&newOrder); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	items, err := cartItemsFrom(newOrder.Items)
	if err != nil {
		return respondError(ctx, err)
	}

	address, err := order.NewAddress(newOrder.Street, newOrder.Zone)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, principal.ID(), items, address)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{
		ID:     orderID.String(),
		Number: commands.OrderNumberFor(orderID),
	})
}

// ConfirmPayment handles POST /api/v1/payments/confirm - the payment
// collaborator's callback reporting a successful charge.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	var confirmation PaymentConfirmation
	if err := ctx.Bind(&confirmation); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(confirmation.OrderID)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid order identifier")
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order by storage
// identifier or by order number, visible to its customer, its shopkeeper,
// its bound agent and admins.
func (s *Server) GetOrder(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(ctx.Param("id"), principal)
	if err != nil {
		return respondError(ctx, err)
	}

	found, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderViewFrom(found))
}

// ApplyOrderEvent handles POST /api/v1/orders/:id/events - records a delivery
// progress event or a cancellation raised by the bound agent or an admin.
func (s *Server) ApplyOrderEvent(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid order identifier")
	}

	var body OrderEvent
	if err = ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	event, err := orderEventFrom(body)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewApplyOrderEventCommand(orderID, event, principal)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.applyOrderEventHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateAgent handles POST /api/v1/agents - onboards a new delivery agent.
// Admin only.
func (s *Server) CreateAgent(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if !principal.IsAdmin() {
		return respondError(ctx,
			errs.NewUnauthorizedError("agent onboarding", principal.ID().String()))
	}

	var newAgent NewAgent
	if err = ctx.Bind(&newAgent); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	agentID := kernel.NewUUID()
	cmd, err := commands.NewCreateAgentCommand(agentID, newAgent.Name, newAgent.Phone, newAgent.Zone)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.createAgentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, AgentCreated{ID: agentID.String()})
}

// GetAgents handles GET /api/v1/agents - the full agent registry. Admin only;
// the authorization decision lives in the query itself.
func (s *Server) GetAgents(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetAllAgentsQuery(principal)
	if err != nil {
		return respondError(ctx, err)
	}

	agents, err := s.getAllAgentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]Agent, len(agents))
	for i, a := range agents {
		response[i] = Agent{
			ID:           a.ID.String(),
			Name:         a.Name,
			Phone:        a.Phone,
			Zone:         a.Zone,
			DutyStatus:   a.DutyStatus,
			AdminControl: a.AdminControl,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetPendingDeliveryOrders handles GET /api/v1/orders/pending-delivery -
// the dispatch backlog shown on the admin dashboard. Admin only.
func (s *Server) GetPendingDeliveryOrders(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if !principal.IsAdmin() {
		return respondError(ctx,
			errs.NewUnauthorizedError("dispatch backlog", principal.ID().String()))
	}

	backlog, err := s.getPendingDeliveriesHandler.Handle(
		ctx.Request().Context(), queries.NewGetPendingDeliveryOrdersQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]OrderCreated, 0, len(backlog))
	for _, queued := range backlog {
		response = append(response, OrderCreated{
			ID:     queued.ID.String(),
			Number: queued.Number,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// SetAgentDutyStatus handles PATCH /api/v1/agents/:id/status - the agent's
// own on/off-duty toggle, also usable by admins.
func (s *Server) SetAgentDutyStatus(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	agentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid agent identifier")
	}

	var change AgentDutyStatusChange
	if err = ctx.Bind(&change); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	status, err := agent.DutyStatusFromString(change.DutyStatus)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewSetAgentDutyStatusCommand(agentID, status, principal)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.setAgentDutyStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetAgentAdminControl handles PATCH /api/v1/agents/:id/admin-control -
// enables or disables an agent administratively.
func (s *Server) SetAgentAdminControl(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	agentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid agent identifier")
	}

	var change AgentAdminControlChange
	if err = ctx.Bind(&change); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	control, err := agent.AdminControlFromString(change.AdminControl)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewSetAgentAdminControlCommand(agentID, control, principal)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.setAgentAdminControlHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func cartItemsFrom(lines []NewOrderItem) ([]order.Item, error) {
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		productID, err := kernel.UUIDFromString(line.ProductID)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("product_id", err)
		}

		shopID, err := kernel.UUIDFromString(line.ShopID)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("shop_id", err)
		}

		unitPrice, err := kernel.MoneyFromString(line.UnitPrice)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(productID, line.Name, unitPrice, line.Quantity, shopID)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func orderEventFrom(body OrderEvent) (order.Event, error) {
	switch body.Event {
	case "picked_up":
		return order.AgentMarkedPickedUp{}, nil
	case "on_the_way":
		return order.AgentMarkedEnRoute{}, nil
	case "delivered":
		return order.AgentMarkedDelivered{}, nil
	case "cancelled":
		return order.OrderCancelled{Reason: body.Reason}, nil
	default:
		return nil, errs.NewValueIsInvalidError("event")
	}
}

func orderViewFrom(found queries.GetOrderQueryResponse) Order {
	view := Order{
		ID:        found.ID.String(),
		Number:    found.Number,
		Status:    found.Status,
		Street:    found.Street,
		Zone:      found.Zone,
		Total:     found.Total,
		CreatedAt: found.CreatedAt,
		Items:     make([]OrderItem, len(found.Items)),
		Events:    make([]OrderLedgerEntry, len(found.Events)),
	}

	if found.Agent != nil {
		view.Agent = &OrderAgent{
			ID:    found.Agent.ID.String(),
			Name:  found.Agent.Name,
			Phone: found.Agent.Phone,
		}
	}

	for i, item := range found.Items {
		view.Items[i] = OrderItem{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		}
	}

	for i, event := range found.Events {
		view.Events[i] = OrderLedgerEntry{
			Status:     event.Status,
			OccurredAt: event.OccurredAt,
			Note:       event.Note,
		}
	}

	return view
}
