package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"dispatch/internal/broadcast"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server exposes the dispatch use cases over HTTP and hosts the SSE
// notification stream for online couriers.
type Server struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	confirmOrderHandler      commands.ConfirmOrderCommandHandler
	markEligibleHandler      commands.MarkOrderEligibleCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler
	claimOrderHandler        commands.ClaimOrderCommandHandler
	completeOrderHandler     commands.CompleteOrderCommandHandler
	createCourierHandler     commands.CreateCourierCommandHandler
	setAvailabilityHandler   commands.SetCourierAvailabilityCommandHandler
	getEligibleOrdersHandler queries.GetEligibleOrdersQueryHandler
	getAllCouriersHandler    queries.GetAllCouriersQueryHandler

	courierUoWFactory commands.CourierUoWFactory
	broadcaster       *broadcast.Broadcaster
	logger            *slog.Logger
}

// NewServer creates an HTTP server wired to the given use case handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	confirmOrderHandler commands.ConfirmOrderCommandHandler,
	markEligibleHandler commands.MarkOrderEligibleCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	createCourierHandler commands.CreateCourierCommandHandler,
	setAvailabilityHandler commands.SetCourierAvailabilityCommandHandler,
	getEligibleOrdersHandler queries.GetEligibleOrdersQueryHandler,
	getAllCouriersHandler queries.GetAllCouriersQueryHandler,
	courierUoWFactory commands.CourierUoWFactory,
	broadcaster *broadcast.Broadcaster,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		confirmOrderHandler:      confirmOrderHandler,
		markEligibleHandler:      markEligibleHandler,
		cancelOrderHandler:       cancelOrderHandler,
		claimOrderHandler:        claimOrderHandler,
		completeOrderHandler:     completeOrderHandler,
		createCourierHandler:     createCourierHandler,
		setAvailabilityHandler:   setAvailabilityHandler,
		getEligibleOrdersHandler: getEligibleOrdersHandler,
		getAllCouriersHandler:    getAllCouriersHandler,
		courierUoWFactory:        courierUoWFactory,
		broadcaster:              broadcaster,
		logger:                   logger.With("component", "http_server"),
	}
}

// RegisterRoutes attaches all endpoints to the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/eligible", s.GetEligibleOrders)
	api.POST("/orders/:id/confirm", s.ConfirmOrder)
	api.POST("/orders/:id/eligible", s.MarkOrderEligible)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/claim", s.ClaimOrder)
	api.POST("/orders/:id/complete", s.CompleteOrder)

	api.POST("/couriers", s.CreateCourier)
	api.GET("/couriers", s.GetCouriers)
	api.PUT("/couriers/:id/availability", s.SetCourierAvailability)
	api.GET("/couriers/:id/notifications", s.StreamNotifications)

	e.GET("/health", s.Health)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID := kernel.NewUUID()
	if req.ID != "" {
		parsed, err := kernel.UUIDFromString(req.ID)
		if err != nil {
			return badRequest(ctx, "invalid order id")
		}
		orderID = parsed
	}

	zone, err := kernel.NewZone(req.Zone)
	if err != nil {
		return badRequest(ctx, "invalid zone: "+err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, zone)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapCommandError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderCreatedResponse{ID: orderID.String()})
}

// ConfirmOrder handles POST /api/v1/orders/:id/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewConfirmOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.confirmOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapCommandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkOrderEligible handles POST /api/v1/orders/:id/eligible. A repeated call
// or a call against an already claimed order returns 204 without effect.
func (s *Server) MarkOrderEligible(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewMarkOrderEligibleCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.markEligibleHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapCommandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapCommandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ClaimOrder handles POST /api/v1/orders/:id/claim. Exactly one concurrent
// claimer wins; everyone else receives a conflict.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req CourierIDRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	claimed, err := s.claimOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapCommandError(ctx, err)
	}

	var assignedTo *string
	if c := claimed.Courier(); c != nil {
		id := c.String()
		assignedTo = &id
	}

	return ctx.JSON(http.StatusOK, Order{
		ID:            claimed.ID().String(),
		Zone:          claimed.Zone().String(),
		Status:        claimed.Status().String(),
		CourierID:     assignedTo,
		EligibleSince: claimed.EligibleSince(),
	})
}

// CompleteOrder handles POST /api/v1/orders/:id/complete.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req CourierIDRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID, courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapCommandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetEligibleOrders handles GET /api/v1/orders/eligible with an optional
// zone query parameter.
func (s *Server) GetEligibleOrders(ctx echo.Context) error {
	var zoneFilter *kernel.Zone
	if raw := ctx.QueryParam("zone"); raw != "" {
		zone, err := kernel.NewZone(raw)
		if err != nil {
			return badRequest(ctx, "invalid zone: "+err.Error())
		}
		zoneFilter = &zone
	}

	query, err := queries.NewGetEligibleOrdersQuery(zoneFilter)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.getEligibleOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "eligible orders query failed", "error", err)
		return internalError(ctx, "failed to retrieve eligible orders")
	}

	response := make([]EligibleOrder, len(orders))
	for i, o := range orders {
		response[i] = EligibleOrder{
			ID:            o.ID.String(),
			Zone:          o.Zone.String(),
			EligibleSince: o.EligibleSince,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var req CreateCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	courierID := kernel.NewUUID()
	if req.ID != "" {
		parsed, err := kernel.UUIDFromString(req.ID)
		if err != nil {
			return badRequest(ctx, "invalid courier id")
		}
		courierID = parsed
	}

	zone, err := kernel.NewZone(req.Zone)
	if err != nil {
		return badRequest(ctx, "invalid zone: "+err.Error())
	}

	cmd, err := commands.NewCreateCourierCommand(courierID, req.Name, zone)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.createCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapCommandError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CourierCreatedResponse{ID: courierID.String()})
}

// SetCourierAvailability handles PUT /api/v1/couriers/:id/availability.
func (s *Server) SetCourierAvailability(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	var req SetAvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewSetCourierAvailabilityCommand(courierID, req.Online)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.setAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapCommandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	couriers, err := s.getAllCouriersHandler.Handle(ctx.Request().Context(), queries.NewGetAllCouriersQuery())
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "courier roster query failed", "error", err)
		return internalError(ctx, "failed to retrieve couriers")
	}

	response := make([]Courier, len(couriers))
	for i, c := range couriers {
		response[i] = Courier{
			ID:       c.ID.String(),
			Name:     c.Name,
			Zone:     c.Zone.String(),
			IsOnline: c.IsOnline,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// StreamNotifications handles GET /api/v1/couriers/:id/notifications as an
// SSE stream. Only online couriers may subscribe; the connection is removed
// from the broadcaster when the client disconnects.
func (s *Server) StreamNotifications(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	courierAggregate, err := s.courierUoWFactory.Create().CourierRepository().Get(ctx.Request().Context(), courierID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, "courier not found")
		}
		s.logger.ErrorContext(ctx.Request().Context(), "courier lookup failed", "error", err)
		return internalError(ctx, "failed to look up courier")
	}
	if !courierAggregate.IsOnline() {
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: "courier is offline",
		})
	}

	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	conn := newSSEConnection()
	s.broadcaster.Register(courierID, conn)
	defer s.broadcaster.Deregister(conn)

	s.logger.DebugContext(ctx.Request().Context(), "notification stream opened",
		"courier_id", courierID.String())

	reqCtx := ctx.Request().Context()
	for {
		select {
		case <-reqCtx.Done():
			return nil
		case notice := <-conn.notices:
			payload, err := json.Marshal(EligibleNotice{
				OrderID: notice.OrderID.String(),
				Zone:    notice.Zone.String(),
			})
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(resp, "event: order_eligible\ndata: %s\n\n", payload); err != nil {
				return nil
			}
			resp.Flush()
		}
	}
}

// sseConnection adapts one SSE subscriber to the broadcast Connection
// interface. Send never blocks; a full buffer drops the notice and the feed
// poll compensates.
type sseConnection struct {
	notices chan ports.OrderEligibleNotice
}

func newSSEConnection() *sseConnection {
	return &sseConnection{notices: make(chan ports.OrderEligibleNotice, 16)}
}

func (c *sseConnection) Send(notice ports.OrderEligibleNotice) error {
	select {
	case c.notices <- notice:
		return nil
	default:
		return errors.New("subscriber buffer full")
	}
}

func pathUUID(ctx echo.Context, param string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(param))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func notFound(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Message: message})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{Code: http.StatusInternalServerError, Message: message})
}

// mapCommandError translates application and domain errors to HTTP statuses.
func (s *Server) mapCommandError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, ports.ErrOrderAlreadyAssigned):
		return ctx.JSON(http.StatusConflict, Error{Code: http.StatusConflict, Message: "already_assigned"})
	case errors.Is(err, ports.ErrOrderNotEligible):
		return ctx.JSON(http.StatusConflict, Error{Code: http.StatusConflict, Message: "not_eligible"})
	case errors.Is(err, commands.ErrNoOrderFound),
		errors.Is(err, commands.ErrNoCourierFound),
		errors.Is(err, errs.ErrObjectNotFound):
		return notFound(ctx, err.Error())
	case errors.Is(err, commands.ErrCourierOffline):
		return ctx.JSON(http.StatusForbidden, Error{Code: http.StatusForbidden, Message: err.Error()})
	case errors.Is(err, commands.ErrNotAssignedCourier),
		errors.Is(err, order.ErrStatusIsTerminal),
		errors.Is(err, errs.ErrValueIsInvalid):
		return ctx.JSON(http.StatusConflict, Error{Code: http.StatusConflict, Message: err.Error()})
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "command failed", "error", err)
		return internalError(ctx, "internal error")
	}
}
