package http

import (
	"io"
	"log/slog"
	"net/http"

	"orders/internal/adapters/in/http/auth"
	"orders/internal/core/application/usecases"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/actor"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handlers are the use cases the HTTP boundary drives.
type Handlers struct {
	CreateOrder        usecases.Handler[commands.CreateOrderCommand, *order.Order]
	MarkOrderPaid      usecases.Handler[commands.MarkOrderPaidCommand, *order.Order]
	MarkOrderDelivered usecases.Handler[commands.MarkOrderDeliveredCommand, *order.Order]
	CancelOrder        usecases.Handler[commands.CancelOrderCommand, *order.Order]

	GetOrder      usecases.Handler[queries.GetOrderQuery, *order.Order]
	ListMyOrders  usecases.Handler[queries.ListMyOrdersQuery, []*order.Order]
	ListAllOrders usecases.Handler[queries.ListAllOrdersQuery, []*order.Order]
}

// Server implements ServerInterface. It translates requests into commands and queries,
// checks the capabilities the core leaves to the boundary, and resolves owner
// profiles for presentation.
type Server struct {
	handlers Handlers
	guard    services.AuthorizationGuard
	users    ports.UserDirectory
	logger   *slog.Logger
}

func NewServer(
	handlers Handlers,
	guard services.AuthorizationGuard,
	users ports.UserDirectory,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		handlers: handlers,
		guard:    guard,
		users:    users,
		logger:   logger.With("component", "http_server"),
	}
}

var _ ServerInterface = (*Server)(nil)

// CreateOrder handles POST /api/orders - places an order owned by the caller.
func (s *Server) CreateOrder(ctx echo.Context) error {
	caller, err := callerOf(ctx)
	if err != nil {
		return err
	}

	var body newOrderRequest
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Message: "request body is invalid"})
	}

	cmd, err := body.toCommand(kernel.NewUUID(), caller.ID())
	if err != nil {
		return s.respondError(ctx, err)
	}

	created, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, newOrderResponse(created, newOwnerResponse(created.OwnerID(), nil, ownerIDOnly)))
}

// ListMyOrders handles GET /api/orders/myorders - the caller's orders.
func (s *Server) ListMyOrders(ctx echo.Context) error {
	caller, err := callerOf(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewListMyOrdersQuery(caller)
	if err != nil {
		return s.respondError(ctx, err)
	}
	found, err := s.handlers.ListMyOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]orderResponse, len(found))
	for i, o := range found {
		response[i] = newOrderResponse(o, newOwnerResponse(o.OwnerID(), nil, ownerIDOnly))
	}
	return ctx.JSON(http.StatusOK, response)
}

// ListAllOrders handles GET /api/orders - every order, for admins.
func (s *Server) ListAllOrders(ctx echo.Context, params ListAllOrdersParams) error {
	caller, err := callerOf(ctx)
	if err != nil {
		return err
	}

	var status *order.Status
	if params.Status != nil {
		parsed, parseErr := order.ParseStatus(*params.Status)
		if parseErr != nil {
			return s.respondError(ctx, parseErr)
		}
		status = &parsed
	}

	query, err := queries.NewListAllOrdersQuery(caller, status)
	if err != nil {
		return s.respondError(ctx, err)
	}
	found, err := s.handlers.ListAllOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	profiles, err := s.lookupOwners(ctx, found)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]orderResponse, len(found))
	for i, o := range found {
		response[i] = newOrderResponse(o, newOwnerResponse(o.OwnerID(), profileOf(profiles, o.OwnerID()), ownerWithName))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrderByID handles GET /api/orders/{id} - one order, for its owner or an admin.
func (s *Server) GetOrderByID(ctx echo.Context, id openapi_types.UUID) error {
	caller, err := callerOf(ctx)
	if err != nil {
		return err
	}
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}
	found, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}
	if !s.guard.CanView(caller, found) {
		return s.respondError(ctx, errs.NewAccessDeniedError("view order", caller.ID().String()))
	}

	profiles, err := s.lookupOwners(ctx, []*order.Order{found})
	if err != nil {
		return s.respondError(ctx, err)
	}
	owner := newOwnerResponse(found.OwnerID(), profileOf(profiles, found.OwnerID()), ownerWithNameAndEmail)
	return ctx.JSON(http.StatusOK, newOrderResponse(found, owner))
}

// MarkOrderPaid handles PUT /api/orders/{id}/pay - records the payment provider's result.
func (s *Server) MarkOrderPaid(ctx echo.Context, id openapi_types.UUID) error {
	if _, err := callerOf(ctx); err != nil {
		return err
	}
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.respondError(ctx, err)
	}

	var body paymentNotificationRequest
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Message: "request body is invalid"})
	}
	result, err := body.toPaymentResult()
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewMarkOrderPaidCommand(orderID, result)
	if err != nil {
		return s.respondError(ctx, err)
	}
	paid, err := s.handlers.MarkOrderPaid.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, newOrderResponse(paid, newOwnerResponse(paid.OwnerID(), nil, ownerIDOnly)))
}

// MarkOrderDelivered handles PUT /api/orders/{id}/deliver - admins only.
func (s *Server) MarkOrderDelivered(ctx echo.Context, id openapi_types.UUID) error {
	caller, err := callerOf(ctx)
	if err != nil {
		return err
	}
	if !s.guard.CanMarkDelivered(caller) {
		return s.respondError(ctx, errs.NewAccessDeniedError("mark order delivered", caller.ID().String()))
	}
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewMarkOrderDeliveredCommand(orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}
	delivered, err := s.handlers.MarkOrderDelivered.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, newOrderResponse(delivered, newOwnerResponse(delivered.OwnerID(), nil, ownerIDOnly)))
}

// CancelOrder handles PUT /api/orders/{id}/cancel - the owner or an admin withdraws an order.
func (s *Server) CancelOrder(ctx echo.Context, id openapi_types.UUID) error {
	caller, err := callerOf(ctx)
	if err != nil {
		return err
	}
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, caller)
	if err != nil {
		return s.respondError(ctx, err)
	}
	cancelled, err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, newOrderResponse(cancelled, newOwnerResponse(cancelled.OwnerID(), nil, ownerIDOnly)))
}

func (s *Server) lookupOwners(ctx echo.Context, found []*order.Order) (map[kernel.UUID]ports.UserProfile, error) {
	if s.users == nil || len(found) == 0 {
		return nil, nil
	}
	seen := make(map[kernel.UUID]struct{}, len(found))
	ids := make([]kernel.UUID, 0, len(found))
	for _, o := range found {
		if _, ok := seen[o.OwnerID()]; ok {
			continue
		}
		seen[o.OwnerID()] = struct{}{}
		ids = append(ids, o.OwnerID())
	}
	return s.users.Lookup(ctx.Request().Context(), ids)
}

func profileOf(profiles map[kernel.UUID]ports.UserProfile, id kernel.UUID) *ports.UserProfile {
	profile, ok := profiles[id]
	if !ok {
		return nil
	}
	return &profile
}

// callerOf returns the authenticated actor. Routes are mounted behind auth.Middleware,
// so a missing actor means the server was wired without it.
func callerOf(ctx echo.Context) (actor.Actor, error) {
	caller, ok := auth.ActorFrom(ctx)
	if !ok {
		return actor.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
	}
	return caller, nil
}
