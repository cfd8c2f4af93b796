package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ListAllOrdersParams defines parameters for ListAllOrders.
type ListAllOrdersParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /api/orders)
	ListAllOrders(ctx echo.Context, params ListAllOrdersParams) error
	// (POST /api/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/orders/myorders)
	ListMyOrders(ctx echo.Context) error
	// (GET /api/orders/{id})
	GetOrderByID(ctx echo.Context, id openapi_types.UUID) error
	// (PUT /api/orders/{id}/pay)
	MarkOrderPaid(ctx echo.Context, id openapi_types.UUID) error
	// (PUT /api/orders/{id}/deliver)
	MarkOrderDelivered(ctx echo.Context, id openapi_types.UUID) error
	// (PUT /api/orders/{id}/cancel)
	CancelOrder(ctx echo.Context, id openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListAllOrders(ctx echo.Context) error {
	var params ListAllOrdersParams
	err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}
	return w.Handler.ListAllOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) ListMyOrders(ctx echo.Context) error {
	return w.Handler.ListMyOrders(ctx)
}

func (w *ServerInterfaceWrapper) GetOrderByID(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrderByID(ctx, id)
}

func (w *ServerInterfaceWrapper) MarkOrderPaid(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.MarkOrderPaid(ctx, id)
}

func (w *ServerInterfaceWrapper) MarkOrderDelivered(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.MarkOrderDelivered(ctx, id)
}

func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CancelOrder(ctx, id)
}

func bindOrderID(ctx echo.Context) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// EchoRouter is the subset of *echo.Echo and *echo.Group the handlers are registered on.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers under baseURL, for routers that
// are not already scoped to /api.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/orders", wrapper.ListAllOrders)
	router.POST(baseURL+"/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/orders/myorders", wrapper.ListMyOrders)
	router.GET(baseURL+"/orders/:id", wrapper.GetOrderByID)
	router.PUT(baseURL+"/orders/:id/pay", wrapper.MarkOrderPaid)
	router.PUT(baseURL+"/orders/:id/deliver", wrapper.MarkOrderDelivered)
	router.PUT(baseURL+"/orders/:id/cancel", wrapper.CancelOrder)
}
