// Package http exposes the marketplace over a REST surface plus one
// WebSocket endpoint for realtime pushes. Handlers translate between wire
// DTOs and the application layer's commands and queries; all domain rules
// live below this package.
package http

import (
	"errors"
	"net/http"
	"time"

	"hyperlocal/internal/adapters/out/realtime"
	"hyperlocal/internal/core/application/usecases/commands"
	"hyperlocal/internal/core/application/usecases/queries"
	"hyperlocal/internal/core/domain/model/courier"
	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/core/ports"
	"hyperlocal/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Server wires HTTP routes to command and query handlers.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	transitionOrderHandler   commands.TransitionOrderCommandHandler
	assignCourierHandler     commands.AssignCourierCommandHandler
	autoAssignHandler        commands.AutoAssignCommandHandler
	verifyHandoffHandler     commands.VerifyHandoffCommandHandler
	registerCourierHandler   commands.RegisterCourierCommandHandler
	setAvailabilityHandler   commands.SetCourierAvailabilityCommandHandler
	settleCommissionsHandler commands.SettleCommissionsCommandHandler

	// Query handlers
	getOrderHandler               queries.GetOrderQueryHandler
	listOrdersHandler             queries.ListOrdersQueryHandler
	getCourierCommissionsHandler  queries.GetCourierCommissionsQueryHandler
	listNotificationsQueryHandler queries.ListNotificationsQueryHandler

	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	autoAssignHandler commands.AutoAssignCommandHandler,
	verifyHandoffHandler commands.VerifyHandoffCommandHandler,
	registerCourierHandler commands.RegisterCourierCommandHandler,
	setAvailabilityHandler commands.SetCourierAvailabilityCommandHandler,
	settleCommissionsHandler commands.SettleCommissionsCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getCourierCommissionsHandler queries.GetCourierCommissionsQueryHandler,
	listNotificationsQueryHandler queries.ListNotificationsQueryHandler,
	hub *realtime.Hub,
) *Server {
	return &Server{
		createOrderHandler:            createOrderHandler,
		transitionOrderHandler:        transitionOrderHandler,
		assignCourierHandler:          assignCourierHandler,
		autoAssignHandler:             autoAssignHandler,
		verifyHandoffHandler:          verifyHandoffHandler,
		registerCourierHandler:        registerCourierHandler,
		setAvailabilityHandler:        setAvailabilityHandler,
		settleCommissionsHandler:      settleCommissionsHandler,
		getOrderHandler:               getOrderHandler,
		listOrdersHandler:             listOrdersHandler,
		getCourierCommissionsHandler:  getCourierCommissionsHandler,
		listNotificationsQueryHandler: listNotificationsQueryHandler,
		hub:                           hub,
		upgrader:                      websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
}

// RegisterRoutes attaches every endpoint to the echo instance. All routes
// except the health check require a resolved caller identity.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", ResolveActor)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.POST("/orders/:id/assign", s.AssignCourier)
	api.POST("/orders/:id/handoff", s.VerifyHandoff)
	api.POST("/orders/auto-assign", s.AutoAssign)

	api.POST("/couriers", s.RegisterCourier)
	api.PUT("/couriers/:id/availability", s.SetCourierAvailability)
	api.GET("/couriers/:id/commissions", s.GetCourierCommissions)
	api.POST("/couriers/:id/commissions/settle", s.SettleCommissions)

	api.GET("/notifications", s.ListNotifications)
	api.GET("/ws", s.Realtime)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - a buyer placing an order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	var body createOrderRequest
	if err = ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	shopID, err := kernel.UUIDFromString(body.ShopID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid shop id")
	}

	products := make([]order.ProductLine, 0, len(body.Products))
	for _, line := range body.Products {
		products = append(products, order.ProductLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), shopID, caller, products, body.DeliveryCost, order.PaymentType(body.PaymentType),
	)
	if err != nil {
		return mapError(ctx, err)
	}

	placed, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromAggregate(placed, caller))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID, caller)
	if err != nil {
		return mapError(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromReadModel(response, caller))
}

// ListOrders handles GET /api/v1/orders - the caller's slice of the order
// book, optionally filtered with ?status=.
func (s *Server) ListOrders(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	var statusFilter *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		status := order.Status(raw)
		statusFilter = &status
	}

	query, err := queries.NewListOrdersQuery(caller, statusFilter)
	if err != nil {
		return mapError(ctx, err)
	}

	responses, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	payload := make([]orderPayload, 0, len(responses))
	for _, response := range responses {
		payload = append(payload, orderFromReadModel(response, caller))
	}

	return ctx.JSON(http.StatusOK, payload)
}

// TransitionOrder handles POST /api/v1/orders/:id/transition - accept,
// reject or mark ready.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var body transitionRequest
	if err = ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, order.Status(body.Target), body.Reason, caller)
	if err != nil {
		return mapError(ctx, err)
	}

	updated, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(updated, caller))
}

// AssignCourier handles POST /api/v1/orders/:id/assign - manual dispatch.
func (s *Server) AssignCourier(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var body assignRequest
	if err = ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	courierID, err := kernel.UUIDFromString(body.CourierID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid courier id")
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID, caller)
	if err != nil {
		return mapError(ctx, err)
	}

	updated, err := s.assignCourierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(updated, caller))
}

// AutoAssign handles POST /api/v1/orders/auto-assign - an on-demand
// dispatch sweep over the accepted backlog.
func (s *Server) AutoAssign(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAutoAssignCommand(caller)
	if err != nil {
		return mapError(ctx, err)
	}

	result, err := s.autoAssignHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	unplaced := make([]string, 0, len(result.Unplaced))
	for _, id := range result.Unplaced {
		unplaced = append(unplaced, id.String())
	}

	return ctx.JSON(http.StatusOK, autoAssignResponse{
		Assigned: result.Assigned,
		Unplaced: unplaced,
	})
}

// VerifyHandoff handles POST /api/v1/orders/:id/handoff - the courier's
// code-gated pickup and delivery transitions.
func (s *Server) VerifyHandoff(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var body handoffRequest
	if err = ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewVerifyHandoffCommand(orderID, body.Code, order.Status(body.Target), caller)
	if err != nil {
		return mapError(ctx, err)
	}

	updated, err := s.verifyHandoffHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(updated, caller))
}

// RegisterCourier handles POST /api/v1/couriers - operator onboarding.
// The response is the only place the courier's login code is exposed.
func (s *Server) RegisterCourier(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	var body registerCourierRequest
	if err = ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewRegisterCourierCommand(kernel.NewUUID(), body.Name, body.Contact, caller)
	if err != nil {
		return mapError(ctx, err)
	}

	registered, err := s.registerCourierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, courierPayload{
		ID:          registered.ID().String(),
		Name:        registered.Name(),
		Contact:     registered.Contact(),
		LoginCode:   registered.LoginCode(),
		IsAvailable: registered.IsAvailable(),
	})
}

// SetCourierAvailability handles PUT /api/v1/couriers/:id/availability.
func (s *Server) SetCourierAvailability(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid courier id")
	}

	var body availabilityRequest
	if err = ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewSetCourierAvailabilityCommand(courierID, body.Available, caller)
	if err != nil {
		return mapError(ctx, err)
	}

	updated, err := s.setAvailabilityHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, courierStatusPayload(updated))
}

// GetCourierCommissions handles GET /api/v1/couriers/:id/commissions.
func (s *Server) GetCourierCommissions(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid courier id")
	}

	query, err := queries.NewGetCourierCommissionsQuery(courierID, caller)
	if err != nil {
		return mapError(ctx, err)
	}

	response, err := s.getCourierCommissionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	entries := make([]commissionEntryPayload, 0, len(response.Entries))
	for _, entry := range response.Entries {
		entries = append(entries, commissionEntryPayload{
			ID:         entry.ID.String(),
			OrderID:    entry.OrderID.String(),
			Amount:     entry.Amount,
			PaidStatus: entry.PaidStatus,
			CreatedAt:  entry.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, commissionsResponse{
		CourierID:    response.CourierID.String(),
		Entries:      entries,
		TotalPaid:    response.TotalPaid,
		TotalPending: response.TotalPending,
	})
}

// SettleCommissions handles POST /api/v1/couriers/:id/commissions/settle.
func (s *Server) SettleCommissions(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid courier id")
	}

	cmd, err := commands.NewSettleCommissionsCommand(courierID, caller)
	if err != nil {
		return mapError(ctx, err)
	}

	settled, err := s.settleCommissionsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]int64{"settled": settled})
}

// ListNotifications handles GET /api/v1/notifications - the caller's feed.
func (s *Server) ListNotifications(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewListNotificationsQuery(caller)
	if err != nil {
		return mapError(ctx, err)
	}

	responses, err := s.listNotificationsQueryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	payload := make([]notificationPayload, 0, len(responses))
	for _, response := range responses {
		payload = append(payload, notificationPayload{
			ID:        response.ID.String(),
			Title:     response.Title,
			Message:   response.Message,
			Metadata:  response.Metadata,
			IsRead:    response.IsRead,
			CreatedAt: response.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, payload)
}

// Realtime handles GET /api/v1/ws - upgrades the connection and subscribes
// it to the caller's role and user channels. The connection stays open until
// the client disconnects.
func (s *Server) Realtime(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	conn, err := s.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return err
	}

	s.hub.Subscribe(conn,
		"role:"+string(caller.Role()),
		"user:"+caller.ID().String(),
	)

	// Drain the read side so close frames and pings are processed; the
	// subscription is torn down when the read loop ends.
	go func() {
		defer func() {
			s.hub.Unsubscribe(conn)
			conn.Close()
		}()
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	return nil
}

// mapError translates domain and application errors to HTTP status codes.
func mapError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, kernel.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, ports.ErrConcurrentUpdate),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, commands.ErrCourierUnavailable):
		code = http.StatusConflict
	case errors.Is(err, order.ErrInvalidCode),
		errors.Is(err, order.ErrCodeRequired),
		errors.Is(err, commands.ErrTargetStatusNotTransitionable),
		errors.Is(err, commands.ErrTargetStatusNotVerifiable),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, errorBody{Code: code, Message: err.Error()})
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type productLineRequest struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type createOrderRequest struct {
	ShopID       string               `json:"shop_id"`
	Products     []productLineRequest `json:"products"`
	DeliveryCost float64              `json:"delivery_cost"`
	PaymentType  string               `json:"payment_type"`
}

type transitionRequest struct {
	Target string `json:"target"`
	Reason string `json:"reason"`
}

type assignRequest struct {
	CourierID string `json:"courier_id"`
}

type handoffRequest struct {
	Target string `json:"target"`
	Code   string `json:"code"`
}

type registerCourierRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type availabilityRequest struct {
	Available bool `json:"available"`
}

type autoAssignResponse struct {
	Assigned int      `json:"assigned"`
	Unplaced []string `json:"unplaced"`
}

type orderPayload struct {
	ID            string                `json:"id"`
	ShopID        string                `json:"shop_id"`
	BuyerID       string                `json:"buyer_id"`
	CourierID     *string               `json:"courier_id,omitempty"`
	Status        string                `json:"status"`
	Products      []order.ProductLine   `json:"products"`
	TotalPrice    float64               `json:"total_price"`
	DeliveryCost  float64               `json:"delivery_cost"`
	PaymentType   string                `json:"payment_type"`
	PaymentStatus string                `json:"payment_status"`
	HandoffCode   string                `json:"handoff_code,omitempty"`
	Timeline      []order.TimelineEntry `json:"timeline"`
	CreatedAt     time.Time             `json:"created_at"`
	DeliveredAt   *time.Time            `json:"delivered_at,omitempty"`
}

type courierPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Contact     string `json:"contact"`
	LoginCode   string `json:"login_code"`
	IsAvailable bool   `json:"is_available"`
}

type commissionEntryPayload struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	Amount     float64   `json:"amount"`
	PaidStatus string    `json:"paid_status"`
	CreatedAt  time.Time `json:"created_at"`
}

type commissionsResponse struct {
	CourierID    string                   `json:"courier_id"`
	Entries      []commissionEntryPayload `json:"entries"`
	TotalPaid    float64                  `json:"total_paid"`
	TotalPending float64                  `json:"total_pending"`
}

type notificationPayload struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	IsRead    bool           `json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
}

// orderFromAggregate builds the wire representation from a domain aggregate,
// as returned by the write paths. The handoff code is included only for the
// buyer who placed the order; every other caller presents the code, so no
// other payload carries it.
func orderFromAggregate(aggregate *order.Order, caller kernel.Actor) orderPayload {
	var courierID *string
	if id := aggregate.Courier(); id != nil {
		raw := id.String()
		courierID = &raw
	}

	return orderPayload{
		ID:            aggregate.ID().String(),
		ShopID:        aggregate.ShopID().String(),
		BuyerID:       aggregate.BuyerID().String(),
		CourierID:     courierID,
		Status:        aggregate.Status().String(),
		Products:      aggregate.Products(),
		TotalPrice:    aggregate.TotalPrice(),
		DeliveryCost:  aggregate.DeliveryCost(),
		PaymentType:   string(aggregate.PaymentType()),
		PaymentStatus: string(aggregate.PaymentStatus()),
		HandoffCode:   codeFor(caller, aggregate.BuyerID(), aggregate.HandoffCode()),
		Timeline:      aggregate.Timeline(),
		CreatedAt:     aggregate.CreatedAt(),
		DeliveredAt:   aggregate.DeliveredAt(),
	}
}

// orderFromReadModel builds the wire representation from the read side,
// with the same buyer-only handoff code rule as the write paths.
func orderFromReadModel(response queries.OrderResponse, caller kernel.Actor) orderPayload {
	var courierID *string
	if response.CourierID != nil {
		raw := response.CourierID.String()
		courierID = &raw
	}

	return orderPayload{
		ID:            response.ID.String(),
		ShopID:        response.ShopID.String(),
		BuyerID:       response.BuyerID.String(),
		CourierID:     courierID,
		Status:        response.Status,
		Products:      response.Products,
		TotalPrice:    response.TotalPrice,
		DeliveryCost:  response.DeliveryCost,
		PaymentType:   response.PaymentType,
		PaymentStatus: response.PaymentStatus,
		HandoffCode:   codeFor(caller, response.BuyerID, response.HandoffCode),
		Timeline:      response.Timeline,
		CreatedAt:     response.CreatedAt,
		DeliveredAt:   response.DeliveredAt,
	}
}

// codeFor returns the handoff code when the caller is the order's buyer and
// an empty string otherwise.
func codeFor(caller kernel.Actor, buyerID kernel.UUID, code string) string {
	if caller.Role() == kernel.RoleBuyer && caller.ID().IsEqual(buyerID) {
		return code
	}
	return ""
}

// courierStatusPayload builds the courier response without the login code;
// the code is only returned at registration.
func courierStatusPayload(aggregate *courier.Courier) map[string]any {
	return map[string]any{
		"id":           aggregate.ID().String(),
		"name":         aggregate.Name(),
		"contact":      aggregate.Contact(),
		"is_available": aggregate.IsAvailable(),
	}
}
