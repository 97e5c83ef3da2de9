// Package http exposes the kitchen API over echo. Handlers translate
// requests into commands and queries; after every successful mutation the
// server runs a release evaluation and notifies connected displays, both
// outside the mutation's transaction.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/application/usecases/queries"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates HTTP handlers with the application use cases.
type Server struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	updateStatusHandler      commands.UpdateOrderStatusCommandHandler
	fireCourseHandler        commands.FireCourseCommandHandler
	fireItemHandler          commands.FireItemCommandHandler
	markItemsReadyHandler    commands.MarkItemsReadyCommandHandler
	applyAutoThrottleHandler commands.ApplyAutoThrottleCommandHandler
	holdOrderHandler         commands.HoldOrderCommandHandler
	releaseOrderHandler      commands.ReleaseOrderCommandHandler
	evaluateReleaseHandler   commands.EvaluateReleaseCommandHandler

	throttlingStatusHandler     queries.GetThrottlingStatusQueryHandler
	statusHistoryHandler        queries.GetStatusHistoryQueryHandler
	pacingMetricsHandler        queries.GetPacingMetricsQueryHandler
	throttledRestaurantsHandler queries.GetThrottledRestaurantsQueryHandler

	notifier ports.OrderNotifier
	logger   *slog.Logger
}

// NewServer creates the HTTP server with its command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	fireCourseHandler commands.FireCourseCommandHandler,
	fireItemHandler commands.FireItemCommandHandler,
	markItemsReadyHandler commands.MarkItemsReadyCommandHandler,
	applyAutoThrottleHandler commands.ApplyAutoThrottleCommandHandler,
	holdOrderHandler commands.HoldOrderCommandHandler,
	releaseOrderHandler commands.ReleaseOrderCommandHandler,
	evaluateReleaseHandler commands.EvaluateReleaseCommandHandler,
	throttlingStatusHandler queries.GetThrottlingStatusQueryHandler,
	statusHistoryHandler queries.GetStatusHistoryQueryHandler,
	pacingMetricsHandler queries.GetPacingMetricsQueryHandler,
	throttledRestaurantsHandler queries.GetThrottledRestaurantsQueryHandler,
	notifier ports.OrderNotifier,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		updateStatusHandler:         updateStatusHandler,
		fireCourseHandler:           fireCourseHandler,
		fireItemHandler:             fireItemHandler,
		markItemsReadyHandler:       markItemsReadyHandler,
		applyAutoThrottleHandler:    applyAutoThrottleHandler,
		holdOrderHandler:            holdOrderHandler,
		releaseOrderHandler:         releaseOrderHandler,
		evaluateReleaseHandler:      evaluateReleaseHandler,
		throttlingStatusHandler:     throttlingStatusHandler,
		statusHistoryHandler:        statusHistoryHandler,
		pacingMetricsHandler:        pacingMetricsHandler,
		throttledRestaurantsHandler: throttledRestaurantsHandler,
		notifier:                    notifier,
		logger:                      logger,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/restaurants/:restaurantId")

	g.POST("/orders", s.CreateOrder)
	g.PUT("/orders/:orderId/status", s.UpdateOrderStatus)
	g.POST("/orders/:orderId/courses/:courseId/fire", s.FireCourse)
	g.POST("/orders/:orderId/items/:itemId/fire", s.FireItem)
	g.POST("/orders/:orderId/items/ready", s.MarkItemsReady)
	g.POST("/orders/:orderId/hold", s.HoldOrder)
	g.POST("/orders/:orderId/release", s.ReleaseOrder)
	g.GET("/orders/:orderId/history", s.GetStatusHistory)
	g.POST("/throttling/evaluate", s.EvaluateRelease)
	g.GET("/throttling/status", s.GetThrottlingStatus)
	g.GET("/pacing", s.GetPacingMetrics)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type newOrderItem struct {
	ItemGuid        string `json:"itemGuid"`
	Name            string `json:"name"`
	CourseGuid      string `json:"courseGuid,omitempty"`
	CourseSortOrder int    `json:"courseSortOrder,omitempty"`
}

type newOrderRequest struct {
	OrderGuid string         `json:"orderGuid"`
	IsRush    bool           `json:"isRush"`
	Items     []newOrderItem `json:"items"`
}

// CreateOrder handles POST /orders. The new order immediately passes
// through admission control; the response reports whether it was held.
func (s *Server) CreateOrder(ctx echo.Context) error {
	restaurantID, err := pathUUID(ctx, "restaurantId")
	if err != nil {
		return badRequest(ctx, err)
	}

	var req newOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	orderID, err := optionalUUID(req.OrderGuid)
	if err != nil {
		return badRequest(ctx, err)
	}

	items := make([]commands.ItemSpec, 0, len(req.Items))
	for _, item := range req.Items {
		itemID, itemErr := optionalUUID(item.ItemGuid)
		if itemErr != nil {
			return badRequest(ctx, itemErr)
		}

		var courseID *kernel.UUID
		if item.CourseGuid != "" {
			cID, courseErr := kernel.UUIDFromString(item.CourseGuid)
			if courseErr != nil {
				return badRequest(ctx, courseErr)
			}
			courseID = &cID
		}

		items = append(items, commands.ItemSpec{
			ID:              itemID,
			Name:            item.Name,
			CourseID:        courseID,
			CourseSortOrder: item.CourseSortOrder,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, restaurantID, items, req.IsRush)
	if err != nil {
		return badRequest(ctx, err)
	}
	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	throttleCmd, err := commands.NewApplyAutoThrottleCommand(restaurantID, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	held, err := s.applyAutoThrottleHandler.Handle(ctx.Request().Context(), throttleCmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	s.notifyChanged(ctx, restaurantID, orderID)
	s.evaluateAndNotify(ctx, restaurantID)

	return ctx.JSON(http.StatusCreated, map[string]any{
		"orderGuid": orderID.String(),
		"held":      held,
	})
}

type updateStatusRequest struct {
	Status             string `json:"status"`
	ChangedBy          string `json:"changedBy"`
	Note               string `json:"note"`
	CancellationReason string `json:"cancellationReason"`
	CancelledBy        string `json:"cancelledBy"`
}

// UpdateOrderStatus handles PUT /orders/:orderId/status. A transition to a
// terminal status frees capacity, so a release evaluation runs afterwards.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	restaurantID, err := pathUUID(ctx, "restaurantId")
	if err != nil {
		return badRequest(ctx, err)
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err)
	}

	var req updateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(
		orderID, status, req.ChangedBy, req.Note, req.CancellationReason, req.CancelledBy,
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	aggregate, err := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	s.notifyChanged(ctx, restaurantID, orderID)
	s.evaluateAndNotify(ctx, restaurantID)

	return ctx.JSON(http.StatusOK, map[string]any{
		"orderGuid":     aggregate.ID().String(),
		"status":        aggregate.Status().String(),
		"throttleState": aggregate.ThrottleState().String(),
	})
}

// FireCourse handles POST /orders/:orderId/courses/:courseId/fire.
func (s *Server) FireCourse(ctx echo.Context) error {
	restaurantID, err := pathUUID(ctx, "restaurantId")
	if err != nil {
		return badRequest(ctx, err)
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err)
	}
	courseID, err := pathUUID(ctx, "courseId")
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewFireCourseCommand(orderID, courseID)
	if err != nil {
		return badRequest(ctx, err)
	}
	if err = s.fireCourseHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	s.notifyChanged(ctx, restaurantID, orderID)
	s.evaluateAndNotify(ctx, restaurantID)
	return ctx.NoContent(http.StatusNoContent)
}

// FireItem handles POST /orders/:orderId/items/:itemId/fire.
func (s *Server) FireItem(ctx echo.Context) error {
	restaurantID, err := pathUUID(ctx, "restaurantId")
	if err != nil {
		return badRequest(ctx, err)
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err)
	}
	itemID, err := pathUUID(ctx, "itemId")
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewFireItemCommand(orderID, itemID)
	if err != nil {
		return badRequest(ctx, err)
	}
	if err = s.fireItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	s.notifyChanged(ctx, restaurantID, orderID)
	s.evaluateAndNotify(ctx, restaurantID)
	return ctx.NoContent(http.StatusNoContent)
}

type markItemsReadyRequest struct {
	ItemGuids []string `json:"itemGuids"`
	ChangedBy string   `json:"changedBy"`
}

// MarkItemsReady handles POST /orders/:orderId/items/ready. Completing the
// last item can ripple into an order-level ready transition, reported in
// the response.
func (s *Server) MarkItemsReady(ctx echo.Context) error {
	restaurantID, err := pathUUID(ctx, "restaurantId")
	if err != nil {
		return badRequest(ctx, err)
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err)
	}

	var req markItemsReadyRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	itemIDs := make([]kernel.UUID, 0, len(req.ItemGuids))
	for _, raw := range req.ItemGuids {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return badRequest(ctx, idErr)
		}
		itemIDs = append(itemIDs, id)
	}

	cmd, err := commands.NewMarkItemsReadyCommand(orderID, itemIDs, req.ChangedBy)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.markItemsReadyHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	s.notifyChanged(ctx, restaurantID, orderID)
	s.evaluateAndNotify(ctx, restaurantID)

	return ctx.JSON(http.StatusOK, map[string]any{
		"orderReady": result.OrderReady,
	})
}

// HoldOrder handles POST /orders/:orderId/hold. A false result — missing
// order, wrong restaurant, terminal, or already held or released — maps to
// a conflict without leaking which guard failed.
func (s *Server) HoldOrder(ctx echo.Context) error {
	restaurantID, err := pathUUID(ctx, "restaurantId")
	if err != nil {
		return badRequest(ctx, err)
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewHoldOrderCommand(restaurantID, orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	held, err := s.holdOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	if !held {
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: "order not found or not eligible for hold",
		})
	}

	s.notifyChanged(ctx, restaurantID, orderID)
	return ctx.NoContent(http.StatusNoContent)
}

// ReleaseOrder handles POST /orders/:orderId/release.
func (s *Server) ReleaseOrder(ctx echo.Context) error {
	restaurantID, err := pathUUID(ctx, "restaurantId")
	if err != nil {
		return badRequest(ctx, err)
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewReleaseOrderCommand(restaurantID, orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	releasedOrder, err := s.releaseOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	if !releasedOrder {
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: "order not found or not currently held",
		})
	}

	s.notifyChanged(ctx, restaurantID, orderID)
	return ctx.NoContent(http.StatusNoContent)
}

// EvaluateRelease handles POST /throttling/evaluate.
func (s *Server) EvaluateRelease(ctx echo.Context) error {
	restaurantID, err := pathUUID(ctx, "restaurantId")
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewEvaluateReleaseCommand(restaurantID)
	if err != nil {
		return badRequest(ctx, err)
	}

	released, err := s.evaluateReleaseHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	if len(released) > 0 {
		s.notify(ctx, restaurantID, released)
	}

	ids := make([]string, 0, len(released))
	for _, id := range released {
		ids = append(ids, id.String())
	}
	return ctx.JSON(http.StatusOK, map[string]any{
		"releasedOrderGuids": ids,
	})
}

// GetThrottlingStatus handles GET /throttling/status.
func (s *Server) GetThrottlingStatus(ctx echo.Context) error {
	restaurantID, err := pathUUID(ctx, "restaurantId")
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetThrottlingStatusQuery(restaurantID)
	if err != nil {
		return badRequest(ctx, err)
	}

	status, err := s.throttlingStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"enabled":       status.Enabled,
		"triggering":    status.Triggering,
		"triggerReason": status.TriggerReason,
		"counts": map[string]int{
			"activeOrders":  status.ActiveOrders,
			"overdueOrders": status.OverdueOrders,
			"heldOrders":    status.HeldOrders,
		},
		"thresholds": map[string]any{
			"maxActiveOrders":      status.MaxActiveOrders,
			"maxOverdueOrders":     status.MaxOverdueOrders,
			"releaseActiveOrders":  status.ReleaseActiveOrders,
			"releaseOverdueOrders": status.ReleaseOverdueOrders,
			"maxHoldMinutes":       status.MaxHoldMinutes,
			"allowRushThrottle":    status.AllowRushThrottle,
		},
		"evaluatedAt": status.EvaluatedAt,
	})
}

// GetStatusHistory handles GET /orders/:orderId/history.
func (s *Server) GetStatusHistory(ctx echo.Context) error {
	restaurantID, err := pathUUID(ctx, "restaurantId")
	if err != nil {
		return badRequest(ctx, err)
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetStatusHistoryQuery(restaurantID, orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	history, err := s.statusHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, history)
}

// GetPacingMetrics handles GET /pacing?lookbackDays=N.
func (s *Server) GetPacingMetrics(ctx echo.Context) error {
	restaurantID, err := pathUUID(ctx, "restaurantId")
	if err != nil {
		return badRequest(ctx, err)
	}

	lookbackDays := 0
	if raw := ctx.QueryParam("lookbackDays"); raw != "" {
		lookbackDays, err = strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, errors.New("lookbackDays must be an integer"))
		}
	}

	query, err := queries.NewGetPacingMetricsQuery(restaurantID, lookbackDays)
	if err != nil {
		return badRequest(ctx, err)
	}

	resp, err := s.pacingMetricsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"lookbackDays":    resp.LookbackDays,
		"sampleSize":      resp.Metrics.SampleSize,
		"baselineSeconds": resp.Metrics.BaselineSeconds,
		"p50Seconds":      resp.Metrics.P50Seconds,
		"p80Seconds":      resp.Metrics.P80Seconds,
		"confidence":      string(resp.Metrics.Confidence),
		"generatedAt":     resp.Metrics.GeneratedAt,
	})
}

// notifyChanged announces one changed order. Manual hold and release skip
// the follow-up evaluation: releasing right after an operator parked an
// order would undo the hold.
func (s *Server) notifyChanged(ctx echo.Context, restaurantID, orderID kernel.UUID) {
	s.notify(ctx, restaurantID, []kernel.UUID{orderID})
}

func (s *Server) notify(ctx echo.Context, restaurantID kernel.UUID, orderIDs []kernel.UUID) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyOrdersChanged(ctx.Request().Context(), restaurantID, orderIDs); err != nil {
		s.logger.Error("notify orders changed", "restaurantId", restaurantID.String(), "error", err)
	}
}

// evaluateAndNotify runs the release engine after a mutation that may have
// freed capacity. Failures are logged, never surfaced: the mutation already
// committed and the sweep job will catch up.
func (s *Server) evaluateAndNotify(ctx echo.Context, restaurantID kernel.UUID) {
	cmd, err := commands.NewEvaluateReleaseCommand(restaurantID)
	if err != nil {
		s.logger.Error("build evaluate command", "restaurantId", restaurantID.String(), "error", err)
		return
	}

	released, err := s.evaluateReleaseHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		s.logger.Error("evaluate releases", "restaurantId", restaurantID.String(), "error", err)
		return
	}
	if len(released) > 0 {
		s.notify(ctx, restaurantID, released)
	}
}

// fail maps domain errors onto HTTP statuses.
func (s *Server) fail(ctx echo.Context, err error) error {
	var transitionErr *order.InvalidTransitionError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.As(err, &transitionErr):
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		s.logger.Error("request failed", "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		})
	}
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func optionalUUID(raw string) (kernel.UUID, error) {
	if raw == "" {
		return kernel.NewUUID(), nil
	}
	return kernel.UUIDFromString(raw)
}
