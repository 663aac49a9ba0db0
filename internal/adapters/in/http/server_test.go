package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"
)

var testSecret = []byte("test-secret")

type MockPlaceOrderHandler struct {
	mock.Mock
}

func (m *MockPlaceOrderHandler) Handle(ctx context.Context, cmd commands.PlaceOrderCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockTransitionOrderHandler struct {
	mock.Mock
}

func (m *MockTransitionOrderHandler) Handle(ctx context.Context, cmd commands.TransitionOrderCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockAssignCourierHandler struct {
	mock.Mock
}

func (m *MockAssignCourierHandler) Handle(ctx context.Context, cmd commands.AssignCourierCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockAcceptOrderHandler struct {
	mock.Mock
}

func (m *MockAcceptOrderHandler) Handle(ctx context.Context, cmd commands.AcceptOrderCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockActiveOrdersHandler struct {
	mock.Mock
}

func (m *MockActiveOrdersHandler) Handle(
	ctx context.Context, query queries.GetActiveOrdersQuery,
) ([]queries.OrderResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.OrderResponse), args.Error(1)
}

type MockCustomerOrdersHandler struct {
	mock.Mock
}

func (m *MockCustomerOrdersHandler) Handle(
	ctx context.Context, query queries.GetCustomerOrdersQuery,
) ([]queries.OrderResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.OrderResponse), args.Error(1)
}

type MockAvailableOrdersHandler struct {
	mock.Mock
}

func (m *MockAvailableOrdersHandler) Handle(
	ctx context.Context, query queries.GetAvailableOrdersQuery,
) ([]queries.OrderResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.OrderResponse), args.Error(1)
}

type MockAllCouriersHandler struct {
	mock.Mock
}

func (m *MockAllCouriersHandler) Handle(
	ctx context.Context, query queries.GetAllCouriersQuery,
) ([]queries.CourierResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.CourierResponse), args.Error(1)
}

type serverMocks struct {
	placeOrder      *MockPlaceOrderHandler
	transitionOrder *MockTransitionOrderHandler
	assignCourier   *MockAssignCourierHandler
	acceptOrder     *MockAcceptOrderHandler
	activeOrders    *MockActiveOrdersHandler
	customerOrders  *MockCustomerOrdersHandler
	availableOrders *MockAvailableOrdersHandler
	allCouriers     *MockAllCouriersHandler
}

func newTestServer(t *testing.T) (*echo.Echo, *serverMocks) {
	t.Helper()

	mocks := &serverMocks{
		placeOrder:      new(MockPlaceOrderHandler),
		transitionOrder: new(MockTransitionOrderHandler),
		assignCourier:   new(MockAssignCourierHandler),
		acceptOrder:     new(MockAcceptOrderHandler),
		activeOrders:    new(MockActiveOrdersHandler),
		customerOrders:  new(MockCustomerOrdersHandler),
		availableOrders: new(MockAvailableOrdersHandler),
		allCouriers:     new(MockAllCouriersHandler),
	}

	server := NewServer(
		mocks.placeOrder,
		mocks.transitionOrder,
		mocks.assignCourier,
		mocks.acceptOrder,
		mocks.activeOrders,
		mocks.customerOrders,
		mocks.availableOrders,
		mocks.allCouriers,
		testSecret,
	)

	e := echo.New()
	server.RegisterRoutes(e)
	return e, mocks
}

func signToken(t *testing.T, id kernel.UUID, role services.Role) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  id.String(),
		"role": role.String(),
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func doRequest(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func Test_Server_Health(t *testing.T) {
	t.Run("should respond without a token", func(t *testing.T) {
		// Arrange
		e, _ := newTestServer(t)

		// Act
		rec := doRequest(e, http.MethodGet, "/health", "", "")

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	})
}

func Test_Server_Auth(t *testing.T) {
	t.Run("should reject missing token", func(t *testing.T) {
		// Arrange
		e, _ := newTestServer(t)

		// Act
		rec := doRequest(e, http.MethodGet, "/api/v1/orders/active", "", "")

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject malformed token", func(t *testing.T) {
		// Arrange
		e, _ := newTestServer(t)

		// Act
		rec := doRequest(e, http.MethodGet, "/api/v1/orders/active", "not-a-jwt", "")

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject token signed with a different secret", func(t *testing.T) {
		// Arrange
		e, _ := newTestServer(t)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  kernel.NewUUID().String(),
			"role": "admin",
		})
		signed, err := token.SignedString([]byte("wrong-secret"))
		require.NoError(t, err)

		// Act
		rec := doRequest(e, http.MethodGet, "/api/v1/orders/active", signed, "")

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject token with unknown role", func(t *testing.T) {
		// Arrange
		e, _ := newTestServer(t)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  kernel.NewUUID().String(),
			"role": "superuser",
		})
		signed, err := token.SignedString(testSecret)
		require.NoError(t, err)

		// Act
		rec := doRequest(e, http.MethodGet, "/api/v1/orders/active", signed, "")

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func Test_Server_PlaceOrder(t *testing.T) {
	customerID := kernel.NewUUID()
	dishID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	body := `{
		"customerId": "` + customerID.String() + `",
		"restaurantId": "` + restaurantID.String() + `",
		"items": [{"dishId": "` + dishID.String() + `", "qty": 2}],
		"address": "12 Baker Street"
	}`

	t.Run("should place order and return its id", func(t *testing.T) {
		// Arrange
		e, mocks := newTestServer(t)
		token := signToken(t, customerID, services.RoleCustomer)

		mocks.placeOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.PlaceOrderCommand) bool {
			return cmd.CustomerID() == customerID &&
				cmd.RestaurantID() == restaurantID &&
				cmd.Actor().Role() == services.RoleCustomer
		})).Return(nil)

		// Act
		rec := doRequest(e, http.MethodPost, "/api/v1/orders", token, body)

		// Assert
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "orderId")
		mocks.placeOrder.AssertExpectations(t)
	})

	t.Run("should reject body without items", func(t *testing.T) {
		// Arrange
		e, mocks := newTestServer(t)
		token := signToken(t, customerID, services.RoleCustomer)
		invalid := `{
			"customerId": "` + customerID.String() + `",
			"restaurantId": "` + restaurantID.String() + `",
			"items": [],
			"address": "12 Baker Street"
		}`

		// Act
		rec := doRequest(e, http.MethodPost, "/api/v1/orders", token, invalid)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mocks.placeOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should reject zero quantity", func(t *testing.T) {
		// Arrange
		e, mocks := newTestServer(t)
		token := signToken(t, customerID, services.RoleCustomer)
		invalid := `{
			"customerId": "` + customerID.String() + `",
			"restaurantId": "` + restaurantID.String() + `",
			"items": [{"dishId": "` + dishID.String() + `", "qty": 0}],
			"address": "12 Baker Street"
		}`

		// Act
		rec := doRequest(e, http.MethodPost, "/api/v1/orders", token, invalid)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mocks.placeOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should map policy denial to 403", func(t *testing.T) {
		// Arrange
		e, mocks := newTestServer(t)
		token := signToken(t, kernel.NewUUID(), services.RoleCustomer)

		mocks.placeOrder.On("Handle", mock.Anything, mock.Anything).
			Return(&services.OperationNotPermittedError{Operation: "place order for another customer"})

		// Act
		rec := doRequest(e, http.MethodPost, "/api/v1/orders", token, body)

		// Assert
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("should map unknown dish to 404", func(t *testing.T) {
		// Arrange
		e, mocks := newTestServer(t)
		token := signToken(t, customerID, services.RoleCustomer)

		mocks.placeOrder.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewObjectNotFoundError("dish", dishID))

		// Act
		rec := doRequest(e, http.MethodPost, "/api/v1/orders", token, body)

		// Assert
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func Test_Server_TransitionOrder(t *testing.T) {
	adminID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	path := "/api/v1/orders/" + orderID.String() + "/transition"

	t.Run("should transition order", func(t *testing.T) {
		// Arrange
		e, mocks := newTestServer(t)
		token := signToken(t, adminID, services.RoleAdmin)

		mocks.transitionOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.TransitionOrderCommand) bool {
			return cmd.OrderID() == orderID && cmd.Target() == order.Confirmed
		})).Return(nil)

		// Act
		rec := doRequest(e, http.MethodPost, path, token, `{"target": "confirmed"}`)

		// Assert
		assert.Equal(t, http.StatusNoContent, rec.Code)
		mocks.transitionOrder.AssertExpectations(t)
	})

	t.Run("should reject unknown target status", func(t *testing.T) {
		// Arrange
		e, mocks := newTestServer(t)
		token := signToken(t, adminID, services.RoleAdmin)

		// Act
		rec := doRequest(e, http.MethodPost, path, token, `{"target": "teleported"}`)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mocks.transitionOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should map illegal transition to 409", func(t *testing.T) {
		// Arrange
		e, mocks := newTestServer(t)
		token := signToken(t, adminID, services.RoleAdmin)

		mocks.transitionOrder.On("Handle", mock.Anything, mock.Anything).
			Return(&order.IllegalTransitionError{From: order.Delivered, To: order.Confirmed})

		// Act
		rec := doRequest(e, http.MethodPost, path, token, `{"target": "confirmed"}`)

		// Assert
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("should map stale write to 412", func(t *testing.T) {
		// Arrange
		e, mocks := newTestServer(t)
		token := signToken(t, adminID, services.RoleAdmin)

		mocks.transitionOrder.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewConcurrentModificationError("order", orderID.String(), order.Pending.String()))

		// Act
		rec := doRequest(e, http.MethodPost, path, token, `{"target": "confirmed"}`)

		// Assert
		assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	})

	t.Run("should reject malformed order id", func(t *testing.T) {
		// Arrange
		e, mocks := newTestServer(t)
		token := signToken(t, adminID, services.RoleAdmin)

		// Act
		rec := doRequest(e, http.MethodPost, "/api/v1/orders/not-a-uuid/transition", token, `{"target": "confirmed"}`)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mocks.transitionOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func Test_Server_AssignCourier(t *testing.T) {
	adminID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	path := "/api/v1/orders/" + orderID.String() + "/assign"
	body := `{"courierId": "` + courierID.String() + `"}`

	t.Run("should assign courier", func(t *testing.T) {
		// Arrange
		e, mocks := newTestServer(t)
		token := signToken(t, adminID, services.RoleAdmin)

		mocks.assignCourier.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AssignCourierCommand) bool {
			return cmd.OrderID() == orderID && cmd.CourierID() == courierID
		})).Return(nil)

		// Act
		rec := doRequest(e, http.MethodPost, path, token, body)

		// Assert
		assert.Equal(t, http.StatusNoContent, rec.Code)
		mocks.assignCourier.AssertExpectations(t)
	})

	t.Run("should map lost assignment race to 409", func(t *testing.T) {
		// Arrange
		e, mocks := newTestServer(t)
		token := signToken(t, adminID, services.RoleAdmin)

		mocks.assignCourier.On("Handle", mock.Anything, mock.Anything).
			Return(&order.AlreadyAssignedError{CourierID: kernel.NewUUID()})

		// Act
		rec := doRequest(e, http.MethodPost, path, token, body)

		// Assert
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func Test_Server_AcceptOrder(t *testing.T) {
	courierID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	path := "/api/v1/orders/" + orderID.String() + "/accept"

	t.Run("should accept order as the calling courier", func(t *testing.T) {
		// Arrange
		e, mocks := newTestServer(t)
		token := signToken(t, courierID, services.RoleCourier)

		mocks.acceptOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AcceptOrderCommand) bool {
			return cmd.OrderID() == orderID && cmd.Actor().ID() == courierID
		})).Return(nil)

		// Act
		rec := doRequest(e, http.MethodPost, path, token, "")

		// Assert
		assert.Equal(t, http.StatusNoContent, rec.Code)
		mocks.acceptOrder.AssertExpectations(t)
	})

	t.Run("should map missing order to 404", func(t *testing.T) {
		// Arrange
		e, mocks := newTestServer(t)
		token := signToken(t, courierID, services.RoleCourier)

		mocks.acceptOrder.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewObjectNotFoundError("order", orderID))

		// Act
		rec := doRequest(e, http.MethodPost, path, token, "")

		// Assert
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func Test_Server_Queries(t *testing.T) {
	t.Run("should return active orders", func(t *testing.T) {
		// Arrange
		e, mocks := newTestServer(t)
		token := signToken(t, kernel.NewUUID(), services.RoleAdmin)
		orderID := kernel.NewUUID()

		mocks.activeOrders.On("Handle", mock.Anything, mock.Anything).
			Return([]queries.OrderResponse{{ID: orderID, Status: "pending", Total: 900}}, nil)

		// Act
		rec := doRequest(e, http.MethodGet, "/api/v1/orders/active", token, "")

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), orderID.String())
	})

	t.Run("should scope my orders to the token subject", func(t *testing.T) {
		// Arrange
		e, mocks := newTestServer(t)
		customerID := kernel.NewUUID()
		token := signToken(t, customerID, services.RoleCustomer)

		mocks.customerOrders.On("Handle", mock.Anything, mock.MatchedBy(func(query queries.GetCustomerOrdersQuery) bool {
			return query.CustomerID() == customerID
		})).Return([]queries.OrderResponse{}, nil)

		// Act
		rec := doRequest(e, http.MethodGet, "/api/v1/orders/mine", token, "")

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		mocks.customerOrders.AssertExpectations(t)
	})

	t.Run("should return available orders", func(t *testing.T) {
		// Arrange
		e, mocks := newTestServer(t)
		token := signToken(t, kernel.NewUUID(), services.RoleCourier)

		mocks.availableOrders.On("Handle", mock.Anything, mock.Anything).
			Return([]queries.OrderResponse{}, nil)

		// Act
		rec := doRequest(e, http.MethodGet, "/api/v1/orders/available", token, "")

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should return courier roster", func(t *testing.T) {
		// Arrange
		e, mocks := newTestServer(t)
		token := signToken(t, kernel.NewUUID(), services.RoleAdmin)

		mocks.allCouriers.On("Handle", mock.Anything, mock.Anything).
			Return([]queries.CourierResponse{{ID: kernel.NewUUID(), Name: "Maria Garcia", Status: "available", Rating: 4.7}}, nil)

		// Act
		rec := doRequest(e, http.MethodGet, "/api/v1/couriers", token, "")

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Maria Garcia")
	})
}
