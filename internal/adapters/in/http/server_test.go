package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/in/http/auth"
	"marketplace/internal/adapters/out/events"
	"marketplace/internal/adapters/out/persistence"
	"marketplace/internal/adapters/out/persistence/orderrepo"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/generated/servers"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type uowFactory func() commands.OrderUoW

func (f uowFactory) Create() commands.OrderUoW {
	return f()
}

// memoryIdempotencyStore keeps keys in a map; it stands in for the redis store.
type memoryIdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]*kernel.UUID
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{keys: make(map[string]*kernel.UUID)}
}

func (s *memoryIdempotencyStore) Reserve(_ context.Context, scope, key string) (kernel.UUID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, found := s.keys[scope+":"+key]
	switch {
	case !found:
		s.keys[scope+":"+key] = nil
		return kernel.UUID{}, true, nil
	case id == nil:
		return kernel.UUID{}, false, errs.NewConcurrencyConflictError("Idempotency-Key", key, nil)
	default:
		return *id, false, nil
	}
}

func (s *memoryIdempotencyStore) Complete(_ context.Context, scope, key string, orderID kernel.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[scope+":"+key] = &orderID
	return nil
}

func (s *memoryIdempotencyStore) Release(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, scope+":"+key)
	return nil
}

// ServerTestSuite drives the full HTTP stack over a SQLite-backed composition.
type ServerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	metrics *metrics.Metrics
	tokens  auth.Tokens
	router  *echo.Echo
}

func (suite *ServerTestSuite) SetupTest() {
	db, err := persistence.Open(persistence.DriverSQLite, filepath.Join(suite.T().TempDir(), "orders.db"))
	suite.Require().NoError(err)
	suite.Require().NoError(persistence.Migrate(db))
	suite.db = db

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.metrics = metrics.New()

	publisher := events.FanOut{events.NewMetricsPublisher(suite.metrics), events.NewLogPublisher(logger)}
	gormFactory := persistence.NewGormUnitOfWorkFactory(db, publisher)
	var factory commands.OrderUoWFactory = uowFactory(func() commands.OrderUoW {
		return gormFactory.Create()
	})

	lifecycle := services.NewOrderLifecycle(services.PermissiveTransitions)
	reader := orderrepo.NewGormOrderReader(db)

	server := httpin.NewServer(
		commands.NewCreateOrderCommandHandler(factory, newMemoryIdempotencyStore(), logger),
		commands.NewUpdateOrderStatusCommandHandler(factory, lifecycle),
		commands.NewCancelOrderCommandHandler(factory, lifecycle),
		queries.NewGetOrderQueryHandler(reader),
		queries.NewGetOrderTrackingQueryHandler(reader),
		queries.NewListOrdersQueryHandler(reader),
		logger,
	)

	suite.tokens, err = auth.NewTokens("test-secret", "")
	suite.Require().NoError(err)

	suite.router, err = httpin.NewRouter(server, httpin.RouterConfig{
		ServiceName: "marketplace-test",
		Tokens:      suite.tokens,
		Metrics:     suite.metrics,
		Logger:      logger,
	})
	suite.Require().NoError(err)
}

func (suite *ServerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(sqlDB.Close())
}

func (suite *ServerTestSuite) token(subject string, role identity.Role) string {
	p, err := identity.NewPrincipal(subject, role)
	suite.Require().NoError(err)
	raw, err := suite.tokens.Issue(p, time.Hour, time.Now())
	suite.Require().NoError(err)
	return raw
}

func (suite *ServerTestSuite) do(method, path, token string, body any, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](suite *ServerTestSuite, rec *httptest.ResponseRecorder) T {
	var out T
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func newOrderBody(vendorID string) map[string]any {
	return map[string]any{
		"vendorId":  vendorID,
		"paymentId": "pay_123",
		"orderItems": []map[string]any{
			{"productId": "p1", "quantity": 2, "price": 10},
			{"productId": "p2", "quantity": 1, "price": 5.5},
		},
		"shippingAddress": map[string]any{
			"line1":      "1 Main St",
			"city":       "Springfield",
			"postalCode": "62701",
			"country":    "us",
		},
	}
}

func (suite *ServerTestSuite) placeOrder(consumerID, vendorID string) servers.Order {
	rec := suite.do(http.MethodPost, "/orders", suite.token(consumerID, identity.Consumer), newOrderBody(vendorID))
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return decode[servers.Order](suite, rec)
}

func (suite *ServerTestSuite) setStatus(orderID, vendorID, status string, extra map[string]any) *httptest.ResponseRecorder {
	body := map[string]any{"orderStatus": status}
	for k, v := range extra {
		body[k] = v
	}
	return suite.do(http.MethodPut, "/orders/"+orderID+"/status", suite.token(vendorID, identity.Vendor), body)
}

func (suite *ServerTestSuite) TestHealth() {
	rec := suite.do(http.MethodGet, "/health", "", nil)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("Healthy", rec.Body.String())
}

func (suite *ServerTestSuite) TestUnknownRoute_IsJSON404() {
	rec := suite.do(http.MethodGet, "/nowhere", "", nil)
	suite.Equal(http.StatusNotFound, rec.Code)
	suite.Equal(http.StatusNotFound, decode[servers.Error](suite, rec).Code)
}

func (suite *ServerTestSuite) TestOrders_RequireBearerToken() {
	rec := suite.do(http.MethodGet, "/orders/"+kernel.NewUUID().String(), "", nil)
	suite.Equal(http.StatusUnauthorized, rec.Code)
	suite.NotEmpty(rec.Header().Get(echo.HeaderWWWAuthenticate))

	rec = suite.do(http.MethodGet, "/orders/"+kernel.NewUUID().String(), "not-a-jwt", nil)
	suite.Equal(http.StatusUnauthorized, rec.Code)
}

func (suite *ServerTestSuite) TestCreateOrder() {
	created := suite.placeOrder("C1", "V1")

	suite.Equal("C1", created.ConsumerId)
	suite.Equal("V1", created.VendorId)
	suite.Equal(servers.OrderStatusPending, created.OrderStatus)
	suite.Equal(servers.PaymentStatusSucceeded, created.PaymentStatus)
	suite.Equal("25.50", created.SubtotalAmount)
	suite.Equal("US", created.ShippingAddress.Country)
	suite.Equal(1, created.Version)
	suite.Require().Len(created.Tracking, 1)
	suite.Equal(servers.OrderStatusPending, created.Tracking[0].Status)
	suite.Len(created.OrderItems, 2)
	suite.Equal("10.00", created.OrderItems[0].Price)
}

func (suite *ServerTestSuite) TestCreateOrder_Rejected() {
	suite.Run("should reject a body that breaks the contract", func() {
		body := newOrderBody("V1")
		delete(body, "paymentId")
		rec := suite.do(http.MethodPost, "/orders", suite.token("C1", identity.Consumer), body)
		suite.Equal(http.StatusBadRequest, rec.Code)
		suite.Contains(decode[servers.Error](suite, rec).Message, "paymentId")
	})

	suite.Run("should reject items from another vendor", func() {
		body := newOrderBody("V1")
		body["orderItems"] = []map[string]any{
			{"productId": "p1", "vendorId": "V2", "quantity": 1, "price": 1},
		}
		rec := suite.do(http.MethodPost, "/orders", suite.token("C1", identity.Consumer), body)
		suite.Equal(http.StatusBadRequest, rec.Code)
	})

	suite.Run("should reject a price with more than two decimals", func() {
		body := newOrderBody("V1")
		body["orderItems"] = []map[string]any{{"productId": "p1", "quantity": 1, "price": 1.005}}
		rec := suite.do(http.MethodPost, "/orders", suite.token("C1", identity.Consumer), body)
		suite.Equal(http.StatusBadRequest, rec.Code)
	})

	suite.Run("should forbid vendors from placing orders", func() {
		rec := suite.do(http.MethodPost, "/orders", suite.token("V1", identity.Vendor), newOrderBody("V1"))
		suite.Equal(http.StatusForbidden, rec.Code)
	})

	suite.Run("should forbid ordering for another consumer", func() {
		body := newOrderBody("V1")
		body["consumerId"] = "C2"
		rec := suite.do(http.MethodPost, "/orders", suite.token("C1", identity.Consumer), body)
		suite.Equal(http.StatusForbidden, rec.Code)
	})
}

func (suite *ServerTestSuite) TestCreateOrder_AdminOnBehalfOfConsumer() {
	body := newOrderBody("V1")
	body["consumerId"] = "C9"

	rec := suite.do(http.MethodPost, "/orders", suite.token("A1", identity.Admin), body)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	suite.Equal("C9", decode[servers.Order](suite, rec).ConsumerId)
}

func (suite *ServerTestSuite) TestCreateOrder_IdempotencyKey() {
	token := suite.token("C1", identity.Consumer)

	first := suite.do(http.MethodPost, "/orders", token, newOrderBody("V1"), "Idempotency-Key", "cart-42")
	suite.Require().Equal(http.StatusCreated, first.Code, first.Body.String())

	replay := suite.do(http.MethodPost, "/orders", token, newOrderBody("V1"), "Idempotency-Key", "cart-42")
	suite.Require().Equal(http.StatusOK, replay.Code, replay.Body.String())

	suite.Equal(decode[servers.Order](suite, first).OrderId, decode[servers.Order](suite, replay).OrderId)

	var count int64
	suite.Require().NoError(suite.db.Table("orders").Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *ServerTestSuite) TestFulfilmentLifecycle() {
	created := suite.placeOrder("C1", "V1")
	id := created.OrderId.String()

	rec := suite.setStatus(id, "V1", "processing", nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = suite.setStatus(id, "V1", "shipped", map[string]any{
		"carrier":         "UPS",
		"trackingNumber":  "1Z999",
		"expectedVersion": 2,
	})
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	shipped := decode[servers.Order](suite, rec)
	suite.Equal(servers.OrderStatusShipped, shipped.OrderStatus)
	suite.Equal(3, shipped.Version)

	rec = suite.setStatus(id, "V1", "delivered", nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = suite.do(http.MethodGet, "/orders/"+id+"/tracking", suite.token("C1", identity.Consumer), nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	ledger := decode[servers.Tracking](suite, rec)

	suite.Equal(servers.OrderStatusDelivered, ledger.OrderStatus)
	suite.Equal(4, ledger.Version)
	suite.Require().Len(ledger.Tracking, 4)
	got := make([]servers.OrderStatus, len(ledger.Tracking))
	for i, event := range ledger.Tracking {
		got[i] = event.Status
	}
	suite.Equal([]servers.OrderStatus{
		servers.OrderStatusPending,
		servers.OrderStatusProcessing,
		servers.OrderStatusShipped,
		servers.OrderStatusDelivered,
	}, got)
	suite.Require().NotNil(ledger.Tracking[2].Carrier)
	suite.Equal("UPS", *ledger.Tracking[2].Carrier)

	suite.Run("should refuse events after delivery", func() {
		rec := suite.setStatus(id, "V1", "shipped", nil)
		suite.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

func (suite *ServerTestSuite) TestUpdateOrderStatus_Rejected() {
	created := suite.placeOrder("C1", "V1")
	id := created.OrderId.String()

	suite.Run("should forbid another vendor", func() {
		suite.Equal(http.StatusForbidden, suite.setStatus(id, "V2", "processing", nil).Code)
	})

	suite.Run("should forbid the consumer", func() {
		rec := suite.do(http.MethodPut, "/orders/"+id+"/status", suite.token("C1", identity.Consumer),
			map[string]any{"orderStatus": "processing"})
		suite.Equal(http.StatusForbidden, rec.Code)
	})

	suite.Run("should reject statuses outside the allow-list", func() {
		for _, target := range []string{"cancelled", "pending"} {
			rec := suite.setStatus(id, "V1", target, nil)
			suite.Equal(http.StatusBadRequest, rec.Code)
			suite.Contains(decode[servers.Error](suite, rec).Message, "Invalid status transition")
		}
		suite.Equal(http.StatusBadRequest, suite.setStatus(id, "V1", "lost", nil).Code)
	})

	suite.Run("should answer 409 for a stale expected version", func() {
		rec := suite.setStatus(id, "V1", "processing", map[string]any{"expectedVersion": 5})
		suite.Equal(http.StatusConflict, rec.Code)
	})

	suite.Run("should answer 404 for a missing order", func() {
		suite.Equal(http.StatusNotFound, suite.setStatus(kernel.NewUUID().String(), "V1", "processing", nil).Code)
	})

	suite.Run("should answer 400 for a malformed id", func() {
		suite.Equal(http.StatusBadRequest, suite.setStatus("not-a-uuid", "V1", "processing", nil).Code)
	})

	rec := suite.do(http.MethodGet, "/orders/"+id, suite.token("V1", identity.Vendor), nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Equal(1, decode[servers.Order](suite, rec).Version)
}

func (suite *ServerTestSuite) TestCancelOrder() {
	suite.Run("should cancel a pending order with the default note", func() {
		created := suite.placeOrder("C1", "V1")

		rec := suite.do(http.MethodPost, "/orders/"+created.OrderId.String()+"/cancel",
			suite.token("C1", identity.Consumer), nil)
		suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

		cancelled := decode[servers.Order](suite, rec)
		suite.Equal(servers.OrderStatusCancelled, cancelled.OrderStatus)
		suite.Require().NotNil(cancelled.Tracking[1].Note)
		suite.Equal(services.DefaultCancellationNote, *cancelled.Tracking[1].Note)
	})

	suite.Run("should record the given reason", func() {
		created := suite.placeOrder("C1", "V1")
		suite.Require().Equal(http.StatusOK, suite.setStatus(created.OrderId.String(), "V1", "processing", nil).Code)

		rec := suite.do(http.MethodPost, "/orders/"+created.OrderId.String()+"/cancel",
			suite.token("C1", identity.Consumer), map[string]any{"reason": "changed my mind"})
		suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		cancelled := decode[servers.Order](suite, rec)
		suite.Equal("changed my mind", *cancelled.Tracking[2].Note)
	})

	suite.Run("should refuse once shipped", func() {
		created := suite.placeOrder("C1", "V1")
		id := created.OrderId.String()
		suite.Require().Equal(http.StatusOK, suite.setStatus(id, "V1", "shipped", nil).Code)

		rec := suite.do(http.MethodPost, "/orders/"+id+"/cancel", suite.token("C1", identity.Consumer), nil)
		suite.Equal(http.StatusUnprocessableEntity, rec.Code)

		rec = suite.do(http.MethodGet, "/orders/"+id+"/tracking", suite.token("C1", identity.Consumer), nil)
		suite.Equal(servers.OrderStatusShipped, decode[servers.Tracking](suite, rec).OrderStatus)
	})

	suite.Run("should forbid vendors and other consumers", func() {
		created := suite.placeOrder("C1", "V1")
		id := created.OrderId.String()

		rec := suite.do(http.MethodPost, "/orders/"+id+"/cancel", suite.token("V1", identity.Vendor), nil)
		suite.Equal(http.StatusForbidden, rec.Code)

		rec = suite.do(http.MethodPost, "/orders/"+id+"/cancel", suite.token("C2", identity.Consumer), nil)
		suite.Equal(http.StatusForbidden, rec.Code)
	})

	suite.Run("should let an admin cancel", func() {
		created := suite.placeOrder("C1", "V1")
		rec := suite.do(http.MethodPost, "/orders/"+created.OrderId.String()+"/cancel",
			suite.token("A1", identity.Admin), map[string]any{"reason": "fraud"})
		suite.Equal(http.StatusOK, rec.Code)
	})
}

func (suite *ServerTestSuite) TestGetOrder_Access() {
	created := suite.placeOrder("C1", "V1")
	path := "/orders/" + created.OrderId.String()

	suite.Equal(http.StatusOK, suite.do(http.MethodGet, path, suite.token("C1", identity.Consumer), nil).Code)
	suite.Equal(http.StatusOK, suite.do(http.MethodGet, path, suite.token("V1", identity.Vendor), nil).Code)
	suite.Equal(http.StatusOK, suite.do(http.MethodGet, path, suite.token("A1", identity.Admin), nil).Code)
	suite.Equal(http.StatusForbidden, suite.do(http.MethodGet, path, suite.token("C2", identity.Consumer), nil).Code)
	suite.Equal(http.StatusForbidden, suite.do(http.MethodGet, path+"/tracking", suite.token("V2", identity.Vendor), nil).Code)
	suite.Equal(http.StatusNotFound,
		suite.do(http.MethodGet, "/orders/"+kernel.NewUUID().String(), suite.token("A1", identity.Admin), nil).Code)
}

func (suite *ServerTestSuite) TestListOrders() {
	first := suite.placeOrder("C1", "V1")
	suite.placeOrder("C2", "V1")
	suite.placeOrder("C1", "V2")
	suite.Require().Equal(http.StatusOK, suite.setStatus(first.OrderId.String(), "V1", "processing", nil).Code)

	suite.Run("should scope a vendor to its own orders", func() {
		rec := suite.do(http.MethodGet, "/orders", suite.token("V1", identity.Vendor), nil)
		suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		page := decode[servers.OrderList](suite, rec)
		suite.Equal(int64(2), page.Total)
		suite.Equal(1, page.Page)
		suite.Equal(10, page.Limit)
		for _, o := range page.Orders {
			suite.Equal("V1", o.VendorId)
		}
	})

	suite.Run("should forbid a vendor asking for another vendor", func() {
		rec := suite.do(http.MethodGet, "/orders?vendorId=V2", suite.token("V1", identity.Vendor), nil)
		suite.Equal(http.StatusForbidden, rec.Code)
	})

	suite.Run("should forbid consumers", func() {
		rec := suite.do(http.MethodGet, "/orders", suite.token("C1", identity.Consumer), nil)
		suite.Equal(http.StatusForbidden, rec.Code)
	})

	suite.Run("should filter by status for an admin", func() {
		rec := suite.do(http.MethodGet, "/orders?orderStatus=processing", suite.token("A1", identity.Admin), nil)
		suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		page := decode[servers.OrderList](suite, rec)
		suite.Equal(int64(1), page.Total)
		suite.Equal(first.OrderId, page.Orders[0].OrderId)
	})

	suite.Run("should paginate newest first", func() {
		rec := suite.do(http.MethodGet, "/orders?page=2&limit=1", suite.token("A1", identity.Admin), nil)
		suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		page := decode[servers.OrderList](suite, rec)
		suite.Equal(int64(3), page.Total)
		suite.Len(page.Orders, 1)
	})

	suite.Run("should return an empty page past the last match", func() {
		rec := suite.do(http.MethodGet, "/orders?page=1000000&limit=100", suite.token("A1", identity.Admin), nil)
		suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		page := decode[servers.OrderList](suite, rec)
		suite.Equal(1000000, page.Page)
		suite.Equal(int64(3), page.Total)
		suite.Empty(page.Orders)
	})

	suite.Run("should reject a page beyond the maximum", func() {
		rec := suite.do(http.MethodGet, "/orders?page=184467440737095516&limit=100", suite.token("A1", identity.Admin), nil)
		suite.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
	})

	suite.Run("should include the whole dateTo day", func() {
		today := time.Now().UTC().Format(time.DateOnly)
		rec := suite.do(http.MethodGet, "/orders?dateFrom="+today+"&dateTo="+today, suite.token("A1", identity.Admin), nil)
		suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		suite.Equal(int64(3), decode[servers.OrderList](suite, rec).Total)
	})

	suite.Run("should reject invalid paging and filters", func() {
		admin := suite.token("A1", identity.Admin)
		suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/orders?page=0", admin, nil).Code)
		suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/orders?limit=abc", admin, nil).Code)
		suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/orders?orderStatus=lost", admin, nil).Code)
		suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/orders?dateFrom=yesterday", admin, nil).Code)
	})
}

func (suite *ServerTestSuite) TestListUserOrders() {
	suite.placeOrder("C1", "V1")
	suite.placeOrder("C1", "V2")
	suite.placeOrder("C2", "V1")

	suite.Run("should list a consumer's own orders", func() {
		rec := suite.do(http.MethodGet, "/orders/user/C1", suite.token("C1", identity.Consumer), nil)
		suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		suite.Equal(int64(2), decode[servers.OrderList](suite, rec).Total)
	})

	suite.Run("should list a vendor's own orders", func() {
		rec := suite.do(http.MethodGet, "/orders/user/V1", suite.token("V1", identity.Vendor), nil)
		suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		suite.Equal(int64(2), decode[servers.OrderList](suite, rec).Total)
	})

	suite.Run("should forbid listing someone else", func() {
		rec := suite.do(http.MethodGet, "/orders/user/C1", suite.token("C2", identity.Consumer), nil)
		suite.Equal(http.StatusForbidden, rec.Code)
	})

	suite.Run("should let an admin list any consumer", func() {
		rec := suite.do(http.MethodGet, "/orders/user/C2", suite.token("A1", identity.Admin), nil)
		suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		suite.Equal(int64(1), decode[servers.OrderList](suite, rec).Total)
	})
}

func (suite *ServerTestSuite) TestMetricsEndpoint() {
	created := suite.placeOrder("C1", "V1")
	suite.Require().Equal(http.StatusOK, suite.setStatus(created.OrderId.String(), "V1", "processing", nil).Code)

	rec := suite.do(http.MethodGet, "/metrics", "", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)

	body := rec.Body.String()
	suite.Contains(body, `http_requests_total{method="POST",route="/orders",status="201"} 1`)
	suite.Contains(body, `orders_tracking_events_total{status="pending"} 1`)
	suite.Contains(body, `orders_tracking_events_total{status="processing"} 1`)
}

func (suite *ServerTestSuite) TestSwaggerServesDocument() {
	rec := suite.do(http.MethodGet, "/swagger/doc.json", "", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.True(strings.Contains(rec.Body.String(), `"/orders/{id}/tracking"`))
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

var _ ports.IdempotencyStore = (*memoryIdempotencyStore)(nil)
