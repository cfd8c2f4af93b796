package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/model/order/ordertest"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items, orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) add(o *order.Order) {
	suite.tracker.On("TrackAggregate", o.ID(), o).Once()
	suite.Require().NoError(suite.repository.Add(context.Background(), o))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsEveryField() {
	ctx := context.Background()
	t := suite.T()

	second, err := order.NewItem("p2", "", 1, ordertest.Money(t, "0.50"))
	suite.Require().NoError(err)
	items := append(ordertest.Items(t), second)
	totals := order.Totals{
		ItemsPrice:    ordertest.Money(t, "10.50"),
		TaxPrice:      ordertest.Money(t, "1.05"),
		ShippingPrice: ordertest.Money(t, "0.00"),
		TotalPrice:    ordertest.Money(t, "11.55"),
	}
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), items, ordertest.Address(t), "PayPal", totals, ordertest.Now)
	suite.Require().NoError(err)
	suite.Require().NoError(o.MarkPaid(ordertest.PaymentResult(t), ordertest.Now.Add(time.Minute)))

	suite.add(o)

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.assertSameOrder(o, loaded)
	suite.Empty(loaded.DomainEvents())
	suite.tracker.AssertExpectations(t)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID_ReturnsConflict() {
	o := ordertest.NewOrder(suite.T(), kernel.NewUUID())
	suite.add(o)

	err := suite.repository.Add(context.Background(), o)

	suite.ErrorIs(err, errs.ErrConcurrencyConflict)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_UnconstructedOrder_IsRejected() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrieved)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateIfStatus_Transitions() {
	testCases := []struct {
		name     string
		from     order.Status
		apply    func(*order.Order) error
		expected order.Status
	}{
		{"created to paid", order.Created, func(o *order.Order) error {
			return o.MarkPaid(ordertest.PaymentResult(suite.T()), ordertest.Now)
		}, order.Paid},
		{"paid to delivered", order.Paid, func(o *order.Order) error {
			return o.MarkDelivered(ordertest.Now)
		}, order.Delivered},
		{"paid to cancelled", order.Paid, func(o *order.Order) error {
			return o.Cancel(ordertest.Now)
		}, order.Cancelled},
	}

	ctx := context.Background()
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			o := ordertest.InStatus(suite.T(), kernel.NewUUID(), tc.from)
			suite.add(o)

			suite.Require().NoError(tc.apply(o))
			suite.tracker.On("TrackAggregate", o.ID(), o).Once()
			suite.Require().NoError(suite.repository.UpdateIfStatus(ctx, o, tc.from))

			loaded, err := suite.repository.Get(ctx, o.ID())
			suite.Require().NoError(err)
			suite.Equal(tc.expected, loaded.Status())
			suite.assertSameOrder(o, loaded)
			suite.tracker.AssertExpectations(suite.T())
		})
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateIfStatus_StaleStatus_ReturnsConflict() {
	ctx := context.Background()
	o := ordertest.NewOrder(suite.T(), kernel.NewUUID())
	suite.add(o)

	stale, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(o.Cancel(ordertest.Now))
	suite.tracker.On("TrackAggregate", o.ID(), o).Once()
	suite.Require().NoError(suite.repository.UpdateIfStatus(ctx, o, order.Created))

	suite.Require().NoError(stale.MarkPaid(ordertest.PaymentResult(suite.T()), ordertest.Now))
	err = suite.repository.UpdateIfStatus(ctx, stale, order.Created)

	suite.ErrorIs(err, errs.ErrConcurrencyConflict)
	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, loaded.Status())
	suite.Nil(loaded.PaidAt())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestList_FiltersAndOrdering() {
	ctx := context.Background()
	t := suite.T()
	alice, bob := kernel.NewUUID(), kernel.NewUUID()

	placed := make([]*order.Order, 0, 3)
	for i, owner := range []kernel.UUID{alice, bob, alice} {
		o, err := order.NewOrder(kernel.NewUUID(), owner, ordertest.Items(t), ordertest.Address(t), "PayPal",
			ordertest.Totals(t), ordertest.Now.Add(time.Duration(i)*time.Minute))
		suite.Require().NoError(err)
		suite.add(o)
		placed = append(placed, o)
	}

	paid := order.Paid
	suite.Require().NoError(placed[2].MarkPaid(ordertest.PaymentResult(t), ordertest.Now.Add(time.Hour)))
	suite.tracker.On("TrackAggregate", placed[2].ID(), placed[2]).Once()
	suite.Require().NoError(suite.repository.UpdateIfStatus(ctx, placed[2], order.Created))

	testCases := []struct {
		name   string
		filter ports.OrderFilter
		want   []*order.Order
	}{
		{"all", ports.OrderFilter{}, placed},
		{"owner", ports.OrderFilter{OwnerID: &alice}, []*order.Order{placed[0], placed[2]}},
		{"status", ports.OrderFilter{Status: &paid}, []*order.Order{placed[2]}},
		{"owner and status", ports.OrderFilter{OwnerID: &bob, Status: &paid}, nil},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			got, err := suite.repository.List(ctx, tc.filter)

			suite.Require().NoError(err)
			suite.Require().Len(got, len(tc.want))
			for i := range tc.want {
				suite.Equal(tc.want[i].ID(), got[i].ID())
				suite.Len(got[i].Items(), 1)
			}
		})
	}
}

// assertSameOrder compares values rather than representations: amounts and times
// come back from the database in a different internal form.
func (suite *OrderRepositoryIntegrationTestSuite) assertSameOrder(want, got *order.Order) {
	w, g := want.Snapshot(), got.Snapshot()

	suite.Equal(w.ID, g.ID)
	suite.Equal(w.OwnerID, g.OwnerID)
	suite.Equal(w.Status, g.Status)
	suite.Equal(w.ShippingAddress, g.ShippingAddress)
	suite.Equal(w.PaymentMethod, g.PaymentMethod)
	suite.Equal(w.PaymentResult, g.PaymentResult)

	suite.Require().Len(g.Items, len(w.Items))
	for i := range w.Items {
		suite.Equal(w.Items[i].ProductRef(), g.Items[i].ProductRef())
		suite.Equal(w.Items[i].Name(), g.Items[i].Name())
		suite.Equal(w.Items[i].Quantity(), g.Items[i].Quantity())
		suite.True(w.Items[i].UnitPrice().IsEqual(g.Items[i].UnitPrice()))
	}

	suite.True(w.Totals.ItemsPrice.IsEqual(g.Totals.ItemsPrice))
	suite.True(w.Totals.TaxPrice.IsEqual(g.Totals.TaxPrice))
	suite.True(w.Totals.ShippingPrice.IsEqual(g.Totals.ShippingPrice))
	suite.True(w.Totals.TotalPrice.IsEqual(g.Totals.TotalPrice))

	suite.True(w.CreatedAt.Equal(g.CreatedAt))
	suite.True(w.UpdatedAt.Equal(g.UpdatedAt))
	suite.Equal(w.PaidAt == nil, g.PaidAt == nil)
	if w.PaidAt != nil && g.PaidAt != nil {
		suite.True(w.PaidAt.Equal(*g.PaidAt))
	}
	suite.Equal(w.DeliveredAt == nil, g.DeliveredAt == nil)
	if w.DeliveredAt != nil && g.DeliveredAt != nil {
		suite.True(w.DeliveredAt.Equal(*g.DeliveredAt))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
