package order_test

import (
	"errors"
	"testing"

	"ms-marketplace/internal/models"
	"ms-marketplace/internal/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock implementations
type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) CreateOrder(order models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockDBLayer) GetOrderByID(id string) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockDBLayer) GetOrdersByBuyer(buyerID string) ([]models.Order, error) {
	args := m.Called(buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockDBLayer) GetOrdersBySeller(sellerID string) ([]models.Order, error) {
	args := m.Called(sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

// UpdateOrderCAS applies the transform to the stubbed order so tests observe
// the same read-transform-write flow the real store performs.
func (m *MockDBLayer) UpdateOrderCAS(id string, transform func(*models.Order) error) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	o := args.Get(0).(*models.Order)
	if err := transform(o); err != nil {
		return nil, err
	}
	return o, args.Error(1)
}

type MockReputationUpdater struct {
	mock.Mock
}

func (m *MockReputationUpdater) IncrementSuccessfulOrders(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockReputationUpdater) AddRating(req models.RatingRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

type MockKafkaProducer struct {
	mock.Mock
}

func (m *MockKafkaProducer) PublishOrderCreated(order models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockKafkaProducer) PublishOrderStatusChanged(order models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func newServiceWithMocks() (*order.OrderService, *MockDBLayer, *MockReputationUpdater, *MockKafkaProducer) {
	mockDB := new(MockDBLayer)
	mockReputation := new(MockReputationUpdater)
	mockKafka := new(MockKafkaProducer)
	return order.NewOrderService(mockDB, mockReputation, mockKafka), mockDB, mockReputation, mockKafka
}

func sampleItems() []models.OrderItem {
	return []models.OrderItem{
		{ProductID: "prod-1", Quantity: 2, UnitPrice: 50, TotalPrice: 100},
		{ProductID: "prod-2", Quantity: 1, UnitPrice: 30, TotalPrice: 30},
	}
}

// Tests start here
func TestCreateDirectOrder_RejectsSelfTrade(t *testing.T) {
	svc, _, _, _ := newServiceWithMocks()

	_, err := svc.CreateDirectOrder(models.DirectOrderRequest{
		BuyerID:        "user123",
		SellerID:       "user123",
		Items:          sampleItems(),
		DeliveryOption: models.DeliverySelfPickup,
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrSelfTrade))
}

func TestCreateDirectOrder_RejectsEmptyItems(t *testing.T) {
	svc, _, _, _ := newServiceWithMocks()

	_, err := svc.CreateDirectOrder(models.DirectOrderRequest{
		BuyerID:        "buyer1",
		SellerID:       "farmer1",
		Items:          nil,
		DeliveryOption: models.DeliverySelfPickup,
	})

	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestCreateDirectOrder_RejectsDeliveryWithoutAddress(t *testing.T) {
	svc, _, _, _ := newServiceWithMocks()

	_, err := svc.CreateDirectOrder(models.DirectOrderRequest{
		BuyerID:        "buyer1",
		SellerID:       "farmer1",
		Items:          sampleItems(),
		DeliveryOption: models.DeliveryHome,
	})

	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestCreateDirectOrder_ComputesTotalAndPaymentStatus(t *testing.T) {
	svc, mockDB, _, mockKafka := newServiceWithMocks()

	var created models.Order
	mockDB.On("CreateOrder", mock.MatchedBy(func(o models.Order) bool {
		created = o
		return true
	})).Return(nil)
	mockKafka.On("PublishOrderCreated", mock.Anything).Return(nil)

	orderID, err := svc.CreateDirectOrder(models.DirectOrderRequest{
		BuyerID:        "buyer1",
		SellerID:       "farmer1",
		Items:          sampleItems(),
		PaymentMethod:  models.PaymentCashOnDelivery,
		DeliveryOption: models.DeliverySelfPickup,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, orderID)
	assert.Equal(t, 130.0, created.TotalAmount)
	assert.Equal(t, models.OrderPending, created.Status)
	assert.Equal(t, models.PaymentPending, created.PaymentStatus)
	assert.True(t, created.IsDirectOrder)
	assert.Equal(t, 0.0, created.CommissionPercentage)

	mockDB.AssertExpectations(t)
	mockKafka.AssertExpectations(t)
}

func TestCreateDirectOrder_PrepaidIsSettledImmediately(t *testing.T) {
	svc, mockDB, _, mockKafka := newServiceWithMocks()

	var created models.Order
	mockDB.On("CreateOrder", mock.MatchedBy(func(o models.Order) bool {
		created = o
		return true
	})).Return(nil)
	mockKafka.On("PublishOrderCreated", mock.Anything).Return(nil)

	_, err := svc.CreateDirectOrder(models.DirectOrderRequest{
		BuyerID:        "buyer1",
		SellerID:       "farmer1",
		Items:          sampleItems(),
		PaymentMethod:  models.PaymentUPI,
		DeliveryOption: models.DeliverySelfPickup,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, created.PaymentStatus)
}

func TestUpdateOrderStatus_RejectsUnknownStatus(t *testing.T) {
	svc, _, _, _ := newServiceWithMocks()

	err := svc.UpdateOrderStatus("order-1", "teleported")

	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestUpdateOrderStatus_DeliveredBumpsSellerCounter(t *testing.T) {
	svc, mockDB, mockReputation, mockKafka := newServiceWithMocks()

	stored := &models.Order{OrderID: "order-1", SellerID: "farmer1", Status: models.OrderPending}
	mockDB.On("UpdateOrderCAS", "order-1").Return(stored, nil)
	mockReputation.On("IncrementSuccessfulOrders", "farmer1").Return(nil)
	mockKafka.On("PublishOrderStatusChanged", mock.Anything).Return(nil)

	err := svc.UpdateOrderStatus("order-1", models.OrderDelivered)

	assert.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, stored.Status)
	assert.NotNil(t, stored.DeliveredAt)
	mockReputation.AssertNumberOfCalls(t, "IncrementSuccessfulOrders", 1)
}

func TestUpdateOrderStatus_ReDeliveringDoesNotBumpCounterAgain(t *testing.T) {
	svc, mockDB, mockReputation, mockKafka := newServiceWithMocks()

	stored := &models.Order{OrderID: "order-1", SellerID: "farmer1", Status: models.OrderDelivered}
	mockDB.On("UpdateOrderCAS", "order-1").Return(stored, nil)
	mockKafka.On("PublishOrderStatusChanged", mock.Anything).Return(nil)

	err := svc.UpdateOrderStatus("order-1", models.OrderDelivered)

	assert.NoError(t, err)
	mockReputation.AssertNotCalled(t, "IncrementSuccessfulOrders", mock.Anything)
}

func TestUpdateOrderStatus_CancelStampsTimestamp(t *testing.T) {
	svc, mockDB, mockReputation, mockKafka := newServiceWithMocks()

	stored := &models.Order{OrderID: "order-1", SellerID: "farmer1", Status: models.OrderPending}
	mockDB.On("UpdateOrderCAS", "order-1").Return(stored, nil)
	mockKafka.On("PublishOrderStatusChanged", mock.Anything).Return(nil)

	err := svc.UpdateOrderStatus("order-1", models.OrderCancelled)

	assert.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, stored.Status)
	assert.NotNil(t, stored.CancelledAt)
	assert.Nil(t, stored.DeliveredAt)
	mockReputation.AssertNotCalled(t, "IncrementSuccessfulOrders", mock.Anything)
}

func TestUpdateOrderStatus_NotFoundPassesThrough(t *testing.T) {
	svc, mockDB, _, _ := newServiceWithMocks()

	mockDB.On("UpdateOrderCAS", "missing").Return(nil, models.ErrNotFound)

	err := svc.UpdateOrderStatus("missing", models.OrderConfirmed)

	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestUpdateOrderStatus_CounterFailureDoesNotFailDelivery(t *testing.T) {
	svc, mockDB, mockReputation, mockKafka := newServiceWithMocks()

	stored := &models.Order{OrderID: "order-1", SellerID: "farmer1", Status: models.OrderOutForDelivery}
	mockDB.On("UpdateOrderCAS", "order-1").Return(stored, nil)
	mockReputation.On("IncrementSuccessfulOrders", "farmer1").Return(errors.New("reputation store down"))
	mockKafka.On("PublishOrderStatusChanged", mock.Anything).Return(nil)

	err := svc.UpdateOrderStatus("order-1", models.OrderDelivered)

	assert.NoError(t, err)
}

func TestCompleteOrder_RecordsMutualRatings(t *testing.T) {
	svc, mockDB, mockReputation, mockKafka := newServiceWithMocks()

	stored := &models.Order{OrderID: "order-1", BuyerID: "buyer1", SellerID: "farmer1", Status: models.OrderOutForDelivery}
	mockDB.On("GetOrderByID", "order-1").Return(stored, nil)
	mockDB.On("UpdateOrderCAS", "order-1").Return(stored, nil)
	mockReputation.On("IncrementSuccessfulOrders", "farmer1").Return(nil)
	mockKafka.On("PublishOrderStatusChanged", mock.Anything).Return(nil)

	mockReputation.On("AddRating", models.RatingRequest{
		RaterID: "buyer1", TargetUserID: "farmer1", OrderID: "order-1", Rating: 5, Comment: "fresh produce",
	}).Return(nil)
	mockReputation.On("AddRating", models.RatingRequest{
		RaterID: "farmer1", TargetUserID: "buyer1", OrderID: "order-1", Rating: 4,
	}).Return(nil)

	err := svc.CompleteOrder("order-1",
		&order.RatingInput{Rating: 5, Comment: "fresh produce"},
		&order.RatingInput{Rating: 4})

	assert.NoError(t, err)
	mockReputation.AssertExpectations(t)
}

func TestCompleteOrder_RatingsAreOptional(t *testing.T) {
	svc, mockDB, mockReputation, mockKafka := newServiceWithMocks()

	stored := &models.Order{OrderID: "order-1", BuyerID: "buyer1", SellerID: "farmer1", Status: models.OrderConfirmed}
	mockDB.On("GetOrderByID", "order-1").Return(stored, nil)
	mockDB.On("UpdateOrderCAS", "order-1").Return(stored, nil)
	mockReputation.On("IncrementSuccessfulOrders", "farmer1").Return(nil)
	mockKafka.On("PublishOrderStatusChanged", mock.Anything).Return(nil)

	err := svc.CompleteOrder("order-1", nil, nil)

	assert.NoError(t, err)
	mockReputation.AssertNotCalled(t, "AddRating", mock.Anything)
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, order.IsTerminal(models.OrderDelivered))
	assert.True(t, order.IsTerminal(models.OrderCancelled))
	assert.True(t, order.IsTerminal(models.OrderReturned))
	assert.False(t, order.IsTerminal(models.OrderPending))
	assert.False(t, order.IsTerminal(models.OrderOutForDelivery))
}
