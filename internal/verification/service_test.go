package verification_test

import (
	"errors"
	"testing"

	"ms-marketplace/internal/models"
	"ms-marketplace/internal/verification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) GetVerificationRecord(userID string) (*models.VerificationRecord, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VerificationRecord), args.Error(1)
}

func (m *MockDBLayer) UpsertVerificationRecord(record models.VerificationRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockDBLayer) CreateVerificationRequest(req models.VerificationRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *MockDBLayer) GetVerificationRequest(id string) (*models.VerificationRequest, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VerificationRequest), args.Error(1)
}

func (m *MockDBLayer) GetVerificationRequestsByUser(userID string) ([]models.VerificationRequest, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VerificationRequest), args.Error(1)
}

func (m *MockDBLayer) UpdateVerificationRequest(req models.VerificationRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

type MockReputationReader struct {
	mock.Mock
}

func (m *MockReputationReader) GetReputation(userID string) (*models.Reputation, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reputation), args.Error(1)
}

type MockReputationVerifier struct {
	mock.Mock
}

func (m *MockReputationVerifier) VerifyUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func newService() (*verification.VerificationService, *MockDBLayer, *MockReputationReader, *MockReputationVerifier) {
	mockDB := new(MockDBLayer)
	mockReputation := new(MockReputationReader)
	mockVerifier := new(MockReputationVerifier)
	return verification.NewVerificationService(mockDB, mockReputation, mockVerifier), mockDB, mockReputation, mockVerifier
}

// Tests start here
func TestResolveSellerVerified_RecordWinsOverLegacyFlag(t *testing.T) {
	svc, mockDB, mockReputation, _ := newService()

	// Record says unverified even though the legacy flag is still true
	mockDB.On("GetVerificationRecord", "farmer1").Return(&models.VerificationRecord{
		UserID: "farmer1",
		Status: models.VerificationUnverified,
	}, nil)

	assert.False(t, svc.ResolveSellerVerified("farmer1"))
	mockReputation.AssertNotCalled(t, "GetReputation", mock.Anything)
}

func TestResolveSellerVerified_VerifiedRecord(t *testing.T) {
	svc, mockDB, _, _ := newService()

	mockDB.On("GetVerificationRecord", "farmer1").Return(&models.VerificationRecord{
		UserID: "farmer1",
		Status: models.VerificationVerified,
	}, nil)

	assert.True(t, svc.ResolveSellerVerified("farmer1"))
}

func TestResolveSellerVerified_FallsBackToLegacyFlag(t *testing.T) {
	svc, mockDB, mockReputation, _ := newService()

	mockDB.On("GetVerificationRecord", "farmer1").Return(nil, models.ErrNotFound)
	mockReputation.On("GetReputation", "farmer1").Return(&models.Reputation{
		UserID:         "farmer1",
		VerifiedStatus: true,
	}, nil)

	assert.True(t, svc.ResolveSellerVerified("farmer1"))
}

func TestResolveSellerVerified_FailSafeFalse(t *testing.T) {
	svc, mockDB, mockReputation, _ := newService()

	// Record read fails outright: do not consult the legacy flag
	mockDB.On("GetVerificationRecord", "farmer1").Return(nil, errors.New("connection refused"))

	assert.False(t, svc.ResolveSellerVerified("farmer1"))
	mockReputation.AssertNotCalled(t, "GetReputation", mock.Anything)
}

func TestResolveSellerVerified_NoRecordNoReputation(t *testing.T) {
	svc, mockDB, mockReputation, _ := newService()

	mockDB.On("GetVerificationRecord", "farmer1").Return(nil, models.ErrNotFound)
	mockReputation.On("GetReputation", "farmer1").Return(nil, models.ErrNotFound)

	assert.False(t, svc.ResolveSellerVerified("farmer1"))
}

func TestSubmitVerificationRequest_FilesRequestAndPendingRecord(t *testing.T) {
	svc, mockDB, _, _ := newService()

	var createdRequest models.VerificationRequest
	mockDB.On("CreateVerificationRequest", mock.MatchedBy(func(r models.VerificationRequest) bool {
		createdRequest = r
		return true
	})).Return(nil)

	var upserted models.VerificationRecord
	mockDB.On("UpsertVerificationRecord", mock.MatchedBy(func(r models.VerificationRecord) bool {
		upserted = r
		return true
	})).Return(nil)

	requestID, err := svc.SubmitVerificationRequest("farmer1", models.RoleFarmer, "Ravi Kumar", "+911234567890")

	assert.NoError(t, err)
	assert.NotEmpty(t, requestID)
	assert.Equal(t, requestID, createdRequest.ID)
	assert.Equal(t, models.VerificationPending, createdRequest.Status)
	assert.Equal(t, models.VerificationPending, upserted.Status)
	assert.Equal(t, requestID, upserted.LastRequestID)
}

func TestSubmitVerificationRequest_RequiresContactFields(t *testing.T) {
	svc, _, _, _ := newService()

	_, err := svc.SubmitVerificationRequest("farmer1", models.RoleFarmer, "", "+911234567890")
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = svc.SubmitVerificationRequest("farmer1", models.RoleFarmer, "Ravi Kumar", "")
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestGetVerificationStatus_DefaultsToUnverified(t *testing.T) {
	svc, mockDB, _, _ := newService()

	mockDB.On("GetVerificationRecord", "newbie").Return(nil, models.ErrNotFound)

	record, err := svc.GetVerificationStatus("newbie")

	assert.NoError(t, err)
	assert.Equal(t, models.VerificationUnverified, record.Status)
	assert.Equal(t, "newbie", record.UserID)
}

func TestApproveVerification_PromotesRecordAndMirrorsLegacyFlag(t *testing.T) {
	svc, mockDB, _, mockVerifier := newService()

	request := &models.VerificationRequest{
		ID:     "req-1",
		UserID: "farmer1",
		Status: models.VerificationPending,
	}
	mockDB.On("GetVerificationRequest", "req-1").Return(request, nil)

	var updated models.VerificationRequest
	mockDB.On("UpdateVerificationRequest", mock.MatchedBy(func(r models.VerificationRequest) bool {
		updated = r
		return true
	})).Return(nil)

	var upserted models.VerificationRecord
	mockDB.On("UpsertVerificationRecord", mock.MatchedBy(func(r models.VerificationRecord) bool {
		upserted = r
		return true
	})).Return(nil)

	mockVerifier.On("VerifyUser", "farmer1").Return(nil)

	err := svc.ApproveVerification("req-1", "admin1")

	assert.NoError(t, err)
	assert.Equal(t, models.VerificationVerified, updated.Status)
	assert.Equal(t, "admin1", updated.ReviewedBy)
	assert.NotNil(t, updated.ReviewedAt)
	assert.Equal(t, models.VerificationVerified, upserted.Status)
	mockVerifier.AssertExpectations(t)
}

func TestApproveVerification_MissingRequest(t *testing.T) {
	svc, mockDB, _, _ := newService()

	mockDB.On("GetVerificationRequest", "missing").Return(nil, models.ErrNotFound)

	err := svc.ApproveVerification("missing", "admin1")

	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestRejectVerification_RecordDropsBackToUnverified(t *testing.T) {
	svc, mockDB, _, mockVerifier := newService()

	request := &models.VerificationRequest{
		ID:     "req-1",
		UserID: "farmer1",
		Status: models.VerificationPending,
	}
	mockDB.On("GetVerificationRequest", "req-1").Return(request, nil)

	var updated models.VerificationRequest
	mockDB.On("UpdateVerificationRequest", mock.MatchedBy(func(r models.VerificationRequest) bool {
		updated = r
		return true
	})).Return(nil)

	var upserted models.VerificationRecord
	mockDB.On("UpsertVerificationRecord", mock.MatchedBy(func(r models.VerificationRecord) bool {
		upserted = r
		return true
	})).Return(nil)

	err := svc.RejectVerification("req-1", "admin1", "documents unreadable")

	assert.NoError(t, err)
	assert.Equal(t, models.VerificationRejected, updated.Status)
	assert.Equal(t, "documents unreadable", updated.RejectionReason)
	assert.Equal(t, models.VerificationUnverified, upserted.Status)
	mockVerifier.AssertNotCalled(t, "VerifyUser", mock.Anything)
}

func TestHasEnoughSuccessfulOrders(t *testing.T) {
	svc, _, mockReputation, _ := newService()

	mockReputation.On("GetReputation", "veteran").Return(&models.Reputation{SuccessfulOrders: 5}, nil)
	mockReputation.On("GetReputation", "rookie").Return(&models.Reputation{SuccessfulOrders: 4}, nil)
	mockReputation.On("GetReputation", "ghost").Return(nil, models.ErrNotFound)

	ok, err := svc.HasEnoughSuccessfulOrders("veteran")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasEnoughSuccessfulOrders("rookie")
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.HasEnoughSuccessfulOrders("ghost")
	assert.NoError(t, err)
	assert.False(t, ok)
}
