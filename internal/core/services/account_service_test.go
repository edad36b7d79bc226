package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/fuel_station_ledger/internal/apperrors"
	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/fuel_station_ledger/internal/core/ports/services"
	"github.com/SscSPs/fuel_station_ledger/internal/core/services"
	"github.com/SscSPs/fuel_station_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockAccountRepository
	mockCache *MockLedgerCache
	service   portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.mockCache = new(MockLedgerCache)
	suite.service = services.NewAccountService(suite.mockRepo, services.WithAccountLedgerCache(suite.mockCache))
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	openedOn := time.Date(2024, 4, 1, 15, 30, 0, 0, time.UTC)
	req := dto.CreateAccountRequest{
		Name:               "  Sharma Transport  ",
		Subject:            domain.Customer,
		OpeningBalance:     decimal.RequireFromString("1500.50"),
		OpeningBalanceDate: &openedOn,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.AccountID)
	suite.Equal("Sharma Transport", created.Name)
	suite.Equal(domain.Customer, created.Subject)
	suite.True(created.OpeningBalance.Equal(decimal.RequireFromString("1500.50")))
	suite.True(created.OpeningBalanceDate.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	suite.True(created.IsActive)
	suite.Equal(creatorUserID, created.CreatedBy)
	suite.Equal(creatorUserID, created.LastUpdatedBy)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DefaultsOpeningDateToToday() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Tank 2 (Diesel)", Subject: domain.Tank}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, req, "user-1")

	suite.Require().NoError(err)
	y, m, d := time.Now().Date()
	suite.Equal(y, created.OpeningBalanceDate.Year())
	suite.Equal(m, created.OpeningBalanceDate.Month())
	suite.Equal(d, created.OpeningBalanceDate.Day())
	suite.Equal(0, created.OpeningBalanceDate.Hour())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidSubject() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Unknown", Subject: domain.LedgerSubject("VENDOR")}

	created, err := suite.service.CreateAccount(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SaveError() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Test Error", Subject: domain.Supplier}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	created, err := suite.service.CreateAccount(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_Success() {
	ctx := context.Background()
	testID := uuid.NewString()
	expectedAccount := &domain.Account{AccountID: testID, Name: "Found Account", Subject: domain.BankAccount, IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, testID).Return(expectedAccount, nil).Once()

	account, err := suite.service.GetAccountByID(ctx, testID)

	suite.Require().NoError(err)
	suite.Equal(expectedAccount, account)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	testID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, testID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, testID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_Success() {
	ctx := context.Background()
	subject := domain.Employee
	token := "bmV4dA=="
	expectedAccounts := []domain.Account{
		{AccountID: uuid.NewString(), Name: "Anil", Subject: domain.Employee, IsActive: true},
		{AccountID: uuid.NewString(), Name: "Ravi", Subject: domain.Employee, IsActive: true},
	}

	suite.mockRepo.On("ListAccounts", ctx, &subject, 2, (*string)(nil)).Return(expectedAccounts, &token, nil).Once()

	resp, err := suite.service.ListAccounts(ctx, dto.ListAccountsParams{Subject: &subject, Limit: 2})

	suite.Require().NoError(err)
	suite.Len(resp.Accounts, 2)
	suite.Equal("Anil", resp.Accounts[0].Name)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_RepoError() {
	ctx := context.Background()

	suite.mockRepo.On("ListAccounts", ctx, (*domain.LedgerSubject)(nil), 20, (*string)(nil)).Return(nil, nil, assert.AnError).Once()

	resp, err := suite.service.ListAccounts(ctx, dto.ListAccountsParams{})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_InvalidatesLedgers() {
	ctx := context.Background()
	testID := uuid.NewString()
	existing := &domain.Account{
		AccountID:      testID,
		Name:           "Old Name",
		Subject:        domain.Customer,
		OpeningBalance: decimal.NewFromInt(100),
		IsActive:       true,
	}
	newName := "New Name"
	newOpening := decimal.NewFromInt(250)

	suite.mockRepo.On("FindAccountByID", ctx, testID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == newName && a.OpeningBalance.Equal(newOpening) && a.LastUpdatedBy == "editor"
	})).Return(nil).Once()
	suite.mockCache.On("InvalidateAccount", ctx, testID).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, testID, dto.UpdateAccountRequest{
		Name:           &newName,
		OpeningBalance: &newOpening,
	}, "editor")

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoChanges() {
	ctx := context.Background()
	testID := uuid.NewString()
	existing := &domain.Account{AccountID: testID, Name: "Same", Subject: domain.Supplier, IsActive: true}
	same := "Same"

	suite.mockRepo.On("FindAccountByID", ctx, testID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, testID, dto.UpdateAccountRequest{Name: &same}, "editor")

	suite.Require().NoError(err)
	suite.Equal(existing, updated)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
	suite.mockCache.AssertNotCalled(suite.T(), "InvalidateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_EmptyName() {
	ctx := context.Background()
	testID := uuid.NewString()
	existing := &domain.Account{AccountID: testID, Name: "Named", Subject: domain.Supplier, IsActive: true}
	blank := "   "

	suite.mockRepo.On("FindAccountByID", ctx, testID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, testID, dto.UpdateAccountRequest{Name: &blank}, "editor")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
