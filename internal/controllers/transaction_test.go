package controllers_test

import (
	"net/http"

	"github.com/bufferbudget/backend/internal/controllers"
	"github.com/bufferbudget/backend/internal/reconcile"
)

const augustUncategorized = `[
	{ "id": "e1a44b8a-0000-0000-0000-000000000001", "budgetItemId": null, "date": "2026-08-12", "amount": "25.00", "type": "expense", "merchant": "Kroger", "description": "KROGER #123" },
	{ "id": "e1a44b8a-0000-0000-0000-000000000002", "budgetItemId": null, "date": "2026-08-13", "amount": "60.00", "type": "expense", "merchant": "Shell", "description": "SHELL OIL" }
]`

const augustDeleted = `[
	{ "id": "e1a44b8a-0000-0000-0000-000000000003", "budgetItemId": null, "date": "2026-08-14", "amount": "10.00", "type": "expense", "description": "Duplicate entry", "deletedAt": "2026-08-15T10:00:00Z" }
]`

func (suite *TestSuiteStandard) TestGetMonthTransactions() {
	suite.upstream.setBudget(7, 2026, augustBudget)
	suite.upstream.setUncategorized(7, 2026, augustUncategorized)

	recorder := suite.Request(http.MethodGet, "/v1/months/2026-08/transactions", nil)
	suite.Require().Equal(http.StatusOK, recorder.Code)

	var response controllers.TransactionListResponse
	DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Len(response.Uncategorized, 2)
	suite.Assert().Len(response.Categorized, 2)
	suite.Assert().Empty(response.Deleted)

	// The merchant map resolves Kroger to the groceries item
	kroger := response.Uncategorized[0]
	suite.Require().NotNil(kroger.SuggestedItemID)
	suite.Assert().Equal("c1a44b8a-0000-0000-0000-000000000002", kroger.SuggestedItemID.String())
	suite.Assert().Equal(reconcile.KindUncategorized, kroger.Kind)

	// Shell was never categorized, no suggestion
	suite.Assert().Nil(response.Uncategorized[1].SuggestedItemID)
}

func (suite *TestSuiteStandard) TestGetMonthTransactionsStatusFilter() {
	suite.upstream.setBudget(7, 2026, augustBudget)
	suite.upstream.setUncategorized(7, 2026, augustUncategorized)

	recorder := suite.Request(http.MethodGet, "/v1/months/2026-08/transactions?status=uncategorized", nil)
	suite.Require().Equal(http.StatusOK, recorder.Code)

	var response controllers.TransactionListResponse
	DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Len(response.Uncategorized, 2)
	suite.Assert().Empty(response.Categorized)
}

func (suite *TestSuiteStandard) TestGetMonthTransactionsDeleted() {
	suite.upstream.setBudget(7, 2026, augustBudget)
	suite.upstream.setDeleted(7, 2026, augustDeleted)

	recorder := suite.Request(http.MethodGet, "/v1/months/2026-08/transactions?status=deleted", nil)
	suite.Require().Equal(http.StatusOK, recorder.Code)

	var response controllers.TransactionListResponse
	DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Empty(response.Uncategorized)
	suite.Assert().Empty(response.Categorized)
	suite.Require().Len(response.Deleted, 1)
	suite.Assert().Equal("Duplicate entry", response.Deleted[0].Description)
}

func (suite *TestSuiteStandard) TestGetMonthTransactionsDeletedWithoutBudget() {
	// No budget exists for the month, the deleted view still renders and
	// never asks for one
	suite.upstream.setDeleted(7, 2026, augustDeleted)

	recorder := suite.Request(http.MethodGet, "/v1/months/2026-08/transactions?status=deleted", nil)
	suite.Require().Equal(http.StatusOK, recorder.Code)

	var response controllers.TransactionListResponse
	DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Deleted, 1)
	suite.Assert().Equal(0, suite.upstream.seen("GET /v1/budget"))
}

func (suite *TestSuiteStandard) TestGetMonthTransactionsGlobFilter() {
	suite.upstream.setBudget(7, 2026, augustBudget)
	suite.upstream.setUncategorized(7, 2026, augustUncategorized)

	recorder := suite.Request(http.MethodGet, "/v1/months/2026-08/transactions?filter=*shell*", nil)
	suite.Require().Equal(http.StatusOK, recorder.Code)

	var response controllers.TransactionListResponse
	DecodeResponse(suite.T(), &recorder, &response)

	// The glob matches description and merchant case-insensitively
	suite.Require().Len(response.Uncategorized, 1)
	suite.Assert().Equal("Shell", response.Uncategorized[0].Merchant)
	suite.Assert().Empty(response.Categorized)
}

func (suite *TestSuiteStandard) TestCreateTransaction() {
	suite.upstream.respond("POST /v1/transactions", http.StatusCreated,
		`{ "id": "e1a44b8a-0000-0000-0000-000000000009", "date": "2026-08-20", "amount": "42.00", "type": "expense" }`)

	body := `{ "date": "2026-08-20", "description": "Dog food", "amount": "42.00", "type": "expense" }`
	recorder := suite.Request(http.MethodPost, "/v1/transactions", body)

	suite.Assert().Equal(http.StatusCreated, recorder.Code)
	suite.Assert().Equal(1, suite.upstream.seen("POST /v1/transactions"))
}

func (suite *TestSuiteStandard) TestCreateTransactionEmptyBody() {
	recorder := suite.Request(http.MethodPost, "/v1/transactions", "")
	suite.Assert().Equal(http.StatusBadRequest, recorder.Code)
}

func (suite *TestSuiteStandard) TestUpdateTransactionInvalidatesCache() {
	suite.upstream.setBudget(7, 2026, augustBudget)
	suite.upstream.respond("PATCH /v1/transactions/e1a44b8a-0000-0000-0000-000000000001", http.StatusOK,
		`{ "id": "e1a44b8a-0000-0000-0000-000000000001", "date": "2026-08-12", "amount": "25.00", "type": "expense" }`)

	// Warm the cache
	suite.Require().Equal(http.StatusOK, suite.Request(http.MethodGet, "/v1/months/2026-08", nil).Code)

	body := `{ "budgetItemId": "c1a44b8a-0000-0000-0000-000000000002", "date": "2026-08-12", "amount": "25.00", "type": "expense" }`
	recorder := suite.Request(http.MethodPatch, "/v1/transactions/e1a44b8a-0000-0000-0000-000000000001", body)
	suite.Require().Equal(http.StatusOK, recorder.Code)

	suite.Request(http.MethodGet, "/v1/months/2026-08", nil)
	suite.Assert().Equal(2, suite.upstream.seen("GET /v1/budget"))
}

func (suite *TestSuiteStandard) TestUpdateTransactionInvalidID() {
	recorder := suite.Request(http.MethodPatch, "/v1/transactions/not-a-uuid", `{}`)
	suite.Assert().Equal(http.StatusBadRequest, recorder.Code)
}

func (suite *TestSuiteStandard) TestDeleteTransaction() {
	suite.upstream.respond("DELETE /v1/transactions/e1a44b8a-0000-0000-0000-000000000001", http.StatusNoContent, "")

	recorder := suite.Request(http.MethodDelete, "/v1/transactions/e1a44b8a-0000-0000-0000-000000000001", nil)
	suite.Assert().Equal(http.StatusNoContent, recorder.Code)
}

func (suite *TestSuiteStandard) TestRestoreTransaction() {
	suite.upstream.respond("POST /v1/transactions/e1a44b8a-0000-0000-0000-000000000003/restore", http.StatusOK,
		`{ "id": "e1a44b8a-0000-0000-0000-000000000003", "date": "2026-08-14", "amount": "10.00", "type": "expense" }`)

	recorder := suite.Request(http.MethodPost, "/v1/transactions/e1a44b8a-0000-0000-0000-000000000003/restore", nil)
	suite.Assert().Equal(http.StatusOK, recorder.Code)
}

func (suite *TestSuiteStandard) TestDeleteTransactionUpstreamNotFound() {
	recorder := suite.Request(http.MethodDelete, "/v1/transactions/e1a44b8a-0000-0000-0000-000000000099", nil)
	suite.Assert().Equal(http.StatusNotFound, recorder.Code)
}
