package controllers_test

import (
	"net/http"

	"github.com/bufferbudget/backend/internal/controllers"
)

func (suite *TestSuiteStandard) TestValidateSplitUnbalanced() {
	body := `{
		"parentAmount": "150.00",
		"shares": [
			{ "budgetItemId": "c1a44b8a-0000-0000-0000-000000000001", "amount": "98.00" },
			{ "budgetItemId": "c1a44b8a-0000-0000-0000-000000000002", "amount": "37.00" }
		]
	}`

	recorder := suite.Request(http.MethodPost, "/v1/splits/validate", body)
	suite.Require().Equal(http.StatusOK, recorder.Code)

	var response controllers.SplitValidateResponse
	DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Equal("135.00", response.Total.String())
	suite.Assert().Equal("15.00", response.Remaining.String())
	suite.Assert().False(response.Balanced)
	suite.Assert().False(response.Submittable)
}

func (suite *TestSuiteStandard) TestValidateSplitBalanced() {
	body := `{
		"parentAmount": "150.00",
		"shares": [
			{ "budgetItemId": "c1a44b8a-0000-0000-0000-000000000001", "amount": "98.00" },
			{ "budgetItemId": "c1a44b8a-0000-0000-0000-000000000002", "amount": "37.00" },
			{ "budgetItemId": "c1a44b8a-0000-0000-0000-000000000003", "amount": "15.00" }
		]
	}`

	recorder := suite.Request(http.MethodPost, "/v1/splits/validate", body)
	suite.Require().Equal(http.StatusOK, recorder.Code)

	var response controllers.SplitValidateResponse
	DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().True(response.Balanced)
	suite.Assert().True(response.Submittable)
	suite.Assert().Nil(response.AutoBalanced)
}

func (suite *TestSuiteStandard) TestValidateSplitAutoBalance() {
	body := `{
		"parentAmount": "150.00",
		"shares": [
			{ "budgetItemId": "c1a44b8a-0000-0000-0000-000000000001", "amount": "98.00" },
			{ "budgetItemId": "c1a44b8a-0000-0000-0000-000000000002", "amount": "37.00" }
		],
		"autoBalance": 1
	}`

	recorder := suite.Request(http.MethodPost, "/v1/splits/validate", body)
	suite.Require().Equal(http.StatusOK, recorder.Code)

	var response controllers.SplitValidateResponse
	DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.AutoBalanced)
	suite.Assert().Equal("52.00", response.AutoBalanced.String())
}

func (suite *TestSuiteStandard) TestValidateSplitAutoBalanceOutOfRange() {
	body := `{ "parentAmount": "150.00", "shares": [], "autoBalance": 3 }`

	recorder := suite.Request(http.MethodPost, "/v1/splits/validate", body)
	suite.Assert().Equal(http.StatusBadRequest, recorder.Code)
}

func (suite *TestSuiteStandard) TestCreateSplits() {
	suite.upstream.respond("GET /v1/transactions/e1a44b8a-0000-0000-0000-000000000001", http.StatusOK,
		`{ "id": "e1a44b8a-0000-0000-0000-000000000001", "date": "2026-08-12", "amount": "100.00", "type": "expense" }`)
	suite.upstream.respond("POST /v1/transactions/e1a44b8a-0000-0000-0000-000000000001/splits", http.StatusCreated,
		`{ "id": "e1a44b8a-0000-0000-0000-000000000001", "date": "2026-08-12", "amount": "100.00", "type": "expense", "splits": [
			{ "id": "f1a44b8a-0000-0000-0000-000000000001", "parentTransactionId": "e1a44b8a-0000-0000-0000-000000000001", "budgetItemId": "c1a44b8a-0000-0000-0000-000000000001", "amount": "60.00" },
			{ "id": "f1a44b8a-0000-0000-0000-000000000002", "parentTransactionId": "e1a44b8a-0000-0000-0000-000000000001", "budgetItemId": "c1a44b8a-0000-0000-0000-000000000002", "amount": "40.00" }
		] }`)

	body := `[
		{ "budgetItemId": "c1a44b8a-0000-0000-0000-000000000001", "amount": "60.00" },
		{ "budgetItemId": "c1a44b8a-0000-0000-0000-000000000002", "amount": "40.00" }
	]`

	recorder := suite.Request(http.MethodPost, "/v1/transactions/e1a44b8a-0000-0000-0000-000000000001/splits", body)
	suite.Assert().Equal(http.StatusCreated, recorder.Code)
	suite.Assert().Equal(1, suite.upstream.seen("POST /v1/transactions/e1a44b8a-0000-0000-0000-000000000001/splits"))
}

func (suite *TestSuiteStandard) TestCreateSplitsUnbalanced() {
	suite.upstream.respond("GET /v1/transactions/e1a44b8a-0000-0000-0000-000000000001", http.StatusOK,
		`{ "id": "e1a44b8a-0000-0000-0000-000000000001", "date": "2026-08-12", "amount": "100.00", "type": "expense" }`)

	body := `[
		{ "budgetItemId": "c1a44b8a-0000-0000-0000-000000000001", "amount": "60.00" },
		{ "budgetItemId": "c1a44b8a-0000-0000-0000-000000000002", "amount": "25.00" }
	]`

	recorder := suite.Request(http.MethodPost, "/v1/transactions/e1a44b8a-0000-0000-0000-000000000001/splits", body)

	// The unbalanced split never reaches the upstream API
	suite.Assert().Equal(http.StatusBadRequest, recorder.Code)
	suite.Assert().Equal(0, suite.upstream.seen("POST /v1/transactions/e1a44b8a-0000-0000-0000-000000000001/splits"))
}

func (suite *TestSuiteStandard) TestCreateSplitsParentNotFound() {
	body := `[
		{ "budgetItemId": "c1a44b8a-0000-0000-0000-000000000001", "amount": "60.00" },
		{ "budgetItemId": "c1a44b8a-0000-0000-0000-000000000002", "amount": "40.00" }
	]`

	recorder := suite.Request(http.MethodPost, "/v1/transactions/e1a44b8a-0000-0000-0000-000000000099/splits", body)
	suite.Assert().Equal(http.StatusNotFound, recorder.Code)
}

func (suite *TestSuiteStandard) TestDeleteSplit() {
	suite.upstream.respond("DELETE /v1/splits/f1a44b8a-0000-0000-0000-000000000001", http.StatusNoContent, "")

	recorder := suite.Request(http.MethodDelete, "/v1/splits/f1a44b8a-0000-0000-0000-000000000001", nil)
	suite.Assert().Equal(http.StatusNoContent, recorder.Code)
}

func (suite *TestSuiteStandard) TestDeleteSplitInvalidID() {
	recorder := suite.Request(http.MethodDelete, "/v1/splits/not-a-uuid", nil)
	suite.Assert().Equal(http.StatusBadRequest, recorder.Code)
}

func (suite *TestSuiteStandard) TestOptionsSplitValidate() {
	recorder := suite.Request(http.MethodOptions, "/v1/splits/validate", nil)

	suite.Assert().Equal(http.StatusNoContent, recorder.Code)
	suite.Assert().Equal("POST", recorder.Header().Get("allow"))
}
