package controllers_test

import (
	"net/http"
)

func (suite *TestSuiteStandard) TestCreateItem() {
	suite.upstream.respond("POST /v1/items", http.StatusCreated,
		`{ "id": "c1a44b8a-0000-0000-0000-000000000009", "name": "Dog", "planned": "50.00" }`)

	body := `{ "categoryId": "b7a44b8a-0000-0000-0000-000000000002", "name": "Dog", "planned": "50.00", "order": 2 }`
	recorder := suite.Request(http.MethodPost, "/v1/items", body)

	suite.Assert().Equal(http.StatusCreated, recorder.Code)
	suite.Assert().Equal(1, suite.upstream.seen("POST /v1/items"))
}

func (suite *TestSuiteStandard) TestUpdateItemInvalidatesCache() {
	suite.upstream.setBudget(7, 2026, augustBudget)
	suite.upstream.respond("PATCH /v1/items/c1a44b8a-0000-0000-0000-000000000002", http.StatusOK,
		`{ "id": "c1a44b8a-0000-0000-0000-000000000002", "name": "Groceries", "planned": "450.00" }`)

	// Warm the cache
	suite.Require().Equal(http.StatusOK, suite.Request(http.MethodGet, "/v1/months/2026-08", nil).Code)

	body := `{ "categoryId": "b7a44b8a-0000-0000-0000-000000000002", "name": "Groceries", "planned": "450.00", "order": 0 }`
	recorder := suite.Request(http.MethodPatch, "/v1/items/c1a44b8a-0000-0000-0000-000000000002", body)
	suite.Require().Equal(http.StatusOK, recorder.Code)

	suite.Request(http.MethodGet, "/v1/months/2026-08", nil)
	suite.Assert().Equal(2, suite.upstream.seen("GET /v1/budget"))
}

func (suite *TestSuiteStandard) TestDeleteItem() {
	suite.upstream.respond("DELETE /v1/items/c1a44b8a-0000-0000-0000-000000000002", http.StatusNoContent, "")

	recorder := suite.Request(http.MethodDelete, "/v1/items/c1a44b8a-0000-0000-0000-000000000002", nil)
	suite.Assert().Equal(http.StatusNoContent, recorder.Code)
}

func (suite *TestSuiteStandard) TestDeleteItemInvalidID() {
	recorder := suite.Request(http.MethodDelete, "/v1/items/not-a-uuid", nil)
	suite.Assert().Equal(http.StatusBadRequest, recorder.Code)
}

func (suite *TestSuiteStandard) TestOptionsItemDetail() {
	recorder := suite.Request(http.MethodOptions, "/v1/items/c1a44b8a-0000-0000-0000-000000000002", nil)

	suite.Assert().Equal(http.StatusNoContent, recorder.Code)
	suite.Assert().Equal("PATCH, DELETE", recorder.Header().Get("allow"))
}
