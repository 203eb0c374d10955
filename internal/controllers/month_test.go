package controllers_test

import (
	"net/http"

	"github.com/bufferbudget/backend/internal/budget"
	"github.com/bufferbudget/backend/internal/insights"
)

const augustBudget = `{
	"id": "10e2a9e5-8f38-4771-a7c6-e78dd4ef4c15",
	"month": 7,
	"year": 2026,
	"buffer": "250.00",
	"createdAt": "2026-08-01T09:00:00Z",
	"categories": {
		"income": {
			"id": "b7a44b8a-0000-0000-0000-000000000001",
			"name": "Income",
			"items": [
				{
					"id": "c1a44b8a-0000-0000-0000-000000000001",
					"name": "Paycheck",
					"planned": "3000.00",
					"transactions": [
						{ "id": "d1a44b8a-0000-0000-0000-000000000001", "budgetItemId": "c1a44b8a-0000-0000-0000-000000000001", "date": "2026-08-01", "amount": "2950.00", "type": "income" }
					],
					"splitTransactions": []
				}
			]
		},
		"food": {
			"id": "b7a44b8a-0000-0000-0000-000000000002",
			"name": "Food",
			"items": [
				{
					"id": "c1a44b8a-0000-0000-0000-000000000002",
					"name": "Groceries",
					"planned": "400.00",
					"transactions": [
						{ "id": "d1a44b8a-0000-0000-0000-000000000002", "budgetItemId": "c1a44b8a-0000-0000-0000-000000000002", "date": "2026-08-10", "amount": "120.00", "type": "expense", "merchant": "Kroger" }
					],
					"splitTransactions": []
				}
			]
		}
	}
}`

func (suite *TestSuiteStandard) TestGetMonth() {
	suite.upstream.setBudget(7, 2026, augustBudget)

	recorder := suite.Request(http.MethodGet, "/v1/months/2026-08", nil)
	suite.Require().Equal(http.StatusOK, recorder.Code)

	var aggregated budget.Budget
	DecodeResponse(suite.T(), &recorder, &aggregated)

	suite.Assert().Equal("250.00", aggregated.Buffer.String())
	suite.Assert().Equal("3000.00", aggregated.IncomePlanned.String())
	suite.Assert().Equal("2950.00", aggregated.IncomeActual.String())
	suite.Assert().Equal("120.00", aggregated.ExpenseActual.String())

	suite.Require().Len(aggregated.Categories, 2)
	// Income sorts first
	suite.Assert().Equal("income", aggregated.Categories[0].Type)

	food := aggregated.Categories[1]
	suite.Require().Len(food.Items, 1)
	suite.Assert().Equal("280.00", food.Items[0].Remaining.String())
	suite.Assert().False(food.Items[0].IsOverBudget)
}

func (suite *TestSuiteStandard) TestGetMonthInvalid() {
	recorder := suite.Request(http.MethodGet, "/v1/months/August", nil)
	suite.Assert().Equal(http.StatusBadRequest, recorder.Code)
}

func (suite *TestSuiteStandard) TestGetMonthNotFound() {
	recorder := suite.Request(http.MethodGet, "/v1/months/2026-08", nil)
	suite.Assert().Equal(http.StatusNotFound, recorder.Code)
}

func (suite *TestSuiteStandard) TestGetMonthUpstreamError() {
	suite.upstream.respond("GET /v1/budget", http.StatusInternalServerError, `{"error": "boom"}`)

	recorder := suite.Request(http.MethodGet, "/v1/months/2026-08", nil)
	suite.Assert().Equal(http.StatusBadGateway, recorder.Code)
}

func (suite *TestSuiteStandard) TestGetMonthCached() {
	suite.upstream.setBudget(7, 2026, augustBudget)

	first := suite.Request(http.MethodGet, "/v1/months/2026-08", nil)
	suite.Require().Equal(http.StatusOK, first.Code)

	second := suite.Request(http.MethodGet, "/v1/months/2026-08", nil)
	suite.Require().Equal(http.StatusOK, second.Code)

	// The second read is served from the snapshot cache
	suite.Assert().Equal(1, suite.upstream.seen("GET /v1/budget"))
	suite.Assert().JSONEq(first.Body.String(), second.Body.String())
}

func (suite *TestSuiteStandard) TestGetMonthInsights() {
	suite.upstream.setBudget(7, 2026, augustBudget)

	recorder := suite.Request(http.MethodGet, "/v1/months/2026-08/insights", nil)
	suite.Require().Equal(http.StatusOK, recorder.Code)

	var result insights.Result
	DecodeResponse(suite.T(), &recorder, &result)

	suite.Assert().Len(result.Daily, 31)
	suite.Assert().NotNil(result.SavingsRate)
	// July is not registered upstream, the report renders without trends
	suite.Assert().Nil(result.Trends.IncomeActual)
}

func (suite *TestSuiteStandard) TestUpdateMonthBuffer() {
	suite.upstream.setBudget(7, 2026, augustBudget)
	suite.upstream.respond("PATCH /v1/budget/buffer", http.StatusOK, `{"month": 7, "year": 2026, "buffer": "300.00", "categories": {}}`)

	// Warm the cache first
	suite.Require().Equal(http.StatusOK, suite.Request(http.MethodGet, "/v1/months/2026-08", nil).Code)

	recorder := suite.Request(http.MethodPatch, "/v1/months/2026-08/buffer", `{"buffer": "300.00"}`)
	suite.Require().Equal(http.StatusOK, recorder.Code)

	// The mutation invalidated the month, the next read re-fetches
	suite.Request(http.MethodGet, "/v1/months/2026-08", nil)
	suite.Assert().Equal(2, suite.upstream.seen("GET /v1/budget"))
}

func (suite *TestSuiteStandard) TestOptionsMonth() {
	recorder := suite.Request(http.MethodOptions, "/v1/months/2026-08", nil)

	suite.Assert().Equal(http.StatusNoContent, recorder.Code)
	suite.Assert().Equal("GET", recorder.Header().Get("allow"))
}
