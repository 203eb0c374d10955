package controllers_test

import (
	"net/http"
)

func (suite *TestSuiteStandard) TestGetHealthz() {
	recorder := suite.Request(http.MethodGet, "/healthz", nil)
	suite.Assert().Equal(http.StatusNoContent, recorder.Code)
}

func (suite *TestSuiteStandard) TestGetHealthzCacheDown() {
	_ = suite.cache.Close()

	recorder := suite.Request(http.MethodGet, "/healthz", nil)
	suite.Assert().Equal(http.StatusInternalServerError, recorder.Code)
}

func (suite *TestSuiteStandard) TestOptionsHealthz() {
	recorder := suite.Request(http.MethodOptions, "/healthz", nil)

	suite.Assert().Equal(http.StatusNoContent, recorder.Code)
	suite.Assert().Equal("GET", recorder.Header().Get("allow"))
}
