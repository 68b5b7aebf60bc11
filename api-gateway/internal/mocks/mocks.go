package mocks

import (
	"net/http"

	"harveys-cafe/api-gateway/internal/gateway"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type HTTPClient struct {
	mock.Mock
}

func NewHTTPClient(t testingT) *HTTPClient {
	m := &HTTPClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	ret := m.Called(req)
	var r0 *http.Response
	if v := ret.Get(0); v != nil {
		r0 = v.(*http.Response)
	}
	return r0, ret.Error(1)
}

var _ gateway.HTTPClient = (*HTTPClient)(nil)
