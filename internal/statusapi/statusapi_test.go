package statusapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinstaky/logicroute/internal/routing"
)

func Test_Server_healthz(t *testing.T) {
	s := New(routing.NewPlan())
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func Test_Server_plan_reflectsCompiledRoutes(t *testing.T) {
	c := routing.NewCompiler()
	require.True(t, c.Parse("A0 = B0 | C0").Ok())

	s := New(c.Plan)
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/plan", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var view planView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, 1, view.OrGates)
	require.Len(t, view.FrontOutputs, 1)
}

func Test_Server_frontPorts_marksInputsAndOutputs(t *testing.T) {
	c := routing.NewCompiler()
	require.True(t, c.Parse("A0 = B0 | C0").Ok())

	s := New(c.Plan)
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/front-ports", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var ports []frontPortView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ports))
	require.Len(t, ports, routing.FrontIoNum)
	assert.True(t, ports[routing.FrontIoGroupSize].Input)
	assert.Equal(t, "B0", ports[routing.FrontIoGroupSize].Name)
}
