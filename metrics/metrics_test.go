package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	m := New()
	m.IncMint("submitted")
	m.IncMint("submitted")
	m.IncMint("reverted")
	m.IncConnect("ok")
	m.IncChainCheck("switched")
	m.IncMintEvent()
	m.SetActiveSubscriptions(1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Mints("submitted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Mints("reverted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Connects("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChainChecks("switched")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MintEvents()))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveSubscriptions()))
}

func TestNilRegistry(t *testing.T) {
	var m *Registry
	assert.NotPanics(t, func() {
		m.IncMint("failed")
		m.IncConnect("rejected")
		m.IncChainCheck("failed")
		m.IncMintEvent()
		m.SetActiveSubscriptions(0)
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.IncMint("mined")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `nftmint_mints_total{status="mined"} 1`))
}
