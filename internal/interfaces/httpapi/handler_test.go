package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fpl-superset/internal/domain/identity"
	"github.com/riskibarqy/fpl-superset/internal/domain/superset"
	supersetmock "github.com/riskibarqy/fpl-superset/internal/mocks/domain/superset"
	"github.com/riskibarqy/fpl-superset/internal/platform/logging"
	"github.com/riskibarqy/fpl-superset/internal/usecase"
)

const testSeason = "2020-21"

func expectSingleMatch(src *supersetmock.Source) {
	kickoff := time.Date(2020, time.September, 12, 11, 30, 0, 0, time.UTC)
	src.On("LoadIdentityMap", mock.Anything, testSeason).
		Return(identity.NewMap([]identity.Link{{SourceID: 318, CanonicalID: 4}}), nil).Once()
	src.On("LoadPlayerList", mock.Anything, testSeason).Return(identity.PlayerList{}, nil).Once()
	src.On("LoadPrimary", mock.Anything, testSeason, mock.Anything).Return([]superset.PrimaryRecord{{
		PlayerID:   4,
		PlayerName: "Pierre-Emerick Aubameyang",
		FixtureID:  2,
		Round:      1,
		KickoffAt:  kickoff,
		WasHome:    false,
		Stats:      superset.PrimaryStats{Minutes: 90, TotalPoints: 8, Value: 120, GoalsScored: 1},
	}}, nil).Once()
	src.On("LoadSecondary", mock.Anything, testSeason).Return([]superset.SecondaryRecord{{
		SourceID: 318,
		MatchID:  14090,
		Date:     time.Date(2020, time.September, 12, 0, 0, 0, 0, time.UTC),
		HomeTeam: "Fulham",
		AwayTeam: "Arsenal",
		Metrics:  superset.AdvancedMetrics{XG: 0.72, XA: 0.1, Time: 90},
	}}, nil).Once()
	src.On("LoadMergedGameweeks", mock.Anything, testSeason).Return([]superset.FixtureContext{{
		PlayerID:  4,
		FixtureID: 2,
		Position:  "FWD",
	}}, nil).Once()
}

func newTestRouter(t *testing.T, src superset.Source) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	supersets := usecase.NewSupersetService(src, usecase.SupersetConfig{
		Seasons:      []string{"2019-20", testSeason},
		CacheEnabled: true,
		CacheTTL:     time.Minute,
	}, logger)
	handler := NewHandler(
		supersets,
		usecase.NewQueryService(supersets),
		usecase.NewModelService(supersets, logger),
		usecase.NewHyperparameterService(logger),
		logger,
	)
	return NewRouter(handler, logger, true, []string{"*"})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestHandler_ListSeasons(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, supersetmock.NewSource(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/seasons", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].([]any)
	require.Len(t, data, 2)
	latest := data[1].(map[string]any)
	require.Equal(t, testSeason, latest["season"])
	require.Equal(t, true, latest["latest"])
}

func TestHandler_Scatter(t *testing.T) {
	t.Parallel()

	src := supersetmock.NewSource(t)
	expectSingleMatch(src)
	router := newTestRouter(t, src)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/seasons/2020-21/scatter?fields=xG,total_points&team=Arsenal", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	require.EqualValues(t, 1, data["round"])
	points := data["points"].([]any)
	require.Len(t, points, 1)

	point := points[0].(map[string]any)
	require.Equal(t, "Arsenal", point["team"])
	require.Equal(t, "Fulham", point["opposition_team"])
	values := point["values"].(map[string]any)
	require.InDelta(t, 0.72, values["xG"], 1e-9)
	require.InDelta(t, 8, values["total_points"], 1e-9)
}

func TestHandler_Scatter_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
	}{
		{name: "single field", query: "fields=xG"},
		{name: "unknown field", query: "fields=xG,shoe_size"},
		{name: "bad round", query: "fields=xG,xA&round=last"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := supersetmock.NewSource(t)
			src.On("LoadIdentityMap", mock.Anything, testSeason).Return(identity.Map{}, nil).Maybe()
			src.On("LoadPlayerList", mock.Anything, testSeason).Return(identity.PlayerList{}, nil).Maybe()
			src.On("LoadPrimary", mock.Anything, testSeason, mock.Anything).Return([]superset.PrimaryRecord{}, nil).Maybe()
			src.On("LoadSecondary", mock.Anything, testSeason).Return([]superset.SecondaryRecord{}, nil).Maybe()
			src.On("LoadMergedGameweeks", mock.Anything, testSeason).Return([]superset.FixtureContext{}, nil).Maybe()
			router := newTestRouter(t, src)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/seasons/2020-21/scatter?"+tt.query, nil))

			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_UnknownSeasonNotFound(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, supersetmock.NewSource(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/seasons/1999-00/columns", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	errorObj := decodeEnvelope(t, rec)["error"].(map[string]any)
	require.Equal(t, "NOT_FOUND", errorObj["status"])
}

func TestHandler_MissingReferenceDataUnavailable(t *testing.T) {
	t.Parallel()

	src := supersetmock.NewSource(t)
	src.On("LoadIdentityMap", mock.Anything, testSeason).
		Return(identity.Map{}, crerr.Mark(crerr.New("open id_dict.csv"), superset.ErrMissingReferenceData)).Once()
	router := newTestRouter(t, src)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/seasons/2020-21/options", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code, rec.Body.String())
}

func TestHandler_PlayerSeries(t *testing.T) {
	t.Parallel()

	src := supersetmock.NewSource(t)
	expectSingleMatch(src)
	router := newTestRouter(t, src)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/seasons/2020-21/players/4/series?fields=value", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	require.Equal(t, "Pierre-Emerick Aubameyang", data["player_name"])
	points := data["points"].([]any)
	require.Len(t, points, 1)
	values := points[0].(map[string]any)["values"].(map[string]any)
	require.InDelta(t, 12.0, values["value"], 1e-9)
}

func TestHandler_PlayerSeries_BadPlayerID(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, supersetmock.NewSource(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/seasons/2020-21/players/salah/series", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_UpdateHyperparameters(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, supersetmock.NewSource(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/v1/hyperparameters", strings.NewReader(`{"alpha_mark":-1,"polynomial_degree":2}`))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	require.InDelta(t, 0.1, data["alpha"], 1e-9)
	require.EqualValues(t, 2, data["polynomial_degree"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/hyperparameters", nil))
	data = decodeEnvelope(t, rec)["data"].(map[string]any)
	require.EqualValues(t, 2, data["polynomial_degree"])
}

func TestHandler_UpdateHyperparameters_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "unknown field", body: `{"learning_rate":0.1}`},
		{name: "degree out of range", body: `{"polynomial_degree":11}`},
		{name: "unknown alpha mark", body: `{"alpha_mark":7}`},
		{name: "unknown method", body: `{"outlier":{"methods":["isolation_forest"]}}`},
		{name: "malformed", body: `{"alpha_mark":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := newTestRouter(t, supersetmock.NewSource(t))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/v1/hyperparameters", strings.NewReader(tt.body)))

			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_OpenAPI(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, supersetmock.NewSource(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "/v1/seasons/{season}/scatter")
}
