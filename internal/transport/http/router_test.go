package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	auditservice "github.com/mjza/mra-core-sub001/internal/auditlog/service"
	auditstore "github.com/mjza/mra-core-sub001/internal/auditlog/store"
	"github.com/mjza/mra-core-sub001/internal/dataaccess"
	geoservice "github.com/mjza/mra-core-sub001/internal/geo/service"
	geostore "github.com/mjza/mra-core-sub001/internal/geo/store"
	"github.com/mjza/mra-core-sub001/internal/platform/logger"
	ratelimitservice "github.com/mjza/mra-core-sub001/internal/ratelimit/service"
	ratelimitstore "github.com/mjza/mra-core-sub001/internal/ratelimit/store"
	refservice "github.com/mjza/mra-core-sub001/internal/reference/service"
	refstore "github.com/mjza/mra-core-sub001/internal/reference/store"
	transporthttp "github.com/mjza/mra-core-sub001/internal/transport/http"
	udservice "github.com/mjza/mra-core-sub001/internal/userdetails/service"
	udstore "github.com/mjza/mra-core-sub001/internal/userdetails/store"
)

// staticResolver authenticates every "Bearer token-<id>" header as user id
// <id>, standing in for the external authentication service.
type staticResolver struct{}

func (staticResolver) Resolve(_ context.Context, token string) (int64, error) {
	switch token {
	case "token-7":
		return 7, nil
	case "token-8":
		return 8, nil
	default:
		return 0, context.Canceled
	}
}

type errorBody struct {
	Error            string `json:"error"`
	Kind             string `json:"kind"`
	ErrorDescription string `json:"error_description"`
}

type RouterSuite struct {
	suite.Suite

	router http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	log := logger.New()
	genders := refstore.NewInMemory()

	facade := dataaccess.New(
		refservice.New(genders, refservice.WithLogger(log)),
		geoservice.New(geostore.NewInMemory(), geoservice.WithLogger(log)),
		auditservice.New(auditstore.NewInMemory(), auditservice.WithLogger(log)),
		udservice.New(udstore.NewInMemory(), genders, udservice.WithLogger(log)),
	)
	limiter := ratelimitservice.New(ratelimitstore.NewInMemory(), ratelimitservice.WithLogger(log))

	s.router = transporthttp.NewServer(facade, limiter, staticResolver{}, log).Router()
}

func (s *RouterSuite) request(method, target, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.RemoteAddr = "198.51.100.7:51234"
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RouterSuite) decodeError(rec *httptest.ResponseRecorder) errorBody {
	var body errorBody
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (s *RouterSuite) TestMissingTokenRejected() {
	rec := s.request(http.MethodGet, "/v1/gender-types", "", "")
	require.Equal(s.T(), http.StatusForbidden, rec.Code)

	body := s.decodeError(rec)
	require.Equal(s.T(), "NotAuthorized", body.Kind)
	require.Equal(s.T(), "You must provide a valid token.", body.ErrorDescription)
}

func (s *RouterSuite) TestGenderTypesListAndSlice() {
	rec := s.request(http.MethodGet, "/v1/gender-types?limit=100&offset=0", "token-7", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)

	var rows []map[string]any
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(s.T(), rows, 10)

	rec = s.request(http.MethodGet, "/v1/gender-types?limit=3&offset=3", "token-7", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(s.T(), rows, 3)
}

func (s *RouterSuite) TestInvalidPaginationIsUniform400() {
	for _, target := range []string{
		"/v1/gender-types?limit=abc",
		"/v1/gender-types?limit=0",
		"/v1/gender-types?offset=-1",
		"/v1/gender-types?limit=2.5",
	} {
		rec := s.request(http.MethodGet, target, "token-7", "")
		require.Equal(s.T(), http.StatusBadRequest, rec.Code, target)

		body := s.decodeError(rec)
		require.Equal(s.T(), "InvalidPagination", body.Kind, target)
		require.Equal(s.T(), "Limit and offset must be valid numbers.", body.ErrorDescription, target)
	}
}

func (s *RouterSuite) TestLocationResolution() {
	rec := s.request(http.MethodGet, "/v1/location?longitude=-114.12839&latitude=51.07462", "token-7", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)

	var location map[string]any
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &location))
	require.Equal(s.T(), "CA", location["country_code"])
	require.Equal(s.T(), "Alberta", location["state_name"])
	require.Equal(s.T(), "Calgary", location["city_name"])
}

func (s *RouterSuite) TestLocationStatusMapping() {
	rec := s.request(http.MethodGet, "/v1/location?longitude=360&latitude=-360", "token-7", "")
	require.Equal(s.T(), http.StatusBadRequest, rec.Code)
	require.Equal(s.T(), "CoordinatesOutOfRange", s.decodeError(rec).Kind)

	rec = s.request(http.MethodGet, "/v1/location?longitude=0&latitude=0", "token-7", "")
	require.Equal(s.T(), http.StatusNotFound, rec.Code)
	require.Equal(s.T(), "CountryNotFound", s.decodeError(rec).Kind)

	rec = s.request(http.MethodGet, "/v1/location?longitude=-82.3520&latitude=23.1370", "token-7", "")
	require.Equal(s.T(), http.StatusBadRequest, rec.Code)
	require.Equal(s.T(), "CountryUnsupported", s.decodeError(rec).Kind)
}

func (s *RouterSuite) TestStatesByCodeAndID() {
	rec := s.request(http.MethodGet, "/v1/countries/CA/states", "token-7", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)

	var states []map[string]any
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &states))
	require.Len(s.T(), states, 4)

	rec = s.request(http.MethodGet, "/v1/countries/1/states", "token-7", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &states))
	require.Len(s.T(), states, 4)

	rec = s.request(http.MethodGet, "/v1/countries/XX/states", "token-7", "")
	require.Equal(s.T(), http.StatusNotFound, rec.Code)
	require.Equal(s.T(), "Country with code 'XX' not found.", s.decodeError(rec).ErrorDescription)
}

func (s *RouterSuite) TestUserDetailsLifecycle() {
	// Read of an absent row is 200 with identity only.
	rec := s.request(http.MethodGet, "/v1/user-details/7", "token-7", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)

	var details map[string]any
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &details))
	require.Equal(s.T(), float64(7), details["user_id"])
	require.Nil(s.T(), details["first_name"])

	// Update of an absent row is 404, unlike the read above.
	rec = s.request(http.MethodPut, "/v1/user-details/7", "token-7", `{"first_name":"Ada"}`)
	require.Equal(s.T(), http.StatusNotFound, rec.Code)
	require.Equal(s.T(), "UserDetailsNotFound", s.decodeError(rec).Kind)

	rec = s.request(http.MethodPost, "/v1/user-details/7", "token-7", `{"first_name":"Ada","gender_id":2}`)
	require.Equal(s.T(), http.StatusCreated, rec.Code)
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &details))
	require.Equal(s.T(), float64(7), details["creator"])
	require.Nil(s.T(), details["updator"])

	// Second create is a 422 duplicate.
	rec = s.request(http.MethodPost, "/v1/user-details/7", "token-7", `{"first_name":"Ada"}`)
	require.Equal(s.T(), http.StatusUnprocessableEntity, rec.Code)
	require.Equal(s.T(), "DuplicateUserDetails", s.decodeError(rec).Kind)

	rec = s.request(http.MethodPut, "/v1/user-details/7", "token-8", `{"last_name":"Lovelace"}`)
	require.Equal(s.T(), http.StatusForbidden, rec.Code)
	require.Equal(s.T(), "NotAuthorized", s.decodeError(rec).Kind)

	rec = s.request(http.MethodPut, "/v1/user-details/7", "token-7", `{"last_name":"Lovelace"}`)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &details))
	require.Equal(s.T(), float64(7), details["creator"])
	require.Equal(s.T(), float64(7), details["updator"])
	require.Equal(s.T(), "Ada", details["first_name"])
	require.Equal(s.T(), "Lovelace", details["last_name"])
}

func (s *RouterSuite) TestInvalidGenderRejected() {
	rec := s.request(http.MethodPost, "/v1/user-details/7", "token-7", `{"gender_id":11}`)
	require.Equal(s.T(), http.StatusBadRequest, rec.Code)

	body := s.decodeError(rec)
	require.Equal(s.T(), "InvalidGenderId", body.Kind)
	require.Equal(s.T(), "Gender id must be between 1 and 10.", body.ErrorDescription)
}

func (s *RouterSuite) TestAuditLogLifecycle() {
	rec := s.request(http.MethodPost, "/v1/audit-logs", "token-7",
		`{"method_route":"GET /v1/countries","comments":"lookup"}`)
	require.Equal(s.T(), http.StatusCreated, rec.Code)

	var entry map[string]any
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &entry))
	require.Equal(s.T(), float64(1), entry["log_id"])
	require.Equal(s.T(), float64(7), entry["user_id"])

	rec = s.request(http.MethodPut, "/v1/audit-logs/1", "token-7", `{"comments":"followup"}`)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &entry))
	require.Equal(s.T(), "lookup\nfollowup", entry["comments"])

	rec = s.request(http.MethodGet, "/v1/audit-logs", "token-7", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)
	var entries []map[string]any
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(s.T(), entries, 1)

	// A range in the future excludes the entry without erroring.
	rec = s.request(http.MethodGet, "/v1/audit-logs?created_atAfter=2030-01-01", "token-7", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Empty(s.T(), entries)

	rec = s.request(http.MethodDelete, "/v1/audit-logs/1", "token-7", "")
	require.Equal(s.T(), http.StatusNoContent, rec.Code)

	rec = s.request(http.MethodPut, "/v1/audit-logs/1", "token-7", `{"comments":"x"}`)
	require.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *RouterSuite) TestRateLimitSharedAcrossMethodFamily() {
	// Exhaust the budget alternating between methods of one family.
	var last *httptest.ResponseRecorder
	for i := 0; i < 10; i++ {
		last = s.request(http.MethodGet, "/v1/user-details/7", "token-7", "")
		require.NotEqual(s.T(), http.StatusTooManyRequests, last.Code)
	}

	rec := s.request(http.MethodPost, "/v1/user-details/7", "token-7", `{"first_name":"Ada"}`)
	require.Equal(s.T(), http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(s.T(), rec.Header().Get("Retry-After"))
	require.Equal(s.T(), "Too many requests from this IP, please try again after 15 minutes.",
		s.decodeError(rec).ErrorDescription)

	// A different family still has budget.
	rec = s.request(http.MethodGet, "/v1/countries?limit=10&offset=0", "token-7", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestHealthAndMetricsUnauthenticated() {
	rec := s.request(http.MethodGet, "/healthz", "", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)

	rec = s.request(http.MethodGet, "/metrics", "", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)
}
