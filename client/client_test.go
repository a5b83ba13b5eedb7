package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcarver/wellpath/session"
	"github.com/jcarver/wellpath/store/memory"
)

type staticTokens string

func (s staticTokens) SessionKey() (string, bool) {
	return string(s), s != ""
}

func TestResolveEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		endpoint string
		want     string
	}{
		{"leading slash", "https://api.example/api", "/foo", "https://api.example/api/foo"},
		{"no leading slash", "https://api.example/api", "foo", "https://api.example/api/foo"},
		{"trailing slash on base", "https://api.example/api/", "/foo", "https://api.example/api/foo"},
		{"trailing slash and bare endpoint", "https://api.example/api/", "foo", "https://api.example/api/foo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.baseURL)
			assert.Equal(t, tt.want, c.resolveEndpoint(tt.endpoint))
		})
	}
}

func TestNewDefaultsBaseURL(t *testing.T) {
	c := New("")
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
}

func TestAuthorizationHeader(t *testing.T) {
	t.Run("attached when token present", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		c := New(srv.URL, WithTokenSource(staticTokens("abc")))
		_, err := c.Locations(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Session abc", gotAuth)
	})

	t.Run("absent token sends bare request, 401 surfaces", func(t *testing.T) {
		var sawAuthHeader bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, sawAuthHeader = r.Header["Authorization"]
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		c := New(srv.URL, WithTokenSource(staticTokens("")))
		_, err := c.Locations(context.Background())

		assert.False(t, sawAuthHeader, "request should carry no Authorization header")
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
		assert.Equal(t, "/location/all", statusErr.Endpoint)
	})
}

func TestContentTypeAndUserAgent(t *testing.T) {
	var contentType, userAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		userAgent = r.Header.Get("User-Agent")
		json.NewEncoder(w).Encode(SiteInfo{Version: "1.0.0"})
	}))
	defer srv.Close()

	c := New(srv.URL, WithUserAgent("WellPath Test Client"))
	_, err := c.SiteInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "WellPath Test Client", userAgent)
}

func TestLoginScenario(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login/password", r.URL.Path)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["username"] != "admin" || creds["password"] != "password" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{
			"session": {
				"session_key": "abc",
				"expires": "2099-01-01T00:00:00Z",
				"created": "2024-01-01T00:00:00Z",
				"login_id": "1",
				"user_id": 1
			},
			"user": {"id": 1, "first_name": "A", "last_name": "B"}
		}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	manager := session.NewManager(memory.NewStore())
	c := New(srv.URL, WithTokenSource(manager))

	manager.BeginLogin()
	result, err := c.Login(ctx, "admin", "password")
	require.NoError(t, err)
	require.NoError(t, manager.Login(ctx, result.Session))

	assert.Equal(t, session.StateAuthenticated, manager.State())
	key, ok := manager.SessionKey()
	require.True(t, ok)
	assert.Equal(t, "abc", key)
	assert.Equal(t, "A", result.User.FirstName)
}

func TestLoginFailureIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "admin", "wrong")

	var loginErr *LoginFailedError
	require.ErrorAs(t, err, &loginErr)
	assert.Equal(t, http.StatusUnauthorized, loginErr.StatusCode)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr), "login failure must not be a StatusError")
}

func TestLoginRejectsMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"session": {"session_key": ""}, "user": {}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "admin", "password")
	assert.ErrorContains(t, err, "empty session_key")
}

func TestFetchParticipantNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/participant/get/999", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"participant_exists": false}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(staticTokens("abc")))
	_, ok, err := c.FetchParticipant(context.Background(), 999)
	require.NoError(t, err, "404 must not surface as an error")
	assert.False(t, ok)
}

func TestFetchParticipantFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Participant{ID: 7, FirstName: "Rosa", LastName: "Nguyen"})
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(staticTokens("abc")))
	p, ok, err := c.FetchParticipant(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Rosa", p.FirstName)
}

func TestFetchParticipantServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(staticTokens("abc")))
	_, _, err := c.FetchParticipant(context.Background(), 7)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestDemographicsRelatedData(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/participant/get/7/demographics", r.URL.Path)
			age := 68
			json.NewEncoder(w).Encode(ParticipantDemographics{ParticipantID: 7, Age: &age})
		}))
		defer srv.Close()

		c := New(srv.URL, WithTokenSource(staticTokens("abc")))
		related, err := c.Demographics(context.Background(), 7)
		require.NoError(t, err)
		assert.True(t, related.ParticipantExists)
		require.NotNil(t, related.Data)
		assert.Equal(t, 68, *related.Data.Age)
	})

	t.Run("participant absent", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"participant_exists": false}`))
		}))
		defer srv.Close()

		c := New(srv.URL, WithTokenSource(staticTokens("abc")))
		related, err := c.Demographics(context.Background(), 999)
		require.NoError(t, err)
		assert.False(t, related.ParticipantExists)
		assert.Nil(t, related.Data)
	})
}

func TestPaginationEnvelopePassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/participant/stats/weight/history/7", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("page_size"))

		entries := make([]WeightEntry, 10)
		for i := range entries {
			entries[i] = WeightEntry{CaseNoteID: 100 + i, DateOfVisit: "2024-05-01", Weight: 180.5}
		}
		json.NewEncoder(w).Encode(Page[WeightEntry]{Total: 25, TotalPages: 3, Data: entries})
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(staticTokens("abc")))
	page, ok, err := c.WeightHistory(context.Background(), 7, PageQuery{Page: 2, PageSize: 10})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Data, 10)
}

func TestPaginationRejectsOversizedPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Page[WeightEntry]{Total: 25, TotalPages: 3, Data: make([]WeightEntry, 11)})
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(staticTokens("abc")))
	_, _, err := c.WeightHistory(context.Background(), 7, PageQuery{Page: 1, PageSize: 10})
	assert.ErrorContains(t, err, "exceeds page size")
}

func TestPageQueryDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, fmt.Sprint(DefaultPageSize), r.URL.Query().Get("page_size"))
		json.NewEncoder(w).Encode(Page[MedicationEntry]{})
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(staticTokens("abc")))
	_, _, err := c.Medications(context.Background(), 7, PageQuery{})
	require.NoError(t, err)
}

func TestLookupParticipants(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/participant/lookup", r.URL.Path)

		var req ParticipantLookupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Rosa", req.FirstName)

		json.NewEncoder(w).Encode(Page[ParticipantLookupResponse]{
			Total: 1, TotalPages: 1,
			Data: []ParticipantLookupResponse{{ID: 7, FirstName: "Rosa", LastName: "Nguyen", Program: "RHWP", Location: 1}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(staticTokens("abc")))
	page, err := c.LookupParticipants(context.Background(), ParticipantLookupRequest{FirstName: "Rosa"}, PageQuery{Page: 1, PageSize: 15})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, 7, page.Data[0].ID)
}

func TestBloodPressureReadingsDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"total": 1, "total_pages": 1,
			"data": [{
				"case_note_id": 12,
				"date_of_visit": "2024-05-01",
				"blood_pressure": {
					"Sit": {"systolic": 120, "diastolic": 80},
					"Stand": {"systolic": 130, "diastolic": 85}
				}
			}]
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(staticTokens("abc")))
	page, ok, err := c.BPHistory(context.Background(), 7, PageQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, page.Data, 1)
	assert.Equal(t, 120, page.Data[0].BloodPressure[ReadingSit].Systolic)
	assert.Equal(t, 85, page.Data[0].BloodPressure[ReadingStand].Diastolic)
}

func TestNotifyLogout(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var path string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		c := New(srv.URL, WithTokenSource(staticTokens("abc")))
		require.NoError(t, c.NotifyLogout(context.Background()))
		assert.Equal(t, "/auth/logout", path)
	})

	t.Run("failure surfaces to the caller", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		c := New(srv.URL, WithTokenSource(staticTokens("abc")))
		assert.Error(t, c.NotifyLogout(context.Background()))
	})
}
