package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolgrid/timetable/internal/model"
)

func TestListPeriods(t *testing.T) {
	sectionID := uuid.New()
	periodID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/timetable-periods", r.URL.Path)
		assert.Equal(t, sectionID.String(), r.URL.Query().Get("classSectionId"))
		assert.Equal(t, "teacher", r.Header.Get("X-Viewer-Role"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": []map[string]interface{}{
				{"id": periodID, "weekday": 1},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, model.RoleTeacher)
	periods, err := c.ListPeriods(context.Background(), sectionID)
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, periodID, periods[0].ID)
	assert.Equal(t, 1, periods[0].Weekday)
}

func TestCreatePeriodSendsSection(t *testing.T) {
	sectionID := uuid.New()
	subjectID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, sectionID.String(), body["classSectionId"])
		assert.Equal(t, subjectID.String(), body["classSubjectId"])
		assert.Equal(t, "08:00", body["startTime"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"id": uuid.New(), "weekday": 1},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, model.RoleAdmin)
	period, err := c.CreatePeriod(context.Background(), sectionID, model.PeriodInput{
		ClassSubjectID: subjectID,
		Weekday:        1,
		StartTime:      "08:00",
		EndTime:        "09:00",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, period.ID)
}

// A non-2xx answer surfaces the server's own message when the envelope
// carries one.
func TestRemoteErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "teacher already has a period overlapping this time on weekday 1 (A. Karimova / Mathematics)",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, model.RoleAdmin)
	_, err := c.CreatePeriod(context.Background(), uuid.New(), model.PeriodInput{})
	require.Error(t, err)

	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusConflict, re.StatusCode)
	assert.Contains(t, re.Message, "already has a period")
}

// An unreadable error body falls back to the generic message.
func TestRemoteErrorFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL, model.RoleStudent)
	_, err := c.ListPeriods(context.Background(), uuid.New())
	require.Error(t, err)

	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusBadGateway, re.StatusCode)
	assert.Equal(t, "request failed", re.Message)
}

func TestDeletePeriod(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/timetable-periods/"+id.String(), r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "period deleted"})
	}))
	defer srv.Close()

	c := New(srv.URL, model.RoleAdmin)
	require.NoError(t, c.DeletePeriod(context.Background(), id))
}

func TestGridImage(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	}))
	defer srv.Close()

	c := New(srv.URL, model.RoleStudent)
	got, err := c.GridImage(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, png, got)
}
