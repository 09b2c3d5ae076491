// Package client is a typed consumer of the timetable HTTP API, used by
// tools that render or aggregate on the caller's side of the wire.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/schoolgrid/timetable/internal/model"
)

// RemoteError is a non-2xx answer from the server. Message carries the
// server's own message when the envelope had one, else a generic fallback,
// so callers can show it to the user without inspecting the body.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client talks to one timetable server as one viewer role.
type Client struct {
	baseURL string
	role    model.Role
	http    *http.Client
}

func New(baseURL string, role model.Role) *Client {
	return &Client{
		baseURL: baseURL,
		role:    role,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// ListPeriods fetches a section's periods.
func (c *Client) ListPeriods(ctx context.Context, sectionID uuid.UUID) ([]*model.Period, error) {
	var periods []*model.Period
	query := url.Values{"classSectionId": {sectionID.String()}}
	if err := c.call(ctx, http.MethodGet, "/timetable-periods?"+query.Encode(), nil, &periods); err != nil {
		return nil, err
	}
	return periods, nil
}

// CreatePeriod submits a new period for the section.
func (c *Client) CreatePeriod(ctx context.Context, sectionID uuid.UUID, in model.PeriodInput) (*model.Period, error) {
	body := struct {
		ClassSectionID uuid.UUID `json:"classSectionId"`
		model.PeriodInput
	}{ClassSectionID: sectionID, PeriodInput: in}

	var period model.Period
	if err := c.call(ctx, http.MethodPost, "/timetable-periods", body, &period); err != nil {
		return nil, err
	}
	return &period, nil
}

// UpdatePeriod rewrites an existing period.
func (c *Client) UpdatePeriod(ctx context.Context, id uuid.UUID, in model.PeriodInput) (*model.Period, error) {
	var period model.Period
	if err := c.call(ctx, http.MethodPut, "/timetable-periods/"+id.String(), in, &period); err != nil {
		return nil, err
	}
	return &period, nil
}

// DeletePeriod removes a period.
func (c *Client) DeletePeriod(ctx context.Context, id uuid.UUID) error {
	return c.call(ctx, http.MethodDelete, "/timetable-periods/"+id.String(), nil, nil)
}

// ExamSubjects fetches an exam's subjects.
func (c *Client) ExamSubjects(ctx context.Context, examID uuid.UUID) ([]*model.ExamSubject, error) {
	var subjects []*model.ExamSubject
	if err := c.call(ctx, http.MethodGet, "/exam-subjects/exam/"+examID.String(), nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// Marks fetches every student's mark for one exam subject.
func (c *Client) Marks(ctx context.Context, examSubjectID uuid.UUID) ([]*model.StudentMark, error) {
	var marks []*model.StudentMark
	if err := c.call(ctx, http.MethodGet, "/student-marks/exam-subject/"+examSubjectID.String(), nil, &marks); err != nil {
		return nil, err
	}
	return marks, nil
}

// ReportCard fetches a student's report card for a session.
func (c *Client) ReportCard(ctx context.Context, sessionID, studentID uuid.UUID) (*model.ReportCard, error) {
	var card model.ReportCard
	path := fmt.Sprintf("/report-cards/session/%s/student/%s", sessionID, studentID)
	if err := c.call(ctx, http.MethodGet, path, nil, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// GridImage fetches the rendered weekly grid PNG for a section.
func (c *Client) GridImage(ctx context.Context, sectionID uuid.UUID) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/timetable-grid/"+sectionID.String()+"/image", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Viewer-Role", string(c.role))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, remoteError(resp)
	}
	return io.ReadAll(resp.Body)
}

// call performs one JSON round trip and unwraps the response envelope.
func (c *Client) call(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Viewer-Role", string(c.role))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return remoteError(resp)
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// remoteError extracts the server's message, falling back to a generic one
// when the body is not a readable envelope.
func remoteError(resp *http.Response) error {
	re := &RemoteError{StatusCode: resp.StatusCode, Message: "request failed"}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err == nil && env.Message != "" {
		re.Message = env.Message
	}
	return re
}
