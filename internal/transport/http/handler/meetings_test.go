package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/incial/crm-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMeetingSvc struct{ mock.Mock }

func (m *mockMeetingSvc) List(ctx context.Context) ([]domain.Meeting, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Meeting), args.Error(1)
}

func (m *mockMeetingSvc) Get(ctx context.Context, meetingID string) (*domain.Meeting, error) {
	args := m.Called(ctx, meetingID)
	if mt, _ := args.Get(0).(*domain.Meeting); mt != nil {
		return mt, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMeetingSvc) Create(ctx context.Context, req domain.CreateMeetingRequest) (*domain.Meeting, error) {
	args := m.Called(ctx, req)
	if mt, _ := args.Get(0).(*domain.Meeting); mt != nil {
		return mt, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMeetingSvc) Update(ctx context.Context, meetingID string, req domain.UpdateMeetingRequest) (*domain.Meeting, error) {
	args := m.Called(ctx, meetingID, req)
	if mt, _ := args.Get(0).(*domain.Meeting); mt != nil {
		return mt, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMeetingSvc) Delete(ctx context.Context, meetingID string) error {
	return m.Called(ctx, meetingID).Error(0)
}

func TestMeetingCreate_InvalidBody(t *testing.T) {
	svc := &mockMeetingSvc{}
	h := NewMeetingHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/meetings", bytes.NewBufferString("not-json"))
	rr := httptest.NewRecorder()
	h.Create(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMeetingCreate_ValidationFailure(t *testing.T) {
	svc := &mockMeetingSvc{}
	h := NewMeetingHandler(svc)
	body, _ := json.Marshal(domain.CreateMeetingRequest{DateTime: "2026-09-01T10:00:00Z"}) // missing title
	r := httptest.NewRequest(http.MethodPost, "/v1/meetings", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Create(rr, r)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestMeetingCreate_BadDateTime(t *testing.T) {
	svc := &mockMeetingSvc{}
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrBadRequest)
	h := NewMeetingHandler(svc)
	body, _ := json.Marshal(domain.CreateMeetingRequest{Title: "Kickoff", DateTime: "tomorrow-ish"})
	r := httptest.NewRequest(http.MethodPost, "/v1/meetings", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Create(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMeetingCreate_HappyPath(t *testing.T) {
	svc := &mockMeetingSvc{}
	created := &domain.Meeting{
		MeetingID: "m1",
		Title:     "Kickoff",
		DateTime:  time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		Status:    domain.StatusScheduled,
	}
	svc.On("Create", mock.Anything, mock.Anything).Return(created, nil)
	h := NewMeetingHandler(svc)
	body, _ := json.Marshal(domain.CreateMeetingRequest{Title: "Kickoff", DateTime: "2026-09-01T10:00:00Z"})
	r := httptest.NewRequest(http.MethodPost, "/v1/meetings", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Create(rr, r)

	assert.Equal(t, http.StatusCreated, rr.Code)
	var resp domain.Meeting
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "m1", resp.MeetingID)
	assert.Equal(t, domain.StatusScheduled, resp.Status)
	svc.AssertExpectations(t)
}

func TestMeetingGet_NotFound(t *testing.T) {
	svc := &mockMeetingSvc{}
	svc.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)
	h := NewMeetingHandler(svc)
	r := withChiParam(httptest.NewRequest(http.MethodGet, "/v1/meetings/missing", nil), "id", "missing")
	rr := httptest.NewRecorder()
	h.Get(rr, r)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMeetingList_HappyPath(t *testing.T) {
	svc := &mockMeetingSvc{}
	svc.On("List", mock.Anything).Return([]domain.Meeting{{MeetingID: "m1"}, {MeetingID: "m2"}}, nil)
	h := NewMeetingHandler(svc)
	r := httptest.NewRequest(http.MethodGet, "/v1/meetings", nil)
	rr := httptest.NewRecorder()
	h.List(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp []domain.Meeting
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Len(t, resp, 2)
}

func TestMeetingUpdate_HappyPath(t *testing.T) {
	svc := &mockMeetingSvc{}
	title := "Renamed"
	updated := &domain.Meeting{MeetingID: "m1", Title: title}
	svc.On("Update", mock.Anything, "m1", mock.Anything).Return(updated, nil)
	h := NewMeetingHandler(svc)
	body, _ := json.Marshal(domain.UpdateMeetingRequest{Title: &title})
	r := withChiParam(httptest.NewRequest(http.MethodPut, "/v1/meetings/m1", bytes.NewReader(body)), "id", "m1")
	rr := httptest.NewRecorder()
	h.Update(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp domain.Meeting
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Renamed", resp.Title)
	svc.AssertExpectations(t)
}

func TestMeetingDelete_HappyPath(t *testing.T) {
	svc := &mockMeetingSvc{}
	svc.On("Delete", mock.Anything, "m1").Return(nil)
	h := NewMeetingHandler(svc)
	r := withChiParam(httptest.NewRequest(http.MethodDelete, "/v1/meetings/m1", nil), "id", "m1")
	rr := httptest.NewRecorder()
	h.Delete(rr, r)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	svc.AssertExpectations(t)
}

func TestMeetingDelete_NotFound(t *testing.T) {
	svc := &mockMeetingSvc{}
	svc.On("Delete", mock.Anything, "ghost").Return(domain.ErrNotFound)
	h := NewMeetingHandler(svc)
	r := withChiParam(httptest.NewRequest(http.MethodDelete, "/v1/meetings/ghost", nil), "id", "ghost")
	rr := httptest.NewRecorder()
	h.Delete(rr, r)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
