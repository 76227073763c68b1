// Code generated by MockGen. DO NOT EDIT.
// Source: ./repository.go
//
// Generated by this command:
//
//	mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks
//

// Package mocks is a generated GoMock package.
package mocks

import (
	model "carnaval/internal/domains/incident/model"
	dto "carnaval/shared/dto"
	context "context"
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockIncident is a mock of Incident interface.
type MockIncident struct {
	ctrl     *gomock.Controller
	recorder *MockIncidentMockRecorder
	isgomock struct{}
}

// MockIncidentMockRecorder is the mock recorder for MockIncident.
type MockIncidentMockRecorder struct {
	mock *MockIncident
}

// NewMockIncident creates a new mock instance.
func NewMockIncident(ctrl *gomock.Controller) *MockIncident {
	mock := &MockIncident{ctrl: ctrl}
	mock.recorder = &MockIncidentMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockIncident) EXPECT() *MockIncidentMockRecorder {
	return m.recorder
}

// Count mocks base method.
func (m *MockIncident) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Count", ctx, filter)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Count indicates an expected call of Count.
func (mr *MockIncidentMockRecorder) Count(ctx, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Count", reflect.TypeOf((*MockIncident)(nil).Count), ctx, filter)
}

// Delete mocks base method.
func (m *MockIncident) Delete(ctx context.Context, filter dto.FilterGroup) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, filter)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockIncidentMockRecorder) Delete(ctx, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockIncident)(nil).Delete), ctx, filter)
}

// Exist mocks base method.
func (m *MockIncident) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Exist", ctx, filter)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Exist indicates an expected call of Exist.
func (mr *MockIncidentMockRecorder) Exist(ctx, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Exist", reflect.TypeOf((*MockIncident)(nil).Exist), ctx, filter)
}

// Get mocks base method.
func (m *MockIncident) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (model.Incident, error) {
	m.ctrl.T.Helper()
	varargs := []any{ctx, filter}
	for _, a := range columns {
		varargs = append(varargs, a)
	}
	ret := m.ctrl.Call(m, "Get", varargs...)
	ret0, _ := ret[0].(model.Incident)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *MockIncidentMockRecorder) Get(ctx, filter any, columns ...any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	varargs := append([]any{ctx, filter}, columns...)
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockIncident)(nil).Get), varargs...)
}

// GetAll mocks base method.
func (m *MockIncident) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]model.Incident, error) {
	m.ctrl.T.Helper()
	varargs := []any{ctx, params, filter}
	for _, a := range columns {
		varargs = append(varargs, a)
	}
	ret := m.ctrl.Call(m, "GetAll", varargs...)
	ret0, _ := ret[0].([]model.Incident)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetAll indicates an expected call of GetAll.
func (mr *MockIncidentMockRecorder) GetAll(ctx, params, filter any, columns ...any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	varargs := append([]any{ctx, params, filter}, columns...)
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAll", reflect.TypeOf((*MockIncident)(nil).GetAll), varargs...)
}

// Insert mocks base method.
func (m *MockIncident) Insert(ctx context.Context, arg1 model.Incident) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Insert", ctx, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// Insert indicates an expected call of Insert.
func (mr *MockIncidentMockRecorder) Insert(ctx, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Insert", reflect.TypeOf((*MockIncident)(nil).Insert), ctx, arg1)
}

// Update mocks base method.
func (m *MockIncident) Update(ctx context.Context, req map[string]any, filter dto.FilterGroup) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, req, filter)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockIncidentMockRecorder) Update(ctx, req, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockIncident)(nil).Update), ctx, req, filter)
}
