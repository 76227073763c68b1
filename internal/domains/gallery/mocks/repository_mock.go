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
	model "carnaval/internal/domains/gallery/model"
	dto "carnaval/shared/dto"
	context "context"
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockGallery is a mock of Gallery interface.
type MockGallery struct {
	ctrl     *gomock.Controller
	recorder *MockGalleryMockRecorder
	isgomock struct{}
}

// MockGalleryMockRecorder is the mock recorder for MockGallery.
type MockGalleryMockRecorder struct {
	mock *MockGallery
}

// NewMockGallery creates a new mock instance.
func NewMockGallery(ctrl *gomock.Controller) *MockGallery {
	mock := &MockGallery{ctrl: ctrl}
	mock.recorder = &MockGalleryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockGallery) EXPECT() *MockGalleryMockRecorder {
	return m.recorder
}

// Count mocks base method.
func (m *MockGallery) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Count", ctx, filter)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Count indicates an expected call of Count.
func (mr *MockGalleryMockRecorder) Count(ctx, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Count", reflect.TypeOf((*MockGallery)(nil).Count), ctx, filter)
}

// Delete mocks base method.
func (m *MockGallery) Delete(ctx context.Context, filter dto.FilterGroup) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, filter)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockGalleryMockRecorder) Delete(ctx, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockGallery)(nil).Delete), ctx, filter)
}

// Exist mocks base method.
func (m *MockGallery) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Exist", ctx, filter)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Exist indicates an expected call of Exist.
func (mr *MockGalleryMockRecorder) Exist(ctx, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Exist", reflect.TypeOf((*MockGallery)(nil).Exist), ctx, filter)
}

// Get mocks base method.
func (m *MockGallery) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (model.Gallery, error) {
	m.ctrl.T.Helper()
	varargs := []any{ctx, filter}
	for _, a := range columns {
		varargs = append(varargs, a)
	}
	ret := m.ctrl.Call(m, "Get", varargs...)
	ret0, _ := ret[0].(model.Gallery)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *MockGalleryMockRecorder) Get(ctx, filter any, columns ...any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	varargs := append([]any{ctx, filter}, columns...)
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockGallery)(nil).Get), varargs...)
}

// GetAll mocks base method.
func (m *MockGallery) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]model.Gallery, error) {
	m.ctrl.T.Helper()
	varargs := []any{ctx, params, filter}
	for _, a := range columns {
		varargs = append(varargs, a)
	}
	ret := m.ctrl.Call(m, "GetAll", varargs...)
	ret0, _ := ret[0].([]model.Gallery)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetAll indicates an expected call of GetAll.
func (mr *MockGalleryMockRecorder) GetAll(ctx, params, filter any, columns ...any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	varargs := append([]any{ctx, params, filter}, columns...)
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAll", reflect.TypeOf((*MockGallery)(nil).GetAll), varargs...)
}

// Insert mocks base method.
func (m *MockGallery) Insert(ctx context.Context, arg1 model.Gallery) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Insert", ctx, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// Insert indicates an expected call of Insert.
func (mr *MockGalleryMockRecorder) Insert(ctx, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Insert", reflect.TypeOf((*MockGallery)(nil).Insert), ctx, arg1)
}

// Update mocks base method.
func (m *MockGallery) Update(ctx context.Context, req map[string]any, filter dto.FilterGroup) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, req, filter)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockGalleryMockRecorder) Update(ctx, req, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockGallery)(nil).Update), ctx, req, filter)
}
