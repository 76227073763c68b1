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
	model "carnaval/internal/domains/hotel/model"
	dto "carnaval/shared/dto"
	context "context"
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockHotel is a mock of Hotel interface.
type MockHotel struct {
	ctrl     *gomock.Controller
	recorder *MockHotelMockRecorder
	isgomock struct{}
}

// MockHotelMockRecorder is the mock recorder for MockHotel.
type MockHotelMockRecorder struct {
	mock *MockHotel
}

// NewMockHotel creates a new mock instance.
func NewMockHotel(ctrl *gomock.Controller) *MockHotel {
	mock := &MockHotel{ctrl: ctrl}
	mock.recorder = &MockHotelMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockHotel) EXPECT() *MockHotelMockRecorder {
	return m.recorder
}

// Count mocks base method.
func (m *MockHotel) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Count", ctx, filter)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Count indicates an expected call of Count.
func (mr *MockHotelMockRecorder) Count(ctx, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Count", reflect.TypeOf((*MockHotel)(nil).Count), ctx, filter)
}

// Delete mocks base method.
func (m *MockHotel) Delete(ctx context.Context, filter dto.FilterGroup) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, filter)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockHotelMockRecorder) Delete(ctx, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockHotel)(nil).Delete), ctx, filter)
}

// DeleteRoomType mocks base method.
func (m *MockHotel) DeleteRoomType(ctx context.Context, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteRoomType", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteRoomType indicates an expected call of DeleteRoomType.
func (mr *MockHotelMockRecorder) DeleteRoomType(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteRoomType", reflect.TypeOf((*MockHotel)(nil).DeleteRoomType), ctx, id)
}

// Exist mocks base method.
func (m *MockHotel) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Exist", ctx, filter)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Exist indicates an expected call of Exist.
func (mr *MockHotelMockRecorder) Exist(ctx, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Exist", reflect.TypeOf((*MockHotel)(nil).Exist), ctx, filter)
}

// Get mocks base method.
func (m *MockHotel) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (model.Hotel, error) {
	m.ctrl.T.Helper()
	varargs := []any{ctx, filter}
	for _, a := range columns {
		varargs = append(varargs, a)
	}
	ret := m.ctrl.Call(m, "Get", varargs...)
	ret0, _ := ret[0].(model.Hotel)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *MockHotelMockRecorder) Get(ctx, filter any, columns ...any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	varargs := append([]any{ctx, filter}, columns...)
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockHotel)(nil).Get), varargs...)
}

// GetAll mocks base method.
func (m *MockHotel) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]model.Hotel, error) {
	m.ctrl.T.Helper()
	varargs := []any{ctx, params, filter}
	for _, a := range columns {
		varargs = append(varargs, a)
	}
	ret := m.ctrl.Call(m, "GetAll", varargs...)
	ret0, _ := ret[0].([]model.Hotel)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetAll indicates an expected call of GetAll.
func (mr *MockHotelMockRecorder) GetAll(ctx, params, filter any, columns ...any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	varargs := append([]any{ctx, params, filter}, columns...)
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAll", reflect.TypeOf((*MockHotel)(nil).GetAll), varargs...)
}

// GetRoomType mocks base method.
func (m *MockHotel) GetRoomType(ctx context.Context, hotelID, roomType string) (model.RoomType, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetRoomType", ctx, hotelID, roomType)
	ret0, _ := ret[0].(model.RoomType)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetRoomType indicates an expected call of GetRoomType.
func (mr *MockHotelMockRecorder) GetRoomType(ctx, hotelID, roomType any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetRoomType", reflect.TypeOf((*MockHotel)(nil).GetRoomType), ctx, hotelID, roomType)
}

// GetRoomTypes mocks base method.
func (m *MockHotel) GetRoomTypes(ctx context.Context, hotelID string) ([]model.RoomType, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetRoomTypes", ctx, hotelID)
	ret0, _ := ret[0].([]model.RoomType)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetRoomTypes indicates an expected call of GetRoomTypes.
func (mr *MockHotelMockRecorder) GetRoomTypes(ctx, hotelID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetRoomTypes", reflect.TypeOf((*MockHotel)(nil).GetRoomTypes), ctx, hotelID)
}

// Insert mocks base method.
func (m *MockHotel) Insert(ctx context.Context, arg1 model.Hotel) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Insert", ctx, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// Insert indicates an expected call of Insert.
func (mr *MockHotelMockRecorder) Insert(ctx, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Insert", reflect.TypeOf((*MockHotel)(nil).Insert), ctx, arg1)
}

// InsertRoomType mocks base method.
func (m *MockHotel) InsertRoomType(ctx context.Context, arg1 model.RoomType) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertRoomType", ctx, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// InsertRoomType indicates an expected call of InsertRoomType.
func (mr *MockHotelMockRecorder) InsertRoomType(ctx, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertRoomType", reflect.TypeOf((*MockHotel)(nil).InsertRoomType), ctx, arg1)
}

// Update mocks base method.
func (m *MockHotel) Update(ctx context.Context, req map[string]any, filter dto.FilterGroup) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, req, filter)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockHotelMockRecorder) Update(ctx, req, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockHotel)(nil).Update), ctx, req, filter)
}

// UpdateRoomType mocks base method.
func (m *MockHotel) UpdateRoomType(ctx context.Context, req map[string]any, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateRoomType", ctx, req, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateRoomType indicates an expected call of UpdateRoomType.
func (mr *MockHotelMockRecorder) UpdateRoomType(ctx, req, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateRoomType", reflect.TypeOf((*MockHotel)(nil).UpdateRoomType), ctx, req, id)
}
