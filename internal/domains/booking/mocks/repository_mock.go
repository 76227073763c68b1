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
	ledger "carnaval/internal/domains/booking/ledger"
	model "carnaval/internal/domains/booking/model"
	dto "carnaval/shared/dto"
	context "context"
	reflect "reflect"

	sqlx "github.com/jmoiron/sqlx"
	gomock "go.uber.org/mock/gomock"
)

// MockBooking is a mock of Booking interface.
type MockBooking struct {
	ctrl     *gomock.Controller
	recorder *MockBookingMockRecorder
	isgomock struct{}
}

// MockBookingMockRecorder is the mock recorder for MockBooking.
type MockBookingMockRecorder struct {
	mock *MockBooking
}

// NewMockBooking creates a new mock instance.
func NewMockBooking(ctrl *gomock.Controller) *MockBooking {
	mock := &MockBooking{ctrl: ctrl}
	mock.recorder = &MockBookingMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockBooking) EXPECT() *MockBookingMockRecorder {
	return m.recorder
}

// AcquireStayLockTx mocks base method.
func (m *MockBooking) AcquireStayLockTx(ctx context.Context, tx *sqlx.Tx, hotelID, roomType string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AcquireStayLockTx", ctx, tx, hotelID, roomType)
	ret0, _ := ret[0].(error)
	return ret0
}

// AcquireStayLockTx indicates an expected call of AcquireStayLockTx.
func (mr *MockBookingMockRecorder) AcquireStayLockTx(ctx, tx, hotelID, roomType any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AcquireStayLockTx", reflect.TypeOf((*MockBooking)(nil).AcquireStayLockTx), ctx, tx, hotelID, roomType)
}

// BeginTx mocks base method.
func (m *MockBooking) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BeginTx", ctx)
	ret0, _ := ret[0].(*sqlx.Tx)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// BeginTx indicates an expected call of BeginTx.
func (mr *MockBookingMockRecorder) BeginTx(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BeginTx", reflect.TypeOf((*MockBooking)(nil).BeginTx), ctx)
}

// Count mocks base method.
func (m *MockBooking) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Count", ctx, filter)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Count indicates an expected call of Count.
func (mr *MockBookingMockRecorder) Count(ctx, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Count", reflect.TypeOf((*MockBooking)(nil).Count), ctx, filter)
}

// Delete mocks base method.
func (m *MockBooking) Delete(ctx context.Context, filter dto.FilterGroup) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, filter)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockBookingMockRecorder) Delete(ctx, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockBooking)(nil).Delete), ctx, filter)
}

// Exist mocks base method.
func (m *MockBooking) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Exist", ctx, filter)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Exist indicates an expected call of Exist.
func (mr *MockBookingMockRecorder) Exist(ctx, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Exist", reflect.TypeOf((*MockBooking)(nil).Exist), ctx, filter)
}

// Get mocks base method.
func (m *MockBooking) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (model.Booking, error) {
	m.ctrl.T.Helper()
	varargs := []any{ctx, filter}
	for _, a := range columns {
		varargs = append(varargs, a)
	}
	ret := m.ctrl.Call(m, "Get", varargs...)
	ret0, _ := ret[0].(model.Booking)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *MockBookingMockRecorder) Get(ctx, filter any, columns ...any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	varargs := append([]any{ctx, filter}, columns...)
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockBooking)(nil).Get), varargs...)
}

// GetActiveOverlapping mocks base method.
func (m *MockBooking) GetActiveOverlapping(ctx context.Context, hotelID, roomType string, stay ledger.Stay) ([]model.Booking, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetActiveOverlapping", ctx, hotelID, roomType, stay)
	ret0, _ := ret[0].([]model.Booking)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetActiveOverlapping indicates an expected call of GetActiveOverlapping.
func (mr *MockBookingMockRecorder) GetActiveOverlapping(ctx, hotelID, roomType, stay any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetActiveOverlapping", reflect.TypeOf((*MockBooking)(nil).GetActiveOverlapping), ctx, hotelID, roomType, stay)
}

// GetActiveOverlappingTx mocks base method.
func (m *MockBooking) GetActiveOverlappingTx(ctx context.Context, tx *sqlx.Tx, hotelID, roomType string, stay ledger.Stay) ([]model.Booking, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetActiveOverlappingTx", ctx, tx, hotelID, roomType, stay)
	ret0, _ := ret[0].([]model.Booking)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetActiveOverlappingTx indicates an expected call of GetActiveOverlappingTx.
func (mr *MockBookingMockRecorder) GetActiveOverlappingTx(ctx, tx, hotelID, roomType, stay any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetActiveOverlappingTx", reflect.TypeOf((*MockBooking)(nil).GetActiveOverlappingTx), ctx, tx, hotelID, roomType, stay)
}

// GetAll mocks base method.
func (m *MockBooking) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]model.Booking, error) {
	m.ctrl.T.Helper()
	varargs := []any{ctx, params, filter}
	for _, a := range columns {
		varargs = append(varargs, a)
	}
	ret := m.ctrl.Call(m, "GetAll", varargs...)
	ret0, _ := ret[0].([]model.Booking)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetAll indicates an expected call of GetAll.
func (mr *MockBookingMockRecorder) GetAll(ctx, params, filter any, columns ...any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	varargs := append([]any{ctx, params, filter}, columns...)
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAll", reflect.TypeOf((*MockBooking)(nil).GetAll), varargs...)
}

// Insert mocks base method.
func (m *MockBooking) Insert(ctx context.Context, arg1 model.Booking) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Insert", ctx, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// Insert indicates an expected call of Insert.
func (mr *MockBookingMockRecorder) Insert(ctx, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Insert", reflect.TypeOf((*MockBooking)(nil).Insert), ctx, arg1)
}

// InsertTx mocks base method.
func (m *MockBooking) InsertTx(ctx context.Context, tx *sqlx.Tx, arg2 model.Booking) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertTx", ctx, tx, arg2)
	ret0, _ := ret[0].(error)
	return ret0
}

// InsertTx indicates an expected call of InsertTx.
func (mr *MockBookingMockRecorder) InsertTx(ctx, tx, arg2 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertTx", reflect.TypeOf((*MockBooking)(nil).InsertTx), ctx, tx, arg2)
}

// Update mocks base method.
func (m *MockBooking) Update(ctx context.Context, req map[string]any, filter dto.FilterGroup) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, req, filter)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockBookingMockRecorder) Update(ctx, req, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockBooking)(nil).Update), ctx, req, filter)
}

// Mockselecter is a mock of selecter interface.
type Mockselecter struct {
	ctrl     *gomock.Controller
	recorder *MockselecterMockRecorder
	isgomock struct{}
}

// MockselecterMockRecorder is the mock recorder for Mockselecter.
type MockselecterMockRecorder struct {
	mock *Mockselecter
}

// NewMockselecter creates a new mock instance.
func NewMockselecter(ctrl *gomock.Controller) *Mockselecter {
	mock := &Mockselecter{ctrl: ctrl}
	mock.recorder = &MockselecterMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *Mockselecter) EXPECT() *MockselecterMockRecorder {
	return m.recorder
}

// Rebind mocks base method.
func (m *Mockselecter) Rebind(query string) string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Rebind", query)
	ret0, _ := ret[0].(string)
	return ret0
}

// Rebind indicates an expected call of Rebind.
func (mr *MockselecterMockRecorder) Rebind(query any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Rebind", reflect.TypeOf((*Mockselecter)(nil).Rebind), query)
}

// SelectContext mocks base method.
func (m *Mockselecter) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	m.ctrl.T.Helper()
	varargs := []any{ctx, dest, query}
	for _, a := range args {
		varargs = append(varargs, a)
	}
	ret := m.ctrl.Call(m, "SelectContext", varargs...)
	ret0, _ := ret[0].(error)
	return ret0
}

// SelectContext indicates an expected call of SelectContext.
func (mr *MockselecterMockRecorder) SelectContext(ctx, dest, query any, args ...any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	varargs := append([]any{ctx, dest, query}, args...)
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SelectContext", reflect.TypeOf((*Mockselecter)(nil).SelectContext), varargs...)
}
