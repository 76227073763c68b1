// Code generated by MockGen. DO NOT EDIT.
// Source: ./kafka.go
//
// Generated by this command:
//
//	mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks
//

// Package mocks is a generated GoMock package.
package mocks

import (
	kafka "carnaval/infras/kafka"
	context "context"
	reflect "reflect"

	kafka0 "github.com/segmentio/kafka-go"
	gomock "go.uber.org/mock/gomock"
)

// MockClient is a mock of Client interface.
type MockClient struct {
	ctrl     *gomock.Controller
	recorder *MockClientMockRecorder
	isgomock struct{}
}

// MockClientMockRecorder is the mock recorder for MockClient.
type MockClientMockRecorder struct {
	mock *MockClient
}

// NewMockClient creates a new mock instance.
func NewMockClient(ctrl *gomock.Controller) *MockClient {
	mock := &MockClient{ctrl: ctrl}
	mock.recorder = &MockClientMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockClient) EXPECT() *MockClientMockRecorder {
	return m.recorder
}

// Consume mocks base method.
func (m *MockClient) Consume(ctx context.Context, consumerGroup, topic string, handler func(kafka0.Message)) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Consume", ctx, consumerGroup, topic, handler)
}

// Consume indicates an expected call of Consume.
func (mr *MockClientMockRecorder) Consume(ctx, consumerGroup, topic, handler any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Consume", reflect.TypeOf((*MockClient)(nil).Consume), ctx, consumerGroup, topic, handler)
}

// Reader mocks base method.
func (m *MockClient) Reader(consumerGroup, topic string) *kafka0.Reader {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Reader", consumerGroup, topic)
	ret0, _ := ret[0].(*kafka0.Reader)
	return ret0
}

// Reader indicates an expected call of Reader.
func (mr *MockClientMockRecorder) Reader(consumerGroup, topic any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reader", reflect.TypeOf((*MockClient)(nil).Reader), consumerGroup, topic)
}

// SendMessages mocks base method.
func (m *MockClient) SendMessages(ctx context.Context, topic string, messages ...kafka.Message) error {
	m.ctrl.T.Helper()
	varargs := []any{ctx, topic}
	for _, a := range messages {
		varargs = append(varargs, a)
	}
	ret := m.ctrl.Call(m, "SendMessages", varargs...)
	ret0, _ := ret[0].(error)
	return ret0
}

// SendMessages indicates an expected call of SendMessages.
func (mr *MockClientMockRecorder) SendMessages(ctx, topic any, messages ...any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	varargs := append([]any{ctx, topic}, messages...)
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendMessages", reflect.TypeOf((*MockClient)(nil).SendMessages), varargs...)
}
