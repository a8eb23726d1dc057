package mocks

import "github.com/stretchr/testify/mock"

// Publisher is a mock implementation of publisher.Publisher
type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(topic string, payload any) error {
	args := m.Called(topic, payload)
	return args.Error(0)
}

func (m *Publisher) Close() {
	m.Called()
}
