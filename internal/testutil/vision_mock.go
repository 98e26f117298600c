package testutil

import (
	"context"
)

// MockVisionClient is a mock implementation of vision.Client for testing.
// It returns predefined OCR text instead of calling the Vision API.
type MockVisionClient struct {
	// MockText is the OCR text to return from DetectText
	MockText string
	// MockError is the error to return from DetectText
	MockError error
	// CallCount tracks how many times DetectText was called
	CallCount int
}

// NewMockVisionClient creates a mock Vision client returning a typical
// well-formed tag.
func NewMockVisionClient() *MockVisionClient {
	return &MockVisionClient{
		MockText: "5.25 g\n21K\n12345678\n150 USD",
	}
}

// DetectText returns the configured MockText and MockError.
func (m *MockVisionClient) DetectText(_ context.Context, _ string) (string, error) {
	m.CallCount++
	if m.MockError != nil {
		return "", m.MockError
	}
	return m.MockText, nil
}

// WithText configures the mock to return the specified OCR text.
func (m *MockVisionClient) WithText(text string) *MockVisionClient {
	m.MockText = text
	return m
}

// WithError configures the mock to return the specified error.
func (m *MockVisionClient) WithError(err error) *MockVisionClient {
	m.MockError = err
	return m
}
