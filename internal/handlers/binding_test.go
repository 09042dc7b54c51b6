package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type repaymentPayload struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Note   string  `json:"note"`
}

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    repaymentPayload
		expectError bool
	}{
		{
			name:     "Nested Structure",
			key:      "repayment",
			body:     `{"repayment": {"amount": 150.5, "note": "efectivo"}}`,
			expected: repaymentPayload{Amount: 150.5, Note: "efectivo"},
		},
		{
			name:     "Flat Structure",
			key:      "repayment",
			body:     `{"amount": 80, "note": "transferencia"}`,
			expected: repaymentPayload{Amount: 80, Note: "transferencia"},
		},
		{
			name:     "Missing Key Falls Back To Flat",
			key:      "repayment",
			body:     `{"other": "value", "amount": 40}`,
			expected: repaymentPayload{Amount: 40},
		},
		{
			name:        "Invalid Type",
			key:         "repayment",
			body:        `{"amount": "cien"}`,
			expectError: true,
		},
		{
			name:        "Nested Key Present but Invalid Type",
			key:         "repayment",
			body:        `{"repayment": "some string"}`,
			expectError: true,
		},
		{
			name:        "Fails Validation",
			key:         "repayment",
			body:        `{"repayment": {"amount": -5}}`,
			expectError: true,
		},
		{
			name:        "Missing Required Field",
			key:         "repayment",
			body:        `{"note": "sin monto"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var result repaymentPayload
			err := BindNestedOrFlat(c, tt.key, &result)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}
