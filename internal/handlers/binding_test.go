package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type bindTarget struct {
	Make string `json:"make"`
	Year int    `json:"year"`
}

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    bindTarget
		expectError bool
	}{
		{
			name:        "Nested Structure",
			key:         "vehicle",
			body:        `{"vehicle": {"make": "Toyota", "year": 2022}}`,
			expected:    bindTarget{Make: "Toyota", Year: 2022},
			expectError: false,
		},
		{
			name:        "Flat Structure",
			key:         "vehicle",
			body:        `{"make": "Nissan", "year": 2020}`,
			expected:    bindTarget{Make: "Nissan", Year: 2020},
			expectError: false,
		},
		{
			name:        "Nested Structure with Missing Key Fallback",
			key:         "vehicle",
			body:        `{"other": "value", "make": "Honda", "year": 2019}`,
			expected:    bindTarget{Make: "Honda", Year: 2019},
			expectError: false,
		},
		{
			name:        "Nested Structure with Different Key",
			key:         "lead",
			body:        `{"lead": {"make": "Mazda", "year": 2023}}`,
			expected:    bindTarget{Make: "Mazda", Year: 2023},
			expectError: false,
		},
		{
			name:        "Invalid JSON",
			key:         "vehicle",
			body:        `{"make": "Kia", "year": "invalid"}`, // year is int
			expected:    bindTarget{},
			expectError: true,
		},
		{
			name:        "Nested but Invalid Content",
			key:         "vehicle",
			body:        `{"vehicle": {"make": "Ford", "year": "invalid"}}`,
			expected:    bindTarget{},
			expectError: true,
		},
		{
			name:        "Nested Key Present but Invalid Type",
			key:         "vehicle",
			body:        `{"vehicle": "some string"}`,
			expected:    bindTarget{},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var result bindTarget
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
