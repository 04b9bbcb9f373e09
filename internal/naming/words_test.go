// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPascal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"snake_case_name", "SnakeCaseName"},
		{"kebab-case-name", "KebabCaseName"},
		{"camelCase", "CamelCase"},
		{"HTTPServer", "HTTPServer"},
		{"user id", "UserId"},
		{"2fa_enabled", "X2faEnabled"},
		{"", ""},
		{"already", "Already"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Pascal(tt.in), "Pascal(%q)", tt.in)
	}
}

func TestWords_SplitsAcronymRuns(t *testing.T) {
	assert.Equal(t, []string{"HTTP", "Server"}, Words("HTTPServer"))
	assert.Equal(t, []string{"Order", "Line", "Item"}, Words("OrderLineItem"))
	assert.Equal(t, []string{"XML", "Http", "Request"}, Words("XMLHttpRequest"))
}

func TestCommonSuffix(t *testing.T) {
	tests := []struct {
		names []string
		want  string
	}{
		{[]string{"OrderAddress", "CustomerAddress"}, "Address"},
		{[]string{"OrderLineItem", "InvoiceLineItem"}, "LineItem"},
		{[]string{"OrderAddress", "CustomerName"}, ""},
		{[]string{"OneThing"}, "OneThing"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, commonSuffix(tt.names), "commonSuffix(%v)", tt.names)
	}
}

func TestValidSharedName_RejectsGenericSuffixes(t *testing.T) {
	assert.True(t, validSharedName("Address"))
	assert.False(t, validSharedName("Item"), "forbidden suffix")
	assert.False(t, validSharedName("Tag"), "too short")
	assert.False(t, validSharedName("value"), "lowercase start")
}
