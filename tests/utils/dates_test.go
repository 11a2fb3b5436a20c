package utils_test

import (
	"testing"
	"time"

	"fleetwatch/src/utils"
)

func TestGenerateDates(t *testing.T) {
	tests := []struct {
		startDate   time.Time
		endDate     time.Time
		interval    time.Duration
		expected    []time.Time
		expectError bool
	}{
		{
			startDate: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
			endDate:   time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC),
			interval:  7 * 24 * time.Hour,
			expected: []time.Time{
				time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 8, 8, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 8, 22, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 8, 29, 0, 0, 0, 0, time.UTC),
			},
			expectError: false,
		},
		{
			startDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			endDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			interval:  24 * time.Hour,
			expected: []time.Time{
				time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			expectError: false,
		},
		{
			startDate:   time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC),
			endDate:     time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
			interval:    7 * 24 * time.Hour,
			expected:    nil,
			expectError: true,
		},
	}

	for _, tt := range tests {
		result, err := utils.GenerateDates(tt.startDate, tt.endDate, tt.interval)

		if tt.expectError && err == nil {
			t.Errorf("Expected error, but got none")
		}
		if !tt.expectError && err != nil {
			t.Errorf("Did not expect an error, but got one: %v", err)
		}

		if !tt.expectError {
			if len(result) != len(tt.expected) {
				t.Errorf("Expected %d dates, but got %d", len(tt.expected), len(result))
			}

			for i := range tt.expected {
				if !result[i].Equal(tt.expected[i]) {
					t.Errorf("Expected date %v, but got %v", tt.expected[i], result[i])
				}
			}
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year     int
		month    time.Month
		expected int
	}{
		{2024, time.January, 31},
		{2024, time.February, 29}, // leap year
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}

	for _, tt := range tests {
		got := utils.DaysInMonth(tt.year, tt.month, time.UTC)
		if got != tt.expected {
			t.Errorf("DaysInMonth(%d, %v) = %d, expected %d", tt.year, tt.month, got, tt.expected)
		}
	}
}

func TestClampDayOfMonth(t *testing.T) {
	tests := []struct {
		year     int
		month    time.Month
		day      int
		expected int
	}{
		{2024, time.February, 31, 29},
		{2023, time.February, 30, 28},
		{2024, time.April, 31, 30},
		{2024, time.January, 31, 31},
		{2024, time.June, 15, 15},
	}

	for _, tt := range tests {
		got := utils.ClampDayOfMonth(tt.year, tt.month, tt.day, time.UTC)
		if got != tt.expected {
			t.Errorf("ClampDayOfMonth(%d, %v, %d) = %d, expected %d", tt.year, tt.month, tt.day, got, tt.expected)
		}
	}
}
