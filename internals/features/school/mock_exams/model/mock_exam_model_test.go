package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validExam() *MockExamModel {
	return &MockExamModel{
		MockExamTitle:     "Tryout UTBK Gelombang 1",
		MockExamDate:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		MockExamStartTime: "07:30",
		MockExamEndTime:   "10:00",
		MockExamMaxScore:  100,
	}
}

func TestMockExamBeforeSave_Valid(t *testing.T) {
	m := validExam()
	require.NoError(t, m.BeforeSave(nil))
	assert.Equal(t, MockExamStatusScheduled, m.MockExamStatus) // default saat kosong
}

func TestMockExamBeforeSave_ClockValidation(t *testing.T) {
	m := validExam()
	m.MockExamStartTime = "7:30" // harus dua digit
	assert.Error(t, m.BeforeSave(nil))

	// Jam satu digit lolos time.Parse tapi merusak urutan leksikografis;
	// harus ditolak walau end > start secara jam.
	m = validExam()
	m.MockExamStartTime = "7:30"
	m.MockExamEndTime = "8:30"
	assert.Error(t, m.BeforeSave(nil))

	m = validExam()
	m.MockExamEndTime = "25:00"
	assert.Error(t, m.BeforeSave(nil))

	m = validExam()
	m.MockExamEndTime = "09:300"
	assert.Error(t, m.BeforeSave(nil))

	m = validExam()
	m.MockExamEndTime = m.MockExamStartTime // end harus > start
	assert.Error(t, m.BeforeSave(nil))

	m = validExam()
	m.MockExamStartTime = "10:00"
	m.MockExamEndTime = "07:30"
	assert.Error(t, m.BeforeSave(nil))
}

func TestMockExamBeforeSave_StatusAndScore(t *testing.T) {
	m := validExam()
	m.MockExamStatus = " Completed "
	require.NoError(t, m.BeforeSave(nil))
	assert.Equal(t, MockExamStatusCompleted, m.MockExamStatus)

	m = validExam()
	m.MockExamStatus = "postponed"
	assert.Error(t, m.BeforeSave(nil))

	m = validExam()
	m.MockExamMaxScore = 0
	assert.Error(t, m.BeforeSave(nil))

	m = validExam()
	m.MockExamTitle = "   "
	assert.Error(t, m.BeforeSave(nil))
}
