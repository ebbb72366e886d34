package tests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// TestProgress runs after TestAuth, which logs in and stores jwtToken.
func TestProgress(t *testing.T) {
	t.Run("SaveFocusSession", testSaveFocusSession)
	t.Run("ReviewFlashcard", testReviewFlashcard)
	t.Run("GetProgress", testGetProgress)
}

func testSaveFocusSession(t *testing.T) {
	// Two focus sessions on the same day must accumulate, not overwrite
	for _, minutes := range []int{25, 15} {
		sessionData := map[string]interface{}{
			"duration_minutes": minutes,
			"kind":             "focus",
		}
		jsonData, _ := json.Marshal(sessionData)

		req := httptest.NewRequest("POST", "/api/pomodoro", bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", jwtToken)

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	req := httptest.NewRequest("GET", "/api/progress/today", nil)
	req.Header.Set("Authorization", jwtToken)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var today map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&today)
	assert.Equal(t, 40, int(today["minutes_studied"].(float64)))
	assert.Equal(t, 2, int(today["pomodoro_sessions"].(float64)))

	// The session list's today counter must agree with the daily record
	listReq := httptest.NewRequest("GET", "/api/pomodoro", nil)
	listReq.Header.Set("Authorization", jwtToken)

	listResp, err := app.Test(listReq)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, listResp.StatusCode)

	var list map[string]interface{}
	json.NewDecoder(listResp.Body).Decode(&list)
	assert.Equal(t, 2, int(list["today_focus"].(float64)))
}

func testReviewFlashcard(t *testing.T) {
	// Create a subject and a flashcard to review
	subjectData := map[string]interface{}{
		"name": "Biology",
	}
	jsonData, _ := json.Marshal(subjectData)

	subjectReq := httptest.NewRequest("POST", "/api/subjects", bytes.NewBuffer(jsonData))
	subjectReq.Header.Set("Content-Type", "application/json")
	subjectReq.Header.Set("Authorization", jwtToken)

	subjectResp, _ := app.Test(subjectReq)
	var subject map[string]interface{}
	json.NewDecoder(subjectResp.Body).Decode(&subject)
	subjectID := int(subject["ID"].(float64))

	cardData := map[string]interface{}{
		"subject_id": subjectID,
		"question":   "What is the powerhouse of the cell?",
		"answer":     "The mitochondrion",
	}
	cardJson, _ := json.Marshal(cardData)

	cardReq := httptest.NewRequest("POST", "/api/flashcards", bytes.NewBuffer(cardJson))
	cardReq.Header.Set("Content-Type", "application/json")
	cardReq.Header.Set("Authorization", jwtToken)

	cardResp, _ := app.Test(cardReq)
	var card map[string]interface{}
	json.NewDecoder(cardResp.Body).Decode(&card)
	cardID := strconv.Itoa(int(card["ID"].(float64)))

	// One correct and one wrong review
	for _, correct := range []bool{true, false} {
		reviewData := map[string]interface{}{"correct": correct}
		reviewJson, _ := json.Marshal(reviewData)

		req := httptest.NewRequest("POST", "/api/flashcards/"+cardID+"/review", bytes.NewBuffer(reviewJson))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", jwtToken)

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	req := httptest.NewRequest("GET", "/api/progress/today", nil)
	req.Header.Set("Authorization", jwtToken)

	resp, err := app.Test(req)
	assert.NoError(t, err)

	var today map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&today)
	reviewed := int(today["flashcards_reviewed"].(float64))
	correct := int(today["flashcards_correct"].(float64))
	assert.Equal(t, 2, reviewed)
	assert.Equal(t, 1, correct)
	assert.LessOrEqual(t, correct, reviewed)
}

func testGetProgress(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/progress", nil)
	req.Header.Set("Authorization", jwtToken)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)

	weekly := result["weekly"].([]interface{})
	assert.Len(t, weekly, 7)
	monthly := result["monthly"].([]interface{})
	assert.Len(t, monthly, 4)

	// The focus sessions recorded above make today a qualifying day
	assert.GreaterOrEqual(t, result["streak"].(float64), 1.0)

	achievements := result["achievements"].([]interface{})
	assert.Len(t, achievements, 8)
	first := achievements[0].(map[string]interface{})
	assert.Equal(t, "First session", first["label"])
	assert.True(t, first["achieved"].(bool))
}
