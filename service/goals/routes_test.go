package goals_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fintrack-app/fintrack-server/cmd/models"
	"github.com/fintrack-app/fintrack-server/cmd/utils"
	"github.com/fintrack-app/fintrack-server/service/goals"
	"github.com/fintrack-app/fintrack-server/service/ledger"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Transaction{}, &models.Goal{}))
	return db
}

func doRequest(t *testing.T, handler http.HandlerFunc, method string, body interface{}, userID uint, vars map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, "/goals", &buf)
	r = r.WithContext(context.WithValue(r.Context(), utils.UserIDKey, userID))
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}

func TestCreateGoalReturnsProgressFields(t *testing.T) {
	db := newTestDB(t)
	h := goals.NewGoalHandler(db)

	w := doRequest(t, h.CreateGoal, "POST", goals.GoalRequest{
		Name:          "vacation",
		TargetAmount:  1000,
		CurrentAmount: 250,
	}, 1, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var view goals.GoalView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "vacation", view.Name)
	assert.Equal(t, 25, view.ProgressPercent)
	assert.False(t, view.IsCompleted)
}

func TestCreateGoalValidation(t *testing.T) {
	tests := []struct {
		name string
		req  goals.GoalRequest
	}{
		{"missing name", goals.GoalRequest{TargetAmount: 100}},
		{"negative target", goals.GoalRequest{Name: "g", TargetAmount: -1}},
		{"negative current", goals.GoalRequest{Name: "g", TargetAmount: 100, CurrentAmount: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			h := goals.NewGoalHandler(db)

			w := doRequest(t, h.CreateGoal, "POST", tt.req, 1, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var count int64
			db.Model(&models.Goal{}).Count(&count)
			assert.Zero(t, count)
		})
	}
}

func TestGetGoalsAnnotatesProgress(t *testing.T) {
	db := newTestDB(t)
	h := goals.NewGoalHandler(db)

	require.NoError(t, db.Create(&models.Goal{UserID: 1, Name: "a", TargetAmount: 1000, CurrentAmount: 1050}).Error)
	require.NoError(t, db.Create(&models.Goal{UserID: 1, Name: "b", TargetAmount: 0, CurrentAmount: 500}).Error)
	require.NoError(t, db.Create(&models.Goal{UserID: 2, Name: "c", TargetAmount: 10, CurrentAmount: 0}).Error)

	w := doRequest(t, h.GetGoals, "GET", nil, 1, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var views []goals.GoalView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 2)

	assert.Equal(t, 100, views[0].ProgressPercent)
	assert.True(t, views[0].IsCompleted)

	// Zero target: progress pinned at 0, completion still holds.
	assert.Equal(t, 0, views[1].ProgressPercent)
	assert.True(t, views[1].IsCompleted)
}

func TestUpdateGoal(t *testing.T) {
	db := newTestDB(t)
	h := goals.NewGoalHandler(db)

	goal := models.Goal{UserID: 1, Name: "old", TargetAmount: 100, CurrentAmount: 0}
	require.NoError(t, db.Create(&goal).Error)

	w := doRequest(t, h.UpdateGoal, "PUT", goals.GoalRequest{
		Name:          "new",
		TargetAmount:  200,
		CurrentAmount: 150,
	}, 1, map[string]string{"id": fmt.Sprint(goal.ID)})
	require.Equal(t, http.StatusOK, w.Code)

	var view goals.GoalView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "new", view.Name)
	assert.Equal(t, 75, view.ProgressPercent)
}

func TestGoalOwnership(t *testing.T) {
	db := newTestDB(t)
	h := goals.NewGoalHandler(db)

	goal := models.Goal{UserID: 1, Name: "mine", TargetAmount: 100}
	require.NoError(t, db.Create(&goal).Error)
	vars := map[string]string{"id": fmt.Sprint(goal.ID)}

	w := doRequest(t, h.GetGoal, "GET", nil, 2, vars)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, h.DeleteGoal, "DELETE", nil, 2, vars)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, h.GetGoal, "GET", nil, 1, map[string]string{"id": "9999"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteGoal(t *testing.T) {
	db := newTestDB(t)
	h := goals.NewGoalHandler(db)

	goal := models.Goal{UserID: 1, Name: "done", TargetAmount: 100}
	require.NoError(t, db.Create(&goal).Error)

	w := doRequest(t, h.DeleteGoal, "DELETE", nil, 1, map[string]string{"id": fmt.Sprint(goal.ID)})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Goal{}).Count(&count)
	assert.Zero(t, count)
}

func TestPropagateIncomeAppliesFullAmountPerGoal(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&models.Goal{UserID: 1, Name: "a", TargetAmount: 100}).Error)
	require.NoError(t, db.Create(&models.Goal{UserID: 1, Name: "b", TargetAmount: 100}).Error)
	require.NoError(t, db.Create(&models.Goal{UserID: 2, Name: "other", TargetAmount: 100}).Error)

	err := goals.PropagateIncome(db, ledger.IncomeRecorded{UserID: 1, Amount: 50})
	require.NoError(t, err)

	var mine []models.Goal
	require.NoError(t, db.Where("user_id = ?", 1).Order("id").Find(&mine).Error)
	assert.Equal(t, 50.0, mine[0].CurrentAmount)
	assert.Equal(t, 50.0, mine[1].CurrentAmount)

	var other models.Goal
	require.NoError(t, db.Where("user_id = ?", 2).First(&other).Error)
	assert.Equal(t, 0.0, other.CurrentAmount, "other users' goals stay untouched")
}
