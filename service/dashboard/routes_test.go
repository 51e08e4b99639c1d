package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fintrack-app/fintrack-server/cmd/models"
	"github.com/fintrack-app/fintrack-server/cmd/utils"
	"github.com/google/uuid"
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

func seedLedger(t *testing.T, db *gorm.DB) {
	t.Helper()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	rows := []models.Transaction{
		{UserID: 1, Amount: 1000, Category: models.CategoryIncome, Date: day},
		{UserID: 1, Amount: -200, Category: "food", Date: day.Add(time.Hour)},
		{UserID: 1, Amount: -50, Category: "food", Date: day.Add(2 * time.Hour)},
		{UserID: 1, Amount: -30, Category: "transport", Date: day.Add(3 * time.Hour)},
		{UserID: 2, Amount: -999, Category: "other", Date: day},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}
	require.NoError(t, db.Create(&models.Goal{UserID: 1, Name: "fund", TargetAmount: 1000, CurrentAmount: 250}).Error)
}

func getDashboard(t *testing.T, h *DashboardHandler, userID uint) (DashboardView, string) {
	t.Helper()
	r := httptest.NewRequest("GET", "/dashboard", nil)
	r = r.WithContext(context.WithValue(r.Context(), utils.UserIDKey, userID))
	w := httptest.NewRecorder()
	h.GetDashboard(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var view DashboardView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	return view, w.Body.String()
}

func TestGetDashboard(t *testing.T) {
	db := newTestDB(t)
	seedLedger(t, db)
	h := NewDashboardHandler(db)

	view, _ := getDashboard(t, h, 1)

	assert.Equal(t, 720.0, view.Balance)
	assert.Equal(t, map[string]float64{"Food": 250, "Transport": 30}, view.CategorySpending)
	assert.Len(t, view.Transactions, 4, "only the requesting user's rows")

	require.Len(t, view.Goals, 1)
	assert.Equal(t, 25, view.Goals[0].ProgressPercent)
	assert.False(t, view.Goals[0].IsCompleted)

	assert.Equal(t, "Food", view.CategoryMapping["food"])
}

func TestGetDashboardIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	seedLedger(t, db)
	h := NewDashboardHandler(db)

	_, first := getDashboard(t, h, 1)
	_, second := getDashboard(t, h, 1)

	assert.Equal(t, first, second)
}

func TestGetDashboardEmptyLedger(t *testing.T) {
	db := newTestDB(t)
	h := NewDashboardHandler(db)

	view, _ := getDashboard(t, h, 7)

	assert.Equal(t, 0.0, view.Balance)
	assert.Empty(t, view.CategorySpending)
	assert.Empty(t, view.Transactions)
	assert.Empty(t, view.Goals)
}
