package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rohanwest/pancake/app/models"
	"github.com/rohanwest/pancake/app/routes"
	"github.com/rohanwest/pancake/app/services"
	"github.com/rohanwest/pancake/config"
	"github.com/rohanwest/pancake/pkg/database"
	"github.com/rohanwest/pancake/pkg/router"
	"github.com/rohanwest/pancake/pkg/storage"
	"github.com/rohanwest/pancake/pkg/ws"
)

type envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// newTestHandler wires the full route table over a fresh in-memory database.
func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Order{}, &models.Reward{}))
	database.DB = db

	config.Set("STORAGE_DISK", "local")
	config.Set("STORAGE_LOCAL_ROOT", t.TempDir())
	storage.Connect()

	hub := ws.NewHub()
	go hub.Run()

	r := router.New()
	routes.RegisterAPI(r,
		services.NewAuthService(),
		services.NewOrderService(),
		services.NewRewardService(),
		services.NewSnapshotService(),
		hub,
	)
	return r.Handler()
}

func do(t *testing.T, h http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func signup(t *testing.T, h http.Handler, email, password string) models.User {
	t.Helper()
	rec, env := do(t, h, http.MethodPost, "/signup", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	return user
}

func TestSignupAndLoginFlow(t *testing.T) {
	h := newTestHandler(t)

	user := signup(t, h, "alice@example.com", "secret123")
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, user.Token)
	assert.False(t, user.IsAdmin)

	// Duplicate signup is rejected.
	rec, env := do(t, h, http.MethodPost, "/signup", "", map[string]string{
		"email": "alice@example.com", "password": "other",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User already exists", env.Message)

	// Login issues a fresh token.
	rec, env = do(t, h, http.MethodPost, "/login", "", map[string]string{
		"email": "alice@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var loggedIn models.User
	require.NoError(t, json.Unmarshal(env.Data, &loggedIn))
	assert.NotEqual(t, user.Token, loggedIn.Token)

	// Wrong password is a 401 with a non-specific message.
	rec, env = do(t, h, http.MethodPost, "/login", "", map[string]string{
		"email": "alice@example.com", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", env.Message)
}

func TestSignupValidation(t *testing.T) {
	h := newTestHandler(t)

	rec, env := do(t, h, http.MethodPost, "/signup", "", map[string]string{
		"email": "", "password": "",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email and password required", env.Message)
}

func TestOrderLifecycle(t *testing.T) {
	h := newTestHandler(t)

	customer := signup(t, h, "carol@example.com", "secret123")
	master := signup(t, h, config.AdminEmail(), "masterpw")

	// Create an order.
	rec, env := do(t, h, http.MethodPost, "/orders", "", map[string]interface{}{
		"userId":    customer.ID,
		"userEmail": customer.Email,
		"items":     []map[string]interface{}{{"name": "short stack", "qty": 1}},
		"total":     8.75,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, models.OrderStatusPending, order.Status)

	// Status change without a token is rejected.
	rec, env = do(t, h, http.MethodPatch, "/orders/"+order.ID, "", map[string]string{
		"status": models.OrderStatusConfirmed,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Unauthorized. Admin access required.", env.Message)

	// A customer token is not enough either.
	rec, _ = do(t, h, http.MethodPatch, "/orders/"+order.ID, customer.Token, map[string]string{
		"status": models.OrderStatusConfirmed,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// An admin token works.
	rec, env = do(t, h, http.MethodPatch, "/orders/"+order.ID, master.Token, map[string]string{
		"status": models.OrderStatusConfirmed,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Order
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, models.OrderStatusConfirmed, updated.Status)

	// Unknown order id.
	rec, env = do(t, h, http.MethodPatch, "/orders/nope", master.Token, map[string]string{
		"status": models.OrderStatusCancelled,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order not found", env.Message)

	// The admin list shows the order.
	rec, env = do(t, h, http.MethodGet, "/admin/orders", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusConfirmed, orders[0].Status)
}

func TestRewardEndpoints(t *testing.T) {
	h := newTestHandler(t)

	user := signup(t, h, "dave@example.com", "secret123")

	rec, env := do(t, h, http.MethodPost, "/rewards", "", map[string]interface{}{
		"userId": user.ID,
		"title":  "Free syrup",
		"points": 25,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var reward models.Reward
	require.NoError(t, json.Unmarshal(env.Data, &reward))
	assert.Equal(t, models.RewardStatusIssued, reward.Status)

	// Fetch by owner.
	rec, env = do(t, h, http.MethodGet, "/rewards/"+user.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []models.Reward
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, reward.ID, mine[0].ID)

	// Redeem.
	rec, env = do(t, h, http.MethodPatch, "/rewards/"+reward.ID, "", map[string]string{
		"status": models.RewardStatusRedeemed,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var redeemed models.Reward
	require.NoError(t, json.Unmarshal(env.Data, &redeemed))
	assert.Equal(t, models.RewardStatusRedeemed, redeemed.Status)

	// Unknown reward id.
	rec, env = do(t, h, http.MethodPatch, "/rewards/nope", "", map[string]string{
		"status": models.RewardStatusRedeemed,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Reward not found", env.Message)

	// Rejects a status outside the allowed set.
	rec, _ = do(t, h, http.MethodPost, "/rewards", "", map[string]interface{}{
		"userId": user.ID,
		"title":  "Bad status",
		"status": "golden",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPromotionRules(t *testing.T) {
	h := newTestHandler(t)

	master := signup(t, h, config.AdminEmail(), "masterpw")
	target := signup(t, h, "erin@example.com", "secret123")

	// Only the master admin may promote. A plain admin is still refused.
	rec, env := do(t, h, http.MethodPost, "/admin/users/"+target.ID+"/promote", target.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Only the master admin can perform this action.", env.Message)

	rec, env = do(t, h, http.MethodPost, "/admin/users/"+target.ID+"/promote", master.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User promoted", env.Message)

	// The freshly promoted admin still cannot promote others.
	other := signup(t, h, "frank@example.com", "secret123")
	rec, _ = do(t, h, http.MethodPost, "/admin/users/"+other.ID+"/promote", target.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Unknown target.
	rec, env = do(t, h, http.MethodPost, "/admin/users/nope/promote", master.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", env.Message)

	// The user list reflects the promotion and hides passwords.
	rec, env = do(t, h, http.MethodGet, "/admin/users", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, string(env.Data), "password")
	var users []models.User
	require.NoError(t, json.Unmarshal(env.Data, &users))
	byEmail := map[string]models.User{}
	for _, u := range users {
		byEmail[u.Email] = u
	}
	assert.True(t, byEmail["erin@example.com"].IsAdmin)
	assert.False(t, byEmail["frank@example.com"].IsAdmin)
}

func TestSnapshotEndpoints(t *testing.T) {
	h := newTestHandler(t)

	master := signup(t, h, config.AdminEmail(), "masterpw")
	signup(t, h, "grace@example.com", "secret123")

	// Master-only.
	rec, _ := do(t, h, http.MethodPost, "/admin/snapshot", "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env := do(t, h, http.MethodPost, "/admin/snapshot", master.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var out map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.NotEmpty(t, out["path"])

	rec, env = do(t, h, http.MethodPost, "/admin/snapshot/restore", master.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var counts map[string]int
	require.NoError(t, json.Unmarshal(env.Data, &counts))
	assert.Equal(t, 2, counts["users"])
}

func TestGraphQLQueries(t *testing.T) {
	h := newTestHandler(t)

	user := signup(t, h, "henry@example.com", "secret123")
	_, _ = do(t, h, http.MethodPost, "/rewards", "", map[string]interface{}{
		"userId": user.ID, "title": "GraphQL treat", "points": 10,
	})

	rec := httptest.NewRecorder()
	body, _ := json.Marshal(map[string]interface{}{
		"query": `{ users { id email isAdmin } userRewards(userId: "` + user.ID + `") { title points } }`,
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result struct {
		Data struct {
			Users []struct {
				ID    string `json:"id"`
				Email string `json:"email"`
			} `json:"users"`
			UserRewards []struct {
				Title  string `json:"title"`
				Points int    `json:"points"`
			} `json:"userRewards"`
		} `json:"data"`
		Errors []interface{} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Empty(t, result.Errors)
	require.Len(t, result.Data.Users, 1)
	assert.Equal(t, "henry@example.com", result.Data.Users[0].Email)
	require.Len(t, result.Data.UserRewards, 1)
	assert.Equal(t, "GraphQL treat", result.Data.UserRewards[0].Title)
}
