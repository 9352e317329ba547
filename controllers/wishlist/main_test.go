package wishlistController_test

import (
	"bytes"
	"coursex/config"
	"coursex/database"
	"coursex/middleware"
	"coursex/models"
	"coursex/routers/wishlistRoutes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.LoadConfig()
	database.ConnectTestDb()
	os.Exit(m.Run())
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	database.ResetTestDb()

	app := fiber.New()
	wishlistRoutes.SetupWishlistRoutes(app)
	return app
}

func createUser(t *testing.T, name, email, role string) (models.User, string) {
	t.Helper()

	user := models.User{Name: name, Email: email, Password: "-", Role: role}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	return user, token
}

func createCourse(t *testing.T, instructorID uint, title string) models.Course {
	t.Helper()

	course := models.Course{
		Title:        title,
		Slug:         fmt.Sprintf("%s-%d", title, instructorID),
		Description:  "Description",
		Category:     "programming",
		ThumbnailURL: "https://cdn.example.com/thumb.png",
		Price:        19.99,
		Published:    true,
		InstructorID: instructorID,
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}
