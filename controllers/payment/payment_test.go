package paymentController_test

import (
	"coursex/config"
	"coursex/database"
	"coursex/models"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intentData struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	PaymentID       uint   `json:"paymentId"`
}

func createIntent(t *testing.T, app *fiber.App, token string, courseID uint) intentData {
	t.Helper()

	resp := doRequest(t, app, "POST", "/api/payments/create-intent", token, fiber.Map{"courseId": courseID})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var data intentData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data
}

func TestCreateIntentForPaidCourse(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, "instructor@example.com", models.RoleInstructor)
	student, token := createUser(t, "student@example.com", models.RoleStudent)
	course := createCourse(t, instructor.ID, 49.99)

	data := createIntent(t, app, token, course.ID)

	// Without a gateway key the mock intent reference is used
	assert.True(t, strings.HasPrefix(data.PaymentIntentID, "pi_mock_"))
	assert.True(t, strings.HasPrefix(data.ClientSecret, "cs_mock_"))

	var payment models.Payment
	require.NoError(t, database.Database.Db.First(&payment, data.PaymentID).Error)
	assert.Equal(t, student.ID, payment.UserID)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Equal(t, 49.99, payment.Amount)
	assert.Equal(t, data.PaymentIntentID, payment.PaymentIntentID)
}

func TestCreateIntentForFreeCourse(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, "instructor@example.com", models.RoleInstructor)
	_, token := createUser(t, "student@example.com", models.RoleStudent)
	course := createCourse(t, instructor.ID, 0)

	resp := doRequest(t, app, "POST", "/api/payments/create-intent", token, fiber.Map{"courseId": course.ID})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, "This course is free. Please use the enroll endpoint.", env.Message)
}

func TestCreateIntentCapturesPriceAtIntentTime(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, "instructor@example.com", models.RoleInstructor)
	_, token := createUser(t, "student@example.com", models.RoleStudent)
	course := createCourse(t, instructor.ID, 49.99)

	data := createIntent(t, app, token, course.ID)

	// A later price change does not affect the in-flight payment
	require.NoError(t, database.Database.Db.Model(&models.Course{}).Where("id = ?", course.ID).Update("price", 99.99).Error)

	var payment models.Payment
	require.NoError(t, database.Database.Db.First(&payment, data.PaymentID).Error)
	assert.Equal(t, 49.99, payment.Amount)
}

func TestConfirmPaymentEnrolls(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, "instructor@example.com", models.RoleInstructor)
	student, token := createUser(t, "student@example.com", models.RoleStudent)
	course := createCourse(t, instructor.ID, 49.99)

	data := createIntent(t, app, token, course.ID)

	resp := doRequest(t, app, "POST", "/api/payments/confirm", token, fiber.Map{
		"paymentIntentId": data.PaymentIntentID,
		"paymentId":       data.PaymentID,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payment models.Payment
	require.NoError(t, database.Database.Db.First(&payment, data.PaymentID).Error)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)

	var enrollment models.Enrollment
	require.NoError(t, database.Database.Db.Where("student_id = ? AND course_id = ?", student.ID, course.ID).First(&enrollment).Error)
	assert.Equal(t, 0, enrollment.Progress)
}

func TestConfirmPaymentIsIdempotent(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, "instructor@example.com", models.RoleInstructor)
	student, token := createUser(t, "student@example.com", models.RoleStudent)
	course := createCourse(t, instructor.ID, 49.99)

	data := createIntent(t, app, token, course.ID)

	body := fiber.Map{"paymentIntentId": data.PaymentIntentID, "paymentId": data.PaymentID}
	resp := doRequest(t, app, "POST", "/api/payments/confirm", token, body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/api/payments/confirm", token, body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var enrollments int64
	database.Database.Db.Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		Count(&enrollments)
	assert.Equal(t, int64(1), enrollments)
}

func TestConfirmPaymentRejectsForeignIntent(t *testing.T) {
	app := setupApp(t)

	instructorA, _ := createUser(t, "a@example.com", models.RoleInstructor)
	instructorB, _ := createUser(t, "b@example.com", models.RoleInstructor)
	student, token := createUser(t, "student@example.com", models.RoleStudent)
	first := createCourse(t, instructorA.ID, 49.99)
	second := createCourse(t, instructorB.ID, 29.99)

	firstIntent := createIntent(t, app, token, first.ID)
	secondIntent := createIntent(t, app, token, second.ID)

	// Confirming the first payment with the second payment's intent
	// must not go through
	resp := doRequest(t, app, "POST", "/api/payments/confirm", token, fiber.Map{
		"paymentIntentId": secondIntent.PaymentIntentID,
		"paymentId":       firstIntent.PaymentID,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var payment models.Payment
	require.NoError(t, database.Database.Db.First(&payment, firstIntent.PaymentID).Error)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)

	var enrollments int64
	database.Database.Db.Model(&models.Enrollment{}).Where("student_id = ?", student.ID).Count(&enrollments)
	assert.Equal(t, int64(0), enrollments)
}

func TestCreateIntentGatewayFailure(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, "instructor@example.com", models.RoleInstructor)
	student, token := createUser(t, "student@example.com", models.RoleStudent)
	course := createCourse(t, instructor.ID, 49.99)

	// Point the gateway client at a dead endpoint
	prevKey := config.AppConfig.StripeSecretKey
	prevURL := config.AppConfig.StripeApiURL
	config.AppConfig.StripeSecretKey = "sk_test_unreachable"
	config.AppConfig.StripeApiURL = "http://127.0.0.1:1"
	defer func() {
		config.AppConfig.StripeSecretKey = prevKey
		config.AppConfig.StripeApiURL = prevURL
	}()

	resp := doRequest(t, app, "POST", "/api/payments/create-intent", token, fiber.Map{"courseId": course.ID})
	require.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	// The half-open pending row does not linger
	var count int64
	database.Database.Db.Model(&models.Payment{}).Where("user_id = ?", student.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestConfirmPaymentOwnership(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, "instructor@example.com", models.RoleInstructor)
	_, buyerToken := createUser(t, "buyer@example.com", models.RoleStudent)
	_, strangerToken := createUser(t, "stranger@example.com", models.RoleStudent)
	course := createCourse(t, instructor.ID, 49.99)

	data := createIntent(t, app, buyerToken, course.ID)

	resp := doRequest(t, app, "POST", "/api/payments/confirm", strangerToken, fiber.Map{
		"paymentIntentId": data.PaymentIntentID,
		"paymentId":       data.PaymentID,
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCreateIntentAfterPurchaseConflicts(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, "instructor@example.com", models.RoleInstructor)
	_, token := createUser(t, "student@example.com", models.RoleStudent)
	course := createCourse(t, instructor.ID, 49.99)

	data := createIntent(t, app, token, course.ID)
	resp := doRequest(t, app, "POST", "/api/payments/confirm", token, fiber.Map{
		"paymentIntentId": data.PaymentIntentID,
		"paymentId":       data.PaymentID,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/api/payments/create-intent", token, fiber.Map{"courseId": course.ID})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestGetPurchases(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, "instructor@example.com", models.RoleInstructor)
	_, token := createUser(t, "student@example.com", models.RoleStudent)
	course := createCourse(t, instructor.ID, 49.99)

	data := createIntent(t, app, token, course.ID)
	resp := doRequest(t, app, "POST", "/api/payments/confirm", token, fiber.Map{
		"paymentIntentId": data.PaymentIntentID,
		"paymentId":       data.PaymentID,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/payments/purchases", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var purchases []models.Payment
	require.NoError(t, json.Unmarshal(env.Data, &purchases))
	require.Len(t, purchases, 1)
	assert.Equal(t, course.ID, purchases[0].CourseID)
	assert.Equal(t, course.Title, purchases[0].Course.Title)
}
