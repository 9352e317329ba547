package instructorController_test

import (
	instructorController "coursex/controllers/instructor"
	"coursex/database"
	"coursex/models"
	"encoding/json"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type revenueData struct {
	TotalRevenue  float64                              `json:"total_revenue"`
	TotalFee      float64                              `json:"total_platform_fee"`
	TotalEarnings float64                              `json:"total_instructor_earnings"`
	TotalSales    int                                  `json:"total_sales"`
	CourseRevenue []instructorController.CourseRevenue `json:"course_revenue"`
	RecentSales   []models.Payment                     `json:"recent_sales"`
}

func getRevenue(t *testing.T, app *fiber.App, token string) revenueData {
	t.Helper()

	resp := doRequest(t, app, "GET", "/api/instructor/revenue", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var data revenueData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data
}

func TestRevenueSplit(t *testing.T) {
	app := setupApp(t)

	instructor, token := createUser(t, "instructor@example.com", models.RoleInstructor)
	buyer, _ := createUser(t, "buyer@example.com", models.RoleStudent)
	course := createCourse(t, instructor.ID, "profiling-go-services", 49.99)

	recordSale(t, buyer.ID, course.ID, 49.99, models.PaymentStatusCompleted)

	data := getRevenue(t, app, token)
	assert.Equal(t, 49.99, data.TotalRevenue)
	assert.Equal(t, 5.00, data.TotalFee)
	assert.Equal(t, 44.99, data.TotalEarnings)
	assert.Equal(t, 1, data.TotalSales)

	require.Len(t, data.CourseRevenue, 1)
	row := data.CourseRevenue[0]
	assert.Equal(t, course.ID, row.CourseID)
	assert.Equal(t, 1, row.Sales)
	assert.Equal(t, 49.99, row.Revenue)
}

func TestRevenueIgnoresPendingPayments(t *testing.T) {
	app := setupApp(t)

	instructor, token := createUser(t, "instructor@example.com", models.RoleInstructor)
	buyer, _ := createUser(t, "buyer@example.com", models.RoleStudent)
	course := createCourse(t, instructor.ID, "profiling-go-services", 49.99)

	recordSale(t, buyer.ID, course.ID, 49.99, models.PaymentStatusPending)
	recordSale(t, buyer.ID, course.ID, 49.99, models.PaymentStatusFailed)

	data := getRevenue(t, app, token)
	assert.Equal(t, 0.0, data.TotalRevenue)
	assert.Equal(t, 0, data.TotalSales)
	assert.Empty(t, data.CourseRevenue)
}

func TestRevenueBreakdownExcludesZeroSalesAndSortsDesc(t *testing.T) {
	app := setupApp(t)

	instructor, token := createUser(t, "instructor@example.com", models.RoleInstructor)
	buyerA, _ := createUser(t, "a@example.com", models.RoleStudent)
	buyerB, _ := createUser(t, "b@example.com", models.RoleStudent)

	small := createCourse(t, instructor.ID, "small-course", 10)
	big := createCourse(t, instructor.ID, "big-course", 100)
	createCourse(t, instructor.ID, "unsold-course", 50)

	recordSale(t, buyerA.ID, small.ID, 10, models.PaymentStatusCompleted)
	recordSale(t, buyerA.ID, big.ID, 100, models.PaymentStatusCompleted)
	recordSale(t, buyerB.ID, big.ID, 100, models.PaymentStatusCompleted)

	data := getRevenue(t, app, token)
	assert.Equal(t, 3, data.TotalSales)
	assert.Equal(t, 210.0, data.TotalRevenue)

	require.Len(t, data.CourseRevenue, 2)
	assert.Equal(t, big.ID, data.CourseRevenue[0].CourseID)
	assert.Equal(t, 200.0, data.CourseRevenue[0].Revenue)
	assert.Equal(t, small.ID, data.CourseRevenue[1].CourseID)

	assert.Len(t, data.RecentSales, 3)
}

func TestRevenueOnlyCountsOwnCourses(t *testing.T) {
	app := setupApp(t)

	instructor, token := createUser(t, "instructor@example.com", models.RoleInstructor)
	other, _ := createUser(t, "other@example.com", models.RoleInstructor)
	buyer, _ := createUser(t, "buyer@example.com", models.RoleStudent)

	createCourse(t, instructor.ID, "mine", 20)
	theirs := createCourse(t, other.ID, "theirs", 30)

	recordSale(t, buyer.ID, theirs.ID, 30, models.PaymentStatusCompleted)

	data := getRevenue(t, app, token)
	assert.Equal(t, 0.0, data.TotalRevenue)
	assert.Empty(t, data.RecentSales)
}

func TestRevenueRequiresInstructorRole(t *testing.T) {
	app := setupApp(t)

	_, token := createUser(t, "student@example.com", models.RoleStudent)

	resp := doRequest(t, app, "GET", "/api/instructor/revenue", token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestInstructorCoursesWithCounts(t *testing.T) {
	app := setupApp(t)

	instructor, token := createUser(t, "instructor@example.com", models.RoleInstructor)
	student, _ := createUser(t, "student@example.com", models.RoleStudent)
	course := createCourse(t, instructor.ID, "mine", 0)

	enrollment := models.Enrollment{StudentID: student.ID, CourseID: course.ID}
	require.NoError(t, database.Database.Db.Create(&enrollment).Error)
	review := models.Review{UserID: student.ID, CourseID: course.ID, Rating: 5}
	require.NoError(t, database.Database.Db.Create(&review).Error)

	resp := doRequest(t, app, "GET", "/api/instructor/courses", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var courses []struct {
		models.Course
		EnrollmentCount int64 `json:"enrollment_count"`
		ReviewCount     int64 `json:"review_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &courses))
	require.Len(t, courses, 1)
	assert.Equal(t, int64(1), courses[0].EnrollmentCount)
	assert.Equal(t, int64(1), courses[0].ReviewCount)
}
