package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	identityapp "github.com/hostelms/backend/internal/application/identity"
	ledgerapp "github.com/hostelms/backend/internal/application/ledger"
	studentapp "github.com/hostelms/backend/internal/application/student"
	"github.com/hostelms/backend/internal/infrastructure/auth"
	"github.com/hostelms/backend/internal/infrastructure/config"
	"github.com/hostelms/backend/internal/infrastructure/persistence"
	"github.com/hostelms/backend/internal/infrastructure/persistence/models"
	"github.com/hostelms/backend/internal/interfaces/http/dto"
	"github.com/hostelms/backend/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testAPI wires the full HTTP stack over an in-memory database
type testAPI struct {
	engine      *gin.Engine
	db          *gorm.DB
	authHandler *AuthHandler
}

func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.StudentModel{},
		&models.UserModel{},
		&models.FeeAccountModel{},
		&models.InstallmentReceiptModel{},
		&models.PendingPaymentModel{},
		&models.RenewalHistoryModel{},
		&models.FeeRevisionModel{},
		&models.SequenceCounterModel{},
	))

	studentRepo := persistence.NewGormStudentRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	accountRepo := persistence.NewGormFeeAccountRepository(db)
	receiptRepo := persistence.NewGormInstallmentReceiptRepository(db)
	pendingRepo := persistence.NewGormPendingPaymentRepository(db)
	renewalRepo := persistence.NewGormRenewalHistoryRepository(db)
	revisionRepo := persistence.NewGormFeeRevisionRepository(db)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-for-handler-tests",
		Expiration: time.Hour,
		Issuer:     "hostelms-test",
	})

	studentService := studentapp.NewStudentService(studentRepo)
	installmentService := ledgerapp.NewInstallmentService(studentRepo, accountRepo, receiptRepo)
	pendingService := ledgerapp.NewPendingPaymentService(studentRepo, accountRepo, receiptRepo, pendingRepo)
	renewalService := ledgerapp.NewRenewalService(studentRepo, accountRepo, renewalRepo)
	queryService := ledgerapp.NewQueryService(accountRepo, receiptRepo, revisionRepo)
	authService := identityapp.NewAuthService(userRepo, jwtService, zap.NewNop())

	engine := gin.New()
	api := engine.Group("/api/v1")

	authHandler := NewAuthHandler(authService)

	NewStudentHandler(studentService, renewalService).RegisterRoutes(api)
	NewLedgerHandler(installmentService, pendingService, queryService).RegisterRoutes(api)
	authHandler.RegisterRoutes(api)
	NewSystemHandler(nil).RegisterRoutes(api)

	return &testAPI{engine: engine, db: db, authHandler: authHandler}
}

// do performs a request with an optional JSON body and decodes the envelope
func (a *testAPI) do(t *testing.T, method, path string, body any) (int, dto.Response) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var resp dto.Response
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w.Code, resp
}

// registerStudent admits a student through the API and returns its ID
func (a *testAPI) registerStudent(t *testing.T, admissionNumber, name string, annualFee float64) string {
	t.Helper()

	code, resp := a.do(t, http.MethodPost, "/api/v1/students", RegisterStudentRequest{
		AdmissionNumber: admissionNumber,
		FullName:        name,
		AnnualFee:       annualFee,
		AcademicYear:    "2025-26",
	})
	require.Equal(t, http.StatusCreated, code)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	id, ok := data["ID"].(string)
	require.True(t, ok, "student response should carry an ID")
	return id
}

func dataField(t *testing.T, resp dto.Response, key string) any {
	t.Helper()
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok, "response data should be an object")
	return data[key]
}

func errorCode(resp dto.Response) string {
	if resp.Error == nil {
		return ""
	}
	return resp.Error.Code
}
