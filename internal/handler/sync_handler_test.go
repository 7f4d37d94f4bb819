package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gstims/internal/domain"
	"gstims/internal/handler"
	"gstims/internal/service"
	"gstims/mocks"
)

type syncHandlerMocks struct {
	returnLogRepo *mocks.MockReturnLogRepo
	portal        *mocks.MockPortalClient
	queue         *mocks.MockTaskQueue
}

func setupSyncRouter() (*gin.Engine, *syncHandlerMocks) {
	m := &syncHandlerMocks{
		returnLogRepo: new(mocks.MockReturnLogRepo),
		portal:        new(mocks.MockPortalClient),
		queue:         new(mocks.MockTaskQueue),
	}
	inwardRepo := new(mocks.MockInwardSupplyRepo)
	syncService := service.NewSyncService(
		inwardRepo,
		m.returnLogRepo,
		new(mocks.MockIntegrationRequestRepo),
		service.NewUploadBatcher(inwardRepo),
		m.portal,
		m.queue,
		new(mocks.MockNotifier),
	)
	h := handler.NewSyncHandler(syncService)

	r := gin.New()
	r.POST("/ims/download", h.Download)
	r.POST("/ims/save", h.Save)
	r.GET("/ims/action-status", h.ActionStatus)
	return r, m
}

func TestSyncHandler_Download_Accepted(t *testing.T) {
	r, m := setupSyncRouter()

	m.portal.On("ValidateAuthToken", mock.Anything, testGSTIN).Return(nil)
	m.returnLogRepo.On("HasUnprocessedAction", mock.Anything, domain.ReturnLogName(testGSTIN)).
		Return(false, nil)
	m.queue.On("Submit", mock.AnythingOfType("port.Task")).Return(nil)

	w := postJSON(r, "/ims/download", gin.H{"company_gstin": testGSTIN})

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestSyncHandler_Save_RequiresPriorDownload(t *testing.T) {
	r, m := setupSyncRouter()

	m.returnLogRepo.On("Get", mock.Anything, domain.ReturnLogName(testGSTIN)).
		Return(nil, domain.ErrReturnLogNotFound)

	w := postJSON(r, "/ims/save", gin.H{"company_gstin": testGSTIN})

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "RETURN_LOG_NOT_FOUND", resp.Error.Code)
}

func TestSyncHandler_ActionStatus_ValidatesRequestType(t *testing.T) {
	r, _ := setupSyncRouter()

	req := httptest.NewRequest(http.MethodGet,
		"/ims/action-status?company_gstin="+testGSTIN+"&request_type=delete", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyncHandler_ActionStatus_NothingPending(t *testing.T) {
	r, m := setupSyncRouter()

	m.returnLogRepo.On("FirstUnprocessedAction", mock.Anything, domain.ReturnLogName(testGSTIN), domain.RequestTypeSave).
		Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/ims/action-status?company_gstin="+testGSTIN+"&request_type=save", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status_cd":"P"`)
}
