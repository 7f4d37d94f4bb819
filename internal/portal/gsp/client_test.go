package gsp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"gstims/internal/config"
	"gstims/internal/domain"
	"gstims/internal/portal/gsp"
)

const testGSTIN = "24AAACC1206D1ZM"

func newTestClient(t *testing.T, handler http.HandlerFunc) *gsp.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return gsp.NewClient(&config.PortalConfig{
		BaseURL:         srv.URL,
		ClientID:        "test-client",
		ClientSecret:    "test-secret",
		TimeoutSecs:     5,
		RateLimitPerMin: 6000,
	})
}

func TestClient_ValidateAuthToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ims/authenticate", r.URL.Path)
		assert.Equal(t, testGSTIN, r.URL.Query().Get("gstin"))
		assert.Equal(t, "test-client", r.Header.Get("client-id"))
		assert.Equal(t, "test-secret", r.Header.Get("client-secret"))
		json.NewEncoder(w).Encode(map[string]string{"status": "active"})
	})

	assert.NoError(t, client.ValidateAuthToken(context.Background(), testGSTIN))
}

func TestClient_ValidateAuthToken_InactiveSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "expired"})
	})

	err := client.ValidateAuthToken(context.Background(), testGSTIN)
	assert.ErrorIs(t, err, domain.ErrOTPRequired)
}

func TestClient_Save_SubmitsBatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/ims/save", r.URL.Path)

		var req struct {
			GSTIN    string             `json:"gstin"`
			Invoices domain.UploadBatch `json:"invdata"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, testGSTIN, req.GSTIN)
		assert.Len(t, req.Invoices["b2b"], 1)

		json.NewEncoder(w).Encode(map[string]string{
			"reference_id": "ref-42",
			"txn":          "req-42",
		})
	})

	batch := domain.UploadBatch{
		"b2b": []domain.PortalInvoice{{SupplierGSTIN: "29AABCU9603R1ZJ", InvoiceNo: "INV-1", Action: "A"}},
	}

	resp, err := client.Save(context.Background(), testGSTIN, batch)

	assert.NoError(t, err)
	assert.Equal(t, "ref-42", resp.ReferenceID)
	assert.Equal(t, "req-42", resp.RequestID)
}

func TestClient_Unauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Save(context.Background(), testGSTIN, domain.UploadBatch{})
	assert.ErrorIs(t, err, domain.ErrOTPRequired)
}

func TestClient_PortalError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error_cd": "RET13506",
			"message":  "invalid return period",
		})
	})

	_, err := client.GetRequestStatus(context.Background(), testGSTIN, "tok-1")
	assert.ErrorIs(t, err, domain.ErrPortalRequest)
	assert.Contains(t, err.Error(), "RET13506")
}

func TestClient_Download_MapsCategories(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ims/download", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"queued_inv_count": 0,
			"invdata": map[string]interface{}{
				"b2b": []map[string]string{
					{"stin": "29AABCU9603R1ZJ", "inum": "INV-1", "idt": "01-07-2026", "action": "N"},
				},
				"b2bcn": []map[string]string{
					{"stin": "29AABCU9603R1ZJ", "nt_num": "CN-1", "nt_dt": "02-07-2026", "action": "A"},
				},
				"unknown_category": []map[string]string{{"inum": "X"}},
			},
		})
	})

	resp, err := client.Download(context.Background(), testGSTIN)

	assert.NoError(t, err)
	assert.False(t, resp.HasQueuedInvoices)
	assert.Len(t, resp.Invoices, 2)
	assert.Equal(t, "INV-1", resp.Invoices[domain.CategoryB2B][0].InvoiceNo)
	assert.Equal(t, "CN-1", resp.Invoices[domain.CategoryB2BCN][0].NoteNo)
}

func TestClient_Download_QueuedInvoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"queued_inv_count": 7})
	})

	resp, err := client.Download(context.Background(), testGSTIN)

	assert.NoError(t, err)
	assert.True(t, resp.HasQueuedInvoices)
	assert.Empty(t, resp.Invoices)
}
